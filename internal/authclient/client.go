// Package authclient forwards user and authentication operations to the external auth
// service and turns its error answers into apperrors.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Dias221467/Marketplace_Hub/internal/apperrors"
	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/Dias221467/Marketplace_Hub/pkg/logger"
	"github.com/Dias221467/Marketplace_Hub/pkg/metrics"
	"github.com/sirupsen/logrus"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the service at baseURL. Every call is bounded by timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

// Do sends body as JSON to path and decodes a 2xx answer into out. Non-2xx answers
// become a RemoteService error carrying the remote status.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}, token string, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode auth request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build auth request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := logger.Log.WithFields(logrus.Fields{"method": method, "path": path})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.AuthRequests.WithLabelValues(method, "error").Inc()
		log.WithError(err).Error("Auth service request failed")
		return fmt.Errorf("auth service unreachable: %w", err)
	}
	defer resp.Body.Close()
	metrics.AuthRequests.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read auth response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody errorResponse
		_ = json.Unmarshal(raw, &errBody)
		remoteErr := apperrors.Remote(resp.StatusCode, errBody.Message)
		log.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"code":   remoteErr.Code,
		}).Warn("Auth service returned an error")
		return remoteErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode auth response: %w", err)
	}
	return nil
}

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.Do(ctx, http.MethodGet, "/users", nil, "", &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (c *Client) UserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := c.Do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, "", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UsersByCategory lists the users following a category.
func (c *Client) UsersByCategory(ctx context.Context, categoryID string) ([]models.User, error) {
	var users []models.User
	if err := c.Do(ctx, http.MethodGet, "/users/categories/"+url.PathEscape(categoryID), nil, "", &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// CategoriesByUser returns the user record whose isFollowing lists the category ids.
func (c *Client) CategoriesByUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := c.Do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/categories", nil, "", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

type categoryRequest struct {
	CategoryID string `json:"categoryId"`
}

func (c *Client) AddCategory(ctx context.Context, caller *models.Caller, categoryID string) (*models.User, error) {
	var user models.User
	path := "/users/" + url.PathEscape(caller.ID) + "/categories"
	if err := c.Do(ctx, http.MethodPost, path, categoryRequest{CategoryID: categoryID}, caller.Token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) RemoveCategory(ctx context.Context, caller *models.Caller, categoryID string) (*models.User, error) {
	var user models.User
	path := "/users/" + url.PathEscape(caller.ID) + "/categories"
	if err := c.Do(ctx, http.MethodDelete, path, categoryRequest{CategoryID: categoryID}, caller.Token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Login(ctx context.Context, credentials models.Credentials) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/login", credentials, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, input models.UserInput) (*models.UserResponse, error) {
	var resp models.UserResponse
	if err := c.Do(ctx, http.MethodPost, "/users", input, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateSelf(ctx context.Context, caller *models.Caller, input models.UserInput) (*models.UserResponse, error) {
	var resp models.UserResponse
	if err := c.Do(ctx, http.MethodPut, "/users", input, caller.Token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteSelf(ctx context.Context, caller *models.Caller) (*models.UserResponse, error) {
	var resp models.UserResponse
	if err := c.Do(ctx, http.MethodDelete, "/users", nil, caller.Token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateByID(ctx context.Context, caller *models.Caller, id string, input models.UserInput) (*models.UserResponse, error) {
	var resp models.UserResponse
	if err := c.Do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), input, caller.Token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteByID(ctx context.Context, caller *models.Caller, id string) (*models.UserResponse, error) {
	var resp models.UserResponse
	if err := c.Do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, caller.Token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
