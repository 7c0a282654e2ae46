package services

import (
	"context"

	"github.com/Dias221467/Marketplace_Hub/internal/access"
	"github.com/Dias221467/Marketplace_Hub/internal/cascade"
	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/Dias221467/Marketplace_Hub/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService proxies user operations to the auth service. Deleting a user also removes
// the offers, reviews and comments they authored.
type UserService struct {
	auth     AuthService
	tx       Transactor
	cascader Cascader
}

func NewUserService(auth AuthService, tx Transactor, cascader Cascader) *UserService {
	return &UserService{auth: auth, tx: tx, cascader: cascader}
}

func (s *UserService) GetUsers(ctx context.Context) ([]models.User, error) {
	return s.auth.Users(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.auth.UserByID(ctx, id)
}

func (s *UserService) GetUsersByCategory(ctx context.Context, categoryID string) ([]models.User, error) {
	return s.auth.UsersByCategory(ctx, categoryID)
}

// CheckToken echoes the identity carried by the request token. Anonymous callers get
// a response without a user.
func (s *UserService) CheckToken(caller *models.Caller) *models.UserResponse {
	resp := &models.UserResponse{Message: "User data: "}
	if caller != nil && caller.ID != "" {
		resp.User = &models.User{
			ID:       caller.ID,
			Username: caller.Username,
			Email:    caller.Email,
			Role:     caller.Role,
		}
	}
	return resp
}

func (s *UserService) Login(ctx context.Context, credentials models.Credentials) (*models.LoginResponse, error) {
	return s.auth.Login(ctx, credentials)
}

func (s *UserService) Register(ctx context.Context, input models.UserInput) (*models.UserResponse, error) {
	return s.auth.Register(ctx, input)
}

func (s *UserService) AddCategoryToUser(ctx context.Context, caller *models.Caller, categoryID string) (*models.User, error) {
	caller, err := access.RequireLoggedIn(caller)
	if err != nil {
		return nil, err
	}
	return s.auth.AddCategory(ctx, caller, categoryID)
}

func (s *UserService) RemoveCategoryFromUser(ctx context.Context, caller *models.Caller, categoryID string) (*models.User, error) {
	caller, err := access.RequireLoggedIn(caller)
	if err != nil {
		return nil, err
	}
	return s.auth.RemoveCategory(ctx, caller, categoryID)
}

func (s *UserService) UpdateUser(ctx context.Context, caller *models.Caller, input models.UserInput) (*models.UserResponse, error) {
	caller, err := access.RequireLoggedIn(caller)
	if err != nil {
		return nil, err
	}
	return s.auth.UpdateSelf(ctx, caller, input)
}

// DeleteUser removes the caller's content and then the caller's account.
func (s *UserService) DeleteUser(ctx context.Context, caller *models.Caller) (*models.UserResponse, error) {
	caller, err := access.RequireLoggedIn(caller)
	if err != nil {
		return nil, err
	}
	userID, err := access.CallerObjectID(caller)
	if err != nil {
		return nil, err
	}

	return s.deleteAccount(ctx, userID, func(ctx context.Context) (*models.UserResponse, error) {
		return s.auth.DeleteSelf(ctx, caller)
	})
}

func (s *UserService) UpdateUserAsAdmin(ctx context.Context, caller *models.Caller, id string, input models.UserInput) (*models.UserResponse, error) {
	caller, err := access.RequireAdmin(caller)
	if err != nil {
		return nil, err
	}
	return s.auth.UpdateByID(ctx, caller, id, input)
}

func (s *UserService) DeleteUserAsAdmin(ctx context.Context, caller *models.Caller, id string) (*models.UserResponse, error) {
	caller, err := access.RequireAdmin(caller)
	if err != nil {
		return nil, err
	}
	userID, err := parseID("user", id)
	if err != nil {
		return nil, err
	}

	return s.deleteAccount(ctx, userID, func(ctx context.Context) (*models.UserResponse, error) {
		return s.auth.DeleteByID(ctx, caller, id)
	})
}

// deleteAccount calls remove and, once the auth service has accepted the delete,
// cascades the user's content. A rejected remote delete leaves the content untouched.
// The remote call stays outside the transaction so a retried transaction never
// repeats it.
func (s *UserService) deleteAccount(ctx context.Context, userID primitive.ObjectID, remove func(ctx context.Context) (*models.UserResponse, error)) (*models.UserResponse, error) {
	resp, err := remove(ctx)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to delete user")
		return nil, err
	}

	noParent := func(context.Context) error { return nil }
	if err := deleteWithDependents(ctx, s.tx, s.cascader, cascade.User, []primitive.ObjectID{userID}, noParent); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("User deleted but authored content was not removed")
		return nil, err
	}

	logger.Log.WithField("user_id", userID.Hex()).Info("User and authored content deleted")
	return resp, nil
}
