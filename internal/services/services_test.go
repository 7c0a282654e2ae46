package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dias221467/Marketplace_Hub/internal/apperrors"
	"github.com/Dias221467/Marketplace_Hub/internal/cascade"
	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/Dias221467/Marketplace_Hub/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeAuth struct {
	users      map[string]models.User
	deleted    []string
	deleteErr  error
	lastCaller *models.Caller
}

func (f *fakeAuth) Users(context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeAuth) UserByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.Remote(404, "User not found")
	}
	return &u, nil
}

func (f *fakeAuth) UsersByCategory(context.Context, string) ([]models.User, error) {
	return []models.User{}, nil
}

func (f *fakeAuth) CategoriesByUser(ctx context.Context, userID string) (*models.User, error) {
	return f.UserByID(ctx, userID)
}

func (f *fakeAuth) AddCategory(_ context.Context, caller *models.Caller, categoryID string) (*models.User, error) {
	f.lastCaller = caller
	return &models.User{ID: caller.ID, IsFollowing: []string{categoryID}}, nil
}

func (f *fakeAuth) RemoveCategory(_ context.Context, caller *models.Caller, _ string) (*models.User, error) {
	f.lastCaller = caller
	return &models.User{ID: caller.ID, IsFollowing: []string{}}, nil
}

func (f *fakeAuth) Login(_ context.Context, c models.Credentials) (*models.LoginResponse, error) {
	return &models.LoginResponse{Message: "Login successful", Token: "token-" + c.Username}, nil
}

func (f *fakeAuth) Register(_ context.Context, in models.UserInput) (*models.UserResponse, error) {
	return &models.UserResponse{Message: "user created", User: &models.User{Username: in.Username}}, nil
}

func (f *fakeAuth) UpdateSelf(_ context.Context, caller *models.Caller, in models.UserInput) (*models.UserResponse, error) {
	f.lastCaller = caller
	return &models.UserResponse{Message: "user updated", User: &models.User{ID: caller.ID, Username: in.Username}}, nil
}

func (f *fakeAuth) DeleteSelf(_ context.Context, caller *models.Caller) (*models.UserResponse, error) {
	return f.delete(caller, caller.ID)
}

func (f *fakeAuth) UpdateByID(_ context.Context, caller *models.Caller, id string, in models.UserInput) (*models.UserResponse, error) {
	f.lastCaller = caller
	return &models.UserResponse{Message: "user updated", User: &models.User{ID: id, Username: in.Username}}, nil
}

func (f *fakeAuth) DeleteByID(_ context.Context, caller *models.Caller, id string) (*models.UserResponse, error) {
	return f.delete(caller, id)
}

func (f *fakeAuth) delete(caller *models.Caller, id string) (*models.UserResponse, error) {
	f.lastCaller = caller
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return &models.UserResponse{Message: "user deleted", User: &models.User{ID: id}}, nil
}

type failingCascader struct{}

func (failingCascader) DeleteDependents(context.Context, cascade.Kind, ...primitive.ObjectID) (cascade.Report, error) {
	return nil, errors.New("comments collection unavailable")
}

type testEnv struct {
	store         *memory.Store
	auth          *fakeAuth
	categories    *CategoryService
	offers        *OfferService
	reviews       *ReviewService
	comments      *CommentService
	notifications *NotificationService
	users         *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	auth := &fakeAuth{users: map[string]models.User{}}
	exec := cascade.NewExecutor(map[cascade.Kind]cascade.Collection{
		cascade.Offer:   store.Offers,
		cascade.Review:  store.Reviews,
		cascade.Comment: store.Comments,
	})

	env := &testEnv{
		store:         store,
		auth:          auth,
		categories:    NewCategoryService(store.Categories, auth, store, exec),
		offers:        NewOfferService(store.Offers, store.Categories, store, exec),
		reviews:       NewReviewService(store.Reviews, store.Categories, store, exec),
		comments:      NewCommentService(store.Comments, store.Offers, store.Reviews, store, exec),
		notifications: NewNotificationService(store.Notifications, true),
		users:         NewUserService(auth, store, exec),
	}
	clock := func() time.Time { return testNow }
	env.offers.now = clock
	env.reviews.now = clock
	env.comments.now = clock
	env.notifications.now = clock
	return env
}

func newCaller(role string) *models.Caller {
	return &models.Caller{ID: primitive.NewObjectID().Hex(), Username: role + "-user", Role: role, Token: "tok"}
}

func strPtr(s string) *string { return &s }

func assertKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, apperrors.From(err).Kind, err.Error())
}

func (e *testEnv) offer(t *testing.T, author *models.Caller, header string) *models.Offer {
	t.Helper()
	offer, err := e.offers.CreateOffer(context.Background(), author, models.OfferInput{Header: header, Text: "details"})
	require.NoError(t, err)
	return offer
}

func (e *testEnv) review(t *testing.T, author *models.Caller, category *string) *models.Review {
	t.Helper()
	review, err := e.reviews.CreateReview(context.Background(), author, models.ReviewInput{Category: category, Header: "Review", Text: "text", Rating: 4})
	require.NoError(t, err)
	return review
}

func (e *testEnv) comment(t *testing.T, author *models.Caller, postID primitive.ObjectID) *models.Comment {
	t.Helper()
	comment, err := e.comments.CreateComment(context.Background(), author, models.CommentInput{Text: "nice", PostID: postID.Hex()})
	require.NoError(t, err)
	return comment
}
