package graph

import (
	"context"
	"testing"

	"github.com/Dias221467/Marketplace_Hub/internal/apperrors"
	"github.com/Dias221467/Marketplace_Hub/internal/cascade"
	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/Dias221467/Marketplace_Hub/internal/repository/memory"
	"github.com/Dias221467/Marketplace_Hub/internal/services"
	"github.com/Dias221467/Marketplace_Hub/pkg/middleware"
	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubAuth struct {
	services.AuthService
	users map[string]models.User
}

func (s *stubAuth) UserByID(_ context.Context, id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.Remote(404, "User not found")
	}
	return &u, nil
}

type fixture struct {
	schema *Schema
	auth   *stubAuth
	alice  *models.Caller
	bob    *models.Caller
	admin  *models.Caller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	exec := cascade.NewExecutor(map[cascade.Kind]cascade.Collection{
		cascade.Offer:   store.Offers,
		cascade.Review:  store.Reviews,
		cascade.Comment: store.Comments,
	})
	auth := &stubAuth{users: map[string]models.User{}}

	schema, err := NewSchema(Services{
		Categories:    services.NewCategoryService(store.Categories, auth, store, exec),
		Offers:        services.NewOfferService(store.Offers, store.Categories, store, exec),
		Reviews:       services.NewReviewService(store.Reviews, store.Categories, store, exec),
		Comments:      services.NewCommentService(store.Comments, store.Offers, store.Reviews, store, exec),
		Notifications: services.NewNotificationService(store.Notifications, true),
		Users:         services.NewUserService(auth, store, exec),
	})
	require.NoError(t, err)

	f := &fixture{schema: schema, auth: auth}
	for _, c := range []**models.Caller{&f.alice, &f.bob, &f.admin} {
		*c = &models.Caller{ID: primitive.NewObjectID().Hex(), Role: models.RoleUser, Token: "tok"}
	}
	f.admin.Role = models.RoleAdmin
	f.alice.Username = "alice"
	auth.users[f.alice.ID] = models.User{ID: f.alice.ID, Username: "alice"}
	return f
}

func (f *fixture) run(t *testing.T, caller *models.Caller, query string, vars map[string]interface{}) *graphql.Result {
	t.Helper()
	ctx := context.Background()
	if caller != nil {
		ctx = middleware.WithCaller(ctx, caller)
	}
	return f.schema.Do(ctx, query, vars, "")
}

func (f *fixture) mustRun(t *testing.T, caller *models.Caller, query string, vars map[string]interface{}) map[string]interface{} {
	t.Helper()
	result := f.run(t, caller, query, vars)
	require.Empty(t, result.Errors)
	data, ok := result.Data.(map[string]interface{})
	require.True(t, ok)
	return data
}

func errorCode(t *testing.T, result *graphql.Result) (string, interface{}) {
	t.Helper()
	require.NotEmpty(t, result.Errors)
	ext := result.Errors[0].Extensions
	require.NotNil(t, ext)
	httpExt, _ := ext["http"].(map[string]interface{})
	return ext["code"].(string), httpExt["status"]
}

const createOffer = `mutation($input: OfferInput!) {
	createOffer(input: $input) { id header text author { username } publicationDate deletionDate }
}`

func TestCreateOfferResolvesAuthor(t *testing.T) {
	f := newFixture(t)

	data := f.mustRun(t, f.alice, createOffer, map[string]interface{}{
		"input": map[string]interface{}{"header": "Bike", "text": "Used bike"},
	})

	offer := data["createOffer"].(map[string]interface{})
	assert.Equal(t, "Bike", offer["header"])
	assert.Len(t, offer["id"], 24)
	assert.Equal(t, map[string]interface{}{"username": "alice"}, offer["author"])
	assert.NotEmpty(t, offer["deletionDate"])
}

func TestUnauthenticatedCreateComment(t *testing.T) {
	f := newFixture(t)

	result := f.run(t, nil, `mutation { createComment(input: {text: "hi", post: "`+primitive.NewObjectID().Hex()+`"}) { id } }`, nil)

	code, status := errorCode(t, result)
	assert.Equal(t, "UNAUTHENTICATED", code)
	assert.Equal(t, 401, status)
	assert.Equal(t, "Not authenticated", result.Errors[0].Message)
}

func TestLookupErrors(t *testing.T) {
	f := newFixture(t)

	code, status := errorCode(t, f.run(t, nil, `{ offerById(id: "nope") { id } }`, nil))
	assert.Equal(t, "BAD_USER_INPUT", code)
	assert.Equal(t, 400, status)

	code, status = errorCode(t, f.run(t, nil, `{ offerById(id: "`+primitive.NewObjectID().Hex()+`") { id } }`, nil))
	assert.Equal(t, "NOT_FOUND", code)
	assert.Equal(t, 404, status)
}

func TestCommentPostUnion(t *testing.T) {
	f := newFixture(t)

	data := f.mustRun(t, f.alice, createOffer, map[string]interface{}{
		"input": map[string]interface{}{"header": "Bike", "text": "Used bike"},
	})
	offerID := data["createOffer"].(map[string]interface{})["id"].(string)

	data = f.mustRun(t, f.bob, `mutation($post: ID!) {
		createComment(input: {text: "still available?", post: $post, postKind: offer}) { id }
	}`, map[string]interface{}{"post": offerID})
	commentID := data["createComment"].(map[string]interface{})["id"].(string)

	data = f.mustRun(t, nil, `query($id: ID!) {
		commentById(id: $id) {
			text
			post { __typename ... on Offer { header comments { id } } ... on Review { rating } }
		}
	}`, map[string]interface{}{"id": commentID})

	comment := data["commentById"].(map[string]interface{})
	post := comment["post"].(map[string]interface{})
	assert.Equal(t, "Offer", post["__typename"])
	assert.Equal(t, "Bike", post["header"])
	assert.Equal(t, []interface{}{map[string]interface{}{"id": commentID}}, post["comments"])
}

func TestDeleteOfferByStranger(t *testing.T) {
	f := newFixture(t)

	data := f.mustRun(t, f.alice, createOffer, map[string]interface{}{
		"input": map[string]interface{}{"header": "Bike", "text": "Used bike"},
	})
	offerID := data["createOffer"].(map[string]interface{})["id"].(string)
	deleteOffer := `mutation($id: ID!) { deleteOffer(id: $id) { id header } }`

	code, status := errorCode(t, f.run(t, f.bob, deleteOffer, map[string]interface{}{"id": offerID}))
	assert.Equal(t, "UNAUTHORIZED", code)
	assert.Equal(t, 403, status)

	data = f.mustRun(t, f.admin, deleteOffer, map[string]interface{}{"id": offerID})
	assert.Equal(t, "Bike", data["deleteOffer"].(map[string]interface{})["header"])
}

func TestCategoryAdminFlow(t *testing.T) {
	f := newFixture(t)

	code, _ := errorCode(t, f.run(t, f.alice, `mutation { createCategory(name: "Bikes") { id } }`, nil))
	assert.Equal(t, "UNAUTHORIZED", code)

	data := f.mustRun(t, f.admin, `mutation { createCategory(name: "Bikes") { id name } }`, nil)
	assert.Equal(t, "Bikes", data["createCategory"].(map[string]interface{})["name"])

	data = f.mustRun(t, nil, `{ searchCategories(searchTerm: "bik") { name } }`, nil)
	assert.Equal(t, []interface{}{map[string]interface{}{"name": "Bikes"}}, data["searchCategories"])
}

func TestRemoteErrorSurfacesWithRemoteCode(t *testing.T) {
	f := newFixture(t)
	stranger := &models.Caller{ID: primitive.NewObjectID().Hex(), Role: models.RoleUser}

	result := f.run(t, stranger, `mutation {
		addNotification(input: {receiver: "`+stranger.ID+`", text: "hi"}) { text receiver { username } }
	}`, nil)

	code, status := errorCode(t, result)
	assert.Equal(t, "NOT_FOUND", code)
	assert.Equal(t, 404, status)
	assert.Equal(t, "User not found", result.Errors[0].Message)
}

func TestCheckToken(t *testing.T) {
	f := newFixture(t)

	data := f.mustRun(t, f.alice, `{ checkToken { message user { id username } } }`, nil)
	resp := data["checkToken"].(map[string]interface{})
	assert.Equal(t, "User data: ", resp["message"])
	assert.Equal(t, map[string]interface{}{"id": f.alice.ID, "username": "alice"}, resp["user"])
}
