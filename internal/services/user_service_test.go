package services

import (
	"context"
	"testing"

	"github.com/Dias221467/Marketplace_Hub/internal/apperrors"
	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteUserAsAdminCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice, bob, admin := newCaller(models.RoleUser), newCaller(models.RoleUser), newCaller(models.RoleAdmin)

	aliceOffer := env.offer(t, alice, "Bike")
	env.review(t, alice, nil)
	env.comment(t, bob, aliceOffer.ID)

	bobOffer := env.offer(t, bob, "Lamp")
	env.comment(t, alice, bobOffer.ID)
	bobComment := env.comment(t, bob, bobOffer.ID)

	_, err := env.users.DeleteUserAsAdmin(ctx, bob, alice.ID)
	assertKind(t, err, apperrors.KindUnauthorized)
	assert.Empty(t, env.auth.deleted)

	resp, err := env.users.DeleteUserAsAdmin(ctx, admin, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, resp.User.ID)
	assert.Equal(t, []string{alice.ID}, env.auth.deleted)
	assert.Same(t, admin, env.auth.lastCaller)

	offers, err := env.offers.GetOffers(ctx)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, bobOffer.ID, offers[0].ID)

	reviews, err := env.reviews.GetReviews(ctx)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	comments, err := env.comments.GetComments(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, bobComment.ID, comments[0].ID)
}

func TestDeleteUserSelf(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := newCaller(models.RoleUser)
	env.offer(t, alice, "Bike")

	_, err := env.users.DeleteUser(ctx, nil)
	assertKind(t, err, apperrors.KindUnauthenticated)

	_, err = env.users.DeleteUser(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{alice.ID}, env.auth.deleted)

	offers, err := env.offers.GetOffers(ctx)
	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestDeleteUserPropagatesRemoteError(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice, bob := newCaller(models.RoleUser), newCaller(models.RoleUser)

	offer := env.offer(t, alice, "Bike")
	env.review(t, alice, nil)
	env.comment(t, bob, offer.ID)

	env.auth.deleteErr = apperrors.Remote(404, "User not found")
	_, err := env.users.DeleteUserAsAdmin(ctx, newCaller(models.RoleAdmin), alice.ID)
	assertKind(t, err, apperrors.KindRemoteService)
	assert.Equal(t, "NOT_FOUND", apperrors.From(err).Code)

	env.auth.deleteErr = apperrors.Remote(503, "")
	_, err = env.users.DeleteUser(ctx, alice)
	assertKind(t, err, apperrors.KindRemoteService)

	offers, err := env.offers.GetOffers(ctx)
	require.NoError(t, err)
	assert.Len(t, offers, 1)
	reviews, err := env.reviews.GetReviews(ctx)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
	comments, err := env.comments.GetComments(ctx)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestDeleteUserAsAdminRejectsMalformedID(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.DeleteUserAsAdmin(context.Background(), newCaller(models.RoleAdmin), "xyz")
	assertKind(t, err, apperrors.KindValidation)
}

func TestUserProxyCallsNeedLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := newCaller(models.RoleUser)

	_, err := env.users.AddCategoryToUser(ctx, nil, "c1")
	assertKind(t, err, apperrors.KindUnauthenticated)
	_, err = env.users.UpdateUser(ctx, nil, models.UserInput{Username: "x"})
	assertKind(t, err, apperrors.KindUnauthenticated)
	_, err = env.users.UpdateUserAsAdmin(ctx, alice, "u2", models.UserInput{Username: "x"})
	assertKind(t, err, apperrors.KindUnauthorized)

	user, err := env.users.AddCategoryToUser(ctx, alice, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, user.IsFollowing)
	assert.Same(t, alice, env.auth.lastCaller)
}

func TestCheckToken(t *testing.T) {
	env := newTestEnv(t)
	alice := newCaller(models.RoleUser)

	resp := env.users.CheckToken(alice)
	require.NotNil(t, resp.User)
	assert.Equal(t, alice.ID, resp.User.ID)

	assert.Nil(t, env.users.CheckToken(nil).User)
}

func TestDeleteUserFailingCascadeReportsError(t *testing.T) {
	env := newTestEnv(t)
	broken := NewUserService(env.auth, env.store, failingCascader{})
	alice := newCaller(models.RoleUser)
	env.offer(t, alice, "Bike")

	_, err := broken.DeleteUser(context.Background(), alice)
	require.Error(t, err)
	assert.Equal(t, []string{alice.ID}, env.auth.deleted)
}
