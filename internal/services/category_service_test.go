package services

import (
	"context"
	"testing"

	"github.com/Dias221467/Marketplace_Hub/internal/apperrors"
	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryWritesNeedAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice, admin := newCaller(models.RoleUser), newCaller(models.RoleAdmin)

	_, err := env.categories.CreateCategory(ctx, alice, "Bikes")
	assertKind(t, err, apperrors.KindUnauthorized)
	_, err = env.categories.CreateCategory(ctx, nil, "Bikes")
	assertKind(t, err, apperrors.KindUnauthenticated)

	category, err := env.categories.CreateCategory(ctx, admin, "Bikes")
	require.NoError(t, err)

	_, err = env.categories.UpdateCategory(ctx, alice, category.ID.Hex(), "Cars")
	assertKind(t, err, apperrors.KindUnauthorized)
	_, err = env.categories.DeleteCategory(ctx, alice, category.ID.Hex())
	assertKind(t, err, apperrors.KindUnauthorized)

	updated, err := env.categories.UpdateCategory(ctx, admin, category.ID.Hex(), "Cars")
	require.NoError(t, err)
	assert.Equal(t, "Cars", updated.Name)
}

func TestCategoryNameRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := newCaller(models.RoleAdmin)

	_, err := env.categories.CreateCategory(ctx, admin, "  ")
	assertKind(t, err, apperrors.KindValidation)

	_, err = env.categories.CreateCategory(ctx, admin, "Bikes")
	require.NoError(t, err)
	_, err = env.categories.CreateCategory(ctx, admin, "Bikes")
	assertKind(t, err, apperrors.KindValidation)
}

func TestDeleteCategoryCascadesReviews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice, bob, admin := newCaller(models.RoleUser), newCaller(models.RoleUser), newCaller(models.RoleAdmin)

	category, err := env.categories.CreateCategory(ctx, admin, "Bikes")
	require.NoError(t, err)
	filed := env.review(t, alice, strPtr(category.ID.Hex()))
	env.comment(t, bob, filed.ID)
	loose := env.review(t, alice, nil)

	deleted, err := env.categories.DeleteCategory(ctx, admin, category.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Bikes", deleted.Name)

	reviews, err := env.reviews.GetReviews(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, loose.ID, reviews[0].ID)

	comments, err := env.comments.GetComments(ctx)
	require.NoError(t, err)
	assert.Empty(t, comments)

	_, err = env.categories.DeleteCategory(ctx, admin, category.ID.Hex())
	assertKind(t, err, apperrors.KindNotFound)
}

func TestCategoriesByUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := newCaller(models.RoleAdmin)

	bikes, err := env.categories.CreateCategory(ctx, admin, "Bikes")
	require.NoError(t, err)
	_, err = env.categories.CreateCategory(ctx, admin, "Cars")
	require.NoError(t, err)

	env.auth.users["u1"] = models.User{ID: "u1", IsFollowing: []string{bikes.ID.Hex(), "garbage"}}

	followed, err := env.categories.GetCategoriesByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, followed, 1)
	assert.Equal(t, "Bikes", followed[0].Name)

	_, err = env.categories.GetCategoriesByUser(ctx, "nobody")
	assertKind(t, err, apperrors.KindRemoteService)
}

func TestSearchCategories(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := newCaller(models.RoleAdmin)
	for _, name := range []string{"Electronics", "Books", "Home electrics"} {
		_, err := env.categories.CreateCategory(ctx, admin, name)
		require.NoError(t, err)
	}

	found, err := env.categories.SearchCategories(ctx, "ELECTR")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}
