package access

import (
	"testing"

	"github.com/Dias221467/Marketplace_Hub/internal/apperrors"
	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRequireLoggedIn(t *testing.T) {
	_, err := RequireLoggedIn(nil)
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthenticated))

	_, err = RequireLoggedIn(&models.Caller{})
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthenticated))

	caller := &models.Caller{ID: primitive.NewObjectID().Hex(), Role: models.RoleUser}
	got, err := RequireLoggedIn(caller)
	require.NoError(t, err)
	assert.Same(t, caller, got)
}

func TestRequireAdmin(t *testing.T) {
	_, err := RequireAdmin(nil)
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthenticated))

	_, err = RequireAdmin(&models.Caller{ID: "u1", Role: models.RoleUser})
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))

	_, err = RequireAdmin(&models.Caller{ID: "u1", Role: models.RoleAdmin})
	assert.NoError(t, err)
}

func TestRequireOwnerOrAdmin(t *testing.T) {
	owner := primitive.NewObjectID()

	tests := []struct {
		name   string
		caller *models.Caller
		kind   apperrors.Kind
	}{
		{name: "anonymous", caller: nil, kind: apperrors.KindUnauthenticated},
		{name: "stranger", caller: &models.Caller{ID: primitive.NewObjectID().Hex(), Role: models.RoleUser}, kind: apperrors.KindUnauthorized},
		{name: "owner", caller: &models.Caller{ID: owner.Hex(), Role: models.RoleUser}},
		{name: "admin", caller: &models.Caller{ID: primitive.NewObjectID().Hex(), Role: models.RoleAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RequireOwnerOrAdmin(tt.caller, owner)
			if tt.kind == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperrors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestCallerObjectID(t *testing.T) {
	id := primitive.NewObjectID()

	got, err := CallerObjectID(&models.Caller{ID: id.Hex()})
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = CallerObjectID(&models.Caller{ID: "not-hex"})
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthenticated))
}
