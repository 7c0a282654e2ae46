// Package access holds the authorization decisions shared by every mutation.
// The functions only inspect their arguments; callers run them before touching the
// store and return the error as is.
package access

import (
	"github.com/Dias221467/Marketplace_Hub/internal/apperrors"
	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequireLoggedIn fails with Unauthenticated when the request carried no valid token.
func RequireLoggedIn(caller *models.Caller) (*models.Caller, error) {
	if caller == nil || caller.ID == "" {
		return nil, apperrors.Unauthenticated("")
	}
	return caller, nil
}

// RequireAdmin fails with Unauthorized unless the caller has the admin role.
func RequireAdmin(caller *models.Caller) (*models.Caller, error) {
	caller, err := RequireLoggedIn(caller)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, apperrors.Unauthorized("")
	}
	return caller, nil
}

// RequireOwnerOrAdmin lets admins through and otherwise compares the caller id with
// the stored owner as hex strings.
func RequireOwnerOrAdmin(caller *models.Caller, owner primitive.ObjectID) (*models.Caller, error) {
	return RequireSelfOrAdmin(caller, owner.Hex())
}

// RequireSelfOrAdmin is RequireOwnerOrAdmin for resources keyed by a user id string.
func RequireSelfOrAdmin(caller *models.Caller, userID string) (*models.Caller, error) {
	caller, err := RequireLoggedIn(caller)
	if err != nil {
		return nil, err
	}
	if caller.IsAdmin() || caller.ID == userID {
		return caller, nil
	}
	return nil, apperrors.Unauthorized("")
}

// CallerObjectID parses the caller id for use as an author or receiver reference.
func CallerObjectID(caller *models.Caller) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(caller.ID)
	if err != nil {
		return primitive.NilObjectID, apperrors.Unauthenticated("token carries an invalid user id")
	}
	return id, nil
}
