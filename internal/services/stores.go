package services

import (
	"context"
	"time"

	"github.com/Dias221467/Marketplace_Hub/internal/apperrors"
	"github.com/Dias221467/Marketplace_Hub/internal/cascade"
	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/Dias221467/Marketplace_Hub/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The store interfaces are satisfied by the Mongo repositories and by the in-memory
// store.

type CategoryStore interface {
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Category, error)
	SearchCategories(ctx context.Context, term string) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id primitive.ObjectID, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
}

type OfferStore interface {
	cascade.Collection
	CreateOffer(ctx context.Context, offer *models.Offer) (*models.Offer, error)
	GetOfferByID(ctx context.Context, id primitive.ObjectID) (*models.Offer, error)
	GetOffers(ctx context.Context, filter models.OfferFilter) ([]models.Offer, error)
	SearchOffers(ctx context.Context, term string) ([]models.Offer, error)
	UpdateOffer(ctx context.Context, id primitive.ObjectID, patch models.OfferPatch) (*models.Offer, error)
	DeleteOffer(ctx context.Context, id primitive.ObjectID) (*models.Offer, error)
	GetExpiredOfferIDs(ctx context.Context, now time.Time) ([]primitive.ObjectID, error)
}

type ReviewStore interface {
	CreateReview(ctx context.Context, review *models.Review) (*models.Review, error)
	GetReviewByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	GetReviews(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error)
	SearchReviews(ctx context.Context, term string) ([]models.Review, error)
	UpdateReview(ctx context.Context, id primitive.ObjectID, patch models.ReviewPatch) (*models.Review, error)
	DeleteReview(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	GetCommentByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	GetComments(ctx context.Context, filter models.CommentFilter) ([]models.Comment, error)
	SearchComments(ctx context.Context, term string) ([]models.Comment, error)
	UpdateComment(ctx context.Context, id primitive.ObjectID, patch models.CommentPatch) (*models.Comment, error)
	DeleteComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, notif *models.Notification) (*models.Notification, error)
	CreateNotifications(ctx context.Context, notifs []models.Notification) ([]models.Notification, error)
	GetNotificationByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error)
	GetNotifications(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error)
	SearchNotifications(ctx context.Context, term string) ([]models.Notification, error)
	DeleteNotification(ctx context.Context, id primitive.ObjectID) (*models.Notification, error)
	DeleteExpiredNotifications(ctx context.Context, now time.Time) (int64, error)
}

// Transactor groups a cascade and the parent delete into one unit of work.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Cascader interface {
	DeleteDependents(ctx context.Context, kind cascade.Kind, ids ...primitive.ObjectID) (cascade.Report, error)
}

// AuthService is the external user and authentication service.
type AuthService interface {
	Users(ctx context.Context) ([]models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	UsersByCategory(ctx context.Context, categoryID string) ([]models.User, error)
	CategoriesByUser(ctx context.Context, userID string) (*models.User, error)
	AddCategory(ctx context.Context, caller *models.Caller, categoryID string) (*models.User, error)
	RemoveCategory(ctx context.Context, caller *models.Caller, categoryID string) (*models.User, error)
	Login(ctx context.Context, credentials models.Credentials) (*models.LoginResponse, error)
	Register(ctx context.Context, input models.UserInput) (*models.UserResponse, error)
	UpdateSelf(ctx context.Context, caller *models.Caller, input models.UserInput) (*models.UserResponse, error)
	DeleteSelf(ctx context.Context, caller *models.Caller) (*models.UserResponse, error)
	UpdateByID(ctx context.Context, caller *models.Caller, id string, input models.UserInput) (*models.UserResponse, error)
	DeleteByID(ctx context.Context, caller *models.Caller, id string) (*models.UserResponse, error)
}

func parseID(entity, id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.Validation("invalid %s id %q", entity, id)
	}
	return objID, nil
}

func parseOptionalID(entity string, id *string) (*primitive.ObjectID, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	objID, err := parseID(entity, *id)
	if err != nil {
		return nil, err
	}
	return &objID, nil
}

// deleteWithDependents removes the dependents of the given parents and then calls
// remove, all inside one transaction.
func deleteWithDependents(ctx context.Context, tx Transactor, cascader Cascader, kind cascade.Kind, ids []primitive.ObjectID, remove func(ctx context.Context) error) error {
	var report cascade.Report
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		report, err = cascader.DeleteDependents(ctx, kind, ids...)
		if err != nil {
			return err
		}
		return remove(ctx)
	})
	if err != nil {
		return err
	}

	for child, n := range report {
		metrics.CascadeDeleted.WithLabelValues(string(child)).Add(float64(n))
	}
	return nil
}
