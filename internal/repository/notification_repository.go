package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type NotificationRepository struct {
	documents[models.Notification]
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{documents: newDocuments[models.Notification](db, "notifications", "notification")}
}

// CreateNotification inserts a new notification
func (r *NotificationRepository) CreateNotification(ctx context.Context, notif *models.Notification) (*models.Notification, error) {
	id, err := r.insert(ctx, notif)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert notification")
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	notif.ID = id
	return notif, nil
}

// CreateNotifications inserts one notification per receiver in a single round trip
func (r *NotificationRepository) CreateNotifications(ctx context.Context, notifs []models.Notification) ([]models.Notification, error) {
	if len(notifs) == 0 {
		return []models.Notification{}, nil
	}

	docs := make([]interface{}, len(notifs))
	for i := range notifs {
		docs[i] = notifs[i]
	}

	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert notifications")
		return nil, fmt.Errorf("failed to create notifications: %w", err)
	}
	for i, insertedID := range result.InsertedIDs {
		if id, ok := insertedID.(primitive.ObjectID); ok {
			notifs[i].ID = id
		}
	}

	logrus.WithField("count", len(notifs)).Info("Notifications sent")
	return notifs, nil
}

func (r *NotificationRepository) GetNotificationByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	return r.findByID(ctx, id)
}

// GetNotifications returns notifications, newest first, optionally for one receiver
func (r *NotificationRepository) GetNotifications(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error) {
	query := bson.M{}
	if filter.Receiver != nil {
		query["receiver"] = *filter.Receiver
	}
	return r.find(ctx, query, newestFirst())
}

func (r *NotificationRepository) SearchNotifications(ctx context.Context, term string) ([]models.Notification, error) {
	return r.search(ctx, "text", term, newestFirst())
}

// DeleteNotification deletes a notification and returns it
func (r *NotificationRepository) DeleteNotification(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	return r.deleteByID(ctx, id)
}

// DeleteExpiredNotifications removes notifications whose expiry has passed
func (r *NotificationRepository) DeleteExpiredNotifications(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{"expire": bson.M{"$lte": now}}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired notifications: %w", err)
	}
	logrus.Infof("Deleted %d expired notifications", result.DeletedCount)
	return result.DeletedCount, nil
}
