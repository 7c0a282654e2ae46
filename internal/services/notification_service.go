package services

import (
	"context"
	"strings"
	"time"

	"github.com/Dias221467/Marketplace_Hub/internal/access"
	"github.com/Dias221467/Marketplace_Hub/internal/apperrors"
	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/Dias221467/Marketplace_Hub/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationService stores and serves user notifications.
type NotificationService struct {
	repo NotificationStore
	// requireLogin gates the two create operations.
	requireLogin bool
	now          func() time.Time
}

func NewNotificationService(repo NotificationStore, requireLogin bool) *NotificationService {
	return &NotificationService{repo: repo, requireLogin: requireLogin, now: time.Now}
}

func (s *NotificationService) GetNotifications(ctx context.Context) ([]models.Notification, error) {
	return s.repo.GetNotifications(ctx, models.NotificationFilter{})
}

func (s *NotificationService) GetNotification(ctx context.Context, id string) (*models.Notification, error) {
	objID, err := parseID("notification", id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetNotificationByID(ctx, objID)
}

func (s *NotificationService) SearchNotifications(ctx context.Context, term string) ([]models.Notification, error) {
	return s.repo.SearchNotifications(ctx, term)
}

// GetNotificationsByReceiver lists a user's notifications. Users can only read their own.
func (s *NotificationService) GetNotificationsByReceiver(ctx context.Context, caller *models.Caller, receiverID string) ([]models.Notification, error) {
	if _, err := access.RequireSelfOrAdmin(caller, receiverID); err != nil {
		return nil, err
	}
	objID, err := parseID("receiver", receiverID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetNotifications(ctx, models.NotificationFilter{Receiver: &objID})
}

func (s *NotificationService) AddNotification(ctx context.Context, caller *models.Caller, input models.NotificationInput) (*models.Notification, error) {
	if err := s.checkSender(caller); err != nil {
		return nil, err
	}
	receiver, err := parseID("receiver", input.Receiver)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, apperrors.Validation("notification text is required")
	}

	created, err := s.repo.CreateNotification(ctx, s.build(receiver, text, input.Link))
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"notification_id": created.ID.Hex(),
		"receiver":        input.Receiver,
	}).Info("Notification created")
	return created, nil
}

// SendNotificationToManyUsers stores one notification per receiver. Every id is
// checked before anything is written.
func (s *NotificationService) SendNotificationToManyUsers(ctx context.Context, caller *models.Caller, userIDs []string, text, link string) ([]models.Notification, error) {
	if err := s.checkSender(caller); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.Validation("notification text is required")
	}
	if len(userIDs) == 0 {
		return []models.Notification{}, nil
	}

	notifs := make([]models.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		receiver, err := parseID("receiver", id)
		if err != nil {
			return nil, err
		}
		notifs = append(notifs, *s.build(receiver, text, link))
	}

	created, err := s.repo.CreateNotifications(ctx, notifs)
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("count", len(created)).Info("Notifications sent")
	return created, nil
}

// DeleteNotification lets the receiver or an admin remove a notification.
func (s *NotificationService) DeleteNotification(ctx context.Context, caller *models.Caller, id string) (*models.Notification, error) {
	caller, err := access.RequireLoggedIn(caller)
	if err != nil {
		return nil, err
	}
	objID, err := parseID("notification", id)
	if err != nil {
		return nil, err
	}
	notif, err := s.repo.GetNotificationByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if _, err := access.RequireOwnerOrAdmin(caller, notif.Receiver); err != nil {
		return nil, err
	}

	return s.repo.DeleteNotification(ctx, objID)
}

// DeleteExpiredNotifications drops every notification whose expiry has passed.
func (s *NotificationService) DeleteExpiredNotifications(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredNotifications(ctx, s.now())
}

func (s *NotificationService) checkSender(caller *models.Caller) error {
	if !s.requireLogin {
		return nil
	}
	_, err := access.RequireLoggedIn(caller)
	return err
}

func (s *NotificationService) build(receiver primitive.ObjectID, text, link string) *models.Notification {
	now := s.now()
	return &models.Notification{
		Receiver:        receiver,
		Text:            text,
		Link:            link,
		PublicationDate: now,
		Expire:          now.Add(models.NotificationLifetime),
	}
}
