package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dias221467/Marketplace_Hub/internal/apperrors"
	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddNotificationComputesExpiry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice, bob := newCaller(models.RoleUser), newCaller(models.RoleUser)

	_, err := env.notifications.AddNotification(ctx, nil, models.NotificationInput{Receiver: bob.ID, Text: "hi"})
	assertKind(t, err, apperrors.KindUnauthenticated)

	notif, err := env.notifications.AddNotification(ctx, alice, models.NotificationInput{Receiver: bob.ID, Text: "New offer", Link: "/offers/1"})
	require.NoError(t, err)
	assert.Equal(t, bob.ID, notif.Receiver.Hex())
	assert.Equal(t, testNow, notif.PublicationDate)
	assert.Equal(t, testNow.Add(14*24*time.Hour), notif.Expire)
	assert.Equal(t, "/offers/1", notif.Link)
}

func TestAnonymousNotificationsWhenAllowed(t *testing.T) {
	env := newTestEnv(t)
	open := NewNotificationService(env.store.Notifications, false)

	_, err := open.AddNotification(context.Background(), nil, models.NotificationInput{Receiver: primitive.NewObjectID().Hex(), Text: "hi"})
	assert.NoError(t, err)
}

func TestSendNotificationToManyUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := newCaller(models.RoleAdmin)
	ids := []string{primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()}

	_, err := env.notifications.SendNotificationToManyUsers(ctx, admin, append(ids, "bogus"), "sale", "")
	assertKind(t, err, apperrors.KindValidation)
	all, err := env.notifications.GetNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	sent, err := env.notifications.SendNotificationToManyUsers(ctx, admin, ids, "sale", "")
	require.NoError(t, err)
	require.Len(t, sent, 2)
	assert.Equal(t, ids[0], sent[0].Receiver.Hex())
	assert.False(t, sent[1].ID.IsZero())
}

func TestNotificationAccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice, bob, admin := newCaller(models.RoleUser), newCaller(models.RoleUser), newCaller(models.RoleAdmin)

	notif, err := env.notifications.AddNotification(ctx, admin, models.NotificationInput{Receiver: bob.ID, Text: "hello"})
	require.NoError(t, err)

	_, err = env.notifications.GetNotificationsByReceiver(ctx, alice, bob.ID)
	assertKind(t, err, apperrors.KindUnauthorized)

	mine, err := env.notifications.GetNotificationsByReceiver(ctx, bob, bob.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = env.notifications.DeleteNotification(ctx, alice, notif.ID.Hex())
	assertKind(t, err, apperrors.KindUnauthorized)

	deleted, err := env.notifications.DeleteNotification(ctx, bob, notif.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "hello", deleted.Text)
}

func TestDeleteExpiredNotifications(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := newCaller(models.RoleAdmin)

	_, err := env.notifications.AddNotification(ctx, admin, models.NotificationInput{Receiver: admin.ID, Text: "old"})
	require.NoError(t, err)

	env.notifications.now = func() time.Time { return testNow.Add(24 * time.Hour) }
	_, err = env.notifications.AddNotification(ctx, admin, models.NotificationInput{Receiver: admin.ID, Text: "new"})
	require.NoError(t, err)

	env.notifications.now = func() time.Time { return testNow.Add(models.NotificationLifetime) }
	n, err := env.notifications.DeleteExpiredNotifications(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	left, err := env.notifications.SearchNotifications(ctx, "")
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "new", left[0].Text)
}
