package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/Marketplace_Hub/pkg/logger"
	"github.com/Dias221467/Marketplace_Hub/pkg/metrics"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type OfferCleaner interface {
	DeleteExpiredOffers(ctx context.Context) (int64, error)
}

type NotificationCleaner interface {
	DeleteExpiredNotifications(ctx context.Context) (int64, error)
}

// Cleanup periodically removes expired offers (with their comments) and expired
// notifications.
type Cleanup struct {
	cron          *cron.Cron
	offers        OfferCleaner
	notifications NotificationCleaner
	timeout       time.Duration
}

func NewCleanup(schedule string, offers OfferCleaner, notifications NotificationCleaner, timeout time.Duration) (*Cleanup, error) {
	c := &Cleanup{
		cron:          cron.New(),
		offers:        offers,
		notifications: notifications,
		timeout:       timeout,
	}

	if _, err := c.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		if err := c.RunOnce(ctx); err != nil {
			logger.Log.WithError(err).Error("Cleanup run failed")
		}
	}); err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", schedule, err)
	}
	return c, nil
}

// RunOnce performs a single cleanup pass. Both steps run even if the first fails.
func (c *Cleanup) RunOnce(ctx context.Context) error {
	offers, offerErr := c.offers.DeleteExpiredOffers(ctx)
	notifications, notifErr := c.notifications.DeleteExpiredNotifications(ctx)

	if err := errors.Join(offerErr, notifErr); err != nil {
		metrics.CleanupRuns.WithLabelValues("error").Inc()
		return err
	}

	metrics.CleanupRuns.WithLabelValues("ok").Inc()
	logger.Log.WithFields(logrus.Fields{
		"offers":        offers,
		"notifications": notifications,
	}).Info("Expired documents removed")
	return nil
}

// Run starts the schedule and blocks until ctx is done, then waits for a running
// pass to finish.
func (c *Cleanup) Run(ctx context.Context) error {
	c.cron.Start()
	logger.Log.Info("Cleanup scheduler started")

	<-ctx.Done()
	<-c.cron.Stop().Done()
	logger.Log.Info("Cleanup scheduler stopped")
	return nil
}
