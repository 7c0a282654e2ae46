package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCleaner struct {
	calls int
	n     int64
	err   error
}

func (f *fakeCleaner) DeleteExpiredOffers(context.Context) (int64, error) {
	f.calls++
	return f.n, f.err
}

func (f *fakeCleaner) DeleteExpiredNotifications(context.Context) (int64, error) {
	f.calls++
	return f.n, f.err
}

func TestRunOnce(t *testing.T) {
	offers := &fakeCleaner{n: 2}
	notifications := &fakeCleaner{n: 5}

	c, err := NewCleanup("@hourly", offers, notifications, time.Minute)
	require.NoError(t, err)

	require.NoError(t, c.RunOnce(context.Background()))
	assert.Equal(t, 1, offers.calls)
	assert.Equal(t, 1, notifications.calls)
}

func TestRunOnceKeepsGoingAfterFailure(t *testing.T) {
	offers := &fakeCleaner{err: errors.New("boom")}
	notifications := &fakeCleaner{}

	c, err := NewCleanup("@hourly", offers, notifications, time.Minute)
	require.NoError(t, err)

	err = c.RunOnce(context.Background())
	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, 1, notifications.calls)
}

func TestNewCleanupRejectsBadSchedule(t *testing.T) {
	_, err := NewCleanup("every tuesday", &fakeCleaner{}, &fakeCleaner{}, time.Minute)
	assert.Error(t, err)
}

func TestRunStopsWithContext(t *testing.T) {
	c, err := NewCleanup("@hourly", &fakeCleaner{}, &fakeCleaner{}, time.Minute)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
