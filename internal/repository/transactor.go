package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Transactor runs a group of writes as one unit. Transactions need a replica set;
// with them disabled the writes run in order and stop at the first error.
type Transactor struct {
	client  *mongo.Client
	enabled bool
}

func NewTransactor(client *mongo.Client, enabled bool) *Transactor {
	return &Transactor{client: client, enabled: enabled}
}

// WithTransaction calls fn with a context bound to a session transaction. The driver
// may call fn again on transient transaction errors.
func (t *Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
