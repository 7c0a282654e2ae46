package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Marketplace_Hub/internal/config"
	"github.com/Dias221467/Marketplace_Hub/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connection is an open MongoDB client and the database the service works in.
type Connection struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// ConnectDB opens the client and pings the primary before returning.
func ConnectDB(ctx context.Context, cfg *config.Config) (*Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Log.WithField("db", cfg.DBName).Info("Connected to MongoDB")
	return &Connection{Client: client, DB: client.Database(cfg.DBName)}, nil
}

// Ping is used by the health check.
func (c *Connection) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx, readpref.Primary())
}

func (c *Connection) Close(ctx context.Context) error {
	return c.Client.Disconnect(ctx)
}
