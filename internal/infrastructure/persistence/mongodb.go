package persistence

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSettings describes how to reach the journal database
type MongoSettings struct {
	URI      string
	Database string
	Username string
	Password string
	Timeout  time.Duration
}

// NewMongoClient connects, pings and returns the client with its database
func NewMongoClient(ctx context.Context, settings MongoSettings) (*mongo.Client, *mongo.Database, error) {
	clientOptions := options.Client().ApplyURI(settings.URI)

	if settings.Username != "" && settings.Password != "" {
		clientOptions.SetAuth(options.Credential{
			Username: settings.Username,
			Password: settings.Password,
		})
	}

	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, client.Database(settings.Database), nil
}
