package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// One client serves both the vending machine and cart collections. The pool
// is sized for many short point reads (machine browse, cart fetch), not long
// cursors; writes are retried since stock mutations are conditional anyway.
const (
	mongoConnectTimeout   = 10 * time.Second
	mongoSelectionTimeout = 5 * time.Second
	mongoMaxPoolSize      = 64
	mongoMinPoolSize      = 4
)

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(mongoConnectTimeout).
		SetServerSelectionTimeout(mongoSelectionTimeout).
		SetMaxPoolSize(mongoMaxPoolSize).
		SetMinPoolSize(mongoMinPoolSize).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	// Fail startup fast when the server is unreachable instead of letting
	// the first request discover it.
	pingCtx, cancel := context.WithTimeout(ctx, mongoSelectionTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}
