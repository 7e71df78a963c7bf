package database

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connector hands out a process-wide *mongo.Database, connecting at most once.
// Concurrent first callers wait on the same in-flight attempt instead of racing
// to open duplicate connections; a failed attempt is cleared so the next caller
// retries rather than being stuck with a dead handle.
type Connector struct {
	uri      string
	database string

	mu   sync.Mutex
	db   *mongo.Database
	conn *mongo.Client
}

func NewConnector(uri, database string) *Connector {
	return &Connector{uri: uri, database: database}
}

// Get returns the shared database handle, establishing the connection on first
// use. Connection errors surface to the triggering request.
func (c *Connector) Get(ctx context.Context) (*mongo.Database, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(c.uri).
		SetMaxPoolSize(10).
		SetServerSelectionTimeout(5 * time.Second).
		SetConnectTimeout(10 * time.Second).
		SetSocketTimeout(45 * time.Second)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	db := client.Database(c.database)
	if err := ensureIndexes(connectCtx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Println("Successfully connected to MongoDB!")
	c.conn = client
	c.db = db
	return c.db, nil
}

// collectionIndexes declares the unique constraints the handlers rely on.
// Duplicate-key translation to 409 only works once these exist.
func collectionIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "googleId", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
			{Keys: bson.D{{Key: "firebaseUid", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		},
		"providers": {
			{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		},
	}
}

// ensureIndexes builds the unique indexes on first connect. CreateMany is a
// no-op for indexes that already exist.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, indexes := range collectionIndexes() {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes for %s: %w", coll, err)
		}
	}
	return nil
}

// Close disconnects the underlying client if a connection was established.
func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Disconnect(ctx)
	c.conn = nil
	c.db = nil
	return err
}
