package mongo

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DB is an explicitly constructed connection handle owned by the process
// lifecycle. Connect and Close are idempotent; there is no package-level
// client cache.
type DB struct {
	mu     sync.Mutex
	uri    string
	name   string
	client *mongo.Client
}

func New(uri, databaseName string) *DB {
	return &DB{uri: uri, name: databaseName}
}

// Connect establishes the client connection and verifies it with a ping.
// Calling Connect on an already connected handle is a no-op.
func (d *DB) Connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client != nil {
		return nil
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	clientOptions := options.Client().ApplyURI(d.uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	d.client = client
	return nil
}

// Close disconnects the client. Safe to call more than once.
func (d *DB) Close(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client == nil {
		return nil
	}

	err := d.client.Disconnect(ctx)
	d.client = nil
	return err
}

func (d *DB) Ping(ctx context.Context) error {
	d.mu.Lock()
	client := d.client
	d.mu.Unlock()

	if client == nil {
		return fmt.Errorf("mongo: not connected")
	}
	return client.Ping(ctx, nil)
}

func (d *DB) Collection(name string) *mongo.Collection {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client == nil {
		panic("mongo: Collection called before Connect")
	}
	return d.client.Database(d.name).Collection(name)
}
