package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Single-field index on category for storefront filtering
	{
		CollectionName: productsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		},
	},
	// Seller dashboard lists products by owner
	{
		CollectionName: productsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("idx_user_id"),
		},
	},
	// Newest-first catalog listing
	{
		CollectionName: productsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "date", Value: -1}},
			Options: options.Index().SetName("idx_date"),
		},
	},
}

// EnsureIndexes creates the required indexes on startup. CreateOne is a
// no-op for indexes that already exist with the same definition.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	for _, cfg := range requiredIndexes {
		collection := d.Collection(cfg.CollectionName)
		if _, err := collection.Indexes().CreateOne(ctx, cfg.IndexModel); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", cfg.CollectionName, err)
		}
	}
	return nil
}
