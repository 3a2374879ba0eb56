package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/kadoshsoftwares/quickcart-api/pkg/models"
)

const productsCollection = "products"

// ProductStore persists product documents in the products collection.
type ProductStore struct {
	db *DB
}

func NewProductStore(db *DB) *ProductStore {
	return &ProductStore{db: db}
}

// Insert stores a new product and returns it with the server-assigned id.
func (s *ProductStore) Insert(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID.IsZero() {
		product.ID = bson.NewObjectID()
	}

	collection := s.db.Collection(productsCollection)
	if _, err := collection.InsertOne(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return product, nil
}

// List returns the full catalog snapshot, newest first.
func (s *ProductStore) List(ctx context.Context) ([]models.Product, error) {
	collection := s.db.Collection(productsCollection)

	sortByDate := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := collection.Find(ctx, bson.D{}, sortByDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// ListBySeller returns the products owned by one seller.
func (s *ProductStore) ListBySeller(ctx context.Context, userID string) ([]models.Product, error) {
	collection := s.db.Collection(productsCollection)

	cursor, err := collection.Find(ctx, bson.D{{Key: "userId", Value: userID}})
	if err != nil {
		return nil, fmt.Errorf("failed to query seller products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode seller products: %w", err)
	}

	return products, nil
}
