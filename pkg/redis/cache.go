// Package redis provides a cache-aside layer for the product catalog.
// The catalog is read far more often than it changes, so the full list
// is cached as one JSON blob and invalidated on every product creation.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisclient "github.com/redis/go-redis/v9"

	"github.com/kadoshsoftwares/quickcart-api/pkg/models"
)

const (
	productListKey = "products:list"
	productListTTL = 24 * time.Hour
)

type Cache struct {
	client *redisclient.Client
}

// New builds a Cache on a single shared client. The connection is lazy;
// the first command dials.
func New(addr, password string) *Cache {
	return &Cache{
		client: redisclient.NewClient(&redisclient.Options{
			Addr:     addr,
			Password: password,
			DB:       0,
			Protocol: 2,
		}),
	}
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) GetProductList(ctx context.Context) ([]models.Product, error) {
	listJSON, err := c.client.Get(ctx, productListKey).Result()
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(listJSON), &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached product list: %w", err)
	}

	return products, nil
}

func (c *Cache) SetProductList(ctx context.Context, products []models.Product) error {
	listJSON, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal product list: %w", err)
	}

	if err := c.client.Set(ctx, productListKey, listJSON, productListTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache product list: %w", err)
	}

	return nil
}

// InvalidateProductList drops the cached catalog so the next list request
// reads through to MongoDB.
func (c *Cache) InvalidateProductList(ctx context.Context) error {
	if err := c.client.Del(ctx, productListKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate product list cache: %w", err)
	}
	return nil
}
