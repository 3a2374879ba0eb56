package router

import (
	"context"

	"github.com/kadoshsoftwares/quickcart-api/pkg/models"
)

// ProductStore is the persistence collaborator for product documents.
type ProductStore interface {
	Insert(ctx context.Context, product *models.Product) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	ListBySeller(ctx context.Context, userID string) ([]models.Product, error)
}

// UserStore is the persistence and authorization collaborator for users.
type UserStore interface {
	Get(ctx context.Context, userID string) (*models.User, error)
	IsSeller(ctx context.Context, userID string) (bool, error)
	ReplaceCart(ctx context.Context, userID string, cart models.CartItems) error
}

// CatalogCache caches the full product list. A nil cache disables caching.
type CatalogCache interface {
	GetProductList(ctx context.Context) ([]models.Product, error)
	SetProductList(ctx context.Context, products []models.Product) error
	InvalidateProductList(ctx context.Context) error
}

// Pinger verifies database liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Response bodies keep the storefront's {success, ...} envelope so
// existing clients can keep branching on the success flag.

type ProductListResponse struct {
	Success  bool             `json:"success"`
	Products []models.Product `json:"products"`
}

type UserDataResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

type AddProductResponse struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	NewProduct *models.Product `json:"newProduct"`
}

// UpdateCartRequest accepts an empty map: clearing the cart is a valid
// wholesale replace.
type UpdateCartRequest struct {
	CartData models.CartItems `json:"cartData"`
}
