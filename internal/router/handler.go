package router

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/kadoshsoftwares/quickcart-api/pkg/global"
	"github.com/kadoshsoftwares/quickcart-api/pkg/models"
	"github.com/kadoshsoftwares/quickcart-api/pkg/storage"
)

// Handler carries the storefront's collaborators. Everything is injected;
// the router holds no package-level state.
type Handler struct {
	Products ProductStore
	Users    UserStore
	Uploader storage.Uploader
	Cache    CatalogCache
	DB       Pinger
}

func NewHandler(products ProductStore, users UserStore, uploader storage.Uploader, cache CatalogCache, db Pinger) *Handler {
	return &Handler{
		Products: products,
		Users:    users,
		Uploader: uploader,
		Cache:    cache,
		DB:       db,
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	if h.DB != nil {
		if err := h.DB.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Database connection failed", nil))
			return
		}
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK", "database": "Connected"}))
}

// ListProducts returns the full catalog snapshot, cache-aside through Redis.
func (h *Handler) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if h.Cache != nil {
		if products, err := h.Cache.GetProductList(ctx); err == nil {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, ProductListResponse{Success: true, Products: products})
			return
		}
	}

	products, err := h.Products.List(ctx)
	if err != nil {
		log.Printf("Error fetching products from MongoDB: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get products", nil))
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	if h.Cache != nil {
		if cacheErr := h.Cache.SetProductList(ctx, products); cacheErr != nil {
			log.Printf("Warning: Failed to cache product list in Redis: %v", cacheErr)
		}
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, ProductListResponse{Success: true, Products: products})
}

// ListSellerProducts returns the authenticated seller's own products.
func (h *Handler) ListSellerProducts(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString(userIDKey)

	isSeller, err := h.Users.IsSeller(ctx, userID)
	if err != nil {
		log.Printf("Error checking seller role for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to verify seller status", nil))
		return
	}
	if !isSeller {
		c.JSON(http.StatusForbidden, global.ErrorResponse("Not authorized", nil))
		return
	}

	products, err := h.Products.ListBySeller(ctx, userID)
	if err != nil {
		log.Printf("Error fetching seller products for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get products", nil))
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, ProductListResponse{Success: true, Products: products})
}

// AddProduct is the product ingestion endpoint. The seller check runs
// before any other work; uploads fan out concurrently and the request
// fails as a whole if any single upload fails. No compensating cleanup
// of already-uploaded images is attempted.
func (h *Handler) AddProduct(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString(userIDKey)

	isSeller, err := h.Users.IsSeller(ctx, userID)
	if err != nil {
		log.Printf("Error checking seller role for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to verify seller status", nil))
		return
	}
	if !isSeller {
		c.JSON(http.StatusForbidden, global.ErrorResponse("Not authorized", nil))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid form data", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "multipart_parse_error"},
		}))
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("No files uploaded", []global.ValidationError{
			{Field: "images", Message: "at least one image is required", Code: "required"},
		}))
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid price", []global.ValidationError{
			{Field: "price", Message: "price must be a number", Code: "invalid_format"},
		}))
		return
	}
	offerPrice, err := strconv.ParseFloat(c.PostForm("offerPrice"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid offer price", []global.ValidationError{
			{Field: "offerPrice", Message: "offerPrice must be a number", Code: "invalid_format"},
		}))
		return
	}

	// Concurrent fan-out; urls[i] stays aligned with files[i].
	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, fileHeader := range files {
		i, fileHeader := i, fileHeader
		g.Go(func() error {
			file, err := fileHeader.Open()
			if err != nil {
				return err
			}
			defer file.Close()

			url, err := h.Uploader.Upload(gctx, fileHeader.Filename, file)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("Error uploading product images for %s: %v", userID, err)
		c.JSON(http.StatusBadGateway, global.ErrorResponse(err.Error(), nil))
		return
	}

	req := models.NewProductRequest{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Price:       price,
		OfferPrice:  offerPrice,
	}

	newProduct, err := h.Products.Insert(ctx, req.ToProduct(userID, urls))
	if err != nil {
		log.Printf("Error creating product for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create product", nil))
		return
	}

	if h.Cache != nil {
		if cacheErr := h.Cache.InvalidateProductList(ctx); cacheErr != nil {
			log.Printf("Warning: Failed to invalidate product list cache: %v", cacheErr)
		}
	}

	c.JSON(http.StatusOK, AddProductResponse{
		Success:    true,
		Message:    "Upload successful",
		NewProduct: newProduct,
	})
}

func (h *Handler) GetUserData(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString(userIDKey)

	user, err := h.Users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("User not found", nil))
			return
		}
		log.Printf("Error fetching user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get user data", nil))
		return
	}

	c.JSON(http.StatusOK, UserDataResponse{Success: true, User: user})
}

// UpdateCart replaces the user's persisted cart wholesale. Non-positive
// quantities are stripped so the cart invariant holds at rest.
func (h *Handler) UpdateCart(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString(userIDKey)

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "cartData", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	if err := h.Users.ReplaceCart(ctx, userID, req.CartData.Sanitized()); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("User not found", nil))
			return
		}
		log.Printf("Error updating cart for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.APIResponse{Success: true, Message: "Cart updated"})
}
