package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kadoshsoftwares/quickcart-api/pkg/models"
)

// StorefrontAPI is the remote source the state container loads from.
type StorefrontAPI interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
	FetchUserData(ctx context.Context, token string) (*models.User, error)
	UpdateCart(ctx context.Context, token string, cart models.CartItems) error
}

// Client talks to the storefront HTTP API. All endpoints answer with the
// uniform {success, message?, ...} envelope.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type productListEnvelope struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Products []models.Product `json:"products"`
}

type userDataEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

type messageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Client) FetchProducts(ctx context.Context) ([]models.Product, error) {
	var envelope productListEnvelope
	if err := c.get(ctx, "/api/product/list", "", &envelope); err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, remoteError(envelope.Message)
	}
	return envelope.Products, nil
}

func (c *Client) FetchUserData(ctx context.Context, token string) (*models.User, error) {
	var envelope userDataEnvelope
	if err := c.get(ctx, "/api/user/data", token, &envelope); err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, remoteError(envelope.Message)
	}
	if envelope.User == nil {
		return nil, errors.New("response carried no user")
	}
	return envelope.User, nil
}

func (c *Client) UpdateCart(ctx context.Context, token string, cart models.CartItems) error {
	body, err := json.Marshal(map[string]models.CartItems{"cartData": cart})
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/cart/update", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	var envelope messageEnvelope
	if err := c.do(req, &envelope); err != nil {
		return err
	}
	if !envelope.Success {
		return remoteError(envelope.Message)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path, token string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}

func remoteError(message string) error {
	if message == "" {
		message = "request failed"
	}
	return errors.New(message)
}
