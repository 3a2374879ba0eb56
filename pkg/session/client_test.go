package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadoshsoftwares/quickcart-api/pkg/models"
	"github.com/kadoshsoftwares/quickcart-api/pkg/session"
)

func TestClientFetchUserData(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/user/data", r.URL.Path)
			require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"user": map[string]interface{}{
					"_id":            "user_1",
					"cartItems":      map[string]int{"A": 3},
					"publicMetadata": map[string]string{"role": "seller"},
				},
			})
		}))
		defer server.Close()

		client := session.NewClient(server.URL)
		user, err := client.FetchUserData(context.Background(), "tok-123")

		require.NoError(t, err)
		assert.Equal(t, "user_1", user.ID)
		assert.Equal(t, models.CartItems{"A": 3}, user.CartItems)
		assert.True(t, user.IsSeller())
	})

	t.Run("FailureCarriesMessage", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"message": "User not found",
			})
		}))
		defer server.Close()

		client := session.NewClient(server.URL)
		_, err := client.FetchUserData(context.Background(), "tok-123")

		require.Error(t, err)
		assert.EqualError(t, err, "User not found")
	})
}

func TestClientFetchProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/product/list", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"products": []map[string]interface{}{
				{"name": "Widget", "offerPrice": 9.99},
			},
		})
	}))
	defer server.Close()

	client := session.NewClient(server.URL)
	products, err := client.FetchProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Widget", products[0].Name)
	assert.InDelta(t, 9.99, products[0].OfferPrice, 1e-9)
}

func TestClientUpdateCart(t *testing.T) {
	var received struct {
		CartData models.CartItems `json:"cartData"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/cart/update", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	defer server.Close()

	client := session.NewClient(server.URL)
	err := client.UpdateCart(context.Background(), "tok", models.CartItems{"A": 2})

	require.NoError(t, err)
	assert.Equal(t, models.CartItems{"A": 2}, received.CartData)
}
