//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/srgmoura/product-manager/internal/testutil"
	"github.com/stretchr/testify/require"
)

// registerTestUser registers a new account and returns its username, email and token.
func registerTestUser(t *testing.T, client *testutil.Client) (username, email, token string) {
	t.Helper()

	username = testutil.RandomUsername("user")
	email = testutil.RandomEmail()

	resp, err := client.POST("/api/v1/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": "password123",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	require.NotEmpty(t, result.Data.Token)

	return username, email, result.Data.Token
}

// createTestProduct creates a product and returns its ID.
// The client must be authenticated as Admin or Manager.
func createTestProduct(t *testing.T, client *testutil.Client, name string, opts ...productOption) string {
	t.Helper()

	payload := map[string]interface{}{
		"name":  name,
		"price": 9.99,
		"stock": 10,
	}

	for _, opt := range opts {
		opt(payload)
	}

	resp, err := client.POST("/api/v1/products", payload)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	return result.Data.ID
}

type productOption func(map[string]interface{})

func withPrice(price float64) productOption {
	return func(m map[string]interface{}) {
		m["price"] = price
	}
}

func withStock(stock int) productOption {
	return func(m map[string]interface{}) {
		m["stock"] = stock
	}
}

func withDescription(description string) productOption {
	return func(m map[string]interface{}) {
		m["description"] = description
	}
}

// deleteProduct removes a product. Does not fail if already deleted.
func deleteProduct(t *testing.T, client *testutil.Client, id string) {
	t.Helper()
	resp, err := client.DELETE("/api/v1/products/" + id)
	if err != nil {
		t.Logf("cleanup warning (product %s): %v", id, err)
		return
	}
	resp.Body.Close()
}
