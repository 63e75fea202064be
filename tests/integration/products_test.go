//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/srgmoura/product-manager/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducts_List_IsPublic(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/api/v1/products")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
}

func TestProducts_Get_IsPublic(t *testing.T) {
	admin := newTestClient(t)
	admin.LoginAsAdmin(t)
	name := testutil.RandomProductName("Widget")
	id := createTestProduct(t, admin, name, withDescription("A fine widget"), withPrice(19.95), withStock(3))
	t.Cleanup(func() { deleteProduct(t, admin, id) })

	anon := newTestClient(t)
	resp, err := anon.GET("/api/v1/products/" + id)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data struct {
			ID          string  `json:"id"`
			Name        string  `json:"name"`
			Description string  `json:"description"`
			Price       float64 `json:"price"`
			Stock       int     `json:"stock"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, id, result.Data.ID)
	assert.Equal(t, name, result.Data.Name)
	assert.Equal(t, "A fine widget", result.Data.Description)
	assert.Equal(t, 19.95, result.Data.Price)
	assert.Equal(t, 3, result.Data.Stock)
}

func TestProducts_Get_NotFound(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/api/v1/products/" + uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProducts_MalformedIDIsNotFound(t *testing.T) {
	// Ids that are not valid UUIDs cannot match any row and must read as
	// 404, not as a server error (public paths get hit by crawlers).
	client := newTestClient(t)

	for _, id := range []string{"favicon.ico", "abc", "123"} {
		resp, err := client.GET("/api/v1/products/" + id)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "id %q", id)
		resp.Body.Close()
	}

	client.LoginAsAdmin(t)

	resp, err := client.PUT("/api/v1/products/abc", map[string]interface{}{
		"name":  testutil.RandomProductName("Malformed"),
		"price": 1.0,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp, err = client.DELETE("/api/v1/products/abc")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProducts_Create_RequiresManagerOrAdmin(t *testing.T) {
	payload := map[string]interface{}{
		"name":  testutil.RandomProductName("Denied"),
		"price": 1.50,
	}

	anon := newTestClient(t)
	resp, err := anon.POST("/api/v1/products", payload)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	user := newTestClient(t)
	user.LoginAsUser(t)
	resp, err = user.POST("/api/v1/products", payload)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestProducts_Create_AsManager(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsManager(t)

	id := createTestProduct(t, client, testutil.RandomProductName("Gadget"))
	assert.NotEmpty(t, id)

	admin := newTestClient(t)
	admin.LoginAsAdmin(t)
	t.Cleanup(func() { deleteProduct(t, admin, id) })
}

func TestProducts_Create_ValidationErrors(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsAdmin(t)

	cases := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"missing name", map[string]interface{}{
			"price": 5.0,
		}},
		{"short name", map[string]interface{}{
			"name":  "ab",
			"price": 5.0,
		}},
		{"zero price", map[string]interface{}{
			"name":  testutil.RandomProductName("Free"),
			"price": 0,
		}},
		{"negative price", map[string]interface{}{
			"name":  testutil.RandomProductName("Refund"),
			"price": -1.0,
		}},
		{"negative stock", map[string]interface{}{
			"name":  testutil.RandomProductName("Void"),
			"price": 5.0,
			"stock": -1,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := client.POST("/api/v1/products", tc.payload)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			resp.Body.Close()
		})
	}
}

func TestProducts_Update(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsManager(t)

	id := createTestProduct(t, client, testutil.RandomProductName("Before"), withStock(1))

	admin := newTestClient(t)
	admin.LoginAsAdmin(t)
	t.Cleanup(func() { deleteProduct(t, admin, id) })

	newName := testutil.RandomProductName("After")
	resp, err := client.PUT("/api/v1/products/"+id, map[string]interface{}{
		"name":        newName,
		"description": "updated",
		"price":       42.00,
		"stock":       7,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data struct {
			Name      string  `json:"name"`
			Price     float64 `json:"price"`
			Stock     int     `json:"stock"`
			UpdatedAt *string `json:"updated_at"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, newName, result.Data.Name)
	assert.Equal(t, 42.00, result.Data.Price)
	assert.Equal(t, 7, result.Data.Stock)
	assert.NotNil(t, result.Data.UpdatedAt)
}

func TestProducts_Update_NotFound(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsManager(t)

	resp, err := client.PUT("/api/v1/products/"+uuid.NewString(), map[string]interface{}{
		"name":  testutil.RandomProductName("Ghost"),
		"price": 1.0,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProducts_Delete_RequiresAdmin(t *testing.T) {
	admin := newTestClient(t)
	admin.LoginAsAdmin(t)
	id := createTestProduct(t, admin, testutil.RandomProductName("Keep"))
	t.Cleanup(func() { deleteProduct(t, admin, id) })

	manager := newTestClient(t)
	manager.LoginAsManager(t)
	resp, err := manager.DELETE("/api/v1/products/" + id)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Still there
	check, err := manager.GET("/api/v1/products/" + id)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, check.StatusCode)
	check.Body.Close()
}

func TestProducts_Delete(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsAdmin(t)

	id := createTestProduct(t, client, testutil.RandomProductName("Gone"))

	resp, err := client.DELETE("/api/v1/products/" + id)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	check, err := client.GET("/api/v1/products/" + id)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, check.StatusCode)
	check.Body.Close()

	again, err := client.DELETE("/api/v1/products/" + id)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, again.StatusCode)
	again.Body.Close()
}

func TestProducts_InvalidTokenRejected(t *testing.T) {
	client := newTestClientWithoutValidation()
	client.Token = "not-a-valid-token"

	resp, err := client.POST("/api/v1/products", map[string]interface{}{
		"name":  testutil.RandomProductName("Nope"),
		"price": 1.0,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
