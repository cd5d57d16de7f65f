package cartControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bilal-Yasir34/apex-store/cart"
)

func newTestRouter(sid string) (*gin.Engine, *cart.Service) {
	gin.SetMode(gin.TestMode)
	carts := cart.NewService(cart.NewMemoryPersister())

	r := gin.New()
	if sid != "" {
		r.Use(func(c *gin.Context) {
			c.Set("user_id", sid)
			c.Next()
		})
	}

	r.GET("/cart", GetCart(carts))
	r.POST("/cart", AddCartItem(carts))
	r.PUT("/cart/:product_id", UpdateCartQuantity(carts))
	r.DELETE("/cart/:product_id", DeleteCartItem(carts))
	r.DELETE("/cart", ClearCart(carts))
	return r, carts
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type cartResponse struct {
	Items []struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Quantity float64 `json:"quantity"`
	} `json:"items"`
	Total     float64 `json:"total"`
	ItemCount float64 `json:"item_count"`
}

func TestAddCartItem_NewAndRepeat(t *testing.T) {
	r, _ := newTestRouter("sess-1")

	product := map[string]interface{}{"id": 7, "name": "Shawl", "price": 45}

	rec := doJSON(t, r, "POST", "/cart", product)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "7", resp.Items[0].ID)
	assert.Equal(t, float64(1), resp.Items[0].Quantity)

	// Same product again merges instead of adding a second line.
	rec = doJSON(t, r, "POST", "/cart", product)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, float64(2), resp.Items[0].Quantity)
	assert.Equal(t, float64(90), resp.Total)
	assert.Equal(t, float64(2), resp.ItemCount)
}

func TestAddCartItem_InvalidBody(t *testing.T) {
	r, _ := newTestRouter("sess-1")

	req := httptest.NewRequest("POST", "/cart", bytes.NewBufferString("not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateCartQuantity_Clamps(t *testing.T) {
	r, _ := newTestRouter("sess-1")

	doJSON(t, r, "POST", "/cart", map[string]interface{}{"id": "p1", "name": "Soap", "price": 10})

	rec := doJSON(t, r, "PUT", "/cart/p1", gin.H{"quantity": 3.9})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, float64(3), resp.Items[0].Quantity)

	rec = doJSON(t, r, "PUT", "/cart/p1", gin.H{"quantity": -5})
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp.Items[0].Quantity)
}

func TestDeleteCartItem(t *testing.T) {
	r, _ := newTestRouter("sess-1")

	doJSON(t, r, "POST", "/cart", map[string]interface{}{"id": "p1", "name": "Soap", "price": 10})
	doJSON(t, r, "POST", "/cart", map[string]interface{}{"id": "p2", "name": "Oil", "price": 20})

	rec := doJSON(t, r, "DELETE", "/cart/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "p2", resp.Items[0].ID)
}

func TestClearCart(t *testing.T) {
	r, _ := newTestRouter("sess-1")

	doJSON(t, r, "POST", "/cart", map[string]interface{}{"id": "p1", "name": "Soap", "price": 10})
	rec := doJSON(t, r, "DELETE", "/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, "GET", "/cart", nil)
	var resp cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
	assert.Equal(t, float64(0), resp.Total)
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	carts := cart.NewService(cart.NewMemoryPersister())

	router := func(sid string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Set("user_id", sid)
			c.Next()
		})
		r.GET("/cart", GetCart(carts))
		r.POST("/cart", AddCartItem(carts))
		return r
	}

	alice := router("alice")
	bob := router("bob")

	doJSON(t, alice, "POST", "/cart", map[string]interface{}{"id": "p1", "name": "Soap", "price": 10})

	rec := doJSON(t, bob, "GET", "/cart", nil)
	var resp cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestCart_MissingSession(t *testing.T) {
	r, _ := newTestRouter("")

	rec := doJSON(t, r, "GET", "/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
