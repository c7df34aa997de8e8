package menu

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t)
	h := NewHandler(svc)

	r := gin.New()
	r.GET("/menu", h.List)
	r.GET("/menu/:id", h.Get)
	r.POST("/inventory/:id/restock", h.Restock)
	r.PUT("/inventory/:id/stock", h.SetStock)
	r.GET("/inventory/low-stock", h.LowStock)
	return r
}

func doJSON(r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListMenu(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(r, http.MethodGet, "/menu", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []View `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 12)
	assert.Equal(t, "Nasi Goreng", resp.Items[0].Name)
	assert.Equal(t, "25000", resp.Items[0].Price.String())
}

func TestGetMenuItem(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(r, http.MethodGet, "/menu/7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hot Kopi Hitam")

	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodGet, "/menu/77", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/menu/abc", nil).Code)
}

func TestRestockHandler(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(r, http.MethodPost, "/inventory/3/restock", map[string]int{"quantity": 10})
	require.Equal(t, http.StatusOK, w.Code)

	var view View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 50, view.Stock)

	w = doJSON(r, http.MethodPost, "/inventory/3/restock", map[string]int{"quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetStockHandler(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(r, http.MethodPut, "/inventory/4/stock", map[string]int{"stock": 2})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPut, "/inventory/4/stock", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/inventory/low-stock", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Threshold int    `json:"threshold"`
		Items     []View `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.Threshold)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Soto Ayam", resp.Items[0].Name)
}
