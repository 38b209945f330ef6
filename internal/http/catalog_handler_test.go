package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aadil-Raja/ecommerce-knives/internal/backend"
	"github.com/Aadil-Raja/ecommerce-knives/internal/listing"
)

func fakeShopBackend(t *testing.T) *backend.Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/categories", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "Chef Knives", "slug": "chef-knives"},
		})
	})
	mux.HandleFunc("GET /api/categories/chef-knives/products", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"category": map[string]any{"id": 1, "name": "Chef Knives", "slug": "chef-knives"},
			"products": []map[string]any{
				{"id": 10, "name": "Santoku", "price": 3200},
				{"id": 11, "name": "Gyuto", "price": 5400},
			},
			"pagination": map[string]any{"page": 1, "total_pages": 3, "total": 25, "has_more": true},
		})
	})
	mux.HandleFunc("GET /api/products/10", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 10, "name": "Santoku", "price": 3200})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return backend.NewClient(server.URL+"/api", 5*time.Second, nil)
}

func newCatalogHandler(t *testing.T) *CatalogHandler {
	t.Helper()
	client := fakeShopBackend(t)
	flow := listing.NewFlow(client, listing.ModeReplace, 10, nil, nil, nil)
	return NewCatalogHandler(client, flow, 5*time.Second)
}

func TestGetCategories(t *testing.T) {
	sut := newCatalogHandler(t)

	recorder := httptest.NewRecorder()
	sut.GetCategories(recorder, httptest.NewRequest("GET", "/categories", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var response []map[string]any
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	require.Len(t, response, 1)
	assert.Equal(t, "chef-knives", response[0]["slug"])
}

func TestGetCategoryProducts(t *testing.T) {
	sut := newCatalogHandler(t)

	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("GET", "/categories/chef-knives/products", nil), "slug", "chef-knives")
	sut.GetCategoryProducts(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response ListingResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.True(t, response.Ready)
	assert.Len(t, response.Products, 2)
	assert.Equal(t, "Chef Knives", response.Category.Name)
	assert.Equal(t, []int{1, 2, 3}, response.Pages)
}

func TestGetCategoryProducts_BackendDown(t *testing.T) {
	client := backend.NewClient("http://127.0.0.1:1/api", time.Second, nil)
	flow := listing.NewFlow(client, listing.ModeReplace, 10, nil, nil, nil)
	sut := NewCatalogHandler(client, flow, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("GET", "/categories/chef-knives/products", nil), "slug", "chef-knives")
	sut.GetCategoryProducts(recorder, request)

	// The flow absorbs the failure; the view still renders, just empty.
	require.Equal(t, http.StatusOK, recorder.Code)

	var response ListingResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.True(t, response.Ready)
	assert.Empty(t, response.Products)
}

func TestGetProduct_Success(t *testing.T) {
	sut := newCatalogHandler(t)

	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("GET", "/products/10", nil), "id", "10")
	sut.GetProduct(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetProduct_InvalidID(t *testing.T) {
	sut := newCatalogHandler(t)

	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("GET", "/products/abc", nil), "id", "abc")
	sut.GetProduct(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
