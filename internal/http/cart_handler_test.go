package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aadil-Raja/ecommerce-knives/internal/backend"
	"github.com/Aadil-Raja/ecommerce-knives/internal/cart"
	"github.com/Aadil-Raja/ecommerce-knives/internal/domain"
	"github.com/Aadil-Raja/ecommerce-knives/internal/storage"
)

type productGetterMock struct {
	product *domain.Product
	err     error
}

func (m productGetterMock) GetProduct(_ context.Context, _ int64) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.product, nil
}

type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Load(_ context.Context, key string) ([]byte, error) {
	blob, ok := m.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return blob, nil
}

func (m *memStore) Save(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func newCartHandler(t *testing.T, products ProductGetter) (*CartHandler, *cart.Store) {
	t.Helper()
	cartStore := cart.New(context.Background(), newMemStore(), nil)
	return NewCartHandler(cartStore, products, 5*time.Second), cartStore
}

func decodeCart(t *testing.T, recorder *httptest.ResponseRecorder) domain.Cart {
	t.Helper()
	var response domain.Cart
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	return response
}

func TestGetCart_Empty(t *testing.T) {
	sut, _ := newCartHandler(t, productGetterMock{})

	recorder := httptest.NewRecorder()
	sut.GetCart(recorder, httptest.NewRequest("GET", "/", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	response := decodeCart(t, recorder)
	assert.Empty(t, response.Items)
	assert.Zero(t, response.TotalItems)
}

func TestAddItem_Success(t *testing.T) {
	sut, _ := newCartHandler(t, productGetterMock{
		product: &domain.Product{ID: 3, Name: "Cleaver", Price: 2500, Stock: 4, ImageName: "cleaver.webp"},
	})

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: 3, Quantity: 2})
	recorder := httptest.NewRecorder()
	sut.AddItem(recorder, httptest.NewRequest("POST", "/items", bytes.NewReader(body)))

	require.Equal(t, http.StatusCreated, recorder.Code)
	response := decodeCart(t, recorder)
	require.Len(t, response.Items, 1)
	assert.Equal(t, "Cleaver", response.Items[0].Name)
	assert.Equal(t, 2, response.Items[0].Quantity)
	assert.Equal(t, 2, response.TotalItems)
	assert.Equal(t, 5000.0, response.TotalPrice)
}

func TestAddItem_InvalidBody(t *testing.T) {
	sut, _ := newCartHandler(t, productGetterMock{})

	recorder := httptest.NewRecorder()
	sut.AddItem(recorder, httptest.NewRequest("POST", "/items", bytes.NewReader([]byte("{not json"))))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAddItem_ProductNotFound(t *testing.T) {
	sut, _ := newCartHandler(t, productGetterMock{
		err: &backend.APIError{StatusCode: http.StatusNotFound, Message: "product not found"},
	})

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: 99, Quantity: 1})
	recorder := httptest.NewRecorder()
	sut.AddItem(recorder, httptest.NewRequest("POST", "/items", bytes.NewReader(body)))

	require.Equal(t, http.StatusNotFound, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "not_found", response.Code)
}

func TestAddItem_OutOfStock(t *testing.T) {
	sut, _ := newCartHandler(t, productGetterMock{
		product: &domain.Product{ID: 3, Name: "Cleaver", Price: 2500, Stock: 0},
	})

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: 3, Quantity: 1})
	recorder := httptest.NewRecorder()
	sut.AddItem(recorder, httptest.NewRequest("POST", "/items", bytes.NewReader(body)))

	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestUpdateQuantity_Success(t *testing.T) {
	sut, cartStore := newCartHandler(t, productGetterMock{})
	cartStore.AddToCart(context.Background(), domain.Product{ID: 3, Name: "Cleaver", Price: 2500, Stock: 4}, 2)

	body, _ := json.Marshal(UpdateQuantityRequestDTO{Quantity: 5})
	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("PUT", "/items/3", bytes.NewReader(body)), "product_id", "3")
	sut.UpdateQuantity(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	response := decodeCart(t, recorder)
	require.Len(t, response.Items, 1)
	assert.Equal(t, 5, response.Items[0].Quantity)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	sut, cartStore := newCartHandler(t, productGetterMock{})
	cartStore.AddToCart(context.Background(), domain.Product{ID: 3, Name: "Cleaver", Price: 2500, Stock: 4}, 2)

	body, _ := json.Marshal(UpdateQuantityRequestDTO{Quantity: 0})
	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("PUT", "/items/3", bytes.NewReader(body)), "product_id", "3")
	sut.UpdateQuantity(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, decodeCart(t, recorder).Items)
}

func TestRemoveItem_InvalidID(t *testing.T) {
	sut, _ := newCartHandler(t, productGetterMock{})

	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest("DELETE", "/items/zero", nil), "product_id", "zero")
	sut.RemoveItem(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestClearCart(t *testing.T) {
	sut, cartStore := newCartHandler(t, productGetterMock{})
	cartStore.AddToCart(context.Background(), domain.Product{ID: 3, Name: "Cleaver", Price: 2500, Stock: 4}, 2)

	recorder := httptest.NewRecorder()
	sut.ClearCart(recorder, httptest.NewRequest("DELETE", "/", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	response := decodeCart(t, recorder)
	assert.Empty(t, response.Items)
	assert.Zero(t, response.TotalPrice)
}
