package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(srv *httptest.Server) *Client {
	c := NewClient(srv.URL, "secret", 5*time.Second, zap.NewNop())
	c.maxElapsed = 10 * time.Second
	return c
}

func TestGetProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id":"pizza","name":"Pizza","price":20,"params":{"crust":{"label":"Crust","options":{}}}}]`))
	}))
	defer srv.Close()

	products, err := newTestClient(srv).GetProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "pizza", products[0].ID)
	assert.Equal(t, "20", products[0].Price.String())
	assert.JSONEq(t, `{"crust":{"label":"Crust","options":{}}}`, string(products[0].Params))
}

func TestGetProduct_NotFound(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetProduct(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), calls.Load(), "404 is not retried")
}

func TestGetProduct_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		assert.Equal(t, "/api/products/salad", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"salad","name":"Salad","price":"9.50"}`))
	}))
	defer srv.Close()

	p, err := newTestClient(srv).GetProduct(context.Background(), "salad")
	require.NoError(t, err)
	assert.Equal(t, "Salad", p.Name)
	assert.Equal(t, "9.5", p.Price.String())
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetProducts_BadRequestNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetProducts(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
