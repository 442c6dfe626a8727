package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFarmBoxes_UnitPrice(t *testing.T) {
	c := FarmBoxes()
	ctx := context.Background()

	price, err := c.UnitPrice(ctx, "1")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(4500)))

	_, err = c.UnitPrice(ctx, "42")
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func newFakeES(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.HasSuffix(r.URL.Path, "/_doc/1"):
			_, _ = w.Write([]byte(`{"_index":"product","_id":"1","found":true,"_source":{"name":"Fresh Vegetable Box","price":4500,"is_active":true}}`))
		case strings.HasSuffix(r.URL.Path, "/_doc/2"):
			_, _ = w.Write([]byte(`{"_index":"product","_id":"2","found":true,"_source":{"name":"Fruit Delight Box","price":"5500.50","is_active":false}}`))
		case strings.HasSuffix(r.URL.Path, "/_doc/boom"):
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"shard failure"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"_index":"product","_id":"x","found":false}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestESCatalog_UnitPrice(t *testing.T) {
	srv := newFakeES(t)
	c, err := NewES(ESConfig{URL: srv.URL})
	require.NoError(t, err)
	ctx := context.Background()

	price, err := c.UnitPrice(ctx, "1")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(4500)))

	_, err = c.UnitPrice(ctx, "2")
	assert.ErrorIs(t, err, ErrUnknownProduct, "inactive products cannot be ordered")

	_, err = c.UnitPrice(ctx, "404")
	assert.ErrorIs(t, err, ErrUnknownProduct)

	_, err = c.UnitPrice(ctx, "boom")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownProduct)
}
