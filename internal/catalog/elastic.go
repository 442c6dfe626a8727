package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/shopspring/decimal"
)

type ESConfig struct {
	URL      string
	User     string
	Password string
	Index    string
}

// ESCatalog reads product prices from the search index the storefront
// already maintains.
type ESCatalog struct {
	client *elasticsearch.Client
	index  string
}

func NewES(cfg ESConfig) (*ESCatalog, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.User,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	index := cfg.Index
	if index == "" {
		index = "product"
	}
	return &ESCatalog{client: client, index: index}, nil
}

type getResponse struct {
	Found  bool `json:"found"`
	Source struct {
		Price    decimal.Decimal `json:"price"`
		IsActive *bool           `json:"is_active"`
	} `json:"_source"`
}

func (c *ESCatalog) UnitPrice(ctx context.Context, productID string) (decimal.Decimal, error) {
	res, err := c.client.Get(c.index, productID, c.client.Get.WithContext(ctx))
	if err != nil {
		return decimal.Zero, fmt.Errorf("elasticsearch get %s: %w", productID, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return decimal.Zero, ErrUnknownProduct
	}
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return decimal.Zero, fmt.Errorf("elasticsearch get %s: %s: %s", productID, res.Status(), body)
	}

	var doc getResponse
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return decimal.Zero, fmt.Errorf("decode product %s: %w", productID, err)
	}
	if !doc.Found || (doc.Source.IsActive != nil && !*doc.Source.IsActive) {
		return decimal.Zero, ErrUnknownProduct
	}
	return doc.Source.Price, nil
}
