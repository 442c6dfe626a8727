// Package catalog answers one question for the order ledger: what does a
// product cost right now.
package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrUnknownProduct = errors.New("unknown product")

type Catalog interface {
	UnitPrice(ctx context.Context, productID string) (decimal.Decimal, error)
}

type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Static is an in-memory catalog.
type Static struct {
	products map[string]Product
}

func NewStatic(products ...Product) *Static {
	s := &Static{products: make(map[string]Product, len(products))}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

// FarmBoxes is the storefront's product line.
func FarmBoxes() *Static {
	return NewStatic(
		Product{ID: "1", Name: "Fresh Vegetable Box", Price: decimal.NewFromInt(4500)},
		Product{ID: "2", Name: "Fruit Delight Box", Price: decimal.NewFromInt(5500)},
		Product{ID: "3", Name: "Mixed Farm Box", Price: decimal.NewFromInt(8500)},
	)
}

func (s *Static) UnitPrice(_ context.Context, productID string) (decimal.Decimal, error) {
	p, ok := s.products[productID]
	if !ok {
		return decimal.Zero, ErrUnknownProduct
	}
	return p.Price, nil
}
