package store

import (
	"context"
	"errors"

	"product-api/internal/models"
)

// ErrNotFound signals that a single-row lookup matched nothing.
var ErrNotFound = errors.New("product not found")

// Sort orders accepted by FilterProducts. Anything else leaves the
// store's default ordering in place.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// ProductFilter holds the optional predicates of a filtered product read.
// Nil fields are omitted from the query, not defaulted; set fields are
// combined conjunctively.
type ProductFilter struct {
	Category *string
	InStock  *bool
	MinPrice *float64
	MaxPrice *float64
	Sort     string
}

// ProductPatch holds the fields of a partial product update. Nil fields
// are left untouched on the stored row.
type ProductPatch struct {
	Name     *string
	Category *string
	Price    *float64
	InStock  *bool
}

// IsEmpty reports whether the patch names no fields at all.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Category == nil && p.Price == nil && p.InStock == nil
}

// PlacedOrder identifies the rows created by a successful order placement.
type PlacedOrder struct {
	CustomerID  int64
	OrderID     int64
	OrderNumber string
}

// Store is the narrow persistence contract the HTTP handlers depend on.
// The production implementation talks to the hosted Postgres backend;
// tests substitute a fake.
type Store interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (models.Product, error)
	FilterProducts(ctx context.Context, f ProductFilter) ([]models.Product, error)
	SearchProducts(ctx context.Context, name string) ([]models.Product, error)
	CreateProduct(ctx context.Context, name, category string, price float64, inStock bool) (models.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	PlaceOrder(ctx context.Context, customer models.OrderCustomer, details models.OrderDetails, items []models.OrderItemInput) (PlacedOrder, error)
}
