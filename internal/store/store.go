// Package store provides an interface for product storage operations.
package store

import (
	"context"
	"time"
)

// Product represents a product entity in the store.
// A nil ID marks a creation candidate that has not been persisted yet.
type Product struct {
	ID               *int64     `json:"id,omitempty"`
	Name             string     `json:"name"`
	Quantity         int32      `json:"quantity"`
	UnitPrice        float64    `json:"unit_price"`
	SupplierID       int64      `json:"supplier_id"`
	DateOfCreation   *time.Time `json:"date_of_creation,omitempty"`
	DateOfLastUpdate *time.Time `json:"date_of_last_update,omitempty"`
}

// Page is one bounded slice of the product collection in the store's
// enumeration order, plus metadata about the collection as a whole.
type Page struct {
	Items         []Product `json:"items"`
	PageIndex     int32     `json:"page"`
	PageSize      int32     `json:"size"`
	TotalElements int64     `json:"total_elements"`
}

// Empty reports whether the page contains no products.
func (p *Page) Empty() bool {
	return len(p.Items) == 0
}

// TotalPages returns how many pages of this size the collection spans.
func (p *Page) TotalPages() int32 {
	if p.PageSize <= 0 {
		return 0
	}
	return int32((p.TotalElements + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// Save persists the product. A product without an ID is inserted and
	// gets one assigned; a product with an ID replaces the stored record.
	Save(ctx context.Context, product *Product) (*Product, error)

	// Delete removes the product from the store.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Delete(ctx context.Context, product *Product) error

	// FindPage returns one zero-based page of products ordered by ID,
	// together with the total element count. The page may be empty.
	FindPage(ctx context.Context, pageIndex, pageSize int32) (*Page, error)
}
