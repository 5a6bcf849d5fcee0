// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"

	perrors "github.com/avdeev/catalog-service/internal/errors"
	"github.com/avdeev/catalog-service/internal/store"
)

// ProductManager defines the methods for managing the product lifecycle.
// It owns all validation rules and orchestrates calls to the store.
type ProductManager interface {
	// FindPage retrieves one zero-based page of products.
	// Returns ErrProductNotFound if the resulting page is empty.
	FindPage(ctx context.Context, pageIndex, pageSize int32) (*store.Page, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*store.Product, error)

	// Create persists a creation candidate and returns the stored product.
	// Returns ErrValidation if the candidate violates any precondition.
	Create(ctx context.Context, candidate store.Product) (*store.Product, error)

	// Update modifies an existing product's details.
	// Returns ErrProductNotFound if no product exists with the candidate's ID,
	// ErrValidation if the candidate's fields are invalid.
	Update(ctx context.Context, candidate store.Product) (*store.Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error

	// UpdateQuantity replaces the stock quantity of a product.
	// Returns ErrProductNotFound if no product exists with the given ID,
	// ErrInvalidArgument if the new quantity is negative.
	UpdateQuantity(ctx context.Context, id int64, quantity int32) (*store.Product, error)
}

// Service implements ProductManager and provides methods to manage products.
// It is stateless between calls and safe for concurrent use.
type Service struct {
	repository store.ProductStore
	clock      Clock
}

// NewService creates a new instance of ProductManager with the provided repository and clock.
func NewService(repo store.ProductStore, clock Clock) *Service {
	return &Service{
		repository: repo,
		clock:      clock,
	}
}

// FindPage retrieves one zero-based page of products in the store's ID order.
// An empty resulting page is reported as ErrProductNotFound, whether the
// collection itself is empty or the page index is out of range.
func (s *Service) FindPage(ctx context.Context, pageIndex, pageSize int32) (*store.Page, error) {
	page, err := s.repository.FindPage(ctx, pageIndex, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product page %d: %w", pageIndex, err)
	}
	if page.Empty() {
		return nil, fmt.Errorf("%w: no products on page %d", perrors.ErrProductNotFound, pageIndex)
	}
	return page, nil
}

// FindByID retrieves a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int64) (*store.Product, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return product, nil
}

// Create validates a creation candidate, stamps its creation date and
// persists it. The store assigns the ID. No persistence call is made when
// validation fails.
func (s *Service) Create(ctx context.Context, candidate store.Product) (*store.Product, error) {
	if err := validateCreate(&candidate); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	candidate.DateOfCreation = &now

	created, err := s.repository.Save(ctx, &candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

// Update fetches the existing product first, so a missing ID surfaces as
// ErrProductNotFound before any field validation. On success it copies name,
// quantity, unit price and supplier onto the stored record and refreshes the
// last-update timestamp. ID and creation date never change.
func (s *Service) Update(ctx context.Context, candidate store.Product) (*store.Product, error) {
	if candidate.ID == nil {
		return nil, fmt.Errorf("%w: product ID is required for update", perrors.ErrValidation)
	}

	existing, err := s.repository.FindByID(ctx, *candidate.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", *candidate.ID, err)
	}

	if err := validateFields(&candidate); err != nil {
		return nil, err
	}

	existing.Name = candidate.Name
	existing.Quantity = candidate.Quantity
	existing.UnitPrice = candidate.UnitPrice
	existing.SupplierID = candidate.SupplierID
	now := s.clock.Now()
	existing.DateOfLastUpdate = &now

	updated, err := s.repository.Save(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", *candidate.ID, err)
	}
	return updated, nil
}

// DeleteByID removes a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	existing, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	if err := s.repository.Delete(ctx, existing); err != nil {
		return fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}
	return nil
}

// UpdateQuantity replaces the stock quantity of a product. Unlike Update it
// does not touch the last-update timestamp.
func (s *Service) UpdateQuantity(ctx context.Context, id int64, quantity int32) (*store.Product, error) {
	existing, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: stock quantity must not be negative", perrors.ErrInvalidArgument)
	}

	existing.Quantity = quantity

	updated, err := s.repository.Save(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update stock for product with ID %d: %w", id, err)
	}
	return updated, nil
}

func validateCreate(candidate *store.Product) error {
	if candidate.ID != nil {
		return fmt.Errorf("%w: a creation candidate must not carry an ID", perrors.ErrValidation)
	}
	if candidate.DateOfCreation != nil || candidate.DateOfLastUpdate != nil {
		return fmt.Errorf("%w: a creation candidate must not carry timestamps", perrors.ErrValidation)
	}
	return validateFields(candidate)
}

func validateFields(candidate *store.Product) error {
	if candidate.Name == "" {
		return fmt.Errorf("%w: name must not be empty", perrors.ErrValidation)
	}
	if candidate.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", perrors.ErrValidation)
	}
	if candidate.UnitPrice <= 0 {
		return fmt.Errorf("%w: unit price must be positive", perrors.ErrValidation)
	}
	return nil
}
