// Package errors provides custom error types for product-related operations.
package errors

import "errors"

var (
	// ErrProductNotFound signals that no product exists for the requested
	// identifier, or that a requested page contains no products.
	ErrProductNotFound = errors.New("product not found")

	// ErrValidation signals that a create or update candidate violates the
	// product preconditions.
	ErrValidation = errors.New("product validation failed")

	// ErrInvalidArgument signals a malformed argument to a stock adjustment.
	ErrInvalidArgument = errors.New("invalid argument")
)
