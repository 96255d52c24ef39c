// Package repository contains the repository interfaces and related errors.
package repository

import "errors"

// Repository errors define common error conditions across all repositories.
// These errors are used to communicate specific failure conditions
// from the data access layer to the application layer.

var (
	// ErrCategoryNotFound is returned when a category cannot be found by ID.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrSellerNotFound is returned when a seller cannot be found by ID
	// or by its (platform, platform ID) pair.
	ErrSellerNotFound = errors.New("seller not found")

	// ErrDuplicateSeller is returned when trying to create a seller whose
	// (platform, platform ID) pair already exists.
	ErrDuplicateSeller = errors.New("seller already exists for this platform ID")

	// ErrConnectionFailed is returned when the database connection fails.
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrTransactionFailed is returned when a database transaction fails.
	ErrTransactionFailed = errors.New("database transaction failed")

	// ErrInvalidInput is returned when a repository receives invalid input.
	ErrInvalidInput = errors.New("invalid input provided")
)

// IsNotFoundError checks if the error is a not found error.
// This is useful for handling not-found cases uniformly.
//
// Parameters:
//   - err: error to check
//
// Returns:
//   - bool: true if the error indicates a resource was not found
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrSellerNotFound)
}
