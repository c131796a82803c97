// Package repository contains data access abstractions. Implementations live in subpackages.
package repository

import (
	"context"

	"calldash/internal/model"
)

// CallerRepository defines persistence operations for the caller-analysis table.
// Implementations hold no business logic.
type CallerRepository interface {
	// Create inserts a caller and its tags in one transaction and returns the stored row.
	Create(ctx context.Context, c *model.Caller) (*model.Caller, error)

	// FindByID returns sql.ErrNoRows when the caller does not exist.
	FindByID(ctx context.Context, id string) (*model.Caller, error)

	// List returns one window of callers matching the filter plus the total match count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Caller], error)

	// Delete removes a caller and its tags. It returns sql.ErrNoRows when nothing was deleted.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters and the listing filter.
type PageQuery struct {
	Limit  int
	Offset int
	Filter model.CallerFilter
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
