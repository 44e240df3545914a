package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/sangkips/shopbill-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// Deactivate clears the active flag. Products are never hard-deleted.
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	// CountInStock counts active products with stock above zero.
	CountInStock(ctx context.Context) (int64, error)

	// ReserveStock decrements current stock by quantity in a single conditional
	// update. Returns ErrInsufficientStock when stock is short and
	// ErrProductNotFound when the product does not exist.
	ReserveStock(ctx context.Context, id uuid.UUID, quantity int) error
	// ReleaseStock increments current stock by quantity.
	// Returns ErrProductNotFound when the product does not exist.
	ReleaseStock(ctx context.Context, id uuid.UUID, quantity int) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
	ActiveOnly bool
	LowStock   bool
	SortBy     string
	SortOrder  string
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	// List returns categories ordered by display order.
	List(ctx context.Context, activeOnly bool) ([]entity.Category, error)
}
