package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/sangkips/shopbill-api/internal/domain/enum"
	"github.com/sangkips/shopbill-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// BillRepository defines the interface for bill data operations
type BillRepository interface {
	// Create stores the bill together with its items.
	Create(ctx context.Context, bill *entity.Bill) error
	// GetByID returns the bill with items in position order, active or not.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	// GetByNumber returns an active bill by its bill number.
	GetByNumber(ctx context.Context, number string) (*entity.Bill, error)
	// Update saves scalar fields and, when replaceItems is set, swaps the item rows.
	Update(ctx context.Context, bill *entity.Bill, replaceItems bool) error
	// Deactivate clears the active flag only if it is currently set.
	// Returns ErrBillNotActive when the bill was already inactive.
	Deactivate(ctx context.Context, id uuid.UUID) error
	// Reactivate sets the active flag back, used to undo a failed delete.
	Reactivate(ctx context.Context, id uuid.UUID) error
	SetPDFURL(ctx context.Context, id uuid.UUID, url string) error
	// List returns active bills, newest first.
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
	// ListInRange returns bills created in [from, to) with items, oldest first.
	ListInRange(ctx context.Context, params *BillRangeParams) ([]entity.Bill, error)
	// Recent returns the latest active bills with items.
	Recent(ctx context.Context, limit int) ([]entity.Bill, error)
	// Summarize aggregates active bills created in [from, to).
	Summarize(ctx context.Context, from, to *time.Time) (*BillSummary, error)
}

// BillFilterParams contains filtering parameters for bill listing
type BillFilterParams struct {
	Pagination    *pagination.PaginationParams
	ShopID        *uuid.UUID
	PaymentStatus enum.PaymentStatus
	PaymentMethod enum.PaymentMethod
	Search        string
	From          *time.Time
	To            *time.Time
}

// BillRangeParams selects bills for report generation. To is exclusive.
type BillRangeParams struct {
	From            time.Time
	To              time.Time
	ShopID          *uuid.UUID
	IncludeInactive bool
}

// BillSummary is an aggregate over a set of bills
type BillSummary struct {
	Count       int64
	TotalAmount decimal.Decimal
	TaxAmount   decimal.Decimal
}

// CounterRepository hands out values of named sequences.
type CounterRepository interface {
	// Next increments the named counter and returns the new value.
	Next(ctx context.Context, name string) (int64, error)
}
