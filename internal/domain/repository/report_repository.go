package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/sangkips/shopbill-api/pkg/pagination"
)

// ReportRepository defines the interface for stored reports
type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)
	// List returns reports newest first.
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Report, int64, error)
}
