package repository

import (
	"context"

	"github.com/sangkips/shopbill-api/internal/domain/entity"
)

// IdempotencyRepository stores replayable bill responses per client scope.
type IdempotencyRepository interface {
	// GetByKey returns the response stored for key within scope, or nil. Callers check expiry.
	GetByKey(ctx context.Context, key, scope string) (*entity.IdempotencyKey, error)
	// Create stores a response, replacing an expired entry under the same key and scope.
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) (int64, error)
}
