package repository

import (
	"context"

	"github.com/sangkips/shopbill-api/internal/domain/entity"
)

// SettingsRepository defines the interface for key/value settings
type SettingsRepository interface {
	List(ctx context.Context) ([]entity.Setting, error)
	GetByKey(ctx context.Context, key string) (*entity.Setting, error)
	// Upsert creates the setting or replaces its value.
	Upsert(ctx context.Context, setting *entity.Setting) error
}

// MaintenanceRepository wipes application data.
type MaintenanceRepository interface {
	// Truncate deletes every row of every application table and returns the
	// number of rows removed per table.
	Truncate(ctx context.Context) (map[string]int64, error)
}
