package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/shopbill-api/internal/domain/entity"
	domainRepo "github.com/sangkips/shopbill-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) List(ctx context.Context) ([]entity.Setting, error) {
	var settings []entity.Setting
	err := r.db.WithContext(ctx).Order("key ASC").Find(&settings).Error
	return settings, err
}

// GetByKey retrieves a setting, or nil when the key is unknown
func (r *settingsRepository) GetByKey(ctx context.Context, key string) (*entity.Setting, error) {
	var setting entity.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert inserts the setting or overwrites the value of an existing key
func (r *settingsRepository) Upsert(ctx context.Context, setting *entity.Setting) error {
	setting.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
}

type maintenanceRepository struct {
	db     *gorm.DB
	models []interface{}
}

// NewMaintenanceRepository creates a repository that can wipe the given models
func NewMaintenanceRepository(db *gorm.DB, models []interface{}) domainRepo.MaintenanceRepository {
	return &maintenanceRepository{db: db, models: models}
}

// Truncate deletes rows child tables first so foreign keys never block it.
func (r *maintenanceRepository) Truncate(ctx context.Context) (map[string]int64, error) {
	removed := make(map[string]int64, len(r.models))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := len(r.models) - 1; i >= 0; i-- {
			model := r.models[i]
			stmt := &gorm.Statement{DB: tx}
			if err := stmt.Parse(model); err != nil {
				return err
			}
			result := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model)
			if result.Error != nil {
				return result.Error
			}
			removed[stmt.Schema.Table] = result.RowsAffected
		}
		return nil
	})
	return removed, err
}
