package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/sangkips/shopbill-api/internal/domain/repository"
	"github.com/sangkips/shopbill-api/pkg/apperror"
)

const maxSettingKeyLength = 100

// SettingsService handles key/value application settings
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// ListSettings returns every stored setting
func (s *SettingsService) ListSettings(ctx context.Context) ([]entity.Setting, error) {
	settings, err := s.settingsRepo.List(ctx)
	if err != nil {
		return nil, storageError(err, "")
	}
	return settings, nil
}

// GetSetting retrieves a setting by key
func (s *SettingsService) GetSetting(ctx context.Context, key string) (*entity.Setting, error) {
	key, err := normalizeSettingKey(key)
	if err != nil {
		return nil, err
	}

	setting, err := s.settingsRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, storageError(err, "")
	}
	if setting == nil {
		return nil, apperror.NewNotFoundError("Setting")
	}
	return setting, nil
}

// UpsertSetting stores value under key, replacing any previous value
func (s *SettingsService) UpsertSetting(ctx context.Context, key string, value json.RawMessage) (*entity.Setting, error) {
	key, err := normalizeSettingKey(key)
	if err != nil {
		return nil, err
	}
	if len(value) == 0 || !json.Valid(value) {
		return nil, apperror.NewBadRequestError("Setting value must be valid JSON")
	}

	setting := &entity.Setting{Key: key, Value: value}
	if err := s.settingsRepo.Upsert(ctx, setting); err != nil {
		return nil, storageError(err, "Setting already exists")
	}
	return s.GetSetting(ctx, key)
}

func normalizeSettingKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", apperror.NewBadRequestError("Setting key is required")
	}
	if len(key) > maxSettingKeyLength {
		return "", apperror.NewBadRequestError("Setting key is too long")
	}
	return key, nil
}
