package service

import (
	"context"

	"github.com/sangkips/shopbill-api/internal/domain/repository"
	"github.com/sangkips/shopbill-api/pkg/logger"
	"github.com/sirupsen/logrus"
)

// AdminService runs maintenance operations
type AdminService struct {
	maintenanceRepo repository.MaintenanceRepository
	idempotencyRepo repository.IdempotencyRepository
	log             *logrus.Entry
}

// NewAdminService creates a new admin service
func NewAdminService(maintenanceRepo repository.MaintenanceRepository, idempotencyRepo repository.IdempotencyRepository) *AdminService {
	return &AdminService{
		maintenanceRepo: maintenanceRepo,
		idempotencyRepo: idempotencyRepo,
		log:             logger.WithModule("admin_service"),
	}
}

// CleanupResult reports how many rows were removed per table
type CleanupResult struct {
	Deleted map[string]int64 `json:"deleted"`
	Total   int64            `json:"total"`
}

// CleanupDatabase deletes every row of every application table
func (s *AdminService) CleanupDatabase(ctx context.Context) (*CleanupResult, error) {
	deleted, err := s.maintenanceRepo.Truncate(ctx)
	if err != nil {
		return nil, storageError(err, "")
	}

	result := &CleanupResult{Deleted: deleted}
	for _, n := range deleted {
		result.Total += n
	}
	s.log.WithField("rows", result.Total).Warn("database cleaned up")
	return result, nil
}

// PurgeExpiredIdempotencyKeys removes stored responses past their expiry
func (s *AdminService) PurgeExpiredIdempotencyKeys(ctx context.Context) (int64, error) {
	n, err := s.idempotencyRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, storageError(err, "")
	}
	if n > 0 {
		s.log.WithField("keys", n).Info("expired idempotency keys purged")
	}
	return n, nil
}
