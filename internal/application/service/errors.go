package service

import (
	"errors"

	"github.com/sangkips/shopbill-api/internal/domain/repository"
	"github.com/sangkips/shopbill-api/pkg/apperror"
)

// storageError maps repository errors that reach a service unhandled into
// application errors. Application errors pass through untouched.
func storageError(err error, duplicateMessage string) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	if errors.Is(err, repository.ErrDuplicateKey) {
		return apperror.NewConflictError(duplicateMessage)
	}
	return apperror.NewStorageError("Storage failure", err)
}
