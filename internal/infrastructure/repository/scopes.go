package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	domainRepo "github.com/sangkips/shopbill-api/internal/domain/repository"
	"github.com/sangkips/shopbill-api/pkg/pagination"
	"gorm.io/gorm"
)

// ActiveScope restricts a query to rows whose is_active flag is set.
func ActiveScope(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// ShopScope filters by shop when shopID is given.
func ShopScope(shopID *uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if shopID == nil || *shopID == uuid.Nil {
			return db
		}
		return db.Where("shop_id = ?", *shopID)
	}
}

// CreatedBetween filters created_at to [from, to). Nil bounds are open.
func CreatedBetween(from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where("created_at >= ?", from.UTC())
		}
		if to != nil {
			db = db.Where("created_at < ?", to.UTC())
		}
		return db
	}
}

// Paginate applies offset and limit from validated params.
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params == nil {
			params = pagination.DefaultPagination()
		}
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}

// Search matches term case-insensitively against any of the columns.
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		like := "%" + strings.ToLower(term) + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = like
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
}

// translateError maps driver unique violations to the domain sentinel.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrDuplicateKey
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value") {
		return domainRepo.ErrDuplicateKey
	}
	return err
}
