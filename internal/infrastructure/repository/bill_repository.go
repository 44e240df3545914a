package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/domain/entity"
	domainRepo "github.com/sangkips/shopbill-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts the bill and its items in one transaction.
func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return translateError(r.db.WithContext(ctx).Create(bill).Error)
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetByNumber(ctx context.Context, number string) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Scopes(ActiveScope).
		Preload("Items", orderedItems).
		First(&bill, "bill_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) Update(ctx context.Context, bill *entity.Bill, replaceItems bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replaceItems {
			if err := tx.Where("bill_id = ?", bill.ID).Delete(&entity.BillItem{}).Error; err != nil {
				return err
			}
			for i := range bill.Items {
				bill.Items[i].ID = uuid.Nil
				bill.Items[i].BillID = bill.ID
			}
			if len(bill.Items) > 0 {
				if err := tx.Create(&bill.Items).Error; err != nil {
					return err
				}
			}
		}

		return tx.Model(bill).
			Select("subtotal", "discount_amount", "tax_amount", "total_amount",
				"payment_method", "payment_status", "customer_name", "customer_phone",
				"notes", "updated_at").
			Updates(bill).Error
	})
}

// Deactivate flips is_active only when it is still set, so two concurrent
// deletes cannot both succeed.
func (r *billRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrBillNotActive
	}
	return nil
}

func (r *billRepository) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Bill{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  true,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *billRepository) SetPDFURL(ctx context.Context, id uuid.UUID, url string) error {
	return r.db.WithContext(ctx).Model(&entity.Bill{}).
		Where("id = ?", id).
		Update("pdf_url", url).Error
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Scopes(ActiveScope, ShopScope(params.ShopID), CreatedBetween(params.From, params.To)).
		Scopes(Search(params.Search, "bill_number", "customer_name", "customer_phone"))

	if params.PaymentStatus != "" {
		query = query.Where("payment_status = ?", params.PaymentStatus)
	}
	if params.PaymentMethod != "" {
		query = query.Where("payment_method = ?", params.PaymentMethod)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Items", orderedItems).
		Order("created_at DESC").
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepository) ListInRange(ctx context.Context, params *domainRepo.BillRangeParams) ([]entity.Bill, error) {
	var bills []entity.Bill

	query := r.db.WithContext(ctx).
		Scopes(ShopScope(params.ShopID)).
		Where("created_at >= ? AND created_at < ?", params.From.UTC(), params.To.UTC())
	if !params.IncludeInactive {
		query = query.Scopes(ActiveScope)
	}

	err := query.
		Preload("Items", orderedItems).
		Order("created_at ASC").
		Find(&bills).Error
	return bills, err
}

func (r *billRepository) Recent(ctx context.Context, limit int) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := r.db.WithContext(ctx).
		Scopes(ActiveScope).
		Preload("Items", orderedItems).
		Order("created_at DESC").
		Limit(limit).
		Find(&bills).Error
	return bills, err
}

func (r *billRepository) Summarize(ctx context.Context, from, to *time.Time) (*domainRepo.BillSummary, error) {
	var summary domainRepo.BillSummary
	err := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Scopes(ActiveScope, CreatedBetween(from, to)).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total_amount, COALESCE(SUM(tax_amount), 0) AS tax_amount").
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

type counterRepository struct {
	db *gorm.DB
}

// NewCounterRepository creates a database backed sequence store
func NewCounterRepository(db *gorm.DB) domainRepo.CounterRepository {
	return &counterRepository{db: db}
}

// Next bumps the counter with an upsert; the row lock taken by the write
// keeps the following read consistent inside the transaction.
func (r *counterRepository) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counter := entity.Counter{Name: name, Value: 1, UpdatedAt: time.Now().UTC()}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value":      gorm.Expr("counters.value + 1"),
				"updated_at": time.Now().UTC(),
			}),
		}).Create(&counter).Error
		if err != nil {
			return err
		}

		var current entity.Counter
		if err := tx.First(&current, "name = ?", name).Error; err != nil {
			return err
		}
		value = current.Value
		return nil
	})
	return value, err
}
