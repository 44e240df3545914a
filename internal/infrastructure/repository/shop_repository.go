package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/domain/entity"
	domainRepo "github.com/sangkips/shopbill-api/internal/domain/repository"
	"gorm.io/gorm"
)

type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository creates a new shop repository
func NewShopRepository(db *gorm.DB) domainRepo.ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) Create(ctx context.Context, shop *entity.Shop) error {
	return translateError(r.db.WithContext(ctx).Create(shop).Error)
}

func (r *shopRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *shopRepository) GetByName(ctx context.Context, name string) (*entity.Shop, error) {
	return r.first(ctx, "shop_name = ?", name)
}

func (r *shopRepository) GetByEmail(ctx context.Context, email string) (*entity.Shop, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *shopRepository) GetFirstActive(ctx context.Context) (*entity.Shop, error) {
	var shop entity.Shop
	err := r.db.WithContext(ctx).Scopes(ActiveScope).Order("created_at ASC").First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shop, err
}

func (r *shopRepository) first(ctx context.Context, query string, args ...interface{}) (*entity.Shop, error) {
	var shop entity.Shop
	err := r.db.WithContext(ctx).Where(query, args...).First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shop, err
}

func (r *shopRepository) Update(ctx context.Context, shop *entity.Shop) error {
	return translateError(r.db.WithContext(ctx).Save(shop).Error)
}

func (r *shopRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Shop{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *shopRepository) List(ctx context.Context, activeOnly bool) ([]entity.Shop, error) {
	var shops []entity.Shop
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Scopes(ActiveScope)
	}
	err := query.Order("created_at ASC").Find(&shops).Error
	return shops, err
}

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) domainRepo.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return translateError(r.db.WithContext(ctx).Create(supplier).Error)
}

func (r *supplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &supplier, err
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return translateError(r.db.WithContext(ctx).Save(supplier).Error)
}

func (r *supplierRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Supplier{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *supplierRepository) ListByShop(ctx context.Context, shopID uuid.UUID) ([]entity.Supplier, error) {
	var suppliers []entity.Supplier
	err := r.db.WithContext(ctx).
		Scopes(ShopScope(&shopID), ActiveScope).
		Order("supplier_name ASC").
		Find(&suppliers).Error
	return suppliers, err
}
