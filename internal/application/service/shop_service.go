package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/sangkips/shopbill-api/internal/domain/repository"
	"github.com/sangkips/shopbill-api/pkg/apperror"
	"github.com/sangkips/shopbill-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// ShopService handles shop profile operations
type ShopService struct {
	shopRepo       repository.ShopRepository
	phoneRegion    string
	defaultGSTRate decimal.Decimal
}

// NewShopService creates a new shop service
func NewShopService(shopRepo repository.ShopRepository, phoneRegion string, defaultGSTRate float64) *ShopService {
	return &ShopService{
		shopRepo:       shopRepo,
		phoneRegion:    phoneRegion,
		defaultGSTRate: decimal.NewFromFloat(defaultGSTRate),
	}
}

// CreateShopInput represents the create shop input
type CreateShopInput struct {
	ShopName      string
	OwnerName     string
	Email         string
	Phone         string
	Address       string
	City          string
	State         string
	GSTNumber     string
	GSTRate       *decimal.Decimal
	InvoicePrefix string
}

// CreateShop creates a new shop. Name and email must be unused.
func (s *ShopService) CreateShop(ctx context.Context, input *CreateShopInput) (*entity.Shop, error) {
	name := strings.TrimSpace(input.ShopName)
	owner := strings.TrimSpace(input.OwnerName)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || owner == "" || email == "" || strings.TrimSpace(input.Phone) == "" {
		return nil, apperror.NewBadRequestError("Shop name, owner name, email and phone are required")
	}

	phone, err := utils.NormalizePhoneNumber(input.Phone, s.phoneRegion)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid phone number")
	}

	if err := s.ensureUnique(ctx, uuid.Nil, name, email); err != nil {
		return nil, err
	}

	gstRate := s.defaultGSTRate
	if input.GSTRate != nil {
		gstRate = *input.GSTRate
	}
	if gstRate.IsNegative() || gstRate.GreaterThan(hundredPercent) {
		return nil, apperror.NewBadRequestError("GST rate must be between 0 and 100")
	}

	prefix := strings.TrimSpace(input.InvoicePrefix)
	if prefix == "" {
		prefix = entity.DefaultInvoicePrefix
	}

	shop := &entity.Shop{
		ShopName:      name,
		OwnerName:     owner,
		Email:         email,
		Phone:         phone,
		Address:       input.Address,
		City:          input.City,
		State:         input.State,
		GSTNumber:     optionalString(input.GSTNumber),
		GSTRate:       gstRate,
		InvoicePrefix: prefix,
		IsActive:      true,
	}

	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, storageError(err, "Shop with this name, email or GST number already exists")
	}
	return shop, nil
}

// GetShop retrieves a shop by ID
func (s *ShopService) GetShop(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "")
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}
	return shop, nil
}

// GetMyShop returns the first active shop, the one a single-shop install works with
func (s *ShopService) GetMyShop(ctx context.Context) (*entity.Shop, error) {
	shop, err := s.shopRepo.GetFirstActive(ctx)
	if err != nil {
		return nil, storageError(err, "")
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Active shop")
	}
	return shop, nil
}

// ListShops lists shops
func (s *ShopService) ListShops(ctx context.Context, activeOnly bool) ([]entity.Shop, error) {
	shops, err := s.shopRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, storageError(err, "")
	}
	return shops, nil
}

// UpdateShopInput represents the update shop input
type UpdateShopInput struct {
	ShopID        uuid.UUID
	ShopName      *string
	OwnerName     *string
	Email         *string
	Phone         *string
	Address       *string
	City          *string
	State         *string
	GSTNumber     *string
	GSTRate       *decimal.Decimal
	InvoicePrefix *string
}

// UpdateShop updates a shop profile
func (s *ShopService) UpdateShop(ctx context.Context, input *UpdateShopInput) (*entity.Shop, error) {
	shop, err := s.GetShop(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}

	name, email := shop.ShopName, shop.Email
	if input.ShopName != nil && strings.TrimSpace(*input.ShopName) != "" {
		name = strings.TrimSpace(*input.ShopName)
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if name != shop.ShopName || email != shop.Email {
		if err := s.ensureUnique(ctx, shop.ID, name, email); err != nil {
			return nil, err
		}
	}
	shop.ShopName, shop.Email = name, email

	if input.OwnerName != nil && strings.TrimSpace(*input.OwnerName) != "" {
		shop.OwnerName = strings.TrimSpace(*input.OwnerName)
	}
	if input.Phone != nil && strings.TrimSpace(*input.Phone) != "" {
		phone, err := utils.NormalizePhoneNumber(*input.Phone, s.phoneRegion)
		if err != nil {
			return nil, apperror.NewBadRequestError("Invalid phone number")
		}
		shop.Phone = phone
	}
	if input.Address != nil {
		shop.Address = *input.Address
	}
	if input.City != nil {
		shop.City = *input.City
	}
	if input.State != nil {
		shop.State = *input.State
	}
	if input.GSTNumber != nil {
		shop.GSTNumber = optionalString(*input.GSTNumber)
	}
	if input.GSTRate != nil {
		if input.GSTRate.IsNegative() || input.GSTRate.GreaterThan(hundredPercent) {
			return nil, apperror.NewBadRequestError("GST rate must be between 0 and 100")
		}
		shop.GSTRate = *input.GSTRate
	}
	if input.InvoicePrefix != nil && strings.TrimSpace(*input.InvoicePrefix) != "" {
		shop.InvoicePrefix = strings.TrimSpace(*input.InvoicePrefix)
	}
	shop.UpdatedAt = time.Now().UTC()

	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, storageError(err, "Shop with this name, email or GST number already exists")
	}
	return shop, nil
}

// DeleteShop deactivates a shop
func (s *ShopService) DeleteShop(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetShop(ctx, id); err != nil {
		return err
	}
	if err := s.shopRepo.Deactivate(ctx, id); err != nil {
		return storageError(err, "")
	}
	return nil
}

func (s *ShopService) ensureUnique(ctx context.Context, self uuid.UUID, name, email string) error {
	byName, err := s.shopRepo.GetByName(ctx, name)
	if err != nil {
		return storageError(err, "")
	}
	if byName != nil && byName.ID != self {
		return apperror.NewConflictError("Shop with this name already exists")
	}

	byEmail, err := s.shopRepo.GetByEmail(ctx, email)
	if err != nil {
		return storageError(err, "")
	}
	if byEmail != nil && byEmail.ID != self {
		return apperror.NewConflictError("Shop with this email already exists")
	}
	return nil
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
