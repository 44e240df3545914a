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
)

// SupplierService handles the suppliers a shop buys from
type SupplierService struct {
	supplierRepo repository.SupplierRepository
	shopRepo     repository.ShopRepository
	phoneRegion  string
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo repository.SupplierRepository, shopRepo repository.ShopRepository, phoneRegion string) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		shopRepo:     shopRepo,
		phoneRegion:  phoneRegion,
	}
}

// CreateSupplierInput represents the create supplier input
type CreateSupplierInput struct {
	ShopID       uuid.UUID
	SupplierName string
	Email        string
	Phone        string
	Address      string
	City         string
	State        string
	GSTIN        string
	BankDetails  entity.BankDetails
}

// CreateSupplier creates a supplier for an existing shop
func (s *SupplierService) CreateSupplier(ctx context.Context, input *CreateSupplierInput) (*entity.Supplier, error) {
	name := strings.TrimSpace(input.SupplierName)
	if input.ShopID == uuid.Nil || name == "" || strings.TrimSpace(input.Phone) == "" {
		return nil, apperror.NewBadRequestError("Shop ID, supplier name and phone are required")
	}

	phone, err := utils.NormalizePhoneNumber(input.Phone, s.phoneRegion)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid phone number")
	}

	if err := s.requireShop(ctx, input.ShopID); err != nil {
		return nil, err
	}

	supplier := &entity.Supplier{
		ShopID:       input.ShopID,
		SupplierName: name,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:        phone,
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		GSTIN:        strings.ToUpper(strings.TrimSpace(input.GSTIN)),
		BankDetails:  input.BankDetails,
		IsActive:     true,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, storageError(err, "Supplier already exists")
	}
	return supplier, nil
}

// GetSupplier retrieves a supplier by ID
func (s *SupplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "")
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// ListShopSuppliers lists the active suppliers of a shop
func (s *SupplierService) ListShopSuppliers(ctx context.Context, shopID uuid.UUID) ([]entity.Supplier, error) {
	if err := s.requireShop(ctx, shopID); err != nil {
		return nil, err
	}
	suppliers, err := s.supplierRepo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, storageError(err, "")
	}
	return suppliers, nil
}

// UpdateSupplierInput represents the update supplier input
type UpdateSupplierInput struct {
	SupplierID   uuid.UUID
	SupplierName *string
	Email        *string
	Phone        *string
	Address      *string
	City         *string
	State        *string
	GSTIN        *string
	BankDetails  *entity.BankDetails
}

// UpdateSupplier updates a supplier
func (s *SupplierService) UpdateSupplier(ctx context.Context, input *UpdateSupplierInput) (*entity.Supplier, error) {
	supplier, err := s.GetSupplier(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}

	if input.SupplierName != nil && strings.TrimSpace(*input.SupplierName) != "" {
		supplier.SupplierName = strings.TrimSpace(*input.SupplierName)
	}
	if input.Email != nil {
		supplier.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Phone != nil && strings.TrimSpace(*input.Phone) != "" {
		phone, err := utils.NormalizePhoneNumber(*input.Phone, s.phoneRegion)
		if err != nil {
			return nil, apperror.NewBadRequestError("Invalid phone number")
		}
		supplier.Phone = phone
	}
	if input.Address != nil {
		supplier.Address = *input.Address
	}
	if input.City != nil {
		supplier.City = *input.City
	}
	if input.State != nil {
		supplier.State = *input.State
	}
	if input.GSTIN != nil {
		supplier.GSTIN = strings.ToUpper(strings.TrimSpace(*input.GSTIN))
	}
	if input.BankDetails != nil {
		supplier.BankDetails = *input.BankDetails
	}
	supplier.UpdatedAt = time.Now().UTC()

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, storageError(err, "Supplier already exists")
	}
	return supplier, nil
}

// DeleteSupplier deactivates a supplier
func (s *SupplierService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetSupplier(ctx, id); err != nil {
		return err
	}
	if err := s.supplierRepo.Deactivate(ctx, id); err != nil {
		return storageError(err, "")
	}
	return nil
}

func (s *SupplierService) requireShop(ctx context.Context, shopID uuid.UUID) error {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return storageError(err, "")
	}
	if shop == nil {
		return apperror.NewNotFoundError("Shop")
	}
	return nil
}
