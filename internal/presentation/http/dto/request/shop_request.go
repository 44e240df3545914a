package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateShopRequest represents a shop creation request
type CreateShopRequest struct {
	ShopName      string           `json:"shop_name" binding:"required,min=1,max=255"`
	OwnerName     string           `json:"owner_name" binding:"required,min=1,max=255"`
	Email         string           `json:"email" binding:"required,email"`
	Phone         string           `json:"phone" binding:"required,phone"`
	Address       string           `json:"address" binding:"omitempty,max=500"`
	City          string           `json:"city" binding:"omitempty,max=100"`
	State         string           `json:"state" binding:"omitempty,max=100"`
	GSTNumber     string           `json:"gst_number" binding:"omitempty,max=20"`
	GSTRate       *decimal.Decimal `json:"gst_rate"`
	InvoicePrefix string           `json:"invoice_prefix" binding:"omitempty,max=10"`
}

// UpdateShopRequest represents a shop update request
type UpdateShopRequest struct {
	ShopName      *string          `json:"shop_name" binding:"omitempty,min=1,max=255"`
	OwnerName     *string          `json:"owner_name" binding:"omitempty,min=1,max=255"`
	Email         *string          `json:"email" binding:"omitempty,email"`
	Phone         *string          `json:"phone" binding:"omitempty,phone"`
	Address       *string          `json:"address" binding:"omitempty,max=500"`
	City          *string          `json:"city" binding:"omitempty,max=100"`
	State         *string          `json:"state" binding:"omitempty,max=100"`
	GSTNumber     *string          `json:"gst_number" binding:"omitempty,max=20"`
	GSTRate       *decimal.Decimal `json:"gst_rate"`
	InvoicePrefix *string          `json:"invoice_prefix" binding:"omitempty,max=10"`
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name             string     `json:"name" binding:"required,min=1,max=100"`
	Description      string     `json:"description" binding:"omitempty,max=1000"`
	Emoji            string     `json:"emoji" binding:"omitempty,max=16"`
	Image            string     `json:"image" binding:"omitempty,max=500"`
	DisplayOrder     int        `json:"display_order" binding:"min=0"`
	ParentCategoryID *uuid.UUID `json:"parent_category_id"`
}

// UpdateCategoryRequest represents a category update request
type UpdateCategoryRequest struct {
	Name             *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Description      *string    `json:"description" binding:"omitempty,max=1000"`
	Emoji            *string    `json:"emoji" binding:"omitempty,max=16"`
	Image            *string    `json:"image" binding:"omitempty,max=500"`
	DisplayOrder     *int       `json:"display_order" binding:"omitempty,min=0"`
	ParentCategoryID *uuid.UUID `json:"parent_category_id"`
	IsActive         *bool      `json:"is_active"`
}

// CreateSupplierRequest represents a supplier creation request
type CreateSupplierRequest struct {
	ShopID       uuid.UUID          `json:"shop_id" binding:"required"`
	SupplierName string             `json:"supplier_name" binding:"required,min=1,max=255"`
	Email        string             `json:"email" binding:"omitempty,email"`
	Phone        string             `json:"phone" binding:"required,phone"`
	Address      string             `json:"address" binding:"omitempty,max=500"`
	City         string             `json:"city" binding:"omitempty,max=100"`
	State        string             `json:"state" binding:"omitempty,max=100"`
	GSTIN        string             `json:"gstin" binding:"omitempty,max=20"`
	BankDetails  entity.BankDetails `json:"bank_details"`
}

// UpdateSupplierRequest represents a supplier update request
type UpdateSupplierRequest struct {
	SupplierName *string             `json:"supplier_name" binding:"omitempty,min=1,max=255"`
	Email        *string             `json:"email" binding:"omitempty,email"`
	Phone        *string             `json:"phone" binding:"omitempty,phone"`
	Address      *string             `json:"address" binding:"omitempty,max=500"`
	City         *string             `json:"city" binding:"omitempty,max=100"`
	State        *string             `json:"state" binding:"omitempty,max=100"`
	GSTIN        *string             `json:"gstin" binding:"omitempty,max=20"`
	BankDetails  *entity.BankDetails `json:"bank_details"`
}
