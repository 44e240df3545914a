package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockRequest carries product stock counters
type StockRequest struct {
	Current  *int `json:"current" binding:"omitempty,min=0"`
	Minimum  *int `json:"minimum" binding:"omitempty,min=0"`
	Maximum  *int `json:"maximum" binding:"omitempty,min=0"`
	Reserved *int `json:"reserved" binding:"omitempty,min=0"`
}

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name            string           `json:"name" binding:"required,min=1,max=255"`
	ProductCode     string           `json:"product_code" binding:"omitempty,max=50"`
	CategoryID      uuid.UUID        `json:"category_id" binding:"required"`
	BasePrice       *decimal.Decimal `json:"base_price" binding:"required"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	TaxRatePercent  *decimal.Decimal `json:"tax_rate_percent"`
	Stock           StockRequest     `json:"stock"`
	Description     string           `json:"description" binding:"omitempty,max=2000"`
	Image           string           `json:"image" binding:"omitempty,max=500"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=255"`
	CategoryID      *uuid.UUID       `json:"category_id"`
	BasePrice       *decimal.Decimal `json:"base_price"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	TaxRatePercent  *decimal.Decimal `json:"tax_rate_percent"`
	Stock           StockRequest     `json:"stock"`
	Description     *string          `json:"description" binding:"omitempty,max=2000"`
	Image           *string          `json:"image" binding:"omitempty,max=500"`
	IsActive        *bool            `json:"is_active"`
}

// RestockRequest adds received units to a product
type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	Active     *bool  `form:"active"`
	LowStock   bool   `form:"low_stock"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=name created_at final_price stock_current"`
	SortOrder  string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}
