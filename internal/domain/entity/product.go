package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stock holds the stock counters of a product. Current never drops below zero.
type Stock struct {
	Current  int `gorm:"not null;default:0" json:"current"`
	Minimum  int `gorm:"not null;default:0" json:"minimum"`
	Maximum  int `gorm:"not null;default:0" json:"maximum"`
	Reserved int `gorm:"not null;default:0" json:"reserved"`
}

// Product represents a product in the catalog
type Product struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ProductCode     string          `gorm:"size:50;uniqueIndex;not null" json:"product_code"`
	Name            string          `gorm:"size:255;not null;index" json:"name"`
	CategoryID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	BasePrice       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"base_price"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discount_percent"`
	TaxRatePercent  decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"tax_rate_percent"`
	FinalPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"final_price"`
	Stock           Stock           `gorm:"embedded;embeddedPrefix:stock_" json:"stock"`
	Description     string          `gorm:"type:text" json:"description"`
	Image           string          `gorm:"size:500" json:"image"`
	IsActive        bool            `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// RecalculateFinalPrice derives FinalPrice from the price inputs.
func (p *Product) RecalculateFinalPrice() {
	p.FinalPrice = pricing.FinalPrice(p.BasePrice, p.DiscountPercent, p.TaxRatePercent)
}

// IsLowStock reports whether current stock is at or below the minimum.
func (p *Product) IsLowStock() bool {
	return p.Stock.Current <= p.Stock.Minimum
}
