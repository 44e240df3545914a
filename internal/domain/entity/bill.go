package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill is an issued invoice. Bills are never hard-deleted; IsActive is cleared instead.
type Bill struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	BillNumber     string             `gorm:"size:64;uniqueIndex;not null" json:"bill_number"`
	Sequence       int64              `gorm:"not null;default:0" json:"sequence"`
	ShopID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"shop_id"`
	Subtotal       decimal.Decimal    `gorm:"type:decimal(14,2);not null" json:"subtotal"`
	DiscountAmount decimal.Decimal    `gorm:"type:decimal(14,2);not null" json:"discount_amount"`
	TaxAmount      decimal.Decimal    `gorm:"type:decimal(14,2);not null" json:"tax_amount"`
	TotalAmount    decimal.Decimal    `gorm:"type:decimal(14,2);not null" json:"total_amount"`
	PaymentMethod  enum.PaymentMethod `gorm:"size:20;not null;default:'cash'" json:"payment_method"`
	PaymentStatus  enum.PaymentStatus `gorm:"size:20;not null;default:'completed'" json:"payment_status"`
	CustomerName   string             `gorm:"size:255" json:"customer_name"`
	CustomerPhone  string             `gorm:"size:30" json:"customer_phone"`
	Notes          string             `gorm:"type:text" json:"notes"`
	PDFURL         string             `gorm:"size:1000;column:pdf_url" json:"pdf_url"`
	IsActive       bool               `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt      time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`

	// Relationships
	Items []BillItem `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"items"`
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// TotalQuantity sums item quantities.
func (b *Bill) TotalQuantity() int {
	total := 0
	for _, item := range b.Items {
		total += item.Quantity
	}
	return total
}

// BillItem is a snapshot of a product line at the time the bill was written
type BillItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BillID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Position       int             `gorm:"not null;default:0" json:"position"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName    string          `gorm:"size:255;not null" json:"product_name"`
	BasePrice      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"base_price"`
	FinalPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"final_price"`
	TaxRatePercent decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"tax_rate_percent"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_price"`
}

// BeforeCreate generates a UUID before creating a new bill item
func (i *BillItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}

// Counter is a named monotonically increasing sequence.
type Counter struct {
	Name      string    `gorm:"size:100;primary_key" json:"name"`
	Value     int64     `gorm:"not null;default:0" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Counter model
func (Counter) TableName() string {
	return "counters"
}
