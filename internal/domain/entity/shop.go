package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultInvoicePrefix is used for shops created without a prefix.
const DefaultInvoicePrefix = "INV"

// Shop is the business profile bills are issued under
type Shop struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ShopName      string          `gorm:"size:255;uniqueIndex;not null" json:"shop_name"`
	OwnerName     string          `gorm:"size:255;not null" json:"owner_name"`
	Email         string          `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone         string          `gorm:"size:30;not null" json:"phone"`
	Address       string          `gorm:"type:text" json:"address"`
	City          string          `gorm:"size:100" json:"city"`
	State         string          `gorm:"size:100" json:"state"`
	GSTNumber     *string         `gorm:"size:20;uniqueIndex" json:"gst_number,omitempty"`
	GSTRate       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"gst_rate"`
	InvoicePrefix string          `gorm:"size:20;not null" json:"invoice_prefix"`
	IsActive      bool            `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new shop
func (s *Shop) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Shop model
func (Shop) TableName() string {
	return "shops"
}
