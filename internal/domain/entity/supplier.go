package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BankDetails holds a supplier's payout account
type BankDetails struct {
	AccountHolder string `json:"account_holder,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
	IFSC          string `json:"ifsc,omitempty"`
}

// Supplier represents a supplier a shop buys stock from
type Supplier struct {
	ID           uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	ShopID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"shop_id"`
	SupplierName string      `gorm:"size:255;not null" json:"supplier_name"`
	Email        string      `gorm:"size:255" json:"email"`
	Phone        string      `gorm:"size:30;not null" json:"phone"`
	Address      string      `gorm:"type:text" json:"address"`
	City         string      `gorm:"size:100" json:"city"`
	State        string      `gorm:"size:100" json:"state"`
	GSTIN        string      `gorm:"size:20;column:gstin" json:"gstin"`
	BankDetails  BankDetails `gorm:"type:jsonb;serializer:json" json:"bank_details"`
	IsActive     bool        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new supplier
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}
