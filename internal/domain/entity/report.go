package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportStatusGenerated marks a report whose metrics have been computed.
const ReportStatusGenerated = "generated"

// ProductSales is one row of the top selling products ranking.
type ProductSales struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
}

// ReportMetrics are the aggregates computed over the bills of a report.
type ReportMetrics struct {
	TotalBills         int                        `json:"total_bills"`
	TotalRevenue       decimal.Decimal            `json:"total_revenue"`
	TotalTax           decimal.Decimal            `json:"total_tax"`
	AverageBillValue   decimal.Decimal            `json:"average_bill_value"`
	TotalQuantitySold  int                        `json:"total_quantity_sold"`
	TopSellingProducts []ProductSales             `json:"top_selling_products"`
	PaymentBreakdown   map[string]decimal.Decimal `json:"payment_breakdown"`
}

// Report is a stored, generated sales report
type Report struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ReportType      string            `gorm:"size:100;not null;index" json:"report_type"`
	ReportName      string            `gorm:"size:255;not null" json:"report_name"`
	ShopID          *uuid.UUID        `gorm:"type:uuid;index" json:"shop_id,omitempty"`
	StartDate       time.Time         `gorm:"not null" json:"start_date"`
	EndDate         time.Time         `gorm:"not null" json:"end_date"`
	IncludeInactive bool              `gorm:"not null;default:false" json:"include_inactive"`
	Filters         map[string]string `gorm:"type:jsonb;serializer:json" json:"filters"`
	Metrics         ReportMetrics     `gorm:"type:jsonb;serializer:json" json:"metrics"`
	Status          string            `gorm:"size:20;not null" json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new report
func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Report model
func (Report) TableName() string {
	return "reports"
}
