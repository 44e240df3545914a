package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillItemRequest is one requested bill line
type BillItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateBillRequest represents a bill creation request. Subtotal, tax and
// total override the computed amounts when present.
type CreateBillRequest struct {
	ShopID         uuid.UUID         `json:"shop_id" binding:"required"`
	Items          []BillItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod  string            `json:"payment_method" binding:"omitempty,oneof=cash card upi cheque online credit"`
	PaymentStatus  string            `json:"payment_status" binding:"omitempty,oneof=pending completed failed"`
	CustomerName   string            `json:"customer_name" binding:"omitempty,max=255"`
	CustomerPhone  string            `json:"customer_phone" binding:"omitempty,phone"`
	Notes          string            `json:"notes" binding:"omitempty,max=2000"`
	DiscountAmount *decimal.Decimal  `json:"discount_amount"`
	Subtotal       *decimal.Decimal  `json:"subtotal"`
	TaxAmount      *decimal.Decimal  `json:"tax_amount"`
	TotalAmount    *decimal.Decimal  `json:"total_amount"`
}

// UpdateBillRequest represents a bill update request. Items, when present,
// replace every line of the bill.
type UpdateBillRequest struct {
	Items          []BillItemRequest `json:"items" binding:"omitempty,min=1,dive"`
	PaymentMethod  *string           `json:"payment_method" binding:"omitempty,oneof=cash card upi cheque online credit"`
	PaymentStatus  *string           `json:"payment_status" binding:"omitempty,oneof=pending completed failed"`
	CustomerName   *string           `json:"customer_name" binding:"omitempty,max=255"`
	CustomerPhone  *string           `json:"customer_phone" binding:"omitempty,phone"`
	Notes          *string           `json:"notes" binding:"omitempty,max=2000"`
	DiscountAmount *decimal.Decimal  `json:"discount_amount"`
}

// BillPDFRequest carries a base64 encoded PDF
type BillPDFRequest struct {
	PDFContent string `json:"pdf_content" binding:"required,base64"`
}

// BillFilterRequest represents bill filter parameters
type BillFilterRequest struct {
	ShopID        string `form:"shop_id" binding:"omitempty,uuid"`
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=pending completed failed"`
	PaymentMethod string `form:"payment_method" binding:"omitempty,oneof=cash card upi cheque online credit"`
	Search        string `form:"search"`
	StartDate     string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate       string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
}
