package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/sangkips/shopbill-api/internal/domain/enum"
	"github.com/sangkips/shopbill-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// GuestCustomerName is shown for bills issued without a customer name.
const GuestCustomerName = "Guest"

const maxRecentBills = 100

// DashboardService provides dashboard statistics
type DashboardService struct {
	billRepo     repository.BillRepository
	productRepo  repository.ProductRepository
	defaultLimit int
	now          func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	billRepo repository.BillRepository,
	productRepo repository.ProductRepository,
	defaultLimit int,
) *DashboardService {
	if defaultLimit < 1 {
		defaultLimit = 10
	}
	return &DashboardService{
		billRepo:     billRepo,
		productRepo:  productRepo,
		defaultLimit: defaultLimit,
		now:          time.Now,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	BillsToday     int64           `json:"bills_today"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalTax       decimal.Decimal `json:"total_tax"`
	ActiveProducts int64           `json:"active_products"`
	LowStockCount  int             `json:"low_stock_count"`
	ProfitMargin   decimal.Decimal `json:"profit_margin"`
}

// GetDashboardStats returns today's figures. The margin is the share of
// today's sales that is not tax, as a percentage with one decimal.
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	today := startOfDay(s.now())
	tomorrow := today.AddDate(0, 0, 1)

	summary, err := s.billRepo.Summarize(ctx, &today, &tomorrow)
	if err != nil {
		return nil, storageError(err, "")
	}

	inStock, err := s.productRepo.CountInStock(ctx)
	if err != nil {
		return nil, storageError(err, "")
	}

	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, storageError(err, "")
	}

	stats := &DashboardStats{
		BillsToday:     summary.Count,
		TotalSales:     money(summary.TotalAmount),
		TotalTax:       money(summary.TaxAmount),
		ActiveProducts: inStock,
		LowStockCount:  len(lowStock),
		ProfitMargin:   decimal.Zero,
	}
	if stats.TotalSales.IsPositive() {
		stats.ProfitMargin = stats.TotalSales.Sub(stats.TotalTax).
			Div(stats.TotalSales).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	}
	return stats, nil
}

// RecentBill is the dashboard summary of one bill
type RecentBill struct {
	ID            uuid.UUID          `json:"id"`
	BillNumber    string             `json:"bill_number"`
	CustomerName  string             `json:"customer_name"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentStatus enum.PaymentStatus `json:"payment_status"`
	ItemCount     int                `json:"item_count"`
	CreatedAt     time.Time          `json:"created_at"`
}

// GetRecentBills returns the latest active bills. A limit below 1 uses the
// configured default.
func (s *DashboardService) GetRecentBills(ctx context.Context, limit int) ([]RecentBill, error) {
	if limit < 1 {
		limit = s.defaultLimit
	}
	if limit > maxRecentBills {
		limit = maxRecentBills
	}

	bills, err := s.billRepo.Recent(ctx, limit)
	if err != nil {
		return nil, storageError(err, "")
	}

	recent := make([]RecentBill, 0, len(bills))
	for _, b := range bills {
		recent = append(recent, toRecentBill(b))
	}
	return recent, nil
}

// GetLowStockProducts lists active products at or below their minimum stock
func (s *DashboardService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, storageError(err, "")
	}
	return products, nil
}

func toRecentBill(b entity.Bill) RecentBill {
	name := b.CustomerName
	if name == "" {
		name = GuestCustomerName
	}
	return RecentBill{
		ID:            b.ID,
		BillNumber:    b.BillNumber,
		CustomerName:  name,
		TotalAmount:   b.TotalAmount,
		PaymentStatus: b.PaymentStatus,
		ItemCount:     len(b.Items),
		CreatedAt:     b.CreatedAt,
	}
}
