package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/sangkips/shopbill-api/internal/infrastructure/export"
	"github.com/sangkips/shopbill-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReportOverTwoBills(t *testing.T) {
	f := newBillFixture(t)
	p := f.product(t, "100", 50)
	f.create(t, BillItemInput{ProductID: p.ID, Quantity: 1})
	f.create(t, BillItemInput{ProductID: p.ID, Quantity: 2})
	today := time.Now().UTC().Format(dateOnly)

	report, err := f.reports.GenerateReport(context.Background(), &GenerateReportInput{
		ReportType: "daily_sales",
		StartDate:  today,
		EndDate:    today,
	})
	require.NoError(t, err)

	assert.Equal(t, "DAILY SALES Report", report.ReportName)
	assert.Equal(t, 2, report.Metrics.TotalBills)
	assert.True(t, decimal.NewFromInt(300).Equal(report.Metrics.TotalRevenue), report.Metrics.TotalRevenue.String())
	assert.True(t, decimal.NewFromInt(150).Equal(report.Metrics.AverageBillValue), report.Metrics.AverageBillValue.String())
	assert.Equal(t, 3, report.Metrics.TotalQuantitySold)

	stored, err := f.reports.GetReport(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Metrics.TotalBills)
	assert.True(t, decimal.NewFromInt(300).Equal(stored.Metrics.PaymentBreakdown["cash"]))
}

func TestGenerateReportInactiveBills(t *testing.T) {
	f := newBillFixture(t)
	p := f.product(t, "100", 50)
	f.create(t, BillItemInput{ProductID: p.ID, Quantity: 1})
	deleted := f.create(t, BillItemInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, f.bills.DeleteBill(context.Background(), deleted.ID))
	today := time.Now().UTC().Format(dateOnly)

	activeOnly, err := f.reports.GenerateReport(context.Background(), &GenerateReportInput{
		ReportType: "sales", StartDate: today, EndDate: today,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, activeOnly.Metrics.TotalBills)

	all, err := f.reports.GenerateReport(context.Background(), &GenerateReportInput{
		ReportType: "sales", StartDate: today, EndDate: today, IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Metrics.TotalBills)
}

func TestGenerateReportEndDateBoundary(t *testing.T) {
	f := newBillFixture(t)
	p := f.product(t, "100", 50)
	ctx := context.Background()

	for _, at := range []time.Time{
		time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 23, 59, 59, 999999000, time.UTC),
		time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
	} {
		bill := f.create(t, BillItemInput{ProductID: p.ID, Quantity: 1})
		require.NoError(t, f.db.Model(&entity.Bill{}).Where("id = ?", bill.ID).Update("created_at", at).Error)
	}

	day, err := f.reports.GenerateReport(ctx, &GenerateReportInput{
		ReportType: "daily_sales", StartDate: "2026-03-10", EndDate: "2026-03-10",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, day.Metrics.TotalBills)
	assert.Equal(t, "2026-03-10", day.EndDate.Format(dateOnly))

	instant, err := f.reports.GenerateReport(ctx, &GenerateReportInput{
		ReportType: "sales", StartDate: "2026-03-10", EndDate: "2026-03-11T00:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, instant.Metrics.TotalBills)
}

func TestGenerateReportValidation(t *testing.T) {
	f := newBillFixture(t)
	ctx := context.Background()

	_, err := f.reports.GenerateReport(ctx, &GenerateReportInput{StartDate: "2026-01-01", EndDate: "2026-01-02"})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	_, err = f.reports.GenerateReport(ctx, &GenerateReportInput{ReportType: "x", StartDate: "01/02/2026", EndDate: "2026-01-02"})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	_, err = f.reports.GenerateReport(ctx, &GenerateReportInput{ReportType: "x", StartDate: "2026-02-01", EndDate: "2026-01-01"})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	missing := uuid.New()
	_, err = f.reports.GenerateReport(ctx, &GenerateReportInput{ReportType: "x", StartDate: "2026-01-01", EndDate: "2026-01-02", ShopID: &missing})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.reports.GetReport(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestExportReportAndList(t *testing.T) {
	f := newBillFixture(t)
	ctx := context.Background()

	report, err := f.reports.GenerateReport(ctx, &GenerateReportInput{
		ReportType: "monthly_sales", StartDate: "2026-01-01", EndDate: "2026-01-31",
	})
	require.NoError(t, err)
	assert.Zero(t, report.Metrics.TotalBills)

	exported, err := f.reports.ExportReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "monthly_sales_2026-01-01.xlsx", exported.Filename)
	assert.Equal(t, export.XLSXContentType, exported.ContentType)
	assert.NotEmpty(t, exported.Content)

	list, err := f.reports.ListReports(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Pagination.Total)
}

func TestGetMetrics(t *testing.T) {
	f := newBillFixture(t)
	p := f.product(t, "100", 50)
	f.create(t, BillItemInput{ProductID: p.ID, Quantity: 1})
	f.create(t, BillItemInput{ProductID: p.ID, Quantity: 2})

	metrics, err := f.reports.GetMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), metrics.TodayBills)
	assert.Equal(t, int64(2), metrics.TotalBills)
	assert.True(t, decimal.NewFromInt(300).Equal(metrics.TodaySales), metrics.TodaySales.String())
	assert.True(t, decimal.NewFromInt(150).Equal(metrics.AverageBillValue), metrics.AverageBillValue.String())
}

func TestParseReportDate(t *testing.T) {
	end, err := parseReportDate("2026-03-01", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 23, 59, 59, 999999999, time.UTC), end)

	start, err := parseReportDate("2026-03-01T10:00:00+02:00", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), start)
}
