package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/sangkips/shopbill-api/internal/domain/pricing"
	"github.com/sangkips/shopbill-api/internal/domain/repository"
	"github.com/sangkips/shopbill-api/internal/infrastructure/export"
	"github.com/sangkips/shopbill-api/pkg/apperror"
	"github.com/sangkips/shopbill-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

const dateOnly = "2006-01-02"

// ReportService generates and serves stored sales reports
type ReportService struct {
	reportRepo repository.ReportRepository
	billRepo   repository.BillRepository
	shopRepo   repository.ShopRepository
	now        func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo repository.ReportRepository,
	billRepo repository.BillRepository,
	shopRepo repository.ShopRepository,
) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		billRepo:   billRepo,
		shopRepo:   shopRepo,
		now:        time.Now,
	}
}

// GenerateReportInput represents the generate report input. Dates accept
// either YYYY-MM-DD or RFC 3339. The end is inclusive; a date-only end
// covers the whole day.
type GenerateReportInput struct {
	ReportType      string
	StartDate       string
	EndDate         string
	ShopID          *uuid.UUID
	IncludeInactive bool
	Filters         map[string]string
}

// GenerateReport aggregates the bills of the requested period and stores the result.
func (s *ReportService) GenerateReport(ctx context.Context, input *GenerateReportInput) (*entity.Report, error) {
	reportType := strings.TrimSpace(input.ReportType)
	if reportType == "" {
		return nil, apperror.NewBadRequestError("Report type is required")
	}

	start, err := parseReportStart(input.StartDate)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid start date, expected YYYY-MM-DD or RFC 3339")
	}
	upper, err := parseReportUpperBound(input.EndDate)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid end date, expected YYYY-MM-DD or RFC 3339")
	}
	end := upper.Add(-time.Microsecond)
	if end.Before(start) {
		return nil, apperror.NewBadRequestError("End date must not be before start date")
	}

	if input.ShopID != nil {
		shop, err := s.shopRepo.GetByID(ctx, *input.ShopID)
		if err != nil {
			return nil, storageError(err, "")
		}
		if shop == nil {
			return nil, apperror.NewNotFoundError("Shop")
		}
	}

	bills, err := s.billRepo.ListInRange(ctx, &repository.BillRangeParams{
		From:            start,
		To:              upper,
		ShopID:          input.ShopID,
		IncludeInactive: input.IncludeInactive,
	})
	if err != nil {
		return nil, storageError(err, "")
	}

	filters := input.Filters
	if filters == nil {
		filters = map[string]string{}
	}

	report := &entity.Report{
		ReportType:      reportType,
		ReportName:      ReportName(reportType),
		ShopID:          input.ShopID,
		StartDate:       start,
		EndDate:         end,
		IncludeInactive: input.IncludeInactive,
		Filters:         filters,
		Metrics:         AggregateBills(bills),
		Status:          entity.ReportStatusGenerated,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, storageError(err, "Report already exists")
	}
	return report, nil
}

// GetReport retrieves a stored report
func (s *ReportService) GetReport(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "")
	}
	if report == nil {
		return nil, apperror.NewNotFoundError("Report")
	}
	return report, nil
}

// ListReports lists stored reports, newest first
func (s *ReportService) ListReports(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Report], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	reports, total, err := s.reportRepo.List(ctx, params)
	if err != nil {
		return nil, storageError(err, "")
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(reports, pag), nil
}

// ExportedReport is a rendered report file
type ExportedReport struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportReport renders a stored report as an xlsx workbook
func (s *ReportService) ExportReport(ctx context.Context, id uuid.UUID) (*ExportedReport, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := export.ReportXLSX(report)
	if err != nil {
		return nil, apperror.NewStorageError("Failed to render report", err)
	}

	return &ExportedReport{
		Filename:    strings.ToLower(strings.ReplaceAll(report.ReportType, " ", "_")) + "_" + report.StartDate.Format(dateOnly) + ".xlsx",
		ContentType: export.XLSXContentType,
		Content:     content,
	}, nil
}

// SalesMetrics is the quick sales overview
type SalesMetrics struct {
	TodaySales       decimal.Decimal `json:"today_sales"`
	TodayBills       int64           `json:"today_bills"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalBills       int64           `json:"total_bills"`
	AverageBillValue decimal.Decimal `json:"average_bill_value"`
}

// GetMetrics summarizes today's and all-time sales of active bills
func (s *ReportService) GetMetrics(ctx context.Context) (*SalesMetrics, error) {
	today := startOfDay(s.now())
	tomorrow := today.AddDate(0, 0, 1)

	daily, err := s.billRepo.Summarize(ctx, &today, &tomorrow)
	if err != nil {
		return nil, storageError(err, "")
	}
	overall, err := s.billRepo.Summarize(ctx, nil, nil)
	if err != nil {
		return nil, storageError(err, "")
	}

	result := &SalesMetrics{
		TodaySales:       money(daily.TotalAmount),
		TodayBills:       daily.Count,
		TotalRevenue:     money(overall.TotalAmount),
		TotalBills:       overall.Count,
		AverageBillValue: decimal.Zero,
	}
	if overall.Count > 0 {
		result.AverageBillValue = result.TotalRevenue.
			Div(decimal.NewFromInt(overall.Count)).
			Round(pricing.MoneyPlaces)
	}
	return result, nil
}

// ReportName derives a display name from a report type, e.g.
// "daily_sales" becomes "DAILY SALES Report".
func ReportName(reportType string) string {
	return strings.ToUpper(strings.ReplaceAll(reportType, "_", " ")) + " Report"
}

func parseReportStart(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(dateOnly, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// parseReportUpperBound turns an inclusive end into an exclusive bound at the
// microsecond precision timestamps are stored with: the midnight after a
// date-only end, or the next microsecond after an instant.
func parseReportUpperBound(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(dateOnly, value); err == nil {
		return t.AddDate(0, 0, 1), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC().Truncate(time.Microsecond).Add(time.Microsecond), nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func money(v decimal.Decimal) decimal.Decimal {
	return v.Round(pricing.MoneyPlaces)
}
