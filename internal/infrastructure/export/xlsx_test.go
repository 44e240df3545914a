package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReportXLSX(t *testing.T) {
	report := &entity.Report{
		ReportType: "daily_sales",
		ReportName: "DAILY SALES Report",
		StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Metrics: entity.ReportMetrics{
			TotalBills:       2,
			TotalRevenue:     decimal.NewFromInt(300),
			AverageBillValue: decimal.NewFromInt(150),
			TopSellingProducts: []entity.ProductSales{
				{ProductID: uuid.New(), ProductName: "Tea", Quantity: 7},
			},
			PaymentBreakdown: map[string]decimal.Decimal{
				"upi":  decimal.NewFromInt(200),
				"cash": decimal.NewFromInt(100),
			},
		},
	}

	data, err := ReportXLSX(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, productsSheet, paymentsSheet}, f.GetSheetList())

	name, err := f.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "DAILY SALES Report", name)

	product, err := f.GetCellValue(productsSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Tea", product)

	method, err := f.GetCellValue(paymentsSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "cash", method)
}
