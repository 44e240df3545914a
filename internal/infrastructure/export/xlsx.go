// Package export renders stored reports as spreadsheets.
package export

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the MIME type of the generated workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	summarySheet  = "Summary"
	productsSheet = "Top Products"
	paymentsSheet = "Payments"
)

// ReportXLSX writes the report metrics into a workbook with a summary sheet,
// the top selling products and the payment method breakdown.
func ReportXLSX(report *entity.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	m := report.Metrics
	summary := [][]interface{}{
		{"Report", report.ReportName},
		{"Type", report.ReportType},
		{"Start date", report.StartDate.Format("2006-01-02")},
		{"End date", report.EndDate.Format("2006-01-02")},
		{"Include inactive", report.IncludeInactive},
		{"Total bills", m.TotalBills},
		{"Total revenue", m.TotalRevenue.InexactFloat64()},
		{"Total tax", m.TotalTax.InexactFloat64()},
		{"Average bill value", m.AverageBillValue.InexactFloat64()},
		{"Total quantity sold", m.TotalQuantitySold},
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(productsSheet); err != nil {
		return nil, err
	}
	products := [][]interface{}{{"Rank", "Product", "Quantity"}}
	for i, p := range m.TopSellingProducts {
		products = append(products, []interface{}{i + 1, p.ProductName, p.Quantity})
	}
	if err := writeRows(f, productsSheet, products); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(paymentsSheet); err != nil {
		return nil, err
	}
	methods := make([]string, 0, len(m.PaymentBreakdown))
	for method := range m.PaymentBreakdown {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	payments := [][]interface{}{{"Payment method", "Revenue"}}
	for _, method := range methods {
		payments = append(payments, []interface{}{method, m.PaymentBreakdown[method].InexactFloat64()})
	}
	if err := writeRows(f, paymentsSheet, payments); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
