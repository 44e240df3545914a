package service

import (
	"sort"

	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/sangkips/shopbill-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// TopProductsLimit is how many products the top sellers ranking keeps.
const TopProductsLimit = 10

// AggregateBills computes report metrics over bills. Products with equal
// quantities keep the order in which they were first seen.
func AggregateBills(bills []entity.Bill) entity.ReportMetrics {
	metrics := entity.ReportMetrics{
		TotalRevenue:       decimal.Zero,
		TotalTax:           decimal.Zero,
		AverageBillValue:   decimal.Zero,
		TopSellingProducts: []entity.ProductSales{},
		PaymentBreakdown:   map[string]decimal.Decimal{},
	}

	var ranking []entity.ProductSales
	index := map[uuid.UUID]int{}

	for _, bill := range bills {
		metrics.TotalBills++
		metrics.TotalRevenue = metrics.TotalRevenue.Add(bill.TotalAmount)
		metrics.TotalTax = metrics.TotalTax.Add(bill.TaxAmount)

		method := bill.PaymentMethod.String()
		metrics.PaymentBreakdown[method] = metrics.PaymentBreakdown[method].Add(bill.TotalAmount)

		for _, item := range bill.Items {
			metrics.TotalQuantitySold += item.Quantity
			i, seen := index[item.ProductID]
			if !seen {
				index[item.ProductID] = len(ranking)
				ranking = append(ranking, entity.ProductSales{
					ProductID:   item.ProductID,
					ProductName: item.ProductName,
				})
				i = len(ranking) - 1
			}
			ranking[i].Quantity += item.Quantity
		}
	}

	if metrics.TotalBills > 0 {
		metrics.AverageBillValue = metrics.TotalRevenue.
			Div(decimal.NewFromInt(int64(metrics.TotalBills))).
			Round(pricing.MoneyPlaces)
	}

	sort.SliceStable(ranking, func(a, b int) bool {
		return ranking[a].Quantity > ranking[b].Quantity
	})
	if len(ranking) > TopProductsLimit {
		ranking = ranking[:TopProductsLimit]
	}
	if ranking != nil {
		metrics.TopSellingProducts = ranking
	}

	return metrics
}
