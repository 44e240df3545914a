// Package testkit builds throwaway databases and fixtures for package tests.
package testkit

import (
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/config"
	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/sangkips/shopbill-api/internal/infrastructure/database"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Logger returns a logrus logger that discards output.
func Logger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// NewDB opens a migrated in-memory sqlite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}
	db, err := database.Open(cfg, Logger(), false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Shop inserts an active shop.
func Shop(t *testing.T, db *gorm.DB) *entity.Shop {
	t.Helper()

	suffix := uuid.NewString()[:8]
	shop := &entity.Shop{
		ShopName:      "Shop " + suffix,
		OwnerName:     "Owner",
		Email:         suffix + "@shop.test",
		Phone:         "+919876543210",
		GSTRate:       decimal.NewFromInt(18),
		InvoicePrefix: entity.DefaultInvoicePrefix,
		IsActive:      true,
	}
	require.NoError(t, db.Create(shop).Error)
	return shop
}

// Category inserts an active category.
func Category(t *testing.T, db *gorm.DB) *entity.Category {
	t.Helper()

	suffix := uuid.NewString()[:8]
	category := &entity.Category{
		CategoryCode: "CAT-" + suffix,
		CategoryName: "Category " + suffix,
		Emoji:        entity.DefaultCategoryEmoji,
		IsActive:     true,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

// Product inserts an active product with the given base price, tax rate and stock.
func Product(t *testing.T, db *gorm.DB, categoryID uuid.UUID, basePrice, taxRate string, stock int) *entity.Product {
	t.Helper()

	suffix := uuid.NewString()[:8]
	product := &entity.Product{
		ProductCode:     "PRD-" + suffix,
		Name:            "Product " + suffix,
		CategoryID:      categoryID,
		BasePrice:       decimal.RequireFromString(basePrice),
		DiscountPercent: decimal.Zero,
		TaxRatePercent:  decimal.RequireFromString(taxRate),
		Stock:           entity.Stock{Current: stock, Minimum: 5, Maximum: 1000},
		IsActive:        true,
	}
	product.RecalculateFinalPrice()
	require.NoError(t, db.Create(product).Error)
	return product
}

// StockOf reads the current stock of a product straight from the table.
func StockOf(t *testing.T, db *gorm.DB, productID uuid.UUID) int {
	t.Helper()

	var product entity.Product
	require.NoError(t, db.First(&product, "id = ?", productID).Error)
	return product.Stock.Current
}
