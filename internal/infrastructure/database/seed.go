package database

import (
	"fmt"

	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SeedDefaultData creates a demo shop, a category and a set of stocked
// products when the catalog is empty.
func SeedDefaultData(db *gorm.DB, log *logrus.Logger) error {
	var count int64
	if err := db.Model(&entity.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		log.Info("Catalog already populated, skipping seed")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		shop := entity.Shop{
			ShopName:      "Demo Store",
			OwnerName:     "Store Owner",
			Email:         "owner@demo.store",
			Phone:         "+919876543210",
			GSTRate:       decimal.NewFromInt(18),
			InvoicePrefix: entity.DefaultInvoicePrefix,
			IsActive:      true,
		}
		if err := tx.Create(&shop).Error; err != nil {
			return fmt.Errorf("failed to seed shop: %w", err)
		}

		category := entity.Category{
			CategoryCode: "CAT-DEMO",
			CategoryName: "General",
			Description:  "Seeded category",
			Emoji:        entity.DefaultCategoryEmoji,
			IsActive:     true,
		}
		if err := tx.Create(&category).Error; err != nil {
			return fmt.Errorf("failed to seed category: %w", err)
		}

		products := make([]entity.Product, 0, 30)
		for i := 1; i <= 30; i++ {
			p := entity.Product{
				ProductCode:     fmt.Sprintf("PRD-DEMO%02d", i),
				Name:            fmt.Sprintf("Test Product %d", i),
				CategoryID:      category.ID,
				BasePrice:       decimal.NewFromInt(int64(500 + i*50)),
				DiscountPercent: decimal.Zero,
				TaxRatePercent:  decimal.NewFromInt(18),
				Stock:           entity.Stock{Current: 100 + i*5, Minimum: 10},
				Description:     fmt.Sprintf("Test product %d", i),
				IsActive:        true,
			}
			p.RecalculateFinalPrice()
			products = append(products, p)
		}
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}

		log.WithFields(logrus.Fields{
			"shop_id":  shop.ID,
			"products": len(products),
		}).Info("Default data seeding completed")
		return nil
	})
}
