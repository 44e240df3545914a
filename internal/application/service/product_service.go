package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/sangkips/shopbill-api/internal/domain/repository"
	"github.com/sangkips/shopbill-api/pkg/apperror"
	"github.com/sangkips/shopbill-api/pkg/logger"
	"github.com/sangkips/shopbill-api/pkg/pagination"
	"github.com/sangkips/shopbill-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var hundredPercent = decimal.NewFromInt(100)

// ProductService handles product-related operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	log          *logrus.Entry
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		log:          logger.WithModule("product_service"),
	}
}

// StockInput carries stock counters. Current is only honoured on create.
type StockInput struct {
	Current  *int
	Minimum  *int
	Maximum  *int
	Reserved *int
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name            string
	Code            string
	CategoryID      uuid.UUID
	BasePrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxRatePercent  decimal.Decimal
	Stock           StockInput
	Description     string
	Image           string
}

// CreateProduct creates a new product with its final price derived from the
// price inputs.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}
	if input.CategoryID == uuid.Nil {
		return nil, apperror.NewBadRequestError("Category ID is required")
	}
	if err := validatePriceInputs(input.BasePrice, input.DiscountPercent, input.TaxRatePercent); err != nil {
		return nil, err
	}

	if err := s.requireCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(input.Code)
	if code == "" {
		code = utils.GenerateProductCode()
	}

	product := &entity.Product{
		ProductCode:     code,
		Name:            name,
		CategoryID:      input.CategoryID,
		BasePrice:       input.BasePrice,
		DiscountPercent: input.DiscountPercent,
		TaxRatePercent:  input.TaxRatePercent,
		Description:     input.Description,
		Image:           input.Image,
		IsActive:        true,
	}
	if input.Stock.Current != nil {
		product.Stock.Current = *input.Stock.Current
	}
	applyStockLimits(&product.Stock, input.Stock)
	if err := validateStock(product.Stock); err != nil {
		return nil, err
	}
	product.RecalculateFinalPrice()

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, storageError(err, "Product code already exists")
	}

	return s.GetProduct(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "")
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, storageError(err, "")
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// ListCategoryProducts lists the active products of one category
func (s *ProductService) ListCategoryProducts(ctx context.Context, categoryID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Product], error) {
	if err := s.requireCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.ListProducts(ctx, &repository.ProductFilterParams{
		Pagination: params,
		CategoryID: &categoryID,
		ActiveOnly: true,
		SortBy:     "name",
		SortOrder:  "asc",
	})
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ProductID       uuid.UUID
	Name            *string
	CategoryID      *uuid.UUID
	BasePrice       *decimal.Decimal
	DiscountPercent *decimal.Decimal
	TaxRatePercent  *decimal.Decimal
	Stock           StockInput
	Description     *string
	Image           *string
	IsActive        *bool
}

// UpdateProduct updates a product and re-derives its final price. Current
// stock is not writable here; use RestockProduct or bills.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	if input.Stock.Current != nil && *input.Stock.Current != product.Stock.Current {
		return nil, apperror.NewBadRequestError("Current stock changes only through bills or restocking")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewBadRequestError("Product name cannot be empty")
		}
		product.Name = name
	}
	if input.CategoryID != nil && *input.CategoryID != product.CategoryID {
		if err := s.requireCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *input.CategoryID
		product.Category = nil
	}
	if input.BasePrice != nil {
		product.BasePrice = *input.BasePrice
	}
	if input.DiscountPercent != nil {
		product.DiscountPercent = *input.DiscountPercent
	}
	if input.TaxRatePercent != nil {
		product.TaxRatePercent = *input.TaxRatePercent
	}
	if err := validatePriceInputs(product.BasePrice, product.DiscountPercent, product.TaxRatePercent); err != nil {
		return nil, err
	}
	applyStockLimits(&product.Stock, input.Stock)
	if err := validateStock(product.Stock); err != nil {
		return nil, err
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	product.RecalculateFinalPrice()
	product.UpdatedAt = time.Now().UTC()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, storageError(err, "Product code already exists")
	}

	return s.GetProduct(ctx, product.ID)
}

// RestockProduct adds received quantity to current stock
func (s *ProductService) RestockProduct(ctx context.Context, id uuid.UUID, quantity int) (*entity.Product, error) {
	if quantity < 1 {
		return nil, apperror.NewBadRequestError("Restock quantity must be at least 1")
	}
	if err := s.productRepo.ReleaseStock(ctx, id, quantity); err != nil {
		return nil, stockError(err, "", quantity, 0)
	}
	warnAboveMaximum(ctx, s.productRepo, s.log, id)
	return s.GetProduct(ctx, id)
}

// DeleteProduct deactivates a product. Products are never removed so bills
// keep resolving their lines.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Deactivate(ctx, id); err != nil {
		return storageError(err, "")
	}
	return nil
}

// GetLowStockProducts lists active products at or below their minimum stock
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, storageError(err, "")
	}
	return products, nil
}

func (s *ProductService) requireCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return storageError(err, "")
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return nil
}

func validatePriceInputs(base, discount, tax decimal.Decimal) error {
	if base.IsNegative() {
		return apperror.NewBadRequestError("Base price cannot be negative")
	}
	if discount.IsNegative() || discount.GreaterThan(hundredPercent) {
		return apperror.NewBadRequestError("Discount must be between 0 and 100")
	}
	if tax.IsNegative() {
		return apperror.NewBadRequestError("Tax rate cannot be negative")
	}
	return nil
}

func applyStockLimits(stock *entity.Stock, in StockInput) {
	if in.Minimum != nil {
		stock.Minimum = *in.Minimum
	}
	if in.Maximum != nil {
		stock.Maximum = *in.Maximum
	}
	if in.Reserved != nil {
		stock.Reserved = *in.Reserved
	}
}

func validateStock(stock entity.Stock) error {
	if stock.Current < 0 || stock.Minimum < 0 || stock.Maximum < 0 || stock.Reserved < 0 {
		return apperror.NewBadRequestError("Stock values cannot be negative")
	}
	if stock.Maximum > 0 && stock.Minimum > stock.Maximum {
		return apperror.NewBadRequestError("Minimum stock cannot exceed maximum stock")
	}
	return nil
}
