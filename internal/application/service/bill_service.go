package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/sangkips/shopbill-api/internal/domain/enum"
	"github.com/sangkips/shopbill-api/internal/domain/pricing"
	"github.com/sangkips/shopbill-api/internal/domain/repository"
	"github.com/sangkips/shopbill-api/internal/infrastructure/lock"
	"github.com/sangkips/shopbill-api/internal/infrastructure/metrics"
	"github.com/sangkips/shopbill-api/internal/infrastructure/sequence"
	"github.com/sangkips/shopbill-api/internal/infrastructure/storage"
	"github.com/sangkips/shopbill-api/pkg/apperror"
	"github.com/sangkips/shopbill-api/pkg/logger"
	"github.com/sangkips/shopbill-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// BillNumberer hands out bill numbers.
type BillNumberer interface {
	Next(ctx context.Context) (sequence.BillNumber, error)
}

// BillService creates, changes and deletes bills while keeping product stock
// in step with the bill items.
type BillService struct {
	billRepo    repository.BillRepository
	productRepo repository.ProductRepository
	shopRepo    repository.ShopRepository
	numbers     BillNumberer
	locker      lock.Locker
	documents   storage.Disk
	log         *logrus.Entry
}

// NewBillService creates a new bill service
func NewBillService(
	billRepo repository.BillRepository,
	productRepo repository.ProductRepository,
	shopRepo repository.ShopRepository,
	numbers BillNumberer,
	locker lock.Locker,
	documents storage.Disk,
) *BillService {
	return &BillService{
		billRepo:    billRepo,
		productRepo: productRepo,
		shopRepo:    shopRepo,
		numbers:     numbers,
		locker:      locker,
		documents:   documents,
		log:         logger.WithModule("bill_service"),
	}
}

// BillItemInput is one requested bill line
type BillItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateBillInput represents the create bill input. Subtotal, TaxAmount and
// TotalAmount override the computed values when set.
type CreateBillInput struct {
	ShopID         uuid.UUID
	Items          []BillItemInput
	PaymentMethod  enum.PaymentMethod
	PaymentStatus  enum.PaymentStatus
	CustomerName   string
	CustomerPhone  string
	Notes          string
	DiscountAmount decimal.Decimal
	Subtotal       *decimal.Decimal
	TaxAmount      *decimal.Decimal
	TotalAmount    *decimal.Decimal
}

// CreateBill validates the items, takes their quantities out of stock and
// stores the bill. Either every item is reserved and the bill is stored, or
// stock is left exactly as it was.
func (s *BillService) CreateBill(ctx context.Context, input *CreateBillInput) (bill *entity.Bill, err error) {
	defer func() { metrics.RecordBillOperation("create", err) }()

	if input.ShopID == uuid.Nil {
		return nil, apperror.NewBadRequestError("Shop ID is required")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Bill must contain at least one item")
	}
	if input.DiscountAmount.IsNegative() {
		return nil, apperror.NewBadRequestError("Discount amount cannot be negative")
	}

	paymentMethod, paymentStatus, err := paymentDefaults(input.PaymentMethod, input.PaymentStatus)
	if err != nil {
		return nil, err
	}

	shop, err := s.shopRepo.GetByID(ctx, input.ShopID)
	if err != nil {
		return nil, storageError(err, "")
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}

	lines, err := s.priceItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	journal := newStockJournal(s.productRepo, s.log)
	if err := s.reserveLines(ctx, journal, lines); err != nil {
		return nil, err
	}

	number, err := s.numbers.Next(ctx)
	if err != nil {
		s.rollback(ctx, journal, "create")
		return nil, apperror.NewStorageError("Failed to generate bill number", err)
	}

	bill = &entity.Bill{
		BillNumber:     number.Number,
		Sequence:       number.Sequence,
		ShopID:         shop.ID,
		Subtotal:       lines.subtotal,
		DiscountAmount: input.DiscountAmount.Round(pricing.MoneyPlaces),
		TaxAmount:      lines.tax,
		PaymentMethod:  paymentMethod,
		PaymentStatus:  paymentStatus,
		CustomerName:   strings.TrimSpace(input.CustomerName),
		CustomerPhone:  strings.TrimSpace(input.CustomerPhone),
		Notes:          input.Notes,
		IsActive:       true,
		Items:          lines.items,
	}
	if input.Subtotal != nil {
		bill.Subtotal = input.Subtotal.Round(pricing.MoneyPlaces)
	}
	if input.TaxAmount != nil {
		bill.TaxAmount = input.TaxAmount.Round(pricing.MoneyPlaces)
	}
	bill.TotalAmount = pricing.Total(bill.Subtotal, bill.TaxAmount, bill.DiscountAmount)
	if input.TotalAmount != nil {
		bill.TotalAmount = input.TotalAmount.Round(pricing.MoneyPlaces)
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		s.rollback(ctx, journal, "create")
		return nil, storageError(err, "Bill number already exists")
	}

	s.log.WithFields(logrus.Fields{
		"bill_id":     bill.ID,
		"bill_number": bill.BillNumber,
		"items":       len(bill.Items),
		"total":       bill.TotalAmount.String(),
	}).Info("bill created")

	return s.GetBill(ctx, bill.ID)
}

// UpdateBillInput represents the update bill input. Nil fields are left as
// they are. A non-nil Items replaces every line of the bill.
type UpdateBillInput struct {
	BillID         uuid.UUID
	Items          []BillItemInput
	PaymentMethod  *enum.PaymentMethod
	PaymentStatus  *enum.PaymentStatus
	CustomerName   *string
	CustomerPhone  *string
	Notes          *string
	DiscountAmount *decimal.Decimal
}

// UpdateBill changes a bill. When items are replaced the old quantities go
// back to stock before the new ones are taken out; if any step fails the
// stock of every product involved is restored to its previous level.
func (s *BillService) UpdateBill(ctx context.Context, input *UpdateBillInput) (result *entity.Bill, err error) {
	defer func() { metrics.RecordBillOperation("update", err) }()

	if input.Items != nil && len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Bill must contain at least one item")
	}
	if input.DiscountAmount != nil && input.DiscountAmount.IsNegative() {
		return nil, apperror.NewBadRequestError("Discount amount cannot be negative")
	}
	if input.PaymentMethod != nil && !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}
	if input.PaymentStatus != nil && !input.PaymentStatus.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment status")
	}

	held, err := s.obtainLock(ctx, input.BillID)
	if err != nil {
		return nil, err
	}
	defer s.releaseLock(ctx, held)

	bill, err := s.activeBill(ctx, input.BillID)
	if err != nil {
		return nil, err
	}

	journal := newStockJournal(s.productRepo, s.log)
	replaceItems := input.Items != nil
	if replaceItems {
		lines, err := s.priceItems(ctx, input.Items)
		if err != nil {
			return nil, err
		}

		for _, item := range bill.Items {
			if err := journal.release(ctx, item.ProductID, item.Quantity); err != nil {
				s.rollback(ctx, journal, "update")
				return nil, apperror.NewStorageError("Failed to restore stock", err)
			}
		}
		if err := s.reserveLines(ctx, journal, lines); err != nil {
			s.rollback(ctx, journal, "update")
			return nil, err
		}

		bill.Items = lines.items
		bill.Subtotal = lines.subtotal
		bill.TaxAmount = lines.tax
	}

	if input.PaymentMethod != nil {
		bill.PaymentMethod = *input.PaymentMethod
	}
	if input.PaymentStatus != nil {
		bill.PaymentStatus = *input.PaymentStatus
	}
	if input.CustomerName != nil {
		bill.CustomerName = strings.TrimSpace(*input.CustomerName)
	}
	if input.CustomerPhone != nil {
		bill.CustomerPhone = strings.TrimSpace(*input.CustomerPhone)
	}
	if input.Notes != nil {
		bill.Notes = *input.Notes
	}
	if input.DiscountAmount != nil {
		bill.DiscountAmount = input.DiscountAmount.Round(pricing.MoneyPlaces)
	}
	if replaceItems || input.DiscountAmount != nil {
		bill.TotalAmount = pricing.Total(bill.Subtotal, bill.TaxAmount, bill.DiscountAmount)
	}
	bill.UpdatedAt = time.Now().UTC()

	if err := s.billRepo.Update(ctx, bill, replaceItems); err != nil {
		s.rollback(ctx, journal, "update")
		return nil, storageError(err, "Bill already exists")
	}

	s.log.WithFields(logrus.Fields{
		"bill_id":       bill.ID,
		"items_changed": replaceItems,
	}).Info("bill updated")

	return s.GetBill(ctx, bill.ID)
}

// DeleteBill deactivates a bill and returns its quantities to stock. A bill
// that is already inactive is reported as already deleted and stock is not
// touched again.
func (s *BillService) DeleteBill(ctx context.Context, id uuid.UUID) (err error) {
	defer func() { metrics.RecordBillOperation("delete", err) }()

	held, err := s.obtainLock(ctx, id)
	if err != nil {
		return err
	}
	defer s.releaseLock(ctx, held)

	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return storageError(err, "")
	}
	if bill == nil {
		return apperror.NewNotFoundError("Bill")
	}

	if err := s.billRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBillNotActive) {
			return apperror.NewAlreadyDeletedError("Bill")
		}
		return storageError(err, "")
	}

	journal := newStockJournal(s.productRepo, s.log)
	for _, item := range bill.Items {
		if err := journal.release(ctx, item.ProductID, item.Quantity); err != nil {
			s.rollback(ctx, journal, "delete")
			if reErr := s.billRepo.Reactivate(context.WithoutCancel(ctx), id); reErr != nil {
				logger.LogError("bill_service", "DeleteBill", "reactivate after failed stock restore",
					map[string]interface{}{"bill_id": id}, reErr)
			}
			return apperror.NewStorageError("Failed to restore stock", err)
		}
	}

	s.log.WithField("bill_id", id).Info("bill deleted")
	return nil
}

// AttachPDF stores the rendered document of a bill and records its URL.
func (s *BillService) AttachPDF(ctx context.Context, id uuid.UUID, content []byte) (*entity.Bill, error) {
	if len(content) == 0 {
		return nil, apperror.NewBadRequestError("PDF content is required")
	}
	if !bytes.HasPrefix(content, []byte("%PDF")) {
		return nil, apperror.NewBadRequestError("Content is not a PDF document")
	}

	bill, err := s.activeBill(ctx, id)
	if err != nil {
		return nil, err
	}

	path := "bills/" + bill.BillNumber + ".pdf"
	if err := s.documents.Put(ctx, path, content, "application/pdf"); err != nil {
		return nil, apperror.NewStorageError("Failed to store bill document", err)
	}

	url := s.documents.URL(path)
	if err := s.billRepo.SetPDFURL(ctx, id, url); err != nil {
		return nil, storageError(err, "")
	}
	bill.PDFURL = url
	return bill, nil
}

// GetBill retrieves a bill by ID, active or not
func (s *BillService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "")
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// GetBillByNumber retrieves an active bill by its bill number
func (s *BillService) GetBillByNumber(ctx context.Context, number string) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		return nil, storageError(err, "")
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBills lists active bills, newest first
func (s *BillService) ListBills(ctx context.Context, params *repository.BillFilterParams) (*pagination.PaginatedResult[entity.Bill], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, storageError(err, "")
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}

// ListShopBills lists the active bills of one shop
func (s *BillService) ListShopBills(ctx context.Context, shopID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Bill], error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, storageError(err, "")
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}
	return s.ListBills(ctx, &repository.BillFilterParams{Pagination: params, ShopID: &shopID})
}

type pricedLines struct {
	items    []entity.BillItem
	names    map[uuid.UUID]string
	stock    map[uuid.UUID]int
	subtotal decimal.Decimal
	tax      decimal.Decimal
}

// priceItems loads the products of the requested lines and snapshots their
// prices. It has no effect on stock.
func (s *BillService) priceItems(ctx context.Context, inputs []BillItemInput) (*pricedLines, error) {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		if in.ProductID == uuid.Nil {
			return nil, apperror.NewBadRequestError("Product ID is required for every item")
		}
		if in.Quantity < 1 {
			return nil, apperror.NewBadRequestError("Item quantity must be at least 1")
		}
		ids = append(ids, in.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, storageError(err, "")
	}
	byID := make(map[uuid.UUID]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := &pricedLines{
		items:    make([]entity.BillItem, 0, len(inputs)),
		names:    make(map[uuid.UUID]string, len(products)),
		stock:    make(map[uuid.UUID]int, len(products)),
		subtotal: decimal.Zero,
		tax:      decimal.Zero,
	}
	for i, in := range inputs {
		product, ok := byID[in.ProductID]
		if !ok {
			return nil, apperror.NewNotFoundError("Product " + in.ProductID.String())
		}
		if !product.IsActive {
			return nil, apperror.NewBadRequestError("Product " + product.Name + " is not active")
		}

		lineTotal := pricing.LineTotal(product.FinalPrice, in.Quantity)
		lines.subtotal = lines.subtotal.Add(lineTotal)
		lines.tax = lines.tax.Add(pricing.Percent(lineTotal, product.TaxRatePercent))
		lines.names[product.ID] = product.Name
		lines.stock[product.ID] = product.Stock.Current

		lines.items = append(lines.items, entity.BillItem{
			Position:       i,
			ProductID:      product.ID,
			ProductName:    product.Name,
			BasePrice:      product.BasePrice,
			FinalPrice:     product.FinalPrice,
			TaxRatePercent: product.TaxRatePercent,
			Quantity:       in.Quantity,
			TotalPrice:     lineTotal,
		})
	}
	lines.subtotal = lines.subtotal.Round(pricing.MoneyPlaces)
	lines.tax = lines.tax.Round(pricing.MoneyPlaces)
	return lines, nil
}

// reserveLines takes every line out of stock through the journal. On the
// first failure the journal is rolled back.
func (s *BillService) reserveLines(ctx context.Context, journal *stockJournal, lines *pricedLines) error {
	for _, item := range lines.items {
		if err := journal.reserve(ctx, item.ProductID, item.Quantity); err != nil {
			s.rollback(ctx, journal, "reserve")
			available := lines.stock[item.ProductID]
			if current, getErr := s.productRepo.GetByID(ctx, item.ProductID); getErr == nil && current != nil {
				available = current.Stock.Current
			}
			return stockError(err, lines.names[item.ProductID], item.Quantity, available)
		}
	}
	return nil
}

func (s *BillService) rollback(ctx context.Context, journal *stockJournal, operation string) {
	if err := journal.rollback(ctx); err != nil {
		logger.LogError("bill_service", operation, "stock rollback incomplete", nil, err)
	}
}

func (s *BillService) activeBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "")
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	if !bill.IsActive {
		return nil, apperror.NewAlreadyDeletedError("Bill")
	}
	return bill, nil
}

func (s *BillService) obtainLock(ctx context.Context, id uuid.UUID) (lock.Lock, error) {
	held, err := s.locker.Obtain(ctx, "bill:"+id.String())
	if errors.Is(err, lock.ErrNotObtained) {
		return nil, apperror.NewAppError(http.StatusConflict, "Bill is being modified by another request, retry shortly")
	}
	if err != nil {
		return nil, apperror.NewStorageError("Failed to lock bill", err)
	}
	return held, nil
}

func (s *BillService) releaseLock(ctx context.Context, held lock.Lock) {
	if err := held.Release(context.WithoutCancel(ctx)); err != nil {
		s.log.WithError(err).Warn("failed to release bill lock")
	}
}

func paymentDefaults(method enum.PaymentMethod, status enum.PaymentStatus) (enum.PaymentMethod, enum.PaymentStatus, error) {
	if method == "" {
		method = enum.PaymentMethodCash
	}
	if status == "" {
		status = enum.PaymentStatusCompleted
	}
	if !method.IsValid() {
		return "", "", apperror.NewBadRequestError("Invalid payment method")
	}
	if !status.IsValid() {
		return "", "", apperror.NewBadRequestError("Invalid payment status")
	}
	return method, status, nil
}
