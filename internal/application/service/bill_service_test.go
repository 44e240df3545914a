package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/sangkips/shopbill-api/internal/domain/enum"
	"github.com/sangkips/shopbill-api/internal/domain/repository"
	infraRepo "github.com/sangkips/shopbill-api/internal/infrastructure/repository"
	"github.com/sangkips/shopbill-api/internal/infrastructure/lock"
	"github.com/sangkips/shopbill-api/internal/infrastructure/sequence"
	"github.com/sangkips/shopbill-api/internal/infrastructure/storage"
	"github.com/sangkips/shopbill-api/internal/testkit"
	"github.com/sangkips/shopbill-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type billFixture struct {
	db       *gorm.DB
	bills    *BillService
	reports  *ReportService
	shop     *entity.Shop
	category *entity.Category
}

func newBillFixture(t *testing.T) *billFixture {
	return newBillFixtureWith(t, nil)
}

// newBillFixtureWith lets a test decorate the bill and product repositories.
func newBillFixtureWith(t *testing.T, wrap func(repository.BillRepository, repository.ProductRepository) (repository.BillRepository, repository.ProductRepository)) *billFixture {
	t.Helper()

	db := testkit.NewDB(t)
	disk, err := storage.NewLocalDisk(t.TempDir(), "http://files.test")
	require.NoError(t, err)

	billRepo := infraRepo.NewBillRepository(db)
	shopRepo := infraRepo.NewShopRepository(db)
	productRepo := infraRepo.NewProductRepository(db)
	if wrap != nil {
		billRepo, productRepo = wrap(billRepo, productRepo)
	}

	return &billFixture{
		db: db,
		bills: NewBillService(
			billRepo,
			productRepo,
			shopRepo,
			sequence.NewGenerator(infraRepo.NewCounterRepository(db), "BILL"),
			lock.NewLocalLocker(time.Second),
			disk,
		),
		reports:  NewReportService(infraRepo.NewReportRepository(db), billRepo, shopRepo),
		shop:     testkit.Shop(t, db),
		category: testkit.Category(t, db),
	}
}

func (f *billFixture) product(t *testing.T, price string, stock int) *entity.Product {
	return testkit.Product(t, f.db, f.category.ID, price, "0", stock)
}

func (f *billFixture) create(t *testing.T, items ...BillItemInput) *entity.Bill {
	t.Helper()
	bill, err := f.bills.CreateBill(context.Background(), &CreateBillInput{ShopID: f.shop.ID, Items: items})
	require.NoError(t, err)
	return bill
}

func TestCreateBillDeductsStock(t *testing.T) {
	f := newBillFixture(t)
	p := testkit.Product(t, f.db, f.category.ID, "1000", "18", 100)

	bill := f.create(t, BillItemInput{ProductID: p.ID, Quantity: 5})

	assert.Equal(t, 95, testkit.StockOf(t, f.db, p.ID))
	assert.Regexp(t, regexp.MustCompile(`^BILL-\d{8}-\d{6}$`), bill.BillNumber)
	assert.Equal(t, int64(1), bill.Sequence)
	assert.Equal(t, enum.PaymentMethodCash, bill.PaymentMethod)
	assert.Equal(t, enum.PaymentStatusCompleted, bill.PaymentStatus)
	assert.True(t, bill.IsActive)

	require.Len(t, bill.Items, 1)
	item := bill.Items[0]
	assert.Equal(t, p.Name, item.ProductName)
	assert.True(t, decimal.NewFromInt(1180).Equal(item.FinalPrice), item.FinalPrice.String())
	assert.True(t, decimal.NewFromInt(5900).Equal(item.TotalPrice), item.TotalPrice.String())

	assert.True(t, decimal.NewFromInt(5900).Equal(bill.Subtotal), bill.Subtotal.String())
	assert.True(t, decimal.NewFromInt(1062).Equal(bill.TaxAmount), bill.TaxAmount.String())
	assert.True(t, bill.Subtotal.Add(bill.TaxAmount).Sub(bill.DiscountAmount).Equal(bill.TotalAmount))
}

func TestCreateBillHonoursOverrides(t *testing.T) {
	f := newBillFixture(t)
	p := f.product(t, "100", 10)
	total := decimal.NewFromInt(42)

	bill, err := f.bills.CreateBill(context.Background(), &CreateBillInput{
		ShopID:        f.shop.ID,
		Items:         []BillItemInput{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: enum.PaymentMethodUPI,
		TotalAmount:   &total,
	})
	require.NoError(t, err)

	assert.True(t, total.Equal(bill.TotalAmount))
	assert.Equal(t, enum.PaymentMethodUPI, bill.PaymentMethod)
}

func TestCreateBillNumbersIncrease(t *testing.T) {
	f := newBillFixture(t)
	p := f.product(t, "10", 10)

	first := f.create(t, BillItemInput{ProductID: p.ID, Quantity: 1})
	second := f.create(t, BillItemInput{ProductID: p.ID, Quantity: 1})

	assert.NotEqual(t, first.BillNumber, second.BillNumber)
	assert.Equal(t, first.Sequence+1, second.Sequence)
}

func TestCreateBillRejectsInvalidInput(t *testing.T) {
	f := newBillFixture(t)
	p := f.product(t, "10", 10)
	ctx := context.Background()

	_, err := f.bills.CreateBill(ctx, &CreateBillInput{ShopID: f.shop.ID})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	_, err = f.bills.CreateBill(ctx, &CreateBillInput{Items: []BillItemInput{{ProductID: p.ID, Quantity: 1}}})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	_, err = f.bills.CreateBill(ctx, &CreateBillInput{ShopID: uuid.New(), Items: []BillItemInput{{ProductID: p.ID, Quantity: 1}}})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.bills.CreateBill(ctx, &CreateBillInput{ShopID: f.shop.ID, Items: []BillItemInput{{ProductID: uuid.New(), Quantity: 1}}})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.bills.CreateBill(ctx, &CreateBillInput{ShopID: f.shop.ID, Items: []BillItemInput{{ProductID: p.ID, Quantity: 0}}})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	_, err = f.bills.CreateBill(ctx, &CreateBillInput{
		ShopID:        f.shop.ID,
		Items:         []BillItemInput{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: enum.PaymentMethod("barter"),
	})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	require.NoError(t, f.db.Model(&entity.Product{}).Where("id = ?", p.ID).Update("is_active", false).Error)
	_, err = f.bills.CreateBill(ctx, &CreateBillInput{ShopID: f.shop.ID, Items: []BillItemInput{{ProductID: p.ID, Quantity: 1}}})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	assert.Equal(t, 10, testkit.StockOf(t, f.db, p.ID))
}

func TestCreateBillInsufficientStockLeavesStockUnchanged(t *testing.T) {
	f := newBillFixture(t)
	p := f.product(t, "10", 100)

	_, err := f.bills.CreateBill(context.Background(), &CreateBillInput{
		ShopID: f.shop.ID,
		Items:  []BillItemInput{{ProductID: p.ID, Quantity: 101}},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "available 100")
	assert.Equal(t, 100, testkit.StockOf(t, f.db, p.ID))
}

func TestCreateBillRollsBackEarlierItems(t *testing.T) {
	f := newBillFixture(t)
	plenty := f.product(t, "10", 10)
	scarce := f.product(t, "10", 1)

	_, err := f.bills.CreateBill(context.Background(), &CreateBillInput{
		ShopID: f.shop.ID,
		Items: []BillItemInput{
			{ProductID: plenty.ID, Quantity: 5},
			{ProductID: scarce.ID, Quantity: 2},
		},
	})

	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	assert.Equal(t, 10, testkit.StockOf(t, f.db, plenty.ID))
	assert.Equal(t, 1, testkit.StockOf(t, f.db, scarce.ID))

	var count int64
	require.NoError(t, f.db.Model(&entity.Bill{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateBillReplacesItems(t *testing.T) {
	f := newBillFixture(t)
	p := f.product(t, "100", 100)
	bill := f.create(t, BillItemInput{ProductID: p.ID, Quantity: 5})
	require.Equal(t, 95, testkit.StockOf(t, f.db, p.ID))

	updated, err := f.bills.UpdateBill(context.Background(), &UpdateBillInput{
		BillID: bill.ID,
		Items:  []BillItemInput{{ProductID: p.ID, Quantity: 8}},
	})
	require.NoError(t, err)

	assert.Equal(t, 92, testkit.StockOf(t, f.db, p.ID))
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 8, updated.Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(800).Equal(updated.TotalAmount), updated.TotalAmount.String())
}

func TestUpdateBillScalarFieldsOnly(t *testing.T) {
	f := newBillFixture(t)
	p := f.product(t, "100", 100)
	bill := f.create(t, BillItemInput{ProductID: p.ID, Quantity: 5})

	status := enum.PaymentStatusPending
	notes := "pay later"
	updated, err := f.bills.UpdateBill(context.Background(), &UpdateBillInput{
		BillID:        bill.ID,
		PaymentStatus: &status,
		Notes:         &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.PaymentStatusPending, updated.PaymentStatus)
	assert.Equal(t, "pay later", updated.Notes)
	assert.Len(t, updated.Items, 1)
	assert.True(t, bill.TotalAmount.Equal(updated.TotalAmount))
	assert.Equal(t, 95, testkit.StockOf(t, f.db, p.ID))
}

func TestUpdateBillFailureRestoresPreviousStock(t *testing.T) {
	f := newBillFixture(t)
	first := f.product(t, "10", 10)
	scarce := f.product(t, "10", 1)
	bill := f.create(t, BillItemInput{ProductID: first.ID, Quantity: 5})

	_, err := f.bills.UpdateBill(context.Background(), &UpdateBillInput{
		BillID: bill.ID,
		Items: []BillItemInput{
			{ProductID: first.ID, Quantity: 3},
			{ProductID: scarce.ID, Quantity: 5},
		},
	})

	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	assert.Equal(t, 5, testkit.StockOf(t, f.db, first.ID))
	assert.Equal(t, 1, testkit.StockOf(t, f.db, scarce.ID))

	stored, err := f.bills.GetBill(context.Background(), bill.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 5, stored.Items[0].Quantity)
}

var errDatabaseDown = errors.New("db down")

type failingBillRepo struct {
	repository.BillRepository
	failCreate bool
	failUpdate bool
}

func (r *failingBillRepo) Create(ctx context.Context, bill *entity.Bill) error {
	if r.failCreate {
		return errDatabaseDown
	}
	return r.BillRepository.Create(ctx, bill)
}

func (r *failingBillRepo) Update(ctx context.Context, bill *entity.Bill, replaceItems bool) error {
	if r.failUpdate {
		return errDatabaseDown
	}
	return r.BillRepository.Update(ctx, bill, replaceItems)
}

type failingReleaseRepo struct {
	repository.ProductRepository
	failFor uuid.UUID
}

func (r *failingReleaseRepo) ReleaseStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if id == r.failFor {
		return errDatabaseDown
	}
	return r.ProductRepository.ReleaseStock(ctx, id, quantity)
}

func TestCreateBillPersistFailureRestoresStock(t *testing.T) {
	bills := &failingBillRepo{}
	f := newBillFixtureWith(t, func(b repository.BillRepository, p repository.ProductRepository) (repository.BillRepository, repository.ProductRepository) {
		bills.BillRepository = b
		return bills, p
	})
	first := f.product(t, "10", 100)
	second := f.product(t, "20", 100)

	bills.failCreate = true
	_, err := f.bills.CreateBill(context.Background(), &CreateBillInput{
		ShopID: f.shop.ID,
		Items: []BillItemInput{
			{ProductID: first.ID, Quantity: 5},
			{ProductID: second.ID, Quantity: 7},
		},
	})

	assert.ErrorIs(t, err, apperror.ErrInternalServer)
	assert.Equal(t, 100, testkit.StockOf(t, f.db, first.ID))
	assert.Equal(t, 100, testkit.StockOf(t, f.db, second.ID))

	var count int64
	require.NoError(t, f.db.Model(&entity.Bill{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateBillPersistFailureRestoresStock(t *testing.T) {
	bills := &failingBillRepo{}
	f := newBillFixtureWith(t, func(b repository.BillRepository, p repository.ProductRepository) (repository.BillRepository, repository.ProductRepository) {
		bills.BillRepository = b
		return bills, p
	})
	first := f.product(t, "10", 100)
	second := f.product(t, "20", 100)
	bill := f.create(t, BillItemInput{ProductID: first.ID, Quantity: 5})

	bills.failUpdate = true
	_, err := f.bills.UpdateBill(context.Background(), &UpdateBillInput{
		BillID: bill.ID,
		Items: []BillItemInput{
			{ProductID: first.ID, Quantity: 2},
			{ProductID: second.ID, Quantity: 9},
		},
	})

	assert.ErrorIs(t, err, apperror.ErrInternalServer)
	assert.Equal(t, 95, testkit.StockOf(t, f.db, first.ID))
	assert.Equal(t, 100, testkit.StockOf(t, f.db, second.ID))

	stored, err := f.bills.GetBill(context.Background(), bill.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 5, stored.Items[0].Quantity)
}

func TestDeleteBillReleaseFailureKeepsBillActive(t *testing.T) {
	products := &failingReleaseRepo{}
	f := newBillFixtureWith(t, func(b repository.BillRepository, p repository.ProductRepository) (repository.BillRepository, repository.ProductRepository) {
		products.ProductRepository = p
		return b, products
	})
	first := f.product(t, "10", 100)
	second := f.product(t, "20", 100)
	bill := f.create(t,
		BillItemInput{ProductID: first.ID, Quantity: 5},
		BillItemInput{ProductID: second.ID, Quantity: 7},
	)

	products.failFor = second.ID
	err := f.bills.DeleteBill(context.Background(), bill.ID)

	assert.ErrorIs(t, err, apperror.ErrInternalServer)
	assert.Equal(t, 95, testkit.StockOf(t, f.db, first.ID))
	assert.Equal(t, 93, testkit.StockOf(t, f.db, second.ID))

	stored, err := f.bills.GetBill(context.Background(), bill.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)

	products.failFor = uuid.Nil
	require.NoError(t, f.bills.DeleteBill(context.Background(), bill.ID))
	assert.Equal(t, 100, testkit.StockOf(t, f.db, first.ID))
	assert.Equal(t, 100, testkit.StockOf(t, f.db, second.ID))
}

func TestDeleteBillRestoresStockOnce(t *testing.T) {
	f := newBillFixture(t)
	p := f.product(t, "100", 100)
	bill := f.create(t, BillItemInput{ProductID: p.ID, Quantity: 5})
	ctx := context.Background()

	require.NoError(t, f.bills.DeleteBill(ctx, bill.ID))
	assert.Equal(t, 100, testkit.StockOf(t, f.db, p.ID))

	err := f.bills.DeleteBill(ctx, bill.ID)
	assert.ErrorIs(t, err, apperror.ErrAlreadyDeleted)
	assert.Equal(t, 100, testkit.StockOf(t, f.db, p.ID))

	_, err = f.bills.UpdateBill(ctx, &UpdateBillInput{BillID: bill.ID, Items: []BillItemInput{{ProductID: p.ID, Quantity: 1}}})
	assert.ErrorIs(t, err, apperror.ErrAlreadyDeleted)
	assert.Equal(t, 100, testkit.StockOf(t, f.db, p.ID))

	_, err = f.bills.GetBillByNumber(ctx, bill.BillNumber)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	assert.ErrorIs(t, f.bills.DeleteBill(ctx, uuid.New()), apperror.ErrNotFound)
}

func TestAttachPDF(t *testing.T) {
	f := newBillFixture(t)
	p := f.product(t, "10", 10)
	bill := f.create(t, BillItemInput{ProductID: p.ID, Quantity: 1})
	ctx := context.Background()

	_, err := f.bills.AttachPDF(ctx, bill.ID, []byte("plain text"))
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	updated, err := f.bills.AttachPDF(ctx, bill.ID, []byte("%PDF-1.7 body"))
	require.NoError(t, err)
	assert.Equal(t, "http://files.test/bills/"+bill.BillNumber+".pdf", updated.PDFURL)

	stored, err := f.bills.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.PDFURL, stored.PDFURL)
}

func TestListShopBills(t *testing.T) {
	f := newBillFixture(t)
	p := f.product(t, "10", 10)
	f.create(t, BillItemInput{ProductID: p.ID, Quantity: 1})
	deleted := f.create(t, BillItemInput{ProductID: p.ID, Quantity: 1})
	require.NoError(t, f.bills.DeleteBill(context.Background(), deleted.ID))

	result, err := f.bills.ListShopBills(context.Background(), f.shop.ID, nil)
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Pagination.Total)

	_, err = f.bills.ListShopBills(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
