package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/sangkips/shopbill-api/internal/domain/enum"
	domainRepo "github.com/sangkips/shopbill-api/internal/domain/repository"
	"github.com/sangkips/shopbill-api/internal/testkit"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBill(t *testing.T, db *gorm.DB, number string, total int64) *entity.Bill {
	t.Helper()

	shop := testkit.Shop(t, db)
	category := testkit.Category(t, db)
	product := testkit.Product(t, db, category.ID, "50", "0", 10)

	amount := decimal.NewFromInt(total)
	bill := &entity.Bill{
		BillNumber:     number,
		ShopID:         shop.ID,
		Subtotal:       amount,
		DiscountAmount: decimal.Zero,
		TaxAmount:      decimal.Zero,
		TotalAmount:    amount,
		PaymentMethod:  enum.PaymentMethodCash,
		PaymentStatus:  enum.PaymentStatusCompleted,
		IsActive:       true,
		Items: []entity.BillItem{
			{Position: 1, ProductID: product.ID, ProductName: product.Name, BasePrice: product.BasePrice,
				FinalPrice: product.FinalPrice, TaxRatePercent: product.TaxRatePercent, Quantity: 2, TotalPrice: amount},
			{Position: 0, ProductID: product.ID, ProductName: product.Name, BasePrice: product.BasePrice,
				FinalPrice: product.FinalPrice, TaxRatePercent: product.TaxRatePercent, Quantity: 1, TotalPrice: decimal.Zero},
		},
	}
	require.NoError(t, NewBillRepository(db).Create(context.Background(), bill))
	return bill
}

func TestBillCreateAndLoadKeepsItemOrder(t *testing.T) {
	db := testkit.NewDB(t)
	repo := NewBillRepository(db)
	ctx := context.Background()

	bill := newBill(t, db, "BILL-1", 100)

	loaded, err := repo.GetByID(ctx, bill.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, 0, loaded.Items[0].Position)
	assert.Equal(t, 1, loaded.Items[1].Position)
	assert.True(t, loaded.TotalAmount.Equal(decimal.NewFromInt(100)))

	byNumber, err := repo.GetByNumber(ctx, "BILL-1")
	require.NoError(t, err)
	require.NotNil(t, byNumber)
	assert.Equal(t, bill.ID, byNumber.ID)
}

func TestBillDeactivateIsConditional(t *testing.T) {
	db := testkit.NewDB(t)
	repo := NewBillRepository(db)
	ctx := context.Background()

	bill := newBill(t, db, "BILL-2", 100)

	require.NoError(t, repo.Deactivate(ctx, bill.ID))
	assert.ErrorIs(t, repo.Deactivate(ctx, bill.ID), domainRepo.ErrBillNotActive)

	missing, err := repo.GetByNumber(ctx, "BILL-2")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Reactivate(ctx, bill.ID))
	require.NoError(t, repo.Deactivate(ctx, bill.ID))
}

func TestBillUpdateReplacesItems(t *testing.T) {
	db := testkit.NewDB(t)
	repo := NewBillRepository(db)
	ctx := context.Background()

	bill := newBill(t, db, "BILL-3", 100)
	bill.Items = bill.Items[:1]
	bill.Items[0].Quantity = 9
	bill.Notes = "edited"

	require.NoError(t, repo.Update(ctx, bill, true))

	loaded, err := repo.GetByID(ctx, bill.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 9, loaded.Items[0].Quantity)
	assert.Equal(t, "edited", loaded.Notes)
}

func TestBillRangeAndSummary(t *testing.T) {
	db := testkit.NewDB(t)
	repo := NewBillRepository(db)
	ctx := context.Background()

	newBill(t, db, "BILL-A", 100)
	deleted := newBill(t, db, "BILL-B", 200)
	require.NoError(t, repo.Deactivate(ctx, deleted.ID))

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)

	active, err := repo.ListInRange(ctx, &domainRepo.BillRangeParams{From: from, To: to})
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := repo.ListInRange(ctx, &domainRepo.BillRangeParams{From: from, To: to, IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	summary, err := repo.Summarize(ctx, &from, &to)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Count)
	assert.True(t, decimal.NewFromInt(100).Equal(summary.TotalAmount), summary.TotalAmount.String())

	none, err := repo.ListInRange(ctx, &domainRepo.BillRangeParams{From: from, To: active[0].CreatedAt})
	require.NoError(t, err)
	assert.Empty(t, none, "upper bound is exclusive")

	recent, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestCounterNextIsMonotonic(t *testing.T) {
	db := testkit.NewDB(t)
	repo := NewCounterRepository(db)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := repo.Next(ctx, "bills:20261016")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	other, err := repo.Next(ctx, "bills:20261017")
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)
}
