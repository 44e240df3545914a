package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	domainRepo "github.com/sangkips/shopbill-api/internal/domain/repository"
	"github.com/sangkips/shopbill-api/internal/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveStock(t *testing.T) {
	db := testkit.NewDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	category := testkit.Category(t, db)
	product := testkit.Product(t, db, category.ID, "100", "18", 10)

	require.NoError(t, repo.ReserveStock(ctx, product.ID, 4))
	assert.Equal(t, 6, testkit.StockOf(t, db, product.ID))

	err := repo.ReserveStock(ctx, product.ID, 7)
	assert.ErrorIs(t, err, domainRepo.ErrInsufficientStock)
	assert.Equal(t, 6, testkit.StockOf(t, db, product.ID))

	require.NoError(t, repo.ReserveStock(ctx, product.ID, 6))
	assert.Equal(t, 0, testkit.StockOf(t, db, product.ID))

	err = repo.ReserveStock(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, domainRepo.ErrProductNotFound)
}

func TestReleaseStock(t *testing.T) {
	db := testkit.NewDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	category := testkit.Category(t, db)
	product := testkit.Product(t, db, category.ID, "100", "18", 10)

	require.NoError(t, repo.ReleaseStock(ctx, product.ID, 5))
	assert.Equal(t, 15, testkit.StockOf(t, db, product.ID))

	err := repo.ReleaseStock(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, domainRepo.ErrProductNotFound)
}

func TestConcurrentReservationsNeverOversell(t *testing.T) {
	db := testkit.NewDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	category := testkit.Category(t, db)
	product := testkit.Product(t, db, category.ID, "10", "0", 25)

	var wg sync.WaitGroup
	var succeeded int64
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.ReserveStock(ctx, product.ID, 1); err == nil {
				atomic.AddInt64(&succeeded, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(25), succeeded)
	assert.Equal(t, 0, testkit.StockOf(t, db, product.ID))
}

func TestProductListFilters(t *testing.T) {
	db := testkit.NewDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	category := testkit.Category(t, db)
	low := testkit.Product(t, db, category.ID, "10", "0", 2)
	testkit.Product(t, db, category.ID, "20", "0", 50)
	other := testkit.Category(t, db)
	testkit.Product(t, db, other.ID, "30", "0", 50)

	products, total, err := repo.List(ctx, &domainRepo.ProductFilterParams{CategoryID: &category.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, products, 2)

	lowStock, err := repo.GetLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, lowStock, 1)
	assert.Equal(t, low.ID, lowStock[0].ID)

	require.NoError(t, repo.Deactivate(ctx, low.ID))
	inStock, err := repo.CountInStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), inStock)
}
