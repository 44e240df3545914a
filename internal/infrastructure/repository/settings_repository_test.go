package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/sangkips/shopbill-api/internal/infrastructure/database"
	"github.com/sangkips/shopbill-api/internal/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsUpsert(t *testing.T) {
	db := testkit.NewDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &entity.Setting{Key: "currency", Value: json.RawMessage(`"INR"`)}))
	require.NoError(t, repo.Upsert(ctx, &entity.Setting{Key: "currency", Value: json.RawMessage(`"USD"`)}))

	setting, err := repo.GetByKey(ctx, "currency")
	require.NoError(t, err)
	require.NotNil(t, setting)
	assert.JSONEq(t, `"USD"`, string(setting.Value))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	missing, err := repo.GetByKey(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMaintenanceTruncate(t *testing.T) {
	db := testkit.NewDB(t)
	ctx := context.Background()

	category := testkit.Category(t, db)
	testkit.Product(t, db, category.ID, "10", "0", 1)
	testkit.Shop(t, db)

	removed, err := NewMaintenanceRepository(db, database.Models()).Truncate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed["products"])
	assert.Equal(t, int64(1), removed["categories"])
	assert.Equal(t, int64(1), removed["shops"])

	var count int64
	require.NoError(t, db.Model(&entity.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestIdempotencyKeys(t *testing.T) {
	db := testkit.NewDB(t)
	repo := NewIdempotencyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "k1", Scope: "shop-a", Endpoint: "POST /api/v1/bills",
		ResponseCode: 201, ResponseBody: `{}`, ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "k1", Scope: "shop-b", Endpoint: "POST /api/v1/bills",
		ResponseCode: 201, ResponseBody: `{}`, ExpiresAt: time.Now().Add(-time.Hour),
	}))

	found, err := repo.GetByKey(ctx, "k1", "shop-a")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.False(t, found.IsExpired())

	removed, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
