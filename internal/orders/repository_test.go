package orders

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/catalog"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/platform/db"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("SALES_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("SALES_TEST_PG_DSN not set")
	}
	ctx := context.Background()
	pool, err := db.New(ctx, dsn, db.Options{MaxConns: 2})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, db.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE orders, products RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	_, err = catalog.NewRepository(pool).Seed(ctx, catalog.DemoCatalog())
	require.NoError(t, err)
	return pool
}

func TestRepositoryRoundTrip(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewRepository(pool)
	base := time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)

	first, err := repo.CreateOrder(ctx, Order{ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("1299.99"), OrderDate: base})
	require.NoError(t, err)
	require.NotZero(t, first.ID)
	require.Equal(t, "2599.98", first.Total().StringFixed(2))

	_, err = repo.CreateOrder(ctx, Order{ProductID: 2, Quantity: 1, Price: decimal.RequireFromString("199.99"), OrderDate: base.Add(time.Hour)})
	require.NoError(t, err)

	got, err := repo.GetOrder(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, got.OrderDate.Equal(base))

	window, err := repo.ListOrders(ctx, ListFilter{From: base.Add(30 * time.Minute)})
	require.NoError(t, err)
	require.Len(t, window, 1)

	latest, err := repo.ListOrders(ctx, ListFilter{Newest: true, Limit: 1})
	require.NoError(t, err)
	require.Len(t, latest, 1)
	require.Equal(t, int64(2), latest[0].ProductID)

	_, err = repo.GetOrder(ctx, 9999)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRepositoryRejectsUnknownProduct(t *testing.T) {
	pool := testPool(t)
	_, err := NewRepository(pool).CreateOrder(context.Background(), Order{ProductID: 999, Quantity: 1, Price: decimal.NewFromInt(1), OrderDate: time.Now()})
	require.ErrorIs(t, err, shared.ErrDependency)
}
