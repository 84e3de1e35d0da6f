//go:build container

package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/attendance"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/order"
	"github.com/fieldops-id/fieldops-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_CreateGetShip(t *testing.T) {
	defer cleanupTestData(t)
	ctx := context.Background()
	u := createTestUser(t, ctx, "rep@example.com", "081234567890")
	o := createTestOutlet(t, ctx, "Toko Satu")
	c := createTestCatalog(t, ctx)
	now := time.Now().UTC()
	visit, err := postgresql.NewOutletVisitRepository(testDB).Create(ctx, attendance.OutletVisitRecord{
		UserID: u.ID, OutletID: o.ID, CheckInTime: &now, CheckInLocation: &attendance.Location{},
	})
	require.NoError(t, err)
	repo := postgresql.NewOrderRepository(testDB)

	created, err := repo.Create(ctx, order.Order{
		OutletVisitID: visit.ID,
		UserID:        u.ID,
		OutletID:      o.ID,
		ProductCount:  1,
		TotalAmount:   96001,
		Items: []order.Item{
			{ProductID: c.product.ID, Quantity: 2, UnitPrice: 48000.5, Subtotal: 96001},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Toko Satu", *created.OutletName)
	require.Len(t, created.Items, 1)
	assert.Equal(t, created.ID, created.Items[0].OrderID)

	got, err := repo.GetByID(ctx, created.ID, u.ID)
	require.NoError(t, err)
	assert.InDelta(t, 96001, got.TotalAmount, 1e-9)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Teh Segar 250ml", *got.Items[0].ProductName)
	assert.Equal(t, 2, got.Items[0].Quantity)

	_, err = repo.GetByID(ctx, created.ID, "0190a8a4-3c1e-7b2d-9f00-000000000000")
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	shipped, err := repo.MarkShipped(ctx, created.ID, u.ID)
	require.NoError(t, err)
	assert.True(t, shipped.IsShipped)
	assert.NotNil(t, shipped.ShippedAt)

	_, err = repo.MarkShipped(ctx, created.ID, u.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	orders, total, err := repo.List(ctx, u.ID, order.OrderFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, orders, 1)
}
