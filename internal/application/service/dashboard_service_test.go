package service

import (
	"context"
	"testing"

	"github.com/kmaina/stockroom-api/internal/domain/entity"
	"github.com/kmaina/stockroom-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardSummary(t *testing.T) {
	purchaseRepo := newFakePurchaseOrderRepo()
	salesRepo := newFakeSalesOrderRepo()
	productRepo := newFakeProductTypeRepo(cement(), steel())
	roleRepo := newFakeRoleRepo()
	userRepo := newFakeUserRepo(roleRepo)

	ctx := context.Background()

	require.NoError(t, purchaseRepo.Create(ctx, &entity.PurchaseOrder{
		Status: enum.OrderStatusApproved, TotalPrice: 10_000,
	}))
	require.NoError(t, purchaseRepo.Create(ctx, &entity.PurchaseOrder{
		Status: enum.OrderStatusCreated, TotalPrice: 2_500,
	}))
	require.NoError(t, salesRepo.Create(ctx, &entity.SalesOrder{
		Status: enum.OrderStatusApproved, TotalPrice: 19_990,
	}))
	require.NoError(t, salesRepo.Create(ctx, &entity.SalesOrder{
		Status: enum.OrderStatusApproved, TotalPrice: 5_010,
	}))
	require.NoError(t, salesRepo.Create(ctx, &entity.SalesOrder{
		Status: enum.OrderStatusSubmitted, TotalPrice: 99_999,
	}))
	require.NoError(t, userRepo.Create(ctx, &entity.User{Email: "jane@example.com"}))

	svc := NewDashboardService(purchaseRepo, salesRepo, productRepo, userRepo)

	summary, err := svc.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), summary.PurchaseOrders.Approved)
	assert.Equal(t, int64(1), summary.PurchaseOrders.Created)
	assert.Equal(t, int64(2), summary.PurchaseOrders.Total)
	assert.Equal(t, int64(2), summary.SalesOrders.Approved)
	assert.Equal(t, int64(1), summary.SalesOrders.Submitted)
	assert.Equal(t, int64(3), summary.SalesOrders.Total)
	assert.Equal(t, int64(2), summary.ProductTypes)
	assert.Equal(t, int64(1), summary.Users)

	// Revenue and spend only count approved orders
	assert.InDelta(t, 250.0, summary.Revenue, 0.001)
	assert.InDelta(t, 100.0, summary.PurchaseSpend, 0.001)
}
