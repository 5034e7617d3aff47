package service

import (
	"context"

	"github.com/kmaina/stockroom-api/internal/domain/enum"
	"github.com/kmaina/stockroom-api/internal/domain/repository"
)

// DashboardService aggregates summary figures for the landing page
type DashboardService struct {
	purchaseOrderRepo repository.PurchaseOrderRepository
	salesOrderRepo    repository.SalesOrderRepository
	productTypeRepo   repository.ProductTypeRepository
	userRepo          repository.UserRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	purchaseOrderRepo repository.PurchaseOrderRepository,
	salesOrderRepo repository.SalesOrderRepository,
	productTypeRepo repository.ProductTypeRepository,
	userRepo repository.UserRepository,
) *DashboardService {
	return &DashboardService{
		purchaseOrderRepo: purchaseOrderRepo,
		salesOrderRepo:    salesOrderRepo,
		productTypeRepo:   productTypeRepo,
		userRepo:          userRepo,
	}
}

// StatusCounts breaks order counts down by lifecycle status
type StatusCounts struct {
	Created   int64 `json:"created"`
	Submitted int64 `json:"submitted"`
	Approved  int64 `json:"approved"`
	Returned  int64 `json:"returned"`
	Total     int64 `json:"total"`
}

// DashboardSummary is the aggregate view returned to the dashboard.
// Revenue and PurchaseSpend are decimal totals over approved orders.
type DashboardSummary struct {
	PurchaseOrders StatusCounts `json:"purchase_orders"`
	SalesOrders    StatusCounts `json:"sales_orders"`
	ProductTypes   int64        `json:"product_types"`
	Users          int64        `json:"users"`
	Revenue        float64      `json:"revenue"`
	PurchaseSpend  float64      `json:"purchase_spend"`
}

func toStatusCounts(counts map[enum.OrderStatus]int64) StatusCounts {
	sc := StatusCounts{
		Created:   counts[enum.OrderStatusCreated],
		Submitted: counts[enum.OrderStatusSubmitted],
		Approved:  counts[enum.OrderStatusApproved],
		Returned:  counts[enum.OrderStatusReturned],
	}
	sc.Total = sc.Created + sc.Submitted + sc.Approved + sc.Returned
	return sc
}

// GetSummary returns order counts by status plus catalog and user totals
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	purchaseCounts, err := s.purchaseOrderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	salesCounts, err := s.salesOrderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	productTypes, err := s.productTypeRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := s.salesOrderRepo.SumTotalByStatus(ctx, enum.OrderStatusApproved)
	if err != nil {
		return nil, err
	}

	spend, err := s.purchaseOrderRepo.SumTotalByStatus(ctx, enum.OrderStatusApproved)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		PurchaseOrders: toStatusCounts(purchaseCounts),
		SalesOrders:    toStatusCounts(salesCounts),
		ProductTypes:   productTypes,
		Users:          users,
		Revenue:        float64(revenue) / 100,
		PurchaseSpend:  float64(spend) / 100,
	}, nil
}
