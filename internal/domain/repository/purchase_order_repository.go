package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/internal/domain/entity"
	"github.com/kmaina/stockroom-api/internal/domain/enum"
)

// PurchaseOrderRepository defines the interface for purchase order data operations
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	Update(ctx context.Context, order *entity.PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus, modifiedBy uuid.UUID) error
	ReplaceItems(ctx context.Context, orderID uuid.UUID, items []entity.PurchaseOrderItem, totalPrice int64) error
	DeleteItem(ctx context.Context, orderID, itemID uuid.UUID, totalPrice int64) error
	CountByStatus(ctx context.Context) (map[enum.OrderStatus]int64, error)
	SumTotalByStatus(ctx context.Context, status enum.OrderStatus) (int64, error)
}

// PurchaseOrderHistoryRepository defines the interface for purchase order history operations
type PurchaseOrderHistoryRepository interface {
	Create(ctx context.Context, history *entity.PurchaseOrderHistory) error
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.PurchaseOrderHistory, error)
}
