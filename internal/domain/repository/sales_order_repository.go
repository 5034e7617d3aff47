package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/internal/domain/entity"
	"github.com/kmaina/stockroom-api/internal/domain/enum"
)

// SalesOrderRepository defines the interface for sales order data operations
type SalesOrderRepository interface {
	Create(ctx context.Context, order *entity.SalesOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error)
	Update(ctx context.Context, order *entity.SalesOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]entity.SalesOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus, modifiedBy uuid.UUID) error
	ReplaceItems(ctx context.Context, orderID uuid.UUID, items []entity.SalesOrderItem, totalPrice int64) error
	DeleteItem(ctx context.Context, orderID, itemID uuid.UUID, totalPrice int64) error
	CountByStatus(ctx context.Context) (map[enum.OrderStatus]int64, error)
	SumTotalByStatus(ctx context.Context, status enum.OrderStatus) (int64, error)
}

// SalesOrderHistoryRepository defines the interface for sales order history operations
type SalesOrderHistoryRepository interface {
	Create(ctx context.Context, history *entity.SalesOrderHistory) error
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.SalesOrderHistory, error)
}
