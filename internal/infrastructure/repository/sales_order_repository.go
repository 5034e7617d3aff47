package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/internal/domain/entity"
	"github.com/kmaina/stockroom-api/internal/domain/enum"
	domainRepo "github.com/kmaina/stockroom-api/internal/domain/repository"
	"gorm.io/gorm"
)

type salesOrderRepository struct {
	db *gorm.DB
}

// NewSalesOrderRepository creates a new sales order repository
func NewSalesOrderRepository(db *gorm.DB) domainRepo.SalesOrderRepository {
	return &salesOrderRepository{db: db}
}

func (r *salesOrderRepository) Create(ctx context.Context, order *entity.SalesOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *salesOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	var order entity.SalesOrder
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *salesOrderRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	var order entity.SalesOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.ProductType").
		Preload("CreatedBy").
		Preload("ModifiedBy").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *salesOrderRepository) Update(ctx context.Context, order *entity.SalesOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *salesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.SalesOrderItem{}, "sales_order_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.SalesOrder{}, "id = ?", id).Error
	})
}

func (r *salesOrderRepository) ListAll(ctx context.Context) ([]entity.SalesOrder, error) {
	var orders []entity.SalesOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *salesOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus, modifiedBy uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.SalesOrder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"modified_by": modifiedBy,
		}).Error
}

// ReplaceItems swaps the order's full line item set and stores the recomputed
// total in one transaction.
func (r *salesOrderRepository) ReplaceItems(ctx context.Context, orderID uuid.UUID, items []entity.SalesOrderItem, totalPrice int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&entity.SalesOrderItem{}, "sales_order_id = ?", orderID).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			for i := range items {
				items[i].SalesOrderID = orderID
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return tx.Model(&entity.SalesOrder{}).
			Where("id = ?", orderID).
			Update("total_price", totalPrice).Error
	})
}

func (r *salesOrderRepository) DeleteItem(ctx context.Context, orderID, itemID uuid.UUID, totalPrice int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&entity.SalesOrderItem{}, "id = ? AND sales_order_id = ?", itemID, orderID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&entity.SalesOrder{}).
			Where("id = ?", orderID).
			Update("total_price", totalPrice).Error
	})
}

func (r *salesOrderRepository) CountByStatus(ctx context.Context) (map[enum.OrderStatus]int64, error) {
	type row struct {
		Status enum.OrderStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&entity.SalesOrder{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enum.OrderStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *salesOrderRepository) SumTotalByStatus(ctx context.Context, status enum.OrderStatus) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.SalesOrder{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

type salesOrderHistoryRepository struct {
	db *gorm.DB
}

// NewSalesOrderHistoryRepository creates a new sales order history repository
func NewSalesOrderHistoryRepository(db *gorm.DB) domainRepo.SalesOrderHistoryRepository {
	return &salesOrderHistoryRepository{db: db}
}

func (r *salesOrderHistoryRepository) Create(ctx context.Context, history *entity.SalesOrderHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

func (r *salesOrderHistoryRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.SalesOrderHistory, error) {
	var histories []entity.SalesOrderHistory
	err := r.db.WithContext(ctx).
		Preload("Actor").
		Where("sales_order_id = ?", orderID).
		Order("created_at ASC").
		Find(&histories).Error
	return histories, err
}
