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

type purchaseOrderRepository struct {
	db *gorm.DB
}

// NewPurchaseOrderRepository creates a new purchase order repository
func NewPurchaseOrderRepository(db *gorm.DB) domainRepo.PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

func (r *purchaseOrderRepository) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *purchaseOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var order entity.PurchaseOrder
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *purchaseOrderRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var order entity.PurchaseOrder
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

func (r *purchaseOrderRepository) Update(ctx context.Context, order *entity.PurchaseOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *purchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.PurchaseOrderItem{}, "purchase_order_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.PurchaseOrder{}, "id = ?", id).Error
	})
}

func (r *purchaseOrderRepository) ListAll(ctx context.Context) ([]entity.PurchaseOrder, error) {
	var orders []entity.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *purchaseOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus, modifiedBy uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.PurchaseOrder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"modified_by": modifiedBy,
		}).Error
}

// ReplaceItems swaps the order's full line item set and stores the recomputed
// total in one transaction.
func (r *purchaseOrderRepository) ReplaceItems(ctx context.Context, orderID uuid.UUID, items []entity.PurchaseOrderItem, totalPrice int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&entity.PurchaseOrderItem{}, "purchase_order_id = ?", orderID).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			for i := range items {
				items[i].PurchaseOrderID = orderID
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return tx.Model(&entity.PurchaseOrder{}).
			Where("id = ?", orderID).
			Update("total_price", totalPrice).Error
	})
}

func (r *purchaseOrderRepository) DeleteItem(ctx context.Context, orderID, itemID uuid.UUID, totalPrice int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&entity.PurchaseOrderItem{}, "id = ? AND purchase_order_id = ?", itemID, orderID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&entity.PurchaseOrder{}).
			Where("id = ?", orderID).
			Update("total_price", totalPrice).Error
	})
}

func (r *purchaseOrderRepository) CountByStatus(ctx context.Context) (map[enum.OrderStatus]int64, error) {
	type row struct {
		Status enum.OrderStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{}).
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

func (r *purchaseOrderRepository) SumTotalByStatus(ctx context.Context, status enum.OrderStatus) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

type purchaseOrderHistoryRepository struct {
	db *gorm.DB
}

// NewPurchaseOrderHistoryRepository creates a new purchase order history repository
func NewPurchaseOrderHistoryRepository(db *gorm.DB) domainRepo.PurchaseOrderHistoryRepository {
	return &purchaseOrderHistoryRepository{db: db}
}

func (r *purchaseOrderHistoryRepository) Create(ctx context.Context, history *entity.PurchaseOrderHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

func (r *purchaseOrderHistoryRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.PurchaseOrderHistory, error) {
	var histories []entity.PurchaseOrderHistory
	err := r.db.WithContext(ctx).
		Preload("Actor").
		Where("purchase_order_id = ?", orderID).
		Order("created_at ASC").
		Find(&histories).Error
	return histories, err
}
