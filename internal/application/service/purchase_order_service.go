package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/internal/domain/entity"
	"github.com/kmaina/stockroom-api/internal/domain/enum"
	"github.com/kmaina/stockroom-api/internal/domain/lifecycle"
	"github.com/kmaina/stockroom-api/internal/domain/repository"
	"github.com/kmaina/stockroom-api/pkg/apperror"
	"github.com/kmaina/stockroom-api/pkg/listview"
	"github.com/kmaina/stockroom-api/pkg/pagination"
	"github.com/kmaina/stockroom-api/pkg/utils"
)

// PurchaseOrderService handles purchase order operations
type PurchaseOrderService struct {
	orderRepo       repository.PurchaseOrderRepository
	historyRepo     repository.PurchaseOrderHistoryRepository
	productTypeRepo repository.ProductTypeRepository
}

// NewPurchaseOrderService creates a new purchase order service
func NewPurchaseOrderService(
	orderRepo repository.PurchaseOrderRepository,
	historyRepo repository.PurchaseOrderHistoryRepository,
	productTypeRepo repository.ProductTypeRepository,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:       orderRepo,
		historyRepo:     historyRepo,
		productTypeRepo: productTypeRepo,
	}
}

// PurchaseItemInput represents one line item in a purchase order request.
// Prices are decimal; a zero unit price falls back to the product type's
// purchase price. TaxAmount is the tax on a single unit.
type PurchaseItemInput struct {
	ProductTypeID uuid.UUID
	Quantity      int
	UnitPrice     float64
	TaxAmount     float64
}

// CreatePurchaseOrderInput represents the create purchase order input
type CreatePurchaseOrderInput struct {
	PurchaseDate time.Time
	Items        []PurchaseItemInput
}

// UpdatePurchaseOrderInput replaces the order's date and full line item set
type UpdatePurchaseOrderInput struct {
	PurchaseDate time.Time
	Items        []PurchaseItemInput
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// buildItems validates the line items, fills default prices from the catalog
// and values each line. Returns the built entities and the order total.
func (s *PurchaseOrderService) buildItems(ctx context.Context, inputs []PurchaseItemInput) ([]entity.PurchaseOrderItem, int64, error) {
	if len(inputs) == 0 {
		return nil, 0, apperror.NewBadRequestError("order must have at least one item")
	}

	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity < 1 {
			return nil, 0, apperror.NewValidationError([]apperror.FieldError{
				{Field: "quantity", Message: "quantity must be at least 1"},
			})
		}
		ids = append(ids, in.ProductTypeID)
	}

	productMap := make(map[uuid.UUID]*entity.ProductType, len(ids))
	for _, id := range ids {
		if _, seen := productMap[id]; seen {
			continue
		}
		pt, err := s.productTypeRepo.GetByID(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		if pt == nil {
			return nil, 0, apperror.NewNotFoundError(fmt.Sprintf("Product type %s", id))
		}
		productMap[id] = pt
	}

	lines := make([]lifecycle.LineRef, len(inputs))
	for i, in := range inputs {
		lines[i] = lifecycle.LineRef{
			ProductTypeID: in.ProductTypeID,
			ProductName:   productMap[in.ProductTypeID].ProductName,
		}
	}
	if err := lifecycle.CheckLines(lines); err != nil {
		return nil, 0, err
	}

	items := make([]entity.PurchaseOrderItem, 0, len(inputs))
	valuations := make([]lifecycle.LineValuation, 0, len(inputs))
	for _, in := range inputs {
		pt := productMap[in.ProductTypeID]

		unitPrice := toCents(in.UnitPrice)
		if unitPrice == 0 {
			unitPrice = pt.UnitPrice
		}
		taxPerUnit := toCents(in.TaxAmount)

		v := lifecycle.PurchaseLine(in.Quantity, unitPrice, taxPerUnit)
		valuations = append(valuations, v)

		items = append(items, entity.PurchaseOrderItem{
			ProductTypeID:     pt.ID,
			ProductName:       pt.ProductName,
			Size:              pt.Size,
			Quantity:          in.Quantity,
			UnitPrice:         unitPrice,
			TaxAmount:         taxPerUnit,
			TotalTax:          v.Tax,
			TotalPriceWithTax: v.Total,
		})
	}

	return items, lifecycle.OrderTotal(valuations), nil
}

// Create creates a purchase order in CREATED status with its line items and
// writes the opening history entry.
func (s *PurchaseOrderService) Create(ctx context.Context, actor lifecycle.Actor, input *CreatePurchaseOrderInput) (*entity.PurchaseOrder, error) {
	if err := lifecycle.CanEdit(lifecycle.KindPurchase, enum.OrderStatusCreated, actor); err != nil {
		return nil, err
	}

	items, total, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	purchaseDate := input.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	order := &entity.PurchaseOrder{
		PurchaseCode: utils.GeneratePurchaseCode(),
		PurchaseDate: purchaseDate,
		Status:       enum.OrderStatusCreated,
		TotalPrice:   total,
		CreatedByID:  &actor.ID,
		Items:        items,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	history := &entity.PurchaseOrderHistory{
		PurchaseOrderID: order.ID,
		Status:          enum.OrderStatusCreated,
		Comment:         "Order created",
		ActorID:         actor.ID,
	}
	if err := s.historyRepo.Create(ctx, history); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// GetByID retrieves a purchase order with its items
func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	return order, nil
}

func purchaseOrderView() *listview.View[entity.PurchaseOrder] {
	return &listview.View[entity.PurchaseOrder]{
		SearchFields: func(o entity.PurchaseOrder) []string {
			fields := []string{o.PurchaseCode, o.Status.String()}
			for _, item := range o.Items {
				fields = append(fields, item.ProductName)
			}
			return fields
		},
		DateOf: func(o entity.PurchaseOrder) (time.Time, bool) {
			return o.PurchaseDate, !o.PurchaseDate.IsZero()
		},
		Sorters: map[string]listview.Comparator[entity.PurchaseOrder]{
			"purchase_code": func(a, b entity.PurchaseOrder) int { return listview.CompareStrings(a.PurchaseCode, b.PurchaseCode) },
			"purchase_date": func(a, b entity.PurchaseOrder) int { return listview.CompareTimes(a.PurchaseDate, b.PurchaseDate) },
			"status":        func(a, b entity.PurchaseOrder) int { return listview.CompareInt64(int64(a.Status), int64(b.Status)) },
			"total_price":   func(a, b entity.PurchaseOrder) int { return listview.CompareInt64(a.TotalPrice, b.TotalPrice) },
			"created_at":    func(a, b entity.PurchaseOrder) int { return listview.CompareTimes(a.CreatedAt, b.CreatedAt) },
		},
		DefaultSort: "created_at",
	}
}

// List returns a filtered, sorted and paginated view over all purchase orders
func (s *PurchaseOrderService) List(ctx context.Context, params listview.Params) (*pagination.PaginatedResult[entity.PurchaseOrder], error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return purchaseOrderView().Apply(orders, params), nil
}

// Update replaces the order header and line items. Only editable orders
// (CREATED or RETURNED) accept updates.
func (s *PurchaseOrderService) Update(ctx context.Context, actor lifecycle.Actor, id uuid.UUID, input *UpdatePurchaseOrderInput) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}

	if err := lifecycle.CanEdit(lifecycle.KindPurchase, order.Status, actor); err != nil {
		return nil, err
	}

	items, total, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	if !input.PurchaseDate.IsZero() {
		order.PurchaseDate = input.PurchaseDate
	}
	order.ModifiedByID = &actor.ID
	order.TotalPrice = total
	order.Items = nil
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err := s.orderRepo.ReplaceItems(ctx, order.ID, items, total); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// Delete removes a purchase order and its items regardless of status
func (s *PurchaseOrderService) Delete(ctx context.Context, actor lifecycle.Actor, id uuid.UUID) error {
	if !actor.HasRole(enum.RoleAdmin, enum.RoleStockOfficer) {
		return apperror.NewForbiddenError("you do not have permission to delete this order")
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Purchase order")
	}

	return s.orderRepo.Delete(ctx, id)
}

// DeleteItem removes one line item and restores the order total to the sum
// of the remaining lines.
func (s *PurchaseOrderService) DeleteItem(ctx context.Context, actor lifecycle.Actor, orderID, itemID uuid.UUID) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}

	if err := lifecycle.CanEdit(lifecycle.KindPurchase, order.Status, actor); err != nil {
		return nil, err
	}

	var total int64
	found := false
	for _, item := range order.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		total += item.TotalPriceWithTax
	}
	if !found {
		return nil, apperror.NewNotFoundError("Purchase order item")
	}

	if err := s.orderRepo.DeleteItem(ctx, orderID, itemID, total); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithItems(ctx, orderID)
}

// transition applies one lifecycle event and records it in the order history
func (s *PurchaseOrderService) transition(ctx context.Context, actor lifecycle.Actor, id uuid.UUID, event lifecycle.Event, comment string) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}

	next, err := lifecycle.Transition(lifecycle.KindPurchase, order.Status, event, actor, comment)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, next, actor.ID); err != nil {
		return nil, err
	}

	history := &entity.PurchaseOrderHistory{
		PurchaseOrderID: id,
		Status:          next,
		Comment:         comment,
		ActorID:         actor.ID,
	}
	if err := s.historyRepo.Create(ctx, history); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithItems(ctx, id)
}

// Submit moves a CREATED or RETURNED order to SUBMITTED
func (s *PurchaseOrderService) Submit(ctx context.Context, actor lifecycle.Actor, id uuid.UUID, comment string) (*entity.PurchaseOrder, error) {
	return s.transition(ctx, actor, id, lifecycle.EventSubmit, comment)
}

// Approve moves a SUBMITTED order to APPROVED; a review comment is required
func (s *PurchaseOrderService) Approve(ctx context.Context, actor lifecycle.Actor, id uuid.UUID, comment string) (*entity.PurchaseOrder, error) {
	return s.transition(ctx, actor, id, lifecycle.EventApprove, comment)
}

// Return moves a SUBMITTED order back to RETURNED; a review comment is required
func (s *PurchaseOrderService) Return(ctx context.Context, actor lifecycle.Actor, id uuid.UUID, comment string) (*entity.PurchaseOrder, error) {
	return s.transition(ctx, actor, id, lifecycle.EventReturn, comment)
}

// History returns the order's status history, oldest first
func (s *PurchaseOrderService) History(ctx context.Context, id uuid.UUID) ([]entity.PurchaseOrderHistory, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	return s.historyRepo.ListByOrderID(ctx, id)
}
