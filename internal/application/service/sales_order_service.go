package service

import (
	"context"
	"fmt"
	"strings"
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

// SalesOrderService handles sales order operations
type SalesOrderService struct {
	orderRepo       repository.SalesOrderRepository
	historyRepo     repository.SalesOrderHistoryRepository
	productTypeRepo repository.ProductTypeRepository
}

// NewSalesOrderService creates a new sales order service
func NewSalesOrderService(
	orderRepo repository.SalesOrderRepository,
	historyRepo repository.SalesOrderHistoryRepository,
	productTypeRepo repository.ProductTypeRepository,
) *SalesOrderService {
	return &SalesOrderService{
		orderRepo:       orderRepo,
		historyRepo:     historyRepo,
		productTypeRepo: productTypeRepo,
	}
}

// SalesItemInput represents one line item in a sales order request.
// A zero unit price falls back to the product type's selling price.
type SalesItemInput struct {
	ProductTypeID uuid.UUID
	Quantity      int
	UnitPrice     float64
}

// CreateSalesOrderInput represents the create sales order input
type CreateSalesOrderInput struct {
	CustomerName string
	SaleDate     time.Time
	Items        []SalesItemInput
}

// UpdateSalesOrderInput replaces the order's header and full line item set
type UpdateSalesOrderInput struct {
	CustomerName string
	SaleDate     time.Time
	Items        []SalesItemInput
}

func (s *SalesOrderService) buildItems(ctx context.Context, inputs []SalesItemInput) ([]entity.SalesOrderItem, int64, error) {
	if len(inputs) == 0 {
		return nil, 0, apperror.NewBadRequestError("order must have at least one item")
	}

	productMap := make(map[uuid.UUID]*entity.ProductType, len(inputs))
	for _, in := range inputs {
		if in.Quantity < 1 {
			return nil, 0, apperror.NewValidationError([]apperror.FieldError{
				{Field: "quantity", Message: "quantity must be at least 1"},
			})
		}
		if _, seen := productMap[in.ProductTypeID]; seen {
			continue
		}
		pt, err := s.productTypeRepo.GetByID(ctx, in.ProductTypeID)
		if err != nil {
			return nil, 0, err
		}
		if pt == nil {
			return nil, 0, apperror.NewNotFoundError(fmt.Sprintf("Product type %s", in.ProductTypeID))
		}
		productMap[in.ProductTypeID] = pt
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

	items := make([]entity.SalesOrderItem, 0, len(inputs))
	valuations := make([]lifecycle.LineValuation, 0, len(inputs))
	for _, in := range inputs {
		pt := productMap[in.ProductTypeID]

		unitPrice := toCents(in.UnitPrice)
		if unitPrice == 0 {
			unitPrice = pt.SellUnitPrice
		}

		v := lifecycle.SalesLine(in.Quantity, unitPrice)
		valuations = append(valuations, v)

		items = append(items, entity.SalesOrderItem{
			ProductTypeID: pt.ID,
			ProductName:   pt.ProductName,
			Size:          pt.Size,
			Quantity:      in.Quantity,
			UnitPrice:     unitPrice,
			TotalPrice:    v.Total,
		})
	}

	return items, lifecycle.OrderTotal(valuations), nil
}

// Create creates a sales order in CREATED status with its line items and
// writes the opening history entry.
func (s *SalesOrderService) Create(ctx context.Context, actor lifecycle.Actor, input *CreateSalesOrderInput) (*entity.SalesOrder, error) {
	if err := lifecycle.CanEdit(lifecycle.KindSales, enum.OrderStatusCreated, actor); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "customer_name", Message: "customer name is required"},
		})
	}

	items, total, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	saleDate := input.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	order := &entity.SalesOrder{
		SaleCode:     utils.GenerateSaleCode(),
		CustomerName: input.CustomerName,
		SaleDate:     saleDate,
		Status:       enum.OrderStatusCreated,
		TotalPrice:   total,
		CreatedByID:  &actor.ID,
		Items:        items,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	history := &entity.SalesOrderHistory{
		SalesOrderID: order.ID,
		Status:       enum.OrderStatusCreated,
		Comment:      "Order created",
		ActorID:      actor.ID,
	}
	if err := s.historyRepo.Create(ctx, history); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// GetByID retrieves a sales order with its items
func (s *SalesOrderService) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Sales order")
	}
	return order, nil
}

func salesOrderView() *listview.View[entity.SalesOrder] {
	return &listview.View[entity.SalesOrder]{
		SearchFields: func(o entity.SalesOrder) []string {
			fields := []string{o.SaleCode, o.CustomerName, o.Status.String()}
			for _, item := range o.Items {
				fields = append(fields, item.ProductName)
			}
			return fields
		},
		DateOf: func(o entity.SalesOrder) (time.Time, bool) {
			return o.SaleDate, !o.SaleDate.IsZero()
		},
		Sorters: map[string]listview.Comparator[entity.SalesOrder]{
			"sale_code":     func(a, b entity.SalesOrder) int { return listview.CompareStrings(a.SaleCode, b.SaleCode) },
			"customer_name": func(a, b entity.SalesOrder) int { return listview.CompareStrings(a.CustomerName, b.CustomerName) },
			"sale_date":     func(a, b entity.SalesOrder) int { return listview.CompareTimes(a.SaleDate, b.SaleDate) },
			"status":        func(a, b entity.SalesOrder) int { return listview.CompareInt64(int64(a.Status), int64(b.Status)) },
			"total_price":   func(a, b entity.SalesOrder) int { return listview.CompareInt64(a.TotalPrice, b.TotalPrice) },
			"created_at":    func(a, b entity.SalesOrder) int { return listview.CompareTimes(a.CreatedAt, b.CreatedAt) },
		},
		DefaultSort: "created_at",
	}
}

// List returns a filtered, sorted and paginated view over all sales orders
func (s *SalesOrderService) List(ctx context.Context, params listview.Params) (*pagination.PaginatedResult[entity.SalesOrder], error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return salesOrderView().Apply(orders, params), nil
}

// Update replaces the order header and line items. Only editable orders
// (CREATED or RETURNED) accept updates.
func (s *SalesOrderService) Update(ctx context.Context, actor lifecycle.Actor, id uuid.UUID, input *UpdateSalesOrderInput) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Sales order")
	}

	if err := lifecycle.CanEdit(lifecycle.KindSales, order.Status, actor); err != nil {
		return nil, err
	}

	items, total, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.CustomerName) != "" {
		order.CustomerName = input.CustomerName
	}
	if !input.SaleDate.IsZero() {
		order.SaleDate = input.SaleDate
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

// Delete removes a sales order and its items regardless of status
func (s *SalesOrderService) Delete(ctx context.Context, actor lifecycle.Actor, id uuid.UUID) error {
	if !actor.HasRole(enum.RoleAdmin, enum.RoleManager, enum.RoleSalesOfficer) {
		return apperror.NewForbiddenError("you do not have permission to delete this order")
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Sales order")
	}

	return s.orderRepo.Delete(ctx, id)
}

// DeleteItem removes one line item and restores the order total to the sum
// of the remaining lines.
func (s *SalesOrderService) DeleteItem(ctx context.Context, actor lifecycle.Actor, orderID, itemID uuid.UUID) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Sales order")
	}

	if err := lifecycle.CanEdit(lifecycle.KindSales, order.Status, actor); err != nil {
		return nil, err
	}

	var total int64
	found := false
	for _, item := range order.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		total += item.TotalPrice
	}
	if !found {
		return nil, apperror.NewNotFoundError("Sales order item")
	}

	if err := s.orderRepo.DeleteItem(ctx, orderID, itemID, total); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithItems(ctx, orderID)
}

func (s *SalesOrderService) transition(ctx context.Context, actor lifecycle.Actor, id uuid.UUID, event lifecycle.Event, comment string) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Sales order")
	}

	next, err := lifecycle.Transition(lifecycle.KindSales, order.Status, event, actor, comment)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, next, actor.ID); err != nil {
		return nil, err
	}

	history := &entity.SalesOrderHistory{
		SalesOrderID: id,
		Status:       next,
		Comment:      comment,
		ActorID:      actor.ID,
	}
	if err := s.historyRepo.Create(ctx, history); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithItems(ctx, id)
}

// Submit moves a CREATED or RETURNED order to SUBMITTED
func (s *SalesOrderService) Submit(ctx context.Context, actor lifecycle.Actor, id uuid.UUID, comment string) (*entity.SalesOrder, error) {
	return s.transition(ctx, actor, id, lifecycle.EventSubmit, comment)
}

// Approve moves a SUBMITTED order to APPROVED; a review comment is required
func (s *SalesOrderService) Approve(ctx context.Context, actor lifecycle.Actor, id uuid.UUID, comment string) (*entity.SalesOrder, error) {
	return s.transition(ctx, actor, id, lifecycle.EventApprove, comment)
}

// Return moves a SUBMITTED order back to RETURNED; a review comment is required
func (s *SalesOrderService) Return(ctx context.Context, actor lifecycle.Actor, id uuid.UUID, comment string) (*entity.SalesOrder, error) {
	return s.transition(ctx, actor, id, lifecycle.EventReturn, comment)
}

// History returns the order's status history, oldest first
func (s *SalesOrderService) History(ctx context.Context, id uuid.UUID) ([]entity.SalesOrderHistory, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Sales order")
	}
	return s.historyRepo.ListByOrderID(ctx, id)
}
