package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/internal/domain/entity"
	"github.com/kmaina/stockroom-api/internal/domain/enum"
	"github.com/kmaina/stockroom-api/internal/domain/lifecycle"
	"github.com/kmaina/stockroom-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSalesOrderRepo struct {
	orders map[uuid.UUID]*entity.SalesOrder
}

func newFakeSalesOrderRepo() *fakeSalesOrderRepo {
	return &fakeSalesOrderRepo{orders: make(map[uuid.UUID]*entity.SalesOrder)}
}

func (r *fakeSalesOrderRepo) Create(_ context.Context, order *entity.SalesOrder) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].SalesOrderID = order.ID
	}
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeSalesOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *order
	return &cp, nil
}

func (r *fakeSalesOrderRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeSalesOrderRepo) Update(_ context.Context, order *entity.SalesOrder) error {
	existing, ok := r.orders[order.ID]
	if !ok {
		return nil
	}
	items := existing.Items
	cp := *order
	cp.Items = items
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeSalesOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeSalesOrderRepo) ListAll(_ context.Context) ([]entity.SalesOrder, error) {
	out := make([]entity.SalesOrder, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeSalesOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.OrderStatus, modifiedBy uuid.UUID) error {
	order, ok := r.orders[id]
	if !ok {
		return nil
	}
	order.Status = status
	order.ModifiedByID = &modifiedBy
	return nil
}

func (r *fakeSalesOrderRepo) ReplaceItems(_ context.Context, orderID uuid.UUID, items []entity.SalesOrderItem, totalPrice int64) error {
	order, ok := r.orders[orderID]
	if !ok {
		return nil
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].SalesOrderID = orderID
	}
	order.Items = items
	order.TotalPrice = totalPrice
	return nil
}

func (r *fakeSalesOrderRepo) DeleteItem(_ context.Context, orderID, itemID uuid.UUID, totalPrice int64) error {
	order, ok := r.orders[orderID]
	if !ok {
		return nil
	}
	kept := order.Items[:0]
	for _, item := range order.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	order.Items = kept
	order.TotalPrice = totalPrice
	return nil
}

func (r *fakeSalesOrderRepo) CountByStatus(_ context.Context) (map[enum.OrderStatus]int64, error) {
	counts := make(map[enum.OrderStatus]int64)
	for _, o := range r.orders {
		counts[o.Status]++
	}
	return counts, nil
}

func (r *fakeSalesOrderRepo) SumTotalByStatus(_ context.Context, status enum.OrderStatus) (int64, error) {
	var total int64
	for _, o := range r.orders {
		if o.Status == status {
			total += o.TotalPrice
		}
	}
	return total, nil
}

type fakeSalesHistoryRepo struct {
	entries []entity.SalesOrderHistory
}

func (r *fakeSalesHistoryRepo) Create(_ context.Context, history *entity.SalesOrderHistory) error {
	if history.ID == uuid.Nil {
		history.ID = uuid.New()
	}
	history.CreatedAt = time.Now()
	r.entries = append(r.entries, *history)
	return nil
}

func (r *fakeSalesHistoryRepo) ListByOrderID(_ context.Context, orderID uuid.UUID) ([]entity.SalesOrderHistory, error) {
	out := make([]entity.SalesOrderHistory, 0)
	for _, h := range r.entries {
		if h.SalesOrderID == orderID {
			out = append(out, h)
		}
	}
	return out, nil
}

func sellable() *entity.ProductType {
	return &entity.ProductType{
		ID:            uuid.New(),
		ProductCode:   "PRD-PAINT",
		ProductName:   "Paint 5L",
		Size:          5,
		UnitPrice:     800,
		SellUnitPrice: 1200,
	}
}

func newSalesFixture(products ...*entity.ProductType) (*SalesOrderService, *fakeSalesHistoryRepo) {
	historyRepo := &fakeSalesHistoryRepo{}
	svc := NewSalesOrderService(newFakeSalesOrderRepo(), historyRepo, newFakeProductTypeRepo(products...))
	return svc, historyRepo
}

func salesOfficer() lifecycle.Actor {
	return lifecycle.Actor{ID: uuid.New(), Roles: []enum.Role{enum.RoleSalesOfficer}}
}

func manager() lifecycle.Actor {
	return lifecycle.Actor{ID: uuid.New(), Roles: []enum.Role{enum.RoleManager}}
}

func TestSalesOrderCreate_UsesSellingPrice(t *testing.T) {
	p := sellable()
	svc, _ := newSalesFixture(p)

	order, err := svc.Create(context.Background(), salesOfficer(), &CreateSalesOrderInput{
		CustomerName: "Wanjiku Hardware",
		Items:        []SalesItemInput{{ProductTypeID: p.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)

	// selling price, not purchase price
	assert.Equal(t, int64(1200), order.Items[0].UnitPrice)
	assert.Equal(t, int64(3600), order.Items[0].TotalPrice)
	assert.Equal(t, int64(3600), order.TotalPrice)
}

func TestSalesOrderCreate_RequiresCustomerName(t *testing.T) {
	p := sellable()
	svc, _ := newSalesFixture(p)

	_, err := svc.Create(context.Background(), salesOfficer(), &CreateSalesOrderInput{
		CustomerName: "   ",
		Items:        []SalesItemInput{{ProductTypeID: p.ID, Quantity: 1}},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "customer_name", appErr.Errors[0].Field)
}

func TestSalesOrderCreate_RejectsDuplicateProduct(t *testing.T) {
	p := sellable()
	svc, _ := newSalesFixture(p)

	_, err := svc.Create(context.Background(), salesOfficer(), &CreateSalesOrderInput{
		CustomerName: "Wanjiku Hardware",
		Items: []SalesItemInput{
			{ProductTypeID: p.ID, Quantity: 1},
			{ProductTypeID: p.ID, Quantity: 4},
		},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)
}

func TestSalesOrderLifecycle_ManagerApproves(t *testing.T) {
	p := sellable()
	svc, historyRepo := newSalesFixture(p)
	ctx := context.Background()
	officer := salesOfficer()
	reviewer := manager()

	order, err := svc.Create(ctx, officer, &CreateSalesOrderInput{
		CustomerName: "Wanjiku Hardware",
		Items:        []SalesItemInput{{ProductTypeID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, officer, order.ID, "")
	require.NoError(t, err)

	// the submitting officer cannot approve
	_, err = svc.Approve(ctx, officer, order.ID, "ok")
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 403, appErr.Code)

	approved, err := svc.Approve(ctx, reviewer, order.ID, "stock reserved")
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusApproved, approved.Status)

	require.Len(t, historyRepo.entries, 3)
	assert.Equal(t, "stock reserved", historyRepo.entries[2].Comment)
}

func TestSalesOrderApprove_NeedsComment(t *testing.T) {
	p := sellable()
	svc, _ := newSalesFixture(p)
	ctx := context.Background()
	officer := salesOfficer()

	order, err := svc.Create(ctx, officer, &CreateSalesOrderInput{
		CustomerName: "Wanjiku Hardware",
		Items:        []SalesItemInput{{ProductTypeID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, officer, order.ID, "")
	require.NoError(t, err)

	_, err = svc.Approve(ctx, manager(), order.ID, "  ")
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
}
