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
	"github.com/kmaina/stockroom-api/pkg/listview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurchaseOrderRepo struct {
	orders map[uuid.UUID]*entity.PurchaseOrder
}

func newFakePurchaseOrderRepo() *fakePurchaseOrderRepo {
	return &fakePurchaseOrderRepo{orders: make(map[uuid.UUID]*entity.PurchaseOrder)}
}

func (r *fakePurchaseOrderRepo) Create(_ context.Context, order *entity.PurchaseOrder) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].PurchaseOrderID = order.ID
	}
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakePurchaseOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *order
	return &cp, nil
}

func (r *fakePurchaseOrderRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *fakePurchaseOrderRepo) Update(_ context.Context, order *entity.PurchaseOrder) error {
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

func (r *fakePurchaseOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *fakePurchaseOrderRepo) ListAll(_ context.Context) ([]entity.PurchaseOrder, error) {
	out := make([]entity.PurchaseOrder, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakePurchaseOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.OrderStatus, modifiedBy uuid.UUID) error {
	order, ok := r.orders[id]
	if !ok {
		return nil
	}
	order.Status = status
	order.ModifiedByID = &modifiedBy
	return nil
}

func (r *fakePurchaseOrderRepo) ReplaceItems(_ context.Context, orderID uuid.UUID, items []entity.PurchaseOrderItem, totalPrice int64) error {
	order, ok := r.orders[orderID]
	if !ok {
		return nil
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].PurchaseOrderID = orderID
	}
	order.Items = items
	order.TotalPrice = totalPrice
	return nil
}

func (r *fakePurchaseOrderRepo) DeleteItem(_ context.Context, orderID, itemID uuid.UUID, totalPrice int64) error {
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

func (r *fakePurchaseOrderRepo) CountByStatus(_ context.Context) (map[enum.OrderStatus]int64, error) {
	counts := make(map[enum.OrderStatus]int64)
	for _, o := range r.orders {
		counts[o.Status]++
	}
	return counts, nil
}

func (r *fakePurchaseOrderRepo) SumTotalByStatus(_ context.Context, status enum.OrderStatus) (int64, error) {
	var total int64
	for _, o := range r.orders {
		if o.Status == status {
			total += o.TotalPrice
		}
	}
	return total, nil
}

type fakePurchaseHistoryRepo struct {
	entries []entity.PurchaseOrderHistory
}

func (r *fakePurchaseHistoryRepo) Create(_ context.Context, history *entity.PurchaseOrderHistory) error {
	if history.ID == uuid.Nil {
		history.ID = uuid.New()
	}
	history.CreatedAt = time.Now()
	r.entries = append(r.entries, *history)
	return nil
}

func (r *fakePurchaseHistoryRepo) ListByOrderID(_ context.Context, orderID uuid.UUID) ([]entity.PurchaseOrderHistory, error) {
	out := make([]entity.PurchaseOrderHistory, 0)
	for _, h := range r.entries {
		if h.PurchaseOrderID == orderID {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakeProductTypeRepo struct {
	products map[uuid.UUID]*entity.ProductType
}

func newFakeProductTypeRepo(products ...*entity.ProductType) *fakeProductTypeRepo {
	r := &fakeProductTypeRepo{products: make(map[uuid.UUID]*entity.ProductType)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductTypeRepo) Create(_ context.Context, pt *entity.ProductType) error {
	if pt.ID == uuid.Nil {
		pt.ID = uuid.New()
	}
	r.products[pt.ID] = pt
	return nil
}

func (r *fakeProductTypeRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.ProductType, error) {
	pt, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return pt, nil
}

func (r *fakeProductTypeRepo) GetByCode(_ context.Context, code string) (*entity.ProductType, error) {
	for _, pt := range r.products {
		if pt.ProductCode == code {
			return pt, nil
		}
	}
	return nil, nil
}

func (r *fakeProductTypeRepo) Update(_ context.Context, pt *entity.ProductType) error {
	r.products[pt.ID] = pt
	return nil
}

func (r *fakeProductTypeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductTypeRepo) ListAll(_ context.Context) ([]entity.ProductType, error) {
	out := make([]entity.ProductType, 0, len(r.products))
	for _, pt := range r.products {
		out = append(out, *pt)
	}
	return out, nil
}

func (r *fakeProductTypeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func cement() *entity.ProductType {
	return &entity.ProductType{
		ID:          uuid.New(),
		ProductCode: "PRD-CEMENT",
		ProductName: "Cement 50kg",
		Size:        50,
		UnitPrice:   1000,
	}
}

func steel() *entity.ProductType {
	return &entity.ProductType{
		ID:          uuid.New(),
		ProductCode: "PRD-STEEL",
		ProductName: "Steel Rod 12mm",
		Size:        12,
		UnitPrice:   500,
	}
}

func newPurchaseFixture(products ...*entity.ProductType) (*PurchaseOrderService, *fakePurchaseOrderRepo, *fakePurchaseHistoryRepo) {
	orderRepo := newFakePurchaseOrderRepo()
	historyRepo := &fakePurchaseHistoryRepo{}
	svc := NewPurchaseOrderService(orderRepo, historyRepo, newFakeProductTypeRepo(products...))
	return svc, orderRepo, historyRepo
}

func listviewParams(page, perPage int) listview.Params {
	return listview.Params{Page: page, PerPage: perPage}
}

func stockOfficer() lifecycle.Actor {
	return lifecycle.Actor{ID: uuid.New(), Roles: []enum.Role{enum.RoleStockOfficer}}
}

func admin() lifecycle.Actor {
	return lifecycle.Actor{ID: uuid.New(), Roles: []enum.Role{enum.RoleAdmin}}
}

func TestPurchaseOrderCreate_ValuesLinesAndWritesHistory(t *testing.T) {
	p1, p2 := cement(), steel()
	svc, _, _ := newPurchaseFixture(p1, p2)
	ctx := context.Background()

	order, err := svc.Create(ctx, stockOfficer(), &CreatePurchaseOrderInput{
		Items: []PurchaseItemInput{
			{ProductTypeID: p1.ID, Quantity: 3, UnitPrice: 10.00, TaxAmount: 0.50},
			{ProductTypeID: p2.ID, Quantity: 2}, // falls back to catalog price
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)

	// 3*1000 + 3*50 = 3150, plus 2*500 = 1000
	assert.Equal(t, int64(4150), order.TotalPrice)
	assert.Equal(t, enum.OrderStatusCreated, order.Status)
	assert.Equal(t, int64(150), order.Items[0].TotalTax)
	assert.Equal(t, int64(3150), order.Items[0].TotalPriceWithTax)
	assert.Equal(t, int64(500), order.Items[1].UnitPrice)

	histories, err := svc.History(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, histories, 1)
	assert.Equal(t, enum.OrderStatusCreated, histories[0].Status)
}

func TestPurchaseOrderCreate_RejectsDuplicateProduct(t *testing.T) {
	p1 := cement()
	svc, _, _ := newPurchaseFixture(p1)

	_, err := svc.Create(context.Background(), stockOfficer(), &CreatePurchaseOrderInput{
		Items: []PurchaseItemInput{
			{ProductTypeID: p1.ID, Quantity: 1},
			{ProductTypeID: p1.ID, Quantity: 2},
		},
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)
	assert.Contains(t, appErr.Message, "Cement 50kg")
}

func TestPurchaseOrderCreate_RejectsMissingProductAndBadQuantity(t *testing.T) {
	p1 := cement()
	svc, _, _ := newPurchaseFixture(p1)
	ctx := context.Background()

	_, err := svc.Create(ctx, stockOfficer(), &CreatePurchaseOrderInput{
		Items: []PurchaseItemInput{{ProductTypeID: uuid.New(), Quantity: 1}},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 404, appErr.Code)

	_, err = svc.Create(ctx, stockOfficer(), &CreatePurchaseOrderInput{
		Items: []PurchaseItemInput{{ProductTypeID: p1.ID, Quantity: 0}},
	})
	require.Error(t, err)

	_, err = svc.Create(ctx, stockOfficer(), &CreatePurchaseOrderInput{})
	require.Error(t, err)
}

func TestPurchaseOrderUpdate_RecomputesTotal(t *testing.T) {
	p1, p2 := cement(), steel()
	svc, _, _ := newPurchaseFixture(p1, p2)
	ctx := context.Background()
	actor := stockOfficer()

	order, err := svc.Create(ctx, actor, &CreatePurchaseOrderInput{
		Items: []PurchaseItemInput{{ProductTypeID: p1.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), order.TotalPrice)

	updated, err := svc.Update(ctx, actor, order.ID, &UpdatePurchaseOrderInput{
		Items: []PurchaseItemInput{
			{ProductTypeID: p1.ID, Quantity: 2},
			{ProductTypeID: p2.ID, Quantity: 4},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)
	assert.Equal(t, int64(4000), updated.TotalPrice)
}

func TestPurchaseOrderSubmitLocksEditing(t *testing.T) {
	p1 := cement()
	svc, _, _ := newPurchaseFixture(p1)
	ctx := context.Background()
	actor := stockOfficer()

	order, err := svc.Create(ctx, actor, &CreatePurchaseOrderInput{
		Items: []PurchaseItemInput{{ProductTypeID: p1.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	submitted, err := svc.Submit(ctx, actor, order.ID, "")
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusSubmitted, submitted.Status)

	_, err = svc.Update(ctx, actor, order.ID, &UpdatePurchaseOrderInput{
		Items: []PurchaseItemInput{{ProductTypeID: p1.ID, Quantity: 5}},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)

	_, err = svc.DeleteItem(ctx, actor, order.ID, submitted.Items[0].ID)
	require.Error(t, err)
}

func TestPurchaseOrderReturnReopensEditing(t *testing.T) {
	p1 := cement()
	svc, _, historyRepo := newPurchaseFixture(p1)
	ctx := context.Background()
	officer := stockOfficer()
	reviewer := admin()

	order, err := svc.Create(ctx, officer, &CreatePurchaseOrderInput{
		Items: []PurchaseItemInput{{ProductTypeID: p1.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, officer, order.ID, "")
	require.NoError(t, err)

	returned, err := svc.Return(ctx, reviewer, order.ID, "wrong quantity")
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusReturned, returned.Status)

	// editable again after return
	_, err = svc.Update(ctx, officer, order.ID, &UpdatePurchaseOrderInput{
		Items: []PurchaseItemInput{{ProductTypeID: p1.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	// resubmit and approve
	_, err = svc.Submit(ctx, officer, order.ID, "fixed")
	require.NoError(t, err)
	approved, err := svc.Approve(ctx, reviewer, order.ID, "checked")
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusApproved, approved.Status)

	// history: created, submitted, returned, submitted, approved
	require.Len(t, historyRepo.entries, 5)
	assert.Equal(t, enum.OrderStatusReturned, historyRepo.entries[2].Status)
	assert.Equal(t, "wrong quantity", historyRepo.entries[2].Comment)
	assert.Equal(t, reviewer.ID, historyRepo.entries[4].ActorID)
}

func TestPurchaseOrderApprove_RequiresAdmin(t *testing.T) {
	p1 := cement()
	svc, _, _ := newPurchaseFixture(p1)
	ctx := context.Background()
	officer := stockOfficer()

	order, err := svc.Create(ctx, officer, &CreatePurchaseOrderInput{
		Items: []PurchaseItemInput{{ProductTypeID: p1.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, officer, order.ID, "")
	require.NoError(t, err)

	_, err = svc.Approve(ctx, officer, order.ID, "self approval")
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 403, appErr.Code)
}

func TestPurchaseOrderDeleteItem_RestoresTotal(t *testing.T) {
	p1, p2 := cement(), steel()
	svc, _, _ := newPurchaseFixture(p1, p2)
	ctx := context.Background()
	actor := stockOfficer()

	order, err := svc.Create(ctx, actor, &CreatePurchaseOrderInput{
		Items: []PurchaseItemInput{
			{ProductTypeID: p1.ID, Quantity: 2},
			{ProductTypeID: p2.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3500), order.TotalPrice)

	var steelItem uuid.UUID
	for _, item := range order.Items {
		if item.ProductTypeID == p2.ID {
			steelItem = item.ID
		}
	}

	after, err := svc.DeleteItem(ctx, actor, order.ID, steelItem)
	require.NoError(t, err)
	require.Len(t, after.Items, 1)
	assert.Equal(t, int64(2000), after.TotalPrice)

	_, err = svc.DeleteItem(ctx, actor, order.ID, uuid.New())
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 404, appErr.Code)
}

func TestPurchaseOrderList_AppliesView(t *testing.T) {
	p1 := cement()
	svc, orderRepo, _ := newPurchaseFixture(p1)
	ctx := context.Background()
	actor := stockOfficer()

	for i := 0; i < 7; i++ {
		_, err := svc.Create(ctx, actor, &CreatePurchaseOrderInput{
			Items: []PurchaseItemInput{{ProductTypeID: p1.ID, Quantity: i + 1}},
		})
		require.NoError(t, err)
	}
	require.Len(t, orderRepo.orders, 7)

	page1, err := svc.List(ctx, listviewParams(1, 5))
	require.NoError(t, err)
	assert.Len(t, page1.Items, 5)
	assert.Equal(t, int64(7), page1.Pagination.Total)
	assert.Equal(t, 2, page1.Pagination.TotalPages)

	page2, err := svc.List(ctx, listviewParams(2, 5))
	require.NoError(t, err)
	assert.Len(t, page2.Items, 2)

	page3, err := svc.List(ctx, listviewParams(3, 5))
	require.NoError(t, err)
	assert.Empty(t, page3.Items)
}
