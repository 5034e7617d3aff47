package handler

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/internal/application/service"
	"github.com/kmaina/stockroom-api/internal/domain/entity"
	"github.com/kmaina/stockroom-api/internal/domain/lifecycle"
	"github.com/kmaina/stockroom-api/internal/presentation/http/dto/request"
	"github.com/kmaina/stockroom-api/internal/presentation/http/dto/response"
	"github.com/kmaina/stockroom-api/pkg/listview"
)

// PurchaseOrderHandler handles purchase order HTTP requests
type PurchaseOrderHandler struct {
	purchaseOrderService *service.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new purchase order handler
func NewPurchaseOrderHandler(purchaseOrderService *service.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{purchaseOrderService: purchaseOrderService}
}

func parseOrderDate(c *gin.Context, value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

func purchaseItemInputs(items []request.PurchaseItemRequest) []service.PurchaseItemInput {
	inputs := make([]service.PurchaseItemInput, len(items))
	for i, item := range items {
		inputs[i] = service.PurchaseItemInput{
			ProductTypeID: item.ProductTypeID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			TaxAmount:     item.TaxAmount,
		}
	}
	return inputs
}

// List handles listing purchase orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	var params listview.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.purchaseOrderService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchase orders retrieved successfully", result)
}

// Get handles getting a single purchase order with its items
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	order, err := h.purchaseOrderService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order retrieved successfully", order)
}

// Create handles creating a purchase order
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date, ok := parseOrderDate(c, req.PurchaseDate)
	if !ok {
		return
	}

	order, err := h.purchaseOrderService.Create(c.Request.Context(), *actor, &service.CreatePurchaseOrderInput{
		PurchaseDate: date,
		Items:        purchaseItemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase order created successfully", order)
}

// Update handles replacing a purchase order's date and items
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	var req request.UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date, ok := parseOrderDate(c, req.PurchaseDate)
	if !ok {
		return
	}

	order, err := h.purchaseOrderService.Update(c.Request.Context(), *actor, id, &service.UpdatePurchaseOrderInput{
		PurchaseDate: date,
		Items:        purchaseItemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order updated successfully", order)
}

// Delete handles deleting a purchase order
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	if err := h.purchaseOrderService.Delete(c.Request.Context(), *actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// DeleteItem handles removing one line item from a purchase order
func (h *PurchaseOrderHandler) DeleteItem(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	order, err := h.purchaseOrderService.DeleteItem(c.Request.Context(), *actor, orderID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed successfully", order)
}

func (h *PurchaseOrderHandler) handleTransition(
	c *gin.Context,
	message string,
	action func(ctx context.Context, actor lifecycle.Actor, id uuid.UUID, comment string) (*entity.PurchaseOrder, error),
) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	var req request.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := action(c.Request.Context(), *actor, id, req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, order)
}

// Submit handles submitting a purchase order for approval
func (h *PurchaseOrderHandler) Submit(c *gin.Context) {
	h.handleTransition(c, "Purchase order submitted successfully", h.purchaseOrderService.Submit)
}

// Approve handles approving a submitted purchase order
func (h *PurchaseOrderHandler) Approve(c *gin.Context) {
	h.handleTransition(c, "Purchase order approved successfully", h.purchaseOrderService.Approve)
}

// Return handles returning a submitted purchase order for rework
func (h *PurchaseOrderHandler) Return(c *gin.Context) {
	h.handleTransition(c, "Purchase order returned successfully", h.purchaseOrderService.Return)
}

// History handles listing the order's lifecycle history
func (h *PurchaseOrderHandler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	history, err := h.purchaseOrderService.History(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order history retrieved successfully", history)
}
