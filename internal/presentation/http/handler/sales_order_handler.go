package handler

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/internal/application/service"
	"github.com/kmaina/stockroom-api/internal/domain/entity"
	"github.com/kmaina/stockroom-api/internal/domain/lifecycle"
	"github.com/kmaina/stockroom-api/internal/presentation/http/dto/request"
	"github.com/kmaina/stockroom-api/internal/presentation/http/dto/response"
	"github.com/kmaina/stockroom-api/pkg/listview"
)

// SalesOrderHandler handles sales order HTTP requests
type SalesOrderHandler struct {
	salesOrderService *service.SalesOrderService
}

// NewSalesOrderHandler creates a new sales order handler
func NewSalesOrderHandler(salesOrderService *service.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{salesOrderService: salesOrderService}
}

func salesItemInputs(items []request.SalesItemRequest) []service.SalesItemInput {
	inputs := make([]service.SalesItemInput, len(items))
	for i, item := range items {
		inputs[i] = service.SalesItemInput{
			ProductTypeID: item.ProductTypeID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
		}
	}
	return inputs
}

// List handles listing sales orders
func (h *SalesOrderHandler) List(c *gin.Context) {
	var params listview.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.salesOrderService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales orders retrieved successfully", result)
}

// Get handles getting a single sales order with its items
func (h *SalesOrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sales order ID")
		return
	}

	order, err := h.salesOrderService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales order retrieved successfully", order)
}

// Create handles creating a sales order
func (h *SalesOrderHandler) Create(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date, ok := parseOrderDate(c, req.SaleDate)
	if !ok {
		return
	}

	order, err := h.salesOrderService.Create(c.Request.Context(), *actor, &service.CreateSalesOrderInput{
		CustomerName: req.CustomerName,
		SaleDate:     date,
		Items:        salesItemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sales order created successfully", order)
}

// Update handles replacing a sales order's header and items
func (h *SalesOrderHandler) Update(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sales order ID")
		return
	}

	var req request.UpdateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date, ok := parseOrderDate(c, req.SaleDate)
	if !ok {
		return
	}

	order, err := h.salesOrderService.Update(c.Request.Context(), *actor, id, &service.UpdateSalesOrderInput{
		CustomerName: req.CustomerName,
		SaleDate:     date,
		Items:        salesItemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales order updated successfully", order)
}

// Delete handles deleting a sales order
func (h *SalesOrderHandler) Delete(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sales order ID")
		return
	}

	if err := h.salesOrderService.Delete(c.Request.Context(), *actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// DeleteItem handles removing one line item from a sales order
func (h *SalesOrderHandler) DeleteItem(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sales order ID")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	order, err := h.salesOrderService.DeleteItem(c.Request.Context(), *actor, orderID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed successfully", order)
}

func (h *SalesOrderHandler) handleTransition(
	c *gin.Context,
	message string,
	action func(ctx context.Context, actor lifecycle.Actor, id uuid.UUID, comment string) (*entity.SalesOrder, error),
) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sales order ID")
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

// Submit handles submitting a sales order for approval
func (h *SalesOrderHandler) Submit(c *gin.Context) {
	h.handleTransition(c, "Sales order submitted successfully", h.salesOrderService.Submit)
}

// Approve handles approving a submitted sales order
func (h *SalesOrderHandler) Approve(c *gin.Context) {
	h.handleTransition(c, "Sales order approved successfully", h.salesOrderService.Approve)
}

// Return handles returning a submitted sales order for rework
func (h *SalesOrderHandler) Return(c *gin.Context) {
	h.handleTransition(c, "Sales order returned successfully", h.salesOrderService.Return)
}

// History handles listing the order's lifecycle history
func (h *SalesOrderHandler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sales order ID")
		return
	}

	history, err := h.salesOrderService.History(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order history retrieved successfully", history)
}
