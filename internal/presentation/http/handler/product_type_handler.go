package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/internal/application/service"
	"github.com/kmaina/stockroom-api/internal/presentation/http/dto/request"
	"github.com/kmaina/stockroom-api/internal/presentation/http/dto/response"
	"github.com/kmaina/stockroom-api/pkg/listview"
)

// ProductTypeHandler handles product catalog HTTP requests
type ProductTypeHandler struct {
	productTypeService *service.ProductTypeService
}

// NewProductTypeHandler creates a new product type handler
func NewProductTypeHandler(productTypeService *service.ProductTypeService) *ProductTypeHandler {
	return &ProductTypeHandler{productTypeService: productTypeService}
}

// List handles listing product types
func (h *ProductTypeHandler) List(c *gin.Context) {
	var params listview.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.productTypeService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Product types retrieved successfully", result)
}

// Get handles getting a single product type
func (h *ProductTypeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product type ID")
		return
	}

	productType, err := h.productTypeService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product type retrieved successfully", productType)
}

// Create handles creating a product type
func (h *ProductTypeHandler) Create(c *gin.Context) {
	var req request.CreateProductTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	productType, err := h.productTypeService.Create(c.Request.Context(), &service.CreateProductTypeInput{
		ProductName:   req.ProductName,
		Description:   req.Description,
		Size:          req.Size,
		UnitPrice:     req.UnitPrice,
		SellUnitPrice: req.SellUnitPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product type created successfully", productType)
}

// Update handles updating a product type
func (h *ProductTypeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product type ID")
		return
	}

	var req request.UpdateProductTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	productType, err := h.productTypeService.Update(c.Request.Context(), id, &service.UpdateProductTypeInput{
		ProductName:   req.ProductName,
		Description:   req.Description,
		Size:          req.Size,
		UnitPrice:     req.UnitPrice,
		SellUnitPrice: req.SellUnitPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product type updated successfully", productType)
}

// Delete handles deleting a product type
func (h *ProductTypeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product type ID")
		return
	}

	if err := h.productTypeService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
