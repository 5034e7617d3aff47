package request

// CreateProductTypeRequest represents a create product type request.
// Prices are decimal amounts.
type CreateProductTypeRequest struct {
	ProductName   string  `json:"product_name" binding:"required,min=2,max=255"`
	Description   string  `json:"description"`
	Size          int     `json:"size" binding:"omitempty,min=0"`
	UnitPrice     float64 `json:"unit_price" binding:"omitempty,min=0"`
	SellUnitPrice float64 `json:"sell_unit_price" binding:"omitempty,min=0"`
}

// UpdateProductTypeRequest represents an update product type request.
// Only the provided fields change.
type UpdateProductTypeRequest struct {
	ProductName   *string  `json:"product_name" binding:"omitempty,min=2,max=255"`
	Description   *string  `json:"description"`
	Size          *int     `json:"size" binding:"omitempty,min=0"`
	UnitPrice     *float64 `json:"unit_price" binding:"omitempty,min=0"`
	SellUnitPrice *float64 `json:"sell_unit_price" binding:"omitempty,min=0"`
}
