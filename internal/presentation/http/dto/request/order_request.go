package request

import "github.com/google/uuid"

// PurchaseItemRequest represents one purchase order line. TaxAmount is the
// tax on a single unit; a zero unit price uses the catalog purchase price.
type PurchaseItemRequest struct {
	ProductTypeID uuid.UUID `json:"product_type_id" binding:"required"`
	Quantity      int       `json:"quantity" binding:"required,min=1"`
	UnitPrice     float64   `json:"unit_price" binding:"omitempty,min=0"`
	TaxAmount     float64   `json:"tax_amount" binding:"omitempty,min=0"`
}

// CreatePurchaseOrderRequest represents a create purchase order request.
// PurchaseDate uses the "2006-01-02" layout.
type CreatePurchaseOrderRequest struct {
	PurchaseDate string                `json:"purchase_date"`
	Items        []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdatePurchaseOrderRequest replaces the order's date and full item set
type UpdatePurchaseOrderRequest struct {
	PurchaseDate string                `json:"purchase_date"`
	Items        []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SalesItemRequest represents one sales order line. A zero unit price uses
// the catalog selling price.
type SalesItemRequest struct {
	ProductTypeID uuid.UUID `json:"product_type_id" binding:"required"`
	Quantity      int       `json:"quantity" binding:"required,min=1"`
	UnitPrice     float64   `json:"unit_price" binding:"omitempty,min=0"`
}

// CreateSalesOrderRequest represents a create sales order request.
// SaleDate uses the "2006-01-02" layout.
type CreateSalesOrderRequest struct {
	CustomerName string             `json:"customer_name" binding:"required,min=2,max=255"`
	SaleDate     string             `json:"sale_date"`
	Items        []SalesItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateSalesOrderRequest replaces the order's header and full item set
type UpdateSalesOrderRequest struct {
	CustomerName string             `json:"customer_name"`
	SaleDate     string             `json:"sale_date"`
	Items        []SalesItemRequest `json:"items" binding:"required,min=1,dive"`
}

// TransitionRequest carries the review comment for a lifecycle action.
// Submit accepts an empty comment; approve and return require one.
type TransitionRequest struct {
	Comment string `json:"comment"`
}
