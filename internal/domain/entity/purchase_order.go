package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/internal/domain/enum"
	"gorm.io/gorm"
)

// PurchaseOrder represents an order placed with a supplier. The order
// exclusively owns its line items; TotalPrice is recomputed and stored on
// every line mutation.
type PurchaseOrder struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseCode string           `gorm:"size:100;unique;not null" json:"purchase_code"`
	PurchaseDate time.Time        `gorm:"type:date;not null" json:"purchase_date"`
	Status       enum.OrderStatus `gorm:"default:0" json:"status"`
	TotalPrice   int64            `gorm:"default:0" json:"-"` // Stored in cents
	CreatedByID  *uuid.UUID       `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	ModifiedByID *uuid.UUID       `gorm:"type:uuid;column:modified_by" json:"modified_by,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	CreatedBy  *User               `gorm:"foreignKey:CreatedByID" json:"created_by_user,omitempty"`
	ModifiedBy *User               `gorm:"foreignKey:ModifiedByID" json:"modified_by_user,omitempty"`
	Items      []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o PurchaseOrder) MarshalJSON() ([]byte, error) {
	type Alias PurchaseOrder
	return json.Marshal(&struct {
		Alias
		TotalPrice float64 `json:"total_price"`
	}{
		Alias:      Alias(o),
		TotalPrice: float64(o.TotalPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new purchase order
func (o *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrder model
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItem represents a line item in a purchase order.
// TaxAmount is a per-unit tax: TotalTax = TaxAmount * Quantity.
type PurchaseOrderItem struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseOrderID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	ProductTypeID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_type_id"`
	ProductName       string         `gorm:"size:255" json:"product_name"`
	Size              int            `gorm:"default:0" json:"size"`
	Quantity          int            `gorm:"not null" json:"quantity"`
	UnitPrice         int64          `gorm:"not null" json:"-"`  // Stored in cents
	TaxAmount         int64          `gorm:"default:0" json:"-"` // Per-unit tax, in cents
	TotalTax          int64          `gorm:"default:0" json:"-"` // Stored in cents
	TotalPriceWithTax int64          `gorm:"not null" json:"-"`  // Stored in cents
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	PurchaseOrder PurchaseOrder `gorm:"foreignKey:PurchaseOrderID" json:"-"`
	ProductType   ProductType   `gorm:"foreignKey:ProductTypeID" json:"product_type,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i PurchaseOrderItem) MarshalJSON() ([]byte, error) {
	type Alias PurchaseOrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice         float64 `json:"unit_price"`
		TaxAmount         float64 `json:"tax_amount"`
		TotalTax          float64 `json:"total_tax"`
		TotalPriceWithTax float64 `json:"total_price_with_tax"`
	}{
		Alias:             Alias(i),
		UnitPrice:         float64(i.UnitPrice) / 100,
		TaxAmount:         float64(i.TaxAmount) / 100,
		TotalTax:          float64(i.TotalTax) / 100,
		TotalPriceWithTax: float64(i.TotalPriceWithTax) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new purchase order item
func (i *PurchaseOrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrderItem model
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// PurchaseOrderHistory is an append-only record of a status transition.
// Rows are never updated or deleted once written.
type PurchaseOrderHistory struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseOrderID uuid.UUID        `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	Status          enum.OrderStatus `gorm:"not null" json:"status"`
	Comment         string           `gorm:"type:text" json:"comment"`
	ActorID         uuid.UUID        `gorm:"type:uuid;not null" json:"actor_id"`
	CreatedAt       time.Time        `json:"created_at"`

	// Relationships
	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

// BeforeCreate generates a UUID before creating a new history entry
func (h *PurchaseOrderHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrderHistory model
func (PurchaseOrderHistory) TableName() string {
	return "purchase_order_histories"
}
