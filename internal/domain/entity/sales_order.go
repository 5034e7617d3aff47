package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/internal/domain/enum"
	"gorm.io/gorm"
)

// SalesOrder represents an order placed by a customer. Sales lines carry no
// tax; the stored TotalPrice is the sum of the line totals in cents.
type SalesOrder struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	SaleCode     string           `gorm:"size:100;unique;not null" json:"sale_code"`
	CustomerName string           `gorm:"size:255;not null" json:"customer_name"`
	SaleDate     time.Time        `gorm:"type:date;not null" json:"sale_date"`
	Status       enum.OrderStatus `gorm:"default:0" json:"status"`
	TotalPrice   int64            `gorm:"default:0" json:"-"` // Stored in cents
	CreatedByID  *uuid.UUID       `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	ModifiedByID *uuid.UUID       `gorm:"type:uuid;column:modified_by" json:"modified_by,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	CreatedBy  *User            `gorm:"foreignKey:CreatedByID" json:"created_by_user,omitempty"`
	ModifiedBy *User            `gorm:"foreignKey:ModifiedByID" json:"modified_by_user,omitempty"`
	Items      []SalesOrderItem `gorm:"foreignKey:SalesOrderID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o SalesOrder) MarshalJSON() ([]byte, error) {
	type Alias SalesOrder
	return json.Marshal(&struct {
		Alias
		TotalPrice float64 `json:"total_price"`
	}{
		Alias:      Alias(o),
		TotalPrice: float64(o.TotalPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sales order
func (o *SalesOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesOrder model
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// SalesOrderItem represents a line item in a sales order.
type SalesOrderItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SalesOrderID uuid.UUID      `gorm:"type:uuid;not null;index" json:"sales_order_id"`
	ProductTypeID uuid.UUID     `gorm:"type:uuid;not null;index" json:"product_type_id"`
	ProductName  string         `gorm:"size:255" json:"product_name"`
	Size         int            `gorm:"default:0" json:"size"`
	Quantity     int            `gorm:"not null" json:"quantity"`
	UnitPrice    int64          `gorm:"not null" json:"-"` // Stored in cents
	TotalPrice   int64          `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	SalesOrder  SalesOrder  `gorm:"foreignKey:SalesOrderID" json:"-"`
	ProductType ProductType `gorm:"foreignKey:ProductTypeID" json:"product_type,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i SalesOrderItem) MarshalJSON() ([]byte, error) {
	type Alias SalesOrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice  float64 `json:"unit_price"`
		TotalPrice float64 `json:"total_price"`
	}{
		Alias:      Alias(i),
		UnitPrice:  float64(i.UnitPrice) / 100,
		TotalPrice: float64(i.TotalPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sales order item
func (i *SalesOrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesOrderItem model
func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}

// SalesOrderHistory is an append-only record of a status transition.
type SalesOrderHistory struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	SalesOrderID uuid.UUID        `gorm:"type:uuid;not null;index" json:"sales_order_id"`
	Status       enum.OrderStatus `gorm:"not null" json:"status"`
	Comment      string           `gorm:"type:text" json:"comment"`
	ActorID      uuid.UUID        `gorm:"type:uuid;not null" json:"actor_id"`
	CreatedAt    time.Time        `json:"created_at"`

	// Relationships
	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

// BeforeCreate generates a UUID before creating a new history entry
func (h *SalesOrderHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesOrderHistory model
func (SalesOrderHistory) TableName() string {
	return "sales_order_histories"
}
