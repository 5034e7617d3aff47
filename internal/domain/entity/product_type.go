package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductType represents an item in the product catalog. It is reference
// data: order line items point at it by id and never own it.
type ProductType struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ProductCode   string         `gorm:"size:100;unique;not null" json:"product_code"`
	ProductName   string         `gorm:"size:255;not null" json:"product_name"`
	Description   string         `gorm:"type:text" json:"description"`
	Size          int            `gorm:"default:0" json:"size"`
	UnitPrice     int64          `gorm:"default:0" json:"-"` // purchase cost, stored in cents
	SellUnitPrice int64          `gorm:"default:0" json:"-"` // sale price, stored in cents
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product type
func (p *ProductType) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProductType model
func (ProductType) TableName() string {
	return "product_types"
}

// GetUnitPriceDecimal returns the purchase cost as a decimal (for display)
func (p *ProductType) GetUnitPriceDecimal() float64 {
	return float64(p.UnitPrice) / 100
}

// GetSellUnitPriceDecimal returns the sale price as a decimal (for display)
func (p *ProductType) GetSellUnitPriceDecimal() float64 {
	return float64(p.SellUnitPrice) / 100
}

// MarshalJSON converts ProductType to JSON with decimal prices
func (p ProductType) MarshalJSON() ([]byte, error) {
	type Alias ProductType
	return json.Marshal(&struct {
		Alias
		UnitPrice     float64 `json:"unit_price"`
		SellUnitPrice float64 `json:"sell_unit_price"`
	}{
		Alias:         Alias(p),
		UnitPrice:     p.GetUnitPriceDecimal(),
		SellUnitPrice: p.GetSellUnitPriceDecimal(),
	})
}
