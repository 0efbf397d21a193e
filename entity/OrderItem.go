package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	Quantity int `gorm:"not null;default:1" json:"quantity"`

	// locked at placement, later menu price edits do not touch it
	PriceAtOrder decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"priceAtOrder"`

	OrderID uint  `gorm:"not null;index" json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint     `gorm:"not null;index" json:"menuItemId"`
	MenuItem   MenuItem `json:"menuItem,omitempty"`
}

// LineTotal is PriceAtOrder × Quantity.
func (oi OrderItem) LineTotal() decimal.Decimal {
	return oi.PriceAtOrder.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
