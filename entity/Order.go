package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	Status  OrderStatus     `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	Total   decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0" json:"total"`
	TableNo *int            `json:"tableNo,omitempty"`

	// preloaded for the kitchen board and order detail only
	Items []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
}
