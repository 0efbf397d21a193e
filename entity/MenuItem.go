package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const DefaultMenuImage = "🍽"

type MenuItem struct {
	gorm.Model
	Name        string          `gorm:"size:200;not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price"`
	Image       string          `gorm:"size:10;default:'🍽'" json:"image"`
	Description string          `gorm:"type:text" json:"description"`
	Available   bool            `gorm:"not null" json:"available"`

	// shown next to the dish on the menu card, not a stock counter
	DisplayQuantity int `gorm:"not null;default:1" json:"displayQuantity"`

	CategoryID uint     `gorm:"not null;index" json:"categoryId"`
	Category   Category `json:"category"`

	OrderItems []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
