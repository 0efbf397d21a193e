package entity

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	// not sent back with every category
	MenuItems []MenuItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
