package entity

import (
	"gorm.io/gorm"
)

// Staff is a kitchen or admin account. Customers have no account, only a session.
type Staff struct {
	gorm.Model
	Username string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"size:20;not null" json:"role"`
}
