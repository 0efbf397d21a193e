package repository

import (
	"context"

	"gorm.io/gorm"

	"hotelfood/entity"
)

// StaffRepository only talks to the staffs table.
type StaffRepository struct {
	DB *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{DB: db}
}

func (r *StaffRepository) FindByUsername(ctx context.Context, username string) (*entity.Staff, error) {
	var s entity.Staff
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
