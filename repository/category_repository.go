package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"hotelfood/entity"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	var cats []entity.Category
	err := r.DB.WithContext(ctx).Order("name").Find(&cats).Error
	return cats, err
}

// GetOrCreate is keyed by name, calling it twice yields the same row.
func (r *CategoryRepository) GetOrCreate(ctx context.Context, name string) (*entity.Category, error) {
	var c entity.Category
	err := r.DB.WithContext(ctx).
		Where(entity.Category{Name: strings.TrimSpace(name)}).
		FirstOrCreate(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}
