// repository/menu_repository.go
package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"hotelfood/entity"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

// MenuFilter narrows the customer menu. Empty Category or "all" means every category.
type MenuFilter struct {
	Category string
	Search   string
}

// search text is matched literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// available dishes only, for the customer menu
func (r *MenuRepository) ListAvailable(ctx context.Context, f MenuFilter) ([]entity.MenuItem, error) {
	q := r.DB.WithContext(ctx).
		Preload("Category").
		Where("available = ?", true)

	if f.Category != "" && f.Category != "all" {
		q = q.Where("category_id IN (?)",
			r.DB.Model(&entity.Category{}).Select("id").Where("name = ?", f.Category))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(s))+"%")
	}

	var items []entity.MenuItem
	err := q.Order("id").Find(&items).Error
	return items, err
}

// every dish, grouped by category then name, for the dashboard
func (r *MenuRepository) ListAll(ctx context.Context) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.WithContext(ctx).
		Preload("Category").
		Order("category_id").Order("name").
		Find(&items).Error
	return items, err
}

func (r *MenuRepository) FindByID(ctx context.Context, id uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	if err := r.DB.WithContext(ctx).Preload("Category").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MenuRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	return r.DB.WithContext(ctx).Omit("Category").Create(item).Error
}

func (r *MenuRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	return r.DB.WithContext(ctx).Omit("Category").Save(item).Error
}

// Delete removes the dish for good together with every order line that references it.
func (r *MenuRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("menu_item_id = ?", id).Delete(&entity.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Unscoped().Delete(&entity.MenuItem{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
