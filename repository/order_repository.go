package repository

import (
	"context"

	"gorm.io/gorm"

	"hotelfood/entity"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

// GetOrder reads inside the caller's transaction.
func (r *OrderRepository) GetOrder(tx *gorm.DB, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := tx.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderWithItems(ctx context.Context, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.WithContext(ctx).Preload("Items.MenuItem").First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// kitchen board: everything not Delivered/Cancelled, newest first
func (r *OrderRepository) ListActive(ctx context.Context) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.WithContext(ctx).
		Preload("Items.MenuItem").
		Where("status NOT IN ?", entity.TerminalStatuses()).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	return out, err
}

func (r *OrderRepository) ListRecent(ctx context.Context, limit int) ([]entity.Order, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []entity.Order
	err := r.DB.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpdateStatusGuard moves the order only if it is still in status from.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// SetStatus overwrites the status whatever it was.
func (r *OrderRepository) SetStatus(tx *gorm.DB, orderID uint, to entity.OrderStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ?", orderID).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// ---------------- Order Items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

// ---------------- Validations / Helpers ----------------

// MenuItemExists runs inside the placement transaction.
func (r *OrderRepository) MenuItemExists(tx *gorm.DB, id uint) (bool, error) {
	var cnt int64
	if err := tx.Model(&entity.MenuItem{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
