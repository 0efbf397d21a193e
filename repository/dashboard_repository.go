package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hotelfood/entity"
)

// DashboardRepository runs the admin aggregate queries.
type DashboardRepository struct {
	DB *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{DB: db}
}

// TotalSales sums totals of delivered orders only.
func (r *DashboardRepository) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.DB.WithContext(ctx).
		Model(&entity.Order{}).
		Select("SUM(total)").
		Where("status = ?", entity.StatusDelivered).
		Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *DashboardRepository) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Order{}).Count(&n).Error
	return n, err
}

type StatusCount struct {
	Status entity.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

// CountByStatus returns one row per status in the enumeration, zero counts included.
func (r *DashboardRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.DB.WithContext(ctx).
		Model(&entity.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byStatus := make(map[entity.OrderStatus]int64, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row.Count
	}
	out := make([]StatusCount, 0, len(entity.AllStatuses))
	for _, s := range entity.AllStatuses {
		out = append(out, StatusCount{Status: s, Count: byStatus[s]})
	}
	return out, nil
}
