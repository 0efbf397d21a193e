package services

import (
	"context"

	"github.com/shopspring/decimal"

	"hotelfood/entity"
	"hotelfood/repository"
)

const recentOrdersLimit = 5

type DashboardService struct {
	Repo         *repository.DashboardRepository
	OrderRepo    *repository.OrderRepository
	MenuRepo     *repository.MenuRepository
	CategoryRepo *repository.CategoryRepository
}

func NewDashboardService(
	repo *repository.DashboardRepository,
	orderRepo *repository.OrderRepository,
	menuRepo *repository.MenuRepository,
	categoryRepo *repository.CategoryRepository,
) *DashboardService {
	return &DashboardService{Repo: repo, OrderRepo: orderRepo, MenuRepo: menuRepo, CategoryRepo: categoryRepo}
}

type Dashboard struct {
	TotalSales   decimal.Decimal          `json:"totalSales"`
	TotalOrders  int64                    `json:"totalOrders"`
	StatusCounts []repository.StatusCount `json:"statusCounts"`
	RecentOrders []entity.Order           `json:"recentOrders"`
	MenuItems    []entity.MenuItem        `json:"menuItems"`
	Categories   []entity.Category        `json:"categories"`
	Statuses     []entity.OrderStatus     `json:"statuses"`
}

func (s *DashboardService) Load(ctx context.Context) (*Dashboard, error) {
	sales, err := s.Repo.TotalSales(ctx)
	if err != nil {
		return nil, err
	}
	count, err := s.Repo.CountOrders(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.Repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.OrderRepo.ListRecent(ctx, recentOrdersLimit)
	if err != nil {
		return nil, err
	}
	items, err := s.MenuRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	cats, err := s.CategoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TotalSales:   sales,
		TotalOrders:  count,
		StatusCounts: byStatus,
		RecentOrders: recent,
		MenuItems:    items,
		Categories:   cats,
		Statuses:     entity.AllStatuses,
	}, nil
}
