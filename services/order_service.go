package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hotelfood/entity"
	"hotelfood/pkg/cartstore"
	"hotelfood/pkg/metrics"
	"hotelfood/repository"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	Carts    cartstore.Store
	Notifier Notifier
	Metrics  *metrics.Metrics
	Log      *logrus.Logger
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	carts cartstore.Store,
	notifier Notifier,
	m *metrics.Metrics,
	log *logrus.Logger,
) *OrderService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &OrderService{DB: db, Repo: repo, Carts: carts, Notifier: notifier, Metrics: m, Log: log}
}

type PlaceOrderRes struct {
	ID    uint            `json:"id"`
	Total decimal.Decimal `json:"total"`
}

// PlaceOrder turns the session cart into an Order with one OrderItem per entry.
// The rows are written in one transaction; the cart is emptied only after commit.
func (s *OrderService) PlaceOrder(ctx context.Context, sessionID string, tableNo *int) (*PlaceOrderRes, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	if tableNo != nil && *tableNo <= 0 {
		return nil, fmt.Errorf("table number: %w", ErrInvalidInput)
	}

	var (
		order  *entity.Order
		placed []entity.CartEntry
	)
	_, err := s.Carts.Update(ctx, sessionID, func(cart *entity.Cart) error {
		// a store may re-run fn after a write conflict; never insert twice
		if order == nil {
			if cart.Empty() {
				return ErrEmptyCart
			}
			placed = cart.Entries()
			o, err := s.createFromEntries(ctx, placed, tableNo)
			if err != nil {
				return err
			}
			order = o
		}
		removePlaced(cart, placed)
		return nil
	})
	if err != nil && order == nil {
		return nil, err
	}
	if err != nil {
		// order is committed, only the cart clear failed
		s.Log.WithError(err).WithFields(logrus.Fields{
			"order_id": order.ID,
			"session":  sessionID,
		}).Warn("order placed but cart not cleared")
	}

	s.Metrics.OrderPlaced()
	s.Log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    order.Total.StringFixed(2),
		"items":    len(placed),
	}).Info("order placed")
	s.Notifier.Publish(entity.OrderEvent{
		Type:    entity.EventOrderPlaced,
		OrderID: order.ID,
		Status:  order.Status,
		Total:   order.Total.StringFixed(2),
		TableNo: order.TableNo,
	})

	return &PlaceOrderRes{ID: order.ID, Total: order.Total}, nil
}

func (s *OrderService) createFromEntries(ctx context.Context, entries []entity.CartEntry, tableNo *int) (*entity.Order, error) {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.LineTotal())
	}

	order := entity.Order{
		Status:  entity.StatusPending,
		Total:   total,
		TableNo: tableNo,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		// ย้ายรายการจาก cart -> order
		for _, e := range entries {
			ok, err := s.Repo.MenuItemExists(tx, e.ID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("menu item %d: %w", e.ID, ErrNotFound)
			}
			oi := entity.OrderItem{
				OrderID:      order.ID,
				MenuItemID:   e.ID,
				Quantity:     e.Quantity,
				PriceAtOrder: e.Price,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
			order.Items = append(order.Items, oi)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// removePlaced takes the placed quantities back out of the cart. On the first run this
// empties it; on a retry it keeps whatever was added concurrently.
func removePlaced(cart *entity.Cart, placed []entity.CartEntry) {
	for _, p := range placed {
		e, ok := cart.Items[p.ID]
		if !ok {
			continue
		}
		e.Quantity -= p.Quantity
		if e.Quantity <= 0 {
			delete(cart.Items, p.ID)
		}
	}
}

// ----- Kitchen / dashboard reads -----

// ActiveOrders is the kitchen board: no Delivered/Cancelled, newest first, with items.
func (s *OrderService) ActiveOrders(ctx context.Context) ([]entity.Order, error) {
	return s.Repo.ListActive(ctx)
}

func (s *OrderService) Detail(ctx context.Context, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrderWithItems(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	return o, nil
}
