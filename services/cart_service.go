package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"hotelfood/entity"
	"hotelfood/pkg/cartstore"
	"hotelfood/repository"
)

type CartService struct {
	Store    cartstore.Store
	MenuRepo *repository.MenuRepository
}

func NewCartService(store cartstore.Store, menuRepo *repository.MenuRepository) *CartService {
	return &CartService{Store: store, MenuRepo: menuRepo}
}

type CartView struct {
	Items []entity.CartEntry `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

func viewOf(c *entity.Cart) *CartView {
	return &CartView{Items: c.Entries(), Total: c.Total()}
}

func (s *CartService) Get(ctx context.Context, sessionID string) (*CartView, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	c, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return viewOf(c), nil
}

// Add puts one more of the dish in the cart, snapshotting name/price/image on first add.
func (s *CartService) Add(ctx context.Context, sessionID string, itemID uint) (*CartView, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	item, err := s.MenuRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, notFound(err, "menu item")
	}
	if !item.Available {
		return nil, ErrItemUnavailable
	}

	c, err := s.Store.Update(ctx, sessionID, func(c *entity.Cart) error {
		c.Add(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return viewOf(c), nil
}

// Update applies increment / decrement / remove. Dishes not in the cart are ignored.
func (s *CartService) Update(ctx context.Context, sessionID string, itemID uint, action string) (*CartView, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	a := entity.CartAction(strings.ToLower(strings.TrimSpace(action)))

	c, err := s.Store.Update(ctx, sessionID, func(c *entity.Cart) error {
		return c.Apply(itemID, a)
	})
	if errors.Is(err, entity.ErrUnknownCartAction) {
		return nil, ErrInvalidAction
	}
	if err != nil {
		return nil, err
	}
	return viewOf(c), nil
}

// Start gives a new customer session an empty cart.
func (s *CartService) Start(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrNoSession
	}
	return s.Store.Reset(ctx, sessionID)
}

// Drop forgets the session cart on logout.
func (s *CartService) Drop(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.Store.Delete(ctx, sessionID)
}
