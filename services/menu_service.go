// services/menu_service.go
package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"hotelfood/entity"
	"hotelfood/repository"
)

// largest value decimal(6,2) can hold
var maxPrice = decimal.RequireFromString("9999.99")

type MenuService struct {
	Repo         *repository.MenuRepository
	CategoryRepo *repository.CategoryRepository
}

func NewMenuService(repo *repository.MenuRepository, categoryRepo *repository.CategoryRepository) *MenuService {
	return &MenuService{Repo: repo, CategoryRepo: categoryRepo}
}

// MenuItemIn is the add/edit form. Price and Available stay strings so that form posts
// ("on", "true", "12.50") and JSON bodies bind the same way.
type MenuItemIn struct {
	Name            string `form:"name" json:"name" binding:"required"`
	Category        string `form:"category" json:"category" binding:"required"`
	Price           string `form:"price" json:"price" binding:"required"`
	Image           string `form:"image" json:"image"`
	Description     string `form:"description" json:"description"`
	Available       string `form:"available" json:"available"`
	DisplayQuantity int    `form:"display_quantity" json:"displayQuantity"`
}

func ParsePrice(raw string) (decimal.Decimal, error) {
	p, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || p.IsNegative() || p.GreaterThan(maxPrice) {
		return decimal.Zero, ErrInvalidPrice
	}
	return p.Round(2), nil
}

// checkbox semantics: missing or unchecked means false
func parseAvailable(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "yes":
		return true
	}
	b, _ := strconv.ParseBool(strings.TrimSpace(raw))
	return b
}

func (s *MenuService) apply(ctx context.Context, item *entity.MenuItem, in *MenuItemIn) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("name: %w", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Category) == "" {
		return fmt.Errorf("category: %w", ErrInvalidInput)
	}
	price, err := ParsePrice(in.Price)
	if err != nil {
		return err
	}
	if in.DisplayQuantity < 0 {
		return fmt.Errorf("display quantity: %w", ErrInvalidInput)
	}

	cat, err := s.CategoryRepo.GetOrCreate(ctx, in.Category)
	if err != nil {
		return err
	}

	item.Name = name
	item.Price = price
	item.Description = strings.TrimSpace(in.Description)
	item.Available = parseAvailable(in.Available)
	item.CategoryID = cat.ID
	item.Category = *cat
	if img := strings.TrimSpace(in.Image); img != "" {
		item.Image = img
	} else if item.Image == "" {
		item.Image = entity.DefaultMenuImage
	}
	if in.DisplayQuantity > 0 {
		item.DisplayQuantity = in.DisplayQuantity
	} else if item.DisplayQuantity == 0 {
		item.DisplayQuantity = 1
	}
	return nil
}

func (s *MenuService) Create(ctx context.Context, in *MenuItemIn) (*entity.MenuItem, error) {
	var item entity.MenuItem
	if err := s.apply(ctx, &item, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *MenuService) Update(ctx context.Context, id uint, in *MenuItemIn) (*entity.MenuItem, error) {
	item, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "menu item")
	}
	if err := s.apply(ctx, item, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete is a hard delete; order lines pointing at the dish go with it.
func (s *MenuService) Delete(ctx context.Context, id uint) error {
	return notFound(s.Repo.Delete(ctx, id), "menu item")
}

func (s *MenuService) Get(ctx context.Context, id uint) (*entity.MenuItem, error) {
	item, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "menu item")
	}
	return item, nil
}

func (s *MenuService) Categories(ctx context.Context) ([]entity.Category, error) {
	return s.CategoryRepo.List(ctx)
}

// GetOrCreateCategory is idempotent on name.
func (s *MenuService) GetOrCreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("category: %w", ErrInvalidInput)
	}
	return s.CategoryRepo.GetOrCreate(ctx, name)
}

type CustomerMenu struct {
	Items      []entity.MenuItem  `json:"items"`
	Categories []entity.Category  `json:"categories"`
	Cart       []entity.CartEntry `json:"cart"`
	CartTotal  decimal.Decimal    `json:"cartTotal"`
	Category   string             `json:"category"`
	Search     string             `json:"search"`
}

// CustomerListing is the customer menu page: available dishes, filters and the cart.
func (s *MenuService) CustomerListing(ctx context.Context, f repository.MenuFilter, cart *CartView) (*CustomerMenu, error) {
	items, err := s.Repo.ListAvailable(ctx, f)
	if err != nil {
		return nil, err
	}
	cats, err := s.CategoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &CustomerMenu{
		Items:      items,
		Categories: cats,
		Cart:       []entity.CartEntry{},
		CartTotal:  decimal.Zero,
		Category:   f.Category,
		Search:     f.Search,
	}
	if out.Category == "" {
		out.Category = "all"
	}
	if cart != nil {
		out.Cart = cart.Items
		out.CartTotal = cart.Total
	}
	return out, nil
}
