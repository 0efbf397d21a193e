package entity

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

var ErrUnknownCartAction = errors.New("unknown cart action")

type CartAction string

const (
	CartIncrement CartAction = "increment"
	CartDecrement CartAction = "decrement"
	CartRemove    CartAction = "remove"
)

// CartEntry is a snapshot of a menu item taken when it was first added.
type CartEntry struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

func (e CartEntry) LineTotal() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Cart lives in the session cart store, never in the database.
// Every entry present has Quantity >= 1.
type Cart struct {
	Items map[uint]*CartEntry `json:"items"`
}

func NewCart() *Cart {
	return &Cart{Items: make(map[uint]*CartEntry)}
}

// Add bumps the quantity of an entry already in the cart, otherwise inserts a new entry
// priced from item.
func (c *Cart) Add(item *MenuItem) *CartEntry {
	if c.Items == nil {
		c.Items = make(map[uint]*CartEntry)
	}
	if e, ok := c.Items[item.ID]; ok {
		e.Quantity++
		return e
	}
	e := &CartEntry{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Image:    item.Image,
		Quantity: 1,
	}
	c.Items[item.ID] = e
	return e
}

// Apply runs an update action on one entry. Items missing from the cart are ignored.
func (c *Cart) Apply(id uint, action CartAction) error {
	switch action {
	case CartIncrement, CartDecrement, CartRemove:
	default:
		return ErrUnknownCartAction
	}

	e, ok := c.Items[id]
	if !ok {
		return nil
	}
	switch action {
	case CartIncrement:
		e.Quantity++
	case CartDecrement:
		e.Quantity--
		if e.Quantity <= 0 {
			delete(c.Items, id)
		}
	case CartRemove:
		delete(c.Items, id)
	}
	return nil
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.Items {
		total = total.Add(e.LineTotal())
	}
	return total
}

func (c *Cart) Clear() {
	c.Items = make(map[uint]*CartEntry)
}

func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

// Entries returns a copy of the entries ordered by menu item id.
func (c *Cart) Entries() []CartEntry {
	out := make([]CartEntry, 0, len(c.Items))
	for _, e := range c.Items {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
