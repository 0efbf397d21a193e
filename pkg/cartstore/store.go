// Package cartstore keeps customer carts keyed by session id.
//
// Every Store serializes read-modify-write per session: two Update calls for the same
// session never interleave, so concurrent add-to-cart clicks are not lost. Different
// sessions never block each other.
package cartstore

import (
	"context"
	"errors"

	"hotelfood/entity"
)

var (
	ErrNoSession = errors.New("cartstore: empty session id")
	ErrConflict  = errors.New("cartstore: too many concurrent updates")
)

type Store interface {
	// Get returns the session cart, or an empty cart when none exists.
	Get(ctx context.Context, sessionID string) (*entity.Cart, error)
	// Update loads the cart, runs fn on it and saves the result. When fn returns an
	// error nothing is written and the error is returned as is.
	Update(ctx context.Context, sessionID string, fn func(*entity.Cart) error) (*entity.Cart, error)
	// Reset stores an empty cart for the session.
	Reset(ctx context.Context, sessionID string) error
	Delete(ctx context.Context, sessionID string) error
}

func cloneCart(c *entity.Cart) *entity.Cart {
	out := entity.NewCart()
	if c == nil {
		return out
	}
	for id, e := range c.Items {
		cp := *e
		out.Items[id] = &cp
	}
	return out
}
