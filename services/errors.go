package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrItemUnavailable    = errors.New("menu item is not available")
	ErrConflict           = errors.New("invalid_or_conflict")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidAction      = errors.New("invalid cart action")
	ErrInvalidPrice       = errors.New("price must be a number >= 0")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("missing cart session")
)

// notFound turns gorm's miss into ErrNotFound and leaves other errors alone.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

// IsValidation reports errors that map to 400.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidAction) ||
		errors.Is(err, ErrEmptyCart)
}
