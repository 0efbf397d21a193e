package entity

import "fmt"

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPreparing OrderStatus = "Preparing"
	StatusReady     OrderStatus = "Ready"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

// AllStatuses is the fixed status enumeration in display order.
var AllStatuses = []OrderStatus{
	StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled,
}

// kitchen may only move an order one step along this chain
var kitchenTransitions = map[OrderStatus]OrderStatus{
	StatusPending:   StatusPreparing,
	StatusPreparing: StatusReady,
}

func (s OrderStatus) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether the kitchen board should hide the order.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// KitchenNext returns the status the kitchen advance moves s to, or false when s has no
// kitchen transition.
func (s OrderStatus) KitchenNext() (OrderStatus, bool) {
	next, ok := kitchenTransitions[s]
	return next, ok
}

func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid order status %q", raw)
	}
	return s, nil
}

// TerminalStatuses lists the statuses excluded from the kitchen board.
func TerminalStatuses() []OrderStatus {
	return []OrderStatus{StatusDelivered, StatusCancelled}
}

// OrderEvent is pushed to the live kitchen/admin feed.
type OrderEvent struct {
	Type    string      `json:"type"`
	OrderID uint        `json:"orderId"`
	Status  OrderStatus `json:"status"`
	Total   string      `json:"total,omitempty"`
	TableNo *int        `json:"tableNo,omitempty"`
}

const (
	EventOrderPlaced   = "order_placed"
	EventStatusChanged = "status_changed"
)
