// services/order_transitions.go
package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hotelfood/entity"
)

const (
	sourceKitchen = "kitchen"
	sourceAdmin   = "admin"
)

// ----- Kitchen actions -----

// KitchenAdvance moves the order one step along Pending -> Preparing -> Ready.
// Any other status is left alone and reported back unchanged.
func (s *OrderService) KitchenAdvance(ctx context.Context, orderID uint) (entity.OrderStatus, error) {
	var (
		to      entity.OrderStatus
		changed bool
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrder(tx, orderID)
		if err != nil {
			return notFound(err, "order")
		}

		next, ok := o.Status.KitchenNext()
		if !ok {
			to = o.Status
			return nil
		}

		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, next)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict
		}
		to, changed = next, true
		return nil
	})
	if err != nil {
		return "", err
	}
	if changed {
		s.statusChanged(orderID, to, sourceKitchen)
	}
	return to, nil
}

// ----- Admin actions -----

// AdminSetStatus sets any status in the enumeration, whatever the current one is.
func (s *OrderService) AdminSetStatus(ctx context.Context, orderID uint, raw string) (entity.OrderStatus, error) {
	to, err := entity.ParseOrderStatus(raw)
	if err != nil {
		return "", fmt.Errorf("%q: %w", raw, ErrInvalidStatus)
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.SetStatus(tx, orderID, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			var n int64
			if err := tx.Model(&entity.Order{}).Where("id = ?", orderID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("order: %w", ErrNotFound)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	s.statusChanged(orderID, to, sourceAdmin)
	return to, nil
}

func (s *OrderService) statusChanged(orderID uint, to entity.OrderStatus, source string) {
	s.Metrics.StatusChanged(string(to), source)
	s.Log.WithFields(logrus.Fields{
		"order_id": orderID,
		"status":   to,
		"source":   source,
	}).Info("order status changed")
	s.Notifier.Publish(entity.OrderEvent{
		Type:    entity.EventStatusChanged,
		OrderID: orderID,
		Status:  to,
	})
}
