package services

import "hotelfood/entity"

// Notifier receives order events after they are committed. The websocket hub implements it.
type Notifier interface {
	Publish(ev entity.OrderEvent)
}

type nopNotifier struct{}

func (nopNotifier) Publish(entity.OrderEvent) {}
