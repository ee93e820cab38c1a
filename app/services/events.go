package services

import (
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	EventBus "github.com/asaskevich/EventBus"
)

const (
	TopicOrderPlaced        = "order:placed"
	TopicOrderStatusChanged = "order:status_changed"
)

// OrderStatusChange is published on TopicOrderStatusChanged.
type OrderStatusChange struct {
	Order    models.Order
	Previous models.OrderStatus
}

func publish(bus EventBus.Bus, topic string, args ...interface{}) {
	if bus == nil {
		return
	}
	bus.Publish(topic, args...)
}
