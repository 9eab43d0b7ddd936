package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/order"
)

const (
	EventOrderPlaced   = "order.placed"
	EventOrderCanceled = "order.canceled"
)

// OutboxMessage is an order lifecycle event recorded transactionally and
// published to RabbitMQ by the outbox worker.
type OutboxMessage struct {
	ID           int64
	QueueName    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}

// OrderEvent is the payload published for order lifecycle changes.
type OrderEvent struct {
	EventID    string    `json:"eventId"`
	EventType  string    `json:"eventType"`
	OrderID    int64     `json:"orderId"`
	MemberID   int64     `json:"memberId"`
	Status     string    `json:"status"`
	TotalPrice string    `json:"totalPrice"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewOrderEventMessage builds an outbox message for an order lifecycle event.
func NewOrderEventMessage(eventType, queueName string, o *order.Order) (OutboxMessage, error) {
	now := time.Now()

	payload, err := json.Marshal(OrderEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OrderID:    o.ID,
		MemberID:   o.MemberID,
		Status:     o.Status.String(),
		TotalPrice: o.TotalPrice.String(),
		OccurredAt: now,
	})
	if err != nil {
		return OutboxMessage{}, err
	}

	return OutboxMessage{
		QueueName:   queueName,
		RoutingKey:  queueName,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  5,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}, nil
}
