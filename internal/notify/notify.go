package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant-ops/internal/common/logger"
	"restaurant-ops/internal/common/mq"
	"restaurant-ops/internal/domain"
)

// Event is the wire form of a restaurant state change.
type Event struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"` // order_status | restock_requested
	OrderID    int       `json:"order_id,omitempty"`
	TableNum   int       `json:"table_num,omitempty"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to,omitempty"`
	Ingredient string    `json:"ingredient,omitempty"`
	Quantity   int       `json:"quantity,omitempty"`
	Threshold  int       `json:"threshold,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher fans restaurant events out over RabbitMQ. Publishing is
// fire-and-forget: failures are logged and swallowed, an operation never
// fails because a subscriber is down.
type Publisher struct {
	client *mq.Client
	log    *logger.Logger
}

func NewPublisher(client *mq.Client, log *logger.Logger) *Publisher {
	return &Publisher{client: client, log: log}
}

func (p *Publisher) OrderStatus(order *domain.Order, from, to string) {
	p.publish(Event{
		Kind:     "order_status",
		OrderID:  order.ID,
		TableNum: order.TableNum,
		From:     from,
		To:       to,
	})
}

// Request publishes a restock request event. Satisfies the kitchen's
// request sink so the ledger can raise events directly.
func (p *Publisher) Request(ingredient string, quantity, threshold int) error {
	p.publish(Event{
		Kind:       "restock_requested",
		Ingredient: ingredient,
		Quantity:   quantity,
		Threshold:  threshold,
	})
	return nil
}

func (p *Publisher) publish(ev Event) {
	ev.ID = uuid.NewString()
	ev.Timestamp = time.Now().UTC()
	body, err := json.Marshal(ev)
	if err != nil {
		p.log.Error("event_marshal_failed", err, map[string]any{"kind": ev.Kind})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = p.client.Channel().PublishWithContext(ctx, mq.EventsExchange, "", false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    ev.ID,
		Timestamp:    ev.Timestamp,
		Body:         body,
	})
	if err != nil {
		p.log.Error("event_publish_failed", err, map[string]any{"kind": ev.Kind})
	}
}

// Nop discards events, the default when no broker is configured.
type Nop struct{}

func (Nop) OrderStatus(order *domain.Order, from, to string) {}
func (Nop) Request(ingredient string, quantity, threshold int) error { return nil }
