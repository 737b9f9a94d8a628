package mq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange carrying restaurant state-change events. Fanout: every
// subscriber (kitchen display, expo screen, audit tail) sees every event.
const EventsExchange = "restaurant_events"

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Dial(host string, port int, user, pass string) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%d/", user, pass, host, port)
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &Client{conn: conn, ch: ch}, nil
}

func (c *Client) Channel() *amqp.Channel { return c.ch }

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// DeclareAll sets up the events exchange, idempotently.
func (c *Client) DeclareAll() error {
	if c == nil || c.ch == nil {
		return fmt.Errorf("nil channel")
	}
	return c.ch.ExchangeDeclare(EventsExchange, "fanout", true, false, false, false, nil)
}
