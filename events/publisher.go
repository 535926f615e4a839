package events

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/streadway/amqp"
)

const exchangeName = "orders"

// Publisher pushes domain events to interested consumers. Order handlers
// publish fire-and-forget; a broken broker never fails a request.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

type RabbitPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisherFromEnv connects to AMQP_URL, or returns a no-op publisher
// when the variable is unset.
func NewPublisherFromEnv() Publisher {
	url := os.Getenv("AMQP_URL")
	if url == "" {
		return NoopPublisher{}
	}
	pub, err := NewRabbitPublisher(url)
	if err != nil {
		log.Printf("⚠️ RabbitMQ unavailable, events disabled: %v", err)
		return NoopPublisher{}
	}
	return pub
}

func NewRabbitPublisher(url string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &RabbitPublisher{conn: conn, channel: ch}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.channel.Publish(exchangeName, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (p *RabbitPublisher) Close() error {
	p.channel.Close()
	return p.conn.Close()
}

// NoopPublisher drops every event. Used when no broker is configured and in
// tests.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, routingKey string, payload any) error { return nil }
func (NoopPublisher) Close() error                                                      { return nil }
