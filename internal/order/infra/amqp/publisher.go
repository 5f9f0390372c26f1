package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dwikikusuma/rajah-storefront/internal/order/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

const EventOrderPlaced = "order.placed"

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends order events to a durable queue on the default exchange.
type Publisher struct {
	conn  *amqp.Connection
	ch    channel
	queue string
}

// Dial connects to RabbitMQ and declares the queue.
func Dial(uri, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}
	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare %s queue: %w", queue, err)
	}

	p := newPublisher(ch, q.Name)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, queue string) *Publisher {
	return &Publisher{ch: ch, queue: queue}
}

func (p *Publisher) Publish(ctx context.Context, event domain.Placed) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         EventOrderPlaced,
		MessageId:    event.OrderID,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

func (p *Publisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// LogPublisher records events in the log when no broker is configured.
type LogPublisher struct {
	log *slog.Logger
}

func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, event domain.Placed) error {
	p.log.InfoContext(ctx, EventOrderPlaced,
		slog.String("order_number", event.Number),
		slog.String("user_id", event.UserID),
		slog.Int("item_count", event.ItemCount),
		slog.Float64("total", event.Total),
	)
	return nil
}
