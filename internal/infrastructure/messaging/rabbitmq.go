package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	port "github.com/marcos-nsantos/imgpipe/internal/adapter/messaging"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/config"
)

const publishTimeout = 5 * time.Second

// RabbitMQPublisher publishes image events to a topic exchange, routed by event type.
type RabbitMQPublisher struct {
	conn     *amqp.Connection
	mu       sync.Mutex
	channel  *amqp.Channel
	exchange string
}

func NewRabbitMQPublisher(cfg config.RabbitMQConfig) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connecting to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declaring exchange %s: %w", cfg.Exchange, err)
	}

	return &RabbitMQPublisher{
		conn:     conn,
		channel:  ch,
		exchange: cfg.Exchange,
	}, nil
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, event port.ImageEvent) error {
	msg, err := newMessage(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey(event), false, false, msg)
	if err != nil {
		return fmt.Errorf("publishing %s: %w", event.Type, err)
	}
	return nil
}

// routingKey is the event type, so consumers bind with patterns like "image.*".
func routingKey(event port.ImageEvent) string {
	return event.Type
}

func newMessage(event port.ImageEvent) (amqp.Publishing, error) {
	if event.Type == "" {
		return amqp.Publishing{}, errors.New("event type is required")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("serializing event: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
		Body:         body,
	}, nil
}

func (p *RabbitMQPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return fmt.Errorf("closing channel: %w", err)
	}
	return p.conn.Close()
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, port.ImageEvent) error {
	return nil
}
