// Package queue mirrors session events onto a durable RabbitMQ queue so
// out-of-process consumers (notification workers, analytics) see the same
// stream the in-process subscribers do. Delivery failures are logged and
// never interrupt the request flow.
package queue

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/tastevin-app/tastevin/internal/models"
)

// DefaultQueueName is the queue session events are mirrored onto
const DefaultQueueName = "tasting.events"

// PublisherError is a custom error type for queue publisher errors
type PublisherError string

// Error implements the error interface
func (e PublisherError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig  PublisherError = "config cannot be nil"
	ErrMissingURL PublisherError = "broker URL cannot be empty"
	ErrClosed     PublisherError = "publisher is closed"
)

// Config holds configuration for the queue publisher
type Config struct {
	// URL is the AMQP broker URL
	URL string

	// QueueName overrides the queue session events are published to;
	// empty means DefaultQueueName
	QueueName string
}

// Publisher mirrors events onto a durable queue. It implements the
// broadcast sink interface.
type Publisher struct {
	url       string
	queueName string

	mu     sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	closed bool
}

// New creates a queue publisher and declares the event queue. The queue is
// durable and messages are persistent, so events survive a broker restart.
func New(cfg *Config) (*Publisher, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.URL == "" {
		return nil, ErrMissingURL
	}

	queueName := cfg.QueueName
	if queueName == "" {
		queueName = DefaultQueueName
	}

	p := &Publisher{
		url:       cfg.URL,
		queueName: queueName,
	}

	if err := p.connect(); err != nil {
		return nil, err
	}

	return p, nil
}

// Deliver publishes an event to the queue. Errors are logged and swallowed;
// a broken channel gets one reconnect attempt before giving up on the event.
func (p *Publisher) Deliver(event *models.Event) {
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("queue publisher: marshal event failed: %v", err)
		return
	}

	if err := p.publish(body); err != nil {
		log.Printf("queue publisher: publish failed: %v; reconnecting", err)
		if err := p.reconnect(); err != nil {
			log.Printf("queue publisher: reconnect failed: %v", err)
			return
		}
		if err := p.publish(body); err != nil {
			log.Printf("queue publisher: publish failed after reconnect: %v", err)
		}
	}
}

// Close shuts the broker connection down
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}

	if _, err := ch.QueueDeclare(
		p.queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		_ = ch.Close()
		_ = conn.Close()
		return ErrClosed
	}
	p.conn = conn
	p.ch = ch
	return nil
}

func (p *Publisher) reconnect() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn = nil
	p.ch = nil
	p.mu.Unlock()

	return p.connect()
}

func (p *Publisher) publish(body []byte) error {
	p.mu.Lock()
	ch := p.ch
	closed := p.closed
	p.mu.Unlock()

	if closed {
		return ErrClosed
	}
	if ch == nil {
		return amqp.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return ch.PublishWithContext(ctx,
		"",          // default exchange
		p.queueName, // routing key = queue name
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}
