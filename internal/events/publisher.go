// Package events publishes ledger changes to RabbitMQ after they commit.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"catatuang/internal/logger"
	"catatuang/internal/models"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

type Type string

const (
	TransactionCreated Type = "transaction.created"
	TransactionUpdated Type = "transaction.updated"
	TransactionDeleted Type = "transaction.deleted"
)

// Event describes one committed ledger mutation. PreviousWalletID is set on
// updates that moved the transaction to another wallet.
type Event struct {
	ID               string                 `json:"id"`
	Type             Type                   `json:"type"`
	UserID           uint                   `json:"user_id"`
	TransactionID    uint                   `json:"transaction_id"`
	WalletID         uint                   `json:"wallet_id"`
	PreviousWalletID *uint                  `json:"previous_wallet_id,omitempty"`
	Amount           decimal.Decimal        `json:"amount"`
	TransactionType  models.TransactionType `json:"transaction_type"`
	OccurredAt       time.Time              `json:"occurred_at"`
}

// NewEvent builds an event from the transaction as it stands after the change.
func NewEvent(eventType Type, tx *models.Transaction) Event {
	return Event{
		ID:              uuid.NewString(),
		Type:            eventType,
		UserID:          tx.UserID,
		TransactionID:   tx.ID,
		WalletID:        tx.WalletID,
		Amount:          tx.Amount,
		TransactionType: tx.Type,
		OccurredAt:      time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher drops every event. Used when AMQP_URL is not configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error                        { return nil }

// AMQPPublisher publishes events to a durable topic exchange using the event
// type as routing key.
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	log      *logger.Logger
}

func NewAMQPPublisher(url, exchange string, log *logger.Logger) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		log:      log.WithComponent(logger.ComponentEvents),
	}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// amqp091 channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,         // exchange
		string(event.Type), // routing key
		false,              // mandatory
		false,              // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.ID,
			Timestamp:    event.OccurredAt,
			Type:         string(event.Type),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	p.log.DebugContext(ctx, "published ledger event",
		"event_type", event.Type,
		logger.FieldTransactionID, event.TransactionID,
		logger.FieldUserID, event.UserID)
	return nil
}

// HealthCheck reports whether the broker connection is still open.
func (p *AMQPPublisher) HealthCheck(context.Context) error {
	if p.conn == nil || p.conn.IsClosed() {
		return errors.New("amqp connection closed")
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
