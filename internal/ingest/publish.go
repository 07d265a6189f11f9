// Package ingest loads profile data into sessions through an AMQP
// worker pool and publishes session status updates.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/careerpilot/careerpilot/internal/domain"
	"github.com/streadway/amqp"
)

const (
	// IngestQueue carries pending profile-load jobs.
	IngestQueue = "profile_ingest"
	// UpdatesExchange receives per-session status updates with routing
	// key session.<id>.
	UpdatesExchange = "session_updates"
)

// Publisher enqueues ingest jobs and emits session updates over a
// shared AMQP connection.
type Publisher struct {
	conn *amqp.Connection
}

func NewPublisher(conn *amqp.Connection) *Publisher {
	return &Publisher{conn: conn}
}

func (p *Publisher) EnqueueIngest(ctx context.Context, job domain.IngestJob) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(
		IngestQueue,
		true,  // durable
		false, // auto-delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	return ch.Publish(
		"", // default exchange
		IngestQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// PublishSessionUpdate notifies listeners (the UI layer) about a
// session's ingestion progress.
func (p *Publisher) PublishSessionUpdate(sessionID string, update map[string]any) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(
		UpdatesExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // arguments
	); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	body, _ := json.Marshal(update)
	routingKey := fmt.Sprintf("session.%s", sessionID)

	return ch.Publish(
		UpdatesExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
