package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"syncpad/internal/model"
)

// AskPublisher enqueues AI response tasks. Publishing is fire-and-forget
// from the caller's point of view: the durable queue plus persistent
// delivery gives at-least-once handoff to the worker.
type AskPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewAskPublisher(conn *amqp.Connection, queueName string) *AskPublisher {
	return &AskPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *AskPublisher) Publish(ctx context.Context, task model.AskTask) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare ask queue failed: %w", err)
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal ask task failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish ask task failed: %w", err)
	}
	return nil
}
