package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"syncpad/internal/app"
	"syncpad/internal/model"
)

// AskWorker consumes queued AI ask tasks and drives each one through the
// streaming responder. The queue hands tasks over at-least-once; the
// responder tolerates redelivery because a completed row is never reopened.
type AskWorker struct {
	conn      *amqp.Connection
	responder *app.Responder
	queueName string
	logger    *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewAskWorker(conn *amqp.Connection, responder *app.Responder, queueName string, logger *zap.Logger) *AskWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AskWorker{
		conn:      conn,
		responder: responder,
		queueName: queueName,
		logger:    logger.Named("AskWorker"),
	}
}

func (w *AskWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare ask queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume ask queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var task model.AskTask
				if err := json.Unmarshal(d.Body, &task); err != nil {
					w.logger.Warn("decode ask task failed", zap.Error(err))
					_ = d.Nack(false, false)
					continue
				}

				if err := w.responder.Respond(workerCtx, task); err != nil {
					w.logger.Warn("respond failed",
						zap.Uint("message_id", task.MessageID),
						zap.Bool("redelivered", d.Redelivered),
						zap.Error(err),
					)
					if !d.Redelivered {
						_ = d.Nack(false, true)
						continue
					}
					// Last delivery: seal the row so it still reaches a
					// terminal state, then drop the task.
					w.responder.Fail(workerCtx, task)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *AskWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
