// Package queue scores resumes delivered over RabbitMQ and publishes the results.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-scorer/internal/ingestion"
	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/types"
)

// Job is the body of a scoring request message.
type Job struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Reply is the body of a result message. Exactly one of Result and Error is set.
type Reply struct {
	ID       string                `json:"id"`
	Result   *types.AnalysisResult `json:"result,omitempty"`
	Error    string                `json:"error,omitempty"`
	ScoredAt time.Time             `json:"scoredAt"`
}

// Publisher sends one message. *amqp.Channel implements it.
type Publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Config configures a Worker.
type Config struct {
	URL              string
	Queue            string
	ResultQueue      string
	Workers          int
	Prefetch         int
	MaxDocumentBytes int64
}

// Worker consumes Jobs from a durable queue, scores them and replies to the
// message's reply-to queue, or to ResultQueue when none is set.
type Worker struct {
	cfg    Config
	engine *scoring.Engine
	logger *zap.Logger

	pubMu sync.Mutex
}

// NewWorker returns a worker. A nil engine uses the built-in lexicons and a
// nil logger discards logs.
func NewWorker(cfg Config, engine *scoring.Engine, logger *zap.Logger) (*Worker, error) {
	if cfg.Queue == "" {
		return nil, errors.New("queue name is required")
	}
	if cfg.ResultQueue == "" {
		return nil, errors.New("result queue name is required")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MaxDocumentBytes <= 0 {
		cfg.MaxDocumentBytes = ingestion.DefaultMaxBytes
	}
	if engine == nil {
		engine = scoring.NewEngine()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{cfg: cfg, engine: engine, logger: logger}, nil
}

// Run connects to the broker, declares both queues and processes deliveries
// until ctx is cancelled or the connection drops.
func (w *Worker) Run(ctx context.Context) error {
	if w.cfg.URL == "" {
		return errors.New("AMQP URL is required")
	}

	conn, err := amqp.Dial(w.cfg.URL)
	if err != nil {
		return fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("error opening rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	for _, name := range []string{w.cfg.Queue, w.cfg.ResultQueue} {
		// durable, not auto-deleted, not exclusive, wait for confirmation
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", name, err)
		}
	}
	if w.cfg.Prefetch > 0 {
		if err := ch.Qos(w.cfg.Prefetch, 0, false); err != nil {
			return fmt.Errorf("failed to set prefetch: %w", err)
		}
	}

	// manual ack so a crash redelivers in-flight jobs
	deliveries, err := ch.Consume(w.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", w.cfg.Queue, err)
	}

	w.logger.Info("worker consuming",
		zap.String("queue", w.cfg.Queue),
		zap.String("result_queue", w.cfg.ResultQueue),
		zap.Int("workers", w.cfg.Workers),
	)
	return w.Process(ctx, deliveries, ch)
}

// Process handles deliveries with cfg.Workers goroutines until ctx is done
// or deliveries is closed.
func (w *Worker) Process(ctx context.Context, deliveries <-chan amqp.Delivery, pub Publisher) error {
	g, gCtx := errgroup.WithContext(ctx)
	for range w.cfg.Workers {
		g.Go(func() error {
			for {
				select {
				case <-gCtx.Done():
					return nil
				case d, ok := <-deliveries:
					if !ok {
						return nil
					}
					w.handle(d, pub)
				}
			}
		})
	}
	return g.Wait()
}

// handle scores one delivery and settles it. Undecodable or oversized jobs
// get an error reply and are acked; failed publishes are requeued.
func (w *Worker) handle(d amqp.Delivery, pub Publisher) {
	reply := w.score(d.Body)
	if reply.ID == "" {
		reply.ID = d.CorrelationId
	}

	if err := w.publish(d, reply, pub); err != nil {
		w.logger.Error("failed to publish reply", zap.String("job_id", reply.ID), zap.Error(err))
		if nackErr := d.Nack(false, true); nackErr != nil {
			w.logger.Error("failed to nack delivery", zap.Error(nackErr))
		}
		return
	}

	if err := d.Ack(false); err != nil {
		w.logger.Error("failed to ack delivery", zap.String("job_id", reply.ID), zap.Error(err))
	}
}

func (w *Worker) score(body []byte) Reply {
	var job Job
	if err := json.Unmarshal(body, &job); err != nil {
		w.logger.Warn("discarding malformed job", zap.Error(err))
		return Reply{Error: "invalid job body: " + err.Error(), ScoredAt: time.Now().UTC()}
	}
	if int64(len(job.Text)) > w.cfg.MaxDocumentBytes {
		return Reply{
			ID:       job.ID,
			Error:    fmt.Sprintf("%v (%d bytes)", ingestion.ErrTooLarge, w.cfg.MaxDocumentBytes),
			ScoredAt: time.Now().UTC(),
		}
	}

	result := w.engine.Analyze(job.Text)
	w.logger.Debug("job scored", zap.String("job_id", job.ID), zap.Int("overall_score", result.OverallScore))
	return Reply{ID: job.ID, Result: &result, ScoredAt: time.Now().UTC()}
}

func (w *Worker) publish(d amqp.Delivery, reply Reply, pub Publisher) error {
	body, err := json.Marshal(reply)
	if err != nil {
		return fmt.Errorf("failed to marshal reply: %w", err)
	}

	routingKey := d.ReplyTo
	if routingKey == "" {
		routingKey = w.cfg.ResultQueue
	}
	correlationID := d.CorrelationId
	if correlationID == "" {
		correlationID = reply.ID
	}

	w.pubMu.Lock()
	defer w.pubMu.Unlock()
	return pub.Publish("", routingKey, false, false, amqp.Publishing{
		ContentType:   "application/json",
		CorrelationId: correlationID,
		MessageId:     uuid.NewString(),
		Timestamp:     reply.ScoredAt,
		Body:          body,
	})
}
