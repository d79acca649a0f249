package events

import (
	"context"
	"time"

	"github.com/AgentTarik/gosat-api/telemetry"

	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, key string, v any) error
}

type SchemaValidator interface {
	Validate(doc any) error
}

// LogPublisher only logs events. It is used when kafka is not configured.
type LogPublisher struct {
	Log *zap.Logger
}

func (p LogPublisher) Publish(_ context.Context, key string, v any) error {
	if e, ok := v.(Event); ok {
		p.Log.Info("event (kafka disabled)",
			zap.String("type", string(e.Type)),
			zap.String("event_id", e.ID.String()),
			zap.Int64("loan_request_id", e.LoanRequest.ID),
		)
	}
	return nil
}

type Worker struct {
	log     *zap.Logger
	pub     Publisher
	schema  SchemaValidator
	ch      chan Event
	timeout time.Duration
}

func NewWorker(log *zap.Logger, pub Publisher, schema SchemaValidator, queueSize int) *Worker {
	return &Worker{
		log:     log,
		pub:     pub,
		schema:  schema,
		ch:      make(chan Event, queueSize),
		timeout: 5 * time.Second,
	}
}

// Enqueue never blocks; it reports false when the event was dropped.
func (w *Worker) Enqueue(e Event) bool {
	select {
	case w.ch <- e:
		telemetry.SetEventsQueueCurrent(len(w.ch))
		return true
	default:
		telemetry.IncEventsDropped()
		w.log.Warn("event queue full; dropping event",
			zap.String("type", string(e.Type)),
			zap.String("event_id", e.ID.String()),
		)
		return false
	}
}

// Run publishes queued events until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	w.log.Info("event worker started")
	for {
		select {
		case <-ctx.Done():
			w.log.Info("event worker stopped", zap.Int("pending", len(w.ch)))
			return
		case e := <-w.ch:
			telemetry.SetEventsQueueCurrent(len(w.ch))
			w.handle(ctx, e)
		}
	}
}

func (w *Worker) handle(ctx context.Context, e Event) {
	if w.schema != nil {
		if err := w.schema.Validate(e); err != nil {
			telemetry.IncEventsFailed("schema")
			w.log.Error("event failed schema validation", zap.String("event_id", e.ID.String()), zap.Error(err))
			return
		}
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	if err := w.pub.Publish(ctx, e.Key(), e); err != nil {
		telemetry.IncEventsFailed("kafka")
		w.log.Error("failed to publish event", zap.String("event_id", e.ID.String()), zap.Error(err))
		return
	}
	telemetry.IncEventsPublished()
	w.log.Debug("event published", zap.String("type", string(e.Type)), zap.String("event_id", e.ID.String()))
}
