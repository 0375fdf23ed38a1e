package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dsb-backend-go/pkg/messagequeue"
)

// Domain event types.
const (
	EventAnalysisCompleted = "analysis.completed"
	EventAnalysisFailed    = "analysis.failed"
	EventSolutionGenerated = "solution.generated"
	EventUserRegistered    = "user.registered"
)

// Event is the message published for every domain event.
type Event struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurredAt"`
	Data       map[string]interface{} `json:"data"`
}

// EventPublisher announces domain events to other systems.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data map[string]interface{}) error
}

func newEvent(eventType string, data map[string]interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// queueEventPublisher publishes JSON events onto a message queue.
type queueEventPublisher struct {
	mq     messagequeue.MessageQueue
	queue  string
	logger *zap.Logger
}

// NewQueueEventPublisher publishes every event to queue on mq.
func NewQueueEventPublisher(mq messagequeue.MessageQueue, queue string, logger *zap.Logger) EventPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &queueEventPublisher{mq: mq, queue: queue, logger: logger}
}

func (p *queueEventPublisher) Publish(ctx context.Context, eventType string, data map[string]interface{}) error {
	body, err := json.Marshal(newEvent(eventType, data))
	if err != nil {
		return fmt.Errorf("encode event %s: %w", eventType, err)
	}
	if err := p.mq.Publish(ctx, p.queue, body); err != nil {
		return fmt.Errorf("publish event %s: %w", eventType, err)
	}
	return nil
}

// logEventPublisher only logs events. It is used when no broker is configured.
type logEventPublisher struct {
	logger *zap.Logger
}

// NewLogEventPublisher returns a publisher that writes events to the log.
func NewLogEventPublisher(logger *zap.Logger) EventPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &logEventPublisher{logger: logger}
}

func (p *logEventPublisher) Publish(_ context.Context, eventType string, data map[string]interface{}) error {
	p.logger.Info("Domain event", zap.String("type", eventType), zap.Any("data", data))
	return nil
}

// publishEvent never fails the caller; a lost event is logged.
func publishEvent(ctx context.Context, events EventPublisher, logger *zap.Logger, eventType string, data map[string]interface{}) {
	if events == nil {
		return
	}
	if err := events.Publish(context.WithoutCancel(ctx), eventType, data); err != nil {
		logger.Warn("Failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}
