package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"cleanslate/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ChangesChannel is the Redis channel subscribers listen on for change events.
const ChangesChannel = "cleanslate:changes"

// Publisher announces entity changes so clients can re-fetch.
type Publisher interface {
	Publish(ctx context.Context, event models.ChangeEvent) error
}

// NewEvent stamps a change event with the current time.
func NewEvent(eventType, entity, entityID string, data map[string]string) models.ChangeEvent {
	return models.ChangeEvent{
		Type:     eventType,
		Entity:   entity,
		EntityID: entityID,
		Data:     data,
		At:       time.Now().UTC(),
	}
}

// RedisPublisher publishes JSON encoded events on a Redis pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

func NewRedisPublisher(client *redis.Client, logger *zap.Logger) (*RedisPublisher, error) {
	if client == nil {
		return nil, fmt.Errorf("notification publisher initialization error: redis client is nil")
	}
	return &RedisPublisher{client: client, channel: ChangesChannel, logger: logger}, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, event models.ChangeEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("Publish: failed to encode event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, b).Err(); err != nil {
		return fmt.Errorf("Publish: failed to publish %s: %w", event.Type, err)
	}
	p.logger.Debug("change event published",
		zap.String("type", event.Type),
		zap.String("entityId", event.EntityID))
	return nil
}

// LogPublisher only logs events; used when Redis is disabled.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, event models.ChangeEvent) error {
	p.logger.Info("change event",
		zap.String("type", event.Type),
		zap.String("entity", event.Entity),
		zap.String("entityId", event.EntityID))
	return nil
}

// RecordingPublisher keeps every event in memory. Handy in tests.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []models.ChangeEvent
}

func (p *RecordingPublisher) Publish(_ context.Context, event models.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns a snapshot of everything published so far.
func (p *RecordingPublisher) Events() []models.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.ChangeEvent(nil), p.events...)
}

// Types returns just the event types, in publish order.
func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}
