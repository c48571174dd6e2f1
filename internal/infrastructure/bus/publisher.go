package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/crm/touchpoints/internal/application/onboarding"
	"github.com/crm/touchpoints/internal/domain/crm"
	"github.com/crm/touchpoints/internal/domain/shared"
	"github.com/crm/touchpoints/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultPublishTimeout = 5 * time.Second

// RedisEventPublisher publishes domain events as JSON to a Redis Pub/Sub
// channel. Delivery is fire-and-forget; subscribers that are offline at
// publish time do not receive the event.
type RedisEventPublisher struct {
	client         *redis.Client
	ownsClient     bool // true if we created the client and should close it
	channel        string
	publishTimeout time.Duration
	logger         *zap.Logger
}

// RedisEventPublisherOption is a functional option for configuring the publisher
type RedisEventPublisherOption func(*RedisEventPublisher)

// WithChannel sets the Pub/Sub channel name
func WithChannel(channel string) RedisEventPublisherOption {
	return func(p *RedisEventPublisher) {
		if channel != "" {
			p.channel = channel
		}
	}
}

// WithPublishTimeout caps how long a single publish may block
func WithPublishTimeout(timeout time.Duration) RedisEventPublisherOption {
	return func(p *RedisEventPublisher) {
		if timeout > 0 {
			p.publishTimeout = timeout
		}
	}
}

// WithLogger sets the logger for the publisher
func WithLogger(logger *zap.Logger) RedisEventPublisherOption {
	return func(p *RedisEventPublisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewRedisEventPublisher creates a publisher with its own Redis client
func NewRedisEventPublisher(cfg *config.RedisConfig, opts ...RedisEventPublisherOption) (*RedisEventPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	publisher := newRedisEventPublisher(client, true, opts...)
	return publisher, nil
}

// NewRedisEventPublisherWithClient creates a publisher with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisEventPublisherWithClient(client *redis.Client, opts ...RedisEventPublisherOption) *RedisEventPublisher {
	return newRedisEventPublisher(client, false, opts...)
}

func newRedisEventPublisher(client *redis.Client, ownsClient bool, opts ...RedisEventPublisherOption) *RedisEventPublisher {
	publisher := &RedisEventPublisher{
		client:         client,
		ownsClient:     ownsClient,
		channel:        crm.EventTypeTouchpointsCreated,
		publishTimeout: defaultPublishTimeout,
		logger:         zap.NewNop(),
	}

	for _, opt := range opts {
		opt(publisher)
	}

	return publisher
}

// Publish serializes the event to JSON and sends it to the configured channel
func (p *RedisEventPublisher) Publish(ctx context.Context, event shared.DomainEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event",
			zap.String("event_type", event.EventType()),
			zap.Error(err))
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, p.publishTimeout)
	defer cancel()

	if err := p.client.Publish(publishCtx, p.channel, data).Err(); err != nil {
		p.logger.Error("Failed to publish event",
			zap.String("event_type", event.EventType()),
			zap.String("channel", p.channel),
			zap.Error(err))
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("Published event",
		zap.String("event_type", event.EventType()),
		zap.String("channel", p.channel))

	return nil
}

// Channel returns the channel the publisher sends to
func (p *RedisEventPublisher) Channel() string {
	return p.channel
}

// Close releases the Redis client if the publisher owns it
func (p *RedisEventPublisher) Close() error {
	if p.ownsClient {
		return p.client.Close()
	}
	return nil
}

// Ensure RedisEventPublisher implements EventPublisher
var _ onboarding.EventPublisher = (*RedisEventPublisher)(nil)
