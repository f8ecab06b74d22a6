package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/dharshanac/ZeilCardValidatorApi/config"
	carderrors "github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/errors"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/entities"
	"github.com/dharshanac/ZeilCardValidatorApi/internal/infrastructure/metrics"
)

const (
	outcomeSent    = "sent"
	outcomeFailed  = "failed"
	outcomeDropped = "dropped"
)

const (
	queueSize = 1024

	// writeTimeout bounds one hand-off to the writer, including the
	// metadata lookup kafka-go performs before buffering
	writeTimeout = 2 * time.Second
)

// CardValidatedMessage is the wire form of entities.CardValidatedEvent
type CardValidatedMessage struct {
	TraceID          string `json:"trace_id"`
	MaskedCardNumber string `json:"masked_card_number"`
	IsValid          bool   `json:"is_valid"`
	ValidatedAt      int64  `json:"validated_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes card validation events. Callers only put messages on a
// bounded queue and a single worker owns the writer. Broker results arrive
// through the writer's completion callback.
type Producer struct {
	writer       messageWriter
	topic        string
	metrics      *metrics.Metrics
	logger       zerolog.Logger
	queue        chan kafka.Message
	writeTimeout time.Duration
	done         chan struct{}

	mu     sync.RWMutex
	closed bool

	healthy atomic.Bool
}

func NewProducer(cfg *config.KafkaConfig, m *metrics.Metrics, logger zerolog.Logger) *Producer {
	p := newProducer(cfg, m, logger)

	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.TopicCardValidated,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Completion:   p.complete,
	}
	p.start()

	logger.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.TopicCardValidated).
		Msg("Kafka producer initialized")

	return p
}

func newProducer(cfg *config.KafkaConfig, m *metrics.Metrics, logger zerolog.Logger) *Producer {
	p := &Producer{
		topic:        cfg.TopicCardValidated,
		metrics:      m,
		logger:       logger,
		queue:        make(chan kafka.Message, queueSize),
		writeTimeout: writeTimeout,
		done:         make(chan struct{}),
	}
	p.healthy.Store(true)
	return p
}

func (p *Producer) start() {
	go p.run()
}

// PublishCardValidated queues event without waiting for the broker. A full
// queue drops the event and marks the publisher unhealthy.
func (p *Producer) PublishCardValidated(_ context.Context, event entities.CardValidatedEvent) error {
	data, err := encodeEvent(event)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(event.TraceID),
		Value: data,
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return carderrors.ErrPublisherClosed
	}

	select {
	case p.queue <- msg:
		return nil
	default:
		p.drop(carderrors.ErrPublisherQueueFull, 1)
		return carderrors.ErrPublisherQueueFull
	}
}

func (p *Producer) run() {
	defer close(p.done)

	for msg := range p.queue {
		p.write(msg)
	}
}

func (p *Producer) write(msg kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.drop(fmt.Errorf("failed to enqueue message: %w", err), 1)
	}
}

func (p *Producer) drop(err error, count int) {
	p.healthy.Store(false)
	for i := 0; i < count; i++ {
		p.metrics.RecordEvent(outcomeDropped)
	}
	p.logger.Error().Err(err).
		Int("messages", count).
		Msg("Dropped card validated events")
}

func (p *Producer) complete(messages []kafka.Message, err error) {
	if err != nil {
		p.healthy.Store(false)
		for range messages {
			p.metrics.RecordEvent(outcomeFailed)
		}
		p.logger.Error().Err(err).
			Int("messages", len(messages)).
			Msg("Failed to deliver card validated events")
		return
	}

	p.healthy.Store(true)
	for range messages {
		p.metrics.RecordEvent(outcomeSent)
	}
	p.logger.Debug().
		Int("messages", len(messages)).
		Msg("Card validated events delivered")
}

// IsHealthy reports false after a dropped or failed event until the next
// successful delivery
func (p *Producer) IsHealthy() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return !p.closed && p.healthy.Load()
}

// Close stops accepting events, hands queued ones to the writer and
// flushes it
func (p *Producer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done

	if err := p.writer.Close(); err != nil {
		p.logger.Error().Err(err).Msg("Failed to close Kafka producer")
		return err
	}
	p.logger.Info().Msg("Kafka producer closed")
	return nil
}

func encodeEvent(event entities.CardValidatedEvent) ([]byte, error) {
	data, err := json.Marshal(CardValidatedMessage{
		TraceID:          event.TraceID,
		MaskedCardNumber: event.MaskedCardNumber,
		IsValid:          event.IsValid,
		ValidatedAt:      event.ValidatedAt.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}
	return data, nil
}

// NoopPublisher drops events. It is wired when EVENTS_ENABLED is false.
type NoopPublisher struct{}

func (NoopPublisher) PublishCardValidated(context.Context, entities.CardValidatedEvent) error {
	return nil
}

func (NoopPublisher) IsHealthy() bool { return true }

func (NoopPublisher) Close() error { return nil }
