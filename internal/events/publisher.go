package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventPublisher defines the interface for publishing notification events
type EventPublisher interface {
	PublishNotificationEvent(ctx context.Context, event *NotificationEvent) error
	Close() error
}

// watermillEventPublisher publishes JSON envelopes on any watermill publisher
type watermillEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

func (p *watermillEventPublisher) PublishNotificationEvent(ctx context.Context, event *NotificationEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339))

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish notification event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish notification event: %w", err)
	}

	p.logger.Info("Published notification event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topicName)

	return nil
}

func (p *watermillEventPublisher) Close() error {
	return p.publisher.Close()
}

// KafkaEventPublisher implements EventPublisher using Watermill with Kafka
type KafkaEventPublisher struct {
	watermillEventPublisher
}

// PublisherConfig holds configuration for the Kafka publisher
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

func NewKafkaEventPublisher(config PublisherConfig) (*KafkaEventPublisher, error) {
	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, watermill.NewSlogLogger(config.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &KafkaEventPublisher{watermillEventPublisher{
		publisher: publisher,
		logger:    config.Logger,
		topicName: config.TopicName,
	}}, nil
}

// ChannelEventPublisher keeps events in-process on a watermill go channel.
// Subscribe exposes the stream to local consumers.
type ChannelEventPublisher struct {
	watermillEventPublisher
	channel *gochannel.GoChannel
}

func NewChannelEventPublisher(topic string, logger *slog.Logger) *ChannelEventPublisher {
	channel := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NewSlogLogger(logger))

	return &ChannelEventPublisher{
		watermillEventPublisher: watermillEventPublisher{
			publisher: channel,
			logger:    logger,
			topicName: topic,
		},
		channel: channel,
	}
}

func (p *ChannelEventPublisher) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return p.channel.Subscribe(ctx, p.topicName)
}

// MockEventPublisher records events in memory
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []NotificationEvent
	Logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{
		Events: make([]NotificationEvent, 0),
		Logger: logger,
	}
}

func (m *MockEventPublisher) PublishNotificationEvent(ctx context.Context, event *NotificationEvent) error {
	m.mu.Lock()
	m.Events = append(m.Events, *event)
	m.mu.Unlock()

	m.Logger.Debug("Mock: Published notification event",
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

func (m *MockEventPublisher) Close() error {
	return nil
}

// GetPublishedEvents returns a snapshot of all published events
func (m *MockEventPublisher) GetPublishedEvents() []NotificationEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]NotificationEvent(nil), m.Events...)
}

// EventsOfType filters the published events by type
func (m *MockEventPublisher) EventsOfType(t EventType) []NotificationEvent {
	var out []NotificationEvent
	for _, e := range m.GetPublishedEvents() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	m.Events = make([]NotificationEvent, 0)
	m.mu.Unlock()
}
