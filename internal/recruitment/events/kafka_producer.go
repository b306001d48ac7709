package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var jsonMarshal = json.Marshal

// kafkaDial is replaced in tests.
var kafkaDial = kafka.Dial

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ProducerConfig describes where events are published.
type ProducerConfig struct {
	Brokers   []string
	Topic     string
	QueueSize int
	// DialTimeout bounds the retries spent reaching the first broker.
	DialTimeout time.Duration
}

type Producer struct {
	writer    KafkaWriter
	events    chan Event
	logger    *zap.Logger
	closeChan chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

// NewProducer makes sure the topic exists, retrying the broker connection
// with exponential backoff, and starts the send loop.
func NewProducer(cfg ProducerConfig, logger *zap.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("no kafka brokers configured")
	}
	logger = logger.Named("kafka_producer")

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = cfg.DialTimeout
	if b.MaxElapsedTime <= 0 {
		b.MaxElapsedTime = 30 * time.Second
	}
	err := backoff.RetryNotify(func() error {
		return ensureTopic(cfg.Brokers[0], cfg.Topic, logger)
	}, b, func(err error, wait time.Duration) {
		logger.Warn("kafka broker not reachable, retrying",
			zap.Error(err),
			zap.Duration("wait", wait),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reach kafka broker %s: %w", cfg.Brokers[0], err)
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Balancer: &kafka.LeastBytes{},
		Topic:    cfg.Topic,
	}
	return newProducer(writer, cfg.QueueSize, logger), nil
}

func newProducer(writer KafkaWriter, queueSize int, logger *zap.Logger) *Producer {
	if queueSize <= 0 {
		queueSize = 1000
	}
	p := &Producer{
		writer:    writer,
		events:    make(chan Event, queueSize),
		logger:    logger,
		closeChan: make(chan struct{}),
		done:      make(chan struct{}),
	}
	go p.eventLoop()
	return p
}

func ensureTopic(broker, topic string, logger *zap.Logger) error {
	conn, err := kafkaDial("tcp", broker)
	if err != nil {
		return err
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     3,
		ReplicationFactor: 1,
	})
	if err != nil {
		logger.Warn("failed to create topic (may already exist)",
			zap.Error(err),
			zap.String("topic", topic),
		)
	}
	return nil
}

// Produce enqueues the event without blocking. A full queue drops it.
func (p *Producer) Produce(event Event) {
	select {
	case p.events <- event:
	default:
		p.logger.Warn("Kafka producer queue full, dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("key", event.Key()),
		)
	}
}

func (p *Producer) eventLoop() {
	defer close(p.done)
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		case <-p.closeChan:
			p.drain()
			return
		}
	}
}

// drain flushes whatever was queued before Close.
func (p *Producer) drain() {
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		default:
			return
		}
	}
}

func (p *Producer) sendEvent(ctx context.Context, event Event) {
	value, err := jsonMarshal(event)
	if err != nil {
		p.logger.Error("Failed to serialize event",
			zap.Error(err),
			zap.String("key", event.Key()),
		)
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key()),
		Value: value,
	})
	if err != nil {
		p.logger.Error("Failed to produce event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
			zap.String("key", event.Key()),
		)
		return
	}
}

// Close stops the send loop after flushing queued events and closes the
// writer. Later calls do nothing.
func (p *Producer) Close() {
	p.closeOnce.Do(func() {
		close(p.closeChan)
		<-p.done
		if err := p.writer.Close(); err != nil {
			p.logger.Error("Failed to close Kafka writer", zap.Error(err))
		}
	})
}

type discard struct{}

func (discard) Produce(Event) {}

// Discard drops every event. Used when Kafka is disabled.
var Discard = discard{}
