package nsq

import (
	"encoding/json"
	"fmt"

	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/nsqio/go-nsq"
)

// Publisher is the subset of an nsq.Producer the wrapper needs
type Publisher interface {
	Publish(topic string, body []byte) error
	Stop()
}

// Producer handles publishing messages to NSQ topics
type Producer struct {
	producer Publisher
}

// NewProducer creates a new NSQ producer
func NewProducer(address string) (*Producer, error) {
	config := nsq.NewConfig()
	producer, err := nsq.NewProducer(address, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ producer: %w", err)
	}

	if err := producer.Ping(); err != nil {
		producer.Stop()
		return nil, fmt.Errorf("failed to ping NSQ daemon: %w", err)
	}

	return &Producer{producer: producer}, nil
}

// NewProducerFrom wraps an existing publisher
func NewProducerFrom(p Publisher) *Producer {
	return &Producer{producer: p}
}

// Publish sends a message to the specified topic
func (p *Producer) Publish(topic string, message interface{}) error {
	msgBytes, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := p.producer.Publish(topic, msgBytes); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	logger.Debug("Published message", logger.String("topic", topic))
	return nil
}

// Stop gracefully stops the producer
func (p *Producer) Stop() {
	p.producer.Stop()
}
