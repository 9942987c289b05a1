package nats

import (
	"encoding/json"
	"fmt"

	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/nats-io/nats.go"
)

// Publisher is the subset of a NATS connection the producer needs
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Producer publishes JSON messages to NATS subjects
type Producer struct {
	conn Publisher
}

// NewProducer connects to address and returns a producer
func NewProducer(address string) (*Producer, error) {
	conn, err := nats.Connect(address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS server: %w", err)
	}
	return &Producer{conn: conn}, nil
}

// NewProducerFromConn wraps an existing connection or client
func NewProducerFromConn(conn Publisher) *Producer {
	return &Producer{conn: conn}
}

// Publish marshals message to JSON and sends it to the subject
func (p *Producer) Publish(subject string, message interface{}) error {
	msgBytes, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := p.conn.Publish(subject, msgBytes); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	logger.Debug("Published message", logger.String("subject", subject))
	return nil
}
