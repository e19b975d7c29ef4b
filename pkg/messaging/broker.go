package messaging

import (
	"context"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Message is the envelope published for every dashboard event.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type nopBroker struct{}

// Nop returns a broker that drops everything. It stands in when
// messaging.driver is "none".
func Nop() Broker {
	return nopBroker{}
}

func (nopBroker) Publish(context.Context, string, interface{}) error { return nil }

func (nopBroker) Subscribe(ctx context.Context, _ string) (<-chan []byte, error) {
	ch := make(chan []byte)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (nopBroker) Close() error { return nil }
