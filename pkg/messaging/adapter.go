package messaging

import (
	"context"
	"encoding/json"
	"fmt"
)

// Consume decodes every payload on channel into a Message and hands it to
// handler until ctx is done or the subscription closes. Payloads that fail to
// decode go to onError with the raw bytes; handler errors go there too and
// never stop the loop.
func Consume(ctx context.Context, broker Broker, channel string, handler func(Message) error, onError func(error)) error {
	msgChan, err := broker.Subscribe(ctx, channel)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case payload, ok := <-msgChan:
			if !ok {
				return nil
			}
			var msg Message
			if err := json.Unmarshal(payload, &msg); err != nil {
				if onError != nil {
					onError(fmt.Errorf("failed to decode message %q: %w", payload, err))
				}
				continue
			}
			if err := handler(msg); err != nil && onError != nil {
				onError(err)
			}
		}
	}
}
