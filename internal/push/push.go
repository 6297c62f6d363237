// Package push abstracts the token-addressed push-delivery channel.
package push

import "context"

// Message is a rendered push payload. Data carries the event's structured
// metadata (ids, type tag) without bloating the visible body.
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// Sender delivers a message to one or many device tokens. Multicast returns
// a per-token outcome; a failed token never fails the batch.
type Sender interface {
	Send(ctx context.Context, token string, msg Message) error
	SendMulticast(ctx context.Context, tokens []string, msg Message) ([]error, error)
}
