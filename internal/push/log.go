package push

import (
	"context"

	"givehub-backend/internal/logger"
)

// LogSender records deliveries to the log instead of a real channel; used
// when push is disabled in config (local development).
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, token string, msg Message) error {
	logger.Info("push (log only)", "title", msg.Title, "body", msg.Body)
	return nil
}

func (s *LogSender) SendMulticast(ctx context.Context, tokens []string, msg Message) ([]error, error) {
	logger.Info("push multicast (log only)", "title", msg.Title, "recipients", len(tokens))
	return make([]error, len(tokens)), nil
}
