package push

import (
	"context"

	"firebase.google.com/go/v4/messaging"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/logger"
)

// FCMSender delivers through Firebase Cloud Messaging.
type FCMSender struct {
	client *messaging.Client
}

func NewFCMSender(client *messaging.Client) *FCMSender {
	return &FCMSender{client: client}
}

func (s *FCMSender) Send(ctx context.Context, token string, msg Message) error {
	logger.ExternalServiceCall("fcm", "Send", "title", msg.Title)
	_, err := s.client.Send(ctx, &messaging.Message{
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data:  msg.Data,
		Token: token,
	})
	logger.ExternalServiceResult("fcm", "Send", err)
	if err != nil {
		return domain.WrapUpstream("push delivery failed", err)
	}
	return nil
}

func (s *FCMSender) SendMulticast(ctx context.Context, tokens []string, msg Message) ([]error, error) {
	logger.ExternalServiceCall("fcm", "SendMulticast", "title", msg.Title, "tokens", len(tokens))
	resp, err := s.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data:   msg.Data,
		Tokens: tokens,
	})
	logger.ExternalServiceResult("fcm", "SendMulticast", err)
	if err != nil {
		return nil, domain.WrapUpstream("multicast push delivery failed", err)
	}

	outcomes := make([]error, len(tokens))
	for i, r := range resp.Responses {
		if !r.Success {
			outcomes[i] = domain.WrapUpstream("push delivery failed", r.Error)
		}
	}
	return outcomes, nil
}
