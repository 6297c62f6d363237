package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/logger"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) SendNotificationEmail(ctx context.Context, to, subject, body string) error {
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>%s</h2>
				<p>%s</p>
			</body>
		</html>
	`, html.EscapeString(subject), html.EscapeString(body))

	return s.send(ctx, to, subject, body, htmlContent)
}

func (s *sendGridEmailService) SendPendingOrganizationsDigest(ctx context.Context, to string, orgs []domain.User) error {
	subject := fmt.Sprintf("%d organization(s) awaiting approval", len(orgs))

	var plain strings.Builder
	var items strings.Builder
	plain.WriteString("The following organizations are still pending approval:\n\n")
	for _, org := range orgs {
		fmt.Fprintf(&plain, "- %s (registered %s)\n", org.Email, org.CreatedAt.Format("2006-01-02"))
		fmt.Fprintf(&items, "<li><strong>%s</strong> &mdash; registered %s</li>",
			html.EscapeString(org.Email), org.CreatedAt.Format("2006-01-02"))
	}

	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Organizations Awaiting Approval</h2>
				<ul>%s</ul>
			</body>
		</html>
	`, items.String())

	return s.send(ctx, to, subject, plain.String(), htmlContent)
}

func (s *sendGridEmailService) send(ctx context.Context, to, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	start := time.Now()
	logger.ExternalServiceCall("sendgrid", "send", "to", to)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err, "duration", time.Since(start))
		return domain.WrapUpstream("failed to send email", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid status %d: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err, "duration", time.Since(start))
		return domain.WrapUpstream("email provider rejected message", err)
	}

	logger.ExternalServiceResult("sendgrid", "send", nil, "duration", time.Since(start))
	return nil
}
