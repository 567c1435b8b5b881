package email

import (
	"fmt"

	"github.com/resendlabs/resend-go"
)

// EmailService sends transactional mail through Resend. With no API key it
// degrades to a no-op so local development works without credentials.
type EmailService struct {
	client *resend.Client
	from   string
}

func NewEmailService(apiKey, from string) *EmailService {
	s := &EmailService{from: from}
	if apiKey != "" {
		s.client = resend.NewClient(apiKey)
	}
	return s
}

func (s *EmailService) SendWelcomeEmail(to, displayName string) error {
	if s.client == nil {
		return nil
	}

	name := displayName
	if name == "" {
		name = to
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: "Welcome to MatjibLog",
		Html: fmt.Sprintf(
			"<h2>Welcome, %s!</h2><p>Start logging the restaurants you love — and the ones you still want to try.</p>",
			name,
		),
	}

	_, err := s.client.Emails.Send(params)
	return err
}
