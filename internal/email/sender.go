// Package email delivers the verification code to freshly registered
// accounts.
package email

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// Sender delivers a verification code out of band. Implementations report
// delivery failure through the returned error; they never retry.
type Sender interface {
	SendVerification(ctx context.Context, to, username, code string) error
}

type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) SendVerification(ctx context.Context, to, username, code string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: "Mystery Message | Verification Code",
		Html: fmt.Sprintf(
			"<p>Hello %s,</p><p>Your verification code is <strong>%s</strong>. It expires in one hour.</p>",
			username, code,
		),
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		log.Printf("Error sending verification email to %s: %v", to, err)
		return err
	}

	log.Printf("Verification email sent to %s (id: %s)", to, sent.Id)
	return nil
}
