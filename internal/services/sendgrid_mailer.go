package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"
)

// SendGridMailer sends the two contact-flow messages through the SendGrid
// v3 REST API.
type SendGridMailer struct {
	APIKey        string
	FromEmail     string
	OperatorEmail string
	HTTPClient    *http.Client
	Endpoint      string
}

func NewSendGridMailer(apiKey, fromEmail, operatorEmail string) *SendGridMailer {
	return &SendGridMailer{
		APIKey:        strings.TrimSpace(apiKey),
		FromEmail:     strings.TrimSpace(fromEmail),
		OperatorEmail: strings.TrimSpace(operatorEmail),
		Endpoint:      "https://api.sendgrid.com/v3/mail/send",
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type sendGridEmailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridPersonalization struct {
	To      []sendGridEmailAddress `json:"to"`
	Subject string                 `json:"subject"`
}

type sendGridMailSendRequest struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridEmailAddress      `json:"from"`
	ReplyTo          *sendGridEmailAddress     `json:"reply_to,omitempty"`
	Content          []sendGridContent         `json:"content"`
}

// SendWelcomeEmail is the auto-reply to a contact-form submitter.
func (m *SendGridMailer) SendWelcomeEmail(ctx context.Context, email, fullName string) error {
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
	<p>Hello! %s,</p>
	<p>Thank you for reaching out!</p>
	<p>We are currently in the middle of our busy season so our reply may be delayed up to three days. We
	appreciate your patience while we look into this for you!</p>
	<p>Thank you,</p>
	<p>Blaze team</p>
</body>
</html>`, html.EscapeString(fullName))

	return m.send(ctx, sendGridMailSendRequest{
		Personalizations: []sendGridPersonalization{
			{
				To:      []sendGridEmailAddress{{Email: strings.TrimSpace(email)}},
				Subject: "Thanks for your email.",
			},
		},
		From: sendGridEmailAddress{
			Email: m.FromEmail,
			Name:  "Blaze",
		},
		Content: []sendGridContent{
			{Type: "text/html", Value: body},
		},
	})
}

// SendOperatorEmail forwards the submission to the site operator, with the
// submitter as reply-to.
func (m *SendGridMailer) SendOperatorEmail(ctx context.Context, fullName, contactNumber, email, serviceType, message string) error {
	subject := strings.TrimSpace(serviceType)
	if subject == "" {
		subject = "Contact form submission"
	}

	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
	<p>Full name: %s</p>
	<p>Service Type: %s</p>
	<p>Email: %s</p>
	<p>Contact number: %s</p>
	<p>Message: %s</p>
</body>
</html>`,
		html.EscapeString(fullName),
		html.EscapeString(serviceType),
		html.EscapeString(email),
		html.EscapeString(contactNumber),
		html.EscapeString(message),
	)

	return m.send(ctx, sendGridMailSendRequest{
		Personalizations: []sendGridPersonalization{
			{
				To:      []sendGridEmailAddress{{Email: m.OperatorEmail}},
				Subject: subject,
			},
		},
		From: sendGridEmailAddress{
			Email: m.FromEmail,
			Name:  "Blaze Contact Form",
		},
		ReplyTo: &sendGridEmailAddress{
			Email: strings.TrimSpace(email),
			Name:  strings.TrimSpace(fullName),
		},
		Content: []sendGridContent{
			{Type: "text/html", Value: body},
		},
	})
}

func (m *SendGridMailer) send(ctx context.Context, reqBody sendGridMailSendRequest) error {
	if m == nil {
		return fmt.Errorf("sendgrid mailer not configured")
	}
	if m.APIKey == "" {
		return fmt.Errorf("missing SENDGRID_API_KEY")
	}
	if m.FromEmail == "" {
		return fmt.Errorf("missing CONTACT_FROM_EMAIL")
	}
	if m.OperatorEmail == "" {
		return fmt.Errorf("missing CONTACT_OPERATOR_EMAIL")
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.Endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := m.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// SendGrid returns 202 Accepted on success.
	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("sendgrid mail send http %d", resp.StatusCode)
	}
	return nil
}
