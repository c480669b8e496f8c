package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/docfolio/backend/internal/apperror"
	"github.com/docfolio/backend/internal/config"
)

// BrevoMailer sends transactional email through a Brevo-compatible HTTP API.
// Transient failures (network, 5xx, 429) are retried with exponential
// backoff; 4xx responses are not retried.
type BrevoMailer struct {
	baseURL     string
	apiKey      string
	senderEmail string
	senderName  string
	client      *http.Client
}

var _ Mailer = (*BrevoMailer)(nil)

func NewBrevoMailer(cfg *config.MailConfig) *BrevoMailer {
	return &BrevoMailer{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		senderEmail: cfg.SenderEmail,
		senderName:  cfg.SenderName,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type brevoAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoRequest struct {
	Sender      brevoAddress      `json:"sender"`
	To          []brevoAddress    `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
	Params      map[string]string `json:"params,omitempty"`
}

func (b *BrevoMailer) Send(ctx context.Context, m Message) error {
	if len(m.To) == 0 {
		return apperror.Validation("email message has no recipients")
	}
	to := make([]brevoAddress, 0, len(m.To))
	for _, addr := range m.To {
		to = append(to, brevoAddress{Email: addr})
	}
	body, err := json.Marshal(brevoRequest{
		Sender:      brevoAddress{Email: b.senderEmail, Name: b.senderName},
		To:          to,
		Subject:     m.Subject,
		HTMLContent: m.HTML,
		Params:      m.Params,
	})
	if err != nil {
		return err
	}

	backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/v3/smtp/email", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("api-key", b.apiKey)

		resp, err := b.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)

		switch {
		case resp.StatusCode < 300:
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return retry.RetryableError(fmt.Errorf("mail provider returned %d", resp.StatusCode))
		default:
			return fmt.Errorf("mail provider returned %d", resp.StatusCode)
		}
	})
	if err != nil {
		return apperror.Unavailable(fmt.Sprintf("could not send email to %v", m.To), err)
	}
	return nil
}
