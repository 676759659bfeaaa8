package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rpupo63/blog-auth-backend/config"
	"github.com/rpupo63/blog-auth-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	resendBaseURL = "https://api.resend.com"
	sendTimeout   = 15 * time.Second
)

// ErrEmailNotSent is what callers see for every delivery failure.
var ErrEmailNotSent = errors.New("email could not be sent")

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(
	`<h1>Welcome</h1>
<p>Hi {{.Username}},</p>
<p>Your account is ready. You can start writing at <a href="{{.AppURL}}" target="_blank">{{.AppURL}}</a>.</p>
<p>If you did not create this account, please ignore this email.</p>
`))

// Mailer delivers transactional email through the Resend API. A Mailer
// without an API key or sender logs and drops every message.
type Mailer struct {
	apiKey  string
	from    string
	appURL  string
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
	wg      sync.WaitGroup
}

type MailerOption func(*Mailer)

// WithBaseURL points the mailer at another Resend compatible endpoint.
func WithBaseURL(baseURL string) MailerOption {
	return func(m *Mailer) {
		m.baseURL = baseURL
	}
}

func WithHTTPClient(client *http.Client) MailerOption {
	return func(m *Mailer) {
		m.client = client
	}
}

func NewMailer(cfg config.Mail, opts ...MailerOption) *Mailer {
	m := &Mailer{
		apiKey:  cfg.APIKey,
		from:    cfg.From,
		appURL:  cfg.AppURL,
		baseURL: resendBaseURL,
		client:  &http.Client{Timeout: sendTimeout},
		logger:  log.With().Str("service", "mailer").Logger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Enabled reports whether the mailer has credentials to send with.
func (m *Mailer) Enabled() bool {
	return m.apiKey != "" && m.from != ""
}

// SendWelcomeEmail queues the welcome message for user and returns at once.
// Failures are logged, never returned.
func (m *Mailer) SendWelcomeEmail(user models.User) {
	if !m.Enabled() {
		m.logger.Debug().Str("userID", user.ID.String()).Msg("mailer disabled, skipping welcome email")
		return
	}

	var body bytes.Buffer
	err := welcomeTemplate.Execute(&body, struct {
		Username string
		AppURL   string
	}{user.Username, m.appURL})
	if err != nil {
		m.logger.Error().Err(err).Msg("render welcome email")
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := m.SendEmail(ctx, "Welcome to the blog", body.String(), []string{user.Email}); err != nil {
			m.logger.Error().Err(err).Str("userID", user.ID.String()).Msg(ErrEmailNotSent.Error())
		}
	}()
}

// Wait blocks until queued messages have been attempted.
func (m *Mailer) Wait() {
	m.wg.Wait()
}

// SendEmail sends an HTML email to recipients using the Resend API
func (m *Mailer) SendEmail(ctx context.Context, subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("%w: at least one recipient is required", ErrEmailNotSent)
	}
	if !m.Enabled() {
		return fmt.Errorf("%w: RESEND_API_KEY and RESEND_FROM_EMAIL are required", ErrEmailNotSent)
	}

	payload := ResendEmailRequest{
		From:    m.from,
		To:      recipients,
		Subject: subject,
		Html:    body,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %v", ErrEmailNotSent, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(jsonPayload))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrEmailNotSent, err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEmailNotSent, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrEmailNotSent, err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("%w: resend API error (status %d): %s", ErrEmailNotSent, resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("%w: resend API error (status %d): %s", ErrEmailNotSent, resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		m.logger.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		m.logger.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}
