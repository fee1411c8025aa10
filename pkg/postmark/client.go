// Package postmark provides a client for the Postmark transactional email
// API.
package postmark

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the email operations used by the notification dispatcher.
type Client interface {
	// SendEmail delivers a single composed message.
	SendEmail(ctx context.Context, req EmailRequest) (*EmailResponse, error)
}

// Attachment is a base64-encoded file attached to an outgoing message.
type Attachment struct {
	Name        string `json:"Name"`
	Content     string `json:"Content"`
	ContentType string `json:"ContentType"`
}

// EmailRequest is the outgoing message payload.
type EmailRequest struct {
	From        string       `json:"From"`
	To          string       `json:"To"`
	Cc          string       `json:"Cc,omitempty"`
	Subject     string       `json:"Subject"`
	HtmlBody    string       `json:"HtmlBody,omitempty"`
	TextBody    string       `json:"TextBody,omitempty"`
	Attachments []Attachment `json:"Attachments,omitempty"`
}

// EmailResponse is the parsed Postmark API response.
type EmailResponse struct {
	MessageID   string `json:"MessageID"`
	ErrorCode   int    `json:"ErrorCode"`
	Message     string `json:"Message"`
	SubmittedAt string `json:"SubmittedAt"`
}

// Option configures the Postmark client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	serverToken string
	baseURL     string
	http        *http.Client
}

// NewClient creates a new Postmark client.
func NewClient(serverToken string, opts ...Option) Client {
	c := &httpClient{
		serverToken: serverToken,
		baseURL:     "https://api.postmarkapp.com",
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryableStatusCode returns true if the HTTP status code should trigger a retry.
func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

func (c *httpClient) SendEmail(ctx context.Context, req EmailRequest) (*EmailResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "postmark: marshal request")
	}

	const maxAttempts = 3
	backoff := 1 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/email", bytes.NewReader(payload))
		if err != nil {
			return nil, eris.Wrap(err, "postmark: create request")
		}
		httpReq.Header.Set("Accept", "application/json")
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("X-Postmark-Server-Token", c.serverToken)

		resp, err := c.http.Do(httpReq)
		if err != nil {
			lastErr = eris.Wrap(err, "postmark: request failed")
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, lastErr
		}

		var out EmailResponse
		decodeErr := json.NewDecoder(resp.Body).Decode(&out)
		_ = resp.Body.Close()

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts {
			lastErr = eris.Errorf("postmark: status %d", resp.StatusCode)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		if resp.StatusCode != http.StatusOK {
			return nil, eris.Errorf("postmark: unexpected status %d (error code %d: %s)", resp.StatusCode, out.ErrorCode, out.Message)
		}
		if decodeErr != nil {
			return nil, eris.Wrap(decodeErr, "postmark: decode response")
		}
		if out.ErrorCode != 0 {
			return nil, eris.Errorf("postmark: API error %d: %s", out.ErrorCode, out.Message)
		}
		return &out, nil
	}

	return nil, lastErr
}
