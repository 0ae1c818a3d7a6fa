package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const resendBaseURL = "https://api.resend.com"

// Client sends transactional email through the Resend API.
type Client struct {
	baseURL     string
	apiKey      string
	fromAddress string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a Resend HTTP client
func NewClient(apiKey, fromAddress string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:     resendBaseURL,
		apiKey:      apiKey,
		fromAddress: fromAddress,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		logger:      logger,
	}
}

// SendRequest is one outbound email. To accepts a single address or a list;
// a single address is normalized to a one-element list on the wire.
type SendRequest struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// SendResult carries the provider's message id.
type SendResult struct {
	ID string `json:"id"`
}

// Send posts the email and returns the provider response body verbatim.
func (c *Client) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("mailer not configured: API key required")
	}
	if len(req.To) == 0 {
		return nil, fmt.Errorf("at least one recipient required")
	}

	payload := map[string]interface{}{
		"from":    c.fromAddress,
		"to":      req.To,
		"subject": req.Subject,
	}
	if req.HTML != "" {
		payload["html"] = req.HTML
	}
	if req.Text != "" {
		payload["text"] = req.Text
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("Email send request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("resend returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result SendResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, err
	}

	c.logger.Info("Email sent", zap.String("message_id", result.ID), zap.Strings("to", req.To))
	return &result, nil
}
