package shiprate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Client quotes shipping rates through the FedEx API. OAuth tokens are
// cached until shortly before expiry.
type Client struct {
	baseURL       string
	clientID      string
	clientSecret  string
	accountNumber string
	httpClient    *http.Client
	logger        *zap.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a FedEx HTTP client
func NewClient(baseURL, clientID, clientSecret, accountNumber string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		clientID:      clientID,
		clientSecret:  clientSecret,
		accountNumber: accountNumber,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		logger:        logger,
	}
}

// RateRequest identifies the lane and parcel weight for a quote.
type RateRequest struct {
	FromZip  string  `json:"fromZip" binding:"required"`
	ToZip    string  `json:"toZip" binding:"required"`
	WeightLB float64 `json:"weightLb" binding:"required,gt=0"`
}

// RateQuote is one service-level quote.
type RateQuote struct {
	Service string  `json:"service"`
	Amount  float64 `json:"amount"`
}

// token returns a valid access token, fetching a new one when the cached
// token is missing or within 60 seconds of expiry.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("FedEx token request failed", zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fedex auth returned %d: %s", resp.StatusCode, string(body))
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("fedex auth response missing access_token")
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - 60*time.Second)
	return c.accessToken, nil
}

// GetRates quotes every available service for the lane. Weight defaults to
// one pound when unset.
func (c *Client) GetRates(ctx context.Context, req RateRequest) ([]RateQuote, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return nil, fmt.Errorf("shiprate client not configured: client id and secret required")
	}

	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	weight := req.WeightLB
	if weight <= 0 {
		weight = 1
	}

	payload := map[string]interface{}{
		"accountNumber": map[string]string{"value": c.accountNumber},
		"requestedShipment": map[string]interface{}{
			"shipper": map[string]interface{}{
				"address": map[string]interface{}{
					"postalCode":  req.FromZip,
					"countryCode": "US",
				},
			},
			"recipient": map[string]interface{}{
				"address": map[string]interface{}{
					"postalCode":  req.ToZip,
					"countryCode": "US",
				},
			},
			"pickupType":    "DROPOFF_AT_FEDEX_LOCATION",
			"rateRequestType": []string{"ACCOUNT", "LIST"},
			"requestedPackageLineItems": []map[string]interface{}{
				{
					"weight": map[string]interface{}{
						"units": "LB",
						"value": weight,
					},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rate/v1/rates/quotes", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("FedEx rate request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fedex rates returned %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed struct {
		Output struct {
			RateReplyDetails []struct {
				ServiceName        string `json:"serviceName"`
				RatedShipmentDetails []struct {
					TotalNetCharge float64 `json:"totalNetCharge"`
				} `json:"ratedShipmentDetails"`
			} `json:"rateReplyDetails"`
		} `json:"output"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, err
	}

	quotes := make([]RateQuote, 0, len(parsed.Output.RateReplyDetails))
	for _, detail := range parsed.Output.RateReplyDetails {
		if len(detail.RatedShipmentDetails) == 0 {
			continue
		}
		quotes = append(quotes, RateQuote{
			Service: detail.ServiceName,
			Amount:  detail.RatedShipmentDetails[0].TotalNetCharge,
		})
	}

	return quotes, nil
}
