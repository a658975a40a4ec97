package payhero

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fulizaboost/boost-service/internal/config"
)

// PaymentsURL is the fixed PayHero STK push endpoint.
const PaymentsURL = "https://backend.payhero.co.ke/api/v2/payments"

const requestTimeout = 30 * time.Second

// APIError carries a PayHero client-error response through to the caller,
// status code and raw body intact.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("payhero: upstream status %d: %s", e.Status, e.Body)
}

// InitiateRequest describes one STK push to collect a boost fee.
type InitiateRequest struct {
	Amount       decimal.Decimal
	Phone        string
	CustomerName string
	Reference    string
}

type Client struct {
	cfg        *config.Config
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg:     cfg,
		baseURL: PaymentsURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// NewClientWithURL points the client at an alternative endpoint. Used by tests.
func NewClientWithURL(cfg *config.Config, baseURL string) *Client {
	c := NewClient(cfg)
	c.baseURL = baseURL
	return c
}

// Initiate posts the payment request to PayHero and returns the raw response
// body on any 2xx. A 4xx comes back as *APIError; everything else (bad
// channel id, network failure, 5xx) is a generic wrapped error. The channel
// id is parsed here, not at startup, so a misconfigured environment only
// fails when a payment is attempted.
func (c *Client) Initiate(ctx context.Context, req InitiateRequest) (string, error) {
	channelID, err := strconv.Atoi(c.cfg.PayHeroChannelID)
	if err != nil {
		return "", fmt.Errorf("payhero: invalid channel id %q: %w", c.cfg.PayHeroChannelID, err)
	}

	payload := map[string]interface{}{
		"amount":             req.Amount.IntPart(),
		"phone_number":       req.Phone,
		"channel_id":         channelID,
		"provider":           "m-pesa",
		"external_reference": req.Reference,
		"customer_name":      req.CustomerName,
		"callback_url":       c.cfg.PayHeroCallbackURL,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("payhero: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("payhero: build request: %w", err)
	}
	httpReq.SetBasicAuth(c.cfg.PayHeroUsername, c.cfg.PayHeroPassword)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("payhero: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("payhero: read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return string(respBody), nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return "", &APIError{Status: resp.StatusCode, Body: string(respBody)}
	default:
		return "", fmt.Errorf("payhero: unexpected status %d: %s", resp.StatusCode, respBody)
	}
}
