// Package paystack wraps the Paystack transaction-initialize API. Only
// the access code ever leaves this package on success; the rest of the
// upstream response stays here.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.paystack.co"

type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
}

func NewClient(secretKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		secretKey:  secretKey,
	}
}

// Ready reports whether the client is configured to reach the gateway.
// Checkout is blocked entirely while this is false.
func (c *Client) Ready() bool {
	return c.secretKey != ""
}

type InitRequest struct {
	Email     string `json:"email"`
	Amount    int64  `json:"amount"` // kobo
	Currency  string `json:"currency"`
	Reference string `json:"reference"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Metadata  any    `json:"metadata,omitempty"`
}

type Metadata struct {
	CustomFields []CustomField `json:"custom_fields"`
}

type CustomField struct {
	DisplayName  string `json:"display_name"`
	VariableName string `json:"variable_name"`
	Value        string `json:"value"`
}

type InitResult struct {
	AccessCode string
}

// GatewayError is an initialization the gateway itself rejected, as
// opposed to a transport failure.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	return e.Message
}

type initResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AccessCode       string `json:"access_code"`
		AuthorizationURL string `json:"authorization_url"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// Initialize registers a pending transaction and returns its access code.
func (c *Client) Initialize(ctx context.Context, req InitRequest) (*InitResult, error) {
	if req.Currency == "" {
		req.Currency = "NGN"
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal init request failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build init request failed: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("paystack initialize failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded initResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode paystack response failed: %w", err)
	}

	if !decoded.Status {
		msg := decoded.Message
		if msg == "" {
			msg = "Paystack initialization failed"
		}
		return nil, &GatewayError{Message: msg}
	}

	if decoded.Data.AccessCode == "" {
		return nil, &GatewayError{Message: "Paystack initialization failed"}
	}

	return &InitResult{AccessCode: decoded.Data.AccessCode}, nil
}
