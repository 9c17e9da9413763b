package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	portssvc "github.com/mandibooks/billing_backend/internal/core/ports/services"
)

// gatewayTimeout bounds every outbound delivery call.
const gatewayTimeout = 30 * time.Second

// GatewayClient delivers messages through an external HTTP message gateway.
type GatewayClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewGatewayClient creates a client against the gateway base URL.
func NewGatewayClient(baseURL string, token string) *GatewayClient {
	return &GatewayClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: gatewayTimeout},
	}
}

var _ portssvc.Notifier = (*GatewayClient)(nil)

type sendRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Message     string `json:"message"`
	DocumentURL string `json:"documentUrl,omitempty"`
	FileName    string `json:"fileName,omitempty"`
}

type sendResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (g *GatewayClient) post(ctx context.Context, payload sendRequest) error {
	if g.baseURL == "" {
		return fmt.Errorf("message gateway is not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal gateway payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	var gatewayResp sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&gatewayResp); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !gatewayResp.Success {
		return fmt.Errorf("gateway rejected message: status %d: %s", resp.StatusCode, gatewayResp.Error)
	}
	return nil
}

// Send delivers a plain text message to the phone number.
func (g *GatewayClient) Send(ctx context.Context, phoneNumber string, message string) error {
	return g.post(ctx, sendRequest{PhoneNumber: phoneNumber, Message: message})
}

// SendDocument delivers a message with an attached document URL.
func (g *GatewayClient) SendDocument(ctx context.Context, phoneNumber string, message string, documentURL string, fileName string) error {
	return g.post(ctx, sendRequest{
		PhoneNumber: phoneNumber,
		Message:     message,
		DocumentURL: documentURL,
		FileName:    fileName,
	})
}
