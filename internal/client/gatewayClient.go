package client

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"docmarket/internal/config"
)

// GatewayClient wraps the payment processor's orders API. Amounts are
// always minor currency units; callers convert before calling.
type GatewayClient interface {
	CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string) (string, error)
	VerifyWebhookSignature(rawBody []byte, signature string) bool
}

type gatewayClientImpl struct {
	httpClient    *http.Client
	baseApiURL    string
	keyID         string
	keySecret     string
	webhookSecret string
}

type gatewayOrderResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func NewGatewayClient(gatewayCfg *config.Gateway) GatewayClient {
	return &gatewayClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:    gatewayCfg.BaseApiURL,
		keyID:         gatewayCfg.KeyID,
		keySecret:     gatewayCfg.KeySecret,
		webhookSecret: gatewayCfg.WebhookSecret,
	}
}

func (c *gatewayClientImpl) CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string) (string, error) {
	payload := map[string]interface{}{
		"amount":   amountMinorUnits,
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/orders",
		bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}

	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gateway error %d: %s", resp.StatusCode, string(b))
	}

	var result gatewayOrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode gateway response: %w", err)
	}

	return result.ID, nil
}

// VerifyWebhookSignature recomputes the HMAC-SHA256 of the raw request body
// and compares it to the hex signature header in constant time. It must be
// fed the exact bytes received on the wire; re-serialized JSON will not match.
func (c *gatewayClientImpl) VerifyWebhookSignature(rawBody []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
