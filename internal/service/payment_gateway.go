package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentGateway is the storefront's view of the external payment provider:
// create an intent for an amount, and verify that a webhook really came from
// the provider.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, receipt string) (string, error)
	VerifyWebhook(payload []byte, signature string) bool
}

// RazorpayGateway talks to the Razorpay order API with a key id/secret pair.
type RazorpayGateway struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
}

func NewRazorpayGateway(baseURL, keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

var _ PaymentGateway = (*RazorpayGateway)(nil)

// CreateIntent registers the amount with the gateway and returns the
// gateway-side order id the browser widget and webhook both reference.
// Razorpay wants the amount in the currency's smallest unit.
func (g *RazorpayGateway) CreateIntent(ctx context.Context, amount decimal.Decimal, receipt string) (string, error) {
	body, err := json.Marshal(map[string]interface{}{
		"amount":   amount.Mul(decimal.NewFromInt(100)).IntPart(),
		"currency": "INR",
		"receipt":  receipt,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("payment gateway returned %s", resp.Status)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.ID == "" {
		return "", fmt.Errorf("payment gateway returned no intent id")
	}
	return result.ID, nil
}

// VerifyWebhook checks the HMAC-SHA256 signature the gateway computes over
// the raw webhook body.
func (g *RazorpayGateway) VerifyWebhook(payload []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
