package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/MonkyMars/gecho"

	"ileke_server/structs"
)

var (
	paystackHTTPClient *http.Client
	paystackClientOnce sync.Once
)

// PaystackService talks to the Paystack REST API for transaction
// initialization and verification, and checks webhook signatures.
type PaystackService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *http.Client
}

func NewPaystackService(logger *gecho.Logger, cfg *structs.Config) *PaystackService {
	paystackClientOnce.Do(func() {
		paystackHTTPClient = &http.Client{Timeout: cfg.Paystack.Timeout}
	})

	return &PaystackService{
		logger: logger,
		cfg:    cfg,
		client: paystackHTTPClient,
	}
}

// InitializeTransaction creates a pending transaction and returns the hosted
// checkout URL plus the gateway reference.
func (ps *PaystackService) InitializeTransaction(ctx context.Context, req *structs.PaystackInitializeRequest) (*structs.PaystackInitializeResponse, error) {
	if req.Currency == "" {
		req.Currency = ps.cfg.Checkout.CurrencyCode
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var out structs.PaystackInitializeResponse
	if err := ps.do(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(body), &out); err != nil {
		return nil, err
	}

	if !out.Status {
		ps.logger.Error("Paystack initialize rejected", gecho.Field("message", out.Message), gecho.Field("email", req.Email))
		return nil, fmt.Errorf("paystack initialize failed: %s", out.Message)
	}

	return &out, nil
}

// VerifyTransaction fetches the settled state of a transaction by reference.
// Callers must still check Data.Status == "success" and that the amount
// matches what the order expects.
func (ps *PaystackService) VerifyTransaction(ctx context.Context, reference string) (*structs.PaystackVerifyResponse, error) {
	var out structs.PaystackVerifyResponse
	if err := ps.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &out); err != nil {
		return nil, err
	}

	if !out.Status {
		ps.logger.Warn("Paystack verify rejected", gecho.Field("message", out.Message), gecho.Field("reference", reference))
		return nil, fmt.Errorf("paystack verify failed: %s", out.Message)
	}

	return &out, nil
}

// VerifyWebhookSignature checks the x-paystack-signature header, an
// HMAC-SHA512 of the raw body keyed with the secret key.
func (ps *PaystackService) VerifyWebhookSignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha512.New, []byte(ps.cfg.Paystack.SecretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

func (ps *PaystackService) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, ps.cfg.Paystack.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+ps.cfg.Paystack.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ps.client.Do(req)
	if err != nil {
		ps.logger.Error("Paystack request failed", gecho.Field("error", err), gecho.Field("path", path))
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode >= 500 {
		ps.logger.Error("Paystack server error", gecho.Field("status", resp.StatusCode), gecho.Field("path", path))
		return fmt.Errorf("paystack returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode paystack response: %w", err)
	}

	return nil
}
