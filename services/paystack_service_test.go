package services

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"ileke_server/config"
)

func webhookSignature(body []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	cfg := config.GetConfig()
	logger := config.GetLogger()
	ps := NewPaystackService(logger, cfg)

	body := []byte(`{"event":"charge.success","data":{"reference":"ref_123"}}`)
	valid := webhookSignature(body, cfg.Paystack.SecretKey)

	assert.True(t, ps.VerifyWebhookSignature(body, valid))
	assert.False(t, ps.VerifyWebhookSignature(body, ""))
	assert.False(t, ps.VerifyWebhookSignature(body, "deadbeef"))
	assert.False(t, ps.VerifyWebhookSignature(body, webhookSignature(body, "wrong-secret")))

	// Any change to the body invalidates the signature
	tampered := append([]byte{}, body...)
	tampered[0] = '['
	assert.False(t, ps.VerifyWebhookSignature(tampered, valid))
}
