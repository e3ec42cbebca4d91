package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/products", "/products"},
		{"/products/", "/products"},
		{"/products/adire-slide", "/products/:param"},
		{"/collections/new-arrivals", "/collections/:param"},
		{"/custom-orders/COR-20260901-K7M2QX/images", "/custom-orders/:param"},
		{"/cart/lines/3f2a", "/cart/lines/:param"},
		{"/checkout/initialize", "/checkout/initialize"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeEndpoint(tt.path), tt.path)
	}
}

func TestGetClientIP(t *testing.T) {
	mw := &Middleware{}

	r := httptest.NewRequest("GET", "/products", nil)
	r.RemoteAddr = "203.0.113.7:54321"
	assert.Equal(t, "203.0.113.7", mw.getClientIP(r))

	r.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", mw.getClientIP(r))

	// X-Forwarded-For wins, first hop only
	r.Header.Set("X-Forwarded-For", "192.0.2.1, 198.51.100.2")
	assert.Equal(t, "192.0.2.1", mw.getClientIP(r))
}
