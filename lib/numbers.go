package lib

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const numberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randomSuffix(n int) string {
	var b strings.Builder
	max := big.NewInt(int64(len(numberAlphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// fall back to a time-derived index rather than panic.
			b.WriteByte(numberAlphabet[int(time.Now().UnixNano())%len(numberAlphabet)])
			continue
		}
		b.WriteByte(numberAlphabet[idx.Int64()])
	}
	return b.String()
}

// GenerateOrderNumber produces a customer-facing order number,
// e.g. ORD-20260901-K7M2QX.
func GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), randomSuffix(6))
}

// GenerateRequestNumber produces a custom-order request number,
// e.g. COR-20260901-K7M2QX.
func GenerateRequestNumber() string {
	return fmt.Sprintf("COR-%s-%s", time.Now().UTC().Format("20060102"), randomSuffix(6))
}

// GenerateSKU builds a SKU from a product handle and variant attributes.
func GenerateSKU(handle string, parts ...string) string {
	segs := []string{strings.ToUpper(sanitizeSKUSegment(handle))}
	for _, p := range parts {
		if s := sanitizeSKUSegment(p); s != "" {
			segs = append(segs, strings.ToUpper(s))
		}
	}
	segs = append(segs, randomSuffix(4))
	return strings.Join(segs, "-")
}

func sanitizeSKUSegment(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > 8 {
		out = out[:8]
	}
	return out
}
