package lib

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{8}-[A-HJ-NP-Z2-9]{6}$`)

	number := GenerateOrderNumber()
	assert.Regexp(t, pattern, number)
	assert.Contains(t, number, time.Now().UTC().Format("20060102"))
}

func TestGenerateRequestNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^COR-\d{8}-[A-HJ-NP-Z2-9]{6}$`)

	number := GenerateRequestNumber()
	assert.Regexp(t, pattern, number)
}

func TestNumberSuffixAvoidsAmbiguousCharacters(t *testing.T) {
	// 0, O, 1, I are excluded from the alphabet to keep numbers readable
	// over the phone.
	assert.NotContains(t, numberAlphabet, "0")
	assert.NotContains(t, numberAlphabet, "O")
	assert.NotContains(t, numberAlphabet, "1")
	assert.NotContains(t, numberAlphabet, "I")
}

func TestGenerateOrderNumbersAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		number := GenerateOrderNumber()
		assert.False(t, seen[number], number)
		seen[number] = true
	}
}

func TestGenerateSKU(t *testing.T) {
	// Handle is sanitized, uppercased, and capped at 8 chars; a random
	// 4-char suffix keeps SKUs unique.
	sku := GenerateSKU("adire-slide", "42", "red")
	assert.Regexp(t, `^ADIRESLI-42-RED-[A-HJ-NP-Z2-9]{4}$`, sku)

	// Empty segments are dropped
	sku = GenerateSKU("clog", "", "38")
	assert.Regexp(t, `^CLOG-38-[A-HJ-NP-Z2-9]{4}$`, sku)
}
