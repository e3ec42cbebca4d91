package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNaira(t *testing.T) {
	tests := []struct {
		kobo uint64
		want string
	}{
		{0, "₦0.00"},
		{50, "₦0.50"},
		{100, "₦1.00"},
		{200000, "₦2,000.00"},
		{1250000, "₦12,500.00"},
		{123456789, "₦1,234,567.89"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNaira(tt.kobo))
	}
}
