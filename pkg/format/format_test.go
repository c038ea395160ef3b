package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinutes(t *testing.T) {
	tests := []struct {
		minutes  int
		expected string
	}{
		{0, ""},
		{25, "25 min"},
		{60, "1 hr"},
		{90, "1 hr 30 min"},
		{60 * 24, "1 day"},
		{60*24 + 60, "1 day 1 hr"},
		{2*60*24 + 3*60 + 25, "2 days 3 hr 25 min"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Minutes(tt.minutes), "minutes=%d", tt.minutes)
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "$0"},
		{950, "$950"},
		{1250, "$1,250"},
		{1250.4, "$1,250"},
		{1250.5, "$1,251"},
		{1234567, "$1,234,567"},
		{-1250, "-$1,250"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Price(tt.amount), "amount=%f", tt.amount)
	}
}
