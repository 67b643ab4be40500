package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	assert.Equal(t, 19.99, Round(19.994))
	assert.Equal(t, 20.0, Round(19.996))
	assert.Equal(t, 0.1, Round(0.1))
	assert.Equal(t, 100.0, Round(100))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{19.99, "19.99"},
		{100, "100.00"},
		{9.9, "9.90"},
		{0, "0.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatAmount(tt.in))
	}
}
