package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupportedCurrency(t *testing.T) {
	for _, code := range []string{"EUR", "GBP", "PLN", "USD"} {
		assert.True(t, IsSupportedCurrency(code), "%s should be supported", code)
	}

	for _, code := range []string{"JPY", "CHF", "BRL", ""} {
		assert.False(t, IsSupportedCurrency(code), "%s should not be supported", code)
	}
}

func TestIsSupportedCurrencyIsCaseSensitive(t *testing.T) {
	assert.False(t, IsSupportedCurrency("eur"))
	assert.False(t, IsSupportedCurrency("Usd"))
	assert.False(t, IsSupportedCurrency(" EUR"))
}
