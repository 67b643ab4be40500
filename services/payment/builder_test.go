package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"paylane-payment-api/models"
)

func TestSanitizeMonth(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"1", "01"},
		{"9", "09"},
		{"10", "10"},
		{"12", "12"},
		{"01", "01"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SanitizeMonth(tt.in))
	}
}

func TestBuildSaleRequest(t *testing.T) {
	sub := &models.OrderSubmission{
		Price:       49.5,
		Currency:    "GBP",
		PurchaseKey: "abc123",
		Email:       "buyer@example.com",
		IP:          "198.51.100.4",
		Address: models.Address{
			Street:      "1 High Street",
			City:        "London",
			State:       "",
			Zip:         "SW1A 1AA",
			CountryCode: "GB",
		},
		Card: models.CardInfo{
			Name:     "John Buyer",
			Number:   "4111111111111111",
			ExpMonth: "3",
			ExpYear:  "2027",
			CVC:      "456",
		},
	}

	req := BuildSaleRequest(sub)

	assert.Equal(t, 49.5, req.Sale.Amount)
	assert.Equal(t, "GBP", req.Sale.Currency)
	assert.Equal(t, "abc123", req.Sale.Description)

	assert.Equal(t, "John Buyer", req.Customer.Name)
	assert.Equal(t, "buyer@example.com", req.Customer.Email)
	assert.Equal(t, "198.51.100.4", req.Customer.IP)
	assert.Equal(t, "1 High Street", req.Customer.Address.StreetHouse)
	assert.Equal(t, "GB", req.Customer.Address.CountryCode)

	assert.Equal(t, "4111111111111111", req.Card.CardNumber)
	assert.Equal(t, "03", req.Card.ExpirationMonth, "single digit month must be zero padded")
	assert.Equal(t, "2027", req.Card.ExpirationYear)
	assert.Equal(t, "John Buyer", req.Card.NameOnCard)
	assert.Equal(t, "456", req.Card.CardCode)
}

func TestBuildSaleRequestRoundsAmounts(t *testing.T) {
	sub := &models.OrderSubmission{Price: 100, Currency: "USD"}
	req := BuildSaleRequest(sub)
	assert.Equal(t, 100.0, req.Sale.Amount)

	sub.Price = 19.994
	assert.Equal(t, 19.99, BuildSaleRequest(sub).Sale.Amount)
}
