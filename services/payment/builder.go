package payment

import (
	"paylane-payment-api/models"
	"paylane-payment-api/services/payment/paylane"
	"paylane-payment-api/utils"
)

// SanitizeMonth zero-pads a single digit expiration month. PayLane
// requires a fixed two character month.
func SanitizeMonth(month string) string {
	if len(month) == 1 {
		return "0" + month
	}
	return month
}

// BuildSaleRequest maps a validated submission onto PayLane's wire
// shape. Pure transform: no I/O, no processor errors. The caller is
// responsible for having validated the card fields and currency first.
func BuildSaleRequest(sub *models.OrderSubmission) *paylane.SaleRequest {
	return &paylane.SaleRequest{
		Sale: paylane.Sale{
			Amount:      utils.Round(sub.Price),
			Currency:    sub.Currency,
			Description: sub.PurchaseKey,
		},
		Customer: paylane.Customer{
			Name:  sub.Card.Name,
			Email: sub.Email,
			IP:    sub.IP,
			Address: paylane.CustomerAddress{
				StreetHouse: sub.Address.Street,
				City:        sub.Address.City,
				State:       sub.Address.State,
				Zip:         sub.Address.Zip,
				CountryCode: sub.Address.CountryCode,
			},
		},
		Card: paylane.Card{
			CardNumber:      sub.Card.Number,
			ExpirationMonth: SanitizeMonth(sub.Card.ExpMonth),
			ExpirationYear:  sub.Card.ExpYear,
			NameOnCard:      sub.Card.Name,
			CardCode:        sub.Card.CVC,
		},
	}
}
