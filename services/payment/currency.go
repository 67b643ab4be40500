package payment

// supportedCurrencies is the set PayLane accepts for card sales.
var supportedCurrencies = map[string]bool{
	"EUR": true,
	"GBP": true,
	"PLN": true,
	"USD": true,
}

// IsSupportedCurrency reports whether the store currency can be sent
// to PayLane. Exact, case-sensitive match; normalizing here would hide
// host misconfiguration.
func IsSupportedCurrency(currency string) bool {
	return supportedCurrencies[currency]
}
