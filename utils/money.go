package utils

import (
	"fmt"
	"math"
)

func Round(value float64) float64 {
	return math.Round(value*100) / 100
}

// FormatAmount renders an order total for logs and receipts: major
// units, two decimal places.
func FormatAmount(value float64) string {
	return fmt.Sprintf("%.2f", Round(value))
}
