package email

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"paylane-payment-api/models"
	"paylane-payment-api/utils"
)

// SendReceipt emails the purchase receipt for a recorded payment. The
// cart snapshot is decoded from the stored JSON; a snapshot that fails
// to decode just produces a receipt without line items.
func (s *SMTPService) SendReceipt(to string, rec *models.PaymentRecord) error {
	if to == "" {
		return fmt.Errorf("receipt recipient is empty")
	}

	var items []models.CartItem
	if rec.CartJSON != "" {
		if err := json.Unmarshal([]byte(rec.CartJSON), &items); err != nil {
			items = nil
		}
	}

	buyer := rec.BuyerName
	if buyer == "" {
		buyer = "customer"
	}

	body := fmt.Sprintf(ReceiptEmailTemplate,
		html.EscapeString(buyer),
		html.EscapeString(rec.PurchaseKey),
		html.EscapeString(rec.TransactionID),
		utils.FormatAmount(rec.Price),
		html.EscapeString(rec.Currency),
		itemRows(items),
	)

	subject := fmt.Sprintf("Your receipt for order %s", rec.PurchaseKey)
	return s.SendEmail(to, subject, body)
}

func itemRows(items []models.CartItem) string {
	if len(items) == 0 {
		return `                                    <tr><td colspan="3" style="color: #999999;">No line items recorded.</td></tr>`
	}

	var b strings.Builder
	for _, item := range items {
		b.WriteString(fmt.Sprintf(
			`                                    <tr><td style="border-bottom: 1px solid #eeeeee;">%s</td><td align="right" style="border-bottom: 1px solid #eeeeee;">%d</td><td align="right" style="border-bottom: 1px solid #eeeeee;">%s</td></tr>`+"\n",
			html.EscapeString(item.Name), item.Quantity, utils.FormatAmount(item.Price)))
	}
	return strings.TrimRight(b.String(), "\n")
}
