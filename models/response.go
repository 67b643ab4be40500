package models

type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PurchaseResult is the only thing the browser layer ever sees: either
// an accepted sale with its transaction id, or the list of user-safe
// rejection messages.
type PurchaseResult struct {
	Accepted      bool     `json:"accepted"`
	TransactionID string   `json:"transaction_id,omitempty"`
	PaymentID     string   `json:"payment_id,omitempty"`
	Errors        []string `json:"errors,omitempty"`
}
