package payment

import (
	"context"

	"paylane-payment-api/models"
	"paylane-payment-api/services/payment/paylane"
)

// Gateway is the processor call the orchestrator depends on. The
// production implementation is *paylane.Client.
type Gateway interface {
	Sale(ctx context.Context, req *paylane.SaleRequest) (*paylane.SaleResponse, error)
}

// OrderStore is the host's order persistence API. Insert happens only
// after the processor has accepted the sale.
type OrderStore interface {
	InsertPayment(ctx context.Context, rec *models.PaymentRecord) error
	AddPaymentNote(ctx context.Context, paymentID, note string) error
	SetTransactionID(ctx context.Context, paymentID, transactionID string) error
	UpdatePaymentStatus(ctx context.Context, paymentID, status string) error
}

// GatewayErrorLog is the host's server-side gateway error sink. Detail
// recorded here is never surfaced to the browser.
type GatewayErrorLog interface {
	Record(ctx context.Context, title, detail string)
}

// ReceiptSender delivers the purchase receipt after a completed sale.
// Best effort: failures never change the purchase outcome.
type ReceiptSender interface {
	SendReceipt(to string, rec *models.PaymentRecord) error
}

// ReconcileQueue accepts a captured sale whose order record could not
// be written, so it can be retried out of band. Implementations must
// never receive card data.
type ReconcileQueue interface {
	EnqueueReconcile(ctx context.Context, rec *models.PaymentRecord) error
}
