package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"paylane-payment-api/models"
	"paylane-payment-api/services/payment/paylane"
	"paylane-payment-api/utils"
)

// Checkout messages. The wording is part of the storefront contract.
const (
	MsgCardNameRequired     = "Card name is required."
	MsgCardNumberRequired   = "Card number is required."
	MsgCardExpMonthRequired = "Card expiration month is required."
	MsgCardExpYearRequired  = "Card expiration year is required."
	MsgCardCVCRequired      = "Card CVC is required."
	MsgCurrencyUnsupported  = "The specified currency is not supported by PayLane at this time."
	MsgCardDeclined         = "Your card was declined."
	MsgPaymentNotRecorded   = "Your payment could not be recorded. Please try again."
)

const gatewayErrorTitle = "PayLane Gateway Error"

// Service runs one checkout attempt end to end: validate, build the
// sale request, submit it, interpret the verdict, record the order.
// Strictly sequential; the only shared state is the read-only error
// catalog.
type Service struct {
	gateway   Gateway
	store     OrderStore
	errlog    GatewayErrorLog
	receipts  ReceiptSender
	reconcile ReconcileQueue
}

func NewService(gw Gateway, store OrderStore, errlog GatewayErrorLog) *Service {
	return &Service{
		gateway: gw,
		store:   store,
		errlog:  errlog,
	}
}

// SetReceiptSender wires the optional purchase receipt email.
func (s *Service) SetReceiptSender(rs ReceiptSender) {
	s.receipts = rs
}

// SetReconcileQueue wires the optional post-capture reconcile path.
func (s *Service) SetReconcileQueue(rq ReconcileQueue) {
	s.reconcile = rq
}

// Validate checks the submission locally. It accumulates one message
// per missing card field instead of stopping at the first, then the
// currency. Performs no I/O.
func (s *Service) Validate(sub *models.OrderSubmission) []string {
	var errs []string

	required := []struct {
		value   string
		message string
	}{
		{sub.Card.Name, MsgCardNameRequired},
		{sub.Card.Number, MsgCardNumberRequired},
		{sub.Card.ExpMonth, MsgCardExpMonthRequired},
		{sub.Card.ExpYear, MsgCardExpYearRequired},
		{sub.Card.CVC, MsgCardCVCRequired},
	}

	for _, field := range required {
		if field.value == "" {
			errs = append(errs, field.message)
		}
	}

	if !IsSupportedCurrency(sub.Currency) {
		errs = append(errs, MsgCurrencyUnsupported)
	}

	return errs
}

// ProcessPurchase is the top-level state machine:
// Validating -> Building -> Submitting -> Interpreting -> {Recording, Rejecting}.
// Card data lives only for the duration of this call.
func (s *Service) ProcessPurchase(ctx context.Context, sub *models.OrderSubmission) *models.PurchaseResult {
	// The host may already have flagged this attempt with its own
	// checkout validators. Those block before anything else runs.
	if len(sub.HostErrors) > 0 {
		log.Printf("Purchase %s blocked by %d host checkout errors", sub.PurchaseKey, len(sub.HostErrors))
		return &models.PurchaseResult{Accepted: false, Errors: sub.HostErrors}
	}

	// Validating. Any local failure rejects before the processor is
	// ever contacted.
	if errs := s.Validate(sub); len(errs) > 0 {
		log.Printf("Purchase %s rejected by validation (%d errors)", sub.PurchaseKey, len(errs))
		return &models.PurchaseResult{Accepted: false, Errors: errs}
	}

	// Building.
	saleReq := BuildSaleRequest(sub)

	// Submitting. Single attempt; PayLane's own duplicate lock (401)
	// guards against rapid resubmission.
	resp, err := s.gateway.Sale(ctx, saleReq)
	if err != nil {
		// Full detail goes to the gateway error log only. The browser
		// gets the generic decline.
		s.errlog.Record(ctx, gatewayErrorTitle, fmt.Sprintf("purchase_key=%s: %v", sub.PurchaseKey, err))
		return &models.PurchaseResult{Accepted: false, Errors: []string{MsgCardDeclined}}
	}

	// Interpreting.
	if !resp.Success {
		message := paylane.Translate(resp.ErrorNumber, resp.ErrorDescription)
		log.Printf("Purchase %s declined by PayLane (code %s)", sub.PurchaseKey, resp.ErrorNumber)
		return &models.PurchaseResult{Accepted: false, Errors: []string{message}}
	}

	// Recording.
	return s.record(ctx, sub, resp.IDSale)
}

func (s *Service) record(ctx context.Context, sub *models.OrderSubmission, saleID string) *models.PurchaseResult {
	rec := buildPaymentRecord(sub, saleID)

	if err := s.store.InsertPayment(ctx, rec); err != nil {
		// The charge has already been captured. Queue the sale for
		// reconciliation and hand the shopper the original generic
		// message.
		log.Printf("Failed to record payment for purchase %s (sale %s): %v", sub.PurchaseKey, saleID, err)
		s.queueReconcile(ctx, rec)
		return &models.PurchaseResult{Accepted: false, Errors: []string{MsgPaymentNotRecorded}}
	}

	note := fmt.Sprintf("PayLane Gateway Transaction ID: %s", saleID)
	if err := s.store.AddPaymentNote(ctx, rec.ID, note); err != nil {
		log.Printf("Warning: failed to attach payment note to %s: %v", rec.ID, err)
	}

	if err := s.store.SetTransactionID(ctx, rec.ID, saleID); err != nil {
		log.Printf("Warning: failed to set transaction id on %s: %v", rec.ID, err)
	}

	if err := s.store.UpdatePaymentStatus(ctx, rec.ID, models.PaymentStatusComplete); err != nil {
		log.Printf("Failed to complete payment %s (sale %s): %v", rec.ID, saleID, err)
		s.queueReconcile(ctx, rec)
		return &models.PurchaseResult{Accepted: false, Errors: []string{MsgPaymentNotRecorded}}
	}

	if s.receipts != nil {
		if err := s.receipts.SendReceipt(sub.Email, rec); err != nil {
			log.Printf("Warning: failed to send receipt for payment %s: %v", rec.ID, err)
		}
	}

	log.Printf("Purchase %s completed with transaction id %s", sub.PurchaseKey, saleID)
	return &models.PurchaseResult{
		Accepted:      true,
		TransactionID: saleID,
		PaymentID:     rec.ID,
	}
}

func (s *Service) queueReconcile(ctx context.Context, rec *models.PaymentRecord) {
	if s.reconcile == nil {
		return
	}
	if err := s.reconcile.EnqueueReconcile(ctx, rec); err != nil {
		log.Printf("Warning: failed to enqueue reconcile for sale %s: %v", rec.TransactionID, err)
	}
}

func buildPaymentRecord(sub *models.OrderSubmission, saleID string) *models.PaymentRecord {
	cartJSON, err := json.Marshal(sub.Cart)
	if err != nil {
		cartJSON = []byte("[]")
	}

	date := time.Now().UTC()
	if sub.Date != "" {
		if parsed, perr := utils.ParseDate(sub.Date); perr == nil {
			date = parsed
		}
	}

	return &models.PaymentRecord{
		ID:            uuid.New().String(),
		PurchaseKey:   sub.PurchaseKey,
		Email:         sub.Email,
		Price:         utils.Round(sub.Price),
		Currency:      sub.Currency,
		Status:        models.PaymentStatusPending,
		TransactionID: saleID,
		CartJSON:      string(cartJSON),
		BuyerName:     sub.Card.Name,
		Date:          date,
	}
}
