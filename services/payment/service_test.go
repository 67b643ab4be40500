package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paylane-payment-api/models"
	"paylane-payment-api/services/payment/paylane"
)

type stubGateway struct {
	calls    int
	lastReq  *paylane.SaleRequest
	response *paylane.SaleResponse
	err      error
}

func (g *stubGateway) Sale(ctx context.Context, req *paylane.SaleRequest) (*paylane.SaleResponse, error) {
	g.calls++
	g.lastReq = req
	return g.response, g.err
}

type stubStore struct {
	inserted     []*models.PaymentRecord
	notes        []string
	statuses     []string
	insertErr    error
	statusErr    error
	noteErr      error
	txIDErr      error
	transactions []string
}

func (s *stubStore) InsertPayment(ctx context.Context, rec *models.PaymentRecord) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, rec)
	return nil
}

func (s *stubStore) AddPaymentNote(ctx context.Context, paymentID, note string) error {
	if s.noteErr != nil {
		return s.noteErr
	}
	s.notes = append(s.notes, note)
	return nil
}

func (s *stubStore) SetTransactionID(ctx context.Context, paymentID, transactionID string) error {
	if s.txIDErr != nil {
		return s.txIDErr
	}
	s.transactions = append(s.transactions, transactionID)
	return nil
}

func (s *stubStore) UpdatePaymentStatus(ctx context.Context, paymentID, status string) error {
	if s.statusErr != nil {
		return s.statusErr
	}
	s.statuses = append(s.statuses, status)
	return nil
}

type stubErrorLog struct {
	titles  []string
	details []string
}

func (l *stubErrorLog) Record(ctx context.Context, title, detail string) {
	l.titles = append(l.titles, title)
	l.details = append(l.details, detail)
}

type stubReconcileQueue struct {
	enqueued []*models.PaymentRecord
	err      error
}

func (q *stubReconcileQueue) EnqueueReconcile(ctx context.Context, rec *models.PaymentRecord) error {
	if q.err != nil {
		return q.err
	}
	q.enqueued = append(q.enqueued, rec)
	return nil
}

type stubReceiptSender struct {
	sentTo []string
	err    error
}

func (r *stubReceiptSender) SendReceipt(to string, rec *models.PaymentRecord) error {
	if r.err != nil {
		return r.err
	}
	r.sentTo = append(r.sentTo, to)
	return nil
}

func validSubmission() *models.OrderSubmission {
	return &models.OrderSubmission{
		Price:       25.0,
		Currency:    "EUR",
		PurchaseKey: "key-777",
		Email:       "shopper@example.com",
		IP:          "203.0.113.9",
		Card: models.CardInfo{
			Name:     "Alice Shopper",
			Number:   "4111111111111111",
			ExpMonth: "12",
			ExpYear:  "2029",
			CVC:      "321",
		},
		Cart: []models.CartItem{
			{Name: "License", Quantity: 1, Price: 25.0},
		},
	}
}

func TestValidateAccumulatesMissingFields(t *testing.T) {
	sub := validSubmission()
	sub.Card.Number = ""
	sub.Card.CVC = ""

	svc := NewService(&stubGateway{}, &stubStore{}, &stubErrorLog{})
	errs := svc.Validate(sub)

	require.Len(t, errs, 2)
	assert.Equal(t, MsgCardNumberRequired, errs[0])
	assert.Equal(t, MsgCardCVCRequired, errs[1])
}

func TestValidateAllFieldsMissing(t *testing.T) {
	sub := &models.OrderSubmission{Currency: "XYZ"}

	svc := NewService(&stubGateway{}, &stubStore{}, &stubErrorLog{})
	errs := svc.Validate(sub)

	require.Len(t, errs, 6)
	assert.Equal(t, []string{
		MsgCardNameRequired,
		MsgCardNumberRequired,
		MsgCardExpMonthRequired,
		MsgCardExpYearRequired,
		MsgCardCVCRequired,
		MsgCurrencyUnsupported,
	}, errs)
}

func TestProcessPurchaseBlockedByHostErrors(t *testing.T) {
	gw := &stubGateway{response: &paylane.SaleResponse{Success: true, IDSale: "SALE1"}}
	store := &stubStore{}
	svc := NewService(gw, store, &stubErrorLog{})

	sub := validSubmission()
	sub.HostErrors = []string{"You must agree to the terms of use."}

	result := svc.ProcessPurchase(context.Background(), sub)

	assert.False(t, result.Accepted)
	assert.Equal(t, []string{"You must agree to the terms of use."}, result.Errors)
	assert.Zero(t, gw.calls, "host-blocked attempts never reach the processor")
	assert.Empty(t, store.inserted)
}

func TestProcessPurchaseRejectsLocallyWithoutGatewayCall(t *testing.T) {
	gw := &stubGateway{}
	svc := NewService(gw, &stubStore{}, &stubErrorLog{})

	sub := validSubmission()
	sub.Card.Number = ""
	sub.Card.CVC = ""

	result := svc.ProcessPurchase(context.Background(), sub)

	assert.False(t, result.Accepted)
	assert.Len(t, result.Errors, 2)
	assert.Zero(t, gw.calls, "validation failure must never reach the processor")
}

func TestProcessPurchaseRejectsUnsupportedCurrencyWithoutGatewayCall(t *testing.T) {
	gw := &stubGateway{}
	svc := NewService(gw, &stubStore{}, &stubErrorLog{})

	sub := validSubmission()
	sub.Currency = "JPY"

	result := svc.ProcessPurchase(context.Background(), sub)

	assert.False(t, result.Accepted)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, MsgCurrencyUnsupported, result.Errors[0])
	assert.Zero(t, gw.calls)
}

func TestProcessPurchaseSuccess(t *testing.T) {
	gw := &stubGateway{response: &paylane.SaleResponse{Success: true, IDSale: "SALE123"}}
	store := &stubStore{}
	errlog := &stubErrorLog{}
	receipts := &stubReceiptSender{}

	svc := NewService(gw, store, errlog)
	svc.SetReceiptSender(receipts)

	result := svc.ProcessPurchase(context.Background(), validSubmission())

	require.True(t, result.Accepted)
	assert.Equal(t, "SALE123", result.TransactionID)
	assert.NotEmpty(t, result.PaymentID)
	assert.Empty(t, result.Errors)

	assert.Equal(t, 1, gw.calls, "exactly one gateway attempt")

	require.Len(t, store.inserted, 1)
	rec := store.inserted[0]
	assert.Equal(t, "key-777", rec.PurchaseKey)
	assert.Equal(t, "SALE123", rec.TransactionID)
	assert.Equal(t, models.PaymentStatusPending, rec.Status)
	assert.Equal(t, "Alice Shopper", rec.BuyerName)

	require.Len(t, store.notes, 1)
	assert.Equal(t, "PayLane Gateway Transaction ID: SALE123", store.notes[0])

	assert.Equal(t, []string{"SALE123"}, store.transactions)
	assert.Equal(t, []string{models.PaymentStatusComplete}, store.statuses)
	assert.Equal(t, []string{"shopper@example.com"}, receipts.sentTo)
	assert.Empty(t, errlog.titles)
}

func TestProcessPurchaseNeverPersistsCardData(t *testing.T) {
	gw := &stubGateway{response: &paylane.SaleResponse{Success: true, IDSale: "SALE1"}}
	store := &stubStore{}
	svc := NewService(gw, store, &stubErrorLog{})

	sub := validSubmission()
	svc.ProcessPurchase(context.Background(), sub)

	require.Len(t, store.inserted, 1)
	rec := store.inserted[0]
	assert.NotContains(t, rec.CartJSON, sub.Card.Number)
	assert.NotContains(t, rec.CartJSON, sub.Card.CVC)
}

func TestProcessPurchaseProcessorDecline(t *testing.T) {
	gw := &stubGateway{response: &paylane.SaleResponse{
		Success:          false,
		ErrorNumber:      "403",
		ErrorDescription: "raw processor text that must not surface",
	}}
	store := &stubStore{}
	svc := NewService(gw, store, &stubErrorLog{})

	result := svc.ProcessPurchase(context.Background(), validSubmission())

	assert.False(t, result.Accepted)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Card declined.", result.Errors[0], "known codes use the catalog message")
	assert.Empty(t, store.inserted, "declined sales are never recorded")
}

func TestProcessPurchaseUnknownDeclineCodeUsesDescription(t *testing.T) {
	gw := &stubGateway{response: &paylane.SaleResponse{
		Success:          false,
		ErrorNumber:      "99999",
		ErrorDescription: "Unmapped processor condition.",
	}}
	svc := NewService(gw, &stubStore{}, &stubErrorLog{})

	result := svc.ProcessPurchase(context.Background(), validSubmission())

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Unmapped processor condition.", result.Errors[0])
}

func TestProcessPurchaseTransportFailure(t *testing.T) {
	gwErr := &paylane.TransportError{Err: errors.New("connection reset by peer")}
	gw := &stubGateway{err: gwErr}
	store := &stubStore{}
	errlog := &stubErrorLog{}
	svc := NewService(gw, store, errlog)

	result := svc.ProcessPurchase(context.Background(), validSubmission())

	assert.False(t, result.Accepted)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, MsgCardDeclined, result.Errors[0], "transport detail never reaches the shopper")

	require.Len(t, errlog.titles, 1)
	assert.Equal(t, "PayLane Gateway Error", errlog.titles[0])
	assert.Contains(t, errlog.details[0], "key-777")
	assert.Contains(t, errlog.details[0], "connection reset by peer")

	assert.Empty(t, store.inserted)
}

func TestProcessPurchaseInsertFailureQueuesReconcile(t *testing.T) {
	gw := &stubGateway{response: &paylane.SaleResponse{Success: true, IDSale: "SALE9"}}
	store := &stubStore{insertErr: errors.New("duplicate entry")}
	reconcile := &stubReconcileQueue{}

	svc := NewService(gw, store, &stubErrorLog{})
	svc.SetReconcileQueue(reconcile)

	result := svc.ProcessPurchase(context.Background(), validSubmission())

	assert.False(t, result.Accepted)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, MsgPaymentNotRecorded, result.Errors[0])

	require.Len(t, reconcile.enqueued, 1)
	assert.Equal(t, "SALE9", reconcile.enqueued[0].TransactionID)
}

func TestProcessPurchaseStatusFailureQueuesReconcile(t *testing.T) {
	gw := &stubGateway{response: &paylane.SaleResponse{Success: true, IDSale: "SALE10"}}
	store := &stubStore{statusErr: errors.New("lock wait timeout")}
	reconcile := &stubReconcileQueue{}

	svc := NewService(gw, store, &stubErrorLog{})
	svc.SetReconcileQueue(reconcile)

	result := svc.ProcessPurchase(context.Background(), validSubmission())

	assert.False(t, result.Accepted)
	assert.Equal(t, []string{MsgPaymentNotRecorded}, result.Errors)
	require.Len(t, reconcile.enqueued, 1)
}

func TestProcessPurchaseNoteAndTransactionIDFailuresAreNonFatal(t *testing.T) {
	gw := &stubGateway{response: &paylane.SaleResponse{Success: true, IDSale: "SALE11"}}
	store := &stubStore{noteErr: errors.New("notes table gone"), txIDErr: errors.New("meta update failed")}

	svc := NewService(gw, store, &stubErrorLog{})

	result := svc.ProcessPurchase(context.Background(), validSubmission())

	assert.True(t, result.Accepted)
	assert.Equal(t, "SALE11", result.TransactionID)
}

func TestProcessPurchaseReceiptFailureDoesNotChangeOutcome(t *testing.T) {
	gw := &stubGateway{response: &paylane.SaleResponse{Success: true, IDSale: "SALE12"}}
	svc := NewService(gw, &stubStore{}, &stubErrorLog{})
	svc.SetReceiptSender(&stubReceiptSender{err: errors.New("smtp down")})

	result := svc.ProcessPurchase(context.Background(), validSubmission())

	assert.True(t, result.Accepted)
}

func TestProcessPurchaseBuildsAmountAndMonth(t *testing.T) {
	gw := &stubGateway{response: &paylane.SaleResponse{Success: true, IDSale: "SALE13"}}
	svc := NewService(gw, &stubStore{}, &stubErrorLog{})

	sub := validSubmission()
	sub.Price = 9.9
	sub.Card.ExpMonth = "4"

	svc.ProcessPurchase(context.Background(), sub)

	require.NotNil(t, gw.lastReq)
	assert.Equal(t, 9.9, gw.lastReq.Sale.Amount)
	assert.Equal(t, "04", gw.lastReq.Card.ExpirationMonth)
}
