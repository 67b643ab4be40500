package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paylane-payment-api/database"
	"paylane-payment-api/models"
	"paylane-payment-api/services/payment"
	"paylane-payment-api/services/payment/paylane"
)

type fakeGateway struct {
	calls    int
	response *paylane.SaleResponse
}

func (g *fakeGateway) Sale(ctx context.Context, req *paylane.SaleRequest) (*paylane.SaleResponse, error) {
	g.calls++
	return g.response, nil
}

type fakeStore struct{}

func (fakeStore) InsertPayment(ctx context.Context, rec *models.PaymentRecord) error      { return nil }
func (fakeStore) AddPaymentNote(ctx context.Context, paymentID, note string) error        { return nil }
func (fakeStore) SetTransactionID(ctx context.Context, paymentID, txID string) error      { return nil }
func (fakeStore) UpdatePaymentStatus(ctx context.Context, paymentID, status string) error { return nil }

type fakeErrorLog struct{}

func (fakeErrorLog) Record(ctx context.Context, title, detail string) {}

func newTestPaymentHandler(t *testing.T, gw payment.Gateway) *PaymentHandler {
	t.Helper()

	svc := payment.NewService(gw, fakeStore{}, fakeErrorLog{})
	h, err := NewPaymentHandler(&database.Connection{}, svc, NewErrorStore("test-secret"))
	require.NoError(t, err)
	return h
}

func TestProcessPaymentRejectsIncompleteCard(t *testing.T) {
	gw := &fakeGateway{}
	h := newTestPaymentHandler(t, gw)

	body := `{
		"price": 10.0,
		"currency": "EUR",
		"purchase_key": "key-1",
		"email": "shopper@example.com",
		"card_info": {"card_name": "Alice"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/process-payment", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.ProcessPayment(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rejected", resp.Status)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "/checkout?payment-mode=paylane", data["redirect"])
	assert.Len(t, data["errors"], 4)

	assert.Zero(t, gw.calls, "incomplete submissions never reach the processor")
	assert.NotEmpty(t, rec.Result().Cookies(), "rejection messages land in the session cookie")
}

func TestProcessPaymentAccepted(t *testing.T) {
	gw := &fakeGateway{response: &paylane.SaleResponse{Success: true, IDSale: "SALE77"}}
	h := newTestPaymentHandler(t, gw)

	body := `{
		"price": 25.0,
		"currency": "USD",
		"purchase_key": "key-2",
		"email": "shopper@example.com",
		"card_info": {
			"card_name": "Alice Shopper",
			"card_number": "4111111111111111",
			"card_exp_month": "12",
			"card_exp_year": "2029",
			"card_cvc": "321"
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/process-payment", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.ProcessPayment(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "SALE77", data["transaction_id"])
	assert.Equal(t, "/checkout/success", data["redirect"])
	assert.NotEmpty(t, data["payment_id"])
}

func TestProcessPaymentBadBody(t *testing.T) {
	h := newTestPaymentHandler(t, &fakeGateway{})

	req := httptest.NewRequest(http.MethodPost, "/api/process-payment", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.ProcessPayment(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutRedirectURL(t *testing.T) {
	assert.Equal(t, "/checkout?payment-mode=paylane", checkoutRedirectURL(""))
	assert.Equal(t, "/checkout?payment-mode=stripe", checkoutRedirectURL("stripe"))
}
