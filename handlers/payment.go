package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"paylane-payment-api/database"
	"paylane-payment-api/models"
	"paylane-payment-api/services/payment"
	"paylane-payment-api/utils"
)

const (
	successRedirect  = "/checkout/success"
	checkoutRedirect = "/checkout"
)

type PaymentHandler struct {
	db           *database.Connection
	orchestrator *payment.Service
	errorStore   *ErrorStore
}

func NewPaymentHandler(db *database.Connection, svc *payment.Service, es *ErrorStore) (*PaymentHandler, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if svc == nil {
		return nil, fmt.Errorf("payment service is required")
	}
	if es == nil {
		return nil, fmt.Errorf("error store is required")
	}

	return &PaymentHandler{
		db:           db,
		orchestrator: svc,
		errorStore:   es,
	}, nil
}

// ProcessPayment runs one checkout attempt. The submission is decoded,
// handed to the orchestrator, and the outcome is translated into the
// host's redirect contract: success page on acceptance, back to
// checkout with session errors on rejection.
func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	log.Printf("[RequestID: %s] Starting payment processing", requestID)

	var sub models.OrderSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		log.Printf("[RequestID: %s] Invalid request body: %v", requestID, err)
		utils.SendErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if sub.PurchaseKey == "" {
		sub.PurchaseKey = utils.GeneratePurchaseKey()
	}
	sub.IP = utils.GetClientIP(r)

	log.Printf("[RequestID: %s] Processing purchase %s (%s %s)",
		requestID, sub.PurchaseKey, utils.FormatAmount(sub.Price), sub.Currency)

	result := h.orchestrator.ProcessPurchase(r.Context(), &sub)

	if !result.Accepted {
		if err := h.errorStore.Push(w, r, result.Errors); err != nil {
			log.Printf("[RequestID: %s] Warning: failed to store checkout errors: %v", requestID, err)
		}

		utils.SendSuccessResponse(w, models.APIResponse{
			Status:  "rejected",
			Message: "Payment was not accepted",
			Data: map[string]interface{}{
				"errors":   result.Errors,
				"redirect": checkoutRedirectURL(sub.PaymentMode),
			},
		})
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: "Payment has been processed successfully",
		Data: map[string]interface{}{
			"transaction_id": result.TransactionID,
			"payment_id":     result.PaymentID,
			"redirect":       successRedirect,
		},
	})
}

// CheckPaymentStatus lets the storefront poll the recorded state of a
// purchase.
func (h *PaymentHandler) CheckPaymentStatus(w http.ResponseWriter, r *http.Request) {
	purchaseKey := r.URL.Query().Get("purchase_key")
	if purchaseKey == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Missing purchase_key parameter")
		return
	}

	rec, err := h.db.GetPaymentByPurchaseKey(r.Context(), purchaseKey)
	if err != nil {
		log.Printf("Error checking payment status: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Error checking payment status")
		return
	}

	if rec == nil {
		utils.SendErrorResponse(w, http.StatusNotFound, "Payment not found")
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: "Payment status retrieved",
		Data: map[string]interface{}{
			"payment_id":     rec.ID,
			"payment_status": rec.Status,
			"transaction_id": rec.TransactionID,
			"currency":       rec.Currency,
			"price":          rec.Price,
			"payment_date":   rec.Date,
		},
	})
}

// checkoutRedirectURL preserves the payment mode the shopper had
// selected so the host re-renders the same gateway form.
func checkoutRedirectURL(paymentMode string) string {
	if paymentMode == "" {
		paymentMode = "paylane"
	}
	return fmt.Sprintf("%s?payment-mode=%s", checkoutRedirect, paymentMode)
}
