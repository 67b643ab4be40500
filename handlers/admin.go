package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"paylane-payment-api/database"
	"paylane-payment-api/models"
	"paylane-payment-api/queue"
	"paylane-payment-api/services/auth"
	"paylane-payment-api/utils"
)

// AdminHandler exposes the merchant-side surface: recent payments,
// the gateway error log, and manual retry of failed reconcile jobs.
// Everything except token issuance sits behind the auth middleware.
type AdminHandler struct {
	db          *database.Connection
	queue       *queue.Queue
	jwtService  *auth.JWTService
	adminSecret string
}

func NewAdminHandler(db *database.Connection, q *queue.Queue, js *auth.JWTService, adminSecret string) *AdminHandler {
	return &AdminHandler{
		db:          db,
		queue:       q,
		jwtService:  js,
		adminSecret: adminSecret,
	}
}

// IssueToken exchanges the shared admin secret for a short-lived
// bearer token.
func (h *AdminHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Secret string `json:"secret"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if h.adminSecret == "" ||
		subtle.ConstantTimeCompare([]byte(req.Secret), []byte(h.adminSecret)) != 1 {
		log.Printf("Rejected admin token request from %s", r.RemoteAddr)
		utils.SendErrorResponse(w, http.StatusUnauthorized, "Invalid admin secret")
		return
	}

	token, err := h.jwtService.GenerateToken("admin")
	if err != nil {
		log.Printf("Error generating admin token: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"token":      token,
			"expires_in": int(auth.TokenDuration.Seconds()),
		},
	})
}

func (h *AdminHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	payments, err := h.db.ListRecentPayments(r.Context(), limit)
	if err != nil {
		log.Printf("Error listing payments: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Error listing payments")
		return
	}

	out := make([]map[string]interface{}, 0, len(payments))
	for _, rec := range payments {
		out = append(out, map[string]interface{}{
			"payment_id":     rec.ID,
			"purchase_key":   rec.PurchaseKey,
			"email":          rec.Email,
			"price":          rec.Price,
			"currency":       rec.Currency,
			"status":         rec.Status,
			"transaction_id": rec.TransactionID,
			"payment_date":   rec.Date,
		})
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"payments": out,
		},
	})
}

func (h *AdminHandler) ListGatewayErrors(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	errs, err := h.db.ListGatewayErrors(r.Context(), limit)
	if err != nil {
		log.Printf("Error listing gateway errors: %v", err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Error listing gateway errors")
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"gateway_errors": errs,
		},
	})
}

// RetryReconcileJob requeues a parked reconcile job by id.
func (h *AdminHandler) RetryReconcileJob(w http.ResponseWriter, r *http.Request) {
	var req struct {
		JobID string `json:"job_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if req.JobID == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Missing job_id parameter")
		return
	}

	if err := h.queue.RetryJob(r.Context(), req.JobID); err != nil {
		log.Printf("Error retrying job %s: %v", req.JobID, err)
		utils.SendErrorResponse(w, http.StatusNotFound, fmt.Sprintf("Could not retry job: %v", err))
		return
	}

	utils.SendSuccessResponse(w, models.APIResponse{
		Status:  "success",
		Message: fmt.Sprintf("Job %s requeued", req.JobID),
	})
}
