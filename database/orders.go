package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"paylane-payment-api/models"
)

const queryTimeout = 10 * time.Second

// InsertPayment writes the pending order record for a sale the
// processor has already accepted.
func (c *Connection) InsertPayment(ctx context.Context, rec *models.PaymentRecord) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
        INSERT INTO payments (
            id, purchase_key, email, buyer_name, price, currency,
            status, transaction_id, cart_json, payment_date, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
    `

	_, err := c.db.ExecContext(ctx, query,
		rec.ID, rec.PurchaseKey, rec.Email, rec.BuyerName, rec.Price,
		rec.Currency, rec.Status, rec.TransactionID, rec.CartJSON, rec.Date)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %v", err)
	}

	log.Printf("Inserted %s payment %s for purchase key %s", rec.Status, rec.ID, rec.PurchaseKey)
	return nil
}

func (c *Connection) AddPaymentNote(ctx context.Context, paymentID, note string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `INSERT INTO payment_notes (payment_id, note, created_at) VALUES (?, ?, NOW())`

	_, err := c.db.ExecContext(ctx, query, paymentID, note)
	if err != nil {
		return fmt.Errorf("failed to add payment note: %v", err)
	}
	return nil
}

func (c *Connection) SetTransactionID(ctx context.Context, paymentID, transactionID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `UPDATE payments SET transaction_id = ? WHERE id = ?`

	result, err := c.db.ExecContext(ctx, query, transactionID, paymentID)
	if err != nil {
		return fmt.Errorf("failed to set transaction id: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rows == 0 {
		return fmt.Errorf("no payment found with id %s", paymentID)
	}
	return nil
}

func (c *Connection) UpdatePaymentStatus(ctx context.Context, paymentID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `UPDATE payments SET status = ? WHERE id = ?`

	result, err := c.db.ExecContext(ctx, query, status, paymentID)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rows == 0 {
		return fmt.Errorf("no payment found with id %s", paymentID)
	}

	log.Printf("Payment %s moved to status %s", paymentID, status)
	return nil
}

// GetPaymentByPurchaseKey backs the storefront status check.
func (c *Connection) GetPaymentByPurchaseKey(ctx context.Context, purchaseKey string) (*models.PaymentRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
        SELECT id, purchase_key, email, buyer_name, price, currency,
               status, COALESCE(transaction_id, ''), cart_json, payment_date
        FROM payments
        WHERE purchase_key = ?
        ORDER BY created_at DESC
        LIMIT 1
    `

	var rec models.PaymentRecord
	err := c.db.QueryRowContext(ctx, query, purchaseKey).Scan(
		&rec.ID, &rec.PurchaseKey, &rec.Email, &rec.BuyerName, &rec.Price,
		&rec.Currency, &rec.Status, &rec.TransactionID, &rec.CartJSON, &rec.Date)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting payment: %v", err)
	}
	return &rec, nil
}

// ListRecentPayments backs the admin listing.
func (c *Connection) ListRecentPayments(ctx context.Context, limit int) ([]models.PaymentRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := `
        SELECT id, purchase_key, email, buyer_name, price, currency,
               status, COALESCE(transaction_id, ''), cart_json, payment_date
        FROM payments
        ORDER BY created_at DESC
        LIMIT ?
    `

	rows, err := c.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing payments: %v", err)
	}
	defer rows.Close()

	var payments []models.PaymentRecord
	for rows.Next() {
		var rec models.PaymentRecord
		err := rows.Scan(
			&rec.ID, &rec.PurchaseKey, &rec.Email, &rec.BuyerName, &rec.Price,
			&rec.Currency, &rec.Status, &rec.TransactionID, &rec.CartJSON, &rec.Date)
		if err != nil {
			return nil, err
		}
		payments = append(payments, rec)
	}

	return payments, rows.Err()
}

// Record writes a gateway error to the server-side log table. This is
// the sink for transport and decode failures; the detail never reaches
// the browser.
func (c *Connection) Record(ctx context.Context, title, detail string) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `INSERT INTO gateway_errors (title, detail, created_at) VALUES (?, ?, NOW())`

	if _, err := c.db.ExecContext(ctx, query, title, detail); err != nil {
		// The log table being down must not mask the original failure.
		log.Printf("Warning: failed to record gateway error (%s): %v", title, err)
	}

	log.Printf("%s: %s", title, detail)
}

type GatewayError struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// ListGatewayErrors backs the admin gateway error listing.
func (c *Connection) ListGatewayErrors(ctx context.Context, limit int) ([]GatewayError, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := `
        SELECT id, title, detail, created_at
        FROM gateway_errors
        ORDER BY created_at DESC
        LIMIT ?
    `

	rows, err := c.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing gateway errors: %v", err)
	}
	defer rows.Close()

	var out []GatewayError
	for rows.Next() {
		var ge GatewayError
		if err := rows.Scan(&ge.ID, &ge.Title, &ge.Detail, &ge.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ge)
	}

	return out, rows.Err()
}
