package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"paylane-payment-api/database"
	"paylane-payment-api/models"
	"paylane-payment-api/queue"
)

// Worker drains reconcile jobs: sales PayLane captured that the order
// store failed to record during checkout. It rewrites them with status
// "reconcile" so they surface in the admin listings instead of being
// lost.
type Worker struct {
	queue     *queue.Queue
	db        *database.Connection
	shutdown  chan struct{}
	isRunning bool
}

func NewWorker(q *queue.Queue, db *database.Connection) *Worker {
	return &Worker{
		queue:    q,
		db:       db,
		shutdown: make(chan struct{}),
	}
}

// Start begins processing jobs.
func (w *Worker) Start(concurrency int) {
	w.isRunning = true

	for i := 0; i < concurrency; i++ {
		go w.processJobs(i)
	}
	go w.pumpDelayedJobs()

	log.Printf("Started %d worker goroutines", concurrency)
}

// Stop signals the worker to stop processing jobs.
func (w *Worker) Stop() {
	if !w.isRunning {
		return
	}

	log.Println("Stopping worker...")
	close(w.shutdown)
	w.isRunning = false
}

// pumpDelayedJobs periodically promotes due retries onto the main
// queue.
func (w *Worker) pumpDelayedJobs() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.shutdown:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := w.queue.ProcessDelayedJobs(ctx); err != nil {
				log.Printf("Error processing delayed jobs: %v", err)
			}
			cancel()
		}
	}
}

func (w *Worker) processJobs(workerID int) {
	log.Printf("Worker %d starting", workerID)

	for {
		select {
		case <-w.shutdown:
			log.Printf("Worker %d shutting down", workerID)
			return
		default:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			job, err := w.queue.Dequeue(ctx, 5*time.Second)
			cancel()

			if err != nil {
				log.Printf("Worker %d: Error dequeuing job: %v", workerID, err)
				time.Sleep(time.Second)
				continue
			}

			if job == nil {
				time.Sleep(100 * time.Millisecond)
				continue
			}

			log.Printf("Worker %d processing job %s of type %s", workerID, job.ID, job.Type)

			jobErr := w.processJob(job)
			if jobErr != nil {
				log.Printf("Worker %d: Error processing job %s: %v", workerID, job.ID, jobErr)

				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				failErr := w.queue.FailJob(ctx, job, jobErr)
				cancel()

				if failErr != nil {
					log.Printf("Worker %d: Error marking job %s as failed: %v", workerID, job.ID, failErr)
				}

				time.Sleep(time.Second)
				continue
			}

			ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
			completeErr := w.queue.CompleteJob(ctx, job)
			cancel()

			if completeErr != nil {
				log.Printf("Worker %d: Error marking job %s as complete: %v", workerID, job.ID, completeErr)
			}
		}
	}
}

func (w *Worker) processJob(job *queue.Job) error {
	switch job.Type {
	case queue.JobTypeReconcileSale:
		return w.processReconcileSale(job)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

func (w *Worker) processReconcileSale(job *queue.Job) error {
	rec, err := paymentRecordFromJob(job)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// The payment may already exist if only the final status update
	// failed at checkout; in that case just push it to reconcile.
	existing, err := w.db.GetPaymentByPurchaseKey(ctx, rec.PurchaseKey)
	if err != nil {
		return fmt.Errorf("failed to look up payment for purchase key %s: %v", rec.PurchaseKey, err)
	}

	if existing != nil {
		if existing.Status == models.PaymentStatusComplete {
			log.Printf("Sale %s already recorded as complete, nothing to reconcile", rec.TransactionID)
			return nil
		}
		if err := w.db.UpdatePaymentStatus(ctx, existing.ID, models.PaymentStatusReconcile); err != nil {
			return fmt.Errorf("failed to flag payment %s for reconciliation: %v", existing.ID, err)
		}
		log.Printf("Flagged payment %s (sale %s) for reconciliation", existing.ID, rec.TransactionID)
		return nil
	}

	rec.Status = models.PaymentStatusReconcile
	if err := w.db.InsertPayment(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert reconcile record for sale %s: %v", rec.TransactionID, err)
	}

	note := fmt.Sprintf("PayLane Gateway Transaction ID: %s (recovered by reconcile worker)", rec.TransactionID)
	if err := w.db.AddPaymentNote(ctx, rec.ID, note); err != nil {
		log.Printf("Warning: failed to attach reconcile note to %s: %v", rec.ID, err)
	}

	log.Printf("Recovered captured sale %s into payment %s", rec.TransactionID, rec.ID)
	return nil
}

func paymentRecordFromJob(job *queue.Job) (*models.PaymentRecord, error) {
	stringField := func(key string) (string, error) {
		v, ok := job.Data[key].(string)
		if !ok || v == "" {
			return "", fmt.Errorf("invalid %s in job data", key)
		}
		return v, nil
	}

	paymentID, err := stringField("payment_id")
	if err != nil {
		return nil, err
	}
	purchaseKey, err := stringField("purchase_key")
	if err != nil {
		return nil, err
	}
	transactionID, err := stringField("transaction_id")
	if err != nil {
		return nil, err
	}
	currency, err := stringField("currency")
	if err != nil {
		return nil, err
	}

	email, _ := job.Data["email"].(string)
	buyerName, _ := job.Data["buyer_name"].(string)
	cartJSON, _ := job.Data["cart_json"].(string)
	price, _ := job.Data["price"].(float64)

	return &models.PaymentRecord{
		ID:            paymentID,
		PurchaseKey:   purchaseKey,
		Email:         email,
		BuyerName:     buyerName,
		Price:         price,
		Currency:      currency,
		TransactionID: transactionID,
		CartJSON:      cartJSON,
		Date:          job.CreatedAt,
	}, nil
}
