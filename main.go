package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"paylane-payment-api/config"
	"paylane-payment-api/database"
	"paylane-payment-api/handlers"
	"paylane-payment-api/middleware"
	"paylane-payment-api/queue"
	"paylane-payment-api/services/auth"
	"paylane-payment-api/services/email"
	"paylane-payment-api/services/payment"
	"paylane-payment-api/services/payment/paylane"
	"paylane-payment-api/worker"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds | log.LUTC)
	log.Println("Starting PayLane payment API...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := connectWithRetry(cfg.Database, 5)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connection established")

	jobQueue, err := queue.NewQueue(cfg.Redis.URL, "payment_jobs")
	if err != nil {
		log.Fatalf("Failed to initialize job queue: %v", err)
	}
	defer jobQueue.Close()
	log.Println("Job queue initialized")

	rateLimiter, err := middleware.NewRateLimiter(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("Failed to initialize rate limiter: %v", err)
	}
	defer rateLimiter.Close()

	gateway := paylane.NewClient(cfg.PayLane)
	orchestrator := payment.NewService(gateway, db, db)
	orchestrator.SetReconcileQueue(jobQueue)

	if cfg.SMTP.Host != "" {
		orchestrator.SetReceiptSender(email.NewSMTPService(cfg.SMTP))
		log.Println("Receipt emails enabled")
	} else {
		log.Println("SMTP_HOST not set, receipt emails disabled")
	}

	concurrency := cfg.Redis.WorkerConcurrency
	if concurrency < 2 {
		concurrency = 2
	}
	if concurrency > 8 {
		concurrency = 8
	}
	reconcileWorker := worker.NewWorker(jobQueue, db)
	reconcileWorker.Start(concurrency)
	log.Printf("Reconcile worker started with concurrency %d", concurrency)

	errorStore := handlers.NewErrorStore(cfg.Session.Secret)
	paymentHandler, err := handlers.NewPaymentHandler(db, orchestrator, errorStore)
	if err != nil {
		log.Fatalf("Failed to create payment handler: %v", err)
	}

	jwtService := auth.NewJWTService(cfg.Admin.JWTSecret, "paylane-payment-api")
	adminHandler := handlers.NewAdminHandler(db, jobQueue, jwtService, cfg.Admin.APISecret)

	router := mux.NewRouter()
	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)
	router.Use(middleware.SecurityHeadersMiddleware)
	router.Use(rateLimiter.RateLimitMiddleware())

	router.HandleFunc("/api/process-payment", paymentHandler.ProcessPayment).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/payment-status", paymentHandler.CheckPaymentStatus).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/checkout/errors", errorStore.GetCheckoutErrors).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/admin/token", adminHandler.IssueToken).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/health", healthHandler(db, jobQueue)).Methods("GET")

	adminRouter := router.PathPrefix("/api/admin").Subrouter()
	adminRouter.Use(middleware.AuthMiddleware(jwtService))
	adminRouter.HandleFunc("/payments", adminHandler.ListPayments).Methods("GET", "OPTIONS")
	adminRouter.HandleFunc("/gateway-errors", adminHandler.ListGatewayErrors).Methods("GET", "OPTIONS")
	adminRouter.HandleFunc("/reconcile/retry", adminHandler.RetryReconcileJob).Methods("POST", "OPTIONS")

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	reconcileWorker.Stop()
	log.Println("Shutdown complete")
}

func connectWithRetry(cfg database.DatabaseConfig, attempts int) (*database.Connection, error) {
	var db *database.Connection
	var err error

	for i := 1; i <= attempts; i++ {
		db, err = database.NewConnection(cfg)
		if err == nil {
			return db, nil
		}
		log.Printf("Database connection attempt %d/%d failed: %v", i, attempts, err)
		time.Sleep(time.Duration(i) * 2 * time.Second)
	}
	return nil, err
}

func healthHandler(db *database.Connection, q *queue.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := "healthy"
		checks := map[string]string{
			"database": "ok",
			"redis":    "ok",
		}

		if err := db.Ping(); err != nil {
			checks["database"] = "unreachable"
			status = "degraded"
		}
		if err := q.Client().Ping(ctx).Err(); err != nil {
			checks["redis"] = "unreachable"
			status = "degraded"
		}

		code := http.StatusOK
		if status != "healthy" {
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": status,
			"checks": checks,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
