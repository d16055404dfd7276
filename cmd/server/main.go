package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/lakmicro/lending-engine/internal/config"
	"github.com/lakmicro/lending-engine/internal/handler"
	"github.com/lakmicro/lending-engine/internal/repository"
	"github.com/lakmicro/lending-engine/internal/service"
	"github.com/lakmicro/lending-engine/pkg/response"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Initialize service and handlers
	lendingService := service.NewLendingService(customerRepo, loanRepo, paymentRepo, redisClient, cfg)
	lendingHandler, err := handler.NewLendingHandler(lendingService)
	if err != nil {
		log.Fatalf("Failed to initialize handler: %v", err)
	}
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout())

	// Setup routes
	router := setupRoutes(lendingHandler, healthHandler)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      response.LoggingMiddleware(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	return sqlx.Connect("postgres", cfg.Database.URL)
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
	})
}

func setupRoutes(lendingHandler *handler.LendingHandler, healthHandler *handler.HealthHandler) *mux.Router {
	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/customers", lendingHandler.RegisterCustomer).Methods("POST")
	api.HandleFunc("/customers/{customerId}/verify", lendingHandler.VerifyCustomer).Methods("POST")

	api.HandleFunc("/loans", lendingHandler.CreateLoan).Methods("POST")
	api.HandleFunc("/loans/{loanId}/approve", lendingHandler.ApproveLoan).Methods("POST")
	api.HandleFunc("/loans/{loanId}/reject", lendingHandler.RejectLoan).Methods("POST")
	api.HandleFunc("/loans/{loanId}/disburse", lendingHandler.DisburseLoan).Methods("POST")
	api.HandleFunc("/loans/{loanId}/payment", lendingHandler.RecordPayment).Methods("POST")
	api.HandleFunc("/loans/{loanId}/payments/{paymentId}/reverse", lendingHandler.ReversePayment).Methods("POST")
	api.HandleFunc("/loans/{loanId}/outstanding", lendingHandler.GetOutstanding).Methods("GET")
	api.HandleFunc("/loans/{loanId}/schedule", lendingHandler.GetSchedule).Methods("GET")

	api.HandleFunc("/reports/collections", lendingHandler.CollectionReport).Methods("GET")

	return router
}
