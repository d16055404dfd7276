package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/lakmicro/lending-engine/internal/config"
	"github.com/lakmicro/lending-engine/internal/finance"
	"github.com/lakmicro/lending-engine/internal/repository"
	"github.com/lakmicro/lending-engine/internal/service"
)

func main() {
	log.Println("Starting lending scheduler...")

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	lendingService := service.NewLendingService(
		repository.NewCustomerRepository(db),
		repository.NewLoanRepository(db),
		repository.NewPaymentRepository(db),
		nil, // batch jobs read fresh state, no cache
		cfg,
	)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone %q: %v", cfg.Scheduler.Timezone, err)
	}

	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))
	setupCronJobs(c, lendingService)

	c.Start()
	log.Println("Scheduler started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	c.Stop()
	log.Println("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, lendingService *service.LendingService) {
	// Daily default sweep at midnight: flip overdue schedule rows and mark
	// loans past the missed-week threshold as defaulted.
	_, err := c.AddFunc("0 0 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		defaulted, err := lendingService.MarkDefaults(ctx)
		if err != nil {
			log.Printf("Default sweep failed: %v", err)
			return
		}
		log.Printf("Default sweep complete, %d loan(s) marked defaulted", defaulted)
	})
	if err != nil {
		log.Printf("Error scheduling default sweep job: %v", err)
	}

	// Morning collection report for field agents, Monday to Saturday.
	_, err = c.AddFunc("0 0 6 * * MON-SAT", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		report, err := lendingService.CollectionReport(ctx, finance.SortByPriority)
		if err != nil {
			log.Printf("Collection report failed: %v", err)
			return
		}
		for _, item := range report.Items {
			log.Printf("collect loan=%s priority=%s due=%s overdue_weeks=%d",
				item.LoanID, item.Priority, item.DueAmount.StringFixed(2), item.OverdueWeeks)
		}
		log.Printf("Collection report generated for %s with %d item(s)", report.GeneratedFor, len(report.Items))
	})
	if err != nil {
		log.Printf("Error scheduling collection report job: %v", err)
	}

	log.Println("Cron jobs scheduled successfully")
}
