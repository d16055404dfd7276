package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lakmicro/lending-engine/internal/domain"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	// Create creates a new customer
	Create(ctx context.Context, customer *domain.Customer) error

	// GetByID retrieves a customer by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)

	// GetByNIC retrieves a customer by NIC number
	GetByNIC(ctx context.Context, nic string) (*domain.Customer, error)

	// UpdateStatus updates the KYC status of a customer
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// Create creates a new loan
	Create(ctx context.Context, loan *domain.Loan) error

	// GetByLoanID retrieves a loan by its loan ID
	GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error)

	// ListByStatus lists loans in a given status
	ListByStatus(ctx context.Context, status string) ([]*domain.Loan, error)

	// UpdateState persists mutable loan state with an optimistic-concurrency
	// check: the update only applies if the stored version still equals
	// expectedVersion. Returns sql.ErrNoRows on a version mismatch.
	UpdateState(ctx context.Context, loan *domain.Loan, expectedVersion int64) error

	// CreateSchedule creates loan schedule entries
	CreateSchedule(ctx context.Context, schedules []*domain.LoanSchedule) error

	// GetScheduleByLoanID retrieves loan schedule by loan ID
	GetScheduleByLoanID(ctx context.Context, loanID string) ([]*domain.LoanSchedule, error)

	// UpdateScheduleStatus updates the status of a specific schedule entry
	UpdateScheduleStatus(ctx context.Context, loanID string, weekNumber int, status string) error

	// MarkOverdueSchedules flips pending entries past their due date to
	// overdue, returning the affected row count
	MarkOverdueSchedules(ctx context.Context, currentDate time.Time) (int64, error)
}

// PaymentRepository defines the interface for payment data operations.
// Payments are append-only; there is no update or delete.
type PaymentRepository interface {
	// Create creates a new payment record
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves one payment
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)

	// GetByLoanID retrieves all payments for a loan, oldest first
	GetByLoanID(ctx context.Context, loanID string) ([]*domain.Payment, error)

	// GetTotalPaid sums the net amount paid for a loan (reversals subtract)
	GetTotalPaid(ctx context.Context, loanID string) (decimal.Decimal, error)

	// HasReversal reports whether a payment already has an offsetting record
	HasReversal(ctx context.Context, paymentID uuid.UUID) (bool, error)
}
