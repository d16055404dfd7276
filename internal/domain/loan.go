package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LoanStatusPending   = "pending"
	LoanStatusApproved  = "approved"
	LoanStatusActive    = "active"
	LoanStatusCompleted = "completed"
	LoanStatusDefaulted = "defaulted"
	LoanStatusRejected  = "rejected"
)

const (
	MethodFlat            = "flat"
	MethodReducingBalance = "reducing_balance"
)

// Loan represents a loan aggregate: immutable terms fixed at creation plus
// the mutable repayment state.
type Loan struct {
	ID         uuid.UUID `json:"id" db:"id"`
	LoanID     string    `json:"loan_id" db:"loan_id"`
	CustomerID uuid.UUID `json:"customer_id" db:"customer_id"`

	// Terms, fixed once the loan is approved.
	Principal     decimal.Decimal `json:"principal" db:"principal"`
	InterestRate  decimal.Decimal `json:"interest_rate" db:"interest_rate"` // percent per week
	DurationWeeks int             `json:"duration_weeks" db:"duration_weeks"`
	Method        string          `json:"method" db:"method"`

	// Derived at creation, stored, never recomputed except for verification.
	InstallmentAmount decimal.Decimal `json:"installment_amount" db:"installment_amount"`
	TotalRepayment    decimal.Decimal `json:"total_repayment" db:"total_repayment"`
	TotalInterest     decimal.Decimal `json:"total_interest" db:"total_interest"`

	// Mutable state, owned by the aggregate.
	Status             string          `json:"status" db:"status"`
	PaidInstallments   int             `json:"paid_installments" db:"paid_installments"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance" db:"outstanding_balance"`
	PenaltyAccrued     decimal.Decimal `json:"penalty_accrued" db:"penalty_accrued"`
	StartDate          *time.Time      `json:"start_date,omitempty" db:"start_date"`
	NextDueDate        *time.Time      `json:"next_due_date,omitempty" db:"next_due_date"`
	Version            int64           `json:"version" db:"version"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsTerminal reports whether the loan can no longer change state.
func (l *Loan) IsTerminal() bool {
	switch l.Status {
	case LoanStatusCompleted, LoanStatusDefaulted, LoanStatusRejected:
		return true
	}
	return false
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	LoanID        string          `json:"loan_id" validate:"required"`
	CustomerID    string          `json:"customer_id" validate:"required,uuid"`
	Principal     decimal.Decimal `json:"principal" validate:"required"`
	InterestRate  decimal.Decimal `json:"interest_rate"`
	DurationWeeks int             `json:"duration_weeks" validate:"required,gt=0"`
	Method        string          `json:"method" validate:"required,oneof=flat reducing_balance"`
}

type CreateLoanResponse struct {
	Loan *Loan `json:"loan"`
}

type DisburseLoanResponse struct {
	Loan     *Loan           `json:"loan"`
	Schedule []*LoanSchedule `json:"schedule"`
}

type OutstandingResponse struct {
	LoanID      string          `json:"loan_id"`
	Outstanding decimal.Decimal `json:"outstanding"`
	PenaltyDue  decimal.Decimal `json:"penalty_due"`
	DueAmount   decimal.Decimal `json:"due_amount"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
}
