package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment types are derived from the comparison against the due amount at
// collection time, never user-supplied.
const (
	PaymentTypeRegular    = "regular"
	PaymentTypePartial    = "partial"
	PaymentTypeAdvance    = "advance"
	PaymentTypePenalty    = "penalty"
	PaymentTypeSettlement = "settlement"
)

// Payment is an append-only collection record. An incorrect payment is
// corrected by a new offsetting record referencing the original, never by
// editing in place.
type Payment struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	LoanID      string          `json:"loan_id" db:"loan_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	PaymentDate time.Time       `json:"payment_date" db:"payment_date"`
	PaymentType string          `json:"payment_type" db:"payment_type"`

	// Allocation buckets; they always sum to Amount.
	AllocPrincipal decimal.Decimal `json:"alloc_principal" db:"alloc_principal"`
	AllocInterest  decimal.Decimal `json:"alloc_interest" db:"alloc_interest"`
	AllocPenalty   decimal.Decimal `json:"alloc_penalty" db:"alloc_penalty"`
	AllocAdvance   decimal.Decimal `json:"alloc_advance" db:"alloc_advance"`

	ReversesPaymentID *uuid.UUID `json:"reverses_payment_id,omitempty" db:"reverses_payment_id"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
}

// IsReversal reports whether this record offsets an earlier payment.
func (p *Payment) IsReversal() bool {
	return p.ReversesPaymentID != nil
}

type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	PaymentDate string          `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
}

type RecordPaymentResponse struct {
	Payment     *Payment        `json:"payment"`
	Outstanding decimal.Decimal `json:"outstanding"`
	LoanStatus  string          `json:"loan_status"`
}
