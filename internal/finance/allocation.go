package finance

import (
	"github.com/shopspring/decimal"

	"github.com/lakmicro/lending-engine/internal/domain"
	customError "github.com/lakmicro/lending-engine/pkg/errors"
)

// AllocationInput is the collection position at the moment a payment is
// submitted, as computed by ComputeBalance from the currently persisted
// state.
type AllocationInput struct {
	DueAmount          decimal.Decimal
	PaymentAmount      decimal.Decimal
	OutstandingBalance decimal.Decimal
	PenaltyDue         decimal.Decimal

	// InterestDue is the interest portion of all installments currently due
	// and unpaid; the waterfall satisfies it before touching principal.
	InterestDue decimal.Decimal
}

// Allocation splits a payment across the four buckets. The buckets always
// sum to the payment amount exactly.
type Allocation struct {
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Penalty   decimal.Decimal `json:"penalty"`
	Advance   decimal.Decimal `json:"advance"`
}

// Total returns the sum of all buckets.
func (a Allocation) Total() decimal.Decimal {
	return a.Principal.Add(a.Interest).Add(a.Penalty).Add(a.Advance)
}

// ClassifyAndAllocate derives the payment type from the amount due at
// collection time and allocates the paid amount in strict waterfall order:
// penalty, then the interest portion of the current installment, then its
// principal portion, with any remainder credited as an advance against the
// next installment.
//
// Classification, first match wins:
//  1. equal to the due amount (within one minor unit)  -> REGULAR
//  2. below the due amount                              -> PARTIAL
//  3. above it and clears the whole remaining balance   -> SETTLEMENT
//  4. above it otherwise                                -> ADVANCE
func ClassifyAndAllocate(in AllocationInput) (string, Allocation, error) {
	if in.PaymentAmount.LessThanOrEqual(decimal.Zero) {
		return "", Allocation{}, customError.WrapInvalidPaymentAmount(in.PaymentAmount.String())
	}

	paymentType := classify(in)

	alloc := Allocation{}
	remaining := in.PaymentAmount

	alloc.Penalty = decimal.Min(remaining, maxZero(in.PenaltyDue))
	remaining = remaining.Sub(alloc.Penalty)

	alloc.Interest = decimal.Min(remaining, maxZero(in.InterestDue))
	remaining = remaining.Sub(alloc.Interest)

	if paymentType == domain.PaymentTypeSettlement {
		// The loan closes; everything left retires principal, there is no
		// future installment for an advance to credit.
		alloc.Principal = remaining
		remaining = decimal.Zero
	} else {
		principalDue := maxZero(in.DueAmount.Sub(in.InterestDue))
		alloc.Principal = decimal.Min(remaining, principalDue)
		remaining = remaining.Sub(alloc.Principal)
	}
	alloc.Advance = remaining

	// Reconcile so the buckets sum to the payment exactly; any rounding
	// remainder lands in principal rather than being dropped.
	if diff := in.PaymentAmount.Sub(alloc.Total()); !diff.IsZero() {
		alloc.Principal = alloc.Principal.Add(diff)
	}

	return paymentType, alloc, nil
}

func classify(in AllocationInput) string {
	// Amounts are already rounded to the minor unit, so "within rounding
	// tolerance" means strictly inside one cent: one cent off is a
	// different classification.
	diff := in.PaymentAmount.Sub(in.DueAmount)
	switch {
	case diff.Abs().LessThan(tolerance):
		return domain.PaymentTypeRegular
	case diff.IsNegative():
		return domain.PaymentTypePartial
	case in.PaymentAmount.GreaterThan(in.OutstandingBalance.Add(maxZero(in.PenaltyDue)).Sub(tolerance)):
		return domain.PaymentTypeSettlement
	default:
		return domain.PaymentTypeAdvance
	}
}

func maxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
