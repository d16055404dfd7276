// Package finance holds the loan financial engine: term calculation,
// outstanding balance amortization, payment classification and allocation,
// and collection prioritization. Everything here is pure computation over
// caller-supplied snapshots; no I/O, no shared state.
package finance

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/lakmicro/lending-engine/internal/domain"
	customError "github.com/lakmicro/lending-engine/pkg/errors"
)

var (
	oneHundred = decimal.NewFromInt(100)
	tolerance  = decimal.New(1, -2) // one minor currency unit
)

// Terms holds the monetary figures derived once at loan creation.
type Terms struct {
	InstallmentAmount decimal.Decimal
	TotalRepayment    decimal.Decimal
	TotalInterest     decimal.Decimal
}

// ComputeTerms derives the installment amount, total repayment and total
// interest for a loan. interestRate is the percentage per week; converting
// an annual rate to weekly is the caller's concern.
//
// FLAT applies the rate once to the original principal for the full term.
// REDUCING_BALANCE uses the standard amortizing-annuity formula on the
// weekly rate. Monetary results are rounded half-up to two decimal places
// once, at the end of each formula.
func ComputeTerms(principal, interestRate decimal.Decimal, durationWeeks int, method string) (Terms, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return Terms{}, customError.WrapInvalidLoanParameters("principal must be positive")
	}
	if durationWeeks < 1 {
		return Terms{}, customError.WrapInvalidLoanParameters("duration must be at least one week")
	}
	if interestRate.IsNegative() {
		return Terms{}, customError.WrapInvalidLoanParameters("interest rate must not be negative")
	}

	weeks := decimal.NewFromInt(int64(durationWeeks))

	switch method {
	case domain.MethodFlat:
		totalInterest := principal.Mul(interestRate).Div(oneHundred).Round(2)
		totalRepayment := principal.Add(totalInterest)
		installment := totalRepayment.Div(weeks).Round(2)
		return Terms{
			InstallmentAmount: installment,
			TotalRepayment:    totalRepayment,
			TotalInterest:     totalInterest,
		}, nil

	case domain.MethodReducingBalance:
		rate := interestRate.Div(oneHundred)
		var installment decimal.Decimal
		if rate.IsZero() {
			installment = principal.Div(weeks).Round(2)
		} else {
			// P * r * (1+r)^n / ((1+r)^n - 1), computed with float64 for
			// the power term, decimal for the monetary result.
			r := rate.InexactFloat64()
			factor := math.Pow(1+r, float64(durationWeeks))
			raw := principal.InexactFloat64() * r * factor / (factor - 1)
			installment = decimal.NewFromFloat(raw).Round(2)
		}
		totalRepayment := installment.Mul(weeks).Round(2)
		totalInterest := totalRepayment.Sub(principal)
		if totalInterest.IsNegative() {
			totalInterest = decimal.Zero
		}
		return Terms{
			InstallmentAmount: installment,
			TotalRepayment:    totalRepayment,
			TotalInterest:     totalInterest,
		}, nil

	default:
		return Terms{}, customError.WrapInvalidLoanParameters("unknown interest method: " + method)
	}
}

// VerifyTerms re-derives the terms and checks the stored figures against
// them within rounding tolerance. Used to detect tampered or corrupted loan
// records before trusting their stored amounts.
func VerifyTerms(loan *domain.Loan) error {
	terms, err := ComputeTerms(loan.Principal, loan.InterestRate, loan.DurationWeeks, loan.Method)
	if err != nil {
		return err
	}
	if !withinTolerance(terms.InstallmentAmount, loan.InstallmentAmount) ||
		!withinTolerance(terms.TotalRepayment, loan.TotalRepayment) ||
		!withinTolerance(terms.TotalInterest, loan.TotalInterest) {
		return customError.WrapInconsistentLoanState("stored terms do not match recomputed terms for loan " + loan.LoanID)
	}
	return nil
}

func withinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}
