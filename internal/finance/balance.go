package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lakmicro/lending-engine/internal/domain"
	customError "github.com/lakmicro/lending-engine/pkg/errors"
	"github.com/lakmicro/lending-engine/pkg/utils"
)

// BalanceInput is an immutable snapshot of a loan's terms and repayment
// position. The caller supplies the currently persisted state; the engine
// never reads or writes anywhere else.
type BalanceInput struct {
	Principal         decimal.Decimal
	InterestRate      decimal.Decimal // percent per week
	DurationWeeks     int
	Method            string
	InstallmentAmount decimal.Decimal
	TotalRepayment    decimal.Decimal
	TotalInterest     decimal.Decimal

	PaidInstallments int

	// StartDate drives the due schedule; a zero StartDate means the loan is
	// not yet disbursed and no penalty can accrue.
	StartDate time.Time
	AsOf      time.Time

	// PenaltyRate is the percentage of one installment charged per overdue
	// week. Supplied by the caller (configuration), never hardcoded here.
	PenaltyRate decimal.Decimal
}

// InstallmentSplit is the principal/interest breakdown of one paid
// installment.
type InstallmentSplit struct {
	Week      int
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Balance   decimal.Decimal // outstanding after this installment
}

// BalanceResult is the computed repayment position.
type BalanceResult struct {
	OutstandingBalance decimal.Decimal
	Splits             []InstallmentSplit
	PenaltyDue         decimal.Decimal
	OverdueWeeks       int

	// ExcessPaid reports over-payment beyond the full schedule, available
	// for advance allocation instead of driving the balance negative.
	ExcessPaid decimal.Decimal

	// Split of the next unpaid installment, zero once the schedule is done.
	// The allocator needs these to satisfy interest before principal.
	NextInterestDue  decimal.Decimal
	NextPrincipalDue decimal.Decimal

	// DueInterest is the interest portion of every installment that has
	// fallen due and is unpaid (at least the next one). A loan several weeks
	// behind owes several installments' interest, not just the next week's.
	DueInterest decimal.Decimal
}

// BalanceInputFromLoan builds a BalanceInput from a persisted loan record.
func BalanceInputFromLoan(loan *domain.Loan, penaltyRate decimal.Decimal, asOf time.Time) BalanceInput {
	in := BalanceInput{
		Principal:         loan.Principal,
		InterestRate:      loan.InterestRate,
		DurationWeeks:     loan.DurationWeeks,
		Method:            loan.Method,
		InstallmentAmount: loan.InstallmentAmount,
		TotalRepayment:    loan.TotalRepayment,
		TotalInterest:     loan.TotalInterest,
		PaidInstallments:  loan.PaidInstallments,
		AsOf:              asOf,
		PenaltyRate:       penaltyRate,
	}
	if loan.StartDate != nil {
		in.StartDate = *loan.StartDate
	}
	return in
}

// ComputeBalance computes the outstanding balance, the per-installment
// principal/interest split for installments paid so far, and accrued
// penalties for overdue installments.
//
// FLAT loans carry their interest pre-allocated evenly across the term, so
// the outstanding balance is simply totalRepayment minus what the schedule
// says has been paid. REDUCING_BALANCE loans are walked installment by
// installment, charging interest on the running principal.
func ComputeBalance(in BalanceInput) (BalanceResult, error) {
	if in.PaidInstallments < 0 {
		return BalanceResult{}, customError.WrapInconsistentLoanState(
			fmt.Sprintf("negative paid installment count %d", in.PaidInstallments))
	}
	if in.DurationWeeks < 1 {
		return BalanceResult{}, customError.WrapInconsistentLoanState(
			fmt.Sprintf("non-positive duration %d", in.DurationWeeks))
	}

	paid := in.PaidInstallments
	coveredWeeks := paid
	if coveredWeeks > in.DurationWeeks {
		coveredWeeks = in.DurationWeeks
	}

	var res BalanceResult
	var err error
	switch in.Method {
	case domain.MethodFlat:
		res, err = flatBalance(in, coveredWeeks)
	case domain.MethodReducingBalance:
		res, err = reducingBalance(in, coveredWeeks)
	default:
		return BalanceResult{}, customError.WrapInconsistentLoanState("unknown interest method: " + in.Method)
	}
	if err != nil {
		return BalanceResult{}, err
	}

	if paid > in.DurationWeeks {
		extra := decimal.NewFromInt(int64(paid - in.DurationWeeks))
		res.ExcessPaid = in.InstallmentAmount.Mul(extra)
		res.OutstandingBalance = decimal.Zero
		res.NextInterestDue = decimal.Zero
		res.NextPrincipalDue = decimal.Zero
	}

	res.PenaltyDue, res.OverdueWeeks = accruePenalty(in)
	res.DueInterest = dueInterest(in, res)
	return res, nil
}

// dueInterest sums the interest portions of the installments currently due
// and unpaid. For flat loans each carries the same even share; for reducing
// balance the running principal is walked forward one installment at a time.
func dueInterest(in BalanceInput, res BalanceResult) decimal.Decimal {
	if in.PaidInstallments >= in.DurationWeeks {
		return decimal.Zero
	}
	weeks := res.OverdueWeeks
	if weeks < 1 {
		weeks = 1
	}
	if remaining := in.DurationWeeks - in.PaidInstallments; weeks > remaining {
		weeks = remaining
	}

	if in.Method == domain.MethodFlat {
		return res.NextInterestDue.Mul(decimal.NewFromInt(int64(weeks)))
	}

	rate := in.InterestRate.Div(oneHundred)
	running := res.OutstandingBalance
	total := decimal.Zero
	for i := 0; i < weeks && running.IsPositive(); i++ {
		interest := running.Mul(rate).Round(2)
		total = total.Add(interest)
		running = running.Sub(in.InstallmentAmount.Sub(interest))
	}
	return total
}

func flatBalance(in BalanceInput, coveredWeeks int) (BalanceResult, error) {
	installment := in.InstallmentAmount
	perWeekInterest := in.TotalInterest.Div(decimal.NewFromInt(int64(in.DurationWeeks))).Round(2)

	splits := make([]InstallmentSplit, 0, coveredWeeks)
	balance := in.TotalRepayment
	for week := 1; week <= coveredWeeks; week++ {
		balance = balance.Sub(installment)
		if balance.IsNegative() {
			// Installment rounding can leave at most one minor unit of
			// drift per period; anything beyond that is a bookkeeping bug
			// upstream and must not be masked.
			drift := tolerance.Mul(decimal.NewFromInt(int64(in.DurationWeeks)))
			if balance.Neg().GreaterThan(drift) {
				return BalanceResult{}, customError.WrapInconsistentLoanState(
					fmt.Sprintf("flat balance went negative (%s) at week %d", balance.String(), week))
			}
			balance = decimal.Zero
		}
		splits = append(splits, InstallmentSplit{
			Week:      week,
			Interest:  perWeekInterest,
			Principal: installment.Sub(perWeekInterest),
			Balance:   balance,
		})
	}

	res := BalanceResult{
		OutstandingBalance: balance,
		Splits:             splits,
	}
	if coveredWeeks < in.DurationWeeks {
		res.NextInterestDue = perWeekInterest
		res.NextPrincipalDue = installment.Sub(perWeekInterest)
	}
	return res, nil
}

func reducingBalance(in BalanceInput, coveredWeeks int) (BalanceResult, error) {
	rate := in.InterestRate.Div(oneHundred)
	installment := in.InstallmentAmount

	splits := make([]InstallmentSplit, 0, coveredWeeks)
	running := in.Principal
	for week := 1; week <= coveredWeeks; week++ {
		interest := running.Mul(rate).Round(2)
		principal := installment.Sub(interest)
		running = running.Sub(principal)
		if running.IsNegative() {
			running = decimal.Zero
		}
		splits = append(splits, InstallmentSplit{
			Week:      week,
			Interest:  interest,
			Principal: principal,
			Balance:   running,
		})
	}
	if coveredWeeks == in.DurationWeeks && running.LessThanOrEqual(tolerance.Mul(decimal.NewFromInt(int64(in.DurationWeeks)))) {
		// Terminal rounding residue, the schedule is complete.
		running = decimal.Zero
		if n := len(splits); n > 0 {
			splits[n-1].Balance = decimal.Zero
		}
	}

	res := BalanceResult{
		OutstandingBalance: running,
		Splits:             splits,
	}
	if coveredWeeks < in.DurationWeeks && running.IsPositive() {
		res.NextInterestDue = running.Mul(rate).Round(2)
		res.NextPrincipalDue = installment.Sub(res.NextInterestDue)
	}
	return res, nil
}

// accruePenalty charges PenaltyRate percent of one installment per overdue
// week, per overdue installment, as of the snapshot time. Penalty is
// additive and tracked separately from outstanding principal and interest.
func accruePenalty(in BalanceInput) (decimal.Decimal, int) {
	if in.StartDate.IsZero() {
		return decimal.Zero, 0
	}

	asOf := in.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	expected := utils.ElapsedWeeks(in.StartDate, asOf)
	if expected > in.DurationWeeks {
		expected = in.DurationWeeks
	}
	overdue := expected - in.PaidInstallments
	if overdue <= 0 {
		return decimal.Zero, 0
	}

	if in.PenaltyRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, overdue
	}

	perWeek := in.PenaltyRate.Div(oneHundred)
	total := decimal.Zero
	for week := in.PaidInstallments + 1; week <= expected; week++ {
		dueDate := utils.CalculateDueDate(in.StartDate, week)
		periods := utils.WeeksOverdue(dueDate, asOf)
		if periods == 0 {
			continue
		}
		total = total.Add(in.InstallmentAmount.Mul(perWeek).Mul(decimal.NewFromInt(int64(periods))))
	}
	return total.Round(2), overdue
}
