package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakmicro/lending-engine/internal/domain"
	customError "github.com/lakmicro/lending-engine/pkg/errors"
)

func flatInput(paid int) BalanceInput {
	// 100000 at 15% flat over 52 weeks: installment 2211.54, total 115000
	return BalanceInput{
		Principal:         decimal.NewFromInt(100000),
		InterestRate:      decimal.NewFromInt(15),
		DurationWeeks:     52,
		Method:            domain.MethodFlat,
		InstallmentAmount: decimal.NewFromFloat(2211.54),
		TotalRepayment:    decimal.NewFromInt(115000),
		TotalInterest:     decimal.NewFromInt(15000),
		PaidInstallments:  paid,
	}
}

func reducingInput(paid int) BalanceInput {
	// 1000 at 10% weekly over 2 weeks: installment 576.19
	return BalanceInput{
		Principal:         decimal.NewFromInt(1000),
		InterestRate:      decimal.NewFromInt(10),
		DurationWeeks:     2,
		Method:            domain.MethodReducingBalance,
		InstallmentAmount: decimal.NewFromFloat(576.19),
		TotalRepayment:    decimal.NewFromFloat(1152.38),
		TotalInterest:     decimal.NewFromFloat(152.38),
		PaidInstallments:  paid,
	}
}

func TestComputeBalanceFlat(t *testing.T) {
	result, err := ComputeBalance(flatInput(4))

	require.NoError(t, err)
	// 115000 - 4 * 2211.54
	assert.True(t, result.OutstandingBalance.Equal(decimal.NewFromFloat(106153.84)),
		"got %v", result.OutstandingBalance)
	require.Len(t, result.Splits, 4)
	// Flat interest is pre-allocated evenly: 15000 / 52 per week.
	for _, split := range result.Splits {
		assert.True(t, split.Interest.Equal(decimal.NewFromFloat(288.46)))
		assert.True(t, split.Principal.Equal(decimal.NewFromFloat(1923.08)))
	}
	assert.True(t, result.NextInterestDue.Equal(decimal.NewFromFloat(288.46)))
}

func TestComputeBalanceFlatFullTerm(t *testing.T) {
	result, err := ComputeBalance(flatInput(52))

	require.NoError(t, err)
	// 52 * 2211.54 overshoots 115000 by 0.08 of installment rounding; the
	// balance clamps to zero instead of surfacing a phantom inconsistency.
	assert.True(t, result.OutstandingBalance.IsZero(), "got %v", result.OutstandingBalance)
	assert.True(t, result.NextInterestDue.IsZero())
}

func TestComputeBalanceReducing(t *testing.T) {
	result, err := ComputeBalance(reducingInput(1))

	require.NoError(t, err)
	require.Len(t, result.Splits, 1)
	assert.True(t, result.Splits[0].Interest.Equal(decimal.NewFromInt(100)), "got %v", result.Splits[0].Interest)
	assert.True(t, result.Splits[0].Principal.Equal(decimal.NewFromFloat(476.19)))
	assert.True(t, result.OutstandingBalance.Equal(decimal.NewFromFloat(523.81)), "got %v", result.OutstandingBalance)
	// Next installment charges interest on the reduced balance only.
	assert.True(t, result.NextInterestDue.Equal(decimal.NewFromFloat(52.38)), "got %v", result.NextInterestDue)

	final, err := ComputeBalance(reducingInput(2))
	require.NoError(t, err)
	assert.True(t, final.OutstandingBalance.IsZero(), "got %v", final.OutstandingBalance)
}

// The reducing balance must strictly decrease with every paid installment
// and reach zero exactly at the end of the schedule.
func TestComputeBalanceReducingMonotonic(t *testing.T) {
	terms, err := ComputeTerms(decimal.NewFromInt(100000), decimal.NewFromFloat(0.5), 10, domain.MethodReducingBalance)
	require.NoError(t, err)

	input := BalanceInput{
		Principal:         decimal.NewFromInt(100000),
		InterestRate:      decimal.NewFromFloat(0.5),
		DurationWeeks:     10,
		Method:            domain.MethodReducingBalance,
		InstallmentAmount: terms.InstallmentAmount,
		TotalRepayment:    terms.TotalRepayment,
		TotalInterest:     terms.TotalInterest,
	}

	previous := input.Principal.Add(decimal.NewFromInt(1))
	for paid := 0; paid <= 10; paid++ {
		input.PaidInstallments = paid
		result, err := ComputeBalance(input)
		require.NoError(t, err)

		assert.True(t, result.OutstandingBalance.LessThan(previous),
			"balance after %d installments (%v) not below previous (%v)", paid, result.OutstandingBalance, previous)
		previous = result.OutstandingBalance
	}
	assert.True(t, previous.IsZero(), "balance after full term is %v", previous)
}

func TestComputeBalanceOverpayment(t *testing.T) {
	result, err := ComputeBalance(flatInput(55))

	require.NoError(t, err)
	assert.True(t, result.OutstandingBalance.IsZero())
	// Three extra installments are available for advance allocation.
	assert.True(t, result.ExcessPaid.Equal(decimal.NewFromFloat(2211.54).Mul(decimal.NewFromInt(3))),
		"got %v", result.ExcessPaid)
}

func TestComputeBalanceInconsistentState(t *testing.T) {
	t.Run("negative paid installments", func(t *testing.T) {
		_, err := ComputeBalance(flatInput(-1))
		assert.ErrorIs(t, err, customError.ErrInconsistentLoanState)
	})

	t.Run("flat balance driven negative", func(t *testing.T) {
		input := flatInput(10)
		// A corrupted total that the paid installments overrun by far more
		// than rounding drift must surface, not be masked.
		input.TotalRepayment = decimal.NewFromInt(10000)
		_, err := ComputeBalance(input)
		assert.ErrorIs(t, err, customError.ErrInconsistentLoanState)
	})
}

func TestComputeBalanceDueInterest(t *testing.T) {
	t.Run("current loan owes one installment's interest", func(t *testing.T) {
		result, err := ComputeBalance(flatInput(4))

		require.NoError(t, err)
		assert.True(t, result.DueInterest.Equal(decimal.NewFromFloat(288.46)), "got %v", result.DueInterest)
	})

	t.Run("flat arrears owe the even share per overdue week", func(t *testing.T) {
		input := flatInput(0)
		input.StartDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		input.AsOf = time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC) // two installments due

		result, err := ComputeBalance(input)

		require.NoError(t, err)
		assert.Equal(t, 2, result.OverdueWeeks)
		// 2 * 288.46, not just the next installment's share.
		assert.True(t, result.DueInterest.Equal(decimal.NewFromFloat(576.92)), "got %v", result.DueInterest)
	})

	t.Run("reducing arrears walk the declining balance", func(t *testing.T) {
		input := reducingInput(0)
		input.StartDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		input.AsOf = time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC) // both installments due

		result, err := ComputeBalance(input)

		require.NoError(t, err)
		assert.Equal(t, 2, result.OverdueWeeks)
		// Week 1 charges 100.00 on 1000, week 2 charges 52.38 on 523.81,
		// together the full 152.38 of contract interest.
		assert.True(t, result.DueInterest.Equal(decimal.NewFromFloat(152.38)), "got %v", result.DueInterest)
	})

	t.Run("zero once the schedule is done", func(t *testing.T) {
		result, err := ComputeBalance(flatInput(52))

		require.NoError(t, err)
		assert.True(t, result.DueInterest.IsZero())
	})
}

func TestComputeBalancePenaltyAccrual(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)

	input := BalanceInput{
		Principal:         decimal.NewFromInt(50000),
		InterestRate:      decimal.NewFromInt(10),
		DurationWeeks:     50,
		Method:            domain.MethodFlat,
		InstallmentAmount: decimal.NewFromInt(1000),
		TotalRepayment:    decimal.NewFromInt(55000),
		TotalInterest:     decimal.NewFromInt(5000),
		PaidInstallments:  0,
		StartDate:         start,
		AsOf:              asOf,
		PenaltyRate:       decimal.NewFromInt(2),
	}

	result, err := ComputeBalance(input)

	require.NoError(t, err)
	assert.Equal(t, 2, result.OverdueWeeks)
	// Week 1 (due Jan 8) is 8 days late, two overdue periods; week 2 (due
	// Jan 15) is one day late, one period. 1000 * 2% * 3 = 60.
	assert.True(t, result.PenaltyDue.Equal(decimal.NewFromInt(60)), "got %v", result.PenaltyDue)
}

func TestComputeBalanceNoPenaltyBeforeDisbursement(t *testing.T) {
	input := flatInput(0)
	input.PenaltyRate = decimal.NewFromInt(2)

	result, err := ComputeBalance(input)

	require.NoError(t, err)
	assert.True(t, result.PenaltyDue.IsZero())
	assert.Zero(t, result.OverdueWeeks)
}

func TestComputeBalancePenaltyAfterCatchUp(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)

	input := flatInput(2)
	input.StartDate = start
	input.AsOf = asOf
	input.PenaltyRate = decimal.NewFromInt(2)

	result, err := ComputeBalance(input)

	require.NoError(t, err)
	assert.True(t, result.PenaltyDue.IsZero(), "got %v", result.PenaltyDue)
	assert.Zero(t, result.OverdueWeeks)
}
