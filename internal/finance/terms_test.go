package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakmicro/lending-engine/internal/domain"
	customError "github.com/lakmicro/lending-engine/pkg/errors"
)

func TestComputeTerms(t *testing.T) {
	tests := []struct {
		name                string
		principal           decimal.Decimal
		rate                decimal.Decimal
		weeks               int
		method              string
		expectedInstallment decimal.Decimal
		expectedTotal       decimal.Decimal
		expectedInterest    decimal.Decimal
	}{
		{
			name:                "flat standard loan",
			principal:           decimal.NewFromInt(100000),
			rate:                decimal.NewFromInt(15),
			weeks:               52,
			method:              domain.MethodFlat,
			expectedInstallment: decimal.NewFromFloat(2211.54),
			expectedTotal:       decimal.NewFromInt(115000),
			expectedInterest:    decimal.NewFromInt(15000),
		},
		{
			name:                "flat zero rate",
			principal:           decimal.NewFromInt(5200),
			rate:                decimal.Zero,
			weeks:               52,
			method:              domain.MethodFlat,
			expectedInstallment: decimal.NewFromInt(100),
			expectedTotal:       decimal.NewFromInt(5200),
			expectedInterest:    decimal.Zero,
		},
		{
			name:                "reducing balance two weeks",
			principal:           decimal.NewFromInt(1000),
			rate:                decimal.NewFromInt(10),
			weeks:               2,
			method:              domain.MethodReducingBalance,
			expectedInstallment: decimal.NewFromFloat(576.19),
			expectedTotal:       decimal.NewFromFloat(1152.38),
			expectedInterest:    decimal.NewFromFloat(152.38),
		},
		{
			name:                "reducing balance zero rate",
			principal:           decimal.NewFromInt(5200),
			rate:                decimal.Zero,
			weeks:               52,
			method:              domain.MethodReducingBalance,
			expectedInstallment: decimal.NewFromInt(100),
			expectedTotal:       decimal.NewFromInt(5200),
			expectedInterest:    decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms, err := ComputeTerms(tt.principal, tt.rate, tt.weeks, tt.method)

			require.NoError(t, err)
			assert.True(t, terms.InstallmentAmount.Equal(tt.expectedInstallment),
				"installment: expected %v, got %v", tt.expectedInstallment, terms.InstallmentAmount)
			assert.True(t, terms.TotalRepayment.Equal(tt.expectedTotal),
				"total repayment: expected %v, got %v", tt.expectedTotal, terms.TotalRepayment)
			assert.True(t, terms.TotalInterest.Equal(tt.expectedInterest),
				"total interest: expected %v, got %v", tt.expectedInterest, terms.TotalInterest)
		})
	}
}

func TestComputeTermsInvalidParameters(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		rate      decimal.Decimal
		weeks     int
		method    string
	}{
		{"zero principal", decimal.Zero, decimal.NewFromInt(10), 10, domain.MethodFlat},
		{"negative principal", decimal.NewFromInt(-500), decimal.NewFromInt(10), 10, domain.MethodFlat},
		{"zero duration", decimal.NewFromInt(1000), decimal.NewFromInt(10), 0, domain.MethodFlat},
		{"negative rate", decimal.NewFromInt(1000), decimal.NewFromInt(-1), 10, domain.MethodReducingBalance},
		{"unknown method", decimal.NewFromInt(1000), decimal.NewFromInt(10), 10, "balloon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeTerms(tt.principal, tt.rate, tt.weeks, tt.method)

			assert.ErrorIs(t, err, customError.ErrInvalidLoanParameters)
		})
	}
}

// Total repayment must equal installment times duration within rounding
// drift, and can never fall below the principal.
func TestComputeTermsConsistency(t *testing.T) {
	principals := []decimal.Decimal{
		decimal.NewFromInt(25000),
		decimal.NewFromInt(100000),
		decimal.NewFromFloat(74999.99),
	}
	rates := []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromFloat(0.2885),
		decimal.NewFromInt(2),
		decimal.NewFromInt(15),
	}
	durations := []int{1, 12, 52}

	for _, method := range []string{domain.MethodFlat, domain.MethodReducingBalance} {
		for _, principal := range principals {
			for _, rate := range rates {
				for _, weeks := range durations {
					terms, err := ComputeTerms(principal, rate, weeks, method)
					require.NoError(t, err)

					drift := decimal.New(1, -2).Mul(decimal.NewFromInt(int64(weeks)))
					product := terms.InstallmentAmount.Mul(decimal.NewFromInt(int64(weeks)))
					assert.True(t, product.Sub(terms.TotalRepayment).Abs().LessThanOrEqual(drift),
						"%s P=%v r=%v n=%d: installment*n=%v vs total=%v",
						method, principal, rate, weeks, product, terms.TotalRepayment)
					assert.True(t, terms.TotalRepayment.GreaterThanOrEqual(principal.Sub(drift)),
						"%s P=%v r=%v n=%d: total repayment below principal", method, principal, rate, weeks)
					assert.False(t, terms.TotalInterest.IsNegative())
				}
			}
		}
	}
}

func TestVerifyTerms(t *testing.T) {
	loan := &domain.Loan{
		LoanID:        "LN-1001",
		Principal:     decimal.NewFromInt(100000),
		InterestRate:  decimal.NewFromInt(15),
		DurationWeeks: 52,
		Method:        domain.MethodFlat,
	}
	terms, err := ComputeTerms(loan.Principal, loan.InterestRate, loan.DurationWeeks, loan.Method)
	require.NoError(t, err)
	loan.InstallmentAmount = terms.InstallmentAmount
	loan.TotalRepayment = terms.TotalRepayment
	loan.TotalInterest = terms.TotalInterest

	assert.NoError(t, VerifyTerms(loan))

	loan.InstallmentAmount = loan.InstallmentAmount.Add(decimal.NewFromInt(5))
	assert.ErrorIs(t, VerifyTerms(loan), customError.ErrInconsistentLoanState)
}
