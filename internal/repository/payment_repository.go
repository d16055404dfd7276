package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/lakmicro/lending-engine/internal/domain"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			id, loan_id, amount, payment_date, payment_type,
			alloc_principal, alloc_interest, alloc_penalty, alloc_advance,
			reverses_payment_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.LoanID,
		payment.Amount,
		payment.PaymentDate,
		payment.PaymentType,
		payment.AllocPrincipal,
		payment.AllocInterest,
		payment.AllocPenalty,
		payment.AllocAdvance,
		payment.ReversesPaymentID,
		payment.CreatedAt,
	)

	return err
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `
		SELECT id, loan_id, amount, payment_date, payment_type,
		       alloc_principal, alloc_interest, alloc_penalty, alloc_advance,
		       reverses_payment_id, created_at
		FROM payments
		WHERE id = $1
	`

	var payment domain.Payment
	err := r.db.GetContext(ctx, &payment, query, id)
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepository) GetByLoanID(ctx context.Context, loanID string) ([]*domain.Payment, error) {
	query := `
		SELECT id, loan_id, amount, payment_date, payment_type,
		       alloc_principal, alloc_interest, alloc_penalty, alloc_advance,
		       reverses_payment_id, created_at
		FROM payments
		WHERE loan_id = $1
		ORDER BY payment_date, created_at
	`

	var payments []*domain.Payment
	err := r.db.SelectContext(ctx, &payments, query, loanID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

// GetTotalPaid sums payments net of reversals: an offsetting record cancels
// the amount of the payment it references.
func (r *paymentRepository) GetTotalPaid(ctx context.Context, loanID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN reverses_payment_id IS NULL THEN amount ELSE -amount END), 0)
		FROM payments
		WHERE loan_id = $1
	`

	var total decimal.Decimal
	err := r.db.GetContext(ctx, &total, query, loanID)
	if err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

func (r *paymentRepository) HasReversal(ctx context.Context, paymentID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM payments WHERE reverses_payment_id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, paymentID)
	if err != nil {
		return false, err
	}

	return exists, nil
}
