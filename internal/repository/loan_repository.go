package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lakmicro/lending-engine/internal/domain"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (
			id, loan_id, customer_id, principal, interest_rate, duration_weeks, method,
			installment_amount, total_repayment, total_interest,
			status, paid_installments, outstanding_balance, penalty_accrued,
			start_date, next_due_date, version, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.LoanID,
		loan.CustomerID,
		loan.Principal,
		loan.InterestRate,
		loan.DurationWeeks,
		loan.Method,
		loan.InstallmentAmount,
		loan.TotalRepayment,
		loan.TotalInterest,
		loan.Status,
		loan.PaidInstallments,
		loan.OutstandingBalance,
		loan.PenaltyAccrued,
		loan.StartDate,
		loan.NextDueDate,
		loan.Version,
		loan.CreatedAt,
		loan.UpdatedAt,
	)

	return err
}

func (r *loanRepository) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `
		SELECT id, loan_id, customer_id, principal, interest_rate, duration_weeks, method,
		       installment_amount, total_repayment, total_interest,
		       status, paid_installments, outstanding_balance, penalty_accrued,
		       start_date, next_due_date, version, created_at, updated_at
		FROM loans
		WHERE loan_id = $1
	`

	var loan domain.Loan
	err := r.db.GetContext(ctx, &loan, query, loanID)
	if err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) ListByStatus(ctx context.Context, status string) ([]*domain.Loan, error) {
	query := `
		SELECT id, loan_id, customer_id, principal, interest_rate, duration_weeks, method,
		       installment_amount, total_repayment, total_interest,
		       status, paid_installments, outstanding_balance, penalty_accrued,
		       start_date, next_due_date, version, created_at, updated_at
		FROM loans
		WHERE status = $1
		ORDER BY loan_id
	`

	var loans []*domain.Loan
	err := r.db.SelectContext(ctx, &loans, query, status)
	if err != nil {
		return nil, err
	}

	return loans, nil
}

// UpdateState writes the mutable loan state guarded by the stored version.
// Two concurrent payment submissions against the same loan cannot both
// succeed; the loser sees sql.ErrNoRows and must retry from fresh state.
func (r *loanRepository) UpdateState(ctx context.Context, loan *domain.Loan, expectedVersion int64) error {
	query := `
		UPDATE loans
		SET status = $2, paid_installments = $3, outstanding_balance = $4,
		    penalty_accrued = $5, start_date = $6, next_due_date = $7,
		    version = version + 1, updated_at = $8
		WHERE loan_id = $1 AND version = $9
	`

	result, err := r.db.ExecContext(ctx, query,
		loan.LoanID,
		loan.Status,
		loan.PaidInstallments,
		loan.OutstandingBalance,
		loan.PenaltyAccrued,
		loan.StartDate,
		loan.NextDueDate,
		time.Now(),
		expectedVersion,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	loan.Version = expectedVersion + 1
	return nil
}

func (r *loanRepository) CreateSchedule(ctx context.Context, schedules []*domain.LoanSchedule) error {
	query := `
		INSERT INTO loan_schedule (id, loan_id, week_number, due_amount, due_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, schedule := range schedules {
		_, err = tx.ExecContext(ctx, query,
			schedule.ID,
			schedule.LoanID,
			schedule.WeekNumber,
			schedule.DueAmount,
			schedule.DueDate,
			schedule.Status,
			schedule.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *loanRepository) GetScheduleByLoanID(ctx context.Context, loanID string) ([]*domain.LoanSchedule, error) {
	query := `
		SELECT id, loan_id, week_number, due_amount, due_date, status, created_at
		FROM loan_schedule
		WHERE loan_id = $1
		ORDER BY week_number
	`

	var schedules []*domain.LoanSchedule
	err := r.db.SelectContext(ctx, &schedules, query, loanID)
	if err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *loanRepository) UpdateScheduleStatus(ctx context.Context, loanID string, weekNumber int, status string) error {
	query := `
		UPDATE loan_schedule
		SET status = $3
		WHERE loan_id = $1 AND week_number = $2
	`

	_, err := r.db.ExecContext(ctx, query, loanID, weekNumber, status)
	return err
}

func (r *loanRepository) MarkOverdueSchedules(ctx context.Context, currentDate time.Time) (int64, error) {
	query := `
		UPDATE loan_schedule
		SET status = 'overdue'
		WHERE status = 'pending' AND due_date < $1
	`

	result, err := r.db.ExecContext(ctx, query, currentDate)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
