package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/lakmicro/lending-engine/internal/config"
	"github.com/lakmicro/lending-engine/internal/domain"
	"github.com/lakmicro/lending-engine/internal/finance"
	"github.com/lakmicro/lending-engine/internal/repository"
	"github.com/lakmicro/lending-engine/internal/validation"
	customError "github.com/lakmicro/lending-engine/pkg/errors"
	"github.com/lakmicro/lending-engine/pkg/utils"
)

// LendingService glues the repositories to the financial engine. All money
// math happens in internal/finance over snapshots of persisted state; this
// layer loads those snapshots, persists the results, and guards concurrent
// updates with the loan version.
type LendingService struct {
	CustomerRepo repository.CustomerRepository
	LoanRepo     repository.LoanRepository
	PaymentRepo  repository.PaymentRepository
	redis        *redis.Client
	config       *config.Config
}

func NewLendingService(
	customerRepo repository.CustomerRepository,
	loanRepo repository.LoanRepository,
	paymentRepo repository.PaymentRepository,
	redisClient *redis.Client,
	cfg *config.Config,
) *LendingService {
	return &LendingService{
		CustomerRepo: customerRepo,
		LoanRepo:     loanRepo,
		PaymentRepo:  paymentRepo,
		redis:        redisClient,
		config:       cfg,
	}
}

// RegisterCustomer onboards a borrower after KYC format checks. The record
// starts in pending status until an operator verifies the documents.
func (s *LendingService) RegisterCustomer(ctx context.Context, request *domain.RegisterCustomerRequest) (*domain.Customer, error) {
	if !validation.IsValidNIC(request.NIC) {
		return nil, customError.WrapInvalidKYCDocument("nic", "not a valid NIC number")
	}
	if !validation.IsValidPhone(request.Phone) {
		return nil, customError.WrapInvalidKYCDocument("phone", "not a valid phone number")
	}
	if !validation.IsValidPostalCode(request.PostalCode) {
		return nil, customError.WrapInvalidKYCDocument("postal_code", "not a valid postal code")
	}

	nic := validation.NormalizeNIC(request.NIC)
	existing, err := s.CustomerRepo.GetByNIC(ctx, nic)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}
	if existing != nil {
		return nil, customError.WrapInvalidKYCDocument("nic", "a customer with this NIC already exists")
	}

	now := time.Now()
	customer := &domain.Customer{
		ID:              uuid.New(),
		FullName:        request.FullName,
		FullNameSinhala: request.FullNameSinhala,
		NIC:             nic,
		Phone:           request.Phone,
		Address:         request.Address,
		PostalCode:      request.PostalCode,
		Status:          domain.CustomerStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.CustomerRepo.Create(ctx, customer); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return customer, nil
}

// VerifyCustomer records the operator's KYC decision.
func (s *LendingService) VerifyCustomer(ctx context.Context, customerID uuid.UUID, approved bool) error {
	customer, err := s.CustomerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapCustomerNotFound(customerID.String())
		}
		return customError.WrapDatabaseError(err)
	}

	status := domain.CustomerStatusVerified
	if !approved {
		status = domain.CustomerStatusRejected
	}
	if err := s.CustomerRepo.UpdateStatus(ctx, customer.ID, status); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}

// CreateLoan fixes the loan terms and persists the loan in pending status.
// The derived figures are computed exactly once here and stored on the
// record; later reads trust the stored values.
func (s *LendingService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	existingLoan, err := s.LoanRepo.GetByLoanID(ctx, request.LoanID)
	if err == nil && existingLoan != nil {
		return nil, customError.WrapLoanAlreadyExists(request.LoanID)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	customerID, err := uuid.Parse(request.CustomerID)
	if err != nil {
		return nil, customError.WrapInvalidLoanParameters("customer_id is not a valid uuid")
	}
	customer, err := s.CustomerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCustomerNotFound(request.CustomerID)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	if customer.Status != domain.CustomerStatusVerified {
		return nil, customError.WrapInvalidKYCDocument("customer", "customer is not KYC verified")
	}

	if request.DurationWeeks > s.config.Business.MaxDurationWeeks {
		return nil, customError.WrapInvalidLoanParameters(
			fmt.Sprintf("duration %d exceeds the maximum of %d weeks", request.DurationWeeks, s.config.Business.MaxDurationWeeks))
	}

	method := request.Method
	if method == "" {
		method = s.config.Business.DefaultMethod
	}

	terms, err := finance.ComputeTerms(request.Principal, request.InterestRate, request.DurationWeeks, method)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	loan := &domain.Loan{
		ID:                uuid.New(),
		LoanID:            request.LoanID,
		CustomerID:        customerID,
		Principal:         request.Principal,
		InterestRate:      request.InterestRate,
		DurationWeeks:     request.DurationWeeks,
		Method:            method,
		InstallmentAmount: terms.InstallmentAmount,
		TotalRepayment:    terms.TotalRepayment,
		TotalInterest:     terms.TotalInterest,
		Status:            domain.LoanStatusPending,
		PenaltyAccrued:    decimal.Zero,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// The opening balance is what ComputeBalance reports before any
	// installment is paid.
	opening, err := finance.ComputeBalance(finance.BalanceInputFromLoan(loan, decimal.Zero, now))
	if err != nil {
		return nil, err
	}
	loan.OutstandingBalance = opening.OutstandingBalance

	if err := s.LoanRepo.Create(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return loan, nil
}

// ApproveLoan moves a pending loan to approved.
func (s *LendingService) ApproveLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	return s.transition(ctx, loanID, domain.LoanStatusPending, domain.LoanStatusApproved, "approve")
}

// RejectLoan terminates a pending loan.
func (s *LendingService) RejectLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	return s.transition(ctx, loanID, domain.LoanStatusPending, domain.LoanStatusRejected, "reject")
}

func (s *LendingService) transition(ctx context.Context, loanID, from, to, operation string) (*domain.Loan, error) {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != from {
		return nil, customError.WrapInvalidLoanStatus(loanID, loan.Status, operation)
	}

	loan.Status = to
	if err := s.updateLoanState(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// DisburseLoan activates an approved loan: the weekly schedule starts today
// and one due row per week is generated. The final row absorbs rounding
// drift so the schedule totals exactly the total repayment.
func (s *LendingService) DisburseLoan(ctx context.Context, loanID string) (*domain.Loan, []*domain.LoanSchedule, error) {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, nil, err
	}
	if loan.Status != domain.LoanStatusApproved {
		return nil, nil, customError.WrapInvalidLoanStatus(loanID, loan.Status, "disburse")
	}

	startDate := time.Now().Truncate(24 * time.Hour)
	schedules := make([]*domain.LoanSchedule, 0, loan.DurationWeeks)
	accumulated := decimal.Zero
	for week := 1; week <= loan.DurationWeeks; week++ {
		dueAmount := loan.InstallmentAmount
		if week == loan.DurationWeeks {
			dueAmount = loan.TotalRepayment.Sub(accumulated)
			if dueAmount.IsNegative() {
				dueAmount = decimal.Zero
			}
		}
		schedules = append(schedules, &domain.LoanSchedule{
			ID:         uuid.New(),
			LoanID:     loan.LoanID,
			WeekNumber: week,
			DueAmount:  dueAmount,
			DueDate:    utils.CalculateDueDate(startDate, week),
			Status:     domain.ScheduleStatusPending,
			CreatedAt:  time.Now(),
		})
		accumulated = accumulated.Add(dueAmount)
	}

	if err := s.LoanRepo.CreateSchedule(ctx, schedules); err != nil {
		return nil, nil, customError.WrapDatabaseError(err)
	}

	nextDue := utils.CalculateDueDate(startDate, 1)
	loan.Status = domain.LoanStatusActive
	loan.StartDate = &startDate
	loan.NextDueDate = &nextDue
	if err := s.updateLoanState(ctx, loan); err != nil {
		return nil, nil, err
	}

	return loan, schedules, nil
}

// RecordPayment evaluates a submitted amount against the currently
// persisted loan state, appends the resulting payment record and updates
// the loan in one optimistic-concurrency step. Two concurrent submissions
// against the same loan cannot both win.
func (s *LendingService) RecordPayment(ctx context.Context, loanID string, request *domain.RecordPaymentRequest) (*domain.RecordPaymentResponse, error) {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != domain.LoanStatusActive {
		return nil, customError.WrapInvalidLoanStatus(loanID, loan.Status, "payment")
	}
	// Refuse to allocate money against a record whose stored terms no longer
	// reproduce from its parameters.
	if err := finance.VerifyTerms(loan); err != nil {
		return nil, err
	}

	now := time.Now()
	paymentDate := now
	if request.PaymentDate != "" {
		paymentDate, err = time.Parse("2006-01-02", request.PaymentDate)
		if err != nil {
			return nil, customError.WrapInvalidPaymentAmount("payment_date must be YYYY-MM-DD")
		}
		if paymentDate.After(now) {
			return nil, customError.WrapInvalidPaymentAmount("payment date must not be in the future")
		}
	}

	payments, err := s.PaymentRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	scheduleCredit := netScheduleCredit(payments)

	balance, err := finance.ComputeBalance(finance.BalanceInputFromLoan(loan, s.config.GetPenaltyRate(), now))
	if err != nil {
		return nil, err
	}

	dueAmount := s.dueAmount(loan, scheduleCredit, now)
	paymentType, alloc, err := finance.ClassifyAndAllocate(finance.AllocationInput{
		DueAmount:          dueAmount,
		PaymentAmount:      request.Amount,
		OutstandingBalance: balance.OutstandingBalance,
		PenaltyDue:         balance.PenaltyDue,
		InterestDue:        balance.DueInterest,
	})
	if err != nil {
		return nil, err
	}
	// A payment consumed entirely by accrued penalty is a penalty
	// collection, not an installment.
	if alloc.Penalty.Equal(request.Amount) && alloc.Penalty.IsPositive() {
		paymentType = domain.PaymentTypePenalty
	}

	payment := &domain.Payment{
		ID:             uuid.New(),
		LoanID:         loanID,
		Amount:         request.Amount,
		PaymentDate:    paymentDate,
		PaymentType:    paymentType,
		AllocPrincipal: alloc.Principal,
		AllocInterest:  alloc.Interest,
		AllocPenalty:   alloc.Penalty,
		AllocAdvance:   alloc.Advance,
		CreatedAt:      now,
	}
	if err := s.PaymentRepo.Create(ctx, payment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	newCredit := scheduleCredit.Add(request.Amount).Sub(alloc.Penalty)
	if err := s.applyRepaymentState(ctx, loan, newCredit, paymentType == domain.PaymentTypeSettlement, now); err != nil {
		return nil, err
	}

	return &domain.RecordPaymentResponse{
		Payment:     payment,
		Outstanding: loan.OutstandingBalance,
		LoanStatus:  loan.Status,
	}, nil
}

// ReversePayment corrects an erroneous payment by appending an offsetting
// record; the original row is never touched.
func (s *LendingService) ReversePayment(ctx context.Context, loanID string, paymentID uuid.UUID) (*domain.Payment, error) {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	original, err := s.PaymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.NewBusinessError(customError.ErrCodePaymentNotFound,
				fmt.Sprintf("Payment %s not found", paymentID), customError.ErrPaymentNotFound)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	if original.LoanID != loanID {
		return nil, customError.NewBusinessError(customError.ErrCodePaymentNotFound,
			fmt.Sprintf("Payment %s does not belong to loan %s", paymentID, loanID), customError.ErrPaymentNotFound)
	}
	if original.IsReversal() {
		return nil, customError.NewBusinessError(customError.ErrCodePaymentAlreadyReversed,
			"a reversal record cannot be reversed", customError.ErrPaymentAlreadyReversed)
	}
	reversed, err := s.PaymentRepo.HasReversal(ctx, paymentID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if reversed {
		return nil, customError.NewBusinessError(customError.ErrCodePaymentAlreadyReversed,
			fmt.Sprintf("Payment %s is already reversed", paymentID), customError.ErrPaymentAlreadyReversed)
	}

	now := time.Now()
	reversal := &domain.Payment{
		ID:                uuid.New(),
		LoanID:            loanID,
		Amount:            original.Amount,
		PaymentDate:       now,
		PaymentType:       original.PaymentType,
		AllocPrincipal:    original.AllocPrincipal,
		AllocInterest:     original.AllocInterest,
		AllocPenalty:      original.AllocPenalty,
		AllocAdvance:      original.AllocAdvance,
		ReversesPaymentID: &paymentID,
		CreatedAt:         now,
	}
	if err := s.PaymentRepo.Create(ctx, reversal); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	payments, err := s.PaymentRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if err := s.applyRepaymentState(ctx, loan, netScheduleCredit(payments), false, now); err != nil {
		return nil, err
	}

	return reversal, nil
}

// applyRepaymentState recomputes the loan state from the installment credit
// and persists it with a version check.
func (s *LendingService) applyRepaymentState(ctx context.Context, loan *domain.Loan, scheduleCredit decimal.Decimal, settled bool, now time.Time) error {
	previousPaid := loan.PaidInstallments

	paid := 0
	if loan.InstallmentAmount.IsPositive() {
		paid = int(scheduleCredit.Div(loan.InstallmentAmount).IntPart())
	}
	// The final schedule row absorbs rounding drift, so full repayment can
	// fall a few cents short of installment * duration.
	if scheduleCredit.GreaterThanOrEqual(loan.TotalRepayment) {
		paid = loan.DurationWeeks
	}
	if settled || paid > loan.DurationWeeks {
		paid = loan.DurationWeeks
	}
	loan.PaidInstallments = paid

	balance, err := finance.ComputeBalance(finance.BalanceInputFromLoan(loan, s.config.GetPenaltyRate(), now))
	if err != nil {
		return err
	}

	loan.OutstandingBalance = balance.OutstandingBalance
	loan.PenaltyAccrued = balance.PenaltyDue
	if settled {
		loan.OutstandingBalance = decimal.Zero
		loan.PenaltyAccrued = decimal.Zero
	}

	if loan.OutstandingBalance.IsZero() && (settled || paid >= loan.DurationWeeks) {
		loan.Status = domain.LoanStatusCompleted
		loan.NextDueDate = nil
	} else {
		// Reversing the settling payment reopens the loan; a completed loan
		// with money still owed would be invisible to payments, collection
		// reports and the default sweep.
		if loan.Status == domain.LoanStatusCompleted {
			loan.Status = domain.LoanStatusActive
		}
		if loan.StartDate != nil {
			next := utils.CalculateDueDate(*loan.StartDate, paid+1)
			loan.NextDueDate = &next
		}
	}

	if err := s.updateLoanState(ctx, loan); err != nil {
		return err
	}

	// Reflect newly covered weeks on the schedule rows. Best effort: the
	// loan row is the source of truth for state.
	for week := previousPaid + 1; week <= paid && week <= loan.DurationWeeks; week++ {
		if err := s.LoanRepo.UpdateScheduleStatus(ctx, loan.LoanID, week, domain.ScheduleStatusPaid); err != nil {
			return customError.WrapDatabaseError(err)
		}
	}

	return nil
}

// GetOutstanding returns the current balance position for a loan.
func (s *LendingService) GetOutstanding(ctx context.Context, loanID string) (*domain.OutstandingResponse, error) {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	balance, err := finance.ComputeBalance(finance.BalanceInputFromLoan(loan, s.config.GetPenaltyRate(), now))
	if err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	totalPaid, err := s.PaymentRepo.GetTotalPaid(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.OutstandingResponse{
		LoanID:      loanID,
		Outstanding: balance.OutstandingBalance,
		PenaltyDue:  balance.PenaltyDue,
		DueAmount:   s.dueAmount(loan, netScheduleCredit(payments), now),
		TotalPaid:   totalPaid,
	}, nil
}

// GetSchedule returns the payment schedule for a loan.
func (s *LendingService) GetSchedule(ctx context.Context, loanID string) ([]*domain.LoanSchedule, error) {
	if _, err := s.getLoan(ctx, loanID); err != nil {
		return nil, err
	}
	schedules, err := s.LoanRepo.GetScheduleByLoanID(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return schedules, nil
}

// CollectionReport ranks every active loan for field collection. The items
// are derived fresh from loan and payment snapshots on each call and are
// never persisted.
func (s *LendingService) CollectionReport(ctx context.Context, sortKey finance.SortKey) (*domain.CollectionReportResponse, error) {
	loans, err := s.LoanRepo.ListByStatus(ctx, domain.LoanStatusActive)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	now := time.Now()
	snapshots := make([]finance.LoanSnapshot, 0, len(loans))
	for _, loan := range loans {
		if loan.StartDate == nil {
			continue
		}
		payments, err := s.PaymentRepo.GetByLoanID(ctx, loan.LoanID)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		snapshots = append(snapshots, finance.LoanSnapshot{
			LoanID:            loan.LoanID,
			CustomerID:        loan.CustomerID.String(),
			InstallmentAmount: loan.InstallmentAmount,
			DurationWeeks:     loan.DurationWeeks,
			PaidInstallments:  loan.PaidInstallments,
			StartDate:         *loan.StartDate,
			TotalPaid:         netScheduleCredit(payments),
		})
	}

	return &domain.CollectionReportResponse{
		GeneratedFor: now.Format("2006-01-02"),
		Items:        finance.Prioritize(snapshots, sortKey, now),
	}, nil
}

// MarkDefaults flags active loans past the missed-week threshold as
// defaulted and flips overdue schedule rows. Run by the scheduler.
func (s *LendingService) MarkDefaults(ctx context.Context) (int, error) {
	now := time.Now()
	if _, err := s.LoanRepo.MarkOverdueSchedules(ctx, now); err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	loans, err := s.LoanRepo.ListByStatus(ctx, domain.LoanStatusActive)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	defaulted := 0
	for _, loan := range loans {
		if loan.StartDate == nil {
			continue
		}
		expected := utils.ElapsedWeeks(*loan.StartDate, now)
		if expected > loan.DurationWeeks {
			expected = loan.DurationWeeks
		}
		if expected-loan.PaidInstallments < s.config.Business.DefaultThresholdWeeks {
			continue
		}

		loan.Status = domain.LoanStatusDefaulted
		if err := s.updateLoanState(ctx, loan); err != nil {
			// Concurrent payment wins over the batch job; skip this loan.
			if errors.Is(err, customError.ErrConcurrentUpdate) {
				continue
			}
			return defaulted, err
		}
		defaulted++
	}

	return defaulted, nil
}

// dueAmount is the schedule position as of now, net of what has already
// been credited against installments.
func (s *LendingService) dueAmount(loan *domain.Loan, scheduleCredit decimal.Decimal, now time.Time) decimal.Decimal {
	if loan.StartDate == nil {
		return decimal.Zero
	}
	expected := utils.ElapsedWeeks(*loan.StartDate, now)
	if expected > loan.DurationWeeks {
		expected = loan.DurationWeeks
	}
	expectedAmount := loan.InstallmentAmount.Mul(decimal.NewFromInt(int64(expected)))
	// With the full term due, what is owed is the total repayment: the final
	// schedule row absorbs the installment rounding drift.
	if expected == loan.DurationWeeks {
		expectedAmount = loan.TotalRepayment
	}
	due := expectedAmount.Sub(scheduleCredit)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// netScheduleCredit sums the part of each payment that counts toward the
// installment schedule: the full amount minus the penalty bucket, with
// reversal records subtracting what their originals added.
func netScheduleCredit(payments []*domain.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		credit := p.Amount.Sub(p.AllocPenalty)
		if p.IsReversal() {
			total = total.Sub(credit)
		} else {
			total = total.Add(credit)
		}
	}
	return total
}

func (s *LendingService) getLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	if loan := s.cachedLoan(ctx, loanID); loan != nil {
		return loan, nil
	}

	loan, err := s.LoanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(loanID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	s.cacheLoan(ctx, loan)
	return loan, nil
}

func (s *LendingService) updateLoanState(ctx context.Context, loan *domain.Loan) error {
	loan.UpdatedAt = time.Now()
	if err := s.LoanRepo.UpdateState(ctx, loan, loan.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapConcurrentUpdate(loan.LoanID)
		}
		return customError.WrapDatabaseError(err)
	}
	s.invalidateLoanCache(ctx, loan.LoanID)
	return nil
}

func loanCacheKey(loanID string) string {
	return fmt.Sprintf("loan:%s", loanID)
}

func (s *LendingService) cachedLoan(ctx context.Context, loanID string) *domain.Loan {
	if s.redis == nil {
		return nil
	}
	raw, err := s.redis.Get(ctx, loanCacheKey(loanID)).Bytes()
	if err != nil {
		return nil
	}
	var loan domain.Loan
	if err := json.Unmarshal(raw, &loan); err != nil {
		return nil
	}
	return &loan
}

func (s *LendingService) cacheLoan(ctx context.Context, loan *domain.Loan) {
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(loan)
	if err != nil {
		return
	}
	s.redis.Set(ctx, loanCacheKey(loan.LoanID), raw, s.config.GetLoanCacheTTL())
}

func (s *LendingService) invalidateLoanCache(ctx context.Context, loanID string) {
	if s.redis == nil {
		return
	}
	s.redis.Del(ctx, loanCacheKey(loanID))
}
