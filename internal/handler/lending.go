package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/lakmicro/lending-engine/internal/domain"
	"github.com/lakmicro/lending-engine/internal/finance"
	"github.com/lakmicro/lending-engine/internal/service"
	"github.com/lakmicro/lending-engine/internal/validation"
	"github.com/lakmicro/lending-engine/pkg/response"
)

type LendingHandler struct {
	service   *service.LendingService
	validator *validator.Validate
}

func NewLendingHandler(svc *service.LendingService) (*LendingHandler, error) {
	v := validator.New()
	if err := validation.Register(v); err != nil {
		return nil, err
	}
	return &LendingHandler{
		service:   svc,
		validator: v,
	}, nil
}

// RegisterCustomer handles POST /customers
func (h *LendingHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var request domain.RegisterCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	customer, err := h.service.RegisterCustomer(r.Context(), &request)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Created(w, customer)
}

// VerifyCustomer handles POST /customers/{customerId}/verify
func (h *LendingHandler) VerifyCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := uuid.Parse(mux.Vars(r)["customerId"])
	if err != nil {
		response.BadRequest(w, "invalid customer id", err)
		return
	}

	var request struct {
		Approved bool `json:"approved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.service.VerifyCustomer(r.Context(), customerID, request.Approved); err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Success(w, map[string]bool{"approved": request.Approved})
}

// CreateLoan handles POST /loans
func (h *LendingHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	loan, err := h.service.CreateLoan(r.Context(), &request)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Created(w, &domain.CreateLoanResponse{Loan: loan})
}

// ApproveLoan handles POST /loans/{loanId}/approve
func (h *LendingHandler) ApproveLoan(w http.ResponseWriter, r *http.Request) {
	loan, err := h.service.ApproveLoan(r.Context(), mux.Vars(r)["loanId"])
	if err != nil {
		response.BusinessError(w, err)
		return
	}
	response.Success(w, loan)
}

// RejectLoan handles POST /loans/{loanId}/reject
func (h *LendingHandler) RejectLoan(w http.ResponseWriter, r *http.Request) {
	loan, err := h.service.RejectLoan(r.Context(), mux.Vars(r)["loanId"])
	if err != nil {
		response.BusinessError(w, err)
		return
	}
	response.Success(w, loan)
}

// DisburseLoan handles POST /loans/{loanId}/disburse
func (h *LendingHandler) DisburseLoan(w http.ResponseWriter, r *http.Request) {
	loan, schedule, err := h.service.DisburseLoan(r.Context(), mux.Vars(r)["loanId"])
	if err != nil {
		response.BusinessError(w, err)
		return
	}
	response.Success(w, &domain.DisburseLoanResponse{Loan: loan, Schedule: schedule})
}

// RecordPayment handles POST /loans/{loanId}/payment
func (h *LendingHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var request domain.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	result, err := h.service.RecordPayment(r.Context(), mux.Vars(r)["loanId"], &request)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Created(w, result)
}

// ReversePayment handles POST /loans/{loanId}/payments/{paymentId}/reverse
func (h *LendingHandler) ReversePayment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	paymentID, err := uuid.Parse(vars["paymentId"])
	if err != nil {
		response.BadRequest(w, "invalid payment id", err)
		return
	}

	reversal, err := h.service.ReversePayment(r.Context(), vars["loanId"], paymentID)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Created(w, reversal)
}

// GetOutstanding handles GET /loans/{loanId}/outstanding
func (h *LendingHandler) GetOutstanding(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetOutstanding(r.Context(), mux.Vars(r)["loanId"])
	if err != nil {
		response.BusinessError(w, err)
		return
	}
	response.Success(w, result)
}

// GetSchedule handles GET /loans/{loanId}/schedule
func (h *LendingHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	loanID := mux.Vars(r)["loanId"]
	schedule, err := h.service.GetSchedule(r.Context(), loanID)
	if err != nil {
		response.BusinessError(w, err)
		return
	}
	response.Success(w, &domain.ScheduleResponse{LoanID: loanID, Schedule: schedule})
}

// CollectionReport handles GET /reports/collections?sort=priority|amount|overdue
func (h *LendingHandler) CollectionReport(w http.ResponseWriter, r *http.Request) {
	sortKey := finance.SortKey(r.URL.Query().Get("sort"))
	switch sortKey {
	case finance.SortByAmount, finance.SortByOverdue:
	default:
		sortKey = finance.SortByPriority
	}

	report, err := h.service.CollectionReport(r.Context(), sortKey)
	if err != nil {
		response.BusinessError(w, err)
		return
	}
	response.Success(w, report)
}
