package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrCustomerNotFound       = errors.New("customer not found")
	ErrLoanNotFound           = errors.New("loan not found")
	ErrLoanAlreadyExists      = errors.New("loan already exists")
	ErrInvalidLoanParameters  = errors.New("invalid loan parameters")
	ErrInconsistentLoanState  = errors.New("inconsistent loan state")
	ErrInvalidPaymentAmount   = errors.New("invalid payment amount")
	ErrInvalidLoanStatus      = errors.New("operation not allowed in current loan status")
	ErrPaymentNotFound        = errors.New("payment not found")
	ErrPaymentAlreadyReversed = errors.New("payment already reversed")
	ErrConcurrentUpdate       = errors.New("loan state was modified concurrently")
	ErrInvalidKYCDocument     = errors.New("invalid KYC document")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeCustomerNotFound       = "CUSTOMER_NOT_FOUND"
	ErrCodeLoanNotFound           = "LOAN_NOT_FOUND"
	ErrCodeLoanAlreadyExists      = "LOAN_ALREADY_EXISTS"
	ErrCodeInvalidLoanParameters  = "INVALID_LOAN_PARAMETERS"
	ErrCodeInconsistentLoanState  = "INCONSISTENT_LOAN_STATE"
	ErrCodeInvalidPaymentAmount   = "INVALID_PAYMENT_AMOUNT"
	ErrCodeInvalidLoanStatus      = "INVALID_LOAN_STATUS"
	ErrCodePaymentNotFound        = "PAYMENT_NOT_FOUND"
	ErrCodePaymentAlreadyReversed = "PAYMENT_ALREADY_REVERSED"
	ErrCodeConcurrentUpdate       = "CONCURRENT_UPDATE"
	ErrCodeInvalidKYCDocument     = "INVALID_KYC_DOCUMENT"
	ErrCodeDatabaseError          = "DATABASE_ERROR"
	ErrCodeCacheError             = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapCustomerNotFound(customerID string) *BusinessError {
	return NewBusinessError(
		ErrCodeCustomerNotFound,
		fmt.Sprintf("Customer with ID %s not found", customerID),
		ErrCustomerNotFound,
	)
}

func WrapLoanNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %s not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapLoanAlreadyExists(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanAlreadyExists,
		fmt.Sprintf("Loan with ID %s already exists", loanID),
		ErrLoanAlreadyExists,
	)
}

func WrapInvalidLoanParameters(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidLoanParameters,
		reason,
		ErrInvalidLoanParameters,
	)
}

func WrapInconsistentLoanState(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInconsistentLoanState,
		reason,
		ErrInconsistentLoanState,
	)
}

func WrapInvalidPaymentAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentAmount,
		fmt.Sprintf("Invalid payment amount: %s", amount),
		ErrInvalidPaymentAmount,
	)
}

func WrapInvalidLoanStatus(loanID, status, operation string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidLoanStatus,
		fmt.Sprintf("Loan %s is %s; %s is not allowed", loanID, status, operation),
		ErrInvalidLoanStatus,
	)
}

func WrapConcurrentUpdate(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeConcurrentUpdate,
		fmt.Sprintf("Loan %s was updated by another request, retry with fresh state", loanID),
		ErrConcurrentUpdate,
	)
}

func WrapInvalidKYCDocument(field, reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidKYCDocument,
		fmt.Sprintf("KYC field %s rejected: %s", field, reason),
		ErrInvalidKYCDocument,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}
