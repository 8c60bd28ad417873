package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error for retry and reporting decisions
type Kind string

const (
	KindValidation   Kind = "validation"
	KindBusinessRule Kind = "business_rule"
	KindConflict     Kind = "concurrency_conflict"
	KindStorage      Kind = "storage"
	KindNotFound     Kind = "not_found"
	KindAuth         Kind = "auth"
	KindInternal     Kind = "internal"
)

// Reason is a stable machine-readable code reported with business rule failures
type Reason string

const (
	ReasonCodeNotFound           Reason = "CODE_NOT_FOUND"
	ReasonCodeInactive           Reason = "CODE_INACTIVE"
	ReasonCodeExpired            Reason = "CODE_EXPIRED"
	ReasonCodeAlreadyUsed        Reason = "CODE_ALREADY_USED"
	ReasonCodeExhausted          Reason = "CODE_EXHAUSTED"
	ReasonCodeNotApplicable      Reason = "CODE_NOT_APPLICABLE"
	ReasonMultipleCodes          Reason = "MULTIPLE_CODES"
	ReasonInsufficientBalance    Reason = "INSUFFICIENT_BALANCE"
	ReasonOverpaymentNotAllowed  Reason = "OVERPAYMENT_NOT_ALLOWED"
	ReasonReasonRequired         Reason = "REASON_REQUIRED"
	ReasonBankDepositExceedsCash Reason = "BANK_DEPOSIT_EXCEEDS_CASH"
	ReasonAlreadyOpen            Reason = "ALREADY_OPEN"
	ReasonNoOpenRegister         Reason = "NO_OPEN_REGISTER"
	ReasonRegisterNotOpen        Reason = "REGISTER_NOT_OPEN"
	ReasonInvoiceVoid            Reason = "INVOICE_VOID"
	ReasonUnknownPaymentMode     Reason = "UNKNOWN_PAYMENT_MODE"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind,omitempty"`
	Reason  Reason       `json:"reason,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// Invalid creates a validation error for a single field
func Invalid(field, message string) *AppError {
	return NewValidationError([]FieldError{{Field: field, Message: message}})
}

// NewBusinessRuleError creates a business rule violation carrying a reason code
func NewBusinessRuleError(reason Reason, message string) *AppError {
	code := http.StatusUnprocessableEntity
	if reason == ReasonAlreadyOpen {
		code = http.StatusConflict
	}
	return &AppError{
		Code:    code,
		Kind:    KindBusinessRule,
		Reason:  reason,
		Message: message,
	}
}

// NewConcurrencyError creates a transient conflict that callers may retry
func NewConcurrencyError(message string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
		cause:   cause,
	}
}

// Storage wraps an unexpected persistence failure. AppErrors pass through untouched.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	if IsAppError(err) {
		return err
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindStorage,
		Message: "Storage error: " + err.Error(),
		cause:   err,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}

// ReasonOf returns the business rule reason carried by err, if any
func ReasonOf(err error) Reason {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Reason
	}
	return ""
}

// KindOf returns the error kind carried by err, if any
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsConflict reports whether err is a transient concurrency conflict
func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}
