package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound        ErrorType = "NOT_FOUND"
	ErrorTypeUnauthenticated ErrorType = "UNAUTHENTICATED"
	ErrorTypeForbidden       ErrorType = "FORBIDDEN"
	ErrorTypeConflict        ErrorType = "CONFLICT"
	ErrorTypeDependency      ErrorType = "DEPENDENCY_ERROR"
	ErrorTypeInternal        ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidDateRange ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeCrossTenantLink  ErrorCode = "CROSS_TENANT_LINK"

	ErrCodeHospitalNotFound   ErrorCode = "HOSPITAL_NOT_FOUND"
	ErrCodeDepartmentNotFound ErrorCode = "DEPARTMENT_NOT_FOUND"
	ErrCodePatientNotFound    ErrorCode = "PATIENT_NOT_FOUND"
	ErrCodeTaskNotFound       ErrorCode = "TASK_NOT_FOUND"
	ErrCodeShiftNotFound      ErrorCode = "SHIFT_NOT_FOUND"
	ErrCodeLeaveNotFound      ErrorCode = "LEAVE_NOT_FOUND"
	ErrCodeSwapNotFound       ErrorCode = "SWAP_NOT_FOUND"
	ErrCodeHandoverNotFound   ErrorCode = "HANDOVER_NOT_FOUND"
	ErrCodeProfileNotFound    ErrorCode = "PROFILE_NOT_FOUND"

	ErrCodeNoTenantScope      ErrorCode = "NO_TENANT_SCOPE"
	ErrCodeTenantMismatch     ErrorCode = "TENANT_MISMATCH"
	ErrCodeRoleInsufficient   ErrorCode = "ROLE_INSUFFICIENT"
	ErrCodeRelationViolation  ErrorCode = "RELATION_VIOLATION"
	ErrCodeTransitionConflict ErrorCode = "TRANSITION_CONFLICT"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeProfileInactive    ErrorCode = "PROFILE_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	ErrCodeStoreFailure ErrorCode = "STORE_FAILURE"
)

type AppError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthenticatedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthenticated,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewDependencyError wraps a failure from an external collaborator (record
// store, identity lookup). Never retried here; the caller owns retry policy.
func NewDependencyError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeDependency,
		Code:       ErrCodeStoreFailure,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrInvalidCredentials = NewUnauthenticatedError("invalid email or password", ErrCodeInvalidCredentials)
	ErrProfileInactive    = NewForbiddenError("profile is inactive", ErrCodeProfileInactive)
	ErrInvalidToken       = NewUnauthenticatedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthenticatedError("token has expired", ErrCodeTokenExpired)

	ErrNoTenantScope  = NewForbiddenError("hospital scope required", ErrCodeNoTenantScope)
	ErrTenantMismatch = NewForbiddenError("hospital access denied", ErrCodeTenantMismatch)
	ErrInsufficient   = NewForbiddenError("insufficient permissions", ErrCodeRoleInsufficient)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType `json:"type"`
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
	})
}
