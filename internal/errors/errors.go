package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// Unknown email and wrong password collapse into this one error so the
	// caller cannot tell which check failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an already-used email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrSurveyNotFound is returned when a user has no stored survey answers.
	ErrSurveyNotFound = errors.New("no survey answers found")
	// ErrSessionInvalid is returned for a missing, unknown or expired session token.
	ErrSessionInvalid = errors.New("invalid or expired session")
	// ErrInvalidAnswer is returned when an answer payload cannot be decoded.
	ErrInvalidAnswer = errors.New("invalid answer value")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrEmailTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrSurveyNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "SURVEY_NOT_FOUND")
	case ErrSessionInvalid:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "SESSION_INVALID")
	case ErrInvalidAnswer:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ANSWER")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
