package errors

import (
	"fmt"
	"net/http"
)

// AppError is the custom error type for the application
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
	Details  map[string]string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped error to errors.Is/As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

// Ingestion Errors

// ErrValidation indicates a required field is missing from an ingest payload.
// Webhook producers treat any failure as a 500, so validation keeps that code.
func ErrValidation(message string) AppError {
	return AppError{
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_VALIDATION_ERROR,
		Message:  message,
	}
}

func ErrMissingField(field string) AppError {
	return ErrValidation(fmt.Sprintf("required field %s could not be resolved from payload", field)).
		WithDetail("field", field)
}

func ErrIngestInProgress(externalMeetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_CONFLICT,
		Message:  "Meeting is already being ingested",
	}.WithDetail("external_meeting_id", externalMeetingID)
}

// Upstream Errors
func ErrUpstream(service string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_UPSTREAM_ERROR,
		Message:  fmt.Sprintf("Upstream call failed: %s", service),
	}
}

// ErrMalformedResponse marks upstream content that could not be decoded. The
// analysis pipeline handles this with a default insight rather than aborting,
// so it rarely reaches an HTTP response.
func ErrMalformedResponse(service string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_MALFORMED_RESPONSE,
		Message:  fmt.Sprintf("Malformed response from %s", service),
	}
}

// Persistence Errors
func ErrPersistence(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_PERSISTENCE_ERROR,
		Message:  "Database operation failed",
	}.WithDetail("operation", operation)
}

func ErrMeetingNotFound(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  "Meeting not found",
	}.WithDetail("meeting_id", meetingID)
}
