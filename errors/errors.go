package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// AppError is the custom error type for the application
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
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

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

// Input validation errors

// ErrSchemaValidation reports tabular input that is missing required
// columns. All missing columns are named so the caller can fix the file
// in one pass.
func ErrSchemaValidation(missingColumns []string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_SCHEMA_VALIDATION_FAILED,
		Message:  fmt.Sprintf("Missing required columns: %s", strings.Join(missingColumns, ", ")),
	}.WithDetail("missing_columns", strings.Join(missingColumns, ", "))
}

func ErrMissingTranscript() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_MISSING_TRANSCRIPT,
		Message:  "Meeting transcript is missing or too short",
	}
}

func ErrMissingCredentials(service string) AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_CREDENTIALS_MISSING,
		Message:  fmt.Sprintf("Credentials for %s are not configured", service),
	}.WithDetail("service", service)
}

// Run errors

func ErrRunNotFound(runID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_RUN_NOT_FOUND,
		Message:  "Run not found",
	}.WithDetail("run_id", runID)
}

func ErrRunNotCompleted(runID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_RUN_NOT_COMPLETED,
		Message:  "Run has no artifact yet",
	}.WithDetail("run_id", runID)
}

// Generation errors

func ErrGenerationFailed(label string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_AI_GENERATION_FAILED,
		Message:  "Text generation failed",
	}.WithDetail("speaker", label)
}

// ErrResultTooShort marks a generated text below the minimum usable
// length. Recovered per attendee, never surfaced as an HTTP response.
func ErrResultTooShort(label, kind string, length int) AppError {
	return AppError{
		Code:    ErrorCode_AI_RESULT_TOO_SHORT,
		Message: fmt.Sprintf("Generated %s looks empty or too short", kind),
	}.WithDetail("speaker", label).
		WithDetail("length", fmt.Sprintf("%d", length))
}

// Integration errors

func ErrCRMFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_CRM_FAILED,
		Message:  fmt.Sprintf("CRM operation failed: %s", operation),
	}
}

func ErrDocsFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_DOCS_FAILED,
		Message:  fmt.Sprintf("Document store operation failed: %s", operation),
	}
}

func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}

func ErrTranscriptionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_TRANSCRIPTION_FAILED,
		Message:  "Audio transcription failed",
	}
}

func ErrCacheFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_CACHE_FAILED,
		Message:  fmt.Sprintf("Run store operation failed: %s", operation),
	}
}
