package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrRemote       = errors.New("remote error")
	ErrNetwork      = errors.New("network error")
	ErrUpload       = errors.New("upload rejected")
)

// APIError is any non-2xx answer from the portfolio service. Fields carries
// the server's per-field validation messages when the envelope includes them.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	case ErrInvalidInput:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	case ErrRemote:
		return true
	}
	return false
}

func NewAPIError(statusCode int, message string, fields map[string][]string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message, Fields: fields}
}

// NetworkError means no usable response was obtained: dial or DNS failure,
// timeout, or an unreadable body. Its reported status code is always 0.
type NetworkError struct {
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("network error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("network error: %s", e.Message)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

func NewNetwork(message string, err error) *NetworkError {
	return &NetworkError{Message: message, Err: err}
}

// ValidationError is the client-side pre-submit gate. It is produced before
// any network call is made.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d invalid field(s)", len(e.Fields))
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// UploadError covers media collaborator rejections: unconfigured service,
// non-image content, oversize file, or an upstream upload failure.
type UploadError struct {
	Reason string
	Err    error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upload rejected: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("upload rejected: %s", e.Reason)
}

func (e *UploadError) Unwrap() error { return e.Err }

func (e *UploadError) Is(target error) bool { return target == ErrUpload }

func NewUpload(reason string, err error) *UploadError {
	return &UploadError{Reason: reason, Err: err}
}

// StatusCode extracts the HTTP status behind err. Network and client-side
// validation failures report 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// FieldErrors returns the per-field messages behind err, joining the
// client-side and server-side shapes into one map. Nil when err carries none.
func FieldErrors(err error) map[string][]string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		return apiErr.Fields
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) && len(valErr.Fields) > 0 {
		out := make(map[string][]string, len(valErr.Fields))
		for k, v := range valErr.Fields {
			out[k] = []string{v}
		}
		return out
	}
	return nil
}
