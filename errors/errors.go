package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// AppError is the unified error type returned by result operations.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried by the caller.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an *AppError with the same code, so that
// errors.Is(err, errors.New(ErrCodeNotFound, "")) matches any not-found error.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// AsAppError extracts the first *AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first *AppError in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// Is reports whether any *AppError in err's chain carries code.
func Is(err error, code ErrorCode) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.Code == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// IsRetryable reports whether err is an *AppError marked retryable.
func IsRetryable(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Retryable
}

// --- Result error constructors ---

// ImmutableWrite creates an error for a write on a result kind that cannot be written.
func ImmutableWrite(kind string) *AppError {
	return &AppError{
		Code: ErrCodeImmutableWrite, Message: fmt.Sprintf("%s results cannot be written", kind),
		Details: map[string]any{"result_type": kind},
	}
}

// TemplateRender creates an error for a placeholder with no matching parameter.
func TemplateRender(placeholder string) *AppError {
	return &AppError{
		Code: ErrCodeTemplateRender, Message: fmt.Sprintf("no parameter supplied for placeholder {%s}", placeholder),
		Details: map[string]any{"placeholder": placeholder},
	}
}

// UnsupportedFormat creates an error for a file type without a codec pair.
func UnsupportedFormat(fileType string, known []string) *AppError {
	sorted := append([]string(nil), known...)
	sort.Strings(sorted)
	return &AppError{
		Code: ErrCodeUnsupportedFormat,
		Message: fmt.Sprintf("%s not available, known file types are [%s]",
			fileType, strings.Join(sorted, ", ")),
		Details: map[string]any{"file_type": fileType, "known": sorted},
	}
}

// NotFound creates an error for a location that holds no result.
func NotFound(resource, location string) *AppError {
	details := map[string]any{"resource": resource}
	if location != "" {
		details["location"] = location
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("no %s found at %q", resource, location),
		Details: details,
	}
}

// Decode creates an error for a payload that could not be decoded.
func Decode(what string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeDecode, Message: fmt.Sprintf("failed to decode %s", what),
		Cause: cause,
	}
}

// SecretResolution creates an error for a secret that could not be resolved.
func SecretResolution(name string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeSecretResolution, Message: fmt.Sprintf("unable to resolve secret %q", name),
		Details: map[string]any{"secret": name}, Cause: cause,
	}
}

// IO creates an error for an underlying storage failure.
func IO(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeIO, Message: fmt.Sprintf("storage %s failed", operation),
		Retryable: true, Details: map[string]any{"operation": operation}, Cause: cause,
	}
}

// InvalidInput creates an error for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Internal creates an error for an unexpected internal failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Cause: cause,
	}
}
