package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Result contract errors
const (
	// ErrCodeImmutableWrite indicates a write on a result that cannot be written.
	ErrCodeImmutableWrite ErrorCode = "IMMUTABLE_WRITE"
	// ErrCodeTemplateRender indicates a location template placeholder had no parameter.
	ErrCodeTemplateRender ErrorCode = "TEMPLATE_RENDER"
	// ErrCodeUnsupportedFormat indicates a tabular file type with no registered codec pair.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	// ErrCodeSecretResolution indicates a secret could not be resolved.
	ErrCodeSecretResolution ErrorCode = "SECRET_RESOLUTION"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested location holds no result.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeDecode indicates stored bytes or an inline location could not be decoded.
	ErrCodeDecode ErrorCode = "DECODE"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Storage errors
const (
	// ErrCodeIO indicates an underlying storage failure.
	ErrCodeIO ErrorCode = "IO"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeIO:       true,
	ErrCodeInternal: false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// Retrying is the caller's decision; this package never retries internally.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
