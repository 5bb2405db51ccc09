package errors

// Code represents an error code
type Code string

// Error codes reported to tool callers
const (
	CodeUnknown              Code = "UNKNOWN"               // Unknown error occurred
	CodeInternalError        Code = "INTERNAL_ERROR"        // Internal system error
	CodeValidationFailed     Code = "VALIDATION_FAILED"     // Input validation failed
	CodeInvalidParameter     Code = "INVALID_PARAMETER"     // Invalid parameter provided
	CodeMissingParameter     Code = "MISSING_PARAMETER"     // Required parameter missing
	CodeConnectivityError    Code = "CONNECTIVITY_ERROR"    // Cannot reach the upstream system
	CodeTimeoutError         Code = "TIMEOUT_ERROR"         // Upstream call timed out
	CodeAuthenticationFailed Code = "AUTHENTICATION_FAILED" // Invalid or expired credential
	CodeNotFound             Code = "NOT_FOUND"             // Requested entity absent
	CodeRateLimited          Code = "RATE_LIMITED"          // Upstream throttling
	CodeUpstreamError        Code = "UPSTREAM_ERROR"        // Unclassified non-success upstream response
	CodeConfigurationInvalid Code = "CONFIGURATION_INVALID" // Configuration invalid
)
