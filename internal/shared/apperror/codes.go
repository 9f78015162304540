package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	// Punch-flow specific: a prior day still has an entrada without a
	// matching salida and the caller must confirm how to resolve it.
	CodePendingExit = "PENDING_EXIT"

	// Configuration errors: misconfigured work locations, malformed stored
	// coordinates, missing routing credentials. Always user-visible.
	CodeMisconfigured = "MISCONFIGURED"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
