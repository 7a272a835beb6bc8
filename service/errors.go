package services

import "fmt"

// Validation reason codes surfaced to callers. A ValidationError always means
// the request was rejected before any record mutation; persistence failures
// are returned untouched and are retryable.
const (
	CodeInvalidOverride       = "invalid_override_value"
	CodeJustificationRequired = "justification_required"
	CodeInvalidDecision       = "invalid_decision"
	CodeNotesRequired         = "decision_notes_required"
	CodeIllegalTransition     = "illegal_transition"
	CodeConfirmationRequired  = "confirmation_required"
	CodeReasonRequired        = "delete_reason_required"
	CodeRecordDeleted         = "record_deleted"
	CodeNotDeleted            = "record_not_deleted"
)

// ValidationError reports exactly which precondition failed.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newValidationError(code, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}
