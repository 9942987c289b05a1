package registration

import (
	"errors"
	"fmt"

	"github.com/mashaweer/mashaweer/internal/utils"
)

// ErrWrongStage is returned when an action does not belong to the current stage
var ErrWrongStage = errors.New("action not allowed at the current registration stage")

// ValidationError is a local input problem. It never reaches a collaborator
// and never advances the flow.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// SideEffectError is a failed OTP, storage or store call. Message is the
// best-effort user facing text pulled from the failure.
type SideEffectError struct {
	Op      string
	Message string
	Err     error
}

func (e *SideEffectError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *SideEffectError) Unwrap() error {
	return e.Err
}

func sideEffect(op, fallback string, err error) error {
	msg := utils.ExtractErrorMessage(err)
	if msg == "" {
		msg = fallback
	}
	return &SideEffectError{Op: op, Message: msg, Err: err}
}

// declined reports a side channel that answered without success
func declined(op, message, fallback string) error {
	if message == "" {
		message = fallback
	}
	return &SideEffectError{Op: op, Message: message, Err: errors.New(message)}
}

// IsValidation reports whether err is a local validation failure
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
