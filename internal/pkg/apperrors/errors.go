package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// ValidationError reports a bad or missing input field. It is raised before
// any external call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// GenerationError wraps a failed call to the external text-generation
// provider. The workflow performs no automatic retry; callers decide.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("ai generation failed: %v", e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

func NewGenerationError(cause error) *GenerationError {
	return &GenerationError{Cause: cause}
}

// PersistenceError wraps a failure of the ledger or entity store.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

func NewPersistenceError(op string, cause error) *PersistenceError {
	return &PersistenceError{Op: op, Cause: cause}
}

// InvalidTransitionError is returned when a history record that is no longer
// Pending is asked to seal again. The first terminal status always wins.
type InvalidTransitionError struct {
	RequestId string
	To        string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("ai request %s is not pending, cannot transition to %s", e.RequestId, e.To)
}

func NewInvalidTransitionError(requestId, to string) *InvalidTransitionError {
	return &InvalidTransitionError{RequestId: requestId, To: to}
}

// NotFoundError signals a missing resource.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// ForbiddenError signals a role or ownership violation.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

// LimitExceededError carries daily AI usage details for 429 responses.
type LimitExceededError struct {
	Limit      int       `json:"limit"`
	Used       int       `json:"used"`
	ResetAfter time.Time `json:"reset_after"`
}

func (e *LimitExceededError) Error() string {
	return "daily AI usage limit exceeded"
}

func NewLimitExceededError(limit, used int, resetAfter time.Time) *LimitExceededError {
	return &LimitExceededError{Limit: limit, Used: used, ResetAfter: resetAfter}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsInvalidTransition reports whether err is (or wraps) an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var ite *InvalidTransitionError
	return errors.As(err, &ite)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
