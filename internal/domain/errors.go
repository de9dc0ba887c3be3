package domain

import "fmt"

// ValidationError indicates malformed or out-of-range input. It is caught
// before any persistence or payment call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// EligibilityError indicates a request that is well-formed but blocked by a
// business policy (cancellation window, daily quota). Each violated
// constraint is reported separately.
type EligibilityError struct {
	Reasons []string
}

func (e *EligibilityError) Error() string {
	if len(e.Reasons) == 1 {
		return e.Reasons[0]
	}
	msg := "cancellation not allowed:"
	for _, r := range e.Reasons {
		msg += " " + r + ";"
	}
	return msg[:len(msg)-1]
}

// NewEligibilityError creates an EligibilityError from the violated constraints.
func NewEligibilityError(reasons ...string) *EligibilityError {
	return &EligibilityError{Reasons: reasons}
}

// NotFoundError indicates a missing resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given resource and identifier.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError indicates a state clash: an overlapping booking, or a write
// lost to a concurrent transaction.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NewConflictError creates a ConflictError with the given message.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// ForbiddenError indicates the caller is authenticated but not allowed to act
// on the resource.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

// NewForbiddenError creates a ForbiddenError with the given message.
func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

// UnauthorizedError indicates missing or invalid credentials.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

// NewUnauthorizedError creates an UnauthorizedError with the given message.
func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

// InvalidStateError indicates a booking lifecycle transition that the status
// state machine does not allow.
type InvalidStateError struct {
	From string
	To   string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// NewInvalidStateError creates an InvalidStateError for the given transition.
func NewInvalidStateError(from, to string) *InvalidStateError {
	return &InvalidStateError{From: from, To: to}
}
