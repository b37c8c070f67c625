package errors

import (
	"fmt"
)

// ErrNotFound is returned when a requested resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned for missing, invalid or expired credentials
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message == "" {
		return "unauthorized"
	}
	return e.Message
}

// ErrValidation is returned when a request is missing required checkout data
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrGatewayUnavailable wraps any failure talking to the payment provider
type ErrGatewayUnavailable struct {
	Cause error
}

func (e *ErrGatewayUnavailable) Error() string {
	if e.Cause == nil {
		return "payment gateway unavailable"
	}
	return fmt.Sprintf("payment gateway unavailable: %v", e.Cause)
}

func (e *ErrGatewayUnavailable) Unwrap() error {
	return e.Cause
}

// ErrSignatureMismatch is returned when a payment assertion fails verification
type ErrSignatureMismatch struct{}

func (e *ErrSignatureMismatch) Error() string {
	return "signature verification failed"
}

// ErrConflict is returned when a unique field already exists
type ErrConflict struct {
	Resource string
	Message  string
}

func (e *ErrConflict) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Resource, e.Message)
}

// ErrInvalidStateTransition is returned when a status change is rejected
type ErrInvalidStateTransition struct {
	From interface{}
	To   interface{}
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %v to %v", e.From, e.To)
}
