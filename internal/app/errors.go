package app

import "fmt"

// ErrConfig represents missing or invalid connection configuration.
// It is fatal: surfaced before any warehouse dial is attempted.
type ErrConfig struct {
	Cause error
}

func (e *ErrConfig) Error() string {
	return fmt.Sprintf("config error: %v", e.Cause)
}

func (e *ErrConfig) Unwrap() error {
	return e.Cause
}

// ErrConnection represents a warehouse session that could not be established
// or has been lost. The caller may invalidate the manager and retry once.
type ErrConnection struct {
	Cause error
}

func (e *ErrConnection) Error() string {
	return fmt.Sprintf("connection error: %v", e.Cause)
}

func (e *ErrConnection) Unwrap() error {
	return e.Cause
}

// ErrQuery represents a statement rejected or failed server-side. It carries
// the warehouse's diagnostic and is not retried automatically.
type ErrQuery struct {
	Query string
	Cause error
}

func (e *ErrQuery) Error() string {
	return fmt.Sprintf("query error: %v", e.Cause)
}

func (e *ErrQuery) Unwrap() error {
	return e.Cause
}
