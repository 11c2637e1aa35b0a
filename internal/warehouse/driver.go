package warehouse

import "context"

// Driver defines the interface for warehouse access.
// All implementations must be safe for concurrent use.
type Driver interface {
	// Connect establishes the warehouse session.
	Connect(ctx context.Context) error

	// Close tears down the warehouse session.
	Close() error

	// Ping checks if the session is alive.
	Ping(ctx context.Context) error

	// Query runs a SQL statement with positional bind parameters and
	// materializes the full result set. A broken or closed session is
	// reported as an error wrapping ErrConnectionLost.
	Query(ctx context.Context, sql string, args ...any) (*ResultTable, error)

	// Name identifies the warehouse target for display and logging.
	Name() string
}
