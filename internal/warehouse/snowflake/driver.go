package snowflake

import (
	"context"
	"database/sql"
	sqldriver "database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	sf "github.com/snowflakedb/gosnowflake"

	"github.com/gitpulse/gitpulse/internal/warehouse"
)

// Config holds the Snowflake session parameters. The password comes from the
// secret store, everything else from the profile.
type Config struct {
	Account   string
	User      string
	Password  string
	Role      string
	Warehouse string
	Database  string
	Schema    string
}

// Driver implements warehouse.Driver for Snowflake via database/sql.
type Driver struct {
	cfg Config
	db  *sql.DB
}

// New creates a new Snowflake driver. Connect must be called before use.
func New(cfg Config) *Driver {
	return &Driver{cfg: cfg}
}

// Connect opens and authenticates the Snowflake session.
func (d *Driver) Connect(ctx context.Context) error {
	dsn, err := sf.DSN(&sf.Config{
		Account:   d.cfg.Account,
		User:      d.cfg.User,
		Password:  d.cfg.Password,
		Role:      d.cfg.Role,
		Warehouse: d.cfg.Warehouse,
		Database:  d.cfg.Database,
		Schema:    d.cfg.Schema,
	})
	if err != nil {
		return fmt.Errorf("build dsn: %w", err)
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}

	// One authenticated session; the dashboard runs queries sequentially.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("authenticate: %w", err)
	}

	d.db = db
	return nil
}

// Close tears down the session.
func (d *Driver) Close() error {
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

// Ping checks if the session is alive.
func (d *Driver) Ping(ctx context.Context) error {
	if d.db == nil {
		return fmt.Errorf("%w: session not open", warehouse.ErrConnectionLost)
	}
	return d.db.PingContext(ctx)
}

// Query runs a statement and materializes the full result set.
func (d *Driver) Query(ctx context.Context, sqlText string, args ...any) (*warehouse.ResultTable, error) {
	if d.db == nil {
		return nil, fmt.Errorf("%w: session not open", warehouse.ErrConnectionLost)
	}

	start := time.Now()

	rows, err := d.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	var resultRows [][]any
	for rows.Next() {
		scan := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range scan {
			ptrs[i] = &scan[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		for i, v := range scan {
			if b, ok := v.([]byte); ok {
				scan[i] = string(b)
			}
		}
		resultRows = append(resultRows, scan)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	return &warehouse.ResultTable{
		Columns:  columns,
		Rows:     resultRows,
		Duration: time.Since(start),
	}, nil
}

// Name identifies the warehouse target.
func (d *Driver) Name() string {
	return "snowflake:" + d.cfg.Account + "/" + d.cfg.Database
}

// classify separates a lost session from a statement-level failure so the
// executor can surface the right error kind.
func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, sqldriver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", warehouse.ErrConnectionLost, err)
	}
	return fmt.Errorf("execute: %w", err)
}
