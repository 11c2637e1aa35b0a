package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/puddle/v2"

	"github.com/gitpulse/gitpulse/internal/warehouse"
)

// Driver implements warehouse.Driver for PostgreSQL-compatible warehouses.
// Metric SQL uses Snowflake-style `?` placeholders; Rebind translates them.
type Driver struct {
	dsn    string
	dbName string
	pool   *pgxpool.Pool
}

// New creates a new PostgreSQL driver. Connect must be called before use.
func New(dsn string) *Driver {
	return &Driver{dsn: dsn}
}

// Connect establishes a connection pool.
func (d *Driver) Connect(ctx context.Context) error {
	cfg, err := pgxpool.ParseConfig(d.dsn)
	if err != nil {
		return fmt.Errorf("parse dsn: %w", err)
	}

	cfg.MaxConns = 2
	cfg.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping: %w", err)
	}

	d.pool = pool
	d.dbName = cfg.ConnConfig.Database
	return nil
}

// Close closes the connection pool.
func (d *Driver) Close() error {
	if d.pool != nil {
		d.pool.Close()
		d.pool = nil
	}
	return nil
}

// Ping checks if the connection is alive.
func (d *Driver) Ping(ctx context.Context) error {
	if d.pool == nil {
		return fmt.Errorf("%w: pool not open", warehouse.ErrConnectionLost)
	}
	return d.pool.Ping(ctx)
}

// Query runs a statement and materializes the full result set.
func (d *Driver) Query(ctx context.Context, sqlText string, args ...any) (*warehouse.ResultTable, error) {
	if d.pool == nil {
		return nil, fmt.Errorf("%w: pool not open", warehouse.ErrConnectionLost)
	}

	start := time.Now()

	rows, err := d.pool.Query(ctx, Rebind(sqlText), args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	var resultRows [][]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		row := make([]any, len(values))
		for i, v := range values {
			row[i] = normalize(v)
		}
		resultRows = append(resultRows, row)
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
	return "postgres:" + d.dbName
}

// normalize maps pgx-specific value types onto the scalar set the result
// table carries. NUMERIC columns come back as pgtype.Numeric; everything
// else pgx already decodes to native Go types.
func normalize(v any) any {
	switch val := v.(type) {
	case pgtype.Numeric:
		if !val.Valid {
			return nil
		}
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case [16]byte:
		return fmt.Sprintf("%x-%x-%x-%x-%x", val[0:4], val[4:6], val[6:8], val[8:10], val[10:16])
	default:
		return v
	}
}

func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, puddle.ErrClosedPool) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", warehouse.ErrConnectionLost, err)
	}
	return fmt.Errorf("execute: %w", err)
}

// Rebind rewrites `?` placeholders into PostgreSQL's `$1..$n` form. Question
// marks inside single-quoted literals are left alone.
func Rebind(sqlText string) string {
	out := make([]byte, 0, len(sqlText)+8)
	n := 0
	inString := false
	for i := 0; i < len(sqlText); i++ {
		c := sqlText[i]
		switch {
		case c == '\'':
			inString = !inString
			out = append(out, c)
		case c == '?' && !inString:
			n++
			out = append(out, fmt.Sprintf("$%d", n)...)
		default:
			out = append(out, c)
		}
	}
	return string(out)
}
