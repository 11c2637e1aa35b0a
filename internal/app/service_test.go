package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpulse/gitpulse/internal/warehouse"
)

// fakeDriver scripts query outcomes and records statements.
type fakeDriver struct {
	mu       sync.Mutex
	queries  []string
	args     [][]any
	result   *warehouse.ResultTable
	queryErr error
}

func (d *fakeDriver) Connect(ctx context.Context) error { return nil }
func (d *fakeDriver) Close() error                      { return nil }
func (d *fakeDriver) Ping(ctx context.Context) error    { return nil }
func (d *fakeDriver) Name() string                      { return "fake:test" }

func (d *fakeDriver) Query(ctx context.Context, sql string, args ...any) (*warehouse.ResultTable, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queries = append(d.queries, sql)
	d.args = append(d.args, args)
	if d.queryErr != nil {
		return nil, d.queryErr
	}
	if d.result != nil {
		return d.result, nil
	}
	return &warehouse.ResultTable{}, nil
}

func newTestService(drv *fakeDriver) (*Service, *int) {
	opens := 0
	manager := warehouse.NewManager(func(ctx context.Context) (warehouse.Driver, error) {
		opens++
		return drv, nil
	})
	return NewService(manager, zerolog.Nop()), &opens
}

func TestRunEmptyStatement(t *testing.T) {
	drv := &fakeDriver{}
	svc, opens := newTestService(drv)

	for _, sqlText := range []string{"", "   ", "\n\t"} {
		_, err := svc.Run(context.Background(), sqlText)

		var qErr *ErrQuery
		require.ErrorAs(t, err, &qErr, "empty statement must be a query error")
	}

	assert.Zero(t, *opens, "no connection opened for a rejected statement")
	assert.Empty(t, drv.queries, "no round-trip for a rejected statement")
}

func TestRunPassesResultThrough(t *testing.T) {
	drv := &fakeDriver{
		result: &warehouse.ResultTable{
			Columns: []string{"REPO", "DEPLOYMENTS"},
			Rows: [][]any{
				{"api", int64(3)},
				{"web", int64(7)},
			},
		},
	}
	svc, _ := newTestService(drv)

	got, err := svc.Run(context.Background(), "SELECT REPO, DEPLOYMENTS FROM DORA_METRICS_WEEKLY")
	require.NoError(t, err)

	assert.Equal(t, 2, got.RowCount())
	assert.Equal(t, []string{"REPO", "DEPLOYMENTS"}, got.Columns)
}

func TestRunBindsArgs(t *testing.T) {
	drv := &fakeDriver{}
	svc, _ := newTestService(drv)

	_, err := svc.Run(context.Background(), "SELECT * FROM REPO_VELOCITY WHERE REPO = ?", "api")
	require.NoError(t, err)

	require.Len(t, drv.args, 1)
	assert.Equal(t, []any{"api"}, drv.args[0])
}

func TestRunClassifiesQueryError(t *testing.T) {
	drv := &fakeDriver{
		queryErr: errors.New("SQL compilation error: Object 'NO_SUCH_TABLE' does not exist"),
	}
	svc, _ := newTestService(drv)

	_, err := svc.Run(context.Background(), "SELECT * FROM NO_SUCH_TABLE")

	var qErr *ErrQuery
	require.ErrorAs(t, err, &qErr)
	assert.Contains(t, qErr.Error(), "NO_SUCH_TABLE", "diagnostic message preserved")

	var cErr *ErrConnection
	assert.False(t, errors.As(err, &cErr), "a server-side failure is not a connection error")
}

func TestRunClassifiesLostConnection(t *testing.T) {
	drv := &fakeDriver{
		queryErr: fmt.Errorf("%w: session closed", warehouse.ErrConnectionLost),
	}
	svc, _ := newTestService(drv)

	_, err := svc.Run(context.Background(), "SELECT 1")

	var cErr *ErrConnection
	require.ErrorAs(t, err, &cErr)

	var qErr *ErrQuery
	assert.False(t, errors.As(err, &qErr), "a lost connection is not a query error")

	// Exactly one attempt: no automatic retry.
	assert.Len(t, drv.queries, 1)
}

func TestRunReportsFailedOpenAsConnectionError(t *testing.T) {
	manager := warehouse.NewManager(func(ctx context.Context) (warehouse.Driver, error) {
		return nil, errors.New("endpoint unreachable")
	})
	svc := NewService(manager, zerolog.Nop())

	_, err := svc.Run(context.Background(), "SELECT 1")

	var cErr *ErrConnection
	require.ErrorAs(t, err, &cErr)
}

func TestRunPreservesConfigError(t *testing.T) {
	manager := warehouse.NewManager(func(ctx context.Context) (warehouse.Driver, error) {
		return nil, &ErrConfig{Cause: errors.New("missing account")}
	})
	svc := NewService(manager, zerolog.Nop())

	_, err := svc.Run(context.Background(), "SELECT 1")

	var cfgErr *ErrConfig
	require.ErrorAs(t, err, &cfgErr)
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")

	assert.ErrorIs(t, &ErrConfig{Cause: cause}, cause)
	assert.ErrorIs(t, &ErrConnection{Cause: cause}, cause)
	assert.ErrorIs(t, &ErrQuery{Query: "SELECT 1", Cause: cause}, cause)
}
