package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpulse/gitpulse/internal/app"
	"github.com/gitpulse/gitpulse/internal/warehouse"
)

type nopDriver struct{}

func (nopDriver) Connect(ctx context.Context) error { return nil }
func (nopDriver) Close() error                      { return nil }
func (nopDriver) Ping(ctx context.Context) error    { return nil }
func (nopDriver) Name() string                      { return "nop" }
func (nopDriver) Query(ctx context.Context, sql string, args ...any) (*warehouse.ResultTable, error) {
	return &warehouse.ResultTable{}, nil
}

func TestRetryOnceRecoversFromLostConnection(t *testing.T) {
	opens := 0
	manager := warehouse.NewManager(func(ctx context.Context) (warehouse.Driver, error) {
		opens++
		return nopDriver{}, nil
	})
	// Prime the slot so Invalidate has something to discard.
	_, err := manager.Get(context.Background())
	require.NoError(t, err)

	calls := 0
	got, err := retryOnce(manager, func() ([]string, error) {
		calls++
		if calls == 1 {
			return nil, &app.ErrConnection{Cause: errors.New("session expired")}
		}
		return []string{"api"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"api"}, got)
	assert.Equal(t, 2, calls, "exactly one retry")

	// The manager was invalidated in between; the next Get re-opens.
	_, err = manager.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, opens)
}

func TestRetryOnceGivesUpAfterSecondFailure(t *testing.T) {
	manager := warehouse.NewManager(func(ctx context.Context) (warehouse.Driver, error) {
		return nopDriver{}, nil
	})

	calls := 0
	_, err := retryOnce(manager, func() ([]string, error) {
		calls++
		return nil, &app.ErrConnection{Cause: errors.New("still down")}
	})

	var connErr *app.ErrConnection
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, 2, calls, "never more than one retry")
}

func TestRetryOnceDoesNotRetryQueryErrors(t *testing.T) {
	manager := warehouse.NewManager(func(ctx context.Context) (warehouse.Driver, error) {
		return nopDriver{}, nil
	})

	calls := 0
	_, err := retryOnce(manager, func() ([]string, error) {
		calls++
		return nil, &app.ErrQuery{Query: "SELECT *", Cause: errors.New("bad SQL")}
	})

	var qErr *app.ErrQuery
	require.ErrorAs(t, err, &qErr)
	assert.Equal(t, 1, calls, "query errors are surfaced, not retried")
}
