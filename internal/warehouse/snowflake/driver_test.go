package snowflake

import (
	"context"
	sqldriver "database/sql/driver"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpulse/gitpulse/internal/warehouse"
)

func TestQueryBeforeConnect(t *testing.T) {
	d := New(Config{Account: "acme-eu", User: "dash", Database: "ANALYTICS"})

	_, err := d.Query(context.Background(), "SELECT 1")
	require.ErrorIs(t, err, warehouse.ErrConnectionLost)

	err = d.Ping(context.Background())
	require.ErrorIs(t, err, warehouse.ErrConnectionLost)
}

func TestClassify(t *testing.T) {
	assert.ErrorIs(t, classify(sqldriver.ErrBadConn), warehouse.ErrConnectionLost)

	netErr := &net.OpError{Op: "read", Err: errors.New("connection reset by peer")}
	assert.ErrorIs(t, classify(netErr), warehouse.ErrConnectionLost)

	serverErr := errors.New("SQL compilation error: syntax error at position 7")
	assert.NotErrorIs(t, classify(serverErr), warehouse.ErrConnectionLost)
}

func TestName(t *testing.T) {
	d := New(Config{Account: "acme-eu", Database: "ANALYTICS"})
	assert.Equal(t, "snowflake:acme-eu/ANALYTICS", d.Name())
}

func TestCloseWithoutConnect(t *testing.T) {
	d := New(Config{})
	require.NoError(t, d.Close())
}
