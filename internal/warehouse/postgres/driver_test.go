package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/puddle/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpulse/gitpulse/internal/warehouse"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"SELECT * FROM T WHERE A = ?", "SELECT * FROM T WHERE A = $1"},
		{"WHERE A = ? AND B = ? AND C = ?", "WHERE A = $1 AND B = $2 AND C = $3"},
		{"WHERE A = '?' AND B = ?", "WHERE A = '?' AND B = $1"},
		{"WHERE A = 'it''s ?' AND B = ?", "WHERE A = 'it''s ?' AND B = $1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Rebind(tt.in), "input: %s", tt.in)
	}
}

func TestQueryBeforeConnect(t *testing.T) {
	d := New("postgresql://localhost/metrics")

	_, err := d.Query(context.Background(), "SELECT 1")
	require.ErrorIs(t, err, warehouse.ErrConnectionLost)

	err = d.Ping(context.Background())
	require.ErrorIs(t, err, warehouse.ErrConnectionLost)
}

func TestClassify(t *testing.T) {
	assert.ErrorIs(t, classify(puddle.ErrClosedPool), warehouse.ErrConnectionLost)
	assert.NotErrorIs(t, classify(errors.New(`relation "no_such_table" does not exist`)), warehouse.ErrConnectionLost)
}

func TestConnectBadDSN(t *testing.T) {
	d := New("://not-a-dsn")

	err := d.Connect(context.Background())
	require.Error(t, err)
}
