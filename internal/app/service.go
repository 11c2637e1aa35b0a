package app

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gitpulse/gitpulse/internal/warehouse"
)

// Service is the query executor: it validates statements, obtains the handle
// from the connection manager and classifies failures into the
// config/connection/query taxonomy. It performs no silent recovery; a lost
// connection is surfaced as *ErrConnection and the caller decides whether to
// invalidate the manager and retry (the TUI does so exactly once).
type Service struct {
	manager *warehouse.Manager
	log     zerolog.Logger
}

// NewService creates a new query executor on top of a connection manager.
func NewService(manager *warehouse.Manager, log zerolog.Logger) *Service {
	return &Service{manager: manager, log: log}
}

// Run executes a SQL statement with positional bind parameters and returns
// the fully materialized result. Values are always bound, never interpolated
// into the statement text.
func (s *Service) Run(ctx context.Context, sqlText string, args ...any) (*warehouse.ResultTable, error) {
	if strings.TrimSpace(sqlText) == "" {
		// Rejected locally; no round-trip.
		return nil, &ErrQuery{Query: sqlText, Cause: errors.New("empty SQL statement")}
	}

	drv, err := s.manager.Get(ctx)
	if err != nil {
		var cfgErr *ErrConfig
		if errors.As(err, &cfgErr) {
			return nil, err
		}
		return nil, &ErrConnection{Cause: err}
	}

	queryID := uuid.NewString()

	result, err := drv.Query(ctx, sqlText, args...)
	if err != nil {
		s.log.Warn().
			Str("query_id", queryID).
			Str("warehouse", drv.Name()).
			Err(err).
			Msg("query failed")

		if errors.Is(err, warehouse.ErrConnectionLost) {
			return nil, &ErrConnection{Cause: err}
		}
		return nil, &ErrQuery{Query: sqlText, Cause: err}
	}

	s.log.Debug().
		Str("query_id", queryID).
		Str("warehouse", drv.Name()).
		Int("rows", result.RowCount()).
		Dur("duration", result.Duration).
		Msg("query ok")

	return result, nil
}

// Ping verifies the current session, if one is open.
func (s *Service) Ping(ctx context.Context) error {
	drv, err := s.manager.Get(ctx)
	if err != nil {
		return &ErrConnection{Cause: err}
	}
	if err := drv.Ping(ctx); err != nil {
		return &ErrConnection{Cause: err}
	}
	return nil
}

// WarehouseName reports the active warehouse target, or "" before first use.
func (s *Service) WarehouseName(ctx context.Context) string {
	drv, err := s.manager.Get(ctx)
	if err != nil {
		return ""
	}
	return drv.Name()
}
