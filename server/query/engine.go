package query

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/gear6io/mallard/pkg/errors"
	"github.com/gear6io/mallard/utils"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/rs/zerolog"
)

// ComponentType defines the query engine component type identifier
const ComponentType = "query"

// Engine hands out DuckDB sessions. Each request gets its own in-memory
// session and closes it when done; there is no pooling and no state
// shared between sessions, so a failed request cannot poison the next.
type Engine struct {
	config  *EngineConfig
	logger  zerolog.Logger
	metrics *EngineMetrics
}

// EngineConfig holds configuration options for the engine
type EngineConfig struct {
	MaxMemoryMB    int
	EnableQueryLog bool
}

// EngineMetrics tracks engine counters across sessions
type EngineMetrics struct {
	SessionsOpened  int64
	QueriesExecuted int64
	TotalQueryTime  time.Duration
	FailureCount    int64
	mu              sync.Mutex
}

// Column describes one result column with its database type name.
type Column struct {
	Name string
	Type string
}

// Result is the fully materialized outcome of one statement.
type Result struct {
	Columns  []Column
	Rows     [][]interface{}
	RowCount int64
	Duration time.Duration
}

// DefaultEngineConfig returns a default configuration for the engine
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		MaxMemoryMB:    512,
		EnableQueryLog: false,
	}
}

// NewEngine creates a new DuckDB session factory
func NewEngine(config *EngineConfig, logger zerolog.Logger) *Engine {
	if config == nil {
		config = DefaultEngineConfig()
	}
	return &Engine{
		config:  config,
		logger:  logger.With().Str("component", ComponentType).Logger(),
		metrics: &EngineMetrics{},
	}
}

// GetMetrics returns a copy of the current engine counters
func (e *Engine) GetMetrics() EngineMetrics {
	e.metrics.mu.Lock()
	defer e.metrics.mu.Unlock()

	return EngineMetrics{
		SessionsOpened:  e.metrics.SessionsOpened,
		QueriesExecuted: e.metrics.QueriesExecuted,
		TotalQueryTime:  e.metrics.TotalQueryTime,
		FailureCount:    e.metrics.FailureCount,
	}
}

// Session represents one in-memory DuckDB connection. It is not safe
// for concurrent use; every request opens its own.
type Session struct {
	id     string
	db     *sql.DB
	engine *Engine
	logger zerolog.Logger
}

// Session opens a fresh in-memory DuckDB session.
func (e *Engine) Session(ctx context.Context) (*Session, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		e.incrementFailures()
		return nil, errors.New(ErrOpenFailed, "failed to open DuckDB session", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		e.incrementFailures()
		return nil, errors.New(ErrPingFailed, "failed to ping DuckDB session", err)
	}

	id := utils.GenerateULIDString()
	s := &Session{
		id:     id,
		db:     db,
		engine: e,
		logger: e.logger.With().Str("session_id", id).Logger(),
	}
	s.applySettings(ctx)

	e.metrics.mu.Lock()
	e.metrics.SessionsOpened++
	e.metrics.mu.Unlock()

	return s, nil
}

// applySettings configures the session. Failures are non-fatal: the
// session still works with DuckDB defaults.
func (s *Session) applySettings(ctx context.Context) {
	if s.engine.config.MaxMemoryMB > 0 {
		limit := fmt.Sprintf("SET memory_limit = '%dMB'", s.engine.config.MaxMemoryMB)
		if _, err := s.db.ExecContext(ctx, limit); err != nil {
			s.logger.Warn().Err(err).Msg("failed to set memory limit")
		}
	}

	if _, err := s.db.ExecContext(ctx, "SET enable_progress_bar = false"); err != nil {
		s.logger.Warn().Err(err).Msg("failed to disable progress bar")
	}
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string {
	return s.id
}

// Execute runs one statement and materializes the full result set.
func (s *Session) Execute(ctx context.Context, query string) (*Result, error) {
	if s.db == nil {
		return nil, errors.New(ErrSessionClosed, "session already closed", nil)
	}

	if s.engine.config.EnableQueryLog {
		s.logger.Debug().Str("sql", query).Msg("executing query")
	}

	start := time.Now()

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		s.engine.incrementFailures()
		return nil, errors.New(ErrExecuteFailed, "failed to execute query", err).AddContext("session_id", s.id)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		s.engine.incrementFailures()
		return nil, errors.New(ErrColumnsFailed, "failed to read result columns", err).AddContext("session_id", s.id)
	}

	columns := make([]Column, len(names))
	for i, name := range names {
		columns[i] = Column{Name: name}
	}
	if types, err := rows.ColumnTypes(); err == nil {
		for i, ct := range types {
			if i < len(columns) {
				columns[i].Type = ct.DatabaseTypeName()
			}
		}
	}

	var resultRows [][]interface{}
	rowCount := int64(0)

	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			s.engine.incrementFailures()
			return nil, errors.Newf(ErrScanFailed, "failed to scan row %d", rowCount).WithCause(err)
		}

		resultRows = append(resultRows, values)
		rowCount++
	}

	if err := rows.Err(); err != nil {
		s.engine.incrementFailures()
		return nil, errors.New(ErrRowsFailed, "failed while iterating rows", err).AddContext("session_id", s.id)
	}

	duration := time.Since(start)

	s.engine.metrics.mu.Lock()
	s.engine.metrics.QueriesExecuted++
	s.engine.metrics.TotalQueryTime += duration
	s.engine.metrics.mu.Unlock()

	if s.engine.config.EnableQueryLog {
		s.logger.Debug().Int64("rows", rowCount).Dur("duration", duration).Msg("query completed")
	}

	return &Result{
		Columns:  columns,
		Rows:     resultRows,
		RowCount: rowCount,
		Duration: duration,
	}, nil
}

// Close releases the session's connection.
func (s *Session) Close() error {
	if s.db == nil {
		return nil
	}
	db := s.db
	s.db = nil
	return db.Close()
}

// ColumnNames returns just the column names, in result order.
func (r *Result) ColumnNames() []string {
	names := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		names[i] = c.Name
	}
	return names
}

// Records maps every row to a column-keyed map, the shape data pages
// are served in.
func (r *Result) Records() []map[string]interface{} {
	records := make([]map[string]interface{}, 0, len(r.Rows))
	for _, row := range r.Rows {
		record := make(map[string]interface{}, len(r.Columns))
		for i, col := range r.Columns {
			if i < len(row) {
				record[col.Name] = row[i]
			}
		}
		records = append(records, record)
	}
	return records
}

func (e *Engine) incrementFailures() {
	e.metrics.mu.Lock()
	e.metrics.FailureCount++
	e.metrics.mu.Unlock()
}
