// Package postgres implements the catalog repositories on PostgreSQL.
// Aggregates map to one row each; owned collections and value objects are
// stored as JSONB so a save always writes the whole aggregate.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wilcommerce/catalog/pkg/database"
)

// Pool is the subset of pgxpool.Pool the repositories rely on. pgxmock's
// PgxPoolIface satisfies it as well, so the repositories can be tested
// without a live database.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// tracedPool wraps a Pool so every statement runs inside a database span.
// Slow queries are surfaced through database.SetSlowQueryLogging.
type tracedPool struct {
	pool Pool
}

// NewTracedPool returns a Pool that traces each statement it executes.
func NewTracedPool(pool Pool) Pool {
	return &tracedPool{pool: pool}
}

// queryOperation derives a span operation name from the statement verb,
// e.g. "SELECT * FROM brands" becomes "Select".
func queryOperation(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "Query"
	}
	verb := strings.ToLower(fields[0])
	return strings.ToUpper(verb[:1]) + verb[1:]
}

func (p *tracedPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	ctx, end := database.TraceQuery(ctx, queryOperation(sql), sql)
	tag, err := p.pool.Exec(ctx, sql, args...)
	end(err)
	return tag, err
}

func (p *tracedPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	ctx, end := database.TraceQuery(ctx, queryOperation(sql), sql)
	rows, err := p.pool.Query(ctx, sql, args...)
	end(err)
	return rows, err
}

func (p *tracedPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	ctx, end := database.TraceQuery(ctx, queryOperation(sql), sql)
	row := p.pool.QueryRow(ctx, sql, args...)
	// Row errors only surface at Scan time, so the span records the statement
	// without an error status.
	end(nil)
	return row
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}

func marshalJSONB(field string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", field, err)
	}
	return data, nil
}

func unmarshalJSONB(field string, data []byte, target any) error {
	if data == nil {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("unmarshal %s: %w", field, err)
	}
	return nil
}
