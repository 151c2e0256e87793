package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"bidportal/internal/logging"
	"bidportal/internal/metrics"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Open connects to the store. driver is "postgres" or "sqlite".
func Open(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	if driver == "sqlite" && strings.Contains(dsn, ":memory:") {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// Executor runs statements against the store exactly once.
type Executor struct {
	db      *sqlx.DB
	metrics *metrics.Registry
}

func NewExecutor(db *sqlx.DB, m *metrics.Registry) *Executor {
	return &Executor{db: db, metrics: m}
}

// Query rebinds the ? placeholders of statement to the driver's bindvar and
// executes it. Driver errors are returned unmodified.
func (e *Executor) Query(ctx context.Context, statement string, params ...any) (Result, error) {
	if strings.TrimSpace(statement) == "" {
		return Result{}, ErrMissingStatement
	}
	stmt := e.db.Rebind(statement)

	kind := "exec"
	if returnsRows(stmt) {
		kind = "query"
	}

	start := time.Now()
	var (
		res Result
		err error
	)
	if kind == "query" {
		res, err = e.query(ctx, stmt, params)
	} else {
		res, err = e.exec(ctx, stmt, params)
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
		logging.Error("statement failed", "kind", kind, "error", err.Error())
	}
	e.metrics.ObserveQuery(kind, outcome, time.Since(start))
	return res, err
}

func (e *Executor) query(ctx context.Context, stmt string, params []any) (Result, error) {
	rows, err := e.db.QueryxContext(ctx, stmt, params...)
	if err != nil {
		return Result{}, err
	}
	defer rows.Close()

	out := make([]map[string]any, 0)
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return Result{}, err
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return Result{}, err
	}

	data, err := json.Marshal(out)
	if err != nil {
		return Result{}, fmt.Errorf("encode rows: %w", err)
	}
	return Result{Rows: data}, nil
}

func (e *Executor) exec(ctx context.Context, stmt string, params []any) (Result, error) {
	r, err := e.db.ExecContext(ctx, stmt, params...)
	if err != nil {
		return Result{}, err
	}
	var res Result
	if n, err := r.RowsAffected(); err == nil {
		res.AffectedRows = n
	}
	// lib/pq does not report insert ids
	if id, err := r.LastInsertId(); err == nil {
		res.InsertID = id
	}
	return res, nil
}
