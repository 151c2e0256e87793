// Package bridge forwards SQL statements and positional parameters to the
// store and returns the raw outcome. It performs no validation of the
// statement, no authorization and no retries.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrMissingStatement is returned before execution for a blank statement.
	ErrMissingStatement = errors.New("statement is required")
	// ErrUnavailable means the bridge could not be reached at all.
	ErrUnavailable = errors.New("query bridge unavailable")
	// ErrNoRows is returned when scanning the result of a statement that produced no row set.
	ErrNoRows = errors.New("statement returned no row set")
)

// Querier executes one statement. Both the HTTP Client and the in-process
// Executor implement it.
type Querier interface {
	Query(ctx context.Context, statement string, params ...any) (Result, error)
}

// Request is the wire form of a statement.
type Request struct {
	Statement  string `json:"statement"`
	Parameters []any  `json:"parameters"`
}

// Result is the outcome of one statement: a row set for queries, affected
// rows and the inserted id for everything else.
type Result struct {
	Rows         json.RawMessage
	AffectedRows int64
	InsertID     int64
}

type execResult struct {
	AffectedRows int64 `json:"affectedRows"`
	InsertID     int64 `json:"insertId"`
}

type errorBody struct {
	Error string `json:"error"`
}

// HasRows reports whether the statement produced a row set.
func (r Result) HasRows() bool { return r.Rows != nil }

// Scan decodes the row set into dst, a pointer to a slice of structs keyed
// by column name.
func (r Result) Scan(dst any) error {
	if r.Rows == nil {
		return ErrNoRows
	}
	return json.Unmarshal(r.Rows, dst)
}

// MarshalJSON renders the result the way the bridge answers on the wire.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Rows != nil {
		return r.Rows, nil
	}
	return json.Marshal(execResult{AffectedRows: r.AffectedRows, InsertID: r.InsertID})
}

func (r *Result) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if strings.HasPrefix(trimmed, "[") {
		r.Rows = append(json.RawMessage(nil), trimmed...)
		return nil
	}
	var e execResult
	if err := json.Unmarshal(b, &e); err != nil {
		return err
	}
	r.AffectedRows, r.InsertID = e.AffectedRows, e.InsertID
	return nil
}

var (
	rowKeywords = map[string]bool{
		"SELECT": true, "WITH": true, "VALUES": true, "SHOW": true,
		"PRAGMA": true, "EXPLAIN": true, "DESCRIBE": true,
	}
	returningRe = regexp.MustCompile(`(?i)\bRETURNING\b`)
)

// returnsRows decides whether a statement is run as a query or an exec.
func returnsRows(statement string) bool {
	s := strings.TrimLeft(statement, " \t\r\n(")
	end := strings.IndexFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '('
	})
	if end < 0 {
		end = len(s)
	}
	if rowKeywords[strings.ToUpper(s[:end])] {
		return true
	}
	return returningRe.MatchString(s)
}
