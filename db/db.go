// Package db is the data access layer of the portal. Every operation turns
// one business request into exactly one parameterized statement, sends it
// through a bridge.Querier and shapes the rows into models types. Store
// errors are returned to the caller unmodified.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bidportal/internal/bridge"
	"bidportal/internal/logging"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrNoUsersSelected       = errors.New("no users selected")
	ErrUnknownBulkAction     = errors.New("unknown bulk action")
	ErrInvalidRole           = errors.New("invalid role")
	ErrInvalidStatus         = errors.New("invalid user status")
	ErrInvalidProposalStatus = errors.New("invalid proposal status")
	ErrInvalidProposalValue  = errors.New("proposal value must be positive")
	ErrEmptyMessage          = errors.New("alert message is required")
)

type Storage struct {
	q        bridge.Querier
	hashCost int
}

type Option func(*Storage)

// WithHashCost sets the bcrypt cost used for stored credentials.
func WithHashCost(cost int) Option {
	return func(s *Storage) { s.hashCost = cost }
}

func NewStorage(q bridge.Querier, opts ...Option) *Storage {
	s := &Storage{q: q}
	for _, o := range opts {
		o(s)
	}
	return s
}

func selectRows[T any](ctx context.Context, s *Storage, stmt string, args ...any) ([]T, error) {
	logging.Debug("select", "statement", stmt)
	res, err := s.q.Query(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := res.Scan(&out); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	return out, nil
}

func getRow[T any](ctx context.Context, s *Storage, stmt string, args ...any) (*T, error) {
	rows, err := selectRows[T](ctx, s, stmt, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// exec runs a write and returns the number of affected rows.
func (s *Storage) exec(ctx context.Context, stmt string, args ...any) (int64, error) {
	logging.Debug("exec", "statement", stmt)
	res, err := s.q.Query(ctx, stmt, args...)
	if err != nil {
		return 0, err
	}
	return res.AffectedRows, nil
}

// execOne is exec for statements addressing a single row by id.
func (s *Storage) execOne(ctx context.Context, stmt string, args ...any) error {
	n, err := s.exec(ctx, stmt, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// insert runs an INSERT ... RETURNING id and returns the new id.
func (s *Storage) insert(ctx context.Context, stmt string, args ...any) (int64, error) {
	row, err := getRow[struct {
		ID int64 `json:"id"`
	}](ctx, s, stmt, args...)
	if err != nil {
		return 0, err
	}
	return row.ID, nil
}

// likePattern turns a search term into a case-folded substring pattern
// with its wildcards escaped. Use it with LOWER(col) LIKE ? ESCAPE '\'.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

// inList returns "?, ?, ?" and the ids as statement arguments.
func inList(ids []int64) (string, []any) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", "), args
}
