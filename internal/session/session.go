// Package session holds the identity of the logged-in user for the
// lifetime of a browser session. Sessions are server-side records keyed by
// a random id carried in an HttpOnly cookie.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bidportal/db"
	"bidportal/internal/logging"
	"bidportal/internal/metrics"
	"bidportal/internal/password"
	"bidportal/models"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials covers unknown emails, wrong passwords and
	// inactive accounts alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
)

// Data is one stored session. User never carries the credential.
type Data struct {
	ID        string      `json:"session_id"`
	User      models.User `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

type Store interface {
	Save(ctx context.Context, s Data, ttl time.Duration) error
	// Load returns ErrSessionNotFound for unknown or expired ids.
	Load(ctx context.Context, id string) (*Data, error)
	Delete(ctx context.Context, id string) error
}

// Credentials looks up an active user and its password hash at login, and
// the current account record on every request.
type Credentials interface {
	FindActiveUserByEmail(ctx context.Context, email string) (*models.User, string, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

type Options struct {
	TTL        time.Duration
	CookieName string
	Secure     bool
	LoginPath  string
}

type Manager struct {
	store   Store
	users   Credentials
	opts    Options
	metrics *metrics.Registry
}

func NewManager(store Store, users Credentials, opts Options, m *metrics.Registry) *Manager {
	if opts.TTL <= 0 {
		opts.TTL = 8 * time.Hour
	}
	if opts.CookieName == "" {
		opts.CookieName = "bidportal_session"
	}
	if opts.LoginPath == "" {
		opts.LoginPath = "/index.html"
	}
	return &Manager{store: store, users: users, opts: opts, metrics: m}
}

// Login checks the credentials of an active user and opens a session.
func (m *Manager) Login(ctx context.Context, email, plain string) (*Data, error) {
	user, hash, err := m.users.FindActiveUserByEmail(ctx, email)
	if errors.Is(err, db.ErrNotFound) {
		m.metrics.ObserveLogin("rejected")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		m.metrics.ObserveLogin("error")
		return nil, err
	}
	if !password.Check(plain, hash) {
		m.metrics.ObserveLogin("rejected")
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	s := Data{
		ID:        uuid.New().String(),
		User:      *user,
		CreatedAt: now,
		ExpiresAt: now.Add(m.opts.TTL),
	}
	if err := m.store.Save(ctx, s, m.opts.TTL); err != nil {
		m.metrics.ObserveLogin("error")
		return nil, fmt.Errorf("save session: %w", err)
	}
	m.metrics.ObserveLogin("ok")
	logging.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return &s, nil
}

// Logout ends the session. Unknown or empty ids are not an error.
func (m *Manager) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Resolve returns the current profile of a live session's user. Sessions of
// deleted or deactivated accounts are dropped.
func (m *Manager) Resolve(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	s, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if time.Now().After(s.ExpiresAt) {
		_ = m.store.Delete(ctx, id)
		return nil, ErrSessionNotFound
	}
	user, err := m.users.GetUserByID(ctx, s.User.ID)
	if errors.Is(err, db.ErrNotFound) {
		_ = m.store.Delete(ctx, id)
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reload session user: %w", err)
	}
	if user.Status != models.StatusActive {
		logging.Info("closing session of inactive user", "user_id", user.ID)
		_ = m.store.Delete(ctx, id)
		return nil, ErrSessionNotFound
	}
	return user, nil
}
