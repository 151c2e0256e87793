package db

import (
	"context"
	"fmt"

	"bidportal/internal/password"
	"bidportal/models"
)

// userColumns never includes the credential.
const userColumns = "id, name, email, tax_id, position, organization, role, status, created_at"

type credentialRow struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

// ListUsers returns the users the viewer may manage, filtered and sorted
// by name. Viewers whose role has no user visibility get an empty list
// without touching the store.
func (s *Storage) ListUsers(ctx context.Context, viewer *models.User, f models.UserFilter) ([]models.User, error) {
	rule, ok := UserVisibility.For(viewer)
	if !ok {
		return []models.User{}, nil
	}
	scope := rule.Scope(viewer)
	if f.Search != "" {
		like := likePattern(f.Search)
		scope.And(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\')`, like, like)
	}
	if f.Role != "" {
		scope.And("role = ?", string(f.Role))
	}
	if f.Status != "" {
		scope.And("status = ?", string(f.Status))
	}
	stmt := "SELECT " + userColumns + " FROM users" + scope.Where() + " ORDER BY " + rule.OrderBy
	return selectRows[models.User](ctx, s, stmt, scope.Args...)
}

func (s *Storage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return getRow[models.User](ctx, s, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
}

// FindActiveUserByEmail returns an active user together with its password hash.
func (s *Storage) FindActiveUserByEmail(ctx context.Context, email string) (*models.User, string, error) {
	row, err := getRow[credentialRow](ctx, s,
		"SELECT "+userColumns+", password_hash FROM users WHERE email = ? AND status = ?",
		email, string(models.StatusActive))
	if err != nil {
		return nil, "", err
	}
	return &row.User, row.PasswordHash, nil
}

// CreateUser stores an account made by a privileged user. Role defaults to
// Standard and status to active.
func (s *Storage) CreateUser(ctx context.Context, u models.NewUser) (int64, error) {
	if u.Role == "" {
		u.Role = models.RoleStandard
	}
	if u.Status == "" {
		u.Status = models.StatusActive
	}
	if !u.Role.Valid() {
		return 0, ErrInvalidRole
	}
	if !u.Status.Valid() {
		return 0, ErrInvalidStatus
	}
	hash, err := password.Hash(u.Password, s.hashCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	return s.insert(ctx,
		`INSERT INTO users (name, email, tax_id, password_hash, position, organization, role, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		u.Name, u.Email, u.TaxID, hash, u.Position, u.Organization, string(u.Role), string(u.Status))
}

// RegisterUser stores a self-service sign-up. The account is always a
// Standard user without organization.
func (s *Storage) RegisterUser(ctx context.Context, r models.Registration) (int64, error) {
	hash, err := password.Hash(r.Password, s.hashCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	return s.insert(ctx,
		`INSERT INTO users (name, email, tax_id, password_hash, role, status)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		r.Name, r.Email, r.TaxID, hash, string(models.RoleStandard), string(models.StatusActive))
}

// UpdateUser overwrites the editable fields of an existing user.
func (s *Storage) UpdateUser(ctx context.Context, u models.User) error {
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	if !u.Status.Valid() {
		return ErrInvalidStatus
	}
	return s.execOne(ctx,
		`UPDATE users SET name = ?, email = ?, tax_id = ?, position = ?, role = ?, organization = ?, status = ?
		WHERE id = ?`,
		u.Name, u.Email, u.TaxID, u.Position, string(u.Role), u.Organization, string(u.Status), u.ID)
}

func (s *Storage) SetUserStatus(ctx context.Context, id int64, status models.UserStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return s.execOne(ctx, "UPDATE users SET status = ? WHERE id = ?", string(status), id)
}

func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	return s.execOne(ctx, "DELETE FROM users WHERE id = ?", id)
}

// ResetPassword replaces the user's credential with a random one and
// returns it in clear so it can be handed to the user once.
func (s *Storage) ResetPassword(ctx context.Context, id int64) (string, error) {
	plain, err := password.Generate(password.ResetLength)
	if err != nil {
		return "", err
	}
	hash, err := password.Hash(plain, s.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if err := s.execOne(ctx, "UPDATE users SET password_hash = ? WHERE id = ?", hash, id); err != nil {
		return "", err
	}
	return plain, nil
}

// BulkAction applies action to every listed user in one statement and
// returns the number of affected rows.
func (s *Storage) BulkAction(ctx context.Context, action models.BulkAction, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoUsersSelected
	}
	placeholders, args := inList(ids)
	switch action {
	case models.BulkActivate:
		return s.exec(ctx, "UPDATE users SET status = ? WHERE id IN ("+placeholders+")",
			append([]any{string(models.StatusActive)}, args...)...)
	case models.BulkDeactivate:
		return s.exec(ctx, "UPDATE users SET status = ? WHERE id IN ("+placeholders+")",
			append([]any{string(models.StatusInactive)}, args...)...)
	case models.BulkDelete:
		return s.exec(ctx, "DELETE FROM users WHERE id IN ("+placeholders+")", args...)
	default:
		return 0, ErrUnknownBulkAction
	}
}
