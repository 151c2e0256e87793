package session

import (
	"context"

	"bidportal/models"
)

type ctxKey struct{}

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// CurrentUser returns the logged-in user or nil.
func CurrentUser(ctx context.Context) *models.User {
	u, _ := ctx.Value(ctxKey{}).(*models.User)
	return u
}

func IsLoggedIn(ctx context.Context) bool {
	return CurrentUser(ctx) != nil
}
