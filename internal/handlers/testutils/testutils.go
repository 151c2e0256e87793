package testutils

import (
	"context"
	"net/http"

	"bidportal/internal/session"
	"bidportal/models"

	"github.com/go-chi/chi/v5"
)

// WithChiURLParams puts path parameters into the chi route context of req.
func WithChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for k, v := range params {
		chiCtx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

// AsUser attaches u as the logged-in user of req.
func AsUser(req *http.Request, u *models.User) *http.Request {
	return req.WithContext(session.WithUser(req.Context(), u))
}
