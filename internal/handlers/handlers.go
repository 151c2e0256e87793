package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"bidportal/db"
	"bidportal/internal/bridge"
	"bidportal/internal/logging"
	"bidportal/internal/password"
	"bidportal/internal/session"
	"bidportal/models"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Handler wraps Storage and the session manager for the JSON API.
type Handler struct {
	Store    Storage
	Sessions *session.Manager
}

func NewHandler(store Storage, sessions *session.Manager) *Handler {
	return &Handler{Store: store, Sessions: sessions}
}

// PingHandler answers "ok" for health checks.
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

var (
	errForbidden = errors.New("forbidden")
	errConflict  = errors.New("already participating in this bid")
)

// badRequest marks an error as the client's fault.
type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

func invalid(msg string) error { return badRequest{msg: msg} }

var validationErrors = []error{
	db.ErrNoUsersSelected,
	db.ErrUnknownBulkAction,
	db.ErrInvalidRole,
	db.ErrInvalidStatus,
	db.ErrInvalidProposalStatus,
	db.ErrInvalidProposalValue,
	db.ErrEmptyMessage,
	bridge.ErrMissingStatement,
	password.ErrTooLong,
}

func statusFor(err error) (int, string) {
	var br badRequest
	if errors.As(err, &br) {
		return http.StatusBadRequest, br.msg
	}
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return http.StatusBadRequest, err.Error()
		}
	}
	switch {
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, errForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, errConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, session.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, bridge.ErrUnavailable):
		return http.StatusServiceUnavailable, "service unavailable"
	}
	var be *bridge.Error
	if errors.As(err, &be) {
		return http.StatusInternalServerError, be.Message
	}
	return http.StatusInternalServerError, err.Error()
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		var userID int64
		if u := session.CurrentUser(r.Context()); u != nil {
			userID = u.ID
		}
		logging.WithRequest(chimw.GetReqID(r.Context()), userID, r.URL.Path).Errorw("request failed", "error", err.Error())
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return invalid("Failed to read request body")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return invalid("Invalid JSON format")
	}
	return nil
}

func urlID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid("Invalid " + name)
	}
	return id, nil
}

// sameOrganization reports whether org belongs to the viewer's organization.
func sameOrganization(viewer *models.User, org *string) bool {
	return viewer != nil && viewer.Organization != nil && org != nil && *viewer.Organization == *org
}

type idResponse struct {
	ID int64 `json:"id"`
}
