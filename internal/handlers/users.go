package handlers

import (
	"context"
	"net/http"
	"strings"

	"bidportal/db"
	"bidportal/internal/session"
	"bidportal/models"
)

func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.UserFilter{
		Search: strings.TrimSpace(q.Get("search")),
		Role:   models.Role(q.Get("role")),
		Status: models.UserStatus(q.Get("status")),
	}
	users, err := h.Store.ListUsers(r.Context(), session.CurrentUser(r.Context()), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// managedUser loads a user the viewer may manage. Users of other
// organizations are reported as missing.
func (h *Handler) managedUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := h.Store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sameOrganization(session.CurrentUser(ctx), u.Organization) {
		return nil, db.ErrNotFound
	}
	return u, nil
}

func (h *Handler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	u, err := h.managedUser(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var nu models.NewUser
	if err := decodeJSON(w, r, &nu); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := validateAccount(nu.Name, nu.Email, nu.TaxID, nu.Password); err != nil {
		h.fail(w, r, err)
		return
	}
	if nu.Organization == nil {
		nu.Organization = session.CurrentUser(r.Context()).Organization
	}

	id, err := h.Store.CreateUser(r.Context(), nu)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

type userUpdate struct {
	Name         *string            `json:"name"`
	Email        *string            `json:"email"`
	TaxID        *string            `json:"tax_id"`
	Position     *string            `json:"position"`
	Organization *string            `json:"organization"`
	Role         *models.Role       `json:"role"`
	Status       *models.UserStatus `json:"status"`
}

// apply overwrites only the fields present in the request.
func (p userUpdate) apply(u *models.User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.TaxID != nil {
		u.TaxID = *p.TaxID
	}
	if p.Position != nil {
		u.Position = *p.Position
	}
	if p.Organization != nil {
		u.Organization = p.Organization
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
}

func (h *Handler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var patch userUpdate
	if err := decodeJSON(w, r, &patch); err != nil {
		h.fail(w, r, err)
		return
	}
	u, err := h.managedUser(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	patch.apply(u)
	if strings.TrimSpace(u.Name) == "" || strings.TrimSpace(u.Email) == "" {
		h.fail(w, r, invalid("name and email are required"))
		return
	}

	if err := h.Store.UpdateUser(r.Context(), *u); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) SetUserStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := h.managedUser(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Store.SetUserStatus(r.Context(), id, models.UserStatus(req.Status)); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := h.managedUser(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Store.DeleteUser(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetPasswordHandler returns the new credential to the caller, who is
// expected to hand it over to the user.
func (h *Handler) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := h.managedUser(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	plain, err := h.Store.ResetPassword(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"password": plain})
}

type bulkRequest struct {
	Action models.BulkAction `json:"action"`
	IDs    []int64           `json:"ids"`
}

func (h *Handler) BulkActionHandler(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	// Every target must belong to the caller's organization.
	for _, id := range req.IDs {
		if _, err := h.managedUser(r.Context(), id); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	n, err := h.Store.BulkAction(r.Context(), req.Action, req.IDs)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"affected": n})
}
