package handlers

import (
	"net/http"
	"net/mail"
	"strings"

	"bidportal/internal/password"
	"bidportal/internal/session"
	"bidportal/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		h.fail(w, r, invalid("email and password are required"))
		return
	}

	s, err := h.Sessions.Login(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Sessions.SetCookie(w, s)
	writeJSON(w, http.StatusOK, s.User)
}

// LogoutHandler is safe to call without a session.
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Logout(r.Context(), h.Sessions.Token(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	h.Sessions.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := decodeJSON(w, r, &reg); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := validateAccount(reg.Name, reg.Email, reg.TaxID, reg.Password); err != nil {
		h.fail(w, r, err)
		return
	}

	id, err := h.Store.RegisterUser(r.Context(), reg)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, session.CurrentUser(r.Context()))
}

func validateAccount(name, email, taxID, secret string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return invalid("a valid email is required")
	}
	if strings.TrimSpace(taxID) == "" {
		return invalid("tax_id is required")
	}
	if len(secret) < 6 {
		return invalid("password must have at least 6 characters")
	}
	if len(secret) > password.MaxLength {
		return invalid(password.ErrTooLong.Error())
	}
	return nil
}
