package handlers

import (
	"net/http"

	"bidportal/internal/session"
	"bidportal/models"
)

type NavLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type navResponse struct {
	User  *models.User `json:"user"`
	Links []NavLink    `json:"links"`
}

// Navigation returns the menu shown to u.
func Navigation(u *models.User) []NavLink {
	links := []NavLink{{Label: "Home", Href: "/pages/licitacoes/listagem-licitacoes.html"}}
	switch {
	case u.IsPrivileged():
		links = append(links,
			NavLink{Label: "Users", Href: "/pages/usuarios/listagem-usuarios.html"},
			NavLink{Label: "New Bid", Href: "/pages/licitacoes/form-licitacoes.html"},
		)
	case u.IsStandardUser():
		links = append(links,
			NavLink{Label: "My Bids", Href: "/pages/licitacoes/minhas-licitacoes.html"},
			NavLink{Label: "My Documents", Href: "/pages/documentos/meus-documentos.html"},
			NavLink{Label: "Alerts", Href: "/pages/alertas/alertas.html"},
		)
	}
	return links
}

func (h *Handler) NavHandler(w http.ResponseWriter, r *http.Request) {
	u := session.CurrentUser(r.Context())
	writeJSON(w, http.StatusOK, navResponse{User: u, Links: Navigation(u)})
}
