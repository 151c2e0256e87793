package handlers

import (
	"net/http"

	"bidportal/internal/session"
	"bidportal/models"

	"github.com/go-chi/chi/v5"
)

// Routes builds the /api router. loginLimit throttles login attempts.
func (h *Handler) Routes(loginLimit func(http.Handler) http.Handler) chi.Router {
	privileged := session.RequireRole(models.RoleAdministrator, models.RolePublicServer)
	standard := session.RequireRole(models.RoleStandard)

	r := chi.NewRouter()
	r.Use(h.Sessions.Load)

	r.Get("/ping", h.PingHandler)
	r.Route("/auth", func(r chi.Router) {
		r.With(loginLimit).Post("/login", h.LoginHandler)
		r.Post("/logout", h.LogoutHandler)
		r.Post("/register", h.RegisterHandler)
		r.With(h.Sessions.ProtectPage).Get("/me", h.MeHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.Sessions.ProtectPage)

		r.Get("/nav", h.NavHandler)

		// users
		r.Route("/users", func(r chi.Router) {
			r.Use(privileged)
			r.Get("/", h.ListUsersHandler)
			r.Post("/", h.CreateUserHandler)
			r.Post("/bulk", h.BulkActionHandler)
			r.Get("/{id}", h.GetUserHandler)
			r.Put("/{id}", h.UpdateUserHandler)
			r.Put("/{id}/status", h.SetUserStatusHandler)
			r.Delete("/{id}", h.DeleteUserHandler)
			r.Post("/{id}/reset-password", h.ResetPasswordHandler)
		})

		// bids
		r.Get("/bids", h.ListBidsHandler)
		r.Get("/bids/organizations", h.ListOrganizationsHandler)
		r.Get("/bids/{id}", h.GetBidHandler)
		r.Get("/bids/{id}/documents", h.ListDocumentsHandler)
		r.Group(func(r chi.Router) {
			r.Use(privileged)
			r.Post("/bids", h.CreateBidHandler)
			r.Put("/bids/{id}", h.UpdateBidHandler)
			r.Delete("/bids/{id}", h.DeleteBidHandler)
			r.Post("/bids/{id}/documents", h.CreateDocumentHandler)
			r.Get("/bids/{id}/proposals", h.ListProposalsHandler)
			r.Put("/proposals/{id}/status", h.UpdateProposalStatusHandler)
		})

		// participations, favorites
		r.Group(func(r chi.Router) {
			r.Use(standard)
			r.Get("/bids/{id}/participation", h.GetParticipationHandler)
			r.Post("/bids/{id}/join", h.JoinBidHandler)
			r.Post("/bids/{id}/proposals", h.SubmitProposalHandler)
			r.Get("/bids/{id}/favorites", h.FavoriteIDsForBidHandler)
			r.Get("/participations/my", h.MyParticipationsHandler)
			r.Get("/documents/favorites", h.MyFavoritesHandler)
			r.Post("/documents/{id}/favorite", h.FavoriteDocumentHandler)
			r.Delete("/documents/{id}/favorite", h.UnfavoriteDocumentHandler)
		})

		r.Get("/alerts", h.ListAlertsHandler)
		r.Put("/alerts/{id}/read", h.MarkAlertReadHandler)
	})
	return r
}
