package handlers

import (
	"net/http"

	"bidportal/internal/session"
)

func (h *Handler) MyFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	favs, err := h.Store.ListMyFavoriteDocuments(r.Context(), session.CurrentUser(r.Context()).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, favs)
}

func (h *Handler) FavoriteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Store.FavoriteDocument(r.Context(), session.CurrentUser(r.Context()).ID, id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UnfavoriteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Store.UnfavoriteDocument(r.Context(), session.CurrentUser(r.Context()).ID, id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) FavoriteIDsForBidHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ids, err := h.Store.ListFavoriteIDsForBid(r.Context(), session.CurrentUser(r.Context()).ID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}
