package handlers

import (
	"net/http"

	"bidportal/db"
	"bidportal/internal/session"
)

func (h *Handler) ListAlertsHandler(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.Store.ListAlerts(r.Context(), session.CurrentUser(r.Context()).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

// MarkAlertReadHandler only touches alerts addressed to the caller.
func (h *Handler) MarkAlertReadHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ctx := r.Context()
	alerts, err := h.Store.ListAlerts(ctx, session.CurrentUser(ctx).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	owned := false
	for _, a := range alerts {
		if a.ID == id {
			owned = true
			break
		}
	}
	if !owned {
		h.fail(w, r, db.ErrNotFound)
		return
	}

	if err := h.Store.MarkAlertRead(ctx, id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
