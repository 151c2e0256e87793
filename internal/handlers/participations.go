package handlers

import (
	"net/http"

	"bidportal/internal/session"
	"bidportal/models"
)

func (h *Handler) GetParticipationHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.Store.CheckParticipation(r.Context(), id, session.CurrentUser(r.Context()).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]*models.Participation{"participation": p})
}

// JoinBidHandler checks for an earlier participation before joining. The
// unique (bid, user) constraint catches the race between the two.
func (h *Handler) JoinBidHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ctx := r.Context()
	if _, err := h.visibleBid(ctx, id); err != nil {
		h.fail(w, r, err)
		return
	}
	viewer := session.CurrentUser(ctx)
	existing, err := h.Store.CheckParticipation(ctx, id, viewer.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if existing != nil {
		h.fail(w, r, errConflict)
		return
	}

	partID, err := h.Store.JoinBid(ctx, id, viewer.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: partID})
}

type proposalRequest struct {
	Value        float64 `json:"value"`
	DocumentPath *string `json:"document_path"`
}

func (h *Handler) SubmitProposalHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req proposalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	ctx := r.Context()
	if _, err := h.visibleBid(ctx, id); err != nil {
		h.fail(w, r, err)
		return
	}
	part, err := h.Store.CheckParticipation(ctx, id, session.CurrentUser(ctx).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if part == nil {
		h.fail(w, r, invalid("join the bid before sending a proposal"))
		return
	}

	propID, err := h.Store.SubmitProposal(ctx, part.ID, req.Value, req.DocumentPath)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: propID})
}

func (h *Handler) MyParticipationsHandler(w http.ResponseWriter, r *http.Request) {
	mine, err := h.Store.ListMyParticipations(r.Context(), session.CurrentUser(r.Context()).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mine)
}

func (h *Handler) UpdateProposalStatusHandler(w http.ResponseWriter, r *http.Request) {
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
	bidID, err := h.Store.GetBidIDForProposal(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := h.ownedBid(r.Context(), bidID); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Store.UpdateProposalStatus(r.Context(), id, models.ProposalStatus(req.Status)); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
