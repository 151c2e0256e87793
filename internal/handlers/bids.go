package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"bidportal/db"
	"bidportal/internal/logging"
	"bidportal/internal/session"
	"bidportal/models"
)

func (h *Handler) ListBidsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.BidFilter{
		Search:       strings.TrimSpace(q.Get("search")),
		Organization: strings.TrimSpace(q.Get("organization")),
	}
	bids, err := h.Store.ListBids(r.Context(), session.CurrentUser(r.Context()), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bids)
}

func (h *Handler) ListOrganizationsHandler(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.Store.ListOrganizations(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

// visibleBid loads a bid the viewer could find in its own listing.
func (h *Handler) visibleBid(ctx context.Context, id int64) (*models.Bid, error) {
	b, err := h.Store.GetBidByID(ctx, id)
	if err != nil {
		return nil, err
	}
	viewer := session.CurrentUser(ctx)
	switch {
	case viewer.IsStandardUser() && b.Status == models.BidOpen:
		return b, nil
	case viewer.IsPrivileged() && sameOrganization(viewer, &b.Organization):
		return b, nil
	}
	return nil, db.ErrNotFound
}

// ownedBid loads a bid the viewer may change.
func (h *Handler) ownedBid(ctx context.Context, id int64) (*models.Bid, error) {
	b, err := h.Store.GetBidByID(ctx, id)
	if err != nil {
		return nil, err
	}
	viewer := session.CurrentUser(ctx)
	if !viewer.IsPrivileged() || !sameOrganization(viewer, &b.Organization) {
		return nil, errForbidden
	}
	return b, nil
}

type bidDetail struct {
	models.Bid
	Documents     []models.Document     `json:"documents"`
	FavoriteIDs   []int64               `json:"favorite_ids,omitempty"`
	Participation *models.Participation `json:"participation,omitempty"`
}

func (h *Handler) GetBidHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ctx := r.Context()
	b, err := h.visibleBid(ctx, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	detail := bidDetail{Bid: *b}
	if detail.Documents, err = h.Store.ListDocumentsForBid(ctx, id); err != nil {
		h.fail(w, r, err)
		return
	}
	if viewer := session.CurrentUser(ctx); viewer.IsStandardUser() {
		if detail.FavoriteIDs, err = h.Store.ListFavoriteIDsForBid(ctx, viewer.ID, id); err != nil {
			h.fail(w, r, err)
			return
		}
		if detail.Participation, err = h.Store.CheckParticipation(ctx, id, viewer.ID); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, detail)
}

func validateBid(b *models.Bid) error {
	if strings.TrimSpace(b.Title) == "" {
		return invalid("title is required")
	}
	if b.OpensAt.IsZero() || b.ClosesAt.IsZero() {
		return invalid("opens_at and closes_at are required")
	}
	if !b.ClosesAt.After(b.OpensAt.Time) {
		return invalid("closes_at must be after opens_at")
	}
	if b.EstimatedValue < 0 {
		return invalid("estimated_value must not be negative")
	}
	switch b.Status {
	case "", models.BidOpen, models.BidClosed, models.BidCanceled:
	default:
		return invalid("invalid status")
	}
	return nil
}

func (h *Handler) CreateBidHandler(w http.ResponseWriter, r *http.Request) {
	var b models.Bid
	if err := decodeJSON(w, r, &b); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := validateBid(&b); err != nil {
		h.fail(w, r, err)
		return
	}
	viewer := session.CurrentUser(r.Context())
	if viewer.Organization == nil {
		h.fail(w, r, invalid("your account has no organization"))
		return
	}
	b.Organization = *viewer.Organization
	b.CreatedBy = &viewer.ID

	id, err := h.Store.CreateBid(r.Context(), b)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

// UpdateBidHandler saves the bid and alerts every participant.
func (h *Handler) UpdateBidHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var b models.Bid
	if err := decodeJSON(w, r, &b); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := validateBid(&b); err != nil {
		h.fail(w, r, err)
		return
	}
	ctx := r.Context()
	current, err := h.ownedBid(ctx, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	b.ID = id
	b.Organization = current.Organization
	b.CreatedBy = current.CreatedBy
	if b.Status == "" {
		b.Status = current.Status
	}

	if err := h.Store.UpdateBid(ctx, b); err != nil {
		h.fail(w, r, err)
		return
	}
	h.notifyParticipants(ctx, id, fmt.Sprintf("The bid %q was updated.", b.Title))
	writeJSON(w, http.StatusOK, b)
}

// notifyParticipants is best effort: the update already happened.
func (h *Handler) notifyParticipants(ctx context.Context, bidID int64, message string) {
	ids, err := h.Store.ListParticipantsForBid(ctx, bidID)
	if err != nil {
		logging.Warn("list participants failed", "bid_id", bidID, "error", err.Error())
		return
	}
	for _, userID := range ids {
		_, err := h.Store.CreateAlert(ctx, models.NewAlert{
			UserID:   userID,
			BidID:    &bidID,
			Message:  message,
			Category: models.DefaultAlertCategory,
		})
		if err != nil {
			logging.Warn("create alert failed", "bid_id", bidID, "user_id", userID, "error", err.Error())
		}
	}
}

func (h *Handler) DeleteBidHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := h.ownedBid(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Store.DeleteBid(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := h.visibleBid(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	docs, err := h.Store.ListDocumentsForBid(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *Handler) CreateDocumentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var d models.Document
	if err := decodeJSON(w, r, &d); err != nil {
		h.fail(w, r, err)
		return
	}
	if strings.TrimSpace(d.FileName) == "" || strings.TrimSpace(d.Path) == "" {
		h.fail(w, r, invalid("file_name and path are required"))
		return
	}
	if _, err := h.ownedBid(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	d.BidID = id

	docID, err := h.Store.CreateDocument(r.Context(), d)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: docID})
}

func (h *Handler) ListProposalsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := h.ownedBid(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	entries, err := h.Store.ListProposalsForBid(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
