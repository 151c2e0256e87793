package db

import (
	"context"
	"errors"

	"bidportal/models"
)

// CheckParticipation returns the user's participation in the bid, or nil
// when the user has not joined it.
func (s *Storage) CheckParticipation(ctx context.Context, bidID, userID int64) (*models.Participation, error) {
	p, err := getRow[models.Participation](ctx, s,
		"SELECT id, bid_id, user_id, joined_at FROM participations WHERE bid_id = ? AND user_id = ?",
		bidID, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return p, err
}

func (s *Storage) JoinBid(ctx context.Context, bidID, userID int64) (int64, error) {
	return s.insert(ctx,
		"INSERT INTO participations (bid_id, user_id) VALUES (?, ?) RETURNING id", bidID, userID)
}

// SubmitProposal records a pending proposal for a participation.
func (s *Storage) SubmitProposal(ctx context.Context, participationID int64, value float64, documentPath *string) (int64, error) {
	if value <= 0 {
		return 0, ErrInvalidProposalValue
	}
	return s.insert(ctx,
		`INSERT INTO proposals (participation_id, value, status, document_path)
		VALUES (?, ?, ?, ?) RETURNING id`,
		participationID, value, string(models.ProposalPending), documentPath)
}

// ListMyParticipations returns the bids the user joined, soonest closing
// first, each with the status of its latest proposal.
func (s *Storage) ListMyParticipations(ctx context.Context, userID int64) ([]models.MyParticipation, error) {
	return selectRows[models.MyParticipation](ctx, s,
		`SELECT b.id, b.title, b.description, b.organization, b.estimated_value, b.opens_at, b.closes_at,
		b.status, b.created_by, b.technical_requirements, b.economic_requirements,
		(SELECT p.status FROM proposals p WHERE p.participation_id = part.id
			ORDER BY p.submitted_at DESC, p.id DESC LIMIT 1) AS proposal_status
		FROM bids b
		JOIN participations part ON part.bid_id = b.id
		WHERE part.user_id = ?
		ORDER BY b.closes_at ASC, b.id ASC`, userID)
}

// ListProposalsForBid returns every proposal sent for the bid, cheapest first.
func (s *Storage) ListProposalsForBid(ctx context.Context, bidID int64) ([]models.ProposalEntry, error) {
	return selectRows[models.ProposalEntry](ctx, s,
		`SELECT p.id, u.id AS user_id, u.name, u.email, p.value, p.status, p.submitted_at
		FROM proposals p
		JOIN participations part ON p.participation_id = part.id
		JOIN users u ON part.user_id = u.id
		WHERE part.bid_id = ?
		ORDER BY p.value ASC, p.id ASC`, bidID)
}

// GetBidIDForProposal returns the bid a proposal was sent for.
func (s *Storage) GetBidIDForProposal(ctx context.Context, proposalID int64) (int64, error) {
	row, err := getRow[struct {
		BidID int64 `json:"bid_id"`
	}](ctx, s,
		`SELECT part.bid_id FROM proposals p
		JOIN participations part ON p.participation_id = part.id
		WHERE p.id = ?`, proposalID)
	if err != nil {
		return 0, err
	}
	return row.BidID, nil
}

func (s *Storage) UpdateProposalStatus(ctx context.Context, id int64, status models.ProposalStatus) error {
	if !status.Valid() {
		return ErrInvalidProposalStatus
	}
	return s.execOne(ctx, "UPDATE proposals SET status = ? WHERE id = ?", string(status), id)
}
