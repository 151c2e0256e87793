package db

import (
	"context"

	"bidportal/models"
)

// ListMyFavoriteDocuments returns the user's favorites, most recent first.
func (s *Storage) ListMyFavoriteDocuments(ctx context.Context, userID int64) ([]models.FavoriteDocument, error) {
	return selectRows[models.FavoriteDocument](ctx, s,
		`SELECT d.id AS document_id, d.file_name, d.path, b.title AS bid_title, f.favorited_at
		FROM favorite_documents f
		JOIN documents d ON f.document_id = d.id
		JOIN bids b ON d.bid_id = b.id
		WHERE f.user_id = ?
		ORDER BY f.favorited_at DESC, d.id DESC`, userID)
}

// FavoriteDocument is idempotent: favoriting twice keeps the first entry.
func (s *Storage) FavoriteDocument(ctx context.Context, userID, documentID int64) error {
	_, err := s.exec(ctx,
		"INSERT INTO favorite_documents (user_id, document_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		userID, documentID)
	return err
}

func (s *Storage) UnfavoriteDocument(ctx context.Context, userID, documentID int64) error {
	_, err := s.exec(ctx,
		"DELETE FROM favorite_documents WHERE user_id = ? AND document_id = ?", userID, documentID)
	return err
}

// ListFavoriteIDsForBid returns which documents of the bid the user favorited.
func (s *Storage) ListFavoriteIDsForBid(ctx context.Context, userID, bidID int64) ([]int64, error) {
	rows, err := selectRows[struct {
		DocumentID int64 `json:"document_id"`
	}](ctx, s,
		`SELECT document_id FROM favorite_documents
		WHERE user_id = ? AND document_id IN (SELECT id FROM documents WHERE bid_id = ?)
		ORDER BY document_id`, userID, bidID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.DocumentID)
	}
	return ids, nil
}
