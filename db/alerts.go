package db

import (
	"context"
	"strings"

	"bidportal/models"
)

func (s *Storage) CreateAlert(ctx context.Context, a models.NewAlert) (int64, error) {
	if strings.TrimSpace(a.Message) == "" {
		return 0, ErrEmptyMessage
	}
	if a.Category == "" {
		a.Category = models.DefaultAlertCategory
	}
	return s.insert(ctx,
		"INSERT INTO alerts (user_id, bid_id, message, category) VALUES (?, ?, ?, ?) RETURNING id",
		a.UserID, a.BidID, a.Message, a.Category)
}

// ListAlerts returns the user's alerts, newest first.
func (s *Storage) ListAlerts(ctx context.Context, userID int64) ([]models.Alert, error) {
	return selectRows[models.Alert](ctx, s,
		`SELECT id, user_id, bid_id, message, category, is_read, created_at
		FROM alerts WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
}

func (s *Storage) MarkAlertRead(ctx context.Context, alertID int64) error {
	return s.execOne(ctx, "UPDATE alerts SET is_read = ? WHERE id = ?", true, alertID)
}

// ListParticipantsForBid returns the ids of every user who joined the bid.
func (s *Storage) ListParticipantsForBid(ctx context.Context, bidID int64) ([]int64, error) {
	rows, err := selectRows[struct {
		UserID int64 `json:"user_id"`
	}](ctx, s, "SELECT user_id FROM participations WHERE bid_id = ? ORDER BY user_id", bidID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.UserID)
	}
	return ids, nil
}
