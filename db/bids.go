package db

import (
	"context"

	"bidportal/models"
)

const bidColumns = "id, title, description, organization, estimated_value, opens_at, closes_at, status, created_by, technical_requirements, economic_requirements"

// ListBids returns the bids visible to the viewer: open bids soonest
// closing first for Standard users, the bids of their own organization
// newest first for privileged users.
func (s *Storage) ListBids(ctx context.Context, viewer *models.User, f models.BidFilter) ([]models.Bid, error) {
	rule, ok := BidVisibility.For(viewer)
	if !ok {
		return []models.Bid{}, nil
	}
	scope := rule.Scope(viewer)
	if f.Search != "" {
		like := likePattern(f.Search)
		scope.And(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, like, like)
	}
	if f.Organization != "" {
		scope.And("organization = ?", f.Organization)
	}
	stmt := "SELECT " + bidColumns + " FROM bids" + scope.Where() + " ORDER BY " + rule.OrderBy
	return selectRows[models.Bid](ctx, s, stmt, scope.Args...)
}

// ListOrganizations returns every organization that published a bid.
func (s *Storage) ListOrganizations(ctx context.Context) ([]string, error) {
	rows, err := selectRows[struct {
		Organization string `json:"organization"`
	}](ctx, s, "SELECT DISTINCT organization FROM bids ORDER BY organization")
	if err != nil {
		return nil, err
	}
	orgs := make([]string, 0, len(rows))
	for _, r := range rows {
		orgs = append(orgs, r.Organization)
	}
	return orgs, nil
}

func (s *Storage) GetBidByID(ctx context.Context, id int64) (*models.Bid, error) {
	return getRow[models.Bid](ctx, s, "SELECT "+bidColumns+" FROM bids WHERE id = ?", id)
}

func (s *Storage) CreateBid(ctx context.Context, b models.Bid) (int64, error) {
	if b.Status == "" {
		b.Status = models.BidOpen
	}
	return s.insert(ctx,
		`INSERT INTO bids (title, description, organization, estimated_value, opens_at, closes_at, status,
		created_by, technical_requirements, economic_requirements)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		b.Title, b.Description, b.Organization, b.EstimatedValue, b.OpensAt, b.ClosesAt, string(b.Status),
		b.CreatedBy, b.TechnicalRequirements, b.EconomicRequirements)
}

func (s *Storage) UpdateBid(ctx context.Context, b models.Bid) error {
	return s.execOne(ctx,
		`UPDATE bids SET title = ?, description = ?, organization = ?, estimated_value = ?, opens_at = ?,
		closes_at = ?, status = ?, technical_requirements = ?, economic_requirements = ?
		WHERE id = ?`,
		b.Title, b.Description, b.Organization, b.EstimatedValue, b.OpensAt, b.ClosesAt, string(b.Status),
		b.TechnicalRequirements, b.EconomicRequirements, b.ID)
}

func (s *Storage) DeleteBid(ctx context.Context, id int64) error {
	return s.execOne(ctx, "DELETE FROM bids WHERE id = ?", id)
}

func (s *Storage) ListDocumentsForBid(ctx context.Context, bidID int64) ([]models.Document, error) {
	return selectRows[models.Document](ctx, s,
		"SELECT id, bid_id, file_name, path FROM documents WHERE bid_id = ? ORDER BY id", bidID)
}

func (s *Storage) CreateDocument(ctx context.Context, d models.Document) (int64, error) {
	return s.insert(ctx,
		"INSERT INTO documents (bid_id, file_name, path) VALUES (?, ?, ?) RETURNING id",
		d.BidID, d.FileName, d.Path)
}
