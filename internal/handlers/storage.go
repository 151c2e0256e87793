package handlers

import (
	"context"

	"bidportal/models"
)

// Storage is the data access layer as seen by the handlers.
type Storage interface {
	ListUsers(ctx context.Context, viewer *models.User, f models.UserFilter) ([]models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, u models.NewUser) (int64, error)
	RegisterUser(ctx context.Context, r models.Registration) (int64, error)
	UpdateUser(ctx context.Context, u models.User) error
	SetUserStatus(ctx context.Context, id int64, status models.UserStatus) error
	DeleteUser(ctx context.Context, id int64) error
	ResetPassword(ctx context.Context, id int64) (string, error)
	BulkAction(ctx context.Context, action models.BulkAction, ids []int64) (int64, error)

	ListBids(ctx context.Context, viewer *models.User, f models.BidFilter) ([]models.Bid, error)
	ListOrganizations(ctx context.Context) ([]string, error)
	GetBidByID(ctx context.Context, id int64) (*models.Bid, error)
	CreateBid(ctx context.Context, b models.Bid) (int64, error)
	UpdateBid(ctx context.Context, b models.Bid) error
	DeleteBid(ctx context.Context, id int64) error
	ListDocumentsForBid(ctx context.Context, bidID int64) ([]models.Document, error)
	CreateDocument(ctx context.Context, d models.Document) (int64, error)

	CheckParticipation(ctx context.Context, bidID, userID int64) (*models.Participation, error)
	JoinBid(ctx context.Context, bidID, userID int64) (int64, error)
	SubmitProposal(ctx context.Context, participationID int64, value float64, documentPath *string) (int64, error)
	ListMyParticipations(ctx context.Context, userID int64) ([]models.MyParticipation, error)
	ListProposalsForBid(ctx context.Context, bidID int64) ([]models.ProposalEntry, error)
	GetBidIDForProposal(ctx context.Context, proposalID int64) (int64, error)
	UpdateProposalStatus(ctx context.Context, id int64, status models.ProposalStatus) error

	CreateAlert(ctx context.Context, a models.NewAlert) (int64, error)
	ListAlerts(ctx context.Context, userID int64) ([]models.Alert, error)
	MarkAlertRead(ctx context.Context, alertID int64) error
	ListParticipantsForBid(ctx context.Context, bidID int64) ([]int64, error)

	ListMyFavoriteDocuments(ctx context.Context, userID int64) ([]models.FavoriteDocument, error)
	FavoriteDocument(ctx context.Context, userID, documentID int64) error
	UnfavoriteDocument(ctx context.Context, userID, documentID int64) error
	ListFavoriteIDsForBid(ctx context.Context, userID, bidID int64) ([]int64, error)
}
