package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Role of a portal user.
type Role string

const (
	RoleStandard      Role = "Standard"
	RoleAdministrator Role = "Administrator"
	RolePublicServer  Role = "PublicServer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStandard, RoleAdministrator, RolePublicServer:
		return true
	}
	return false
}

// UserStatus is the soft-delete flag of a user.
type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
)

func (s UserStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

type BidStatus string

const (
	BidOpen     BidStatus = "Open"
	BidClosed   BidStatus = "Closed"
	BidCanceled BidStatus = "Canceled"
)

type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalRejected ProposalStatus = "rejected"
)

func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalPending, ProposalAccepted, ProposalRejected:
		return true
	}
	return false
}

// BulkAction is applied to a set of users at once.
type BulkAction string

const (
	BulkActivate   BulkAction = "activate"
	BulkDeactivate BulkAction = "deactivate"
	BulkDelete     BulkAction = "delete"
)

const DefaultAlertCategory = "Info"

// User is a portal account without its credential. It doubles as the
// identity stored in a session.
type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	TaxID        string     `json:"tax_id"`
	Position     string     `json:"position"`
	Organization *string    `json:"organization"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	CreatedAt    Time       `json:"created_at"`
}

func (u *User) IsStandardUser() bool  { return u != nil && u.Role == RoleStandard }
func (u *User) IsAdministrator() bool { return u != nil && u.Role == RoleAdministrator }
func (u *User) IsPublicServer() bool  { return u != nil && u.Role == RolePublicServer }

// IsPrivileged reports whether the user manages users and bids of an organization.
func (u *User) IsPrivileged() bool { return u.IsAdministrator() || u.IsPublicServer() }

// NewUser is an account created by a privileged user.
type NewUser struct {
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	TaxID        string     `json:"tax_id"`
	Password     string     `json:"password"`
	Position     string     `json:"position"`
	Organization *string    `json:"organization"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
}

// Registration is a self-service sign-up.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	TaxID    string `json:"tax_id"`
	Password string `json:"password"`
}

type UserFilter struct {
	Search string     `json:"search"`
	Role   Role       `json:"role"`
	Status UserStatus `json:"status"`
}

// Bid is a procurement process ("licitação").
type Bid struct {
	ID                    int64     `json:"id"`
	Title                 string    `json:"title"`
	Description           string    `json:"description"`
	Organization          string    `json:"organization"`
	EstimatedValue        float64   `json:"estimated_value"`
	OpensAt               Time      `json:"opens_at"`
	ClosesAt              Time      `json:"closes_at"`
	Status                BidStatus `json:"status"`
	CreatedBy             *int64    `json:"created_by"`
	TechnicalRequirements string    `json:"technical_requirements"`
	EconomicRequirements  string    `json:"economic_requirements"`
}

type BidFilter struct {
	Search       string `json:"search"`
	Organization string `json:"organization"`
}

type Document struct {
	ID       int64  `json:"id"`
	BidID    int64  `json:"bid_id"`
	FileName string `json:"file_name"`
	Path     string `json:"path"`
}

type Participation struct {
	ID       int64 `json:"id"`
	BidID    int64 `json:"bid_id"`
	UserID   int64 `json:"user_id"`
	JoinedAt Time  `json:"joined_at"`
}

// MyParticipation is a bid the user joined, with the status of the
// latest proposal sent for it (nil when none was sent yet).
type MyParticipation struct {
	Bid
	ProposalStatus *ProposalStatus `json:"proposal_status"`
}

type Proposal struct {
	ID              int64          `json:"id"`
	ParticipationID int64          `json:"participation_id"`
	Value           float64        `json:"value"`
	Status          ProposalStatus `json:"status"`
	SubmittedAt     Time           `json:"submitted_at"`
	DocumentPath    *string        `json:"document_path"`
}

// ProposalEntry is a proposal as seen by the bid owner, with its bidder.
type ProposalEntry struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"user_id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Value       float64        `json:"value"`
	Status      ProposalStatus `json:"status"`
	SubmittedAt Time           `json:"submitted_at"`
}

type Alert struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	BidID     *int64 `json:"bid_id"`
	Message   string `json:"message"`
	Category  string `json:"category"`
	Read      Flag   `json:"is_read"`
	CreatedAt Time   `json:"created_at"`
}

type NewAlert struct {
	UserID   int64  `json:"user_id"`
	BidID    *int64 `json:"bid_id"`
	Message  string `json:"message"`
	Category string `json:"category"`
}

type FavoriteDocument struct {
	DocumentID  int64  `json:"document_id"`
	FileName    string `json:"file_name"`
	Path        string `json:"path"`
	BidTitle    string `json:"bid_title"`
	FavoritedAt Time   `json:"favorited_at"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time decodes the timestamp shapes produced by the supported stores.
type Time struct {
	time.Time
}

func NewTime(t time.Time) Time { return Time{Time: t} }

func (t *Time) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("time: %w", err)
	}
	for _, layout := range timeLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			t.Time = v
			return nil
		}
	}
	return fmt.Errorf("time: unrecognized layout %q", s)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.UTC(), nil
}

// Flag is a boolean stored either as a native boolean or as 0/1.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	switch s := string(b); s {
	case "null":
		return nil
	case "true", "false":
		*f = s == "true"
		return nil
	case `"t"`, `"f"`:
		*f = s == `"t"`
		return nil
	default:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("flag: %q", s)
		}
		*f = n != 0
		return nil
	}
}
