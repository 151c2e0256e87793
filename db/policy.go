package db

import (
	"strings"

	"bidportal/models"
)

// Scope is the row filter a listing runs under: WHERE clauses joined with
// AND plus their arguments, in placeholder order.
type Scope struct {
	Clauses []string
	Args    []any
}

func (s *Scope) And(clause string, args ...any) {
	s.Clauses = append(s.Clauses, clause)
	s.Args = append(s.Args, args...)
}

func (s Scope) Where() string {
	if len(s.Clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(s.Clauses, " AND ")
}

// Rule is what one role may see of an entity and in which order.
type Rule struct {
	Scope   func(viewer *models.User) Scope
	OrderBy string
}

// Visibility maps roles to rules. A role without a rule sees no rows.
type Visibility map[models.Role]Rule

func (v Visibility) For(viewer *models.User) (Rule, bool) {
	if viewer == nil {
		return Rule{}, false
	}
	r, ok := v[viewer.Role]
	return r, ok
}

// sameOrganization confines a viewer to rows of its own organization. A
// viewer without one matches nothing.
func sameOrganization(column string) func(*models.User) Scope {
	return func(viewer *models.User) Scope {
		var org any
		if viewer.Organization != nil {
			org = *viewer.Organization
		}
		return Scope{Clauses: []string{column + " = ?"}, Args: []any{org}}
	}
}

func withStatus(status models.BidStatus) func(*models.User) Scope {
	return func(*models.User) Scope {
		return Scope{Clauses: []string{"status = ?"}, Args: []any{string(status)}}
	}
}

var (
	UserVisibility = Visibility{
		models.RoleAdministrator: {Scope: sameOrganization("organization"), OrderBy: "name ASC, id ASC"},
		models.RolePublicServer:  {Scope: sameOrganization("organization"), OrderBy: "name ASC, id ASC"},
	}

	BidVisibility = Visibility{
		models.RoleStandard:      {Scope: withStatus(models.BidOpen), OrderBy: "closes_at ASC, id ASC"},
		models.RoleAdministrator: {Scope: sameOrganization("organization"), OrderBy: "opens_at DESC, id DESC"},
		models.RolePublicServer:  {Scope: sameOrganization("organization"), OrderBy: "opens_at DESC, id DESC"},
	}
)
