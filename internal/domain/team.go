package domain

import (
	"context"
	"time"
)

// MembershipRole is a member's role inside a team.
type MembershipRole string

const (
	RoleOwner  MembershipRole = "owner"
	RoleAdmin  MembershipRole = "admin"
	RoleMember MembershipRole = "member"
)

// Valid reports whether r is a known role.
func (r MembershipRole) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// CanManage reports whether the role may add members or manage team event types.
func (r MembershipRole) CanManage() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Team groups users that share team event types.
// swagger:model Team
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Membership links a user to a team.
type Membership struct {
	TeamID   string         `json:"team_id"`
	UserID   string         `json:"user_id"`
	Role     MembershipRole `json:"role"`
	Accepted bool           `json:"accepted"`
}

// TeamMember is a membership joined with the member's profile.
// swagger:model TeamMember
type TeamMember struct {
	Membership
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// TeamRepository defines the interface for team and membership storage.
type TeamRepository interface {
	// Create inserts the team and the owner membership in one transaction.
	Create(ctx context.Context, team *Team, ownerID string) error
	GetByID(ctx context.Context, id string) (*Team, error)
	ListByUser(ctx context.Context, userID string) ([]*Team, error)
	AddMember(ctx context.Context, m *Membership) error
	GetMembership(ctx context.Context, teamID, userID string) (*Membership, error)
	ListMembers(ctx context.Context, teamID string) ([]*TeamMember, error)
}

// TeamService manages teams and their members.
type TeamService interface {
	Create(ctx context.Context, ownerID, name, slug string) (*Team, error)
	ListMine(ctx context.Context, userID string) ([]*Team, error)
	AddMember(ctx context.Context, teamID, actorID, email string, role MembershipRole) (*TeamMember, error)
	ListMembers(ctx context.Context, teamID, actorID string) ([]*TeamMember, error)
}
