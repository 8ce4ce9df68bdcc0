package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"calbooking/internal/domain"
)

type teamService struct {
	teamRepo       domain.TeamRepository
	userRepo       domain.UserRepository
	contextTimeout time.Duration
}

// NewTeamService creates a TeamService.
func NewTeamService(teamRepo domain.TeamRepository, userRepo domain.UserRepository, timeout time.Duration) domain.TeamService {
	return &teamService{teamRepo: teamRepo, userRepo: userRepo, contextTimeout: timeout}
}

func (s *teamService) Create(ctx context.Context, ownerID, name, slug string) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	slug = slugify(slug)
	if slug == "" {
		slug = slugify(name)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", domain.ErrInvalidInput)
	}
	team := &domain.Team{Name: name, Slug: slug, CreatedAt: time.Now()}
	if err := s.teamRepo.Create(ctx, team, ownerID); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("create team: %w", err)
	}
	return team, nil
}

func (s *teamService) ListMine(ctx context.Context, userID string) ([]*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	teams, err := s.teamRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	if teams == nil {
		teams = []*domain.Team{}
	}
	return teams, nil
}

func (s *teamService) AddMember(ctx context.Context, teamID, actorID, email string, role domain.MembershipRole) (*domain.TeamMember, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if role == "" {
		role = domain.RoleMember
	}
	if !role.Valid() || role == domain.RoleOwner {
		return nil, fmt.Errorf("%w: role must be admin or member", domain.ErrInvalidInput)
	}
	if err := s.requireRole(ctx, teamID, actorID, true); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	m := &domain.Membership{TeamID: teamID, UserID: user.ID, Role: role, Accepted: true}
	if err := s.teamRepo.AddMember(ctx, m); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("add member: %w", err)
	}
	return &domain.TeamMember{Membership: *m, Name: user.Name, Email: user.Email, Username: user.Username}, nil
}

func (s *teamService) ListMembers(ctx context.Context, teamID, actorID string) ([]*domain.TeamMember, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireRole(ctx, teamID, actorID, false); err != nil {
		return nil, err
	}
	members, err := s.teamRepo.ListMembers(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	if members == nil {
		members = []*domain.TeamMember{}
	}
	return members, nil
}

// requireRole checks that userID belongs to the team, and manages it when manage is set.
func (s *teamService) requireRole(ctx context.Context, teamID, userID string, manage bool) error {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("get team: %w", err)
	}
	m, err := s.teamRepo.GetMembership(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrForbidden
		}
		return fmt.Errorf("get membership: %w", err)
	}
	if manage && !m.Role.CanManage() {
		return domain.ErrForbidden
	}
	return nil
}
