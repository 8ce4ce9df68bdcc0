package postgres

import (
	"context"
	"database/sql"
	"errors"

	"calbooking/internal/domain"
)

type teamRepository struct {
	DB *sql.DB
}

func NewTeamRepository(db *sql.DB) domain.TeamRepository {
	return &teamRepository{DB: db}
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team, ownerID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	err = tx.QueryRowContext(ctx, `INSERT INTO teams (name, slug) VALUES ($1, $2) RETURNING id, created_at`, team.Name, team.Slug).
		Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO memberships (team_id, user_id, role, accepted)
		VALUES ($1, $2, $3, TRUE)
	`, team.ID, ownerID, domain.RoleOwner)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return tx.Commit()
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	t := &domain.Team{}
	err := r.DB.QueryRowContext(ctx, `SELECT id, name, slug, created_at FROM teams WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *teamRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Team, error) {
	query := `
		SELECT t.id, t.name, t.slug, t.created_at
		FROM teams t
		INNER JOIN memberships m ON m.team_id = t.id
		WHERE m.user_id = $1
		ORDER BY t.name
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	teams := make([]*domain.Team, 0)
	for rows.Next() {
		t := &domain.Team{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *teamRepository) AddMember(ctx context.Context, m *domain.Membership) error {
	query := `
		INSERT INTO memberships (team_id, user_id, role, accepted)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, m.TeamID, m.UserID, m.Role, m.Accepted)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrConflict
	case isForeignKeyViolation(err):
		return domain.ErrNotFound
	}
	return err
}

func (r *teamRepository) GetMembership(ctx context.Context, teamID, userID string) (*domain.Membership, error) {
	m := &domain.Membership{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT team_id, user_id, role, accepted
		FROM memberships
		WHERE team_id = $1 AND user_id = $2
	`, teamID, userID).Scan(&m.TeamID, &m.UserID, &m.Role, &m.Accepted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *teamRepository) ListMembers(ctx context.Context, teamID string) ([]*domain.TeamMember, error) {
	query := `
		SELECT m.team_id, m.user_id, m.role, m.accepted, u.name, u.email, u.username
		FROM memberships m
		INNER JOIN users u ON u.id = m.user_id
		WHERE m.team_id = $1
		ORDER BY u.name, u.id
	`
	rows, err := r.DB.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	members := make([]*domain.TeamMember, 0)
	for rows.Next() {
		tm := &domain.TeamMember{}
		if err := rows.Scan(&tm.TeamID, &tm.UserID, &tm.Role, &tm.Accepted, &tm.Name, &tm.Email, &tm.Username); err != nil {
			return nil, err
		}
		members = append(members, tm)
	}
	return members, rows.Err()
}
