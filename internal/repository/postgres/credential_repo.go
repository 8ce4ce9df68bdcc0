package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"calbooking/internal/domain"
)

type credentialRepository struct {
	DB *sql.DB
}

func NewCredentialRepository(db *sql.DB) domain.CredentialRepository {
	return &credentialRepository{DB: db}
}

func scanCredential(row rowScanner) (*domain.Credential, error) {
	c := &domain.Credential{}
	var key []byte
	if err := row.Scan(&c.ID, &c.UserID, &c.Type, &key, &c.Invalid, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Key = key
	return c, nil
}

func (r *credentialRepository) Create(ctx context.Context, c *domain.Credential) error {
	query := `
		INSERT INTO credentials (user_id, type, key, invalid, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, c.UserID, c.Type, []byte(c.Key), c.Invalid, c.CreatedAt).Scan(&c.ID)
	if isForeignKeyViolation(err) {
		return domain.ErrUserNotFound
	}
	return err
}

func (r *credentialRepository) GetByID(ctx context.Context, id string) (*domain.Credential, error) {
	query := `SELECT id, user_id, type, key, invalid, created_at FROM credentials WHERE id = $1`
	c, err := scanCredential(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *credentialRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Credential, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	creds := make([]*domain.Credential, 0)
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, err
		}
		creds = append(creds, c)
	}
	return creds, rows.Err()
}

func (r *credentialRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Credential, error) {
	query := `
		SELECT id, user_id, type, key, invalid, created_at
		FROM credentials
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	return r.list(ctx, query, userID)
}

func (r *credentialRepository) ListValidByUsers(ctx context.Context, userIDs []string) ([]*domain.Credential, error) {
	if len(userIDs) == 0 {
		return []*domain.Credential{}, nil
	}
	query := `
		SELECT id, user_id, type, key, invalid, created_at
		FROM credentials
		WHERE user_id = ANY($1) AND NOT invalid
		ORDER BY user_id, created_at
	`
	return r.list(ctx, query, pq.Array(userIDs))
}

func (r *credentialRepository) MarkInvalid(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE credentials SET invalid = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *credentialRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM credentials WHERE id = $1`, id)
	if err != nil {
		if isInvalidID(err) {
			return domain.ErrNotFound
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
