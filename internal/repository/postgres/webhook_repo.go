package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"calbooking/internal/domain"
)

const webhookColumns = `id, user_id, event_type_id, subscriber_url, event_triggers, active, secret, payload_template, created_at`

type webhookRepository struct {
	DB *sql.DB
}

func NewWebhookRepository(db *sql.DB) domain.WebhookRepository {
	return &webhookRepository{DB: db}
}

func scanWebhook(row rowScanner) (*domain.Webhook, error) {
	w := &domain.Webhook{}
	var (
		eventTypeID, template sql.NullString
		triggers              pq.StringArray
	)
	if err := row.Scan(&w.ID, &w.UserID, &eventTypeID, &w.SubscriberURL, &triggers, &w.Active, &w.Secret, &template, &w.CreatedAt); err != nil {
		return nil, err
	}
	w.EventTypeID = nullString(eventTypeID)
	w.PayloadTemplate = nullString(template)
	w.EventTriggers = make([]domain.WebhookTrigger, 0, len(triggers))
	for _, t := range triggers {
		w.EventTriggers = append(w.EventTriggers, domain.WebhookTrigger(t))
	}
	w.HasSecret = w.Secret != ""
	return w, nil
}

func triggerArray(triggers []domain.WebhookTrigger) any {
	out := make([]string, 0, len(triggers))
	for _, t := range triggers {
		out = append(out, string(t))
	}
	return pq.Array(out)
}

func (r *webhookRepository) Create(ctx context.Context, w *domain.Webhook) error {
	query := `
		INSERT INTO webhooks (user_id, event_type_id, subscriber_url, event_triggers, active, secret, payload_template, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, w.UserID, w.EventTypeID, w.SubscriberURL, triggerArray(w.EventTriggers),
		w.Active, w.Secret, w.PayloadTemplate, w.CreatedAt).Scan(&w.ID)
	if isForeignKeyViolation(err) {
		return domain.ErrNotFound
	}
	return err
}

func (r *webhookRepository) GetByID(ctx context.Context, id string) (*domain.Webhook, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhooks WHERE id = $1`
	w, err := scanWebhook(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (r *webhookRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Webhook, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	hooks := make([]*domain.Webhook, 0)
	for rows.Next() {
		w, err := scanWebhook(rows)
		if err != nil {
			return nil, err
		}
		hooks = append(hooks, w)
	}
	return hooks, rows.Err()
}

func (r *webhookRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Webhook, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhooks WHERE user_id = $1 ORDER BY created_at, id`
	return r.list(ctx, query, userID)
}

func (r *webhookRepository) Update(ctx context.Context, w *domain.Webhook) error {
	query := `
		UPDATE webhooks
		SET event_type_id = $2, subscriber_url = $3, event_triggers = $4, active = $5, secret = $6, payload_template = $7
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, w.ID, w.EventTypeID, w.SubscriberURL, triggerArray(w.EventTriggers),
		w.Active, w.Secret, w.PayloadTemplate)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *webhookRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM webhooks WHERE id = $1`, id)
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

func (r *webhookRepository) ListActiveForTrigger(ctx context.Context, userIDs []string, eventTypeID string, trigger domain.WebhookTrigger) ([]*domain.Webhook, error) {
	if len(userIDs) == 0 {
		return []*domain.Webhook{}, nil
	}
	query := `
		SELECT ` + webhookColumns + `
		FROM webhooks
		WHERE active
			AND user_id = ANY($1)
			AND (event_type_id IS NULL OR event_type_id::text = $2)
			AND $3 = ANY(event_triggers)
		ORDER BY created_at, id
	`
	return r.list(ctx, query, pq.Array(userIDs), eventTypeID, string(trigger))
}

func (r *webhookRepository) RecordDelivery(ctx context.Context, d *domain.WebhookDelivery) error {
	query := `
		INSERT INTO webhook_deliveries (webhook_id, trigger, attempts, status_code, success, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, d.WebhookID, d.Trigger, d.Attempts, d.StatusCode, d.Success, d.Error, d.CreatedAt).Scan(&d.ID)
	if isForeignKeyViolation(err) {
		// the webhook was deleted while the delivery was in flight
		return domain.ErrNotFound
	}
	return err
}

func (r *webhookRepository) ListDeliveries(ctx context.Context, webhookID string, limit int) ([]*domain.WebhookDelivery, error) {
	query := `
		SELECT id, webhook_id, trigger, attempts, status_code, success, error, created_at
		FROM webhook_deliveries
		WHERE webhook_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, query, webhookID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	deliveries := make([]*domain.WebhookDelivery, 0)
	for rows.Next() {
		d := &domain.WebhookDelivery{}
		if err := rows.Scan(&d.ID, &d.WebhookID, &d.Trigger, &d.Attempts, &d.StatusCode, &d.Success, &d.Error, &d.CreatedAt); err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}
