package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"calbooking/internal/domain"
)

// SignatureHeader carries the hex HMAC-SHA256 of the request body when the webhook has a secret.
const SignatureHeader = "X-Cal-Signature-256"

const maxResponseDrain = 64 << 10

var templateField = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

// WebhookDispatcherConfig tunes the worker pool and retry policy.
type WebhookDispatcherConfig struct {
	Workers        int
	QueueSize      int
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Timeout        time.Duration
	RatePerSecond  float64
}

type webhookJob struct {
	ctx     context.Context
	webhook *domain.Webhook
	trigger domain.WebhookTrigger
	payload map[string]any
}

// WebhookDispatcher fans booking events out to subscribers on a bounded
// queue drained by a fixed set of workers.
type WebhookDispatcher struct {
	repo   domain.WebhookRepository
	client *http.Client
	cfg    WebhookDispatcherConfig
	logger *slog.Logger
	now    func() time.Time

	jobs   chan webhookJob
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool

	limitersMu sync.Mutex
	limiters   map[string]*rate.Limiter
}

// NewWebhookDispatcher starts cfg.Workers workers. Call Shutdown to drain them.
func NewWebhookDispatcher(repo domain.WebhookRepository, client *http.Client, cfg WebhookDispatcherConfig, logger *slog.Logger) *WebhookDispatcher {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if client == nil {
		client = &http.Client{}
	}
	d := &WebhookDispatcher{
		repo:     repo,
		client:   client,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		jobs:     make(chan webhookJob, cfg.QueueSize),
		limiters: make(map[string]*rate.Limiter),
	}
	for i := 0; i < cfg.Workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
	return d
}

// Emit queues one delivery per active subscription of the booking's hosts or
// event type that listens for trigger. It never blocks on delivery.
func (d *WebhookDispatcher) Emit(ctx context.Context, trigger domain.WebhookTrigger, b *domain.Booking, et *domain.EventType) {
	userIDs := dedupe(append([]string{b.UserID, et.UserID}, b.HostIDs...))
	hooks, err := d.repo.ListActiveForTrigger(ctx, userIDs, et.ID, trigger)
	if err != nil {
		d.logger.ErrorContext(ctx, "list webhooks failed", "trigger", trigger, "uid", b.UID, "err", err)
		return
	}
	if len(hooks) == 0 {
		return
	}
	payload := BookingPayload(b, et)
	jobCtx := context.WithoutCancel(ctx)
	for _, w := range hooks {
		d.enqueue(webhookJob{ctx: jobCtx, webhook: w, trigger: trigger, payload: payload})
	}
}

func (d *WebhookDispatcher) enqueue(job webhookJob) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.WarnContext(job.ctx, "webhook dispatcher stopped, delivery dropped", "webhook_id", job.webhook.ID, "trigger", job.trigger)
		return
	}
	select {
	case d.jobs <- job:
	default:
		d.logger.ErrorContext(job.ctx, "webhook queue full, delivery dropped", "webhook_id", job.webhook.ID, "trigger", job.trigger)
	}
}

func (d *WebhookDispatcher) work() {
	defer d.wg.Done()
	for job := range d.jobs {
		d.Deliver(job.ctx, job.webhook, job.trigger, job.payload)
	}
}

// Shutdown stops accepting jobs and waits for queued ones to finish or ctx to end.
func (d *WebhookDispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Deliver posts the payload with retries and records the final outcome.
func (d *WebhookDispatcher) Deliver(ctx context.Context, w *domain.Webhook, trigger domain.WebhookTrigger, payload map[string]any) *domain.WebhookDelivery {
	ctx, span := tracer.Start(ctx, "webhook.Deliver", trace.WithAttributes(
		attribute.String("webhook.id", w.ID),
		attribute.String("webhook.trigger", string(trigger)),
	))
	defer span.End()

	delivery := &domain.WebhookDelivery{WebhookID: w.ID, Trigger: trigger, CreatedAt: d.now()}
	body, contentType, err := d.body(w, trigger, payload)
	if err != nil {
		delivery.Error = err.Error()
		d.record(ctx, delivery)
		return delivery
	}

	limiter := d.limiter(w.SubscriberURL)
	policy := backoff.NewExponentialBackOff()
	if d.cfg.InitialBackoff > 0 {
		policy.InitialInterval = d.cfg.InitialBackoff
	}
	if d.cfg.MaxBackoff > 0 {
		policy.MaxInterval = d.cfg.MaxBackoff
	}

	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		delivery.Attempts++
		if err := limiter.Wait(ctx); err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		status, err := d.post(ctx, w, body, contentType)
		delivery.StatusCode = status
		return struct{}{}, err
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(d.cfg.MaxAttempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			d.logger.WarnContext(ctx, "webhook delivery failed, retrying", "webhook_id", w.ID, "attempt", delivery.Attempts, "retry_in", next, "err", err)
		}),
	)
	if err != nil {
		delivery.Error = err.Error()
		span.SetStatus(codes.Error, err.Error())
		d.logger.ErrorContext(ctx, "webhook delivery failed", "webhook_id", w.ID, "trigger", trigger, "attempts", delivery.Attempts, "status", delivery.StatusCode, "err", err)
	} else {
		delivery.Success = true
	}
	span.SetAttributes(attribute.Int("webhook.attempts", delivery.Attempts), attribute.Int("http.status_code", delivery.StatusCode))
	d.record(ctx, delivery)
	return delivery
}

func (d *WebhookDispatcher) record(ctx context.Context, delivery *domain.WebhookDelivery) {
	if err := d.repo.RecordDelivery(ctx, delivery); err != nil {
		d.logger.ErrorContext(ctx, "record webhook delivery failed", "webhook_id", delivery.WebhookID, "err", err)
	}
}

// post sends one attempt. Transport errors, 429 and 5xx are retryable.
func (d *WebhookDispatcher) post(ctx context.Context, w *domain.Webhook, body []byte, contentType string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.SubscriberURL, bytes.NewReader(body))
	if err != nil {
		return 0, backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", "calbooking-webhooks/1.0")
	if w.Secret != "" {
		req.Header.Set(SignatureHeader, Sign(w.Secret, body))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseDrain))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return resp.StatusCode, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
			return resp.StatusCode, backoff.RetryAfter(secs)
		}
		return resp.StatusCode, fmt.Errorf("subscriber responded %d", resp.StatusCode)
	case resp.StatusCode >= 500:
		return resp.StatusCode, fmt.Errorf("subscriber responded %d", resp.StatusCode)
	default:
		return resp.StatusCode, backoff.Permanent(fmt.Errorf("subscriber responded %d", resp.StatusCode))
	}
}

// limiter returns the token bucket shared by all webhooks pointing at the same host.
func (d *WebhookDispatcher) limiter(subscriberURL string) *rate.Limiter {
	host := subscriberURL
	if u, err := url.Parse(subscriberURL); err == nil && u.Host != "" {
		host = u.Host
	}
	d.limitersMu.Lock()
	defer d.limitersMu.Unlock()
	if l, ok := d.limiters[host]; ok {
		return l
	}
	limit := rate.Inf
	if d.cfg.RatePerSecond > 0 {
		limit = rate.Limit(d.cfg.RatePerSecond)
	}
	l := rate.NewLimiter(limit, 1)
	d.limiters[host] = l
	return l
}

// body renders the request body and its content type.
func (d *WebhookDispatcher) body(w *domain.Webhook, trigger domain.WebhookTrigger, payload map[string]any) ([]byte, string, error) {
	createdAt := d.now().UTC().Format(time.RFC3339)
	if w.PayloadTemplate != nil && *w.PayloadTemplate != "" {
		fields := FlattenPayload(payload)
		fields["triggerEvent"] = string(trigger)
		fields["createdAt"] = createdAt
		out := RenderPayloadTemplate(*w.PayloadTemplate, fields)
		contentType := "text/plain; charset=utf-8"
		if json.Valid([]byte(out)) {
			contentType = "application/json"
		}
		return []byte(out), contentType, nil
	}
	raw, err := json.Marshal(map[string]any{
		"triggerEvent": trigger,
		"createdAt":    createdAt,
		"payload":      payload,
	})
	if err != nil {
		return nil, "", fmt.Errorf("encode payload: %w", err)
	}
	return raw, "application/json", nil
}

// Sign returns the hex HMAC-SHA256 of body keyed by secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// BookingPayload is the payload sent for booking triggers.
func BookingPayload(b *domain.Booking, et *domain.EventType) map[string]any {
	attendees := make([]map[string]any, 0, len(b.Attendees))
	for _, a := range b.Attendees {
		att := map[string]any{
			"name":     a.Name,
			"email":    a.Email,
			"timeZone": a.TimeZone,
		}
		if a.SeatReferenceUID != nil {
			att["seatReferenceUid"] = *a.SeatReferenceUID
		}
		attendees = append(attendees, att)
	}
	payload := map[string]any{
		"bookingId":   b.ID,
		"uid":         b.UID,
		"type":        et.Slug,
		"eventTypeId": et.ID,
		"title":       b.Title,
		"description": b.Description,
		"location":    b.Location,
		"startTime":   b.StartTime.UTC().Format(time.RFC3339),
		"endTime":     b.EndTime.UTC().Format(time.RFC3339),
		"length":      et.LengthMinutes,
		"status":      strings.ToUpper(string(b.Status)),
		"organizerId": b.UserID,
		"hostIds":     b.HostIDs,
		"attendees":   attendees,
	}
	if b.FromReschedule != nil {
		payload["rescheduleUid"] = *b.FromReschedule
	}
	if b.CancellationReason != "" {
		payload["cancellationReason"] = b.CancellationReason
	}
	if b.RejectionReason != "" {
		payload["rejectionReason"] = b.RejectionReason
	}
	if et.IsSeated() {
		payload["seatsPerTimeSlot"] = et.SeatsPerTimeSlot
	}
	return payload
}

// FlattenPayload turns nested maps into dotted keys. Slices and scalars are
// rendered as JSON, except strings which are kept raw.
func FlattenPayload(payload map[string]any) map[string]string {
	out := make(map[string]string)
	flattenInto(out, "", payload)
	return out
}

func flattenInto(out map[string]string, prefix string, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := m[k].(type) {
		case map[string]any:
			flattenInto(out, key, v)
		case string:
			out[key] = v
		default:
			raw, err := json.Marshal(v)
			if err != nil {
				out[key] = fmt.Sprint(v)
				continue
			}
			out[key] = string(raw)
		}
	}
}

// RenderPayloadTemplate replaces {{field}} placeholders. Unknown fields render empty.
func RenderPayloadTemplate(tmpl string, fields map[string]string) string {
	return templateField.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := templateField.FindStringSubmatch(match)[1]
		return fields[name]
	})
}

var _ domain.WebhookEmitter = (*WebhookDispatcher)(nil)
var _ domain.WebhookDeliverer = (*WebhookDispatcher)(nil)
