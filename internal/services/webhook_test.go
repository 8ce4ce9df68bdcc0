package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calbooking/internal/domain"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func newWebhookFixture() (*fakeWebhookRepo, *fakeEventTypeRepo, *fakeDeliverer, domain.WebhookService) {
	repo := newFakeWebhookRepo()
	eventTypes := newFakeEventTypeRepo()
	deliverer := &fakeDeliverer{}
	return repo, eventTypes, deliverer, NewWebhookService(repo, eventTypes, deliverer, testTimeout)
}

func TestWebhookService_Create(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		_, _, _, svc := newWebhookFixture()
		w, err := svc.Create(context.Background(), "user-1", domain.WebhookInput{SubscriberURL: strPtr(" https://hooks.example.com/cal ")})
		require.NoError(t, err)
		assert.Equal(t, "https://hooks.example.com/cal", w.SubscriberURL)
		assert.True(t, w.Active)
		assert.False(t, w.HasSecret)
		assert.ElementsMatch(t, domain.AllWebhookTriggers, w.EventTriggers)
	})

	t.Run("explicit fields", func(t *testing.T) {
		_, eventTypes, _, svc := newWebhookFixture()
		eventTypes.byID["et-1"] = &domain.EventType{ID: "et-1", UserID: "user-1"}

		w, err := svc.Create(context.Background(), "user-1", domain.WebhookInput{
			SubscriberURL:   strPtr("http://localhost:9000/hook"),
			EventTypeID:     strPtr("et-1"),
			EventTriggers:   []domain.WebhookTrigger{"booking_created", domain.TriggerBookingCreated, domain.TriggerBookingCancelled},
			Active:          boolPtr(false),
			Secret:          strPtr("s3cret"),
			PayloadTemplate: strPtr(`{"title":"{{title}}"}`),
		})
		require.NoError(t, err)
		assert.Equal(t, []domain.WebhookTrigger{domain.TriggerBookingCreated, domain.TriggerBookingCancelled}, w.EventTriggers)
		assert.False(t, w.Active)
		assert.True(t, w.HasSecret)
		require.NotNil(t, w.EventTypeID)
		assert.Equal(t, "et-1", *w.EventTypeID)
		require.NotNil(t, w.PayloadTemplate)
	})

	invalid := map[string]domain.WebhookInput{
		"missing url":      {},
		"relative url":     {SubscriberURL: strPtr("/hook")},
		"ftp url":          {SubscriberURL: strPtr("ftp://example.com/hook")},
		"unknown trigger":  {SubscriberURL: strPtr("https://example.com"), EventTriggers: []domain.WebhookTrigger{"MEETING_ENDED"}},
		"empty triggers":   {SubscriberURL: strPtr("https://example.com"), EventTriggers: []domain.WebhookTrigger{}},
		"unknown event id": {SubscriberURL: strPtr("https://example.com"), EventTypeID: strPtr("et-404")},
	}
	for name, in := range invalid {
		t.Run(name, func(t *testing.T) {
			_, _, _, svc := newWebhookFixture()
			_, err := svc.Create(context.Background(), "user-1", in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	t.Run("event type of another user", func(t *testing.T) {
		_, eventTypes, _, svc := newWebhookFixture()
		eventTypes.byID["et-2"] = &domain.EventType{ID: "et-2", UserID: "user-2"}
		_, err := svc.Create(context.Background(), "user-1", domain.WebhookInput{
			SubscriberURL: strPtr("https://example.com"), EventTypeID: strPtr("et-2"),
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestWebhookService_Manage(t *testing.T) {
	repo, _, deliverer, svc := newWebhookFixture()
	ctx := context.Background()
	w, err := svc.Create(ctx, "user-1", domain.WebhookInput{SubscriberURL: strPtr("https://example.com/a"), Secret: strPtr("x")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, w.ID, "user-1", domain.WebhookInput{
		SubscriberURL: strPtr("https://example.com/b"),
		Active:        boolPtr(false),
		Secret:        strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/b", updated.SubscriberURL)
	assert.False(t, updated.Active)
	assert.False(t, updated.HasSecret)

	_, err = svc.Update(ctx, w.ID, "user-2", domain.WebhookInput{Active: boolPtr(true)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Get(ctx, w.ID, "user-2")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	delivery, err := svc.Ping(ctx, w.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, delivery.Success)
	assert.Equal(t, domain.TriggerPing, deliverer.trigger)
	assert.Equal(t, w.ID, deliverer.payload["webhookId"])

	require.NoError(t, repo.RecordDelivery(ctx, &domain.WebhookDelivery{WebhookID: w.ID, Trigger: domain.TriggerPing, Success: true}))
	deliveries, err := svc.ListDeliveries(ctx, w.ID, "user-1", 0)
	require.NoError(t, err)
	assert.Len(t, deliveries, 1)

	_, err = svc.ListDeliveries(ctx, w.ID, "user-2", 10)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.ErrorIs(t, svc.Delete(ctx, w.ID, "user-2"), domain.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, w.ID, "user-1"))
	_, err = svc.Get(ctx, w.ID, "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
