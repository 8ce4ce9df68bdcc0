package controllers

import (
	"log/slog"
	"net/http"

	"calbooking/internal/delivery/http/helpers"
	"calbooking/internal/domain"
)

const defaultDeliveriesLimit = 50

// WebhookRequest is the request body for POST /webhooks and PATCH /webhooks/{id}.
// On PATCH omitted fields are unchanged. event_triggers defaults to every trigger on create.
type WebhookRequest struct {
	SubscriberURL   *string                 `json:"subscriber_url" validate:"omitempty,http_url,max=2048"`
	EventTypeID     *string                 `json:"event_type_id" validate:"omitempty,uuid"`
	EventTriggers   []domain.WebhookTrigger `json:"event_triggers"`
	Active          *bool                   `json:"active"`
	Secret          *string                 `json:"secret" validate:"omitempty,max=256"`
	PayloadTemplate *string                 `json:"payload_template" validate:"omitempty,max=65536"`
}

func (req WebhookRequest) toInput() domain.WebhookInput {
	return domain.WebhookInput{
		SubscriberURL:   req.SubscriberURL,
		EventTypeID:     req.EventTypeID,
		EventTriggers:   req.EventTriggers,
		Active:          req.Active,
		Secret:          req.Secret,
		PayloadTemplate: req.PayloadTemplate,
	}
}

// WebhookSuccessResponse is the success response envelope for endpoints returning one webhook.
type WebhookSuccessResponse struct {
	Data  *domain.Webhook   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// WebhookListSuccessResponse is the success response envelope for GET /webhooks (200).
type WebhookListSuccessResponse struct {
	Data  []*domain.Webhook `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// WebhookDeliverySuccessResponse is the success response envelope for POST /webhooks/{id}/ping (200).
type WebhookDeliverySuccessResponse struct {
	Data  *domain.WebhookDelivery `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// WebhookDeliveryListSuccessResponse is the success response envelope for GET /webhooks/{id}/deliveries (200).
type WebhookDeliveryListSuccessResponse struct {
	Data  []*domain.WebhookDelivery `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

type WebhookController struct {
	Logger  *slog.Logger
	Service domain.WebhookService
}

func NewWebhookController(logger *slog.Logger, svc domain.WebhookService) *WebhookController {
	return &WebhookController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create a webhook
// @Description Subscribes a URL to booking lifecycle triggers. event_type_id narrows it to one of the caller's event types. A secret signs payloads with HMAC-SHA256 in X-Cal-Signature-256. payload_template replaces {{field}} placeholders with payload values.
// @Tags webhooks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body WebhookRequest true "Webhook (subscriber_url required)"
// @Success 201 {object} controllers.WebhookSuccessResponse "data contains the created webhook"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /webhooks [post]
func (c *WebhookController) Create(w http.ResponseWriter, r *http.Request) {
	var req WebhookRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if req.SubscriberURL == nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "subscriber_url is required")
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	hook, err := c.Service.Create(r.Context(), userID, req.toInput())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, hook)
}

// List godoc
// @Summary List my webhooks
// @Tags webhooks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.WebhookListSuccessResponse "data contains the webhooks"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /webhooks [get]
func (c *WebhookController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	list, err := c.Service.List(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// Get godoc
// @Summary Get a webhook
// @Tags webhooks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Webhook ID (UUID)"
// @Success 200 {object} controllers.WebhookSuccessResponse "data contains the webhook"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /webhooks/{id} [get]
func (c *WebhookController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	hook, err := c.Service.Get(r.Context(), id, userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, hook)
}

// Update godoc
// @Summary Update a webhook
// @Description Updates the given fields. An empty secret or payload_template clears it.
// @Tags webhooks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Webhook ID (UUID)"
// @Param body body WebhookRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.WebhookSuccessResponse "data contains the updated webhook"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /webhooks/{id} [patch]
func (c *WebhookController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req WebhookRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	hook, err := c.Service.Update(r.Context(), id, userID, req.toInput())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, hook)
}

// Delete godoc
// @Summary Delete a webhook
// @Tags webhooks
// @Security BearerAuth
// @Param id path string true "Webhook ID (UUID)"
// @Success 204 "No Content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /webhooks/{id} [delete]
func (c *WebhookController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id, userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Ping godoc
// @Summary Ping a webhook
// @Description Sends a PING payload synchronously, retries included, and returns the recorded delivery.
// @Tags webhooks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Webhook ID (UUID)"
// @Success 200 {object} controllers.WebhookDeliverySuccessResponse "data contains the delivery outcome"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /webhooks/{id}/ping [post]
func (c *WebhookController) Ping(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	delivery, err := c.Service.Ping(r.Context(), id, userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, delivery)
}

// ListDeliveries godoc
// @Summary List webhook deliveries
// @Description Most recent delivery outcomes first.
// @Tags webhooks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Webhook ID (UUID)"
// @Param limit query int false "Maximum number of deliveries (default 50)"
// @Success 200 {object} controllers.WebhookDeliveryListSuccessResponse "data contains the deliveries"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /webhooks/{id}/deliveries [get]
func (c *WebhookController) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	list, err := c.Service.ListDeliveries(r.Context(), id, userID, queryInt(r, "limit", defaultDeliveriesLimit))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}
