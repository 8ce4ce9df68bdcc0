package controllers

import (
	"log/slog"
	"net/http"

	"calbooking/internal/availability"
	"calbooking/internal/delivery/http/helpers"
	"calbooking/internal/domain"
)

// EventTypeRequest is the request body for POST /event-types and PUT /event-types/{id}.
// PUT replaces every field.
type EventTypeRequest struct {
	TeamID                      *string                 `json:"team_id" validate:"omitempty,uuid"`
	Title                       string                  `json:"title" validate:"required,max=200"`
	Slug                        string                  `json:"slug" validate:"max=100"`
	Description                 string                  `json:"description" validate:"max=5000"`
	Location                    string                  `json:"location" validate:"max=500"`
	LengthMinutes               int                     `json:"length_minutes" validate:"required"`
	SlotIntervalMinutes         int                     `json:"slot_interval_minutes"`
	MinimumBookingNoticeMinutes int                     `json:"minimum_booking_notice_minutes"`
	BeforeBufferMinutes         int                     `json:"before_buffer_minutes"`
	AfterBufferMinutes          int                     `json:"after_buffer_minutes"`
	PeriodType                  availability.PeriodType `json:"period_type" validate:"omitempty,oneof=unlimited rolling range"`
	PeriodDays                  int                     `json:"period_days"`
	PeriodCountCalendarDays     bool                    `json:"period_count_calendar_days"`
	PeriodStartDate             string                  `json:"period_start_date" validate:"omitempty,datetime=2006-01-02"`
	PeriodEndDate               string                  `json:"period_end_date" validate:"omitempty,datetime=2006-01-02"`
	SeatsPerTimeSlot            int                     `json:"seats_per_time_slot"`
	SeatsShowAttendees          bool                    `json:"seats_show_attendees"`
	RequiresConfirmation        bool                    `json:"requires_confirmation"`
	SchedulingType              domain.SchedulingType   `json:"scheduling_type" validate:"omitempty,oneof=collective round_robin"`
	Hosts                       []string                `json:"hosts" validate:"omitempty,dive,uuid"`
	ScheduleID                  *string                 `json:"schedule_id" validate:"omitempty,uuid"`
	BookingLimits               availability.Limits     `json:"booking_limits"`
	Hidden                      bool                    `json:"hidden"`
}

func (req EventTypeRequest) toDomain() *domain.EventType {
	periodType := req.PeriodType
	if periodType == "" {
		periodType = availability.PeriodUnlimited
	}
	return &domain.EventType{
		TeamID:                      req.TeamID,
		Title:                       req.Title,
		Slug:                        req.Slug,
		Description:                 req.Description,
		Location:                    req.Location,
		LengthMinutes:               req.LengthMinutes,
		SlotIntervalMinutes:         req.SlotIntervalMinutes,
		MinimumBookingNoticeMinutes: req.MinimumBookingNoticeMinutes,
		BeforeBufferMinutes:         req.BeforeBufferMinutes,
		AfterBufferMinutes:          req.AfterBufferMinutes,
		PeriodType:                  periodType,
		PeriodDays:                  req.PeriodDays,
		PeriodCountCalendarDays:     req.PeriodCountCalendarDays,
		PeriodStartDate:             req.PeriodStartDate,
		PeriodEndDate:               req.PeriodEndDate,
		SeatsPerTimeSlot:            req.SeatsPerTimeSlot,
		SeatsShowAttendees:          req.SeatsShowAttendees,
		RequiresConfirmation:        req.RequiresConfirmation,
		SchedulingType:              req.SchedulingType,
		Hosts:                       req.Hosts,
		ScheduleID:                  req.ScheduleID,
		BookingLimits:               req.BookingLimits,
		Hidden:                      req.Hidden,
	}
}

// EventTypeSuccessResponse is the success response envelope for endpoints returning one event type.
type EventTypeSuccessResponse struct {
	Data  *domain.EventType `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventTypeListSuccessResponse is the success response envelope for GET /event-types (200).
type EventTypeListSuccessResponse struct {
	Data  []*domain.EventType `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type EventTypeController struct {
	Logger  *slog.Logger
	Service domain.EventTypeService
}

func NewEventTypeController(logger *slog.Logger, svc domain.EventTypeService) *EventTypeController {
	return &EventTypeController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create an event type
// @Description Creates a bookable event type owned by the caller. Team event types need team_id, a scheduling_type and at least one host; the caller must manage the team. The slug defaults to the slugified title.
// @Tags event-types
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventTypeRequest true "Event type"
// @Success 201 {object} controllers.EventTypeSuccessResponse "data contains the created event type"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (slug taken)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-types [post]
func (c *EventTypeController) Create(w http.ResponseWriter, r *http.Request) {
	var req EventTypeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	et := req.toDomain()
	if err := c.Service.Create(r.Context(), userID, et); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, et)
}

// List godoc
// @Summary List my event types
// @Tags event-types
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventTypeListSuccessResponse "data contains the event types"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-types [get]
func (c *EventTypeController) List(w http.ResponseWriter, r *http.Request) {
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
// @Summary Get an event type
// @Tags event-types
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event type ID (UUID)"
// @Success 200 {object} controllers.EventTypeSuccessResponse "data contains the event type"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-types/{id} [get]
func (c *EventTypeController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	et, err := c.Service.Get(r.Context(), id, userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, et)
}

// Update godoc
// @Summary Replace an event type
// @Description Replaces every writable field of the event type. Only the owner may update it.
// @Tags event-types
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event type ID (UUID)"
// @Param body body EventTypeRequest true "Event type"
// @Success 200 {object} controllers.EventTypeSuccessResponse "data contains the updated event type"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (slug taken)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-types/{id} [put]
func (c *EventTypeController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req EventTypeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	et, err := c.Service.Update(r.Context(), id, userID, req.toDomain())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, et)
}

// Delete godoc
// @Summary Delete an event type
// @Description Deletes an event type without bookings. Only the owner may delete it.
// @Tags event-types
// @Security BearerAuth
// @Param id path string true "Event type ID (UUID)"
// @Success 204 "No Content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (has bookings)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-types/{id} [delete]
func (c *EventTypeController) Delete(w http.ResponseWriter, r *http.Request) {
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
