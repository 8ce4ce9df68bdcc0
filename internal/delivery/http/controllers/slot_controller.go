package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"calbooking/internal/delivery/http/helpers"
	"calbooking/internal/domain"
)

// defaultSlotsWindow is used when the query has a start but no end.
const defaultSlotsWindow = 7 * 24 * time.Hour

// SlotsSuccessResponse is the success response envelope for GET /slots (200).
type SlotsSuccessResponse struct {
	Data  *domain.SlotsResult `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type SlotController struct {
	Logger  *slog.Logger
	Service domain.AvailabilityService
}

func NewSlotController(logger *slog.Logger, svc domain.AvailabilityService) *SlotController {
	return &SlotController{
		Logger:  logger,
		Service: svc,
	}
}

// GetSlots godoc
// @Summary List bookable slots
// @Description Computes free slots of an event type between start and end, grouped by local date in time_zone. Select the event type by event_type_id or by username and slug. With reschedule_uid the booking being moved does not block its own time.
// @Tags slots
// @Produce json
// @Param event_type_id query string false "Event type ID (UUID)"
// @Param username query string false "Owner username, used with slug"
// @Param slug query string false "Event type slug, used with username"
// @Param start query string true "Window start (RFC 3339 or YYYY-MM-DD)"
// @Param end query string false "Window end (RFC 3339 or YYYY-MM-DD), defaults to start + 7 days"
// @Param time_zone query string false "IANA time zone used to group slots, defaults to UTC"
// @Param reschedule_uid query string false "UID of the booking being rescheduled"
// @Success 200 {object} controllers.SlotsSuccessResponse "data.slots maps local dates to slots"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /slots [get]
func (c *SlotController) GetSlots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := domain.SlotsQuery{
		EventTypeID:   q.Get("event_type_id"),
		Username:      q.Get("username"),
		Slug:          q.Get("slug"),
		TimeZone:      q.Get("time_zone"),
		RescheduleUID: q.Get("reschedule_uid"),
	}
	if query.EventTypeID == "" && (query.Username == "" || query.Slug == "") {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "event_type_id or username and slug are required")
		return
	}
	from, err := parseQueryTime(q.Get("start"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "start must be RFC 3339 or YYYY-MM-DD")
		return
	}
	to := from.Add(defaultSlotsWindow)
	if s := q.Get("end"); s != "" {
		if to, err = parseQueryTime(s); err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "end must be RFC 3339 or YYYY-MM-DD")
			return
		}
	}
	query.From, query.To = from, to

	result, err := c.Service.GetSlots(r.Context(), query)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
