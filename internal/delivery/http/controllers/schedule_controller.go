package controllers

import (
	"log/slog"
	"net/http"

	"calbooking/internal/delivery/http/helpers"
	"calbooking/internal/domain"
)

// AvailabilityRequest is one working-hours row. Set days for a weekly rule or
// date (YYYY-MM-DD) for an override; start_minute = end_minute = 0 blocks the date.
type AvailabilityRequest struct {
	Days        []int   `json:"days" validate:"omitempty,dive,min=0,max=6"`
	Date        *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartMinute int     `json:"start_minute" validate:"min=0,max=1440"`
	EndMinute   int     `json:"end_minute" validate:"min=0,max=1440"`
}

// ScheduleRequest is the request body for POST /schedules and PUT /schedules/{id}.
type ScheduleRequest struct {
	Name         string                `json:"name" validate:"required,max=100"`
	TimeZone     string                `json:"time_zone" validate:"required,timezone"`
	Availability []AvailabilityRequest `json:"availability" validate:"omitempty,dive"`
}

// Validate implements Validator.
func (req ScheduleRequest) Validate() []string {
	var errs []string
	for _, a := range req.Availability {
		if (a.Date == nil) == (len(a.Days) == 0) {
			errs = append(errs, "each availability row needs either days or date")
			break
		}
	}
	return errs
}

func (req ScheduleRequest) toInput() domain.ScheduleInput {
	in := domain.ScheduleInput{
		Name:         req.Name,
		TimeZone:     req.TimeZone,
		Availability: make([]domain.Availability, 0, len(req.Availability)),
	}
	for _, a := range req.Availability {
		in.Availability = append(in.Availability, domain.Availability{
			Days:        a.Days,
			Date:        a.Date,
			StartMinute: a.StartMinute,
			EndMinute:   a.EndMinute,
		})
	}
	return in
}

// ScheduleSuccessResponse is the success response envelope for endpoints returning one schedule.
type ScheduleSuccessResponse struct {
	Data  *domain.Schedule  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ScheduleListSuccessResponse is the success response envelope for GET /schedules (200).
type ScheduleListSuccessResponse struct {
	Data  []*domain.Schedule `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type ScheduleController struct {
	Logger  *slog.Logger
	Service domain.ScheduleService
}

func NewScheduleController(logger *slog.Logger, svc domain.ScheduleService) *ScheduleController {
	return &ScheduleController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create a schedule
// @Description Creates working hours in one time zone. The caller's first schedule becomes their default.
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ScheduleRequest true "Schedule"
// @Success 201 {object} controllers.ScheduleSuccessResponse "data contains the created schedule"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedules [post]
func (c *ScheduleController) Create(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	s, err := c.Service.Create(r.Context(), userID, req.toInput())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, s)
}

// List godoc
// @Summary List my schedules
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ScheduleListSuccessResponse "data contains the schedules"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedules [get]
func (c *ScheduleController) List(w http.ResponseWriter, r *http.Request) {
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
// @Summary Get a schedule
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID (UUID)"
// @Success 200 {object} controllers.ScheduleSuccessResponse "data contains the schedule"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedules/{id} [get]
func (c *ScheduleController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	s, err := c.Service.Get(r.Context(), id, userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, s)
}

// Update godoc
// @Summary Replace a schedule
// @Description Replaces name, time zone and every availability row.
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID (UUID)"
// @Param body body ScheduleRequest true "Schedule"
// @Success 200 {object} controllers.ScheduleSuccessResponse "data contains the updated schedule"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedules/{id} [put]
func (c *ScheduleController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req ScheduleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	s, err := c.Service.Update(r.Context(), id, userID, req.toInput())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, s)
}

// Delete godoc
// @Summary Delete a schedule
// @Description Deleting the default schedule promotes another one. A user's only schedule cannot be deleted.
// @Tags schedules
// @Security BearerAuth
// @Param id path string true "Schedule ID (UUID)"
// @Success 204 "No Content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (only schedule)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedules/{id} [delete]
func (c *ScheduleController) Delete(w http.ResponseWriter, r *http.Request) {
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
