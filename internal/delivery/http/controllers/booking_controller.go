package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"calbooking/internal/delivery/http/helpers"
	"calbooking/internal/delivery/http/middleware"
	"calbooking/internal/domain"
)

// CreateBookingRequest is the request body for POST /bookings.
type CreateBookingRequest struct {
	EventTypeID   string    `json:"event_type_id" validate:"required,uuid"`
	Start         time.Time `json:"start" validate:"required"`
	Name          string    `json:"name" validate:"required,max=100"`
	Email         string    `json:"email" validate:"required,email,max=254"`
	TimeZone      string    `json:"time_zone" validate:"omitempty,timezone"`
	Description   string    `json:"description" validate:"max=5000"`
	Location      string    `json:"location" validate:"max=500"`
	RescheduleUID string    `json:"reschedule_uid" validate:"omitempty,uuid"`
}

// RescheduleBookingRequest is the request body for POST /bookings/{uid}/reschedule.
type RescheduleBookingRequest struct {
	Start            time.Time `json:"start" validate:"required"`
	Reason           string    `json:"reason" validate:"max=1000"`
	SeatReferenceUID string    `json:"seat_reference_uid" validate:"omitempty,uuid"`
}

// CancelBookingRequest is the request body for POST /bookings/{uid}/cancel.
type CancelBookingRequest struct {
	Reason           string `json:"reason" validate:"max=1000"`
	SeatReferenceUID string `json:"seat_reference_uid" validate:"omitempty,uuid"`
	CancelledBy      string `json:"cancelled_by" validate:"omitempty,email"`
}

// RejectBookingRequest is the request body for POST /bookings/{uid}/reject.
type RejectBookingRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}

// BookingResultSuccessResponse is the success response envelope for create and reschedule.
type BookingResultSuccessResponse struct {
	Data  *domain.BookingResult `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// BookingSuccessResponse is the success response envelope for endpoints returning one booking.
type BookingSuccessResponse struct {
	Data  *domain.Booking   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListBookingsResponse is the data of GET /me/bookings.
type ListBookingsResponse struct {
	Items      []*domain.Booking      `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListBookingsSuccessResponse is the success response envelope for GET /me/bookings (200).
type ListBookingsSuccessResponse struct {
	Data  *ListBookingsResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Book a slot
// @Description Books the slot starting at start. Seated event types add the attendee to the slot's booking until it is full. Event types that require confirmation create a pending booking. With reschedule_uid the referenced booking is moved instead. Rate limited per client IP.
// @Tags bookings
// @Accept json
// @Produce json
// @Param body body CreateBookingRequest true "Booking data"
// @Success 201 {object} controllers.BookingResultSuccessResponse "data contains the booking and the attendee created by this call"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (slot unavailable or seats full)"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings [post]
func (c *BookingController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.Create(r.Context(), domain.CreateBookingInput{
		EventTypeID: req.EventTypeID,
		Start:       req.Start,
		Attendee: domain.AttendeeInput{
			Name:     req.Name,
			Email:    req.Email,
			TimeZone: req.TimeZone,
		},
		Description:   req.Description,
		Location:      req.Location,
		RescheduleUID: req.RescheduleUID,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, result)
}

// Get godoc
// @Summary Get a booking
// @Description Returns the booking identified by its public uid.
// @Tags bookings
// @Produce json
// @Param uid path string true "Booking UID"
// @Success 200 {object} controllers.BookingSuccessResponse "data contains the booking"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/{uid} [get]
func (c *BookingController) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := pathID(w, r, "uid")
	if !ok {
		return
	}
	b, err := c.Service.Get(r.Context(), uid)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, b)
}

// Reschedule godoc
// @Summary Reschedule a booking
// @Description Moves the booking to a new start. The original is cancelled with rescheduled=true and a new booking referencing it is returned. With seat_reference_uid only that seat moves.
// @Tags bookings
// @Accept json
// @Produce json
// @Param uid path string true "Booking UID"
// @Param body body RescheduleBookingRequest true "New start"
// @Success 200 {object} controllers.BookingResultSuccessResponse "data contains the new booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/{uid}/reschedule [post]
func (c *BookingController) Reschedule(w http.ResponseWriter, r *http.Request) {
	uid, ok := pathID(w, r, "uid")
	if !ok {
		return
	}
	var req RescheduleBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.Reschedule(r.Context(), uid, domain.RescheduleInput{
		Start:            req.Start,
		Reason:           req.Reason,
		SeatReferenceUID: req.SeatReferenceUID,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// Cancel godoc
// @Summary Cancel a booking
// @Description Cancels the booking, or only one seat when seat_reference_uid is set. A signed-in caller is recorded as the canceller, otherwise cancelled_by from the body.
// @Tags bookings
// @Accept json
// @Produce json
// @Param uid path string true "Booking UID"
// @Param body body CancelBookingRequest false "Cancellation details"
// @Success 200 {object} controllers.BookingSuccessResponse "data contains the booking after cancellation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already cancelled or rejected)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/{uid}/cancel [post]
func (c *BookingController) Cancel(w http.ResponseWriter, r *http.Request) {
	uid, ok := pathID(w, r, "uid")
	if !ok {
		return
	}
	var req CancelBookingRequest
	if r.ContentLength != 0 && !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	cancelledBy := strings.TrimSpace(req.CancelledBy)
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
		cancelledBy = userID
	}
	b, err := c.Service.Cancel(r.Context(), uid, domain.CancelInput{
		Reason:           req.Reason,
		SeatReferenceUID: req.SeatReferenceUID,
		CancelledBy:      cancelledBy,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, b)
}

// Confirm godoc
// @Summary Confirm a pending booking
// @Description Accepts a booking that requires confirmation. Only a host of the booking may confirm.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param uid path string true "Booking UID"
// @Success 200 {object} controllers.BookingSuccessResponse "data contains the accepted booking"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (not pending)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/{uid}/confirm [post]
func (c *BookingController) Confirm(w http.ResponseWriter, r *http.Request) {
	uid, ok := pathID(w, r, "uid")
	if !ok {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	b, err := c.Service.Confirm(r.Context(), uid, userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, b)
}

// Reject godoc
// @Summary Reject a pending booking
// @Description Declines a booking that requires confirmation. Only a host of the booking may reject.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uid path string true "Booking UID"
// @Param body body RejectBookingRequest false "Rejection reason"
// @Success 200 {object} controllers.BookingSuccessResponse "data contains the rejected booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (not pending)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/{uid}/reject [post]
func (c *BookingController) Reject(w http.ResponseWriter, r *http.Request) {
	uid, ok := pathID(w, r, "uid")
	if !ok {
		return
	}
	var req RejectBookingRequest
	if r.ContentLength != 0 && !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	b, err := c.Service.Reject(r.Context(), uid, userID, req.Reason)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, b)
}

// ListMine godoc
// @Summary List my bookings
// @Description Paginated bookings where the caller is the organizer or a host, newest start first. Filter by status.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "accepted, pending, cancelled or rejected"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListBookingsSuccessResponse "data contains items and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me/bookings [get]
func (c *BookingController) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	status := domain.BookingStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid status")
		return
	}
	params := helpers.ParsePagination(r)
	items, total, err := c.Service.ListForUser(r.Context(), userID, status, params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if items == nil {
		items = []*domain.Booking{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListBookingsResponse{
		Items:      items,
		Pagination: helpers.NewPaginationMeta(params, total),
	})
}
