package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"calbooking/internal/delivery/http/helpers"
	"calbooking/internal/domain"
)

// CreateCredentialRequest is the request body for POST /credentials.
// For type http_freebusy the key is {"url": "...", "token": "..."}.
type CreateCredentialRequest struct {
	Type string          `json:"type" validate:"required"`
	Key  json.RawMessage `json:"key" validate:"required"`
}

// CredentialSuccessResponse is the success response envelope for POST /credentials (201).
type CredentialSuccessResponse struct {
	Data  *domain.Credential `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// CredentialListSuccessResponse is the success response envelope for GET /credentials (200).
type CredentialListSuccessResponse struct {
	Data  []*domain.Credential `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type CredentialController struct {
	Logger  *slog.Logger
	Service domain.CredentialService
}

func NewCredentialController(logger *slog.Logger, svc domain.CredentialService) *CredentialController {
	return &CredentialController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Connect a calendar
// @Description Stores a calendar credential whose busy times block the caller's slots. The key is never returned.
// @Tags credentials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateCredentialRequest true "Credential"
// @Success 201 {object} controllers.CredentialSuccessResponse "data contains the credential without its key"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /credentials [post]
func (c *CredentialController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCredentialRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	cred, err := c.Service.Create(r.Context(), userID, req.Type, req.Key)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, cred)
}

// List godoc
// @Summary List my calendar credentials
// @Tags credentials
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.CredentialListSuccessResponse "data contains the credentials"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /credentials [get]
func (c *CredentialController) List(w http.ResponseWriter, r *http.Request) {
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

// Delete godoc
// @Summary Disconnect a calendar
// @Tags credentials
// @Security BearerAuth
// @Param id path string true "Credential ID (UUID)"
// @Success 204 "No Content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /credentials/{id} [delete]
func (c *CredentialController) Delete(w http.ResponseWriter, r *http.Request) {
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
