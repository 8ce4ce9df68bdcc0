package controllers

import (
	"log/slog"
	"net/http"

	"calbooking/internal/delivery/http/helpers"
	"calbooking/internal/domain"
)

// CreateTeamRequest is the request body for POST /teams.
type CreateTeamRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Slug string `json:"slug" validate:"max=100"`
}

// AddMemberRequest is the request body for POST /teams/{teamID}/members.
type AddMemberRequest struct {
	Email string                `json:"email" validate:"required,email"`
	Role  domain.MembershipRole `json:"role" validate:"omitempty,oneof=admin member"`
}

// TeamSuccessResponse is the success response envelope for POST /teams (201).
type TeamSuccessResponse struct {
	Data  *domain.Team      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TeamListSuccessResponse is the success response envelope for GET /teams (200).
type TeamListSuccessResponse struct {
	Data  []*domain.Team    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TeamMemberSuccessResponse is the success response envelope for POST /teams/{teamID}/members (201).
type TeamMemberSuccessResponse struct {
	Data  *domain.TeamMember `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// TeamMemberListSuccessResponse is the success response envelope for GET /teams/{teamID}/members (200).
type TeamMemberListSuccessResponse struct {
	Data  []*domain.TeamMember `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type TeamController struct {
	Logger  *slog.Logger
	Service domain.TeamService
}

func NewTeamController(logger *slog.Logger, svc domain.TeamService) *TeamController {
	return &TeamController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create a team
// @Description Creates a team with the caller as owner. The slug defaults to the slugified name.
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateTeamRequest true "Team"
// @Success 201 {object} controllers.TeamSuccessResponse "data contains the created team"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (slug taken)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams [post]
func (c *TeamController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	team, err := c.Service.Create(r.Context(), userID, req.Name, req.Slug)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, team)
}

// List godoc
// @Summary List my teams
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.TeamListSuccessResponse "data contains the teams"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams [get]
func (c *TeamController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	teams, err := c.Service.ListMine(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, teams)
}

// AddMember godoc
// @Summary Add a team member
// @Description Adds a registered user by email. Only owners and admins may add members. Role defaults to member.
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamID path string true "Team ID (UUID)"
// @Param body body AddMemberRequest true "Member"
// @Success 201 {object} controllers.TeamMemberSuccessResponse "data contains the new member"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already a member)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams/{teamID}/members [post]
func (c *TeamController) AddMember(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	var req AddMemberRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	role := req.Role
	if role == "" {
		role = domain.RoleMember
	}
	member, err := c.Service.AddMember(r.Context(), teamID, userID, req.Email, role)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, member)
}

// ListMembers godoc
// @Summary List team members
// @Description Only members of the team may list its members.
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param teamID path string true "Team ID (UUID)"
// @Success 200 {object} controllers.TeamMemberListSuccessResponse "data contains the members"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams/{teamID}/members [get]
func (c *TeamController) ListMembers(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	members, err := c.Service.ListMembers(r.Context(), teamID, userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, members)
}
