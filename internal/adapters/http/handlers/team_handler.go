package handlers

import (
	"kpi-dashboard/internal/core/services"
	"kpi-dashboard/internal/pkg/pagination"
	"kpi-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// TeamHandler handles team endpoints
type TeamHandler struct {
	teamService *services.TeamService
	log         logrus.FieldLogger
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService *services.TeamService, log logrus.FieldLogger) *TeamHandler {
	return &TeamHandler{teamService: teamService, log: log}
}

// List handles listing teams
// @Summary List teams
// @Tags Teams
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param branchId query string false "Branch ID"
// @Success 200 {object} response.Response{data=[]models.Team}
// @Router /teams [get]
func (h *TeamHandler) List(c *fiber.Ctx) error {
	page := pagination.GetParams(c)

	teams, total, err := h.teamService.List(c.Context(), c.Query("branchId"), page)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return paginated(c, teams, page, total)
}

// Get handles getting a team with its members
// @Summary Get team
// @Tags Teams
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 200 {object} response.Response{data=services.TeamDetail}
// @Failure 404 {object} response.Response
// @Router /teams/{id} [get]
func (h *TeamHandler) Get(c *fiber.Ctx) error {
	team, err := h.teamService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, team)
}

// Create handles team creation
// @Summary Create team
// @Description Admin-tier. An optional leader is attached after the team is stored.
// @Tags Teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateTeamInput true "Team data"
// @Success 201 {object} response.Response{data=models.Team}
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /teams [post]
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var req services.CreateTeamInput
	if ok, err := bind(c, &req); !ok {
		return err
	}

	team, err := h.teamService.Create(c.Context(), &req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Created(c, team)
}

// Update handles team update
// @Summary Update team
// @Tags Teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param body body services.UpdateTeamInput true "Fields to change"
// @Success 200 {object} response.Response{data=models.Team}
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /teams/{id} [put]
func (h *TeamHandler) Update(c *fiber.Ctx) error {
	var req services.UpdateTeamInput
	if ok, err := bind(c, &req); !ok {
		return err
	}

	team, err := h.teamService.Update(c.Context(), c.Params("id"), &req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, team)
}

// SetLeader handles leader assignment
// @Summary Assign team leader
// @Description Sets the leader, promotes the user to LEADER and moves them into the team in one transaction
// @Tags Teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param body body services.SetLeaderInput true "Leader"
// @Success 200 {object} response.Response{data=services.TeamDetail}
// @Failure 404 {object} response.Response
// @Router /teams/{id}/leader [put]
func (h *TeamHandler) SetLeader(c *fiber.Ctx) error {
	var req services.SetLeaderInput
	if ok, err := bind(c, &req); !ok {
		return err
	}

	team, err := h.teamService.SetLeader(c.Context(), c.Params("id"), req.LeaderID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, team)
}

// AddMember handles adding a user to a team
// @Summary Add team member
// @Tags Teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param body body services.AddMemberInput true "Member"
// @Success 200 {object} response.Response{data=services.TeamDetail}
// @Failure 404 {object} response.Response
// @Router /teams/{id}/members [post]
func (h *TeamHandler) AddMember(c *fiber.Ctx) error {
	var req services.AddMemberInput
	if ok, err := bind(c, &req); !ok {
		return err
	}

	team, err := h.teamService.AddMember(c.Context(), c.Params("id"), req.UserID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, team)
}

// RemoveMember handles removing a user from a team
// @Summary Remove team member
// @Tags Teams
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param userId path string true "User ID"
// @Success 204
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /teams/{id}/members/{userId} [delete]
func (h *TeamHandler) RemoveMember(c *fiber.Ctx) error {
	if err := h.teamService.RemoveMember(c.Context(), c.Params("id"), c.Params("userId")); err != nil {
		return respondError(c, h.log, err)
	}

	return response.NoContent(c)
}

// Delete handles team deletion
// @Summary Delete team
// @Tags Teams
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /teams/{id} [delete]
func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	if err := h.teamService.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}

	return response.NoContent(c)
}
