package handlers

import (
	"kpi-dashboard/internal/adapters/http/middleware"
	"kpi-dashboard/internal/core/domain"
	"kpi-dashboard/internal/core/services"
	"kpi-dashboard/internal/pkg/pagination"
	"kpi-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// GoalHandler handles goal endpoints
type GoalHandler struct {
	goalService *services.GoalService
	log         logrus.FieldLogger
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goalService *services.GoalService, log logrus.FieldLogger) *GoalHandler {
	return &GoalHandler{goalService: goalService, log: log}
}

// List handles the scoped goal listing
// @Summary List goals
// @Description Admin-tier sees every goal, leaders their team's goals and their own, members their own
// @Tags Goals
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param status query string false "Status" Enums(NOT_STARTED, IN_PROGRESS, COMPLETED, CANCELLED)
// @Success 200 {object} response.Response{data=[]models.Goal}
// @Router /goals [get]
func (h *GoalHandler) List(c *fiber.Ctx) error {
	page := pagination.GetParams(c)
	status := domain.GoalStatus(c.Query("status"))

	goals, total, err := h.goalService.List(c.Context(), middleware.ActorFrom(c), status, page)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return paginated(c, goals, page, total)
}

// Get handles getting one goal
// @Summary Get goal
// @Tags Goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} response.Response{data=models.Goal}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /goals/{id} [get]
func (h *GoalHandler) Get(c *fiber.Ctx) error {
	goal, err := h.goalService.Get(c.Context(), middleware.ActorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, goal)
}

// ListByEmployee handles listing goals of one employee
// @Summary List employee goals
// @Tags Goals
// @Produce json
// @Security BearerAuth
// @Param employeeId path string true "Employee ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response{data=[]models.Goal}
// @Failure 403 {object} response.Response
// @Router /goals/employee/{employeeId} [get]
func (h *GoalHandler) ListByEmployee(c *fiber.Ctx) error {
	page := pagination.GetParams(c)

	goals, total, err := h.goalService.ListByEmployee(c.Context(), middleware.ActorFrom(c), c.Params("employeeId"), page)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return paginated(c, goals, page, total)
}

// ListByTeam handles listing goals of one team
// @Summary List team goals
// @Tags Goals
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response{data=[]models.Goal}
// @Failure 403 {object} response.Response
// @Router /goals/team/{teamId} [get]
func (h *GoalHandler) ListByTeam(c *fiber.Ctx) error {
	page := pagination.GetParams(c)

	goals, total, err := h.goalService.ListByTeam(c.Context(), middleware.ActorFrom(c), c.Params("teamId"), page)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return paginated(c, goals, page, total)
}

// Create handles goal creation
// @Summary Create goal
// @Description The employee defaults to the caller and the team to the employee's team
// @Tags Goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateGoalInput true "Goal data"
// @Success 201 {object} response.Response{data=models.Goal}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /goals [post]
func (h *GoalHandler) Create(c *fiber.Ctx) error {
	var req services.CreateGoalInput
	if ok, err := bind(c, &req); !ok {
		return err
	}

	goal, err := h.goalService.Create(c.Context(), middleware.ActorFrom(c), &req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Created(c, goal)
}

// Update handles goal update
// @Summary Update goal
// @Tags Goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Param body body services.UpdateGoalInput true "Fields to change"
// @Success 200 {object} response.Response{data=models.Goal}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /goals/{id} [put]
func (h *GoalHandler) Update(c *fiber.Ctx) error {
	var req services.UpdateGoalInput
	if ok, err := bind(c, &req); !ok {
		return err
	}

	goal, err := h.goalService.Update(c.Context(), middleware.ActorFrom(c), c.Params("id"), &req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, goal)
}

// UpdateProgress handles progress updates
// @Summary Update goal progress
// @Tags Goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Param body body services.UpdateProgressInput true "Progress"
// @Success 200 {object} response.Response{data=models.Goal}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /goals/{id}/progress [patch]
func (h *GoalHandler) UpdateProgress(c *fiber.Ctx) error {
	var req services.UpdateProgressInput
	if ok, err := bind(c, &req); !ok {
		return err
	}

	goal, err := h.goalService.UpdateProgress(c.Context(), middleware.ActorFrom(c), c.Params("id"), &req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, goal)
}

// Delete handles goal deletion
// @Summary Delete goal
// @Tags Goals
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 204
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /goals/{id} [delete]
func (h *GoalHandler) Delete(c *fiber.Ctx) error {
	if err := h.goalService.Delete(c.Context(), middleware.ActorFrom(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}

	return response.NoContent(c)
}
