package handlers

import (
	"kpi-dashboard/internal/adapters/http/middleware"
	"kpi-dashboard/internal/core/services"
	"kpi-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// PerformanceHandler serves aggregated review scores
type PerformanceHandler struct {
	performanceService *services.PerformanceService
	log                logrus.FieldLogger
}

// NewPerformanceHandler creates a new performance handler
func NewPerformanceHandler(performanceService *services.PerformanceService, log logrus.FieldLogger) *PerformanceHandler {
	return &PerformanceHandler{performanceService: performanceService, log: log}
}

// EmployeeScore returns the average score of one employee
// @Summary Employee score
// @Tags Performance
// @Produce json
// @Security BearerAuth
// @Param employeeId path string true "Employee ID"
// @Success 200 {object} response.Response{data=services.EmployeeScore}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /performance/employee/{employeeId} [get]
func (h *PerformanceHandler) EmployeeScore(c *fiber.Ctx) error {
	score, err := h.performanceService.EmployeeScore(c.Context(), middleware.ActorFrom(c), c.Params("employeeId"))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, score)
}

// TeamScore returns the average of a team and its members ranked by score
// @Summary Team score
// @Tags Performance
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Success 200 {object} response.Response{data=services.TeamScore}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /performance/team/{teamId} [get]
func (h *PerformanceHandler) TeamScore(c *fiber.Ctx) error {
	score, err := h.performanceService.TeamScore(c.Context(), c.Params("teamId"))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, score)
}

// Overview returns every team's average, best first
// @Summary Organisation overview
// @Tags Performance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]services.TeamSummary}
// @Failure 403 {object} response.Response
// @Router /performance/overview [get]
func (h *PerformanceHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.performanceService.Overview(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, overview)
}
