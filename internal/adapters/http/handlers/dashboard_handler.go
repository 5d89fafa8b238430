package handlers

import (
	"kpi-dashboard/internal/adapters/http/middleware"
	"kpi-dashboard/internal/core/services"
	"kpi-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
	log              logrus.FieldLogger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService, log logrus.FieldLogger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		log:              log,
	}
}

// GetStats returns organisation-wide statistics
// @Summary Admin statistics
// @Description User, team, branch, goal and review counts with the organisation average (admin-tier)
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=services.StatsData}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetStats(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, data)
}

// GetMyDashboard returns the caller's own goal counts and score
// @Summary Personal dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=services.MyDashboardData}
// @Failure 401 {object} response.Response
// @Router /dashboard/me [get]
func (h *DashboardHandler) GetMyDashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetMyDashboard(c.Context(), middleware.ActorFrom(c))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, data)
}
