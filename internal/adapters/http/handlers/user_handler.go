package handlers

import (
	"kpi-dashboard/internal/adapters/http/middleware"
	"kpi-dashboard/internal/adapters/persistence/repositories"
	"kpi-dashboard/internal/core/domain"
	"kpi-dashboard/internal/core/services"
	"kpi-dashboard/internal/pkg/pagination"
	"kpi-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *services.UserService
	log         logrus.FieldLogger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

// ListUsers handles listing users
// @Summary List users
// @Description Paginated user list with optional filters (admin-tier)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param search query string false "Matches first name, last name or email"
// @Param role query string false "Role" Enums(SUPER_ADMIN, ADMIN, LEADER, SUB_LEADER, MEMBER)
// @Param teamId query string false "Team ID"
// @Param branchId query string false "Branch ID"
// @Success 200 {object} response.Response{data=[]models.User}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	page := pagination.GetParams(c)
	filter := repositories.UserFilter{
		Search:   c.Query("search"),
		Role:     domain.Role(c.Query("role")),
		TeamID:   c.Query("teamId"),
		BranchID: c.Query("branchId"),
	}

	users, total, err := h.userService.ListUsers(c.Context(), filter, page)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return paginated(c, users, page, total)
}

// GetUser handles getting a user by ID
// @Summary Get user by ID
// @Description Visible to the user and admin-tier
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response{data=models.User}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.userService.GetUser(c.Context(), middleware.ActorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, user)
}

// CreateUser handles user creation
// @Summary Create user
// @Description Admin-tier. Only a super admin may create another super admin.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateUserInput true "User data"
// @Success 201 {object} response.Response{data=models.User}
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req services.CreateUserInput
	if ok, err := bind(c, &req); !ok {
		return err
	}

	user, err := h.userService.CreateUser(c.Context(), middleware.ActorFrom(c), &req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Created(c, user)
}

// UpdateUser handles user update
// @Summary Update user
// @Description Profile fields for the owner. Team, branch and active flag for admin-tier only.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body services.UpdateUserInput true "Fields to change"
// @Success 200 {object} response.Response{data=models.User}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var req services.UpdateUserInput
	if ok, err := bind(c, &req); !ok {
		return err
	}

	user, err := h.userService.UpdateUser(c.Context(), middleware.ActorFrom(c), c.Params("id"), &req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, user)
}

// UpdateUserRole handles role change
// @Summary Change user role
// @Description Admin-tier. The last active super admin cannot be demoted.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body services.UpdateRoleInput true "New role"
// @Success 200 {object} response.Response{data=models.User}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id}/role [patch]
func (h *UserHandler) UpdateUserRole(c *fiber.Ctx) error {
	var req services.UpdateRoleInput
	if ok, err := bind(c, &req); !ok {
		return err
	}

	user, err := h.userService.UpdateUserRole(c.Context(), middleware.ActorFrom(c), c.Params("id"), req.Role)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, user)
}

// DeleteUser handles user deletion
// @Summary Delete user
// @Description Admin-tier soft delete
// @Tags Users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.userService.DeleteUser(c.Context(), middleware.ActorFrom(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}

	return response.NoContent(c)
}
