package handlers

import (
	"kpi-dashboard/internal/core/services"
	"kpi-dashboard/internal/pkg/pagination"
	"kpi-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// BranchHandler handles branch endpoints
type BranchHandler struct {
	branchService *services.BranchService
	log           logrus.FieldLogger
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(branchService *services.BranchService, log logrus.FieldLogger) *BranchHandler {
	return &BranchHandler{branchService: branchService, log: log}
}

// List handles listing branches
// @Summary List branches
// @Tags Branches
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response{data=[]models.Branch}
// @Router /branches [get]
func (h *BranchHandler) List(c *fiber.Ctx) error {
	page := pagination.GetParams(c)

	branches, total, err := h.branchService.List(c.Context(), page)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return paginated(c, branches, page, total)
}

// Get handles getting a branch with its teams
// @Summary Get branch
// @Tags Branches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Branch ID"
// @Success 200 {object} response.Response{data=services.BranchDetail}
// @Failure 404 {object} response.Response
// @Router /branches/{id} [get]
func (h *BranchHandler) Get(c *fiber.Ctx) error {
	branch, err := h.branchService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, branch)
}

// Create handles branch creation
// @Summary Create branch
// @Tags Branches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.BranchInput true "Branch data"
// @Success 201 {object} response.Response{data=models.Branch}
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /branches [post]
func (h *BranchHandler) Create(c *fiber.Ctx) error {
	var req services.BranchInput
	if ok, err := bind(c, &req); !ok {
		return err
	}

	branch, err := h.branchService.Create(c.Context(), &req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Created(c, branch)
}

// Update handles branch update
// @Summary Update branch
// @Tags Branches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Branch ID"
// @Param body body services.UpdateBranchInput true "Fields to change"
// @Success 200 {object} response.Response{data=models.Branch}
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /branches/{id} [put]
func (h *BranchHandler) Update(c *fiber.Ctx) error {
	var req services.UpdateBranchInput
	if ok, err := bind(c, &req); !ok {
		return err
	}

	branch, err := h.branchService.Update(c.Context(), c.Params("id"), &req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, branch)
}

// Delete handles branch deletion
// @Summary Delete branch
// @Tags Branches
// @Security BearerAuth
// @Param id path string true "Branch ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /branches/{id} [delete]
func (h *BranchHandler) Delete(c *fiber.Ctx) error {
	if err := h.branchService.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}

	return response.NoContent(c)
}
