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

// ReviewHandler handles performance review endpoints
type ReviewHandler struct {
	reviewService *services.ReviewService
	log           logrus.FieldLogger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *services.ReviewService, log logrus.FieldLogger) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, log: log}
}

// List handles listing reviews
// @Summary List reviews
// @Description Admin-tier sees every review, other users the reviews they take part in
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param status query string false "Status" Enums(DRAFT, SUBMITTED, COMPLETED)
// @Success 200 {object} response.Response{data=[]models.PerformanceReview}
// @Router /performance-reviews [get]
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	page := pagination.GetParams(c)
	status := domain.ReviewStatus(c.Query("status"))

	reviews, total, err := h.reviewService.List(c.Context(), middleware.ActorFrom(c), status, page)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return paginated(c, reviews, page, total)
}

// Get handles getting one review
// @Summary Get review
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} response.Response{data=models.PerformanceReview}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /performance-reviews/{id} [get]
func (h *ReviewHandler) Get(c *fiber.Ctx) error {
	review, err := h.reviewService.Get(c.Context(), middleware.ActorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, review)
}

// ListByEmployee handles listing the reviews of one employee
// @Summary List employee reviews
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param employeeId path string true "Employee ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response{data=[]models.PerformanceReview}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /performance-reviews/employee/{employeeId} [get]
func (h *ReviewHandler) ListByEmployee(c *fiber.Ctx) error {
	page := pagination.GetParams(c)

	reviews, total, err := h.reviewService.ListByEmployee(c.Context(), middleware.ActorFrom(c), c.Params("employeeId"), page)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return paginated(c, reviews, page, total)
}

// Create handles review creation
// @Summary Create review
// @Description The reviewer defaults to the caller
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateReviewInput true "Review data"
// @Success 201 {object} response.Response{data=models.PerformanceReview}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /performance-reviews [post]
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var req services.CreateReviewInput
	if ok, err := bind(c, &req); !ok {
		return err
	}

	review, err := h.reviewService.Create(c.Context(), middleware.ActorFrom(c), &req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Created(c, review)
}

// Update handles review update
// @Summary Update review
// @Description Finalized reviews can only be changed by admin-tier
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param body body services.UpdateReviewInput true "Fields to change"
// @Success 200 {object} response.Response{data=models.PerformanceReview}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /performance-reviews/{id} [put]
func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	var req services.UpdateReviewInput
	if ok, err := bind(c, &req); !ok {
		return err
	}

	review, err := h.reviewService.Update(c.Context(), middleware.ActorFrom(c), c.Params("id"), &req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, review)
}

// Finalize handles review finalization
// @Summary Finalize review
// @Description Requires an overall rating. Marks the review COMPLETED.
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} response.Response{data=models.PerformanceReview}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /performance-reviews/{id}/finalize [post]
func (h *ReviewHandler) Finalize(c *fiber.Ctx) error {
	review, err := h.reviewService.Finalize(c.Context(), middleware.ActorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return response.Success(c, review)
}

// Delete handles review deletion
// @Summary Delete review
// @Tags Reviews
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 204
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /performance-reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	if err := h.reviewService.Delete(c.Context(), middleware.ActorFrom(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}

	return response.NoContent(c)
}
