package review

import (
	"errors"
	"strconv"

	"greenbasket/internal/features/activity"
	"greenbasket/internal/features/product"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReviewController struct {
	ReviewService   ReviewService
	ActivityService activity.ActivityService
}

func NewReviewController(reviewService ReviewService, activityService activity.ActivityService) *ReviewController {
	return &ReviewController{
		ReviewService:   reviewService,
		ActivityService: activityService,
	}
}

// ListForProduct godoc
// @Summary      List reviews for a product
// @Tags         reviews
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        page query int false "Page"
// @Success      200 {object} models.Paged[Review]
// @Router       /api/products/{id}/reviews [get]
func (ctrl *ReviewController) ListForProduct(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)

	paged, err := ctrl.ReviewService.ListForProduct(c.UserContext(), c.Params("id"), page)
	if err != nil {
		return reviewError(c, err)
	}
	return c.JSON(paged)
}

// Create godoc
// @Summary      Review a product
// @Description  One review per customer per product
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        review body CreateReviewRequest true "Review"
// @Success      201 {object} Review
// @Failure      400 {object} map[string]interface{}
// @Router       /api/products/{id}/reviews [post]
func (ctrl *ReviewController) Create(c *fiber.Ctx) error {
	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	identity := middleware.IdentityFromCtx(c)
	rv, err := ctrl.ReviewService.Create(c.UserContext(), identity, c.Params("id"), &req)
	if err != nil {
		return reviewError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rv)
}

// AdminList godoc
// @Summary      List all reviews
// @Tags         reviews
// @Produce      json
// @Param        product query string false "Filter by product ID"
// @Param        approved query boolean false "Filter by approval"
// @Param        page query int false "Page"
// @Success      200 {object} models.Paged[Review]
// @Router       /api/admin/reviews [get]
func (ctrl *ReviewController) AdminList(c *fiber.Ctx) error {
	q := ListReviewsQuery{Product: c.Query("product")}
	q.Page, _ = strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if raw := c.Query("approved"); raw != "" {
		approved := raw == "true"
		q.Approved = &approved
	}

	paged, err := ctrl.ReviewService.AdminList(c.UserContext(), q)
	if err != nil {
		return reviewError(c, err)
	}
	return c.JSON(paged)
}

// SetApproved godoc
// @Summary      Approve or pull a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id path string true "Review ID"
// @Success      200 {object} Review
// @Router       /api/admin/reviews/{id}/approved [put]
func (ctrl *ReviewController) SetApproved(c *fiber.Ctx) error {
	var req struct {
		Approved bool `json:"approved"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	rv, err := ctrl.ReviewService.SetApproved(c.UserContext(), c.Params("id"), req.Approved)
	if err != nil {
		return reviewError(c, err)
	}

	ctrl.ActivityService.Record(c, middleware.IdentityFromCtx(c),
		"review.moderated", "Review", &rv.ID, map[string]interface{}{"approved": req.Approved})

	return c.JSON(rv)
}

// Delete godoc
// @Summary      Delete a review
// @Tags         reviews
// @Param        id path string true "Review ID"
// @Success      204
// @Router       /api/admin/reviews/{id} [delete]
func (ctrl *ReviewController) Delete(c *fiber.Ctx) error {
	if err := ctrl.ReviewService.DeleteReview(c.UserContext(), c.Params("id")); err != nil {
		return reviewError(c, err)
	}

	ctrl.ActivityService.Record(c, middleware.IdentityFromCtx(c),
		"review.deleted", "Review", nil, nil)

	return c.SendStatus(fiber.StatusNoContent)
}

func reviewError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrReviewNotFound), errors.Is(err, product.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrAlreadyReviewed), errors.Is(err, ErrBadRating):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
