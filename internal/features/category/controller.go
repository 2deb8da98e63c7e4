package category

import (
	"errors"

	"greenbasket/internal/features/activity"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CategoryController struct {
	CategoryService CategoryService
	ActivityService activity.ActivityService
}

func NewCategoryController(categoryService CategoryService, activityService activity.ActivityService) *CategoryController {
	return &CategoryController{
		CategoryService: categoryService,
		ActivityService: activityService,
	}
}

// ListCategories godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        include_inactive query bool false "Admin only: include hidden categories"
// @Success      200 {array} Category
// @Router       /api/categories [get]
func (ctrl *CategoryController) ListCategories(c *fiber.Ctx) error {
	includeInactive := c.QueryBool("include_inactive") && middleware.IdentityFromCtx(c) != nil

	categories, err := ctrl.CategoryService.ListCategories(c.UserContext(), includeInactive)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list categories",
		})
	}
	return c.JSON(categories)
}

// GetCategory godoc
// @Summary      Get a category by id or slug
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID or slug"
// @Success      200 {object} Category
// @Failure      404 {object} map[string]string
// @Router       /api/categories/{id} [get]
func (ctrl *CategoryController) GetCategory(c *fiber.Ctx) error {
	cat, err := ctrl.CategoryService.GetCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return categoryError(c, err)
	}
	return c.JSON(cat)
}

// CreateCategory godoc
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        category body CreateCategoryRequest true "Category"
// @Success      201 {object} Category
// @Failure      400 {object} map[string]string
// @Router       /api/admin/categories [post]
func (ctrl *CategoryController) CreateCategory(c *fiber.Ctx) error {
	var req CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	cat, err := ctrl.CategoryService.CreateCategory(c.UserContext(), &req)
	if err != nil {
		return categoryError(c, err)
	}

	ctrl.ActivityService.Record(c, middleware.IdentityFromCtx(c),
		"category.created", "Category", &cat.ID, map[string]interface{}{"name": cat.Name})

	return c.Status(fiber.StatusCreated).JSON(cat)
}

// UpdateCategory godoc
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID"
// @Param        category body UpdateCategoryRequest true "Fields to update"
// @Success      200 {object} Category
// @Failure      404 {object} map[string]string
// @Router       /api/admin/categories/{id} [put]
func (ctrl *CategoryController) UpdateCategory(c *fiber.Ctx) error {
	var req UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	cat, err := ctrl.CategoryService.UpdateCategory(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return categoryError(c, err)
	}

	ctrl.ActivityService.Record(c, middleware.IdentityFromCtx(c),
		"category.updated", "Category", &cat.ID, map[string]interface{}{"name": cat.Name})

	return c.JSON(cat)
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Description  Rejected while products still reference the category
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/admin/categories/{id} [delete]
func (ctrl *CategoryController) DeleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := ctrl.CategoryService.DeleteCategory(c.UserContext(), id); err != nil {
		return categoryError(c, err)
	}

	ctrl.ActivityService.Record(c, middleware.IdentityFromCtx(c),
		"category.deleted", "Category", nil, map[string]interface{}{"category_id": id})

	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}

func categoryError(c *fiber.Ctx, err error) error {
	var inUse *CategoryInUseError
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &inUse),
		errors.Is(err, ErrDuplicateSlug),
		errors.Is(err, ErrUnknownParent):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
