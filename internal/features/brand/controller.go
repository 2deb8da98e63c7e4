package brand

import (
	"errors"

	"greenbasket/internal/features/activity"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type BrandController struct {
	BrandService    BrandService
	ActivityService activity.ActivityService
}

func NewBrandController(brandService BrandService, activityService activity.ActivityService) *BrandController {
	return &BrandController{
		BrandService:    brandService,
		ActivityService: activityService,
	}
}

// ListBrands godoc
// @Summary      List brands
// @Tags         brands
// @Produce      json
// @Success      200 {array} Brand
// @Router       /api/brands [get]
func (ctrl *BrandController) ListBrands(c *fiber.Ctx) error {
	includeInactive := c.QueryBool("include_inactive") && middleware.IdentityFromCtx(c) != nil

	brands, err := ctrl.BrandService.ListBrands(c.UserContext(), includeInactive)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list brands",
		})
	}
	return c.JSON(brands)
}

// GetBrand godoc
// @Summary      Get a brand by id or slug
// @Tags         brands
// @Produce      json
// @Param        id path string true "Brand ID or slug"
// @Success      200 {object} Brand
// @Failure      404 {object} map[string]string
// @Router       /api/brands/{id} [get]
func (ctrl *BrandController) GetBrand(c *fiber.Ctx) error {
	b, err := ctrl.BrandService.GetBrand(c.UserContext(), c.Params("id"))
	if err != nil {
		return brandError(c, err)
	}
	return c.JSON(b)
}

// CreateBrand godoc
// @Summary      Create a brand
// @Tags         brands
// @Accept       json
// @Produce      json
// @Param        brand body CreateBrandRequest true "Brand"
// @Success      201 {object} Brand
// @Failure      400 {object} map[string]string
// @Router       /api/admin/brands [post]
func (ctrl *BrandController) CreateBrand(c *fiber.Ctx) error {
	var req CreateBrandRequest
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

	b, err := ctrl.BrandService.CreateBrand(c.UserContext(), &req)
	if err != nil {
		return brandError(c, err)
	}

	ctrl.ActivityService.Record(c, middleware.IdentityFromCtx(c),
		"brand.created", "Brand", &b.ID, map[string]interface{}{"name": b.Name})

	return c.Status(fiber.StatusCreated).JSON(b)
}

// UpdateBrand godoc
// @Summary      Update a brand
// @Tags         brands
// @Accept       json
// @Produce      json
// @Param        id path string true "Brand ID"
// @Param        brand body UpdateBrandRequest true "Fields to update"
// @Success      200 {object} Brand
// @Failure      404 {object} map[string]string
// @Router       /api/admin/brands/{id} [put]
func (ctrl *BrandController) UpdateBrand(c *fiber.Ctx) error {
	var req UpdateBrandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	b, err := ctrl.BrandService.UpdateBrand(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return brandError(c, err)
	}

	ctrl.ActivityService.Record(c, middleware.IdentityFromCtx(c),
		"brand.updated", "Brand", &b.ID, map[string]interface{}{"name": b.Name})

	return c.JSON(b)
}

// DeleteBrand godoc
// @Summary      Delete a brand
// @Description  Rejected while products still reference the brand
// @Tags         brands
// @Produce      json
// @Param        id path string true "Brand ID"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/admin/brands/{id} [delete]
func (ctrl *BrandController) DeleteBrand(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := ctrl.BrandService.DeleteBrand(c.UserContext(), id); err != nil {
		return brandError(c, err)
	}

	ctrl.ActivityService.Record(c, middleware.IdentityFromCtx(c),
		"brand.deleted", "Brand", nil, map[string]interface{}{"brand_id": id})

	return c.JSON(fiber.Map{"message": "Brand deleted successfully"})
}

func brandError(c *fiber.Ctx, err error) error {
	var inUse *BrandInUseError
	switch {
	case errors.Is(err, ErrBrandNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &inUse), errors.Is(err, ErrDuplicateSlug):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
