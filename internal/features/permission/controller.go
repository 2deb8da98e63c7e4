package permission

import (
	"errors"

	"greenbasket/internal/features/activity"
	"greenbasket/internal/features/authz"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

type PermissionController struct {
	PermissionService PermissionService
	ActivityService   activity.ActivityService
}

func NewPermissionController(permissionService PermissionService, activityService activity.ActivityService) *PermissionController {
	return &PermissionController{
		PermissionService: permissionService,
		ActivityService:   activityService,
	}
}

// ListPermissions godoc
// @Summary      List permissions
// @Description  Active permissions by default; pass include_inactive=true for the full catalog
// @Tags         permissions
// @Produce      json
// @Param        include_inactive query bool false "Include disabled permissions"
// @Success      200 {array} Permission
// @Router       /api/admin/permissions [get]
func (ctrl *PermissionController) ListPermissions(c *fiber.Ctx) error {
	perms, err := ctrl.PermissionService.ListPermissions(c.UserContext(), c.QueryBool("include_inactive"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list permissions",
		})
	}
	return c.JSON(perms)
}

// ListByCategory godoc
// @Summary      List permissions grouped by category
// @Tags         permissions
// @Produce      json
// @Success      200 {object} map[string][]Permission
// @Router       /api/admin/permissions/by-category [get]
func (ctrl *PermissionController) ListByCategory(c *fiber.Ctx) error {
	grouped, err := ctrl.PermissionService.ListByCategory(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list permissions",
		})
	}
	return c.JSON(grouped)
}

// SetActive godoc
// @Summary      Enable or disable a permission
// @Description  A disabled permission stops granting access everywhere it is referenced
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Param        id path string true "Permission ID"
// @Param        body body object true "Active flag"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/admin/permissions/{id}/active [put]
func (ctrl *PermissionController) SetActive(c *fiber.Ctx) error {
	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	id := c.Params("id")
	if err := ctrl.PermissionService.SetActive(c.UserContext(), id, req.IsActive); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Permission not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	ctrl.ActivityService.Record(c, middleware.IdentityFromCtx(c),
		"permission.toggled", "Permission", nil,
		map[string]interface{}{"permission_id": id, "is_active": req.IsActive})

	return c.JSON(fiber.Map{"message": "Permission updated successfully"})
}

// MyPermissions godoc
// @Summary      Effective permissions for the current account
// @Description  Union of role permissions and direct grants, deduplicated by slug
// @Tags         permissions
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/auth/me/permissions [get]
func (ctrl *PermissionController) MyPermissions(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)
	return c.JSON(fiber.Map{
		"tier":        identity.Tier(),
		"permissions": authz.EffectivePermissions(identity),
	})
}
