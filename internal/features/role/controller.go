package role

import (
	"errors"

	"greenbasket/internal/features/activity"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type RoleController struct {
	RoleService     RoleService
	ActivityService activity.ActivityService
}

func NewRoleController(roleService RoleService, activityService activity.ActivityService) *RoleController {
	return &RoleController{
		RoleService:     roleService,
		ActivityService: activityService,
	}
}

// ListRoles godoc
// @Summary      List roles
// @Description  All roles sorted by level, permissions resolved
// @Tags         roles
// @Produce      json
// @Success      200 {array} RoleWithPermissions
// @Router       /api/admin/roles [get]
func (ctrl *RoleController) ListRoles(c *fiber.Ctx) error {
	roles, err := ctrl.RoleService.ListRoles(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list roles",
		})
	}
	return c.JSON(roles)
}

// GetRole godoc
// @Summary      Get role by ID
// @Tags         roles
// @Produce      json
// @Param        id path string true "Role ID"
// @Success      200 {object} RoleWithPermissions
// @Failure      404 {object} map[string]string
// @Router       /api/admin/roles/{id} [get]
func (ctrl *RoleController) GetRole(c *fiber.Ctx) error {
	role, err := ctrl.RoleService.GetRole(c.UserContext(), c.Params("id"))
	if err != nil {
		return roleError(c, err)
	}
	return c.JSON(role)
}

// CreateRole godoc
// @Summary      Create a new role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        role body CreateRoleRequest true "Role"
// @Success      201 {object} RoleWithPermissions
// @Failure      400 {object} map[string]string
// @Router       /api/admin/roles [post]
func (ctrl *RoleController) CreateRole(c *fiber.Ctx) error {
	var req CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	role, err := ctrl.RoleService.CreateRole(c.UserContext(), &req)
	if err != nil {
		return roleError(c, err)
	}

	ctrl.ActivityService.Record(c, middleware.IdentityFromCtx(c),
		"role.created", "Role", &role.ID, map[string]interface{}{"role_name": role.Name})

	return c.Status(fiber.StatusCreated).JSON(role)
}

// UpdateRole godoc
// @Summary      Update a role
// @Description  System role identity fields are immutable; only the permission set and active flag may change
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        id path string true "Role ID"
// @Param        role body UpdateRoleRequest true "Fields to update"
// @Success      200 {object} RoleWithPermissions
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/admin/roles/{id} [put]
func (ctrl *RoleController) UpdateRole(c *fiber.Ctx) error {
	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	role, err := ctrl.RoleService.UpdateRole(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return roleError(c, err)
	}

	ctrl.ActivityService.Record(c, middleware.IdentityFromCtx(c),
		"role.updated", "Role", &role.ID, map[string]interface{}{"role_name": role.Name})

	return c.JSON(role)
}

// DeleteRole godoc
// @Summary      Delete a role
// @Description  Rejected for system roles and for roles still assigned to users
// @Tags         roles
// @Produce      json
// @Param        id path string true "Role ID"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/admin/roles/{id} [delete]
func (ctrl *RoleController) DeleteRole(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := ctrl.RoleService.DeleteRole(c.UserContext(), id); err != nil {
		return roleError(c, err)
	}

	ctrl.ActivityService.Record(c, middleware.IdentityFromCtx(c),
		"role.deleted", "Role", nil, map[string]interface{}{"role_id": id})

	return c.JSON(fiber.Map{"message": "Role deleted successfully"})
}

// AssignPermissions godoc
// @Summary      Replace a role's permission set
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        id path string true "Role ID"
// @Param        body body object true "Permission IDs"
// @Success      200 {object} RoleWithPermissions
// @Failure      400 {object} map[string]string
// @Router       /api/admin/roles/{id}/permissions [put]
func (ctrl *RoleController) AssignPermissions(c *fiber.Ctx) error {
	var req struct {
		Permissions []string `json:"permissions"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	role, err := ctrl.RoleService.AssignPermissions(c.UserContext(), c.Params("id"), req.Permissions)
	if err != nil {
		return roleError(c, err)
	}

	ctrl.ActivityService.Record(c, middleware.IdentityFromCtx(c),
		"role.permissions.updated", "Role", &role.ID,
		map[string]interface{}{"role_name": role.Name, "permission_count": len(req.Permissions)})

	return c.JSON(role)
}

func roleError(c *fiber.Ctx, err error) error {
	var inUse *RoleInUseError
	switch {
	case errors.Is(err, ErrRoleNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &inUse),
		errors.Is(err, ErrDuplicateSlug),
		errors.Is(err, ErrSystemRoleDelete),
		errors.Is(err, ErrSystemRoleFields),
		errors.Is(err, ErrPermissionNotFound),
		errors.Is(err, ErrInvalidLevel):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
