package role

import (
	"greenbasket/internal/common/api"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RoleApi struct {
	Controller *RoleController
	Loader     middleware.IdentityLoader
	Logger     *zap.Logger
}

func NewRoleApi(controller *RoleController, loader middleware.IdentityLoader, logger *zap.Logger) api.Route {
	return &RoleApi{Controller: controller, Loader: loader, Logger: logger}
}

func (a *RoleApi) Setup(app *fiber.App) {
	roles := app.Group("/api/admin/roles",
		middleware.Protect(a.Loader, a.Logger),
		middleware.RequireAdmin())

	roles.Get("/", a.Controller.ListRoles)
	roles.Get("/:id", a.Controller.GetRole)

	manage := middleware.RequirePermission("settings.roles.manage")
	roles.Post("/", manage, a.Controller.CreateRole)
	roles.Put("/:id", manage, a.Controller.UpdateRole)
	roles.Delete("/:id", manage, a.Controller.DeleteRole)
	roles.Put("/:id/permissions", manage, a.Controller.AssignPermissions)
}
