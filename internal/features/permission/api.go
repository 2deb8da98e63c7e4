package permission

import (
	"greenbasket/internal/common/api"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PermissionApi struct {
	Controller *PermissionController
	Loader     middleware.IdentityLoader
	Logger     *zap.Logger
}

func NewPermissionApi(controller *PermissionController, loader middleware.IdentityLoader, logger *zap.Logger) api.Route {
	return &PermissionApi{Controller: controller, Loader: loader, Logger: logger}
}

func (a *PermissionApi) Setup(app *fiber.App) {
	protect := middleware.Protect(a.Loader, a.Logger)

	// Any signed-in account may see its own effective set.
	app.Get("/api/auth/me/permissions", protect, a.Controller.MyPermissions)

	perms := app.Group("/api/admin/permissions", protect, middleware.RequireAdmin())
	perms.Get("/", a.Controller.ListPermissions)
	perms.Get("/by-category", a.Controller.ListByCategory)
	perms.Put("/:id/active",
		middleware.RequirePermission("settings.permissions.manage"),
		a.Controller.SetActive)
}
