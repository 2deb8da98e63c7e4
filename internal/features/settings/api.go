package settings

import (
	"greenbasket/internal/common/api"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SettingsApi struct {
	Controller *SettingsController
	Loader     middleware.IdentityLoader
	Logger     *zap.Logger
}

func NewSettingsApi(controller *SettingsController, loader middleware.IdentityLoader, logger *zap.Logger) api.Route {
	return &SettingsApi{Controller: controller, Loader: loader, Logger: logger}
}

func (a *SettingsApi) Setup(app *fiber.App) {
	admin := app.Group("/api/admin/settings",
		middleware.Protect(a.Loader, a.Logger),
		middleware.RequireAdmin())

	admin.Get("/", middleware.RequirePermission("store.settings.read"), a.Controller.GetSettings)
	admin.Put("/", middleware.RequirePermission("store.settings.update"), a.Controller.UpdateSettings)
}
