package activity

import (
	"greenbasket/internal/common/api"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ActivityApi struct {
	Controller *ActivityController
	Loader     middleware.IdentityLoader
	Logger     *zap.Logger
}

func NewActivityApi(controller *ActivityController, loader middleware.IdentityLoader, logger *zap.Logger) api.Route {
	return &ActivityApi{Controller: controller, Loader: loader, Logger: logger}
}

func (a *ActivityApi) Setup(app *fiber.App) {
	admin := app.Group("/api/admin", middleware.Protect(a.Loader, a.Logger))

	admin.Get("/activity",
		middleware.RequirePermission("settings.activity.read"),
		a.Controller.ListActivity)
}
