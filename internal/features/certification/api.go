package certification

import (
	"greenbasket/internal/common/api"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CertificationApi struct {
	Controller *CertificationController
	Loader     middleware.IdentityLoader
	Logger     *zap.Logger
}

func NewCertificationApi(controller *CertificationController, loader middleware.IdentityLoader, logger *zap.Logger) api.Route {
	return &CertificationApi{Controller: controller, Loader: loader, Logger: logger}
}

func (a *CertificationApi) Setup(app *fiber.App) {
	app.Get("/api/certifications", a.Controller.List)
	app.Get("/api/certifications/:id", a.Controller.Get)

	admin := app.Group("/api/admin/certifications",
		middleware.Protect(a.Loader, a.Logger),
		middleware.RequireAdmin(),
		middleware.RequirePermission("products.update"))

	admin.Post("/", a.Controller.Create)
	admin.Put("/:id", a.Controller.Update)
	admin.Delete("/:id", a.Controller.Delete)
}
