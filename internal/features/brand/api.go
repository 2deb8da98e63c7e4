package brand

import (
	"greenbasket/internal/common/api"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BrandApi struct {
	Controller *BrandController
	Loader     middleware.IdentityLoader
	Logger     *zap.Logger
}

func NewBrandApi(controller *BrandController, loader middleware.IdentityLoader, logger *zap.Logger) api.Route {
	return &BrandApi{Controller: controller, Loader: loader, Logger: logger}
}

func (a *BrandApi) Setup(app *fiber.App) {
	app.Get("/api/brands", a.Controller.ListBrands)
	app.Get("/api/brands/:id", a.Controller.GetBrand)

	admin := app.Group("/api/admin/brands",
		middleware.Protect(a.Loader, a.Logger),
		middleware.RequireAdmin(),
		middleware.RequirePermission("products.update"))

	admin.Post("/", a.Controller.CreateBrand)
	admin.Put("/:id", a.Controller.UpdateBrand)
	admin.Delete("/:id", a.Controller.DeleteBrand)
}
