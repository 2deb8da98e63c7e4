package product

import (
	"greenbasket/internal/common/api"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProductApi struct {
	Controller *ProductController
	Loader     middleware.IdentityLoader
	Logger     *zap.Logger
}

func NewProductApi(controller *ProductController, loader middleware.IdentityLoader, logger *zap.Logger) api.Route {
	return &ProductApi{Controller: controller, Loader: loader, Logger: logger}
}

func (a *ProductApi) Setup(app *fiber.App) {
	// Public storefront reads
	app.Get("/api/products", a.Controller.Browse)
	app.Get("/api/products/:id", a.Controller.GetProduct)

	admin := app.Group("/api/admin/products",
		middleware.Protect(a.Loader, a.Logger),
		middleware.RequireAdmin())

	admin.Post("/", middleware.RequirePermission("products.create"), a.Controller.CreateProduct)
	admin.Put("/:id", middleware.RequirePermission("products.update"), a.Controller.UpdateProduct)
	admin.Delete("/:id", middleware.RequirePermission("products.delete"), a.Controller.DeleteProduct)
}
