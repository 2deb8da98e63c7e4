package category

import (
	"greenbasket/internal/common/api"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CategoryApi struct {
	Controller *CategoryController
	Loader     middleware.IdentityLoader
	Logger     *zap.Logger
}

func NewCategoryApi(controller *CategoryController, loader middleware.IdentityLoader, logger *zap.Logger) api.Route {
	return &CategoryApi{Controller: controller, Loader: loader, Logger: logger}
}

func (a *CategoryApi) Setup(app *fiber.App) {
	// Public storefront reads
	app.Get("/api/categories", a.Controller.ListCategories)
	app.Get("/api/categories/:id", a.Controller.GetCategory)

	manage := middleware.RequirePermission("products.categories.manage")
	admin := app.Group("/api/admin/categories",
		middleware.Protect(a.Loader, a.Logger),
		middleware.RequireAdmin(),
		manage)

	admin.Post("/", a.Controller.CreateCategory)
	admin.Put("/:id", a.Controller.UpdateCategory)
	admin.Delete("/:id", a.Controller.DeleteCategory)
}
