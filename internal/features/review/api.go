package review

import (
	"greenbasket/internal/common/api"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ReviewApi struct {
	Controller *ReviewController
	Loader     middleware.IdentityLoader
	Logger     *zap.Logger
}

func NewReviewApi(controller *ReviewController, loader middleware.IdentityLoader, logger *zap.Logger) api.Route {
	return &ReviewApi{Controller: controller, Loader: loader, Logger: logger}
}

func (a *ReviewApi) Setup(app *fiber.App) {
	protect := middleware.Protect(a.Loader, a.Logger)

	app.Get("/api/products/:id/reviews", a.Controller.ListForProduct)
	app.Post("/api/products/:id/reviews", protect, a.Controller.Create)

	admin := app.Group("/api/admin/reviews", protect, middleware.RequireAdmin())
	admin.Get("/", middleware.RequirePermission("reviews.read"), a.Controller.AdminList)
	admin.Put("/:id/approved", middleware.RequirePermission("reviews.moderate"), a.Controller.SetApproved)
	admin.Delete("/:id", middleware.RequirePermission("reviews.delete"), a.Controller.Delete)
}
