package order

import (
	"greenbasket/internal/common/api"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type OrderApi struct {
	Controller *OrderController
	Loader     middleware.IdentityLoader
	Logger     *zap.Logger
}

func NewOrderApi(controller *OrderController, loader middleware.IdentityLoader, logger *zap.Logger) api.Route {
	return &OrderApi{Controller: controller, Loader: loader, Logger: logger}
}

func (a *OrderApi) Setup(app *fiber.App) {
	protect := middleware.Protect(a.Loader, a.Logger)

	// Customer surface: any signed-in account, own orders only.
	orders := app.Group("/api/orders", protect)
	orders.Post("/", a.Controller.PlaceOrder)
	orders.Get("/", a.Controller.MyOrders)
	orders.Get("/:id", a.Controller.GetOrder)
	orders.Post("/:id/cancel", a.Controller.CancelOrder)

	admin := app.Group("/api/admin/orders", protect, middleware.RequireAdmin())
	admin.Get("/", middleware.RequirePermission("orders.read"), a.Controller.ListOrders)
	admin.Put("/:id/status", middleware.RequirePermission("orders.update"), a.Controller.UpdateStatus)
}
