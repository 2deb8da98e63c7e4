package analytics

import (
	"greenbasket/internal/common/api"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalyticsApi struct {
	Controller *AnalyticsController
	Loader     middleware.IdentityLoader
	Logger     *zap.Logger
}

func NewAnalyticsApi(controller *AnalyticsController, loader middleware.IdentityLoader, logger *zap.Logger) api.Route {
	return &AnalyticsApi{Controller: controller, Loader: loader, Logger: logger}
}

func (a *AnalyticsApi) Setup(app *fiber.App) {
	admin := app.Group("/api/admin/analytics",
		middleware.Protect(a.Loader, a.Logger),
		middleware.RequireAdmin())

	admin.Get("/dashboard", middleware.RequirePermission("analytics.dashboard.read"), a.Controller.Dashboard)
	admin.Get("/sales", middleware.RequirePermission("analytics.sales.read"), a.Controller.SalesReport)
	admin.Get("/sales/export", middleware.RequirePermission("analytics.export"), a.Controller.ExportSales)
}
