package inventory

import (
	"greenbasket/internal/common/api"
	"greenbasket/internal/features/authz"
	"greenbasket/internal/middleware"
	"greenbasket/pkg/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type InventoryApi struct {
	Controller *InventoryController
	Loader     middleware.IdentityLoader
	Logger     *zap.Logger
}

func NewInventoryApi(controller *InventoryController, loader middleware.IdentityLoader, logger *zap.Logger) api.Route {
	return &InventoryApi{Controller: controller, Loader: loader, Logger: logger}
}

func (a *InventoryApi) Setup(app *fiber.App) {
	admin := app.Group("/api/admin/inventory",
		middleware.Protect(a.Loader, a.Logger),
		middleware.RequireAdmin())

	read := middleware.RequirePermission("inventory.read")
	admin.Get("/overview", read, a.Controller.Overview)
	admin.Get("/low-stock", middleware.RequirePermission("inventory.alerts.read"), a.Controller.LowStock)
	admin.Get("/:id/movements", read, a.Controller.Movements)
	admin.Post("/:id/adjust", middleware.RequirePermission("inventory.update"), a.Controller.Adjust)

	// The alert feed authenticates via ?token= because browsers cannot set
	// headers on a websocket upgrade.
	app.Get("/api/admin/inventory/alerts/ws", a.upgradeGuard, websocket.New(a.Controller.HandleAlerts))
}

func (a *InventoryApi) upgradeGuard(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	claims, err := utils.ValidateToken(c.Query("token"))
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	identity, err := a.Loader.LoadIdentity(c.UserContext(), claims.UserID)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	if !authz.HasPermission(identity, "inventory.alerts.read") {
		a.Logger.Warn("alert feed rejected",
			zap.String("user_id", claims.UserID))
		return c.SendStatus(fiber.StatusForbidden)
	}

	return c.Next()
}
