package inventory

import (
	"errors"

	"greenbasket/internal/features/activity"
	"greenbasket/internal/features/product"
	"greenbasket/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type InventoryController struct {
	InventoryService InventoryService
	ActivityService  activity.ActivityService
	Hub              *Hub
}

func NewInventoryController(inventoryService InventoryService, activityService activity.ActivityService, hub *Hub) *InventoryController {
	return &InventoryController{
		InventoryService: inventoryService,
		ActivityService:  activityService,
		Hub:              hub,
	}
}

// Overview godoc
// @Summary      Inventory overview
// @Description  Aggregate counts and total stock value across active products
// @Tags         inventory
// @Produce      json
// @Success      200 {object} Overview
// @Router       /api/admin/inventory/overview [get]
func (ctrl *InventoryController) Overview(c *fiber.Ctx) error {
	o, err := ctrl.InventoryService.Overview(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load inventory overview",
		})
	}
	return c.JSON(o)
}

// LowStock godoc
// @Summary      Products at or below their alert threshold
// @Tags         inventory
// @Produce      json
// @Success      200 {array} product.Product
// @Router       /api/admin/inventory/low-stock [get]
func (ctrl *InventoryController) LowStock(c *fiber.Ctx) error {
	low, err := ctrl.InventoryService.LowStock(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list low stock products",
		})
	}
	return c.JSON(low)
}

// Adjust godoc
// @Summary      Adjust a product's stock
// @Description  Applies a signed delta with a reason; negative deltas cannot take stock below zero
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        body body AdjustStockRequest true "Delta and reason"
// @Success      200 {object} product.Product
// @Failure      400 {object} map[string]string
// @Router       /api/admin/inventory/{id}/adjust [post]
func (ctrl *InventoryController) Adjust(c *fiber.Ctx) error {
	var req AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	identity := middleware.IdentityFromCtx(c)
	p, err := ctrl.InventoryService.Adjust(c.UserContext(), c.Params("id"), &req, identity.ID)
	if err != nil {
		return inventoryError(c, err)
	}

	ctrl.ActivityService.Record(c, identity,
		"inventory.adjusted", "Product", &p.ID,
		map[string]interface{}{"delta": req.Delta, "stock": p.Stock, "reason": req.Reason})

	return c.JSON(p)
}

// Movements godoc
// @Summary      Stock movement history for a product
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        limit query int false "Max rows"
// @Success      200 {array} Movement
// @Router       /api/admin/inventory/{id}/movements [get]
func (ctrl *InventoryController) Movements(c *fiber.Ctx) error {
	movements, err := ctrl.InventoryService.Movements(c.UserContext(), c.Params("id"),
		int64(c.QueryInt("limit", 50)))
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(movements)
}

// HandleAlerts holds the websocket open and streams stock alerts until the
// client goes away. Reads are discarded; the feed is one-way.
func (ctrl *InventoryController) HandleAlerts(c *websocket.Conn) {
	ctrl.Hub.Register(c)
	defer func() {
		ctrl.Hub.Unregister(c)
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}

func inventoryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, product.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrZeroAdjustment), errors.Is(err, product.ErrInsufficientStock):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
