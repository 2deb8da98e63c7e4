package order

import (
	"errors"

	"greenbasket/internal/features/activity"
	"greenbasket/internal/features/product"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type OrderController struct {
	OrderService    OrderService
	ActivityService activity.ActivityService
}

func NewOrderController(orderService OrderService, activityService activity.ActivityService) *OrderController {
	return &OrderController{
		OrderService:    orderService,
		ActivityService: activityService,
	}
}

// PlaceOrder godoc
// @Summary      Place an order
// @Description  Reserves stock atomically, snapshots prices and quotes shipping
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order body PlaceOrderRequest true "Cart"
// @Success      201 {object} Order
// @Failure      400 {object} map[string]string
// @Router       /api/orders [post]
func (ctrl *OrderController) PlaceOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	identity := middleware.IdentityFromCtx(c)
	o, err := ctrl.OrderService.PlaceOrder(c.UserContext(), identity, &req)
	if err != nil {
		return orderError(c, err)
	}

	ctrl.ActivityService.Record(c, identity,
		"order.placed", "Order", &o.ID, map[string]interface{}{"number": o.Number, "total": o.Total})

	return c.Status(fiber.StatusCreated).JSON(o)
}

// MyOrders godoc
// @Summary      List the current account's orders
// @Tags         orders
// @Produce      json
// @Param        page query int false "Page number"
// @Success      200 {object} models.Paged[Order]
// @Router       /api/orders [get]
func (ctrl *OrderController) MyOrders(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)
	page, err := ctrl.OrderService.MyOrders(c.UserContext(), identity,
		int64(c.QueryInt("page", 1)), int64(c.QueryInt("page_size", 0)))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(page)
}

// GetOrder godoc
// @Summary      Get an order
// @Description  Customers may only read their own orders; staff may read any
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} Order
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/orders/{id} [get]
func (ctrl *OrderController) GetOrder(c *fiber.Ctx) error {
	o, err := ctrl.OrderService.GetOrder(c.UserContext(), middleware.IdentityFromCtx(c), c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(o)
}

// CancelOrder godoc
// @Summary      Cancel an order
// @Description  Allowed while the order is pending or confirmed; items are restocked
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} Order
// @Failure      400 {object} map[string]string
// @Router       /api/orders/{id}/cancel [post]
func (ctrl *OrderController) CancelOrder(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)
	o, err := ctrl.OrderService.CancelOrder(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}

	ctrl.ActivityService.Record(c, identity,
		"order.cancelled", "Order", &o.ID, map[string]interface{}{"number": o.Number})

	return c.JSON(o)
}

// ListOrders godoc
// @Summary      List all orders
// @Tags         orders
// @Produce      json
// @Param        status query string false "Order status"
// @Param        user query string false "Customer ID"
// @Param        number query string false "Order number"
// @Param        page query int false "Page number"
// @Success      200 {object} models.Paged[Order]
// @Router       /api/admin/orders [get]
func (ctrl *OrderController) ListOrders(c *fiber.Ctx) error {
	q := ListOrdersQuery{
		Status:   Status(c.Query("status")),
		UserID:   c.Query("user"),
		Number:   c.Query("number"),
		Page:     int64(c.QueryInt("page", 1)),
		PageSize: int64(c.QueryInt("page_size", 0)),
	}

	page, err := ctrl.OrderService.ListOrders(c.UserContext(), q)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(page)
}

// UpdateStatus godoc
// @Summary      Move an order to a new status
// @Description  Transitions follow the fulfilment flow; skipping steps is rejected
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        body body UpdateStatusRequest true "Target status"
// @Success      200 {object} Order
// @Failure      400 {object} map[string]string
// @Router       /api/admin/orders/{id}/status [put]
func (ctrl *OrderController) UpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	identity := middleware.IdentityFromCtx(c)
	o, err := ctrl.OrderService.UpdateStatus(c.UserContext(), identity, c.Params("id"), &req)
	if err != nil {
		return orderError(c, err)
	}

	ctrl.ActivityService.Record(c, identity,
		"order.status_changed", "Order", &o.ID,
		map[string]interface{}{"number": o.Number, "status": string(o.Status)})

	return c.JSON(o)
}

func orderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrOrderNotFound), errors.Is(err, product.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNotYourOrder):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrEmptyOrder),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrNotCancellable),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrPaymentMethod),
		errors.Is(err, product.ErrInsufficientStock):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
