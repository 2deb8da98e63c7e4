package analytics

import (
	"errors"
	"fmt"
	"time"

	"greenbasket/internal/features/activity"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsController struct {
	AnalyticsService AnalyticsService
	ActivityService  activity.ActivityService
}

func NewAnalyticsController(analyticsService AnalyticsService, activityService activity.ActivityService) *AnalyticsController {
	return &AnalyticsController{
		AnalyticsService: analyticsService,
		ActivityService:  activityService,
	}
}

func parseWindow(c *fiber.Ctx) ReportWindow {
	var w ReportWindow
	if raw := c.Query("from"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			w.From = t
		}
	}
	if raw := c.Query("to"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			// Inclusive end date
			w.To = t.AddDate(0, 0, 1)
		}
	}
	return w
}

// Dashboard godoc
// @Summary      Admin dashboard
// @Description  Revenue summary, daily sales and top products; defaults to the last 30 days
// @Tags         analytics
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} Dashboard
// @Router       /api/admin/analytics/dashboard [get]
func (ctrl *AnalyticsController) Dashboard(c *fiber.Ctx) error {
	d, err := ctrl.AnalyticsService.Dashboard(c.UserContext(), parseWindow(c))
	if err != nil {
		return analyticsError(c, err)
	}
	return c.JSON(d)
}

// SalesReport godoc
// @Summary      Daily sales report
// @Tags         analytics
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Success      200 {array} DailySales
// @Router       /api/admin/analytics/sales [get]
func (ctrl *AnalyticsController) SalesReport(c *fiber.Ctx) error {
	rows, err := ctrl.AnalyticsService.SalesReport(c.UserContext(), parseWindow(c))
	if err != nil {
		return analyticsError(c, err)
	}
	return c.JSON(rows)
}

// ExportSales godoc
// @Summary      Download the sales report as a spreadsheet
// @Tags         analytics
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Success      200 {file} binary
// @Router       /api/admin/analytics/sales/export [get]
func (ctrl *AnalyticsController) ExportSales(c *fiber.Ctx) error {
	data, filename, err := ctrl.AnalyticsService.ExportSalesXLSX(c.UserContext(), parseWindow(c))
	if err != nil {
		return analyticsError(c, err)
	}

	ctrl.ActivityService.Record(c, middleware.IdentityFromCtx(c),
		"analytics.exported", "Report", nil, map[string]interface{}{"filename": filename})

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

func analyticsError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrBadDateRange) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}
