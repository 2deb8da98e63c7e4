package activity

import (
	"github.com/gofiber/fiber/v2"
)

type ActivityController struct {
	ActivityService ActivityService
}

func NewActivityController(activityService ActivityService) *ActivityController {
	return &ActivityController{ActivityService: activityService}
}

// ListActivity godoc
// @Summary      List activity logs
// @Description  Paged admin activity log with user/action/resource filters
// @Tags         activity
// @Produce      json
// @Param        page query int false "Page number"
// @Param        user query string false "User ID"
// @Param        action query string false "Action"
// @Param        resource query string false "Resource"
// @Success      200 {object} map[string]interface{}
// @Router       /api/admin/activity [get]
func (ctrl *ActivityController) ListActivity(c *fiber.Ctx) error {
	filter := ListFilter{
		UserID:   c.Query("user"),
		Action:   c.Query("action"),
		Resource: c.Query("resource"),
		Page:     int64(c.QueryInt("page", 1)),
	}

	paged, err := ctrl.ActivityService.List(c.UserContext(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list activity logs",
		})
	}

	return c.JSON(paged)
}
