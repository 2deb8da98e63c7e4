package settings

import (
	"greenbasket/internal/features/activity"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SettingsController struct {
	SettingsService SettingsService
	ActivityService activity.ActivityService
}

func NewSettingsController(settingsService SettingsService, activityService activity.ActivityService) *SettingsController {
	return &SettingsController{
		SettingsService: settingsService,
		ActivityService: activityService,
	}
}

// GetSettings godoc
// @Summary      Read store settings
// @Tags         settings
// @Produce      json
// @Success      200 {object} StoreSettings
// @Router       /api/admin/settings [get]
func (ctrl *SettingsController) GetSettings(c *fiber.Ctx) error {
	s, err := ctrl.SettingsService.Get(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load settings",
		})
	}
	return c.JSON(s)
}

// UpdateSettings godoc
// @Summary      Update store settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        settings body UpdateSettingsRequest true "Fields to update"
// @Success      200 {object} StoreSettings
// @Failure      400 {object} map[string]string
// @Router       /api/admin/settings [put]
func (ctrl *SettingsController) UpdateSettings(c *fiber.Ctx) error {
	var req UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	identity := middleware.IdentityFromCtx(c)
	s, err := ctrl.SettingsService.Update(c.UserContext(), &req, identity.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update settings",
		})
	}

	ctrl.ActivityService.Record(c, identity,
		"settings.updated", "StoreSettings", &s.ID, nil)

	return c.JSON(s)
}
