package system

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"greenbasket/internal/common/api"
	"greenbasket/internal/database"
)

type HealthApi struct {
	mongodb *database.MongodbDB
}

func NewHealthApi(mongodb *database.MongodbDB) api.Route {
	return &HealthApi{mongodb: mongodb}
}

func (h *HealthApi) Setup(app *fiber.App) {
	app.Get("/health", h.health)
}

// health godoc
// @Summary      Health check
// @Description  Reports service and database status
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthApi) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := h.mongodb.DB.Client().Ping(ctx, nil); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "degraded",
			"database": "unreachable",
		})
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": "connected",
	})
}
