package user

import (
	"greenbasket/internal/common/api"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserApi struct {
	Controller *UserController
	Loader     middleware.IdentityLoader
	Logger     *zap.Logger
}

func NewUserApi(controller *UserController, loader middleware.IdentityLoader, logger *zap.Logger) api.Route {
	return &UserApi{Controller: controller, Loader: loader, Logger: logger}
}

func (a *UserApi) Setup(app *fiber.App) {
	users := app.Group("/api/admin/users",
		middleware.Protect(a.Loader, a.Logger),
		middleware.RequireAdmin())

	users.Get("/", middleware.RequirePermission("users.read"), a.Controller.ListUsers)
	users.Get("/:id", middleware.RequirePermission("users.read"), a.Controller.GetUser)
	users.Post("/", middleware.RequirePermission("users.create"), a.Controller.CreateUser)
	users.Put("/:id", middleware.RequirePermission("users.update"), a.Controller.UpdateUser)
	users.Delete("/:id", middleware.RequirePermission("users.delete"), a.Controller.DeleteUser)
	users.Post("/:id/reset-lock", middleware.RequirePermission("users.update"), a.Controller.ResetLock)
}
