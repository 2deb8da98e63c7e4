package auth

import (
	"greenbasket/internal/common/api"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthApi struct {
	Controller *AuthController
	Loader     middleware.IdentityLoader
	Logger     *zap.Logger
}

func NewAuthApi(controller *AuthController, loader middleware.IdentityLoader, logger *zap.Logger) api.Route {
	return &AuthApi{Controller: controller, Loader: loader, Logger: logger}
}

func (a *AuthApi) Setup(app *fiber.App) {
	auth := app.Group("/api/auth")

	auth.Post("/register", a.Controller.Register)
	auth.Post("/login", a.Controller.Login)

	protect := middleware.Protect(a.Loader, a.Logger)
	auth.Get("/me", protect, a.Controller.Me)
	auth.Put("/me", protect, a.Controller.UpdateProfile)
	auth.Post("/change-password", protect, a.Controller.ChangePassword)
}
