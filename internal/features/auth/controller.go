package auth

import (
	"errors"
	"fmt"

	"greenbasket/internal/features/activity"
	"greenbasket/internal/features/authz"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthController struct {
	AuthService     AuthService
	ActivityService activity.ActivityService
}

func NewAuthController(authService AuthService, activityService activity.ActivityService) *AuthController {
	return &AuthController{
		AuthService:     authService,
		ActivityService: activityService,
	}
}

// Register godoc
// @Summary      Register a new customer account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body RegisterRequest true "Account details"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} map[string]string
// @Router       /api/auth/register [post]
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name, email and password are required",
		})
	}

	resp, err := ctrl.AuthService.Register(c.UserContext(), &req)
	if err != nil {
		return authError(c, err)
	}

	if oid, idErr := primitive.ObjectIDFromHex(resp.User.ID); idErr == nil {
		created := &authz.Identity{ID: oid, Name: resp.User.Name, Email: resp.User.Email}
		ctrl.ActivityService.Record(c, created,
			"user.registered", "User", &oid, map[string]interface{}{"email": req.Email})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login godoc
// @Summary      Sign in with email and password
// @Description  Five consecutive failures lock the account for two hours
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body LoginRequest true "Credentials"
// @Success      200 {object} AuthResponse
// @Failure      401 {object} map[string]string
// @Failure      423 {object} map[string]string
// @Router       /api/auth/login [post]
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := ctrl.AuthService.Login(c.UserContext(), &req, c.IP())
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(resp)
}

// Me godoc
// @Summary      Current account profile
// @Tags         auth
// @Produce      json
// @Success      200 {object} Profile
// @Failure      401 {object} map[string]string
// @Router       /api/auth/me [get]
// UpdateProfile godoc
// @Summary      Update own profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        profile body UpdateProfileRequest true "Profile fields"
// @Success      200 {object} Profile
// @Failure      400 {object} map[string]interface{}
// @Router       /api/auth/me [put]
func (ctrl *AuthController) UpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	identity := middleware.IdentityFromCtx(c)
	profile, err := ctrl.AuthService.UpdateProfile(c.UserContext(), identity.ID.Hex(), &req)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(profile)
}

func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)
	profile, err := ctrl.AuthService.Me(c.UserContext(), identity.ID.Hex())
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(profile)
}

// ChangePassword godoc
// @Summary      Change the current account's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body ChangePasswordRequest true "Passwords"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Router       /api/auth/change-password [post]
func (ctrl *AuthController) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if len(req.NewPassword) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "New password must be at least 8 characters",
		})
	}

	identity := middleware.IdentityFromCtx(c)
	if err := ctrl.AuthService.ChangePassword(c.UserContext(), identity.ID.Hex(), &req); err != nil {
		return authError(c, err)
	}

	ctrl.ActivityService.Record(c, identity,
		"user.password_changed", "User", &identity.ID, nil)

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

func authError(c *fiber.Ctx, err error) error {
	var locked *middleware.AccountLockedError
	switch {
	case errors.As(err, &locked):
		c.Set("Retry-After", fmt.Sprintf("%d", int(locked.RetryAfter().Seconds())))
		return c.Status(fiber.StatusLocked).JSON(fiber.Map{
			"error":       "Account is locked due to too many failed login attempts",
			"retry_after": locked.RetryAfter().String(),
		})
	case errors.Is(err, middleware.ErrAccountInactive):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "User account is inactive"})
	case errors.Is(err, ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, middleware.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authorized"})
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrWrongPassword):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
