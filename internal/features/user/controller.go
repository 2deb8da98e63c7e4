package user

import (
	"errors"
	"strconv"

	"greenbasket/internal/features/activity"
	"greenbasket/internal/features/role"
	"greenbasket/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserController struct {
	UserService     UserService
	ActivityService activity.ActivityService
}

func NewUserController(userService UserService, activityService activity.ActivityService) *UserController {
	return &UserController{
		UserService:     userService,
		ActivityService: activityService,
	}
}

// ListUsers godoc
// @Summary      List users
// @Description  Paginated, filterable by search text, role slug and active flag
// @Tags         users
// @Produce      json
// @Param        search query string false "Match against name or email"
// @Param        role query string false "Role slug"
// @Param        is_active query bool false "Active flag"
// @Param        page query int false "Page number"
// @Success      200 {object} models.Paged[UserView]
// @Router       /api/admin/users [get]
func (ctrl *UserController) ListUsers(c *fiber.Ctx) error {
	q := ListUsersQuery{
		Search:   c.Query("search"),
		RoleSlug: c.Query("role"),
		Page:     int64(c.QueryInt("page", 1)),
		PageSize: int64(c.QueryInt("page_size", 0)),
	}
	if raw := c.Query("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid is_active value",
			})
		}
		q.IsActive = &active
	}

	users, err := ctrl.UserService.ListUsers(c.UserContext(), q)
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(users)
}

// GetUser godoc
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} UserView
// @Failure      404 {object} map[string]string
// @Router       /api/admin/users/{id} [get]
func (ctrl *UserController) GetUser(c *fiber.Ctx) error {
	user, err := ctrl.UserService.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(user)
}

// CreateUser godoc
// @Summary      Create a user
// @Description  Role defaults to customer when none is named
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user body CreateUserRequest true "User"
// @Success      201 {object} UserView
// @Failure      400 {object} map[string]string
// @Router       /api/admin/users [post]
func (ctrl *UserController) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
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

	actor := middleware.IdentityFromCtx(c)
	var createdBy *primitive.ObjectID
	if actor != nil {
		createdBy = &actor.ID
	}

	user, err := ctrl.UserService.CreateUser(c.UserContext(), &req, createdBy)
	if err != nil {
		return userError(c, err)
	}

	ctrl.ActivityService.Record(c, actor,
		"user.created", "User", &user.ID, map[string]interface{}{"email": user.Email})

	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  Covers profile fields, role reassignment, direct permissions and the active flag
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        user body UpdateUserRequest true "Fields to update"
// @Success      200 {object} UserView
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/admin/users/{id} [put]
func (ctrl *UserController) UpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	actor := middleware.IdentityFromCtx(c)
	user, err := ctrl.UserService.UpdateUser(c.UserContext(), c.Params("id"), &req, actor.ID)
	if err != nil {
		return userError(c, err)
	}

	ctrl.ActivityService.Record(c, actor,
		"user.updated", "User", &user.ID, map[string]interface{}{"email": user.Email})

	return c.JSON(user)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  An account cannot delete itself
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/admin/users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	actor := middleware.IdentityFromCtx(c)

	if err := ctrl.UserService.DeleteUser(c.UserContext(), id, actor); err != nil {
		return userError(c, err)
	}

	ctrl.ActivityService.Record(c, actor,
		"user.deleted", "User", nil, map[string]interface{}{"user_id": id})

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// ResetLock godoc
// @Summary      Clear a user's login lock
// @Description  Resets the failed attempt counter and removes any active lock
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} UserView
// @Failure      404 {object} map[string]string
// @Router       /api/admin/users/{id}/reset-lock [post]
func (ctrl *UserController) ResetLock(c *fiber.Ctx) error {
	user, err := ctrl.UserService.ResetLock(c.UserContext(), c.Params("id"))
	if err != nil {
		return userError(c, err)
	}

	ctrl.ActivityService.Record(c, middleware.IdentityFromCtx(c),
		"user.lock_reset", "User", &user.ID, nil)

	return c.JSON(user)
}

func userError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrProtectedUser):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrUnknownRole),
		errors.Is(err, ErrSelfDelete),
		errors.Is(err, ErrSelfBlock),
		errors.Is(err, role.ErrPermissionNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
