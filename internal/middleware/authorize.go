package middleware

import (
	"fmt"

	"greenbasket/internal/features/authz"

	"github.com/gofiber/fiber/v2"
)

// RequirePermission gates a route on a single permission slug
func RequirePermission(slug string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := IdentityFromCtx(c)
		if identity == nil {
			return unauthenticated(c)
		}

		if !authz.HasPermission(identity, slug) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":    fmt.Sprintf("Access denied. Required permission: %s", slug),
				"required": []string{slug},
			})
		}

		return c.Next()
	}
}

// RequireAnyPermission passes when at least one slug is held (OR)
func RequireAnyPermission(slugs ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := IdentityFromCtx(c)
		if identity == nil {
			return unauthenticated(c)
		}

		if !authz.HasAnyPermission(identity, slugs) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":    "Access denied. Insufficient permissions.",
				"required": slugs,
			})
		}

		return c.Next()
	}
}

// RequireAllPermissions passes only when every slug is held (AND)
func RequireAllPermissions(slugs ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := IdentityFromCtx(c)
		if identity == nil {
			return unauthenticated(c)
		}

		if !authz.HasAllPermissions(identity, slugs) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":    "Access denied. Insufficient permissions.",
				"required": slugs,
			})
		}

		return c.Next()
	}
}

// RequireRole matches the role slug exactly
func RequireRole(roleSlug string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := IdentityFromCtx(c)
		if identity == nil {
			return unauthenticated(c)
		}

		if !authz.HasRole(identity, roleSlug) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": fmt.Sprintf("Access denied. Required role: %s", roleSlug),
			})
		}

		return c.Next()
	}
}

// RequireRoleLevel gates on privilege rank: role level must be <= minLevel
func RequireRoleLevel(minLevel int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := IdentityFromCtx(c)
		if identity == nil {
			return unauthenticated(c)
		}

		if !authz.HasMinimumRoleLevel(identity, minLevel) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": fmt.Sprintf("Access denied. Minimum role level %d required.", minLevel),
			})
		}

		return c.Next()
	}
}

// RequireAdmin passes for the legacy isAdmin flag or operator tier and above
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := IdentityFromCtx(c)
		if identity == nil {
			return unauthenticated(c)
		}

		if !authz.IsAdmin(identity) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Not authorized as an admin",
			})
		}

		return c.Next()
	}
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Not authenticated",
	})
}
