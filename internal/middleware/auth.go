package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"greenbasket/internal/features/authz"
	"greenbasket/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// IdentityKey is where the session gate stores the resolved identity
const IdentityKey = "identity"

// IdentityLoader materializes the identity for a user id: the user document
// with role, role permissions and direct permissions fully resolved. It
// performs the account state checks and returns ErrUnauthenticated,
// ErrAccountInactive or *AccountLockedError accordingly.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, userID string) (*authz.Identity, error)
	RecordSeen(ctx context.Context, userID, ip string) error
}

// Protect validates the bearer token, loads the identity and attaches it to
// the request. The last-seen write is fire-and-forget: its failure never
// changes the authentication outcome.
func Protect(loader IdentityLoader, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authorized, no token",
			})
		}

		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		claims, err := utils.ValidateToken(authHeader[7:])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authorized, token failed",
			})
		}

		identity, err := loader.LoadIdentity(c.UserContext(), claims.UserID)
		if err != nil {
			var locked *AccountLockedError
			switch {
			case errors.As(err, &locked):
				c.Set("Retry-After", fmt.Sprintf("%d", int(locked.RetryAfter().Seconds())))
				return c.Status(fiber.StatusLocked).JSON(fiber.Map{
					"error":       "Account is locked due to too many failed login attempts",
					"retry_after": locked.RetryAfter().String(),
				})
			case errors.Is(err, ErrAccountInactive):
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": "User account is inactive",
				})
			default:
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Not authorized",
				})
			}
		}

		// Last-seen bookkeeping must not block or fail the request
		userID, ip := claims.UserID, c.IP()
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := loader.RecordSeen(ctx, userID, ip); err != nil {
				logger.Warn("failed to record last seen", zap.String("user_id", userID), zap.Error(err))
			}
		}()

		c.Locals(IdentityKey, identity)
		return c.Next()
	}
}

// IdentityFromCtx returns the identity attached by Protect, or nil.
func IdentityFromCtx(c *fiber.Ctx) *authz.Identity {
	id, _ := c.Locals(IdentityKey).(*authz.Identity)
	return id
}
