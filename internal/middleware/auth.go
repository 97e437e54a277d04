package middleware

import (
	"errors"

	"github.com/creatorsuite/suite-backend/internal/config"
	"github.com/creatorsuite/suite-backend/internal/dto"
	"github.com/creatorsuite/suite-backend/internal/models"
	"github.com/creatorsuite/suite-backend/internal/tenant"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.Fail("Unauthorized: invalid or expired token"))
		},
	})
}

// RequireActiveUser re-loads the user on every request so that accounts
// deactivated or deleted after token issuance are rejected immediately.
// The loaded record is stashed in locals for handlers.
func RequireActiveUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		appID := tenant.GetAppID(c)
		userID, err := tenant.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
		}

		var user models.User
		if err := db.Scopes(tenant.ForTenant(appID)).First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Account no longer exists"))
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Internal server error"))
		}

		if !user.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Account is deactivated"))
		}

		c.Locals("current_user", &user)
		return c.Next()
	}
}
