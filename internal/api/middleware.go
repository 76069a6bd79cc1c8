package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tuifinancial/finserv/internal/models"
	"github.com/tuifinancial/finserv/internal/services"
	"gorm.io/gorm"
)

const contextClaimsKey = "finserv_claims"

// AuthRequired verifies the bearer token and stores its claims for the
// request. Malformed, tampered, and expired tokens all surface as one
// unauthenticated outcome.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	claims, err := handler.tokens.Verify(bearerToken(c))
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextClaimsKey, claims)
	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func currentClaims(c *fiber.Ctx) *services.SessionClaims {
	claims, _ := c.Locals(contextClaimsKey).(*services.SessionClaims)
	return claims
}

// currentUser resolves the token subject to the stored user. A token whose
// subject no longer exists is treated as unauthenticated.
func (handler *Handler) currentUser(c *fiber.Ctx) (models.User, error) {
	claims := currentClaims(c)
	if claims == nil {
		return models.User{}, services.ErrTokenInvalid
	}

	user, err := handler.repositories.Users.FindByNormalizedEmail(normalizeEmail(claims.Subject))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, services.ErrTokenInvalid
		}
		return models.User{}, err
	}
	return user, nil
}
