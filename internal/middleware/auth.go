package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/orghub/orghub-api/internal/utils"
)

// LocalsEmail is the fiber.Ctx locals key holding the authenticated member's
// email.
const LocalsEmail = "member_email"

// JWTProtected returns a middleware that validates JWT bearer tokens and
// stores the member's email for downstream handlers. Role resolution happens
// against the member store, not the token, so a role change takes effect
// without re-issuing tokens.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		email := extractEmailFromClaims(claims)
		if email == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "token missing subject email")
		}
		c.Locals(LocalsEmail, email)

		return c.Next()
	}
}

// AuthenticatedEmail returns the email bound to the active request, or an
// empty string when the request is unauthenticated.
func AuthenticatedEmail(c *fiber.Ctx) string {
	if value, ok := c.Locals(LocalsEmail).(string); ok {
		return value
	}
	return ""
}

func extractEmailFromClaims(claims jwt.MapClaims) string {
	for _, key := range []string{"sub", "email"} {
		if value, ok := claims[key]; ok {
			if email, ok := value.(string); ok {
				email = strings.ToLower(strings.TrimSpace(email))
				if strings.Contains(email, "@") {
					return email
				}
			}
		}
	}
	return ""
}
