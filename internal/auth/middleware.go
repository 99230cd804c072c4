package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/suroriente/helpdesk-service/internal/domain"
	apperrors "github.com/suroriente/helpdesk-service/pkg/util/errorutil"
)

const identityKey = "auth_identity"

// CookieName is the HttpOnly session cookie the frontend stores tokens in.
const CookieName = "token"

// AuthMiddleware validates tokens from the session cookie or the
// Authorization header and attaches the caller identity.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. The HttpOnly
// cookie takes precedence; the bearer header is kept for compatibility.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token := c.Cookies(CookieName)
	if token == "" {
		authHeader := c.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = parts[1]
		}
	}
	if token == "" {
		return apperrors.NewUnauthorized("missing token")
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired token")
	}
	if !claims.Role.Valid() {
		return apperrors.NewUnauthorized("unknown role")
	}

	identity := claims.Identity()
	c.Locals(identityKey, &identity)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}

// RequireRole ensures the caller holds one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[identity.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
