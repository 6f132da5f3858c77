package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	deliverycontext "backoffice/internal/delivery/context"
	"backoffice/internal/delivery/http/response"
	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/repository"
	"backoffice/internal/domain/service"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	revoker  service.TokenRevoker
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, revoker service.TokenRevoker, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, revoker: revoker, userRepo: userRepo}
}

// Authenticate validates the bearer token and resolves the calling identity.
// The checks run in a fixed order: bearer extraction, revocation, decode
// (access kind only), identity lookup, active flag. Every failure is a 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid token format, must be Bearer token")
		}

		if m.revoker.IsRevoked(tokenString) {
			return response.Unauthorized(c, "INVALID_TOKEN", "Token has been revoked")
		}

		claims, err := m.tokenSvc.Decode(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}
		if claims.Kind != service.TokenKindAccess {
			return response.Unauthorized(c, "INVALID_TOKEN", "Access token required")
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), claims.SubjectID)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Failed to resolve identity")
		}
		if user == nil || !user.IsActive {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Account no longer valid")
		}

		c.Set(string(deliverycontext.KeyIdentity), user.Sanitized())
		// The raw token is kept so logout can revoke it.
		c.Set("token", tokenString)

		return next(c)
	}
}

// Identity extracts the authenticated user set by Authenticate.
func Identity(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(string(deliverycontext.KeyIdentity)).(*entity.User)

	return user, ok
}

// Token extracts the raw bearer token set by Authenticate.
func Token(c echo.Context) string {
	token, _ := c.Get("token").(string)

	return token
}

// RequirePermissions is a middleware factory gating a route on the identity's
// permission set. The admin permission satisfies any requirement.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequirePermissions(required ...entity.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := Identity(c)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: identity missing")
			}

			if !user.Permissions.HasAll(required...) {
				return response.Forbidden(c, "FORBIDDEN", "Not enough permissions")
			}

			return next(c)
		}
	}
}

// RequireRole is a middleware factory gating a route on the identity's role.
// Admins satisfy every role requirement.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(required entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := Identity(c)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: identity missing")
			}

			if !user.Role.Satisfies(required) {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+required.String()+"' role")
			}

			return next(c)
		}
	}
}
