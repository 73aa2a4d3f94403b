package middleware

import (
	"context"
	"strings"

	"canteen-backend/domain"
	"canteen-backend/entities"
	"canteen-backend/internal/access"
	"canteen-backend/internal/api/presenters"
	"canteen-backend/pkg/profile"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const sessionKey = "session"

type (
	Authenticator interface {
		Authenticate(ctx context.Context, token string) (string, domain.Identity, error)
	}

	ProfileResolver interface {
		Resolve(ctx context.Context, identity domain.Identity) (*entities.Profile, error)
	}

	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware() fiber.Handler
		// RequirePermission passes when the caller's role may open any of
		// the given resources.
		RequirePermission(resources ...access.Resource) fiber.Handler
		RequireCanteen() fiber.Handler
	}

	middleware struct {
		authenticator Authenticator
		resolver      ProfileResolver
		enforcer      access.Enforcer
	}
)

func NewMiddleware(authenticator Authenticator, resolver ProfileResolver, enforcer access.Enforcer) Middleware {
	return &middleware{
		authenticator: authenticator,
		resolver:      resolver,
		enforcer:      enforcer,
	}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	})
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	// EventSource cannot set headers
	return c.Query("access_token")
}

func (m *middleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		sessionID, identity, err := m.authenticator.Authenticate(c.Context(), token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		p, err := m.resolver.Resolve(c.Context(), identity)
		if err != nil {
			return presenters.Fail(c, domain.MessageFailedGetProfile, err)
		}
		if !p.IsActive {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MesaageUserNotAllowed, domain.ErrProfileInactive)
		}

		session := profile.NewSession(sessionID, identity, p)
		c.Locals(sessionKey, session)
		c.Locals("user_id", identity.UserID)
		c.Locals("role", string(session.Role))
		return c.Next()
	}
}

func (m *middleware) RequirePermission(resources ...access.Resource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := SessionFrom(c)
		if !ok {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MesaageUserNotAllowed, domain.ErrUnauthenticated)
		}
		for _, resource := range resources {
			if m.enforcer.Allowed(session.Role, resource) {
				return c.Next()
			}
		}
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MesaageUserNotAllowed, domain.ErrPermissionDenied)
	}
}

func (m *middleware) RequireCanteen() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := SessionFrom(c)
		if !ok {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MesaageUserNotAllowed, domain.ErrUnauthenticated)
		}
		if !session.HasCanteen() {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedCanteenSetup, domain.ErrCanteenNotSetUp)
		}
		return c.Next()
	}
}

// SessionFrom returns the session AuthMiddleware stored on the request.
func SessionFrom(c *fiber.Ctx) (domain.Session, bool) {
	session, ok := c.Locals(sessionKey).(domain.Session)
	return session, ok
}
