package middleware

import (
	"strings"

	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/rbac"
	"go-affiliate-ops/internal/service"

	"github.com/gofiber/fiber/v2"
)

const actorKey = "actor"

// SessionValidator resolves a bearer token to a session; implemented by service.AuthService
type SessionValidator interface {
	ValidateToken(tokenString string) (*service.Session, error)
}

// RequireAuth is middleware that validates JWT token and sets user info in context
func RequireAuth(sessions SessionValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		session, err := sessions.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": err.Error()})
		}

		// Set user info in context for downstream handlers
		c.Locals(actorKey, session.Actor)
		c.Locals("user_id", session.Actor.ID.String())
		c.Locals("user_name", session.Actor.Name)
		c.Locals("user_role", string(session.Actor.Role))

		return c.Next()
	}
}

// ActorFrom returns the actor stored by RequireAuth
func ActorFrom(c *fiber.Ctx) (service.Actor, bool) {
	actor, ok := c.Locals(actorKey).(service.Actor)
	return actor, ok
}

// RequirePermission checks the role of the authenticated user against the permission matrix
func RequirePermission(evaluator *rbac.Evaluator, page model.Page, action model.Action) fiber.Handler {
	code := model.PermissionCode(page, action)
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFrom(c)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}

		if !evaluator.Can(actor.Role, page, action) {
			return c.Status(403).JSON(fiber.Map{
				"error": "Forbidden: requires '" + code + "' permission",
			})
		}
		return c.Next()
	}
}

// RequireAnyPermission passes when the role holds at least one of the actions on page
func RequireAnyPermission(evaluator *rbac.Evaluator, page model.Page, actions ...model.Action) fiber.Handler {
	codes := make([]string, len(actions))
	for i, a := range actions {
		codes[i] = "'" + model.PermissionCode(page, a) + "'"
	}
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFrom(c)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}

		for _, a := range actions {
			if evaluator.Can(actor.Role, page, a) {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires one of " + strings.Join(codes, ", ") + " permissions",
		})
	}
}
