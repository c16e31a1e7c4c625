package handler

import (
	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/rbac"

	"github.com/gofiber/fiber/v2"
)

type RoleHandler struct {
	evaluator *rbac.Evaluator
	menu      []rbac.MenuItem
}

func NewRoleHandler(evaluator *rbac.Evaluator, menu []rbac.MenuItem) *RoleHandler {
	return &RoleHandler{evaluator: evaluator, menu: menu}
}

// GetRoles returns all available roles
// GET /api/v1/roles
func (h *RoleHandler) GetRoles(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": model.DefaultRoles})
}

// GetMenu returns the sidebar items the current role may open
// GET /api/v1/menu
func (h *RoleHandler) GetMenu(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	return c.JSON(fiber.Map{"data": h.evaluator.VisibleMenu(actor.Role, h.menu)})
}

// GetPermissions returns the allowed actions per page for the current role
// GET /api/v1/permissions
func (h *RoleHandler) GetPermissions(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	return c.JSON(fiber.Map{
		"role": actor.Role,
		"data": h.evaluator.Permissions(actor.Role),
	})
}
