package middleware

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/rbac"
	"go-affiliate-ops/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type fakeSessions map[string]model.Role

func (f fakeSessions) ValidateToken(token string) (*service.Session, error) {
	role, ok := f[token]
	if !ok {
		return nil, errors.New("invalid or expired token")
	}
	return &service.Session{Actor: service.Actor{ID: uuid.New(), Username: string(role), Role: role}}, nil
}

func newApp() *fiber.App {
	sessions := fakeSessions{
		"admin-token":  model.RoleSuperAdmin,
		"viewer-token": model.RoleViewer,
		"staff-token":  model.RoleStaffHostLive,
	}
	evaluator := rbac.NewEvaluator(rbac.DefaultMatrix())

	app := fiber.New()
	api := app.Group("/api", RequireAuth(sessions))
	api.Post("/cashflow", RequirePermission(evaluator, model.PageCashflow, model.ActionCreate), func(c *fiber.Ctx) error {
		actor, _ := ActorFrom(c)
		return c.SendString(string(actor.Role))
	})
	api.Get("/reports", RequireAnyPermission(evaluator, model.PageDailyReport, model.ActionCreate, model.ActionRead), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestRequireAuth(t *testing.T) {
	app := newApp()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", 401},
		{"wrong scheme", "Token admin-token", 401},
		{"unknown token", "Bearer nope", 401},
		{"valid token", "Bearer admin-token", 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/cashflow", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	app := newApp()

	status, body := do(t, app, "POST", "/api/cashflow", "admin-token")
	if status != 200 || body != string(model.RoleSuperAdmin) {
		t.Errorf("superadmin: got %d %q", status, body)
	}

	status, body = do(t, app, "POST", "/api/cashflow", "viewer-token")
	if status != 403 {
		t.Fatalf("viewer: status = %d, want 403", status)
	}
	if !strings.Contains(body, "cashflow:create") {
		t.Errorf("viewer: body %q does not name the permission", body)
	}
}

func TestRequirePermissionWithoutAuth(t *testing.T) {
	evaluator := rbac.NewEvaluator(rbac.DefaultMatrix())
	app := fiber.New()
	app.Get("/x", RequirePermission(evaluator, model.PageDashboard, model.ActionRead), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	status, _ := do(t, app, "GET", "/x", "")
	if status != 401 {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestRequireAnyPermission(t *testing.T) {
	app := newApp()

	if status, _ := do(t, app, "GET", "/api/reports", "staff-token"); status != 200 {
		t.Errorf("staff: status = %d, want 200", status)
	}
}

func TestRateLimit(t *testing.T) {
	handler, err := RateLimit("2-M")
	if err != nil {
		t.Fatalf("RateLimit: %v", err)
	}
	app := fiber.New()
	app.Post("/login", handler, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	for i, want := range []int{200, 200, 429} {
		status, _ := do(t, app, "POST", "/login", "")
		if status != want {
			t.Errorf("request %d: status = %d, want %d", i+1, status, want)
		}
	}
}

func TestRateLimitRejectsBadFormat(t *testing.T) {
	if _, err := RateLimit("ten per minute"); err == nil {
		t.Error("expected error for malformed rate")
	}
}
