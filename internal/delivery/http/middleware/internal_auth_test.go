package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func newProtectedApp(token string) *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware().Middleware())

	grp := app.Group("/internal", NewInternalAuthMiddleware(token).Middleware())
	grp.Post("/power-matches/generate", func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestInternalAuth_ValidToken(t *testing.T) {
	app := newProtectedApp("batch-secret")

	req := httptest.NewRequest(fiber.MethodPost, "/internal/power-matches/generate", nil)
	req.Header.Set("Authorization", "Bearer batch-secret")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}
}

func TestInternalAuth_MissingHeader(t *testing.T) {
	app := newProtectedApp("batch-secret")

	req := httptest.NewRequest(fiber.MethodPost, "/internal/power-matches/generate", nil)

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", res.StatusCode)
	}
}

func TestInternalAuth_WrongToken(t *testing.T) {
	app := newProtectedApp("batch-secret")

	req := httptest.NewRequest(fiber.MethodPost, "/internal/power-matches/generate", nil)
	req.Header.Set("Authorization", "Bearer not-the-secret")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", res.StatusCode)
	}
}

// An empty configured secret must fail closed, not open.
func TestInternalAuth_EmptyConfiguredToken(t *testing.T) {
	app := newProtectedApp("")

	req := httptest.NewRequest(fiber.MethodPost, "/internal/power-matches/generate", nil)
	req.Header.Set("Authorization", "Bearer ")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", res.StatusCode)
	}
}

// Preflight requests go through without credentials so CORS can answer.
func TestInternalAuth_PreflightBypassesAuth(t *testing.T) {
	app := newProtectedApp("batch-secret")

	req := httptest.NewRequest(fiber.MethodOptions, "/internal/power-matches/generate", nil)

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode == fiber.StatusUnauthorized {
		t.Fatalf("preflight must not be rejected by auth")
	}
}
