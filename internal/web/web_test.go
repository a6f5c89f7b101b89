package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRegisterServesPage(t *testing.T) {
	app := fiber.New()
	app.Get("/api/v1/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	if err := Register(app); err != nil {
		t.Fatalf("Register: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{"The Resume Mocker", "api/v1/roast", `type="range"`} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("page does not contain %q", want)
		}
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("api route shadowed by page: status %d", resp.StatusCode)
	}
}
