package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/peakform/AthleteHubBack/internal/models"
	"github.com/peakform/AthleteHubBack/pkg/utils"
)

type stubRevocations struct {
	revoked     bool
	err         error
	lastTokenID string
}

func (s *stubRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.lastTokenID = tokenID
	return s.revoked, s.err
}

func newAuthTestApp(secret string, revocations RevocationChecker) *fiber.App {
	app := fiber.New()
	app.Get("/protected", AuthRequired(secret, revocations), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("user_id"),
			"role":    c.Locals("role"),
		})
	})
	return app
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	const secret = "test-secret"
	token, err := utils.GenerateToken("42", models.RoleAthlete, secret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	revocations := &stubRevocations{}
	app := newAuthTestApp(secret, revocations)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if revocations.lastTokenID == "" {
		t.Fatal("expected revocation check to see the token id")
	}
}

func TestAuthRequiredRejectsRevokedToken(t *testing.T) {
	const secret = "test-secret"
	token, err := utils.GenerateToken("42", models.RoleAthlete, secret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	app := newAuthTestApp(secret, &stubRevocations{revoked: true})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAuthRequiredRejectsMissingHeader(t *testing.T) {
	app := newAuthTestApp("test-secret", &stubRevocations{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAdminRequiredBlocksAthletes(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", models.RoleAthlete)
		return c.Next()
	})
	app.Get("/admin", AdminRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}
