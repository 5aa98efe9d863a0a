package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/peakform/AthleteHubBack/internal/models"
	"github.com/peakform/AthleteHubBack/internal/services"
)

type stubContractService struct {
	signResult       *models.Contract
	signErr          error
	listResult       []models.Contract
	listErr          error
	lastEnrollmentID int64
	lastSignature    string
	lastStatus       string
}

func (s *stubContractService) SignContract(_ context.Context, _ int64, _ string, enrollmentID int64, signature string) (*models.Contract, error) {
	s.lastEnrollmentID = enrollmentID
	s.lastSignature = signature
	return s.signResult, s.signErr
}

func (s *stubContractService) ListContracts(_ context.Context, status string) ([]models.Contract, error) {
	s.lastStatus = status
	return s.listResult, s.listErr
}

func TestSignContractStoresSignature(t *testing.T) {
	signedAt := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	service := &stubContractService{
		signResult: &models.Contract{
			ID:           5,
			EnrollmentID: 12,
			Status:       models.ContractSigned,
			SignedAt:     &signedAt,
		},
	}
	handler := NewContractHandler(service)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", models.RoleAthlete)
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Post("/api/v1/contracts/sign", handler.Sign)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contracts/sign", strings.NewReader(`{"enrollment_id":12,"signature":"Jordan Avery"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastEnrollmentID != 12 || service.lastSignature != "Jordan Avery" {
		t.Fatalf("unexpected forwarded signing: %d %q", service.lastEnrollmentID, service.lastSignature)
	}

	var body struct {
		Contract models.Contract `json:"contract"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Contract.Status != models.ContractSigned {
		t.Fatalf("expected signed contract, got %q", body.Contract.Status)
	}
}

func TestSignContractConflictsWhenAlreadySigned(t *testing.T) {
	service := &stubContractService{signErr: services.ErrAlreadySigned}
	handler := NewContractHandler(service)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", models.RoleAthlete)
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Post("/api/v1/contracts/sign", handler.Sign)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contracts/sign", strings.NewReader(`{"enrollment_id":12,"signature":"Jordan Avery"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestListContractsForwardsStatusFilter(t *testing.T) {
	service := &stubContractService{
		listResult: []models.Contract{{ID: 5, EnrollmentID: 12, Status: models.ContractPending}},
	}
	handler := NewContractHandler(service)

	app := fiber.New()
	app.Get("/api/v1/admin/contracts", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/contracts?status=pending", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastStatus != models.ContractPending {
		t.Fatalf("expected status filter pending, got %q", service.lastStatus)
	}
}
