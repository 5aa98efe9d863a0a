package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/peakform/AthleteHubBack/internal/models"
	"github.com/peakform/AthleteHubBack/internal/services"
)

type stubProgramCatalog struct {
	publicResult []models.Program
	publicErr    error
}

func (s *stubProgramCatalog) ListPublic(_ context.Context) ([]models.Program, error) {
	return s.publicResult, s.publicErr
}

type stubEnrollmentService struct {
	enrollResult *models.Enrollment
	enrollErr    error
	listResult   []models.Enrollment
	listErr      error
	lastActorID  int64
	lastRole     string
	lastInput    services.EnrollInput
}

func (s *stubEnrollmentService) Enroll(_ context.Context, actorID int64, role string, input services.EnrollInput) (*models.Enrollment, error) {
	s.lastActorID = actorID
	s.lastRole = role
	s.lastInput = input
	return s.enrollResult, s.enrollErr
}

func (s *stubEnrollmentService) ListEnrollments(_ context.Context, actorID int64) ([]models.Enrollment, error) {
	s.lastActorID = actorID
	return s.listResult, s.listErr
}

func newProgramTestApp(catalog *stubProgramCatalog, enrollments *stubEnrollmentService) (*fiber.App, *ProgramHandler) {
	handler := NewProgramHandler(catalog, enrollments)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", models.RoleAthlete)
		c.Locals("user_id", "42")
		return c.Next()
	})
	return app, handler
}

func TestListPublicReturnsActivePrograms(t *testing.T) {
	catalog := &stubProgramCatalog{
		publicResult: []models.Program{{ID: 3, Name: "Strength Foundations", Status: "active"}},
	}
	handler := NewProgramHandler(catalog, &stubEnrollmentService{})

	app := fiber.New()
	app.Get("/api/programs/public", handler.ListPublic)

	req := httptest.NewRequest(http.MethodGet, "/api/programs/public", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Programs []models.Program `json:"programs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body.Programs) != 1 || body.Programs[0].Name != "Strength Foundations" {
		t.Fatalf("unexpected response: %+v", body.Programs)
	}
}

func TestEnrollForwardsCatalogProgram(t *testing.T) {
	enrollments := &stubEnrollmentService{
		enrollResult: &models.Enrollment{ID: 12, UserID: 42, ProgramRef: "3", ProgramName: "Strength Foundations"},
	}
	app, handler := newProgramTestApp(&stubProgramCatalog{}, enrollments)
	app.Post("/api/v1/programs/enroll", handler.Enroll)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/programs/enroll", strings.NewReader(`{"program_id":"3"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if enrollments.lastActorID != 42 || enrollments.lastRole != models.RoleAthlete {
		t.Fatalf("unexpected actor context: %d %q", enrollments.lastActorID, enrollments.lastRole)
	}
	if enrollments.lastInput.ProgramRef != "3" {
		t.Fatalf("expected program ref 3, got %q", enrollments.lastInput.ProgramRef)
	}
}

func TestEnrollRejectsIncompleteCustomization(t *testing.T) {
	enrollments := &stubEnrollmentService{}
	app, handler := newProgramTestApp(&stubProgramCatalog{}, enrollments)
	app.Post("/api/v1/programs/enroll", handler.Enroll)

	// Online delivery without the equipment step filled in.
	payload := `{
		"program_id": "custom-program",
		"customization": {
			"delivery_type": "online",
			"program_category": "fitness-wellness",
			"age": "31",
			"height_cm": "168",
			"weight_kg": "59",
			"fitness_goals": ["mobility"]
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/programs/enroll", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if enrollments.lastInput.ProgramRef != "" {
		t.Fatal("expected enrollment service not to be called")
	}
}

func TestEnrollAcceptsCompleteCustomProgram(t *testing.T) {
	enrollments := &stubEnrollmentService{
		enrollResult: &models.Enrollment{ID: 8, UserID: 42, ProgramRef: models.CustomProgramID},
	}
	app, handler := newProgramTestApp(&stubProgramCatalog{}, enrollments)
	app.Post("/api/v1/programs/enroll", handler.Enroll)

	payload := `{
		"program_id": "custom-program",
		"customization": {
			"delivery_type": "in-person",
			"program_category": "sport-performance",
			"age": "24",
			"height_cm": "190",
			"weight_kg": "88",
			"sport": "rowing",
			"performance_goals": ["endurance", "power"]
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/programs/enroll", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if enrollments.lastInput.Customization == nil || enrollments.lastInput.Customization.Sport != "rowing" {
		t.Fatalf("unexpected forwarded customization: %+v", enrollments.lastInput.Customization)
	}
}

func TestEnrollReturnsConflictWhenAlreadyEnrolled(t *testing.T) {
	enrollments := &stubEnrollmentService{enrollErr: services.ErrConflict}
	app, handler := newProgramTestApp(&stubProgramCatalog{}, enrollments)
	app.Post("/api/v1/programs/enroll", handler.Enroll)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/programs/enroll", strings.NewReader(`{"program_id":"3"}`))
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

func TestListEnrolledReturnsEnrollments(t *testing.T) {
	enrollments := &stubEnrollmentService{
		listResult: []models.Enrollment{{ID: 12, UserID: 42, ProgramRef: "3"}},
	}
	app, handler := newProgramTestApp(&stubProgramCatalog{}, enrollments)
	app.Get("/api/v1/programs/enrolled", handler.ListEnrolled)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/programs/enrolled", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if enrollments.lastActorID != 42 {
		t.Fatalf("expected actor id 42, got %d", enrollments.lastActorID)
	}
}
