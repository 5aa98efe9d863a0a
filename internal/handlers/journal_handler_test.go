package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/peakform/AthleteHubBack/internal/models"
	"github.com/peakform/AthleteHubBack/internal/services"
)

type stubJournalService struct {
	listResult   []models.JournalEntry
	listErr      error
	createResult *models.JournalEntry
	createErr    error
	getResult    *models.JournalEntry
	getErr       error
	deleteErr    error
	mediaResult  *models.JournalMedia
	mediaErr     error
	lastUserID   int64
	lastEntryID  int64
	lastInput    services.CreateEntryInput
}

func (s *stubJournalService) ListEntries(_ context.Context, userID int64) ([]models.JournalEntry, error) {
	s.lastUserID = userID
	return s.listResult, s.listErr
}

func (s *stubJournalService) CreateEntry(_ context.Context, userID int64, input services.CreateEntryInput) (*models.JournalEntry, error) {
	s.lastUserID = userID
	s.lastInput = input
	return s.createResult, s.createErr
}

func (s *stubJournalService) GetEntry(_ context.Context, userID, entryID int64) (*models.JournalEntry, error) {
	s.lastUserID = userID
	s.lastEntryID = entryID
	return s.getResult, s.getErr
}

func (s *stubJournalService) DeleteEntry(_ context.Context, userID, entryID int64) error {
	s.lastUserID = userID
	s.lastEntryID = entryID
	return s.deleteErr
}

func (s *stubJournalService) AttachMedia(_ context.Context, userID int64, entryID int64, _ multipart.File, _ string, _ string) (*models.JournalMedia, error) {
	s.lastUserID = userID
	s.lastEntryID = entryID
	return s.mediaResult, s.mediaErr
}

func newJournalTestApp(service *stubJournalService) (*fiber.App, *JournalHandler) {
	handler := NewJournalHandler(service)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", models.RoleAthlete)
		c.Locals("user_id", "42")
		return c.Next()
	})
	return app, handler
}

func TestCreateJournalEntryForwardsInput(t *testing.T) {
	service := &stubJournalService{
		createResult: &models.JournalEntry{ID: 3, UserID: 42, Title: "Leg day", Content: "Heavy squats"},
	}
	app, handler := newJournalTestApp(service)
	app.Post("/api/v1/journal/entries", handler.Create)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/journal/entries",
		strings.NewReader(`{"title":"Leg day","content":"Heavy squats","mood":"tired"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastUserID != 42 || service.lastInput.Title != "Leg day" {
		t.Fatalf("unexpected forwarded input: user=%d title=%q", service.lastUserID, service.lastInput.Title)
	}
	if service.lastInput.Mood == nil || *service.lastInput.Mood != "tired" {
		t.Fatalf("expected mood to be forwarded, got %v", service.lastInput.Mood)
	}

	var body struct {
		Entry models.JournalEntry `json:"entry"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Entry.ID != 3 {
		t.Fatalf("expected entry 3, got %d", body.Entry.ID)
	}
}

func TestGetJournalEntryHidesForeignEntry(t *testing.T) {
	service := &stubJournalService{getErr: pgx.ErrNoRows}
	app, handler := newJournalTestApp(service)
	app.Get("/api/v1/journal/entries/:id", handler.Get)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/journal/entries/7", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for another user's entry, got %d", resp.StatusCode)
	}
	if service.lastUserID != 42 || service.lastEntryID != 7 {
		t.Fatalf("unexpected lookup: user=%d entry=%d", service.lastUserID, service.lastEntryID)
	}
}

func TestDeleteJournalEntryHidesForeignEntry(t *testing.T) {
	service := &stubJournalService{deleteErr: pgx.ErrNoRows}
	app, handler := newJournalTestApp(service)
	app.Delete("/api/v1/journal/entries/:id", handler.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/journal/entries/7", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for another user's entry, got %d", resp.StatusCode)
	}
}

func TestUploadJournalMediaHidesForeignEntry(t *testing.T) {
	service := &stubJournalService{mediaErr: pgx.ErrNoRows}
	app, handler := newJournalTestApp(service)
	app.Post("/api/v1/journal/entries/:id/media", handler.UploadMedia)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "squat.jpg")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte("not a real jpeg")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := writer.WriteField("media_type", "image"); err != nil {
		t.Fatalf("WriteField: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/journal/entries/7/media", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for another user's entry, got %d", resp.StatusCode)
	}
	if service.lastEntryID != 7 {
		t.Fatalf("expected entry 7 lookup, got %d", service.lastEntryID)
	}
}
