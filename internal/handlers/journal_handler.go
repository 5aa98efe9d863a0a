package handlers

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/peakform/AthleteHubBack/internal/models"
	"github.com/peakform/AthleteHubBack/internal/services"
)

const maxJournalMediaBytes = 20 * 1024 * 1024

type journalApplicationService interface {
	ListEntries(ctx context.Context, userID int64) ([]models.JournalEntry, error)
	CreateEntry(ctx context.Context, userID int64, input services.CreateEntryInput) (*models.JournalEntry, error)
	GetEntry(ctx context.Context, userID, entryID int64) (*models.JournalEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID int64) error
	AttachMedia(ctx context.Context, userID int64, entryID int64, file multipart.File, filename string, mediaType string) (*models.JournalMedia, error)
}

type JournalHandler struct {
	journalService journalApplicationService
}

func NewJournalHandler(journalService journalApplicationService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

type createJournalEntryRequest struct {
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Mood    *string   `json:"mood"`
	Tags    *[]string `json:"tags"`
}

func (h *JournalHandler) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	entries, err := h.journalService.ListEntries(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list journal entries"})
	}
	return c.JSON(fiber.Map{"entries": entries})
}

func (h *JournalHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createJournalEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	entry, err := h.journalService.CreateEntry(c.Context(), userID, services.CreateEntryInput{
		Title:   req.Title,
		Content: req.Content,
		Mood:    req.Mood,
		Tags:    req.Tags,
	})
	if err != nil {
		return mapJournalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"entry": entry})
}

func (h *JournalHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	entryID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid entry id"})
	}

	entry, err := h.journalService.GetEntry(c.Context(), userID, entryID)
	if err != nil {
		return mapJournalError(c, err)
	}
	return c.JSON(fiber.Map{"entry": entry})
}

func (h *JournalHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	entryID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid entry id"})
	}

	if err := h.journalService.DeleteEntry(c.Context(), userID, entryID); err != nil {
		return mapJournalError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Entry deleted"})
}

func (h *JournalHandler) UploadMedia(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	entryID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid entry id"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing file"})
	}
	if fileHeader.Size > maxJournalMediaBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).
			JSON(fiber.Map{"error": "File exceeds the 20MB limit"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not read file"})
	}
	defer file.Close()

	media, err := h.journalService.AttachMedia(
		c.Context(),
		userID,
		entryID,
		file,
		fileHeader.Filename,
		c.FormValue("media_type"),
	)
	if err != nil {
		return mapJournalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"media": media})
}

func mapJournalError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Storage is not configured"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Entry not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process journal request"})
	}
}
