package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/peakform/AthleteHubBack/internal/repository"
	"github.com/peakform/AthleteHubBack/internal/services"
)

const maxImageSizeBytes = 5 * 1024 * 1024

type AdminProgramHandler struct {
	programService *services.ProgramService
}

func NewAdminProgramHandler(programService *services.ProgramService) *AdminProgramHandler {
	return &AdminProgramHandler{programService: programService}
}

type createProgramRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	Price           float64 `json:"price"`
	Delivery        string  `json:"delivery"`
	Format          string  `json:"format"`
	Category        string  `json:"category"`
	CoachID         *int64  `json:"coach_id"`
	DurationWeeks   *int    `json:"duration_weeks"`
	MaxParticipants *int    `json:"max_participants"`
}

type updateProgramRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	Delivery        *string  `json:"delivery"`
	Format          *string  `json:"format"`
	Category        *string  `json:"category"`
	CoachID         *int64   `json:"coach_id"`
	DurationWeeks   *int     `json:"duration_weeks"`
	MaxParticipants *int     `json:"max_participants"`
	Status          *string  `json:"status"`
}

func (h *AdminProgramHandler) List(c *fiber.Ctx) error {
	programs, err := h.programService.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list programs"})
	}
	return c.JSON(fiber.Map{"programs": programs})
}

func (h *AdminProgramHandler) Create(c *fiber.Ctx) error {
	var req createProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	program, err := h.programService.CreateProgram(c.Context(), repository.CreateProgramInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Delivery:        req.Delivery,
		Format:          req.Format,
		Category:        req.Category,
		CoachID:         req.CoachID,
		DurationWeeks:   req.DurationWeeks,
		MaxParticipants: req.MaxParticipants,
	})
	if err != nil {
		return mapProgramError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"program": program})
}

func (h *AdminProgramHandler) Update(c *fiber.Ctx) error {
	programID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid program id"})
	}

	var req updateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	program, err := h.programService.UpdateProgram(c.Context(), programID, repository.UpdateProgramInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Delivery:        req.Delivery,
		Format:          req.Format,
		Category:        req.Category,
		CoachID:         req.CoachID,
		DurationWeeks:   req.DurationWeeks,
		MaxParticipants: req.MaxParticipants,
		Status:          req.Status,
	})
	if err != nil {
		return mapProgramError(c, err)
	}

	return c.JSON(fiber.Map{"program": program})
}

func (h *AdminProgramHandler) Delete(c *fiber.Ctx) error {
	programID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid program id"})
	}

	if err := h.programService.DeleteProgram(c.Context(), programID); err != nil {
		return mapProgramError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Program deleted"})
}

func (h *AdminProgramHandler) UploadImage(c *fiber.Ctx) error {
	programID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid program id"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
	}
	if fileHeader.Size > maxImageSizeBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Image exceeds 5MB limit"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to read image"})
	}
	defer file.Close()

	program, err := h.programService.UploadImage(c.Context(), programID, file, fileHeader.Filename)
	if err != nil {
		return mapProgramError(c, err)
	}

	return c.JSON(fiber.Map{"program": program})
}

func mapProgramError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).
			JSON(fiber.Map{"error": "Storage service is not configured"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Program not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process program request"})
	}
}
