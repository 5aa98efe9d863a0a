package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/peakform/AthleteHubBack/internal/models"
	"github.com/peakform/AthleteHubBack/internal/services"
)

type enrollmentApplicationService interface {
	Enroll(ctx context.Context, actorID int64, role string, input services.EnrollInput) (*models.Enrollment, error)
	ListEnrollments(ctx context.Context, actorID int64) ([]models.Enrollment, error)
}

type programCatalog interface {
	ListPublic(ctx context.Context) ([]models.Program, error)
}

type ProgramHandler struct {
	programs    programCatalog
	enrollments enrollmentApplicationService
}

func NewProgramHandler(programs programCatalog, enrollments enrollmentApplicationService) *ProgramHandler {
	return &ProgramHandler{
		programs:    programs,
		enrollments: enrollments,
	}
}

type enrollRequest struct {
	ProgramID     string                `json:"program_id"`
	Customization *models.Customization `json:"customization"`
}

func (h *ProgramHandler) ListPublic(c *fiber.Ctx) error {
	programs, err := h.programs.ListPublic(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list programs"})
	}
	return c.JSON(fiber.Map{"programs": programs})
}

func (h *ProgramHandler) ListEnrolled(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	enrollments, err := h.enrollments.ListEnrollments(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list enrollments"})
	}
	return c.JSON(fiber.Map{"enrollments": enrollments})
}

func (h *ProgramHandler) Enroll(c *fiber.Ctx) error {
	role, ok := currentRole(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req enrollRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ProgramID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "program_id is required"})
	}

	// The wizard guards the UI, but nothing stops a client from posting a
	// partial customization straight here, so the guards run again.
	if req.ProgramID == models.CustomProgramID {
		if msg := services.ValidateCustomization(req.Customization); msg != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
		}
	}

	enrollment, err := h.enrollments.Enroll(c.Context(), userID, role, services.EnrollInput{
		ProgramRef:    req.ProgramID,
		Customization: req.Customization,
	})
	if err != nil {
		return mapEnrollmentError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"enrollment": enrollment})
}

func mapEnrollmentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrProgramNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Program not found"})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already enrolled in this program"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process enrollment"})
	}
}
