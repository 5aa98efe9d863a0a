package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/peakform/AthleteHubBack/internal/models"
)

type athleteLister interface {
	ListByRole(ctx context.Context, role string) ([]models.User, error)
}

type enrollmentSummarizer interface {
	SummariesByUser(ctx context.Context) (map[int64][]models.EnrollmentSummary, error)
}

type AthleteHandler struct {
	userRepo       athleteLister
	enrollmentRepo enrollmentSummarizer
}

func NewAthleteHandler(userRepo athleteLister, enrollmentRepo enrollmentSummarizer) *AthleteHandler {
	return &AthleteHandler{
		userRepo:       userRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// List returns every athlete account together with its program enrollments.
func (h *AthleteHandler) List(c *fiber.Ctx) error {
	athletes, err := h.userRepo.ListByRole(c.Context(), models.RoleAthlete)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list athletes"})
	}

	summaries, err := h.enrollmentRepo.SummariesByUser(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list enrollments"})
	}

	result := make([]models.AthleteSummary, 0, len(athletes))
	for _, athlete := range athletes {
		enrollments := summaries[athlete.ID]
		if enrollments == nil {
			enrollments = []models.EnrollmentSummary{}
		}
		result = append(result, models.AthleteSummary{
			User:        athlete,
			Enrollments: enrollments,
		})
	}

	return c.JSON(fiber.Map{"athletes": result})
}
