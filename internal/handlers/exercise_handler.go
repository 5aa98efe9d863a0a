package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/peakform/AthleteHubBack/internal/repository"
	"github.com/peakform/AthleteHubBack/internal/services"
)

type ExerciseHandler struct {
	exerciseService *services.ExerciseService
}

func NewExerciseHandler(exerciseService *services.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

type createExerciseRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Category    string  `json:"category"`
	URL         *string `json:"url"`
	MediaURL    *string `json:"media_url"`
	MediaType   *string `json:"media_type"`
}

type updateExerciseRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	URL         *string `json:"url"`
	MediaURL    *string `json:"media_url"`
	MediaType   *string `json:"media_type"`
}

type assignExerciseRequest struct {
	AthleteID       int64  `json:"athlete_id"`
	Sets            int    `json:"sets"`
	Reps            int    `json:"reps"`
	DurationMinutes *int   `json:"duration_minutes"`
	AssignedDate    string `json:"assigned_date"`
}

type completeAssignmentRequest struct {
	AssignmentID int64 `json:"assignment_id"`
}

func (h *ExerciseHandler) List(c *fiber.Ctx) error {
	exercises, err := h.exerciseService.ListExercises(c.Context(), c.Query("category"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list exercises"})
	}
	return c.JSON(fiber.Map{"exercises": exercises})
}

func (h *ExerciseHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.exerciseService.ListCategories(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list categories"})
	}
	return c.JSON(fiber.Map{"categories": categories})
}

func (h *ExerciseHandler) Create(c *fiber.Ctx) error {
	var req createExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	exercise, err := h.exerciseService.CreateExercise(c.Context(), repository.CreateExerciseInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		URL:         req.URL,
		MediaURL:    req.MediaURL,
		MediaType:   req.MediaType,
	})
	if err != nil {
		return mapExerciseError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"exercise": exercise})
}

func (h *ExerciseHandler) Update(c *fiber.Ctx) error {
	exerciseID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	var req updateExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	exercise, err := h.exerciseService.UpdateExercise(c.Context(), exerciseID, repository.UpdateExerciseInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		URL:         req.URL,
		MediaURL:    req.MediaURL,
		MediaType:   req.MediaType,
	})
	if err != nil {
		return mapExerciseError(c, err)
	}

	return c.JSON(fiber.Map{"exercise": exercise})
}

func (h *ExerciseHandler) Delete(c *fiber.Ctx) error {
	exerciseID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	if err := h.exerciseService.DeleteExercise(c.Context(), exerciseID); err != nil {
		return mapExerciseError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Exercise deleted"})
}

func (h *ExerciseHandler) Assign(c *fiber.Ctx) error {
	assignerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	exerciseID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	var req assignExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var assignedDate time.Time
	if req.AssignedDate != "" {
		assignedDate, err = time.Parse("2006-01-02", req.AssignedDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "assigned_date must be YYYY-MM-DD"})
		}
	}

	assignment, err := h.exerciseService.AssignExercise(c.Context(), assignerID, exerciseID, services.AssignExerciseInput{
		AthleteID:       req.AthleteID,
		Sets:            req.Sets,
		Reps:            req.Reps,
		DurationMinutes: req.DurationMinutes,
		AssignedDate:    assignedDate,
	})
	if err != nil {
		return mapExerciseError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"assignment": assignment})
}

func (h *ExerciseHandler) Daily(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var date time.Time
	if raw := c.Query("date"); raw != "" {
		date, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
		}
	}

	assignments, err := h.exerciseService.ListDaily(c.Context(), userID, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list assignments"})
	}
	return c.JSON(fiber.Map{"assignments": assignments})
}

func (h *ExerciseHandler) Complete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req completeAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	assignment, err := h.exerciseService.CompleteAssignment(c.Context(), userID, req.AssignmentID)
	if err != nil {
		return mapExerciseError(c, err)
	}
	return c.JSON(fiber.Map{"assignment": assignment})
}

func mapExerciseError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process exercise request"})
	}
}
