package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/peakform/AthleteHubBack/internal/models"
	"github.com/peakform/AthleteHubBack/internal/repository"
)

type ExerciseService struct {
	exerciseRepo *repository.ExerciseRepository
	userRepo     userReader
}

func NewExerciseService(exerciseRepo *repository.ExerciseRepository, userRepo userReader) *ExerciseService {
	return &ExerciseService{
		exerciseRepo: exerciseRepo,
		userRepo:     userRepo,
	}
}

func (s *ExerciseService) CreateExercise(
	ctx context.Context,
	input repository.CreateExerciseInput,
) (*models.Exercise, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	if input.Name == "" || input.Category == "" {
		return nil, ErrInvalidInput
	}
	return s.exerciseRepo.Create(ctx, input)
}

func (s *ExerciseService) UpdateExercise(
	ctx context.Context,
	exerciseID int64,
	input repository.UpdateExerciseInput,
) (*models.Exercise, error) {
	if exerciseID <= 0 {
		return nil, ErrInvalidInput
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, ErrInvalidInput
	}
	if input.Category != nil && strings.TrimSpace(*input.Category) == "" {
		return nil, ErrInvalidInput
	}
	return s.exerciseRepo.Update(ctx, exerciseID, input)
}

func (s *ExerciseService) DeleteExercise(ctx context.Context, exerciseID int64) error {
	if exerciseID <= 0 {
		return ErrInvalidInput
	}
	return s.exerciseRepo.Delete(ctx, exerciseID)
}

func (s *ExerciseService) ListExercises(ctx context.Context, category string) ([]models.Exercise, error) {
	return s.exerciseRepo.List(ctx, strings.TrimSpace(category))
}

func (s *ExerciseService) ListCategories(ctx context.Context) ([]string, error) {
	return s.exerciseRepo.ListCategories(ctx)
}

type AssignExerciseInput struct {
	AthleteID       int64
	Sets            int
	Reps            int
	DurationMinutes *int
	AssignedDate    time.Time
}

func (s *ExerciseService) AssignExercise(
	ctx context.Context,
	assignerID int64,
	exerciseID int64,
	input AssignExerciseInput,
) (*models.ExerciseAssignment, error) {
	if exerciseID <= 0 || input.AthleteID <= 0 || input.Sets < 0 || input.Reps < 0 {
		return nil, ErrInvalidInput
	}
	if input.Sets == 0 && input.Reps == 0 && input.DurationMinutes == nil {
		return nil, ErrInvalidInput
	}
	if input.DurationMinutes != nil && *input.DurationMinutes <= 0 {
		return nil, ErrInvalidInput
	}
	if input.AssignedDate.IsZero() {
		input.AssignedDate = time.Now().UTC()
	}

	athlete, err := s.userRepo.GetByID(ctx, input.AthleteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidInput
		}
		return nil, err
	}
	if athlete.Role != models.RoleAthlete {
		return nil, ErrInvalidInput
	}

	if _, err := s.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
		return nil, err
	}

	return s.exerciseRepo.CreateAssignment(ctx, repository.CreateAssignmentInput{
		ExerciseID:      exerciseID,
		AthleteID:       input.AthleteID,
		AssignedBy:      assignerID,
		Sets:            input.Sets,
		Reps:            input.Reps,
		DurationMinutes: input.DurationMinutes,
		AssignedDate:    truncateToDate(input.AssignedDate),
	})
}

func (s *ExerciseService) ListDaily(
	ctx context.Context,
	athleteID int64,
	date time.Time,
) ([]models.DailyAssignment, error) {
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return s.exerciseRepo.ListAssignmentsForDate(ctx, athleteID, truncateToDate(date))
}

// CompleteAssignment marks the athlete's own assignment completed. Repeating
// the call is a no-op.
func (s *ExerciseService) CompleteAssignment(
	ctx context.Context,
	athleteID int64,
	assignmentID int64,
) (*models.ExerciseAssignment, error) {
	if assignmentID <= 0 {
		return nil, ErrInvalidInput
	}

	assignment, err := s.exerciseRepo.GetAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.AthleteID != athleteID {
		return nil, ErrForbidden
	}

	return s.exerciseRepo.MarkCompleted(ctx, assignmentID)
}

func truncateToDate(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
