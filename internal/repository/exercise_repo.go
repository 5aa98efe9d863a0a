package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/peakform/AthleteHubBack/internal/models"
)

const exerciseColumns = `
	id, name, description, category, url, media_url, media_type, created_at
`

type ExerciseRepository struct {
	db DBTX
}

func NewExerciseRepository(db DBTX) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

type CreateExerciseInput struct {
	Name        string
	Description *string
	Category    string
	URL         *string
	MediaURL    *string
	MediaType   *string
}

func (r *ExerciseRepository) Create(ctx context.Context, input CreateExerciseInput) (*models.Exercise, error) {
	query := `
		INSERT INTO exercises (name, description, category, url, media_url, media_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + exerciseColumns
	return r.getOne(ctx, query,
		input.Name,
		input.Description,
		input.Category,
		input.URL,
		input.MediaURL,
		input.MediaType,
	)
}

type UpdateExerciseInput struct {
	Name        *string
	Description *string
	Category    *string
	URL         *string
	MediaURL    *string
	MediaType   *string
}

func (r *ExerciseRepository) Update(
	ctx context.Context,
	exerciseID int64,
	input UpdateExerciseInput,
) (*models.Exercise, error) {
	query := `
		UPDATE exercises
		SET name        = COALESCE($2, name),
		    description = COALESCE($3, description),
		    category    = COALESCE($4, category),
		    url         = COALESCE($5, url),
		    media_url   = COALESCE($6, media_url),
		    media_type  = COALESCE($7, media_type)
		WHERE id = $1
		RETURNING ` + exerciseColumns
	return r.getOne(ctx, query,
		exerciseID,
		input.Name,
		input.Description,
		input.Category,
		input.URL,
		input.MediaURL,
		input.MediaType,
	)
}

func (r *ExerciseRepository) Delete(ctx context.Context, exerciseID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, exerciseID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ExerciseRepository) GetByID(ctx context.Context, exerciseID int64) (*models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE id = $1`
	return r.getOne(ctx, query, exerciseID)
}

func (r *ExerciseRepository) List(ctx context.Context, category string) ([]models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY name, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]models.Exercise, 0)
	for rows.Next() {
		var exercise models.Exercise
		if err := scanExercise(rows, &exercise); err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}
	return exercises, rows.Err()
}

func (r *ExerciseRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT category FROM exercises ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

type CreateAssignmentInput struct {
	ExerciseID      int64
	AthleteID       int64
	AssignedBy      int64
	Sets            int
	Reps            int
	DurationMinutes *int
	AssignedDate    time.Time
}

const assignmentColumns = `
	id, exercise_id, athlete_id, assigned_by, sets, reps, duration_minutes,
	assigned_date, completed, completed_at, created_at
`

func (r *ExerciseRepository) CreateAssignment(
	ctx context.Context,
	input CreateAssignmentInput,
) (*models.ExerciseAssignment, error) {
	query := `
		INSERT INTO exercise_assignments
			(exercise_id, athlete_id, assigned_by, sets, reps, duration_minutes, assigned_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + assignmentColumns

	var assignment models.ExerciseAssignment
	err := scanAssignment(r.db.QueryRow(ctx, query,
		input.ExerciseID,
		input.AthleteID,
		input.AssignedBy,
		input.Sets,
		input.Reps,
		input.DurationMinutes,
		input.AssignedDate,
	), &assignment)
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *ExerciseRepository) ListAssignmentsForDate(
	ctx context.Context,
	athleteID int64,
	date time.Time,
) ([]models.DailyAssignment, error) {
	query := `
		SELECT a.id, a.exercise_id, a.athlete_id, a.assigned_by, a.sets, a.reps,
		       a.duration_minutes, a.assigned_date, a.completed, a.completed_at, a.created_at,
		       e.id, e.name, e.description, e.category, e.url, e.media_url, e.media_type, e.created_at
		FROM exercise_assignments a
		JOIN exercises e ON e.id = a.exercise_id
		WHERE a.athlete_id = $1 AND a.assigned_date = $2
		ORDER BY a.id
	`
	rows, err := r.db.Query(ctx, query, athleteID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]models.DailyAssignment, 0)
	for rows.Next() {
		var daily models.DailyAssignment
		if err := rows.Scan(
			&daily.ID,
			&daily.ExerciseID,
			&daily.AthleteID,
			&daily.AssignedBy,
			&daily.Sets,
			&daily.Reps,
			&daily.DurationMinutes,
			&daily.AssignedDate,
			&daily.Completed,
			&daily.CompletedAt,
			&daily.CreatedAt,
			&daily.Exercise.ID,
			&daily.Exercise.Name,
			&daily.Exercise.Description,
			&daily.Exercise.Category,
			&daily.Exercise.URL,
			&daily.Exercise.MediaURL,
			&daily.Exercise.MediaType,
			&daily.Exercise.CreatedAt,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, daily)
	}
	return assignments, rows.Err()
}

func (r *ExerciseRepository) GetAssignmentByID(ctx context.Context, assignmentID int64) (*models.ExerciseAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM exercise_assignments WHERE id = $1`
	var assignment models.ExerciseAssignment
	if err := scanAssignment(r.db.QueryRow(ctx, query, assignmentID), &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// MarkCompleted is idempotent: completing an already completed assignment
// keeps the original completed_at.
func (r *ExerciseRepository) MarkCompleted(ctx context.Context, assignmentID int64) (*models.ExerciseAssignment, error) {
	query := `
		UPDATE exercise_assignments
		SET completed = TRUE, completed_at = COALESCE(completed_at, now())
		WHERE id = $1
		RETURNING ` + assignmentColumns
	var assignment models.ExerciseAssignment
	if err := scanAssignment(r.db.QueryRow(ctx, query, assignmentID), &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *ExerciseRepository) getOne(ctx context.Context, query string, args ...any) (*models.Exercise, error) {
	var exercise models.Exercise
	if err := scanExercise(r.db.QueryRow(ctx, query, args...), &exercise); err != nil {
		return nil, err
	}
	return &exercise, nil
}

func scanExercise(row pgx.Row, exercise *models.Exercise) error {
	return row.Scan(
		&exercise.ID,
		&exercise.Name,
		&exercise.Description,
		&exercise.Category,
		&exercise.URL,
		&exercise.MediaURL,
		&exercise.MediaType,
		&exercise.CreatedAt,
	)
}

func scanAssignment(row pgx.Row, assignment *models.ExerciseAssignment) error {
	return row.Scan(
		&assignment.ID,
		&assignment.ExerciseID,
		&assignment.AthleteID,
		&assignment.AssignedBy,
		&assignment.Sets,
		&assignment.Reps,
		&assignment.DurationMinutes,
		&assignment.AssignedDate,
		&assignment.Completed,
		&assignment.CompletedAt,
		&assignment.CreatedAt,
	)
}
