package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/peakform/AthleteHubBack/internal/models"
)

const enrollmentColumns = `
	id, reference, user_id, program_id, program_ref, program_name, customization, enrolled_at
`

type EnrollmentRepository struct {
	db DBTX
}

func NewEnrollmentRepository(db DBTX) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

type CreateEnrollmentInput struct {
	Reference     string
	UserID        int64
	ProgramID     *int64
	ProgramRef    string
	ProgramName   string
	Customization *models.Customization
}

func (r *EnrollmentRepository) Create(ctx context.Context, input CreateEnrollmentInput) (*models.Enrollment, error) {
	query := `
		INSERT INTO enrollments (reference, user_id, program_id, program_ref, program_name, customization)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + enrollmentColumns
	return r.getOne(ctx, query,
		input.Reference,
		input.UserID,
		input.ProgramID,
		input.ProgramRef,
		input.ProgramName,
		input.Customization,
	)
}

func (r *EnrollmentRepository) GetByID(ctx context.Context, enrollmentID int64) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = $1`
	return r.getOne(ctx, query, enrollmentID)
}

func (r *EnrollmentRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE user_id = $1 ORDER BY enrolled_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := make([]models.Enrollment, 0)
	for rows.Next() {
		var enrollment models.Enrollment
		if err := scanEnrollment(rows, &enrollment); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, rows.Err()
}

// ExistsForProgram reports whether the user already holds an enrollment with
// the given program reference. Custom-program enrollments are never deduplicated.
func (r *EnrollmentRepository) ExistsForProgram(ctx context.Context, userID int64, programRef string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM enrollments WHERE user_id = $1 AND program_ref = $2
		)
	`, userID, programRef).Scan(&exists)
	return exists, err
}

// SummariesByUser returns enrollment summaries grouped by user id, used by
// the admin athlete listing.
func (r *EnrollmentRepository) SummariesByUser(ctx context.Context) (map[int64][]models.EnrollmentSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, program_ref, program_name, enrolled_at
		FROM enrollments
		ORDER BY enrolled_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make(map[int64][]models.EnrollmentSummary)
	for rows.Next() {
		var userID int64
		var summary models.EnrollmentSummary
		if err := rows.Scan(
			&summary.EnrollmentID,
			&userID,
			&summary.ProgramID,
			&summary.ProgramName,
			&summary.EnrolledAt,
		); err != nil {
			return nil, err
		}
		summaries[userID] = append(summaries[userID], summary)
	}
	return summaries, rows.Err()
}

func (r *EnrollmentRepository) getOne(ctx context.Context, query string, args ...any) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := scanEnrollment(r.db.QueryRow(ctx, query, args...), &enrollment); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func scanEnrollment(row pgx.Row, enrollment *models.Enrollment) error {
	return row.Scan(
		&enrollment.ID,
		&enrollment.Reference,
		&enrollment.UserID,
		&enrollment.ProgramID,
		&enrollment.ProgramRef,
		&enrollment.ProgramName,
		&enrollment.Customization,
		&enrollment.EnrolledAt,
	)
}
