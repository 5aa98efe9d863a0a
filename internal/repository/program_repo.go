package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/peakform/AthleteHubBack/internal/models"
)

const programColumns = `
	id, name, description, price, delivery, format, category, coach_id,
	duration_weeks, max_participants, image_url, status, created_at, updated_at
`

type ProgramRepository struct {
	db DBTX
}

func NewProgramRepository(db DBTX) *ProgramRepository {
	return &ProgramRepository{db: db}
}

type CreateProgramInput struct {
	Name            string
	Description     *string
	Price           float64
	Delivery        string
	Format          string
	Category        string
	CoachID         *int64
	DurationWeeks   *int
	MaxParticipants *int
}

func (r *ProgramRepository) Create(ctx context.Context, input CreateProgramInput) (*models.Program, error) {
	query := `
		INSERT INTO programs
			(name, description, price, delivery, format, category, coach_id,
			 duration_weeks, max_participants, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'active')
		RETURNING ` + programColumns
	return r.getOne(ctx, query,
		input.Name,
		input.Description,
		input.Price,
		input.Delivery,
		input.Format,
		input.Category,
		input.CoachID,
		input.DurationWeeks,
		input.MaxParticipants,
	)
}

type UpdateProgramInput struct {
	Name            *string
	Description     *string
	Price           *float64
	Delivery        *string
	Format          *string
	Category        *string
	CoachID         *int64
	DurationWeeks   *int
	MaxParticipants *int
	Status          *string
}

func (r *ProgramRepository) Update(
	ctx context.Context,
	programID int64,
	input UpdateProgramInput,
) (*models.Program, error) {
	query := `
		UPDATE programs
		SET name             = COALESCE($2, name),
		    description      = COALESCE($3, description),
		    price            = COALESCE($4, price),
		    delivery         = COALESCE($5, delivery),
		    format           = COALESCE($6, format),
		    category         = COALESCE($7, category),
		    coach_id         = COALESCE($8, coach_id),
		    duration_weeks   = COALESCE($9, duration_weeks),
		    max_participants = COALESCE($10, max_participants),
		    status           = COALESCE($11, status),
		    updated_at       = now()
		WHERE id = $1
		RETURNING ` + programColumns
	return r.getOne(ctx, query,
		programID,
		input.Name,
		input.Description,
		input.Price,
		input.Delivery,
		input.Format,
		input.Category,
		input.CoachID,
		input.DurationWeeks,
		input.MaxParticipants,
		input.Status,
	)
}

func (r *ProgramRepository) SetImageURL(ctx context.Context, programID int64, imageURL string) (*models.Program, error) {
	query := `
		UPDATE programs SET image_url = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + programColumns
	return r.getOne(ctx, query, programID, imageURL)
}

func (r *ProgramRepository) Delete(ctx context.Context, programID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM programs WHERE id = $1`, programID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ProgramRepository) GetByID(ctx context.Context, programID int64) (*models.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programs WHERE id = $1`
	return r.getOne(ctx, query, programID)
}

func (r *ProgramRepository) ListActive(ctx context.Context) ([]models.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programs WHERE status = 'active' ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query)
}

func (r *ProgramRepository) ListAll(ctx context.Context) ([]models.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programs ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query)
}

func (r *ProgramRepository) list(ctx context.Context, query string, args ...any) ([]models.Program, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	programs := make([]models.Program, 0)
	for rows.Next() {
		var program models.Program
		if err := scanProgram(rows, &program); err != nil {
			return nil, err
		}
		programs = append(programs, program)
	}
	return programs, rows.Err()
}

func (r *ProgramRepository) getOne(ctx context.Context, query string, args ...any) (*models.Program, error) {
	var program models.Program
	if err := scanProgram(r.db.QueryRow(ctx, query, args...), &program); err != nil {
		return nil, err
	}
	return &program, nil
}

func scanProgram(row pgx.Row, program *models.Program) error {
	return row.Scan(
		&program.ID,
		&program.Name,
		&program.Description,
		&program.Price,
		&program.Delivery,
		&program.Format,
		&program.Category,
		&program.CoachID,
		&program.DurationWeeks,
		&program.MaxParticipants,
		&program.ImageURL,
		&program.Status,
		&program.CreatedAt,
		&program.UpdatedAt,
	)
}
