package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/peakform/AthleteHubBack/internal/models"
)

const contractColumns = `
	id, enrollment_id, status, signature, signed_at, version, program_name,
	customization, user_name, user_email, created_at
`

type ContractRepository struct {
	db DBTX
}

func NewContractRepository(db DBTX) *ContractRepository {
	return &ContractRepository{db: db}
}

type CreateContractInput struct {
	EnrollmentID  int64
	Version       int
	ProgramName   string
	Customization *models.Customization
	UserName      string
	UserEmail     string
}

func (r *ContractRepository) Create(ctx context.Context, input CreateContractInput) (*models.Contract, error) {
	query := `
		INSERT INTO contracts
			(enrollment_id, status, version, program_name, customization, user_name, user_email)
		VALUES ($1, 'pending', $2, $3, $4, $5, $6)
		RETURNING ` + contractColumns
	return r.getOne(ctx, query,
		input.EnrollmentID,
		input.Version,
		input.ProgramName,
		input.Customization,
		input.UserName,
		input.UserEmail,
	)
}

func (r *ContractRepository) GetByEnrollmentID(ctx context.Context, enrollmentID int64) (*models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE enrollment_id = $1`
	return r.getOne(ctx, query, enrollmentID)
}

// SignIfPending flips a pending contract to signed in one statement so the
// transition stays one-way under concurrent signing attempts.
func (r *ContractRepository) SignIfPending(
	ctx context.Context,
	enrollmentID int64,
	signature string,
) (*models.Contract, error) {
	query := `
		UPDATE contracts
		SET status = 'signed', signature = $2, signed_at = now()
		WHERE enrollment_id = $1 AND status = 'pending'
		RETURNING ` + contractColumns
	return r.getOne(ctx, query, enrollmentID, signature)
}

func (r *ContractRepository) List(ctx context.Context, status string) ([]models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contracts := make([]models.Contract, 0)
	for rows.Next() {
		var contract models.Contract
		if err := scanContract(rows, &contract); err != nil {
			return nil, err
		}
		contracts = append(contracts, contract)
	}
	return contracts, rows.Err()
}

func (r *ContractRepository) getOne(ctx context.Context, query string, args ...any) (*models.Contract, error) {
	var contract models.Contract
	if err := scanContract(r.db.QueryRow(ctx, query, args...), &contract); err != nil {
		return nil, err
	}
	return &contract, nil
}

func scanContract(row pgx.Row, contract *models.Contract) error {
	return row.Scan(
		&contract.ID,
		&contract.EnrollmentID,
		&contract.Status,
		&contract.Signature,
		&contract.SignedAt,
		&contract.Version,
		&contract.ProgramName,
		&contract.Customization,
		&contract.UserName,
		&contract.UserEmail,
		&contract.CreatedAt,
	)
}
