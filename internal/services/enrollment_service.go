package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peakform/AthleteHubBack/internal/models"
	"github.com/peakform/AthleteHubBack/internal/repository"
)

var (
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrProgramNotFound    = errors.New("program not found")
	ErrAlreadySigned      = errors.New("contract already signed")
	ErrChannelLocked      = errors.New("channel is locked")
	ErrStorageUnavailable = errors.New("storage service is not configured")
)

const contractVersion = 1

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type EnrollmentService struct {
	db             *pgxpool.Pool
	enrollmentRepo *repository.EnrollmentRepository
	contractRepo   *repository.ContractRepository
	programRepo    *repository.ProgramRepository
	userRepo       userReader
}

func NewEnrollmentService(
	db *pgxpool.Pool,
	enrollmentRepo *repository.EnrollmentRepository,
	contractRepo *repository.ContractRepository,
	programRepo *repository.ProgramRepository,
	userRepo userReader,
) *EnrollmentService {
	return &EnrollmentService{
		db:             db,
		enrollmentRepo: enrollmentRepo,
		contractRepo:   contractRepo,
		programRepo:    programRepo,
		userRepo:       userRepo,
	}
}

type EnrollInput struct {
	ProgramRef    string
	Customization *models.Customization
}

// Enroll creates an enrollment and its pending contract in one transaction.
// Catalog enrollments require an active program and are deduplicated per
// user; custom-program enrollments carry the wizard customization instead.
func (s *EnrollmentService) Enroll(
	ctx context.Context,
	actorID int64,
	role string,
	input EnrollInput,
) (*models.Enrollment, error) {
	if role != models.RoleAthlete {
		return nil, ErrForbidden
	}

	programRef := strings.TrimSpace(input.ProgramRef)
	if programRef == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var programID *int64
	var programName string
	var customization *models.Customization

	if programRef == models.CustomProgramID {
		if msg := ValidateCustomization(input.Customization); msg != "" {
			return nil, ErrInvalidInput
		}
		programName = "Custom Program"
		customization = input.Customization
	} else {
		id, err := strconv.ParseInt(programRef, 10, 64)
		if err != nil || id <= 0 {
			return nil, ErrInvalidInput
		}
		program, err := s.programRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrProgramNotFound
			}
			return nil, err
		}
		if program.Status != "active" {
			return nil, ErrProgramNotFound
		}

		exists, err := s.enrollmentRepo.ExistsForProgram(ctx, actorID, programRef)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrConflict
		}

		programID = &program.ID
		programName = program.Name
		customization = input.Customization
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txEnrollmentRepo := repository.NewEnrollmentRepository(tx)
	txContractRepo := repository.NewContractRepository(tx)

	enrollment, err := txEnrollmentRepo.Create(ctx, repository.CreateEnrollmentInput{
		Reference:     uuid.NewString(),
		UserID:        actorID,
		ProgramID:     programID,
		ProgramRef:    programRef,
		ProgramName:   programName,
		Customization: customization,
	})
	if err != nil {
		// The partial unique index on (user_id, program_ref) catches the
		// enroll race the pre-check above cannot.
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	if _, err := txContractRepo.Create(ctx, repository.CreateContractInput{
		EnrollmentID:  enrollment.ID,
		Version:       contractVersion,
		ProgramName:   programName,
		Customization: customization,
		UserName:      user.FullName,
		UserEmail:     user.Email,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return enrollment, nil
}

func (s *EnrollmentService) ListEnrollments(ctx context.Context, actorID int64) ([]models.Enrollment, error) {
	return s.enrollmentRepo.ListByUserID(ctx, actorID)
}

// SignContract records the typed signature on a pending contract. The
// transition is one-way: a signed contract never returns to pending, and a
// second signing attempt conflicts.
func (s *EnrollmentService) SignContract(
	ctx context.Context,
	actorID int64,
	role string,
	enrollmentID int64,
	signature string,
) (*models.Contract, error) {
	trimmed := strings.TrimSpace(signature)
	if enrollmentID <= 0 || trimmed == "" {
		return nil, ErrInvalidInput
	}

	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && enrollment.UserID != actorID {
		return nil, ErrForbidden
	}

	contract, err := s.contractRepo.SignIfPending(ctx, enrollmentID, trimmed)
	if err == nil {
		return contract, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	existing, lookupErr := s.contractRepo.GetByEnrollmentID(ctx, enrollmentID)
	if lookupErr != nil {
		return nil, lookupErr
	}
	if existing.Status == models.ContractSigned {
		return nil, ErrAlreadySigned
	}
	return nil, err
}

func (s *EnrollmentService) ListContracts(ctx context.Context, status string) ([]models.Contract, error) {
	switch status {
	case "", models.ContractPending, models.ContractSigned, models.ContractExpired:
	default:
		return nil, ErrInvalidInput
	}
	return s.contractRepo.List(ctx, status)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
