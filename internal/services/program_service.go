package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/peakform/AthleteHubBack/internal/models"
	"github.com/peakform/AthleteHubBack/internal/repository"
	"github.com/peakform/AthleteHubBack/pkg/utils"
)

var allowedDeliveries = map[string]struct{}{
	models.DeliveryInPerson: {},
	models.DeliveryOnline:   {},
}

var allowedFormats = map[string]struct{}{
	models.FormatIndividual: {},
	models.FormatGroup:      {},
}

var allowedCategories = map[string]struct{}{
	models.CategorySportPerformance: {},
	models.CategoryFitnessWellness:  {},
}

type ProgramService struct {
	programRepo    *repository.ProgramRepository
	userRepo       userReader
	storageService StorageService
}

func NewProgramService(
	programRepo *repository.ProgramRepository,
	userRepo userReader,
	storageService StorageService,
) *ProgramService {
	return &ProgramService{
		programRepo:    programRepo,
		userRepo:       userRepo,
		storageService: storageService,
	}
}

func (s *ProgramService) ListPublic(ctx context.Context) ([]models.Program, error) {
	return s.programRepo.ListActive(ctx)
}

func (s *ProgramService) ListAll(ctx context.Context) ([]models.Program, error) {
	return s.programRepo.ListAll(ctx)
}

func (s *ProgramService) CreateProgram(
	ctx context.Context,
	input repository.CreateProgramInput,
) (*models.Program, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" || input.Price < 0 {
		return nil, ErrInvalidInput
	}
	if _, ok := allowedDeliveries[input.Delivery]; !ok {
		return nil, ErrInvalidInput
	}
	if _, ok := allowedFormats[input.Format]; !ok {
		return nil, ErrInvalidInput
	}
	if _, ok := allowedCategories[input.Category]; !ok {
		return nil, ErrInvalidInput
	}
	if input.CoachID != nil {
		coach, err := s.userRepo.GetByID(ctx, *input.CoachID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrInvalidInput
			}
			return nil, err
		}
		if coach.Role != models.RoleCoach {
			return nil, ErrInvalidInput
		}
	}

	return s.programRepo.Create(ctx, input)
}

func (s *ProgramService) UpdateProgram(
	ctx context.Context,
	programID int64,
	input repository.UpdateProgramInput,
) (*models.Program, error) {
	if programID <= 0 {
		return nil, ErrInvalidInput
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, ErrInvalidInput
	}
	if input.Price != nil && *input.Price < 0 {
		return nil, ErrInvalidInput
	}
	if input.Delivery != nil {
		if _, ok := allowedDeliveries[*input.Delivery]; !ok {
			return nil, ErrInvalidInput
		}
	}
	if input.Format != nil {
		if _, ok := allowedFormats[*input.Format]; !ok {
			return nil, ErrInvalidInput
		}
	}
	if input.Category != nil {
		if _, ok := allowedCategories[*input.Category]; !ok {
			return nil, ErrInvalidInput
		}
	}

	return s.programRepo.Update(ctx, programID, input)
}

func (s *ProgramService) DeleteProgram(ctx context.Context, programID int64) error {
	if programID <= 0 {
		return ErrInvalidInput
	}
	return s.programRepo.Delete(ctx, programID)
}

// UploadImage stores the image first and rolls the object back if the DB
// update fails, so a program never points at an object that was not written.
func (s *ProgramService) UploadImage(
	ctx context.Context,
	programID int64,
	file multipart.File,
	filename string,
) (*models.Program, error) {
	if s.storageService == nil {
		return nil, ErrStorageUnavailable
	}
	if programID <= 0 || file == nil {
		return nil, ErrInvalidInput
	}

	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	previousURL := program.ImageURL

	objectName := buildObjectName(filename)
	imageURL, err := s.storageService.UploadFile(ctx, file, objectName, "program-images")
	if err != nil {
		return nil, err
	}

	updated, err := s.programRepo.SetImageURL(ctx, programID, imageURL)
	if err != nil {
		cleanupErr := s.storageService.DeleteFile(ctx, imageURL)
		if cleanupErr != nil {
			return nil, errors.Join(err, fmt.Errorf("cleanup failed: %w", cleanupErr))
		}
		return nil, err
	}

	if previousURL != nil && *previousURL != imageURL {
		// Old image is orphaned otherwise; failure here is not fatal.
		_ = s.storageService.DeleteFile(ctx, *previousURL)
	}

	return updated, nil
}

func buildObjectName(original string) string {
	sanitized := utils.SanitizeFileName(original)
	ext := strings.ToLower(filepath.Ext(sanitized))
	if ext == "" {
		ext = ".bin"
	}
	base := strings.TrimSuffix(sanitized, filepath.Ext(sanitized))
	if base == "" || base == "file" {
		return uuid.NewString() + ext
	}
	return fmt.Sprintf("%s-%s%s", base, uuid.NewString(), ext)
}
