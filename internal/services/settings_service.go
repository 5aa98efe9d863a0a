package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/jackc/pgx/v5"
	"github.com/peakform/AthleteHubBack/internal/models"
	"github.com/peakform/AthleteHubBack/internal/repository"
)

type SettingsService struct {
	settingsRepo   *repository.SettingsRepository
	storageService StorageService
}

func NewSettingsService(settingsRepo *repository.SettingsRepository, storageService StorageService) *SettingsService {
	return &SettingsService{
		settingsRepo:   settingsRepo,
		storageService: storageService,
	}
}

// UploadLogo replaces the stored branding logo. Upload first, persist the
// URL second, delete the uploaded object if persisting fails.
func (s *SettingsService) UploadLogo(
	ctx context.Context,
	file multipart.File,
	filename string,
) (string, error) {
	if s.storageService == nil {
		return "", ErrStorageUnavailable
	}
	if file == nil {
		return "", ErrInvalidInput
	}

	previous, err := s.settingsRepo.Get(ctx, models.SettingLogoURL)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	objectName := buildObjectName(filename)
	logoURL, err := s.storageService.UploadFile(ctx, file, objectName, "branding")
	if err != nil {
		return "", err
	}

	if _, err := s.settingsRepo.Set(ctx, models.SettingLogoURL, logoURL); err != nil {
		cleanupErr := s.storageService.DeleteFile(ctx, logoURL)
		if cleanupErr != nil {
			return "", errors.Join(err, fmt.Errorf("cleanup failed: %w", cleanupErr))
		}
		return "", err
	}

	if previous != nil && previous.Value != logoURL {
		_ = s.storageService.DeleteFile(ctx, previous.Value)
	}

	return logoURL, nil
}

func (s *SettingsService) LogoURL(ctx context.Context) (string, error) {
	setting, err := s.settingsRepo.Get(ctx, models.SettingLogoURL)
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}
