package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/peakform/AthleteHubBack/internal/models"
	"github.com/peakform/AthleteHubBack/internal/repository"
	"github.com/peakform/AthleteHubBack/pkg/utils"
)

var allowedMoods = map[string]struct{}{
	"great":    {},
	"good":     {},
	"okay":     {},
	"tired":    {},
	"stressed": {},
}

type JournalService struct {
	journalRepo    *repository.JournalRepository
	storageService StorageService
}

func NewJournalService(journalRepo *repository.JournalRepository, storageService StorageService) *JournalService {
	return &JournalService{
		journalRepo:    journalRepo,
		storageService: storageService,
	}
}

type CreateEntryInput struct {
	Title   string
	Content string
	Mood    *string
	Tags    *[]string
}

func (s *JournalService) CreateEntry(
	ctx context.Context,
	userID int64,
	input CreateEntryInput,
) (*models.JournalEntry, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" || content == "" {
		return nil, ErrInvalidInput
	}
	if input.Mood != nil {
		if _, ok := allowedMoods[strings.TrimSpace(*input.Mood)]; !ok {
			return nil, ErrInvalidInput
		}
	}
	if input.Tags != nil {
		for _, tag := range *input.Tags {
			if strings.TrimSpace(tag) == "" {
				return nil, ErrInvalidInput
			}
		}
	}

	return s.journalRepo.Create(ctx, repository.CreateJournalEntryInput{
		UserID:  userID,
		Title:   title,
		Content: content,
		Mood:    input.Mood,
		Tags:    input.Tags,
	})
}

func (s *JournalService) ListEntries(ctx context.Context, userID int64) ([]models.JournalEntry, error) {
	return s.journalRepo.ListByUserID(ctx, userID)
}

func (s *JournalService) GetEntry(ctx context.Context, userID, entryID int64) (*models.JournalEntry, error) {
	if entryID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.journalRepo.GetByIDForUser(ctx, entryID, userID)
}

func (s *JournalService) DeleteEntry(ctx context.Context, userID, entryID int64) error {
	if entryID <= 0 {
		return ErrInvalidInput
	}

	entry, err := s.journalRepo.GetByIDForUser(ctx, entryID, userID)
	if err != nil {
		return err
	}

	if err := s.journalRepo.DeleteForUser(ctx, entryID, userID); err != nil {
		return err
	}

	if s.storageService != nil {
		for _, media := range entry.Media {
			// Stored objects are orphaned otherwise; deletion failures are
			// logged by the storage backend, not surfaced to the athlete.
			_ = s.storageService.DeleteFile(ctx, media.URL)
		}
	}
	return nil
}

// AttachMedia uploads one file and links it to the entry. The upload happens
// first; if the DB insert fails the object is deleted again.
func (s *JournalService) AttachMedia(
	ctx context.Context,
	userID int64,
	entryID int64,
	file multipart.File,
	filename string,
	mediaType string,
) (*models.JournalMedia, error) {
	if s.storageService == nil {
		return nil, ErrStorageUnavailable
	}
	if entryID <= 0 || file == nil {
		return nil, ErrInvalidInput
	}
	mediaType = strings.TrimSpace(mediaType)
	if mediaType != "image" && mediaType != "video" {
		return nil, ErrInvalidInput
	}

	if _, err := s.journalRepo.GetByIDForUser(ctx, entryID, userID); err != nil {
		return nil, err
	}

	name := utils.SanitizeFileName(filename)
	objectName := buildObjectName(filename)
	url, err := s.storageService.UploadFile(ctx, file, objectName, "journal-media")
	if err != nil {
		return nil, err
	}

	media, err := s.journalRepo.AddMedia(ctx, entryID, url, mediaType, name)
	if err != nil {
		cleanupErr := s.storageService.DeleteFile(ctx, url)
		if cleanupErr != nil {
			return nil, errors.Join(err, fmt.Errorf("cleanup failed: %w", cleanupErr))
		}
		return nil, err
	}

	return media, nil
}
