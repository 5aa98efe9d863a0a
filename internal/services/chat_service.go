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

const userSearchLimit = 20

type channelLocker interface {
	Lock(ctx context.Context, channelID int64) error
	Unlock(ctx context.Context, channelID int64) error
	IsLocked(ctx context.Context, channelID int64) (bool, error)
}

type ChatService struct {
	channelRepo *repository.ChannelRepository
	messageRepo *repository.MessageRepository
	userRepo    *repository.UserRepository
	locks       channelLocker
}

// ChatDelivery carries everything the websocket hub needs to push a freshly
// stored message to connected clients.
type ChatDelivery struct {
	Channel   *models.Channel
	Message   *models.ChatMessage
	MemberIDs []int64
}

func NewChatService(
	channelRepo *repository.ChannelRepository,
	messageRepo *repository.MessageRepository,
	userRepo *repository.UserRepository,
	locks channelLocker,
) *ChatService {
	return &ChatService{
		channelRepo: channelRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		locks:       locks,
	}
}

func (s *ChatService) ListChannels(ctx context.Context, actorID int64) ([]models.ChannelSummary, error) {
	summaries, err := s.channelRepo.ListForUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	for i := range summaries {
		if summaries[i].Type != models.ChannelGroup {
			continue
		}
		locked, err := s.locks.IsLocked(ctx, summaries[i].ID)
		if err != nil {
			return nil, err
		}
		summaries[i].Locked = locked
	}
	return summaries, nil
}

func (s *ChatService) ListMessages(
	ctx context.Context,
	actorID int64,
	channelID int64,
	page int,
	limit int,
) ([]models.ChatMessage, int, error) {
	if channelID <= 0 || page <= 0 || limit <= 0 {
		return nil, 0, ErrInvalidInput
	}

	if _, err := s.channelRepo.GetByID(ctx, channelID); err != nil {
		return nil, 0, err
	}
	member, err := s.channelRepo.IsMember(ctx, channelID, actorID)
	if err != nil {
		return nil, 0, err
	}
	if !member {
		return nil, 0, ErrForbidden
	}

	return s.messageRepo.ListByChannel(ctx, channelID, limit, (page-1)*limit)
}

// SendMessage stores a message after the lock and membership gates pass.
// Admins may post to a locked channel; everyone else is rejected.
func (s *ChatService) SendMessage(
	ctx context.Context,
	actorID int64,
	role string,
	channelID int64,
	content string,
) (*ChatDelivery, error) {
	if channelID <= 0 {
		return nil, ErrInvalidInput
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrInvalidInput
	}

	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	member, err := s.channelRepo.IsMember(ctx, channelID, actorID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrForbidden
	}

	if channel.Type == models.ChannelGroup && role != models.RoleAdmin {
		locked, err := s.locks.IsLocked(ctx, channelID)
		if err != nil {
			return nil, err
		}
		if locked {
			return nil, ErrChannelLocked
		}
	}

	message, err := s.messageRepo.Create(ctx, channelID, actorID, trimmed)
	if err != nil {
		return nil, err
	}

	var memberIDs []int64
	if channel.Type == models.ChannelDirect {
		memberIDs, err = s.channelRepo.MemberIDs(ctx, channelID)
		if err != nil {
			return nil, err
		}
	}

	return &ChatDelivery{
		Channel:   channel,
		Message:   message,
		MemberIDs: memberIDs,
	}, nil
}

func (s *ChatService) CreateDirectChannel(
	ctx context.Context,
	actorID int64,
	otherUserID int64,
) (*models.Channel, error) {
	if otherUserID <= 0 || otherUserID == actorID {
		return nil, ErrInvalidInput
	}

	if _, err := s.userRepo.GetByID(ctx, otherUserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}

	return s.channelRepo.GetOrCreateDirect(ctx, actorID, otherUserID)
}

func (s *ChatService) SearchUsers(ctx context.Context, actorID int64, term string) ([]models.ChatUser, error) {
	trimmed := strings.TrimSpace(term)
	if len(trimmed) < 2 {
		return nil, ErrInvalidInput
	}
	return s.userRepo.SearchUsers(ctx, trimmed, actorID, userSearchLimit)
}

func (s *ChatService) GeneralStatus(ctx context.Context) (bool, error) {
	general, err := s.channelRepo.GetGeneral(ctx)
	if err != nil {
		return false, err
	}
	return s.locks.IsLocked(ctx, general.ID)
}

func (s *ChatService) SetGeneralLock(ctx context.Context, locked bool) error {
	general, err := s.channelRepo.GetGeneral(ctx)
	if err != nil {
		return err
	}
	if locked {
		return s.locks.Lock(ctx, general.ID)
	}
	return s.locks.Unlock(ctx, general.ID)
}

func FormatChatTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339)
}
