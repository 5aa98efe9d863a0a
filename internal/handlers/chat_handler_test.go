package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/peakform/AthleteHubBack/internal/models"
	"github.com/peakform/AthleteHubBack/internal/services"
	chatws "github.com/peakform/AthleteHubBack/internal/websocket"
	"github.com/peakform/AthleteHubBack/pkg/utils"
)

type stubChatService struct {
	channelsResult []models.ChannelSummary
	channelsErr    error
	messagesResult []models.ChatMessage
	messagesTotal  int
	messagesErr    error
	sendResult     *services.ChatDelivery
	sendErr        error
	directResult   *models.Channel
	directErr      error
	searchResult   []models.ChatUser
	searchErr      error
	lockedResult   bool
	lastActorID    int64
	lastRole       string
	lastChannelID  int64
	lastPage       int
	lastLimit      int
	lastContent    string
	lastOtherUser  int64
	lastTerm       string
	lastLockState  *bool
}

func (s *stubChatService) ListChannels(_ context.Context, actorID int64) ([]models.ChannelSummary, error) {
	s.lastActorID = actorID
	return s.channelsResult, s.channelsErr
}

func (s *stubChatService) ListMessages(_ context.Context, actorID int64, channelID int64, page int, limit int) ([]models.ChatMessage, int, error) {
	s.lastActorID = actorID
	s.lastChannelID = channelID
	s.lastPage = page
	s.lastLimit = limit
	return s.messagesResult, s.messagesTotal, s.messagesErr
}

func (s *stubChatService) SendMessage(_ context.Context, actorID int64, role string, channelID int64, content string) (*services.ChatDelivery, error) {
	s.lastActorID = actorID
	s.lastRole = role
	s.lastChannelID = channelID
	s.lastContent = content
	return s.sendResult, s.sendErr
}

func (s *stubChatService) CreateDirectChannel(_ context.Context, actorID int64, otherUserID int64) (*models.Channel, error) {
	s.lastActorID = actorID
	s.lastOtherUser = otherUserID
	return s.directResult, s.directErr
}

func (s *stubChatService) SearchUsers(_ context.Context, actorID int64, term string) ([]models.ChatUser, error) {
	s.lastActorID = actorID
	s.lastTerm = term
	return s.searchResult, s.searchErr
}

func (s *stubChatService) GeneralStatus(_ context.Context) (bool, error) {
	return s.lockedResult, nil
}

func (s *stubChatService) SetGeneralLock(_ context.Context, locked bool) error {
	s.lastLockState = &locked
	return nil
}

type stubRevocationStore struct {
	revoked     bool
	err         error
	lastTokenID string
}

func (s *stubRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.lastTokenID = tokenID
	return s.revoked, s.err
}

func newChatTestApp(service *stubChatService, role string) (*fiber.App, *ChatHandler) {
	handler := NewChatHandler(service, chatws.NewHub(), "secret", &stubRevocationStore{})
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", "42")
		return c.Next()
	})
	return app, handler
}

func TestListChannelsReturnsSummaries(t *testing.T) {
	name := "general"
	service := &stubChatService{
		channelsResult: []models.ChannelSummary{
			{
				Channel: models.Channel{ID: 1, Type: models.ChannelGroup, Name: &name, Locked: true},
				LastMessage: &models.ChatMessage{
					ID:        3,
					ChannelID: 1,
					SenderID:  8,
					Content:   "Session at six",
					CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
				},
			},
		},
	}
	app, handler := newChatTestApp(service, models.RoleAthlete)
	app.Get("/api/v1/chat/channels", handler.ListChannels)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/channels", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastActorID != 42 {
		t.Fatalf("expected actor id 42, got %d", service.lastActorID)
	}

	var body struct {
		Channels []models.ChannelSummary `json:"channels"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body.Channels) != 1 || !body.Channels[0].Locked {
		t.Fatalf("unexpected response: %+v", body.Channels)
	}
}

func TestGetMessagesReturnsPagination(t *testing.T) {
	service := &stubChatService{
		messagesResult: []models.ChatMessage{
			{ID: 5, ChannelID: 11, SenderID: 7, Content: "Hi", CreatedAt: time.Now().UTC()},
		},
		messagesTotal: 12,
	}
	app, handler := newChatTestApp(service, models.RoleAthlete)
	app.Get("/api/v1/chat/messages/:channelId", handler.GetMessages)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/messages/11?page=2&limit=5", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastChannelID != 11 || service.lastPage != 2 || service.lastLimit != 5 {
		t.Fatalf("unexpected forwarded pagination: channel=%d page=%d limit=%d", service.lastChannelID, service.lastPage, service.lastLimit)
	}

	var body struct {
		Messages   []models.ChatMessage  `json:"messages"`
		Pagination models.PaginationMeta `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body.Messages) != 1 || body.Pagination.Total != 12 || body.Pagination.TotalPages != 3 {
		t.Fatalf("unexpected response body: %+v %+v", body.Messages, body.Pagination)
	}
}

func TestGetMessagesReturnsNotFound(t *testing.T) {
	service := &stubChatService{messagesErr: pgx.ErrNoRows}
	app, handler := newChatTestApp(service, models.RoleAthlete)
	app.Get("/api/v1/chat/messages/:channelId", handler.GetMessages)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/messages/99", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestSendMessageRejectsLockedChannel(t *testing.T) {
	service := &stubChatService{sendErr: services.ErrChannelLocked}
	app, handler := newChatTestApp(service, models.RoleAthlete)
	app.Post("/api/v1/chat/messages", handler.SendMessage)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", strings.NewReader(`{"channel_id":1,"content":"hello"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestSendMessageReturnsStoredMessage(t *testing.T) {
	service := &stubChatService{
		sendResult: &services.ChatDelivery{
			Channel: &models.Channel{ID: 11, Type: models.ChannelDirect},
			Message: &models.ChatMessage{ID: 4, ChannelID: 11, SenderID: 42, Content: "hello"},
		},
	}
	app, handler := newChatTestApp(service, models.RoleAthlete)
	app.Post("/api/v1/chat/messages", handler.SendMessage)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", strings.NewReader(`{"channel_id":11,"content":"hello"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastChannelID != 11 || service.lastContent != "hello" {
		t.Fatalf("unexpected forwarded message: channel=%d content=%q", service.lastChannelID, service.lastContent)
	}
}

func TestCreateDirectChannelForwardsUserID(t *testing.T) {
	service := &stubChatService{
		directResult: &models.Channel{ID: 9, Type: models.ChannelDirect},
	}
	app, handler := newChatTestApp(service, models.RoleAthlete)
	app.Post("/api/v1/chat/dm-channel", handler.CreateDirectChannel)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/dm-channel", strings.NewReader(`{"user_id":7}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastOtherUser != 7 {
		t.Fatalf("expected other user 7, got %d", service.lastOtherUser)
	}
}

func TestSearchUsersRejectsShortTerm(t *testing.T) {
	service := &stubChatService{searchErr: services.ErrInvalidInput}
	app, handler := newChatTestApp(service, models.RoleAthlete)
	app.Get("/api/v1/chat/search-users", handler.SearchUsers)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/search-users?q=a", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestLockGeneralSetsLock(t *testing.T) {
	service := &stubChatService{}
	app, handler := newChatTestApp(service, models.RoleAdmin)
	app.Post("/api/v1/chat/general/lock", handler.LockGeneral)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/general/lock", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastLockState == nil || !*service.lastLockState {
		t.Fatalf("expected lock to be set, got %+v", service.lastLockState)
	}
}

func newWebSocketAuthApp(revocations *stubRevocationStore) *fiber.App {
	handler := NewChatHandler(&stubChatService{}, chatws.NewHub(), "secret", revocations)
	app := fiber.New()
	app.Use("/api/v1/ws", handler.WebSocketAuth)
	app.Get("/api/v1/ws", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func TestWebSocketAuthRejectsRevokedToken(t *testing.T) {
	token, err := utils.GenerateToken("42", models.RoleAthlete, "secret")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	revocations := &stubRevocationStore{revoked: true}
	app := newWebSocketAuthApp(revocations)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws?token="+token, nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for signed-out token, got %d", resp.StatusCode)
	}
	if revocations.lastTokenID == "" {
		t.Fatalf("expected revocation store to be consulted with the token id")
	}
}

func TestWebSocketAuthAcceptsActiveToken(t *testing.T) {
	token, err := utils.GenerateToken("42", models.RoleAthlete, "secret")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	app := newWebSocketAuthApp(&stubRevocationStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws?token="+token, nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for active token, got %d", resp.StatusCode)
	}
}
