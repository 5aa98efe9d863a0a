package handlers

import (
	"context"
	"errors"
	"strings"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/peakform/AthleteHubBack/internal/models"
	"github.com/peakform/AthleteHubBack/internal/services"
	chatws "github.com/peakform/AthleteHubBack/internal/websocket"
	"github.com/peakform/AthleteHubBack/pkg/utils"
)

type chatApplicationService interface {
	ListChannels(ctx context.Context, actorID int64) ([]models.ChannelSummary, error)
	ListMessages(ctx context.Context, actorID int64, channelID int64, page int, limit int) ([]models.ChatMessage, int, error)
	SendMessage(ctx context.Context, actorID int64, role string, channelID int64, content string) (*services.ChatDelivery, error)
	CreateDirectChannel(ctx context.Context, actorID int64, otherUserID int64) (*models.Channel, error)
	SearchUsers(ctx context.Context, actorID int64, term string) ([]models.ChatUser, error)
	GeneralStatus(ctx context.Context) (bool, error)
	SetGeneralLock(ctx context.Context, locked bool) error
}

type revocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type ChatHandler struct {
	service     chatApplicationService
	hub         *chatws.Hub
	jwtSecret   string
	revocations revocationChecker
}

type createDirectChannelRequest struct {
	UserID int64 `json:"user_id"`
}

type sendMessageRequest struct {
	ChannelID int64  `json:"channel_id"`
	Content   string `json:"content"`
}

func NewChatHandler(service chatApplicationService, hub *chatws.Hub, jwtSecret string, revocations revocationChecker) *ChatHandler {
	return &ChatHandler{
		service:     service,
		hub:         hub,
		jwtSecret:   jwtSecret,
		revocations: revocations,
	}
}

func (h *ChatHandler) ListChannels(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	channels, err := h.service.ListChannels(c.Context(), userID)
	if err != nil {
		return mapChatError(c, err)
	}

	return c.JSON(fiber.Map{"channels": channels})
}

func (h *ChatHandler) GetMessages(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	channelID, err := parseIDParam(c, "channelId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid channel id"})
	}

	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	messages, total, err := h.service.ListMessages(c.Context(), userID, channelID, page, limit)
	if err != nil {
		return mapChatError(c, err)
	}

	return c.JSON(fiber.Map{
		"messages":   messages,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ChannelID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid channel id"})
	}

	role, _ := currentRole(c)
	delivery, err := h.service.SendMessage(c.Context(), userID, role, req.ChannelID, req.Content)
	if err != nil {
		return mapChatError(c, err)
	}

	if h.hub != nil {
		h.hub.Publish(delivery)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": delivery.Message})
}

func (h *ChatHandler) CreateDirectChannel(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createDirectChannelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	channel, err := h.service.CreateDirectChannel(c.Context(), userID, req.UserID)
	if err != nil {
		return mapChatError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"channel": channel})
}

func (h *ChatHandler) SearchUsers(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	users, err := h.service.SearchUsers(c.Context(), userID, c.Query("q"))
	if err != nil {
		return mapChatError(c, err)
	}

	return c.JSON(fiber.Map{"users": users})
}

func (h *ChatHandler) GeneralStatus(c *fiber.Ctx) error {
	locked, err := h.service.GeneralStatus(c.Context())
	if err != nil {
		return mapChatError(c, err)
	}
	return c.JSON(fiber.Map{"locked": locked})
}

func (h *ChatHandler) LockGeneral(c *fiber.Ctx) error {
	if err := h.service.SetGeneralLock(c.Context(), true); err != nil {
		return mapChatError(c, err)
	}
	return c.JSON(fiber.Map{"locked": true})
}

func (h *ChatHandler) UnlockGeneral(c *fiber.Ctx) error {
	if err := h.service.SetGeneralLock(c.Context(), false); err != nil {
		return mapChatError(c, err)
	}
	return c.JSON(fiber.Map{"locked": false})
}

func (h *ChatHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	claims, err := h.parseWSClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	// Signed-out tokens must not keep a push channel open.
	if h.revocations != nil && claims.ID != "" {
		revoked, err := h.revocations.IsRevoked(c.Context(), claims.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to verify session"})
		}
		if revoked {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("role", claims.Role)
	return c.Next()
}

func (h *ChatHandler) HandleWebSocket(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	role, _ := conn.Locals("role").(string)
	client := chatws.NewClient(h.hub, conn, userID)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump(h.service, role)
}

func (h *ChatHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
	}

	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	return utils.ValidateToken(tokenString, h.jwtSecret)
}

func mapChatError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrChannelLocked):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Channel is locked"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Channel not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process chat request"})
	}
}
