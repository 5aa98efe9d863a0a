package chatws

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"sync"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/peakform/AthleteHubBack/internal/models"
	"github.com/peakform/AthleteHubBack/internal/services"
)

type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan *delivery
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

// trySend queues a payload without blocking. Returns false when the client is
// already closed or its buffer is full. Safe to call from any goroutine; the
// hub loop closes the channel through closeSend, never directly.
func (c *Client) trySend(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

type sender interface {
	SendMessage(
		ctx context.Context,
		actorID int64,
		role string,
		channelID int64,
		content string,
	) (*services.ChatDelivery, error)
}

type Message struct {
	Type       string `json:"type"`
	ChannelID  string `json:"channel_id,omitempty"`
	SenderID   string `json:"sender_id,omitempty"`
	SenderName string `json:"sender_name,omitempty"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"`
}

// delivery pairs an outgoing message with its audience. An empty memberIDs
// slice means every connected client receives it.
type delivery struct {
	message   *Message
	memberIDs []int64
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *delivery, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.userID]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				client.closeSend()
			}
			if len(set) == 0 {
				delete(h.clients, client.userID)
			}
		case d := <-h.broadcast:
			h.deliver(d)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Publish fans out a freshly stored chat message. Group messages go to every
// connected client; direct messages only reach the channel's two members.
func (h *Hub) Publish(d *services.ChatDelivery) {
	message := &Message{
		Type:       "message",
		ChannelID:  strconv.FormatInt(d.Message.ChannelID, 10),
		SenderID:   strconv.FormatInt(d.Message.SenderID, 10),
		SenderName: d.Message.SenderName,
		Content:    d.Message.Content,
		Timestamp:  services.FormatChatTimestamp(d.Message.CreatedAt),
	}

	var memberIDs []int64
	if d.Channel.Type == models.ChannelDirect {
		memberIDs = d.MemberIDs
	}

	h.broadcast <- &delivery{message: message, memberIDs: memberIDs}
}

func (h *Hub) deliver(d *delivery) {
	encoded, err := json.Marshal(d.message)
	if err != nil {
		log.Printf("chat hub encode message: %v", err)
		return
	}

	if len(d.memberIDs) == 0 {
		for userID := range h.clients {
			h.sendToUser(userID, encoded)
		}
		return
	}

	for _, memberID := range d.memberIDs {
		h.sendToUser(strconv.FormatInt(memberID, 10), encoded)
	}
}

func (h *Hub) sendToUser(userID string, payload []byte) {
	set, ok := h.clients[userID]
	if !ok {
		return
	}

	for client := range set {
		if !client.trySend(payload) {
			delete(set, client)
			client.closeSend()
		}
	}
	if len(set) == 0 {
		delete(h.clients, userID)
	}
}

func (c *Client) ReadPump(service sender, role string) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	actorID, err := strconv.ParseInt(c.userID, 10, 64)
	if err != nil {
		writeError(c, "invalid user")
		return
	}

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var incoming struct {
			Type      string `json:"type"`
			ChannelID string `json:"channel_id"`
			Content   string `json:"content"`
		}
		if err := json.Unmarshal(payload, &incoming); err != nil {
			writeError(c, "invalid message payload")
			continue
		}
		if incoming.Type != "message" {
			writeError(c, "unsupported message type")
			continue
		}

		channelID, err := strconv.ParseInt(incoming.ChannelID, 10, 64)
		if err != nil || channelID <= 0 {
			writeError(c, "invalid channel id")
			continue
		}

		d, err := service.SendMessage(
			context.Background(),
			actorID,
			role,
			channelID,
			incoming.Content,
		)
		if err != nil {
			writeError(c, "failed to send message")
			continue
		}

		c.hub.Publish(d)
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

func writeError(client *Client, message string) {
	payload, err := json.Marshal(Message{
		Type:      "error",
		Content:   message,
		Timestamp: services.FormatChatTimestamp(time.Now().UTC()),
	})
	if err != nil {
		return
	}
	if !client.trySend(payload) {
		client.hub.Unregister(client)
	}
}
