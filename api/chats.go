package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/Domenick1991/wanderlust/internal/service/chat"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service chat.ChatUseCase
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

type messageSender struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type chatMessageResponse struct {
	ID        int64         `json:"id"`
	Sender    messageSender `json:"sender"`
	Content   string        `json:"content"`
	Timestamp string        `json:"timestamp"`
	IsRead    bool          `json:"isRead"`
}

type chatResponse struct {
	ID                 int64                 `json:"id"`
	Booking            bookingResponse       `json:"booking"`
	OtherParticipantID int64                 `json:"otherParticipantId"`
	Messages           []chatMessageResponse `json:"messages"`
	LastMessageAt      string                `json:"lastMessageAt"`
}

func NewChatHandler(service chat.ChatUseCase) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) Register(router *gin.RouterGroup) {
	router.GET("/booking/:bookingId", h.get)
	router.POST("/booking/:bookingId/message", h.send)
	router.GET("/unread-count", h.unread)
}

func toMessageResponse(m *domain.ChatMessage) chatMessageResponse {
	return chatMessageResponse{
		ID:        m.ID,
		Sender:    messageSender{ID: m.SenderID, Username: m.SenderUsername},
		Content:   m.Content,
		Timestamp: m.Timestamp.Format(time.RFC3339),
		IsRead:    m.IsRead,
	}
}

func (h *ChatHandler) get(c *gin.Context) {
	bookingID, ok := parseID(c, "bookingId")
	if !ok {
		return
	}
	view, err := h.service.GetChat(c.Request.Context(), identity(c), bookingID)
	if err != nil {
		writeError(c, err)
		return
	}

	messages := make([]chatMessageResponse, 0, len(view.Chat.Messages))
	for i := range view.Chat.Messages {
		messages = append(messages, toMessageResponse(&view.Chat.Messages[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"chat": chatResponse{
			ID:                 view.Chat.ID,
			Booking:            toBookingResponse(view.Booking),
			OtherParticipantID: view.OtherParticipantID,
			Messages:           messages,
			LastMessageAt:      view.Chat.LastMessageAt.Format(time.RFC3339),
		},
	})
}

// send godoc
// @Summary  Send a message in a booking chat
// @Tags     chats
// @Accept   json
// @Produce  json
// @Param    bookingId path int true "booking id"
// @Param    request body sendMessageRequest true "message"
// @Security BearerAuth
// @Router   /api/chats/booking/{bookingId}/message [post]
func (h *ChatHandler) send(c *gin.Context) {
	bookingID, ok := parseID(c, "bookingId")
	if !ok {
		return
	}
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Message cannot be empty")
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), identity(c), bookingID, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": toMessageResponse(msg)})
}

func (h *ChatHandler) unread(c *gin.Context) {
	count, err := h.service.UnreadCount(c.Request.Context(), identity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "unreadCount": count})
}
