package api

import (
	"net/http"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/Domenick1991/wanderlust/internal/service/bot"
	"github.com/gin-gonic/gin"
)

const (
	defaultTitle    = "Untitled Property"
	defaultLocation = "Location not specified"
	defaultCountry  = "Country not specified"
	defaultOwner    = "Host"
)

type BotHandler struct {
	service          bot.BotUseCase
	placeholderImage string
}

type botChatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type botResetRequest struct {
	SessionID string `json:"sessionId"`
}

type recommendation struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Country  string `json:"country"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
	Owner    string `json:"owner"`
}

type botChatResponse struct {
	Success         bool                       `json:"success"`
	SessionID       string                     `json:"sessionId"`
	BotMessage      string                     `json:"botMessage"`
	Recommendations []recommendation           `json:"recommendations"`
	Context         domain.ConversationContext `json:"context"`
}

type botHistoryResponse struct {
	Success  bool                       `json:"success"`
	Messages []domain.BotMessage        `json:"messages"`
	Context  domain.ConversationContext `json:"context"`
}

func NewBotHandler(service bot.BotUseCase, placeholderImage string) *BotHandler {
	return &BotHandler{service: service, placeholderImage: placeholderImage}
}

func (h *BotHandler) Register(router *gin.RouterGroup) {
	router.POST("/chat", h.chat)
	router.GET("/history/:sessionId", h.history)
	router.POST("/reset", h.reset)
}

// chat godoc
// @Summary  Send a message to the recommendation bot
// @Tags     bot
// @Accept   json
// @Produce  json
// @Param    request body botChatRequest true "message"
// @Success  200 {object} botChatResponse
// @Router   /api/bot/chat [post]
func (h *BotHandler) chat(c *gin.Context) {
	var req botChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Please provide a valid message.")
		return
	}

	reply, err := h.service.Chat(c.Request.Context(), bot.ChatInput{
		SessionID: req.SessionID,
		Message:   req.Message,
		Identity:  identity(c),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	recs := make([]recommendation, 0, len(reply.Recommendations))
	for _, l := range reply.Recommendations {
		recs = append(recs, h.toRecommendation(l))
	}
	c.JSON(http.StatusOK, botChatResponse{
		Success:         true,
		SessionID:       reply.SessionID,
		BotMessage:      reply.BotMessage,
		Recommendations: recs,
		Context:         reply.Context,
	})
}

func (h *BotHandler) history(c *gin.Context) {
	conv, err := h.service.History(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, botHistoryResponse{
		Success:  true,
		Messages: conv.Messages,
		Context:  conv.Context,
	})
}

func (h *BotHandler) reset(c *gin.Context) {
	var req botResetRequest
	// an empty body resets nothing and still yields a new session
	_ = c.ShouldBindJSON(&req)

	sessionID, err := h.service.Reset(c.Request.Context(), req.SessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"sessionId": sessionID,
		"message":   "Conversation reset successfully",
	})
}

func (h *BotHandler) toRecommendation(l domain.Listing) recommendation {
	return recommendation{
		ID:       l.ID,
		Title:    orDefault(l.Title, defaultTitle),
		Location: orDefault(l.Location, defaultLocation),
		Country:  orDefault(l.Country, defaultCountry),
		Price:    l.Price,
		Image:    orDefault(l.ImageURL, h.placeholderImage),
		Owner:    orDefault(l.OwnerUsername, defaultOwner),
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
