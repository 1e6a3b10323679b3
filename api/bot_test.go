package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/Domenick1991/wanderlust/internal/service/bot"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBotUseCase struct {
	mock.Mock
}

func (m *MockBotUseCase) Chat(ctx context.Context, input bot.ChatInput) (*bot.ChatReply, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bot.ChatReply), args.Error(1)
}

func (m *MockBotUseCase) History(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockBotUseCase) Reset(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

const placeholder = "https://img.example/placeholder.jpg"

func TestBotHandler_chat(t *testing.T) {
	mockService := &MockBotUseCase{}
	handler := NewBotHandler(mockService, placeholder)

	c, w := newTestContext("POST", "/api/bot/chat", gin.H{"sessionId": "s-1", "message": "2 people"}, nil)

	ceiling := int64(5000)
	reply := &bot.ChatReply{
		SessionID:  "s-1",
		Intent:     bot.IntentGuests,
		BotMessage: "Perfect!",
		Recommendations: []domain.Listing{
			{ID: 1, Title: "Beach hut", Location: "Goa", Country: "India", Price: 2500, ImageURL: "https://img.example/1.jpg", OwnerUsername: "host"},
			{ID: 2, Price: 900},
		},
		Context: domain.ConversationContext{Step: domain.StepReady, Location: "Goa", MaxPrice: &ceiling, Guests: 2},
	}
	mockService.On("Chat", c.Request.Context(), bot.ChatInput{SessionID: "s-1", Message: "2 people"}).Return(reply, nil)

	handler.chat(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response botChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, "s-1", response.SessionID)
	assert.Equal(t, domain.StepReady, response.Context.Step)
	require.Len(t, response.Recommendations, 2)
	assert.Equal(t, "host", response.Recommendations[0].Owner)

	fallback := response.Recommendations[1]
	assert.Equal(t, "Untitled Property", fallback.Title)
	assert.Equal(t, "Location not specified", fallback.Location)
	assert.Equal(t, "Country not specified", fallback.Country)
	assert.Equal(t, placeholder, fallback.Image)
	assert.Equal(t, "Host", fallback.Owner)

	mockService.AssertExpectations(t)
}

func TestBotHandler_chat_PassesIdentity(t *testing.T) {
	mockService := &MockBotUseCase{}
	handler := NewBotHandler(mockService, placeholder)

	c, w := newTestContext("POST", "/api/bot/chat", gin.H{"message": "Hi"}, customer)

	mockService.On("Chat", c.Request.Context(), bot.ChatInput{Message: "Hi", Identity: customer}).
		Return(&bot.ChatReply{SessionID: "new", Context: domain.ConversationContext{Step: domain.StepGatheringInfo}}, nil)

	handler.chat(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"recommendations":[]`)
	mockService.AssertExpectations(t)
}

func TestBotHandler_chat_EmptyMessage(t *testing.T) {
	mockService := &MockBotUseCase{}
	handler := NewBotHandler(mockService, placeholder)

	c, w := newTestContext("POST", "/api/bot/chat", gin.H{"message": "  "}, nil)

	mockService.On("Chat", c.Request.Context(), mock.Anything).
		Return(nil, fmt.Errorf("%w: please provide a valid message.", domain.ErrValidation))

	handler.chat(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Please provide a valid message."}`, w.Body.String())
}

func TestBotHandler_chat_StoreFailure(t *testing.T) {
	mockService := &MockBotUseCase{}
	handler := NewBotHandler(mockService, placeholder)

	c, w := newTestContext("POST", "/api/bot/chat", gin.H{"message": "Hi"}, nil)

	mockService.On("Chat", c.Request.Context(), mock.Anything).
		Return(nil, fmt.Errorf("%w: save conversation: %w", domain.ErrTransientStore, errors.New("redis down")))

	handler.chat(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "redis")
}

func TestBotHandler_history(t *testing.T) {
	mockService := &MockBotUseCase{}
	handler := NewBotHandler(mockService, placeholder)

	c, w := newTestContext("GET", "/api/bot/history/unknown", nil, nil)
	c.Params = gin.Params{{Key: "sessionId", Value: "unknown"}}

	mockService.On("History", c.Request.Context(), "unknown").
		Return(domain.NewConversation("unknown", nil, time.Now()), nil)

	handler.history(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"messages":[],"context":{"step":"greeting"}}`, w.Body.String())
}

func TestBotHandler_reset(t *testing.T) {
	mockService := &MockBotUseCase{}
	handler := NewBotHandler(mockService, placeholder)

	// Тест 1: с идентификатором сессии
	c, w := newTestContext("POST", "/api/bot/reset", gin.H{"sessionId": "old"}, nil)
	mockService.On("Reset", c.Request.Context(), "old").Return("fresh", nil)

	handler.reset(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sessionId":"fresh"`)

	// Тест 2: без тела запроса
	c, w = newTestContext("POST", "/api/bot/reset", nil, nil)
	mockService.On("Reset", c.Request.Context(), "").Return("fresh-2", nil)

	handler.reset(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sessionId":"fresh-2"`)
}
