package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/Domenick1991/wanderlust/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	botService := &MockBotUseCase{}
	bookingService := &MockBookingUseCase{}
	tokens := &MockTokenParser{}
	tokens.On("Parse", "good").Return(customer, nil)

	router := NewRouter(Handlers{
		Bot:      NewBotHandler(botService, placeholder),
		Bookings: NewBookingHandler(bookingService),
		Chats:    NewChatHandler(&MockChatUseCase{}),
		Listings: NewListingHandler(&MockListingUseCase{}, &MockReviewUseCase{}),
		Users:    NewUserHandler(&MockUserUseCase{}),
	}, tokens, logger.NewNop())

	// Тест 1: сброс диалога без авторизации
	botService.On("Reset", mock.Anything, "").Return("fresh", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/bot/reset", strings.NewReader("{}")))
	assert.Equal(t, http.StatusOK, w.Code)

	// Тест 2: статический путь и параметр на одном уровне
	bookingService.On("MyBookings", mock.Anything, customer).Return([]domain.Booking{}, nil)

	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/bookings/mine", nil)
	req.Header.Set("Authorization", "Bearer good")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	// Тест 3: неизвестный маршрут
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	bookingService.AssertExpectations(t)
}
