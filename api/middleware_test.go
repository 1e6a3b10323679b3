package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/Domenick1991/wanderlust/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTokenParser struct {
	mock.Mock
}

func (m *MockTokenParser) Parse(token string) (*domain.Identity, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func newAuthRouter(tokens TokenParser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger(logger.NewNop()), Authenticate(tokens))
	router.GET("/whoami", func(c *gin.Context) {
		id := identity(c)
		if id == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, id.Username)
	})
	return router
}

func TestAuthenticate(t *testing.T) {
	tokens := &MockTokenParser{}
	tokens.On("Parse", "good").Return(&domain.Identity{UserID: 3, Username: "ana"}, nil)
	tokens.On("Parse", "bad").Return(nil, fmt.Errorf("%w: token is expired", domain.ErrUnauthenticated))
	router := newAuthRouter(tokens)

	testCases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"anonymous", "", http.StatusOK, "anonymous"},
		{"valid token", "Bearer good", http.StatusOK, "ana"},
		{"expired token", "Bearer bad", http.StatusUnauthorized, `{"success":false,"error":"Token is expired"}`},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, `{"success":false,"error":"Authentication required"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, tc.body, w.Body.String())
			} else {
				assert.JSONEq(t, tc.body, w.Body.String())
			}
			assert.NotEmpty(t, w.Header().Get(requestIDHeader))
		})
	}
}

func TestRequestLogger_KeepsRequestID(t *testing.T) {
	router := newAuthRouter(&MockTokenParser{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set(requestIDHeader, "req-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(requestIDHeader))
}

func TestWriteError_StatusByKind(t *testing.T) {
	testCases := []struct {
		err    error
		status int
		msg    string
	}{
		{fmt.Errorf("%w: title is required", domain.ErrValidation), http.StatusBadRequest, "Title is required"},
		{domain.ErrUnauthenticated, http.StatusUnauthorized, "Authentication required"},
		{fmt.Errorf("%w: you are not the owner of this listing", domain.ErrForbidden), http.StatusForbidden, "You are not the owner of this listing"},
		{fmt.Errorf("%w: listing not found", domain.ErrNotFound), http.StatusNotFound, "Listing not found"},
		{fmt.Errorf("%w: booking is already confirmed", domain.ErrConflict), http.StatusConflict, "Booking is already confirmed"},
		{fmt.Errorf("%w: load: %w", domain.ErrTransientStore, errors.New("dial tcp")), http.StatusServiceUnavailable, retryMessage},
		{errors.New("boom"), http.StatusInternalServerError, retryMessage},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			c, w := newTestContext("GET", "/", nil, nil)
			writeError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"success":false,"error":%q}`, tc.msg), w.Body.String())
		})
	}
}
