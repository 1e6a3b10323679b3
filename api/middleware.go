package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/Domenick1991/wanderlust/pkg/logger"
	"github.com/Domenick1991/wanderlust/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	identityKey     = "identity"
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

type TokenParser interface {
	Parse(token string) (*domain.Identity, error)
}

// Authenticate attaches the bearer token's identity to the request. Requests
// without a token stay anonymous; a bad token is rejected.
func Authenticate(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(c, domain.ErrUnauthenticated)
			return
		}
		identity, err := tokens.Parse(token)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// identity returns the caller, or nil for an anonymous request.
func identity(c *gin.Context) *domain.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*domain.Identity)
	return id
}

// RequestLogger logs every request once it completes and records its metrics.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	log = logger.OrGlobal(log).Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordRequest(c.Request.Method, route, strconv.Itoa(status), duration.Seconds())

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
		}
		if id := identity(c); id != nil {
			fields = append(fields, zap.Int64("user_id", id.UserID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.Last().Error()))
		}

		switch {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
