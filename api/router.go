package api

import (
	"net/http"

	"github.com/Domenick1991/wanderlust/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Handlers groups the route handlers mounted under /api.
type Handlers struct {
	Bot      *BotHandler
	Bookings *BookingHandler
	Chats    *ChatHandler
	Listings *ListingHandler
	Users    *UserHandler
}

func NewRouter(h Handlers, tokens TokenParser, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), Authenticate(tokens))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Page not found"})
	})

	group := router.Group("/api")
	h.Bot.Register(group.Group("/bot"))
	h.Bookings.Register(group.Group("/bookings"))
	h.Chats.Register(group.Group("/chats"))
	h.Listings.Register(group.Group("/listings"))
	h.Users.Register(group.Group("/auth"))
	return router
}
