package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/wanderlust/api"
	"github.com/Domenick1991/wanderlust/config"
	"github.com/Domenick1991/wanderlust/internal/auth"
	"github.com/Domenick1991/wanderlust/internal/bootstrap"
	"github.com/Domenick1991/wanderlust/internal/cache"
	"github.com/Domenick1991/wanderlust/internal/geocoding"
	"github.com/Domenick1991/wanderlust/internal/kafka"
	"github.com/Domenick1991/wanderlust/internal/repository"
	"github.com/Domenick1991/wanderlust/internal/service/booking"
	"github.com/Domenick1991/wanderlust/internal/service/bot"
	"github.com/Domenick1991/wanderlust/internal/service/chat"
	"github.com/Domenick1991/wanderlust/internal/service/listings"
	"github.com/Domenick1991/wanderlust/internal/service/reviews"
	"github.com/Domenick1991/wanderlust/internal/service/users"
	"github.com/Domenick1991/wanderlust/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer appLog.Sync()
	logger.SetGlobal(appLog)
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		appLog.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	redisClient := cache.NewRedisClient(cfg.Redis)
	defer redisClient.Close()
	conversations := cache.NewRedisConversationStore(redisClient, cfg.Bot.ConversationTTL())

	producer := kafka.NewProducer(cfg.Kafka.Brokers, appLog)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		appLog.Warn("kafka is unreachable, booking events will be dropped", zap.Error(err))
	}

	listingRepo := repository.NewListingRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	chatRepo := repository.NewChatRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())

	listingService := listings.NewListingService(listingRepo, reviewRepo, geocoding.NewClient(cfg.Geocoding), appLog)
	reviewService := reviews.NewReviewService(reviewRepo, listingRepo)
	userService := users.NewUserService(userRepo, tokens, appLog)
	bookingService := booking.NewBookingService(
		bookingRepo,
		listingRepo,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithLogger(appLog),
	)
	chatService := chat.NewChatService(chatRepo, bookingRepo, appLog)
	botService := bot.NewBotService(conversations, listingService,
		bot.WithRecommendationLimit(cfg.Bot.RecommendationLimit),
		bot.WithLogger(appLog),
	)

	router := api.NewRouter(api.Handlers{
		Bot:      api.NewBotHandler(botService, cfg.Bot.PlaceholderImage),
		Bookings: api.NewBookingHandler(bookingService),
		Chats:    api.NewChatHandler(chatService),
		Listings: api.NewListingHandler(listingService, reviewService),
		Users:    api.NewUserHandler(userService),
	}, tokens, appLog)

	if err := bootstrap.Run(ctx, cfg, router, appLog); err != nil {
		appLog.Fatal("server error", zap.Error(err))
	}
}

func newLogger(cfg config.LogConfig) (*logger.Logger, error) {
	if cfg.Development {
		return logger.NewDevelopment()
	}
	return logger.New(cfg.Level)
}
