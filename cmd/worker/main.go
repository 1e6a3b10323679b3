package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/wanderlust/config"
	"github.com/Domenick1991/wanderlust/internal/email"
	"github.com/Domenick1991/wanderlust/internal/kafka"
	"github.com/Domenick1991/wanderlust/internal/repository"
	"github.com/Domenick1991/wanderlust/internal/service/listings"
	"github.com/Domenick1991/wanderlust/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
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

	workerLog, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer workerLog.Sync()
	logger.SetGlobal(workerLog)
	workerLog = workerLog.Named("worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		workerLog.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	listingService := listings.NewListingService(repository.NewListingRepository(pool), repository.NewReviewRepository(pool), nil, workerLog)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender(userRepo, workerLog)

	go func() {
		err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			event, err := kafka.DecodeBookingEvent(msg.Value)
			if err != nil {
				workerLog.Error("decode booking event", zap.Int64("offset", msg.Offset), zap.Error(err))
				return nil
			}
			return emailSender.Send(ctx, event)
		})
		if err != nil {
			workerLog.Error("consumer stopped", zap.Error(err))
			stop()
		}
	}()

	repairTicker := time.NewTicker(time.Duration(cfg.Worker.ImageRepairMinutes) * time.Minute)
	defer repairTicker.Stop()

	workerLog.Info("worker started", zap.String("topic", cfg.Kafka.NotificationsTopic))
	for {
		select {
		case <-repairTicker.C:
			if _, err := listingService.RepairImageURLs(ctx); err != nil {
				workerLog.Error("repair image urls", zap.Error(err))
			}
		case <-ctx.Done():
			workerLog.Info("shutting down")
			return
		}
	}
}
