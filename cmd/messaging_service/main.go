package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"skill_exchange_service/internal/messaging/app"
	"skill_exchange_service/internal/messaging/repository"
	"skill_exchange_service/internal/messaging/router"
	"skill_exchange_service/pkg/config"
	"skill_exchange_service/pkg/database"
	"skill_exchange_service/pkg/logger"

	_ "skill_exchange_service/cmd/messaging_service/docs" // generated swagger docs

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

// swag init -g internal/messaging/router/router.go -o ./cmd/messaging_service/docs
func main() {
	logger.Log = logger.Initialize(config.EnvConfig.MessagingService, config.EnvConfig.MessagingServiceLogPath)
	cfg := config.LoadConfig[config.Messaging](config.EnvConfig.MessagingService, config.EnvConfig.MessagingServiceYAMLPath)

	// Mongo holds the durable message log
	ctx := context.Background()
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.Mongo.User, cfg.Mongo.Password, cfg.Mongo.Host, cfg.Mongo.Port)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    uri,
			RetryCount:    cfg.Mongo.RetryCount,
			RetryInterval: time.Duration(cfg.Mongo.RetryInterval),
		},
		cfg.Mongo.Database)
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to mongoDB database after retries",
			zap.String("address", fmt.Sprintf("[%s]", uri)),
			zap.Error(err),
		)
	}
	defer mongo.Close(ctx)

	// Redis carries the pub/sub fan-out and the latest-message summaries
	masterName, sentinel := config.GetRedisSetting()
	redisClient, err := database.NewRedisClient(masterName, sentinel, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}

	// Postgres member table backs the contact directory
	pgURI := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.Database)
	pgPool, err := database.NewDatabaseConnection(database.Connection{
		ConnectStr:    pgURI,
		RetryCount:    cfg.Postgres.RetryCount,
		RetryInterval: time.Duration(cfg.Postgres.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect postgres err : %v", err))
	}
	defer pgPool.Close()

	// Kafka event feed is optional: messaging runs without the downstream
	// notification pipeline
	var feed repository.EventFeed
	if len(cfg.Kafka.Brokers) > 0 {
		writer, err := database.NewKafkaWriterWithRetry(database.KafkaConnection{
			Brokers:       cfg.Kafka.Brokers,
			Topic:         cfg.Kafka.Topic,
			RetryCount:    cfg.Kafka.RetryCount,
			RetryInterval: time.Duration(cfg.Kafka.RetryInterval),
		})
		if err != nil {
			logger.Log.Warn(fmt.Sprintf("kafka unavailable, event feed disabled : %v", err))
		} else {
			defer writer.Close()
			feed = repository.NewKafkaEventFeed(writer)
		}
	}

	// repositories
	msgStore := repository.NewMongoMessageStore(mongo.Database)
	bus := repository.NewRedisPubSub(redisClient)
	summaries := repository.NewRedisSummaryStore(redisClient)
	contacts := repository.NewContactDirectory(pgPool)

	// messaging core
	presence := app.NewPresenceTracker(bus)
	registry := app.NewConnectionRegistry(presence.OnTransition)
	rooms := app.NewRoomManager()
	typing := app.NewTypingCoordinator(bus, cfg.TypingTTL)
	relay := app.NewMessageRelay(msgStore, bus, summaries, feed)

	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.MessagingServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(r,
		app.NewMessagingWebsocketHandler(registry, presence, rooms, typing, relay, bus),
		app.NewHTTPHandler(msgStore, contacts, summaries, presence),
	)

	port := ":" + cfg.Port
	log.Printf("Messaging Service listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}
