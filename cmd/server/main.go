package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/tastevin-app/tastevin/internal/common/clock"
	"github.com/tastevin-app/tastevin/internal/common/uuid"
	"github.com/tastevin-app/tastevin/internal/config"
	apiHandler "github.com/tastevin-app/tastevin/internal/handlers/http"
	"github.com/tastevin-app/tastevin/internal/queue"
	heartbeatRepo "github.com/tastevin-app/tastevin/internal/repositories/heartbeat"
	participantRepo "github.com/tastevin-app/tastevin/internal/repositories/participant"
	sessionRepo "github.com/tastevin-app/tastevin/internal/repositories/session"
	tastingRepo "github.com/tastevin-app/tastevin/internal/repositories/tasting"
	"github.com/tastevin-app/tastevin/internal/services/broadcast"
	livenessService "github.com/tastevin-app/tastevin/internal/services/liveness"
	sessionService "github.com/tastevin-app/tastevin/internal/services/session"
	tastingService "github.com/tastevin-app/tastevin/internal/services/tasting"
)

func main() {
	// Load .env when present; environment variables win
	_ = godotenv.Load()

	cfg := config.Load()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create session repository: %v", err)
	}

	participants, err := participantRepo.NewRedis(&participantRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create participant repository: %v", err)
	}

	tastings, err := tastingRepo.NewRedis(&tastingRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create tasting repository: %v", err)
	}

	heartbeats, err := heartbeatRepo.NewRedis(&heartbeatRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create heartbeat repository: %v", err)
	}

	// Initialize the broadcast coordinator, mirroring events to RabbitMQ
	// when a broker is configured
	var sink broadcast.Sink
	var queuePub *queue.Publisher
	if cfg.AMQPURL != "" {
		queuePub, err = queue.New(&queue.Config{
			URL:       cfg.AMQPURL,
			QueueName: cfg.QueueName,
		})
		if err != nil {
			log.Fatalf("Failed to create queue publisher: %v", err)
		}
		sink = queuePub
	}

	coordinator, err := broadcast.New(&broadcast.Config{
		Sink: sink,
	})
	if err != nil {
		log.Fatalf("Failed to create broadcast coordinator: %v", err)
	}

	systemClock := &clock.DefaultClock{}
	uuidGen := uuid.New()

	// Initialize services
	livenessSvc, err := livenessService.New(&livenessService.Config{
		SessionRepo:             sessions,
		ParticipantRepo:         participants,
		HeartbeatRepo:           heartbeats,
		Clock:                   systemClock,
		EventPublisher:          coordinator,
		UnresponsivenessTimeout: cfg.UnresponsivenessTimeout,
		ProlongedAbsenceTimeout: cfg.ProlongedAbsenceTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to create liveness service: %v", err)
	}

	sessionSvc, err := sessionService.New(&sessionService.Config{
		SessionRepo:     sessions,
		ParticipantRepo: participants,
		TastingRepo:     tastings,
		Clock:           systemClock,
		UUIDGenerator:   uuidGen,
		EventPublisher:  coordinator,
		Liveness:        livenessSvc,
	})
	if err != nil {
		log.Fatalf("Failed to create session service: %v", err)
	}

	tastingSvc, err := tastingService.New(&tastingService.Config{
		SessionRepo:     sessions,
		ParticipantRepo: participants,
		TastingRepo:     tastings,
		Clock:           systemClock,
		UUIDGenerator:   uuidGen,
		EventPublisher:  coordinator,
	})
	if err != nil {
		log.Fatalf("Failed to create tasting service: %v", err)
	}

	handler, err := apiHandler.New(&apiHandler.Config{
		SessionService:  sessionSvc,
		TastingService:  tastingSvc,
		LivenessService: livenessSvc,
		Broadcast:       coordinator,
	})
	if err != nil {
		log.Fatalf("Failed to create API handler: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	handler.Register(e)

	// Run the responsiveness sweep until shutdown
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go livenessSvc.RunSweep(sweepCtx, cfg.SweepInterval)

	go func() {
		if err := e.Start(":" + cfg.HTTPPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	stopSweep()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	coordinator.Close()
	if queuePub != nil {
		if err := queuePub.Close(); err != nil {
			log.Printf("Error closing queue publisher: %v", err)
		}
	}
	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server has been shut down")
}
