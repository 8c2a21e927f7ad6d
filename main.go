package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"adspace-chat/internal/autoresponder"
	"adspace-chat/internal/cache"
	"adspace-chat/internal/config"
	"adspace-chat/internal/db"
	grpcserver "adspace-chat/internal/grpc"
	"adspace-chat/internal/handlers"
	"adspace-chat/internal/middleware"
	"adspace-chat/internal/observability"
	"adspace-chat/internal/queue"
	"adspace-chat/internal/rabbitmq"
	"adspace-chat/internal/repositories"
	"adspace-chat/internal/services"
	"adspace-chat/internal/telemetry"
)

const auditRoutingKey = "audit.chat"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.OTLPEndpoint, cfg.ServiceName, cfg.Environment)
	if err != nil {
		log.Fatalf("failed to init tracing: %v", err)
	}

	database, err := db.Connect(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer database.Close()

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	defer publisher.Close()
	log.Printf("event publisher ready: mode=%s noop_reason=%q", rabbitmq.PublisherMode(publisher), rabbitmq.PublisherNoopReason(publisher))
	events := rabbitmq.NewEventPublisher(publisher)
	audit := telemetry.NewAuditEmitter(publisher, auditRoutingKey, cfg.ServiceName, cfg.Environment)

	chatRepo := repositories.NewChatRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	userRepo := repositories.NewUserRepo(database)
	businessRepo := repositories.NewBusinessRepo(database)
	adspaceRepo := repositories.NewAdspaceRepo(database)

	responder, err := autoresponder.New(autoresponder.DefaultKeywords)
	if err != nil {
		log.Fatalf("failed to build auto responder: %v", err)
	}
	delivery := services.NewAutoReplyDelivery(messageRepo, events)

	var (
		scheduler     queue.Scheduler
		businessCache services.BusinessCache = cache.NewNoopBusinessCache()
	)
	if cfg.RedisURL != "" {
		asynqScheduler, err := queue.NewAsynqScheduler(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to create scheduler: %v", err)
		}
		scheduler = asynqScheduler

		worker, err := queue.NewWorker(cfg.RedisURL, cfg.WorkerConcurrency, delivery.Deliver)
		if err != nil {
			log.Fatalf("failed to create worker: %v", err)
		}
		go func() {
			if err := worker.Run(ctx); err != nil {
				log.Printf("auto reply worker stopped: %v", err)
			}
		}()

		redisClient, err := cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to create redis client: %v", err)
		}
		defer redisClient.Close()
		businessCache = cache.NewRedisBusinessCache(redisClient, cfg.BusinessCacheTTL)
		log.Printf("auto replies via asynq, business cache via redis: ttl=%s", cfg.BusinessCacheTTL)
	} else {
		scheduler = queue.NewTimerScheduler(delivery.Deliver)
		log.Printf("auto replies via in-process timers: empty redis url")
	}
	defer scheduler.Close()

	chatService := services.NewChatService(services.ChatServiceDeps{
		Chats:      chatRepo,
		Messages:   messageRepo,
		Users:      userRepo,
		Businesses: businessRepo,
		Responder:  responder,
		Scheduler:  scheduler,
		Events:     events,
		ReplyDelay: cfg.AutoReplyDelay,
	})
	catalogService := services.NewCatalogService(adspaceRepo, businessRepo, businessCache)

	chatHandler := handlers.NewChatHandler(chatService, audit)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	router := gin.New()

	// middlewares
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(observability.HTTPMetricsMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		if err := database.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	catalogHandler.RegisterPublicRoutes(router)

	authed := router.Group("/", middleware.AuthMiddleware(middleware.NewTokenVerifier(cfg.JWTSecret)))
	chatHandler.RegisterRoutes(authed)
	catalogHandler.RegisterPrivateRoutes(authed)

	handlers.RegisterDebugRoutes(authed, audit, cfg.DebugRoutes)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", observability.RequestIDHeader},
		ExposedHeaders:   []string{observability.RequestIDHeader},
		AllowCredentials: cfg.AllowCredentials(),
	})

	server := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           corsHandler.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	healthServer := grpcserver.NewHealthServer(database)
	go func() {
		if err := healthServer.Serve(ctx, net.JoinHostPort("", cfg.GRPCPort)); err != nil {
			log.Printf("grpc server error: %v", err)
		}
	}()

	go func() {
		log.Printf("http server listening: port=%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("tracing shutdown error: %v", err)
	}
}
