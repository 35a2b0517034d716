package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ClubAdminPlatform/internal/audit"
	"ClubAdminPlatform/internal/auth"
	authjwt "ClubAdminPlatform/internal/auth/jwt"
	"ClubAdminPlatform/internal/auth/password"
	"ClubAdminPlatform/internal/events"
	"ClubAdminPlatform/internal/gateway"
	httphandler "ClubAdminPlatform/internal/handler/http"
	"ClubAdminPlatform/internal/middleware"
	pgrepo "ClubAdminPlatform/internal/repository/postgres"
	redisrepo "ClubAdminPlatform/internal/repository/redis"
	"ClubAdminPlatform/internal/service"
	"ClubAdminPlatform/internal/session"
	"ClubAdminPlatform/pkg/config"
	"ClubAdminPlatform/pkg/database"
	"ClubAdminPlatform/pkg/health"
	"ClubAdminPlatform/pkg/logger"
	"ClubAdminPlatform/pkg/metrics"
	"ClubAdminPlatform/pkg/rabbitmq"
	"ClubAdminPlatform/pkg/ratelimit"
	pkg_redis "ClubAdminPlatform/pkg/redis"
)

func main() {
	// Инициализация конфигурации
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	appLogger, err := logger.NewLogger(cfg.Environment, cfg.Logger.Level, "admin-console")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() {
		if err := appLogger.Sync(); err != nil {
			log.Printf("Error syncing logger: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Инициализация PostgreSQL
	dbConfig := database.NewConfig()
	dbConfig.Host = cfg.Database.Host
	dbConfig.Port = cfg.Database.Port
	dbConfig.User = cfg.Database.User
	dbConfig.Password = cfg.Database.Password
	dbConfig.Database = cfg.Database.Name

	postgres, err := database.Connect(ctx, dbConfig)
	if err != nil {
		appLogger.Error("Failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer postgres.Close()

	// Инициализация Redis
	redisConfig := pkg_redis.NewConfig()
	redisConfig.Addr = cfg.Redis.Addr
	redisConfig.Password = cfg.Redis.Password
	redisConfig.DB = cfg.Redis.DB

	redisClient, err := pkg_redis.Connect(ctx, redisConfig)
	if err != nil {
		appLogger.Error("Failed to connect to redis", logger.Error(err))
		os.Exit(1)
	}
	defer redisClient.Close()

	// Инициализация RabbitMQ
	rabbitConfig := rabbitmq.NewConfig()
	rabbitConfig.URL = cfg.RabbitMQ.URL
	rabbitConfig.Exchange = cfg.RabbitMQ.Exchange
	rabbitConfig.RoutingKey = cfg.RabbitMQ.RoutingKey
	rabbitConfig.Queue = cfg.RabbitMQ.Queue

	rabbitConn, err := rabbitmq.Connect(ctx, rabbitConfig)
	if err != nil {
		appLogger.Error("Failed to connect to rabbitmq", logger.Error(err))
		os.Exit(1)
	}
	defer rabbitConn.Close()

	// Инициализация метрик
	metricCollector := metrics.NewMetrics("admin_console")

	// Репозитории
	administratorRepo := pgrepo.NewAdministratorRepository(postgres.Pool)
	_ = pgrepo.NewClubRepository(postgres.Pool)
	membershipRepo := pgrepo.NewMembershipRepository(postgres.Pool)
	auditRepo := pgrepo.NewAuditRepository(postgres.Pool)
	sessionRepo := redisrepo.NewSessionRepository(redisClient.Client)

	// Аутентификация
	accessTTL, err := time.ParseDuration(cfg.JWT.AccessTokenDuration)
	if err != nil {
		appLogger.Error("Invalid access token duration", logger.Error(err))
		os.Exit(1)
	}
	refreshTTL, err := time.ParseDuration(cfg.JWT.RefreshTokenDuration)
	if err != nil {
		appLogger.Error("Invalid refresh token duration", logger.Error(err))
		os.Exit(1)
	}

	jwtManager := authjwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, accessTTL, refreshTTL)
	passwordHasher := password.NewBcryptHasher(0)
	provider := auth.NewLocalProvider(administratorRepo, sessionRepo, jwtManager, passwordHasher, refreshTTL, appLogger)
	profileLoader := auth.NewRepositoryProfileLoader(administratorRepo, membershipRepo)
	authService := auth.NewService(provider, profileLoader, appLogger)

	// Шлюз защищенных запросов
	queryTimeout, err := time.ParseDuration(cfg.Gateway.QueryTimeout)
	if err != nil {
		appLogger.Error("Invalid gateway query timeout", logger.Error(err))
		os.Exit(1)
	}

	sessions := session.NewContextSource()
	guard := gateway.NewGuard(cfg.Gateway.MaxInFlightPerKey)
	queryGateway := gateway.New(
		gateway.NewPgxClient(postgres.Pool),
		sessions,
		guard,
		appLogger,
		gateway.WithTimeout(queryTimeout),
		gateway.WithMetrics(metricCollector),
	)

	// Журнал аудита: публикация событий и фоновый потребитель
	publisher := events.NewRabbitMQPublisher(rabbitmq.NewProducer(rabbitConn, rabbitConfig), rabbitConfig, appLogger)
	recorder := audit.NewRecorder(rabbitmq.NewConsumer(rabbitConn, rabbitConfig), rabbitConfig, auditRepo, appLogger)

	recorderCtx, recorderCancel := context.WithCancel(context.Background())
	defer recorderCancel()
	go func() {
		if err := recorder.Start(recorderCtx); err != nil {
			appLogger.Error("Audit recorder stopped", logger.Error(err))
		}
	}()

	// Сервисы сущностей
	administratorService := service.NewAdministratorService(queryGateway, sessions, publisher, passwordHasher, appLogger)
	clubService := service.NewClubService(queryGateway, sessions, publisher, appLogger)
	membershipService := service.NewMembershipService(queryGateway, sessions, publisher, appLogger)

	// HTTP сервер
	healthChecker := health.NewSimpleHealthChecker("1.0.0")
	baseHandler := httphandler.NewHandler(
		authService,
		administratorService,
		clubService,
		membershipService,
		auditRepo,
		healthChecker,
		metricCollector.GetHandler(),
		appLogger,
	)

	rateLimiter := ratelimit.NewRedisRateLimiter(redisClient.Client)

	var httpHandler http.Handler = baseHandler
	httpHandler = metricCollector.Middleware(httpHandler)
	httpHandler = middleware.RateLimit(rateLimiter, cfg.RateLimiting.RequestsPerMinute, time.Minute, appLogger)(httpHandler)
	httpHandler = middleware.CORS(cfg.CORS.AllowedOrigins, appLogger)(httpHandler)
	httpHandler = middleware.Recovery(appLogger)(httpHandler)
	httpHandler = middleware.Logging(appLogger)(httpHandler)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: httpHandler,
	}

	// Запуск сервера в отдельной горутине
	go func() {
		appLogger.Info("Starting admin console server", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", logger.Error(err))
		}
	}()

	// Обработка сигналов для graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	appLogger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server shutdown failed", logger.Error(err))
	}

	appLogger.Info("Server stopped")
}
