package cli

import (
	"context"
	"fmt"
	"time"

	"ClubAdminPlatform/internal/auth"
	authjwt "ClubAdminPlatform/internal/auth/jwt"
	"ClubAdminPlatform/internal/auth/password"
	"ClubAdminPlatform/internal/events"
	"ClubAdminPlatform/internal/gateway"
	pgrepo "ClubAdminPlatform/internal/repository/postgres"
	redisrepo "ClubAdminPlatform/internal/repository/redis"
	"ClubAdminPlatform/internal/service"
	"ClubAdminPlatform/internal/session"
	"ClubAdminPlatform/pkg/config"
	"ClubAdminPlatform/pkg/database"
	"ClubAdminPlatform/pkg/logger"
	pkg_redis "ClubAdminPlatform/pkg/redis"
)

// app собирает все зависимости команды
// CLI единственный носитель сессии, поэтому сессию держит session.Store
// с файловым хранилищем токенов
type app struct {
	store          *session.Store
	administrators *service.AdministratorService
	clubs          *service.ClubService
	memberships    *service.MembershipService

	postgres    *database.Postgres
	redisClient *pkg_redis.Client
}

// newApp подключается к хранилищам и восстанавливает сессию из файла
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// В CLI логи не должны мешать выводу команд
	appLogger, err := logger.NewLogger(cfg.Environment, "error", "consolectl")
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	dbConfig := database.NewConfig()
	dbConfig.Host = cfg.Database.Host
	dbConfig.Port = cfg.Database.Port
	dbConfig.User = cfg.Database.User
	dbConfig.Password = cfg.Database.Password
	dbConfig.Database = cfg.Database.Name

	postgres, err := database.Connect(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	redisConfig := pkg_redis.NewConfig()
	redisConfig.Addr = cfg.Redis.Addr
	redisConfig.Password = cfg.Redis.Password
	redisConfig.DB = cfg.Redis.DB

	redisClient, err := pkg_redis.Connect(ctx, redisConfig)
	if err != nil {
		postgres.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	accessTTL, err := time.ParseDuration(cfg.JWT.AccessTokenDuration)
	if err != nil {
		postgres.Close()
		redisClient.Close()
		return nil, fmt.Errorf("invalid access token duration: %w", err)
	}
	refreshTTL, err := time.ParseDuration(cfg.JWT.RefreshTokenDuration)
	if err != nil {
		postgres.Close()
		redisClient.Close()
		return nil, fmt.Errorf("invalid refresh token duration: %w", err)
	}

	administratorRepo := pgrepo.NewAdministratorRepository(postgres.Pool)
	membershipRepo := pgrepo.NewMembershipRepository(postgres.Pool)
	sessionRepo := redisrepo.NewSessionRepository(redisClient.Client)

	jwtManager := authjwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, accessTTL, refreshTTL)
	passwordHasher := password.NewBcryptHasher(0)
	provider := auth.NewLocalProvider(administratorRepo, sessionRepo, jwtManager, passwordHasher, refreshTTL, appLogger)
	profileLoader := auth.NewRepositoryProfileLoader(administratorRepo, membershipRepo)

	tokenStorage, err := newFileTokenStorage()
	if err != nil {
		postgres.Close()
		redisClient.Close()
		return nil, err
	}

	store := session.NewStore(provider, profileLoader, tokenStorage, appLogger)
	if err := store.Init(ctx); err != nil {
		appLogger.Warn("Failed to restore session", logger.Error(err))
	}

	queryTimeout, err := time.ParseDuration(cfg.Gateway.QueryTimeout)
	if err != nil {
		postgres.Close()
		redisClient.Close()
		return nil, fmt.Errorf("invalid gateway query timeout: %w", err)
	}

	guard := gateway.NewGuard(cfg.Gateway.MaxInFlightPerKey)
	queryGateway := gateway.New(
		gateway.NewPgxClient(postgres.Pool),
		store,
		guard,
		appLogger,
		gateway.WithTimeout(queryTimeout),
	)

	// Аудит пишет серверная консоль, CLI события не публикует
	publisher := events.NopPublisher{}

	return &app{
		store:          store,
		administrators: service.NewAdministratorService(queryGateway, store, publisher, passwordHasher, appLogger),
		clubs:          service.NewClubService(queryGateway, store, publisher, appLogger),
		memberships:    service.NewMembershipService(queryGateway, store, publisher, appLogger),
		postgres:       postgres,
		redisClient:    redisClient,
	}, nil
}

func (a *app) Close() {
	a.store.Close()
	a.redisClient.Close()
	a.postgres.Close()
}
