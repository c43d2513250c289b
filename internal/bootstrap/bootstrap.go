package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	appControllers "github.com/edupulse/edupulse/internal/app/controllers"
	appMigrations "github.com/edupulse/edupulse/internal/app/migrations"
	appRepos "github.com/edupulse/edupulse/internal/app/repositories"
	appRoutes "github.com/edupulse/edupulse/internal/app/routes"
	appServices "github.com/edupulse/edupulse/internal/app/services"
	"github.com/edupulse/edupulse/internal/config"
	"github.com/edupulse/edupulse/internal/db"
	appMiddleware "github.com/edupulse/edupulse/internal/middleware"
	pkgAuth "github.com/edupulse/edupulse/internal/pkg/auth"
	"github.com/edupulse/edupulse/internal/pkg/docstore"
	"github.com/edupulse/edupulse/internal/pkg/helpers"
	"github.com/edupulse/edupulse/internal/pkg/logger"
	"github.com/edupulse/edupulse/internal/pkg/metrics"
	"github.com/edupulse/edupulse/internal/pkg/websocket"
	"github.com/edupulse/edupulse/internal/seed"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Storage holds the document backend and the connections behind it
type Storage struct {
	Backend docstore.Backend
	Redis   *redis.Client
	DB      *db.PostgresDB
}

// Ping checks the connection the backend depends on; nil for the file driver
func (s *Storage) Ping() appControllers.Pinger {
	switch {
	case s.DB != nil:
		return s.DB.Ping
	case s.Redis != nil:
		return func(ctx context.Context) error { return s.Redis.Ping(ctx).Err() }
	}
	return nil
}

// Close releases every open connection
func (s *Storage) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos    *appRepos.Repositories
	Services *appServices.Services

	JWTService *pkgAuth.JWTService
	Metrics    *metrics.Metrics
	Hub        *websocket.Hub
	Relay      *websocket.RedisRelay // nil unless chat.relay is redis

	AuthMiddleware *appMiddleware.AuthMiddleware
	LoginLimiter   *appMiddleware.RateLimiter

	AuthController       *appControllers.AuthController
	DashboardController  *appControllers.DashboardController
	AnalyticsController  *appControllers.AnalyticsController
	MentorshipController *appControllers.MentorshipController
	PaymentController    *appControllers.PaymentController
	ChatController       *appControllers.ChatController
	HealthController     *appControllers.HealthController

	Logger zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// CONFIG_PATH overrides configs/config.yaml.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.ConfigFromSettings(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the connections the configured driver and relay need and
// returns the document backend. Postgres migrations run here.
func SetupStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	storage := &Storage{}

	if cfg.UsesRedis() {
		opts, err := redis.ParseURL(cfg.Storage.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		storage.Redis = redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := storage.Redis.Ping(pingCtx).Err(); err != nil {
			storage.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		lgr.Info().Str("addr", opts.Addr).Msg("Redis connection established")
	}

	switch cfg.Storage.Driver {
	case config.StorageDriverFile:
		backend, err := docstore.NewFileBackend(cfg.Storage.DataDir)
		if err != nil {
			storage.Close()
			return nil, err
		}
		storage.Backend = backend
		lgr.Info().Str("dataDir", cfg.Storage.DataDir).Msg("Using file document storage")

	case config.StorageDriverRedis:
		storage.Backend = docstore.NewRedisBackend(storage.Redis, cfg.Storage.KeyPrefix)
		lgr.Info().Str("keyPrefix", cfg.Storage.KeyPrefix).Msg("Using redis document storage")

	case config.StorageDriverPostgres:
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(ctx, cfg, lgr)
		if err != nil {
			storage.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		storage.DB = database

		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.NewMigrator(database.Pool, lgr).Migrate(ctx); err != nil {
			storage.Close()
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		storage.Backend = docstore.NewPostgresBackend(database.Pool)
		lgr.Info().Msg("Using postgres document storage")

	default:
		storage.Close()
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	return storage, nil
}

// BuildDependencies seeds the documents and initializes services, controllers and middleware.
func BuildDependencies(cfg *config.Config, storage *Storage, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(storage.Backend, lgr, time.Now)

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seed.EnsureDocuments(seedCtx, lgr, deps.Repos.Documents()...); err != nil {
		return nil, fmt.Errorf("failed to create default documents: %w", err)
	}

	deps.Metrics = metrics.NewMetrics()

	deps.Hub = websocket.NewHub(lgr.With().Str("component", "hub").Logger())
	deps.Hub.OnConnectionChange(deps.Metrics.ChatConnections.Add)

	var broadcaster websocket.Broadcaster = deps.Hub
	if cfg.Chat.Relay == config.ChatRelayRedis {
		deps.Relay = websocket.NewRedisRelay(storage.Redis, deps.Hub, cfg.Storage.KeyPrefix, lgr.With().Str("component", "relay").Logger())
		broadcaster = deps.Relay
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, appServices.Options{
		JWT:         deps.JWTService,
		Passwords:   pkgAuth.NewPasswordHasher(cfg.Auth.HashPasswords),
		Broadcaster: broadcaster,
		Metrics:     deps.Metrics,
		Mentorship: appServices.MentorshipSettings{
			MeetingBaseURL:    cfg.Mentorship.MeetingBaseURL,
			DefaultHourlyRate: cfg.Mentorship.DefaultHourlyRate,
		},
		Now:    time.Now,
		Logger: lgr,
	})

	if err := appMiddleware.ConfigureValidator(); err != nil {
		return nil, fmt.Errorf("failed to configure validator: %w", err)
	}
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.LoginLimiter = appMiddleware.NewRateLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginBurst)

	wsHandler := websocket.NewHandler(deps.Hub, cfg.AllowedOriginList(), lgr.With().Str("component", "websocket").Logger())

	deps.AuthController = appControllers.NewAuthController(deps.Services.Auth, lgr)
	deps.DashboardController = appControllers.NewDashboardController(deps.Services.Dashboard, lgr)
	deps.AnalyticsController = appControllers.NewAnalyticsController(deps.Services.Analytics, lgr)
	deps.MentorshipController = appControllers.NewMentorshipController(deps.Services.Mentorship, lgr)
	deps.PaymentController = appControllers.NewPaymentController(deps.Services.Payment, lgr)
	deps.ChatController = appControllers.NewChatController(deps.Services.Chat, wsHandler, lgr)
	deps.HealthController = appControllers.NewHealthController(cfg.Storage.Driver, cfg.Chat.Relay, storage.Ping())

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.Metrics(deps.Metrics),
		appMiddleware.CORS(cfg.AllowedOriginList()),
	)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.DashboardController,
		deps.AnalyticsController,
		deps.MentorshipController,
		deps.PaymentController,
		deps.ChatController,
		deps.HealthController,
		deps.AuthMiddleware,
		deps.LoginLimiter,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}

// Hostname is attached to startup logs so instances behind a relay can be told apart
func Hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
