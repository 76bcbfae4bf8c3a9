package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/odemir/studentbook/internal/app/controllers"
	appMigrations "github.com/odemir/studentbook/internal/app/migrations"
	appRepos "github.com/odemir/studentbook/internal/app/repositories"
	appRoutes "github.com/odemir/studentbook/internal/app/routes"
	appServices "github.com/odemir/studentbook/internal/app/services"
	"github.com/odemir/studentbook/internal/app/workflow"
	"github.com/odemir/studentbook/internal/config"
	"github.com/odemir/studentbook/internal/db"
	appMiddleware "github.com/odemir/studentbook/internal/middleware"
	pkgAuth "github.com/odemir/studentbook/internal/pkg/auth"
	"github.com/odemir/studentbook/internal/pkg/helpers"
	"github.com/odemir/studentbook/internal/pkg/logger"
	"github.com/odemir/studentbook/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       appServices.AuthService
	LookupService     appServices.LookupService
	GradeService      appServices.GradeService
	SessionSweeper    *appServices.SessionSweeper
	Gate              *workflow.Gate
	AuthController    *appControllers.AuthController
	ConsoleController *appControllers.ConsoleController
	GradeController   *appControllers.GradeController
	LookupController  *appControllers.LookupController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the Postgres connection, runs migrations and
// seeds the default admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultAdmin(context.Background(), cfg, dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to seed default admin, proceeding anyway...")
	}

	return dbPool, nil
}

// SetupRecordStore connects to the SurrealDB record store.
func SetupRecordStore(cfg *config.Config, lgr zerolog.Logger) (*db.SurrealDB, error) {
	lgr.Info().Str("endpoint", cfg.Store.Endpoint).Msg("Connecting to record store...")
	store, err := db.NewSurrealDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to record store")
		return nil, err
	}
	lgr.Info().
		Str("namespace", cfg.Store.Namespace).
		Str("database", cfg.Store.Database).
		Msg("Record store connection successfully established.")
	return store, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, store *db.SurrealDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool, store)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	// The gate opens a record console per signed-in session and tears it
	// down on sign-out. The auth middleware feeds it session events.
	deps.Gate = workflow.NewGate(deps.Repos.StudentRepository, logger.Component("workflow"))

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.SessionRepository,
		deps.JWTService,
		deps.Gate,
		lgr,
	)
	deps.LookupService = appServices.NewLookupService(
		deps.Repos.StudentRepository,
		deps.Repos.GradeRepository,
		lgr,
	)
	deps.GradeService = appServices.NewGradeService(
		deps.Repos.StudentRepository,
		deps.Repos.GradeRepository,
		lgr,
	)

	// The sweep drops expired session rows and tears down their consoles
	deps.SessionSweeper = appServices.NewSessionSweeper(
		deps.Repos.SessionRepository,
		deps.Gate,
		helpers.ParseDuration(cfg.JWT.SessionSweepInterval, 15*time.Minute),
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.SessionRepository, deps.Gate)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.Logger)
	deps.ConsoleController = appControllers.NewConsoleController(deps.Gate)
	deps.GradeController = appControllers.NewGradeController(deps.GradeService)
	deps.LookupController = appControllers.NewLookupController(deps.LookupService)

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
	router.Use(appMiddleware.RequestLogger(lgr), gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ConsoleController,
		deps.GradeController,
		deps.LookupController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
