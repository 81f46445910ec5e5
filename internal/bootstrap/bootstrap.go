package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutech/studify/internal/app/controllers"
	"github.com/edutech/studify/internal/app/migrations"
	"github.com/edutech/studify/internal/app/repositories"
	"github.com/edutech/studify/internal/app/routes"
	"github.com/edutech/studify/internal/app/services"
	"github.com/edutech/studify/internal/config"
	"github.com/edutech/studify/internal/db"
	"github.com/edutech/studify/internal/middleware"
	pkgauth "github.com/edutech/studify/internal/pkg/auth"
	"github.com/edutech/studify/internal/pkg/logger"
	"github.com/edutech/studify/internal/seed"
)

// Dependencies holds everything the server needs to run.
type Dependencies struct {
	Config      *config.Config
	Pool        *pgxpool.Pool
	JWTService  *pkgauth.JWTService
	Repos       *repositories.Repositories
	Services    *services.Services
	Controllers *controllers.Controllers
}

// LoadConfig reads configs/config.yaml and configures the global logger
// from it.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(filepath.Join("configs", "config.yaml"))
	if err != nil {
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: cfg.Logging.Pretty,
	})
	logger.Info().Str("level", cfg.Logging.Level).Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase connects the pool, applies pending migrations and seeds
// the bootstrap admin.
func SetupDatabase(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := db.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	logger.Info().Str("database", cfg.Database.Name).Msg("Database connection established")

	if cfg.Database.AutoMigrate {
		migrator := migrations.NewMigrator(pool, cfg.Database.MigrationDir)
		if err := migrator.Run(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	if err := seed.CreateDefaultAdmin(ctx, pool, cfg.Seed); err != nil {
		// The API still works for existing accounts, so log and continue.
		logger.Error().Err(err).Msg("Failed to seed default admin")
	}

	return pool, nil
}

// BuildDependencies wires repositories, services and controllers.
func BuildDependencies(cfg *config.Config, pool *pgxpool.Pool) *Dependencies {
	jwtService := pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  cfg.JWT.AccessTokenDuration(),
		RefreshTokenExp: cfg.JWT.RefreshTokenDuration(),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	repos := repositories.NewRepositories(pool)
	svcs := services.NewServices(repos, jwtService)

	return &Dependencies{
		Config:      cfg,
		Pool:        pool,
		JWTService:  jwtService,
		Repos:       repos,
		Services:    svcs,
		Controllers: controllers.NewControllers(svcs),
	}
}

// SetupRouter builds the gin engine with middleware and all API routes.
func SetupRouter(deps *Dependencies) *gin.Engine {
	if strings.ToLower(deps.Config.Logging.Level) != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.RegisterValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	routes.SetupRouter(router, deps.Controllers,
		middleware.Authenticate(deps.JWTService, deps.Repos.Users))

	return router
}
