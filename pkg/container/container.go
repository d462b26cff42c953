package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"

	clientHandler "library-backend/internal/domains/client/handler"
	clientRepo "library-backend/internal/domains/client/repository"
	clientService "library-backend/internal/domains/client/service"
	empruntHandler "library-backend/internal/domains/emprunt/handler"
	empruntRepo "library-backend/internal/domains/emprunt/repository"
	empruntService "library-backend/internal/domains/emprunt/service"
	livreHandler "library-backend/internal/domains/livre/handler"
	livreRepo "library-backend/internal/domains/livre/repository"
	livreService "library-backend/internal/domains/livre/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the API process.
// Build order: config, infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB // nil with the memory driver
	Cache      cache.Cache
	JWTManager *jwt.Manager

	redis *infraCache.RedisCache

	// Repositories
	LivreRepo   livreRepo.LivreRepository
	ClientRepo  clientRepo.ClientRepository
	EmpruntRepo empruntRepo.EmpruntRepository

	// Services
	LivreService   livreService.ServiceInterface
	ClientService  clientService.ServiceInterface
	EmpruntService empruntService.ServiceInterface

	// Handlers
	LivreHandler   *livreHandler.LivreHandler
	ClientHandler  *clientHandler.ClientHandler
	EmpruntHandler *empruntHandler.EmpruntHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer loads configuration from the environment and builds the graph.
func NewContainer(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewContainerWithConfig(ctx, cfg)
}

// NewContainerWithConfig builds the graph from an already loaded config.
func NewContainerWithConfig(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Str("storage", cfg.Storage.Driver).Msg("🔧 Initializing DI Container...")

	c := &Container{
		Config:     cfg,
		Cache:      cache.Nop{},
		JWTManager: jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute),
	}

	// ========================================
	// STEP 1: INFRASTRUCTURE
	// ========================================
	if cfg.Storage.Driver == config.StorageDriverPostgres {
		if err := c.initDatabase(ctx); err != nil {
			return nil, err
		}
		c.initCache(ctx)
	}

	// ========================================
	// STEP 2: REPOSITORIES
	// ========================================
	c.initRepositories()

	// ========================================
	// STEP 3: SERVICES
	// ========================================
	c.initServices()

	// ========================================
	// STEP 4: HANDLERS
	// ========================================
	c.initHandlers()

	log.Info().Msg("✅ DI Container initialized")
	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(connectCtx); err != nil {
		db.Close()
		return fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	return nil
}

// initCache connects Redis when enabled. Any failure leaves the no-op cache in place.
func (c *Container) initCache(ctx context.Context) {
	if !c.Config.Redis.Enabled {
		log.Info().Msg("Redis disabled, book reads go straight to Postgres")
		return
	}

	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("⚠️  Redis connection failed (non-critical), caching disabled")
		_ = rc.Close()
		return
	}

	c.redis = rc
	c.Cache = rc
}

func (c *Container) initRepositories() {
	if c.DB == nil {
		c.LivreRepo = livreRepo.NewMemoryLivreRepository()
		c.ClientRepo = clientRepo.NewMemoryClientRepository()
		c.EmpruntRepo = empruntRepo.NewMemoryEmpruntRepository()
		return
	}

	c.LivreRepo = livreRepo.NewPostgresLivreRepository(c.DB.Pool, c.Cache, c.Config.Redis.BookTTL)
	c.ClientRepo = clientRepo.NewPostgresClientRepository(c.DB.Pool)
	c.EmpruntRepo = empruntRepo.NewPostgresEmpruntRepository(c.DB.Pool)
}

func (c *Container) initServices() {
	c.LivreService = livreService.NewLivreService(c.LivreRepo)
	c.ClientService = clientService.NewClientService(c.ClientRepo, c.LivreService)
	c.EmpruntService = empruntService.NewEmpruntService(c.EmpruntRepo, c.LivreService, c.Config.Loan.Duration())
}

func (c *Container) initHandlers() {
	c.LivreHandler = livreHandler.NewLivreHandler(c.LivreService)
	c.ClientHandler = clientHandler.NewClientHandler(c.ClientService)
	c.EmpruntHandler = empruntHandler.NewEmpruntHandler(c.EmpruntService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases the pool and the Redis client.
func (c *Container) Cleanup() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("✅ Container cleaned up")
}
