package di

import (
	"time"

	"github.com/trailhuf/experiences-api/internal/handler"
	"github.com/trailhuf/experiences-api/internal/promo"
	"github.com/trailhuf/experiences-api/internal/repository"
	"github.com/trailhuf/experiences-api/internal/service"
	"github.com/trailhuf/experiences-api/pkg/database"
	"github.com/trailhuf/experiences-api/pkg/redis"
	"go.uber.org/zap"
)

// Container holds all dependencies for the experiences service
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Repositories
	ExperienceRepo repository.ExperienceRepository
	BookingRepo    repository.BookingRepository

	// Services
	PromoValidator promo.Validator
	CatalogService service.CatalogService
	BookingService service.BookingService
	EventPublisher service.EventPublisher

	// Handlers
	HealthHandler     *handler.HealthHandler
	ExperienceHandler *handler.ExperienceHandler
	PromoHandler      *handler.PromoHandler
	BookingHandler    *handler.BookingHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB             *database.PostgresDB
	Redis          *redis.Client
	EventPublisher service.EventPublisher
	CacheTTL       time.Duration
	MaxQuantity    int
	Logger         *zap.Logger
	ServiceName    string
	Version        string
	Environment    string
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:             cfg.DB,
		Redis:          cfg.Redis,
		EventPublisher: cfg.EventPublisher,
	}
	if c.EventPublisher == nil {
		c.EventPublisher = service.NewNoOpEventPublisher()
	}

	// Initialize repositories
	pgExperienceRepo := repository.NewPostgresExperienceRepository(c.DB.Pool())

	// Wrap with cache if Redis is available
	if c.Redis != nil {
		c.ExperienceRepo = repository.NewCachedExperienceRepository(pgExperienceRepo, c.Redis, cfg.CacheTTL, cfg.Logger)
	} else {
		c.ExperienceRepo = pgExperienceRepo
	}
	c.BookingRepo = repository.NewPostgresBookingRepository(c.DB.Pool())

	// Initialize services
	c.PromoValidator = promo.NewValidator(nil)
	c.CatalogService = service.NewCatalogService(c.ExperienceRepo)
	c.BookingService = service.NewBookingService(c.BookingRepo, c.ExperienceRepo, c.PromoValidator, c.EventPublisher, &service.BookingServiceConfig{
		MaxQuantity: cfg.MaxQuantity,
	})

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis, &handler.HealthHandlerConfig{
		Name:        cfg.ServiceName,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	})
	c.ExperienceHandler = handler.NewExperienceHandler(c.CatalogService)
	c.PromoHandler = handler.NewPromoHandler(c.PromoValidator)
	c.BookingHandler = handler.NewBookingHandler(c.BookingService)

	return c
}
