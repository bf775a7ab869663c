package container

import (
	"context"
	"fmt"
	"time"

	"auction-backend/internal/config"
	infraCache "auction-backend/internal/infrastructure/cache"
	"auction-backend/internal/infrastructure/database"
	"auction-backend/internal/shared"
	"auction-backend/pkg/cache"
	"auction-backend/pkg/jwt"
	"auction-backend/pkg/logger"

	bidHandler "auction-backend/internal/domains/bid/handler"
	bidRepo "auction-backend/internal/domains/bid/repository"
	bidService "auction-backend/internal/domains/bid/service"
	lotHandler "auction-backend/internal/domains/lot/handler"
	lotRepo "auction-backend/internal/domains/lot/repository"
	lotService "auction-backend/internal/domains/lot/service"
)

// Container holds all application dependencies, wired once at startup.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *infraCache.RedisClient
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repositories
	LotRepo lotRepo.LotRepository
	BidRepo bidRepo.BidRepository

	// Services
	LotService lotService.ServiceInterface
	BidService bidService.ServiceInterface

	// Handlers
	LotHandler *lotHandler.LotHandler
	BidHandler *bidHandler.BidHandler
}

// NewContainer initializes the full dependency graph. Any failure
// aborts startup.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.App.Environment)

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	redisClient := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Connect(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	c := &Container{
		Config:     cfg,
		DB:         db,
		Redis:      redisClient,
		Cache:      redisClient,
		JWTManager: jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry),
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initRepositories() {
	c.LotRepo = lotRepo.NewPostgresLotRepository(c.DB.Pool)
	c.BidRepo = bidRepo.NewPostgresBidRepository(c.DB.Pool)
}

func (c *Container) initServices() {
	clock := shared.SystemClock{}

	c.LotService = lotService.NewLotService(
		c.LotRepo,
		c.BidRepo,
		c.Cache,
		clock,
		shared.NewUUID,
		c.Config.Auction.BiddingPeriodMonths,
		c.Config.Auction.RenewalPeriodDays,
		time.Duration(c.Config.Auction.ListingCacheTTLSeconds)*time.Second,
	)

	c.BidService = bidService.NewBidService(
		c.BidRepo,
		c.LotRepo,
		c.Cache,
		clock,
		shared.NewUUID,
	)
}

func (c *Container) initHandlers() {
	c.LotHandler = lotHandler.NewLotHandler(c.LotService)
	c.BidHandler = bidHandler.NewBidHandler(c.BidService)
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("Failed to close redis client", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}
}
