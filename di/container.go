package di

import (
	"context"
	"fmt"
	"log"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"courtsense/config"
	"courtsense/dao"
	"courtsense/dao/postgres"
	redisdao "courtsense/dao/redis"
	"courtsense/db"
	"courtsense/geo"
	"courtsense/server"
	"courtsense/server/handlers"
	services "courtsense/service"
	"courtsense/traffic"
	"courtsense/util"
)

// Container holds all application dependencies.
type Container struct {
	RedisClient            db.RedisClient
	RedisVenueDao          *redisdao.RedisVenueDAO
	RedisStatusDao         *redisdao.RedisStatusDAO
	ValidationDao          dao.ValidationDAO
	CityResolver           *geo.Resolver
	Scorer                 *traffic.Scorer
	VenueService           *services.VenueService
	LiveStatusService      *services.LiveStatusService
	ValidationService      *services.ValidationService
	StatusRefresherService *services.StatusRefresherService
	StatusHandler          *handlers.StatusHandler
	ValidationHandler      *handlers.ValidationHandler
	MuxRouter              *mux.Router
	Router                 *server.Router
	CourtSenseHttpServer   *server.CourtSenseHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(env string, cfg *config.Config) *Container {
	log.Printf("initializing container - env: %s", env)
	ctx := context.Background()

	// Initialize Redis client
	var redisClient db.RedisClient
	if env == "prod" {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		redisClient = db.NewGeoRedisClient(ctx, redisInternalClient)
		if err := redisClient.Ping(); err != nil {
			panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
		}
	} else {
		log.Printf("Using mock redis client")
		redisClient = db.NewMockRedisClient(ctx)
	}

	// Initialize DAOs
	redisVenueDao := redisdao.NewRedisVenueDAO(redisClient)
	redisStatusDao := redisdao.NewRedisStatusDAO(redisClient)

	var validationDao dao.ValidationDAO
	if env == "prod" {
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			panic(fmt.Sprintf("Failed to create Postgres pool: %v", err))
		}
		pgDao := postgres.NewPgValidationDAO(pool)
		if err := pgDao.EnsureSchema(ctx); err != nil {
			panic(fmt.Sprintf("Failed to ensure validation schema: %v", err))
		}
		validationDao = pgDao
	} else {
		log.Printf("Using in-memory validation store")
		validationDao = dao.NewMemoryValidationDAO()
	}

	// Load the static city table and build the scorer
	cities, err := util.ReadCitiesFromJSON(config.GetResourcePath(config.CITIES_RESOURCE))
	if err != nil {
		panic(fmt.Sprintf("Failed to load city table: %v", err))
	}
	cityResolver := geo.NewResolver(cities)
	log.Printf("Loaded %d population centers", cityResolver.Size())

	scorer := traffic.NewScorer(cityResolver)

	// Initialize service layer
	venueService := services.NewVenueService(redisVenueDao)
	liveStatusService := services.NewLiveStatusService(redisVenueDao, redisStatusDao, scorer)
	validationService := services.NewValidationService(validationDao)
	statusRefresherService := services.NewStatusRefresherService(
		redisVenueDao, redisStatusDao, scorer, cfg.MaxWriteBatch)

	// Initialize handlers
	statusHandler := handlers.NewStatusHandler(venueService, liveStatusService)
	validationHandler := handlers.NewValidationHandler(validationService)

	// Initialize mux router
	muxRouter := mux.NewRouter()

	// Initialize router
	router := server.NewRouter(statusHandler, validationHandler, muxRouter)

	// Initialize court sense server
	courtSenseHttpServer := server.NewCourtSenseHttpServer(router, muxRouter, cfg.HTTPAddr)

	return &Container{
		RedisClient:            redisClient,
		RedisVenueDao:          redisVenueDao,
		RedisStatusDao:         redisStatusDao,
		ValidationDao:          validationDao,
		CityResolver:           cityResolver,
		Scorer:                 scorer,
		VenueService:           venueService,
		LiveStatusService:      liveStatusService,
		ValidationService:      validationService,
		StatusRefresherService: statusRefresherService,
		StatusHandler:          statusHandler,
		ValidationHandler:      validationHandler,
		MuxRouter:              muxRouter,
		Router:                 router,
		CourtSenseHttpServer:   courtSenseHttpServer,
	}
}
