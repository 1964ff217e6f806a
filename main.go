package main

import (
	"context"
	"net/http"
	"time"

	"testbank-service/internal/cache"
	"testbank-service/internal/config"
	"testbank-service/internal/db"
	"testbank-service/internal/engine"
	"testbank-service/internal/event"
	"testbank-service/internal/handlers"
	"testbank-service/internal/logger"
	"testbank-service/internal/repository"
	"testbank-service/internal/service"
	"testbank-service/pkg/discovery"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using system env")
	}
	logger.Init()
	cfg := config.Load()

	db.InitMongo(cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	defer db.Disconnect(context.Background())
	database := db.Client.Database(cfg.MongoDB.Database)

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if cfg.RabbitMQ.URI != "" && cfg.RabbitMQ.Exchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer publisher.Close()
	} else {
		log.Info().Msg("RabbitMQ not configured, events will not be published")
	}

	// Repositories
	setRepo := repository.NewQuestionSetRepository(database)
	testRepo := repository.NewTestRepository(database)
	recordRepo := repository.NewRecordRepository(database)
	if err := recordRepo.EnsureIndexes(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to create record indexes")
	}

	// Optional Redis read-through cache for question sets
	var setResolver engine.QuestionSetResolver = setRepo
	var setCache *cache.QuestionSetCache
	if cfg.Redis.Address != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis unreachable, question set cache disabled")
		} else {
			setCache = cache.NewQuestionSetCache(setRepo, rdb, cfg.Redis.CacheTTL)
			setResolver = setCache
			log.Info().Msg("question set cache enabled")
		}
	}

	// Engine and services
	eng := engine.New(testRepo, setResolver)
	testService := service.NewTestService(eng, testRepo, recordRepo)
	recordService := service.NewRecordService(recordRepo)
	var invalidator service.SetInvalidator
	if setCache != nil {
		invalidator = setCache
	}
	setService := service.NewQuestionSetService(setRepo, invalidator)

	testHandler := handlers.NewTestHandler(testService)
	recordHandler := handlers.NewRecordHandler(recordService)
	setHandler := handlers.NewQuestionSetHandler(setService)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	publicTest := r.Group("/public/testbank/test")
	{
		publicTest.GET("/", testHandler.ListTests)
		publicTest.GET("/:id", testHandler.GetTest)
		publicTest.POST("/start", func(c *gin.Context) {
			testHandler.StartTest(c)
			if publisher != nil {
				publisher.Publish("test.started", gin.H{"status": c.Writer.Status()})
			}
		})
		publicTest.POST("/submit", func(c *gin.Context) {
			testHandler.SubmitTest(c)
			if publisher != nil {
				publisher.Publish("test.submitted", gin.H{"status": c.Writer.Status()})
			}
		})
	}

	publicUser := r.Group("/public/testbank/user")
	{
		publicUser.GET("/:id/records", recordHandler.GetRecordsByUser)
	}

	protectedSet := r.Group("/protected/testbank/set")
	protectedSet.Use(requireUser())
	{
		protectedSet.GET("/", setHandler.ListSets)
		protectedSet.GET("/:id", setHandler.GetSet)
		protectedSet.POST("/", setHandler.CreateSet)
		protectedSet.PUT("/:id", setHandler.UpdateSet)
		protectedSet.DELETE("/:id", setHandler.DeleteSet)
	}

	protectedTest := r.Group("/protected/testbank/test")
	protectedTest.Use(requireUser())
	{
		protectedTest.GET("/:id", testHandler.GetTestDefinition)
		protectedTest.POST("/", testHandler.CreateTest)
		protectedTest.PUT("/:id", testHandler.UpdateTest)
		protectedTest.DELETE("/:id", testHandler.DeleteTest)
	}

	// Optional Consul registration
	if cfg.Consul.Address != "" {
		registry, err := discovery.NewServiceRegistry(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create Consul client")
		}
		if err := registry.Register(); err != nil {
			log.Fatal().Err(err).Msg("failed to register with Consul")
		}
		defer registry.Deregister()
	}

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// requireUser mirrors the gateway contract: protected routes carry the
// authenticated user id in X-User-ID. Token verification happens upstream.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-User-ID") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
