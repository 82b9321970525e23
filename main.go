package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cleanslate/config"
	"cleanslate/cron"
	"cleanslate/database"
	bookingRepo "cleanslate/database/repository/booking"
	customerRepo "cleanslate/database/repository/customer"
	trainingRepo "cleanslate/database/repository/training"
	workerRepo "cleanslate/database/repository/worker"
	"cleanslate/database/seed"
	"cleanslate/handlers"
	"cleanslate/middleware"
	"cleanslate/models"
	"cleanslate/routes"
	"cleanslate/services/booking"
	"cleanslate/services/customer"
	"cleanslate/services/geo"
	"cleanslate/services/intelligence"
	"cleanslate/services/notification"
	"cleanslate/services/payment"
	"cleanslate/services/reports"
	"cleanslate/services/tasks"
	"cleanslate/services/worker"
	"cleanslate/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type repositories struct {
	bookings  bookingRepo.BookingRepository
	workers   workerRepo.WorkerRepository
	customers customerRepo.CustomerRepository
	modules   trainingRepo.TrainingModuleRepository
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(utils.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	// repositories.
	repos, mongoClient := initRepositories(ctx, logger)

	// optional redis: change events, match cache and reminder queue.
	var (
		publisher   notification.Publisher = notification.NewLogPublisher(logger)
		reminders   tasks.ReminderScheduler = tasks.NopReminderScheduler{}
		matchCache  intelligence.MatchCache
		redisClient *redis.Client
		queueClient *asynq.Client
		queueServer *asynq.Server
	)
	if cfg.RedisEnabled {
		var err error
		redisClient, err = utils.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		redisPublisher, err := notification.NewRedisPublisher(redisClient, logger)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize change publisher: %v", err)
		}
		publisher = redisPublisher
		matchCache = intelligence.NewRedisMatchCache(redisClient, 30*time.Minute)

		queueClient = asynq.NewClient(cron.QueueRedisOpt())
		reminders = tasks.NewAsynqReminderScheduler(queueClient)
		queueServer = cron.InitReminderWorker(ctx, publisher, logger)

		go func() {
			err := notification.Subscribe(ctx, redisClient, logger, func(ev models.ChangeEvent) {
				logger.Debug("change event",
					zap.String("type", ev.Type),
					zap.String("entity", ev.Entity),
					zap.String("entityId", ev.EntityID))
			})
			if err != nil && ctx.Err() == nil {
				logger.Warn("change subscription ended", zap.Error(err))
			}
		}()
	} else {
		logger.Info("redis disabled; change events are logged and reminders are not queued")
	}

	// generative model for matching.
	var generator intelligence.Generator
	if cfg.GeminiAPIKey != "" {
		gemini, err := intelligence.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
		}
		defer gemini.Close()
		generator = gemini
	}

	var gateway payment.Gateway
	switch strings.ToLower(cfg.PaymentProvider) {
	case "stripe":
		gateway = payment.NewStripeGateway(cfg.StripeKey, logger)
	default:
		gateway = payment.NewStubGateway(logger)
	}

	// services.
	workerLocks := utils.NewKeyedMutex()
	loc := config.Location()

	bookingService := booking.NewBookingService(
		repos.bookings, repos.workers, repos.customers, publisher, reminders, logger,
		booking.Settings{
			Currency:     cfg.Currency,
			Location:     loc,
			ReminderLead: time.Duration(cfg.ReminderLeadMinutes) * time.Minute,
			WorkerLocks:  workerLocks,
		},
	)
	workerService, err := worker.NewDefaultWorkerService(
		repos.workers, repos.modules, publisher, logger, config.InitialTrainingModuleIDs(), workerLocks)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	customerService := customer.NewDefaultCustomerService(repos.customers, publisher, logger)
	locator := geo.NewHaversineLocator(repos.workers)
	matchingService := booking.NewMatchingService(
		bookingService, repos.workers, locator, generator, matchCache, logger, cfg.SearchRadiusKm)
	paymentService := payment.NewPaymentService(gateway, bookingService, logger)
	reportService := reports.NewReportService(repos.bookings, repos.workers, cfg.Currency, loc, cfg.CommissionRate)

	if cfg.SeedDemoData {
		err := seed.Load(ctx, seed.Repos{
			Bookings:  repos.bookings,
			Workers:   repos.workers,
			Customers: repos.customers,
			Modules:   repos.modules,
		}, time.Now(), cfg.Currency, logger)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to seed demo data: %v", err)
		}
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:     handlers.NewAuthHandler(workerService),
		Catalog:  handlers.NewCatalogHandler(bookingService),
		Booking:  handlers.NewBookingHandler(bookingService),
		Worker:   handlers.NewWorkerHandler(workerService, bookingService, locator, reportService, cfg.SearchRadiusKm),
		Admin:    handlers.NewAdminHandler(bookingService, workerService, reportService),
		Matching: handlers.NewMatchingHandler(matchingService),
		Payment:  handlers.NewPaymentHandler(paymentService),
		Customer: handlers.NewCustomerHandler(customerService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	var redisClients []*redis.Client
	if redisClient != nil {
		redisClients = append(redisClients, redisClient)
	}
	go utils.StartHealthMonitor(ctx, 30*time.Second, cfg.StorageBackend, redisClients, mongoClient)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if queueServer != nil {
		queueServer.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := database.CloseDB(shutdownCtx); err != nil {
		logger.Sugar().Warnf("main: failed to close database: %v", err)
	}
	_ = logger.Sync()

	logger.Sugar().Info("main: server stopped gracefully")
}

// initRepositories picks the storage backend. Mongo repositories get their indexes
// created up front; the memory backend keeps everything in process.
func initRepositories(ctx context.Context, logger *zap.Logger) (repositories, *mongo.Client) {
	if strings.ToLower(config.AppConfig.StorageBackend) != "mongo" {
		logger.Info("using in-memory storage")
		return repositories{
			bookings:  bookingRepo.NewMemoryBookingRepo(),
			workers:   workerRepo.NewMemoryWorkerRepo(),
			customers: customerRepo.NewMemoryCustomerRepo(),
			modules:   trainingRepo.NewMemoryTrainingRepo(),
		}, nil
	}

	db, err := database.InitDB()
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	fieldCipher, err := utils.NewFieldCipher(config.AppConfig.FieldEncryptionKey)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	if fieldCipher == nil {
		logger.Warn("FIELD_ENCRYPTION_KEY not set, worker banking details stored in plaintext")
	}

	bookings := bookingRepo.NewMongoBookingRepo(db)
	workers := workerRepo.NewMongoWorkerRepo(db).WithFieldCipher(fieldCipher)
	customers := customerRepo.NewMongoCustomerRepo(db)
	modules := trainingRepo.NewMongoTrainingRepo(db)

	indexCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	for name, ensure := range map[string]func(context.Context) error{
		"bookings":         bookings.EnsureIndexes,
		"workers":          workers.EnsureIndexes,
		"customers":        customers.EnsureIndexes,
		"training_modules": modules.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			logger.Sugar().Fatalf("main: failed to create %s indexes: %v", name, err)
		}
	}
	logger.Info("using mongo storage", zap.String("database", config.AppConfig.DatabaseName))

	return repositories{
		bookings:  bookings,
		workers:   workers,
		customers: customers,
		modules:   modules,
	}, database.MongoClient
}
