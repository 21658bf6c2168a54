// serve.go implements "greengarden serve", the HTTP API.
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"greengarden/config"
	"greengarden/cron"
	"greengarden/database"
	"greengarden/database/repository"
	recordsRepo "greengarden/database/repository/records"
	"greengarden/handlers"
	"greengarden/middleware"
	"greengarden/routes"
	"greengarden/services/booking"
	"greengarden/services/dialogue"
	"greengarden/services/intelligence"
	"greengarden/services/menu"
	"greengarden/services/ordering"
	"greengarden/services/tasks"
	"greengarden/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chat API server",
	RunE:  runServe,
}

// RestaurantFromConfig maps the configured profile onto the dialogue engine's.
func RestaurantFromConfig(cfg *config.Config) dialogue.Restaurant {
	r := dialogue.DefaultRestaurant()
	if cfg.RestaurantName != "" {
		r.Name = cfg.RestaurantName
	}
	if cfg.RestaurantAddress != "" {
		r.Address = cfg.RestaurantAddress
	}
	if cfg.RestaurantPhone != "" {
		r.Phone = cfg.RestaurantPhone
	}
	if cfg.RestaurantEmail != "" {
		r.Email = cfg.RestaurantEmail
	}
	if len(cfg.RestaurantHours) > 0 {
		r.Hours = make([]dialogue.OpeningHours, len(cfg.RestaurantHours))
		for i, h := range cfg.RestaurantHours {
			r.Hours[i] = dialogue.OpeningHours{Day: h.Day, Hours: h.Hours}
		}
	}
	return r
}

// NewSessionStore picks the session backend named by SESSION_STORE.
func NewSessionStore(cfg *config.Config) dialogue.SessionStore {
	if cfg.SessionStore == "redis" {
		return dialogue.NewRedisStore(utils.GetSessionCacheClient(), cfg.SessionTTL)
	}
	return dialogue.NewMemoryStore(cfg.SessionMaxEntries, cfg.SessionTTL)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := &config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()

	// repositories.
	repos := repository.NewMongoRepositories()
	for name, err := range repos.EnsureIndexes() {
		logger.Warn("Failed to ensure indexes", zap.String("collection", name), zap.Error(err))
	}

	loadCtx, cancelLoad := context.WithTimeout(cmd.Context(), 10*time.Second)
	catalog, err := repos.Menu.GetAll(loadCtx)
	cancelLoad()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if len(catalog) == 0 {
		logger.Warn("Menu is empty; run 'greengarden seed' to load one")
	}

	// services.
	extractor := intelligence.NewExtractor()
	extractor.SetCatalog(catalog)
	classifier := intelligence.NewPatternClassifier(extractor)
	matcher := menu.NewMatcher(catalog)
	bookingService := booking.NewBookingService(repos.Slots, repos.Bookings, cfg.SeatsPerTable)
	orderService := ordering.NewOrderService(repos.Orders)

	directRecorder := recordsRepo.NewRecorder(repos.Records)
	var recorder dialogue.TurnRecorder = directRecorder
	var worker *asynq.Server
	var queue *asynq.Client
	if cfg.AsyncTurnRecording {
		utils.InitQueueCache()
		queue = asynq.NewClient(cron.QueueRedisOpt())
		recorder = tasks.NewQueueRecorder(queue)
		worker = cron.InitTurnWorker(directRecorder)
	}

	engine, err := dialogue.NewEngine(dialogue.Deps{
		Classifier:   classifier,
		Matcher:      matcher,
		Availability: bookingService,
		Reservations: bookingService,
		Orders:       orderService,
		Recorder:     recorder,
		Store:        NewSessionStore(cfg),
	},
		dialogue.WithLogger(logger.Named("dialogue")),
		dialogue.WithRestaurant(RestaurantFromConfig(cfg)),
		dialogue.WithSuggestionCount(cfg.SuggestionCount),
		dialogue.WithDaysAhead(cfg.BookingDaysAhead),
		dialogue.WithReadyEstimate(cfg.OrderReadyEstimate),
	)
	if err != nil {
		return err
	}

	chatHandler := handlers.NewChatHandler(engine, handlers.NewSessionLocks())
	socketHandler := handlers.NewWSHandler(chatHandler, cfg.CORSAllowedOrigins)
	availabilityHandler := handlers.NewAvailabilityHandler(bookingService, cfg.BookingDaysAhead)
	adminHandler := handlers.NewAdminHandler(orderService, bookingService, cfg.AdminPasswordHash, cfg.AdminTokenTTL)

	handlerBundle := &handlers.HandlerBundle{
		ChatHandler:         chatHandler.ChatHandler,
		EndSessionHandler:   chatHandler.EndSessionHandler,
		ChatSocketHandler:   socketHandler.ServeChat,
		MenuHandler:         handlers.MenuHandler(engine),
		AvailabilityHandler: availabilityHandler.GetAvailability,
		AdminLoginHandler:   adminHandler.LoginHandler,
		ListOrdersHandler:   adminHandler.GetAllOrdersHandler,
		ListBookingsHandler: adminHandler.GetAllBookingsHandler,
	}

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	utils.StartHealthMonitor(healthCtx, utils.ActiveRedisClients(), database.MongoClient)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiterStore(cfg.MaxRequestsPerMin)))
	routes.RegisterRoutes(router, handlerBundle, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("serve: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("serve: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("serve: server forced to shutdown: %v", err)
	}

	engine.Wait()
	if queue != nil {
		if err := queue.Close(); err != nil {
			logger.Warn("Failed to close task queue", zap.Error(err))
		}
	}
	if worker != nil {
		worker.Shutdown()
	}
	if err := database.Close(ctx); err != nil {
		logger.Warn("Failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("serve: server stopped gracefully")
	return nil
}
