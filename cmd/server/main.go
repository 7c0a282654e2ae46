package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dias221467/Marketplace_Hub/internal/authclient"
	"github.com/Dias221467/Marketplace_Hub/internal/cascade"
	"github.com/Dias221467/Marketplace_Hub/internal/config"
	"github.com/Dias221467/Marketplace_Hub/internal/database"
	"github.com/Dias221467/Marketplace_Hub/internal/graph"
	"github.com/Dias221467/Marketplace_Hub/internal/handlers"
	"github.com/Dias221467/Marketplace_Hub/internal/repository"
	"github.com/Dias221467/Marketplace_Hub/internal/repository/memory"
	"github.com/Dias221467/Marketplace_Hub/internal/scheduler"
	"github.com/Dias221467/Marketplace_Hub/internal/services"
	"github.com/Dias221467/Marketplace_Hub/pkg/logger"
	"github.com/Dias221467/Marketplace_Hub/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"
)

type reviewStore interface {
	services.ReviewStore
	cascade.Collection
}

type commentStore interface {
	services.CommentStore
	cascade.Collection
}

// stores is the persistence layer the services run on, Mongo or in-memory.
type stores struct {
	categories    services.CategoryStore
	offers        services.OfferStore
	reviews       reviewStore
	comments      commentStore
	notifications services.NotificationStore
	tx            services.Transactor
	health        handlers.Pinger
	close         func(ctx context.Context) error
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.Store == config.StoreMemory {
		logger.Log.Warn("Using the in-memory store, data is lost on restart")
		store := memory.NewStore()
		return &stores{
			categories:    store.Categories,
			offers:        store.Offers,
			reviews:       store.Reviews,
			comments:      store.Comments,
			notifications: store.Notifications,
			tx:            store,
			health:        store,
			close:         func(context.Context) error { return nil },
		}, nil
	}

	conn, err := database.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	categoryRepo := repository.NewCategoryRepository(conn.DB)
	if err := categoryRepo.EnsureIndexes(ctx); err != nil {
		conn.Close(context.Background())
		return nil, err
	}

	return &stores{
		categories:    categoryRepo,
		offers:        repository.NewOfferRepository(conn.DB),
		reviews:       repository.NewReviewRepository(conn.DB),
		comments:      repository.NewCommentRepository(conn.DB),
		notifications: repository.NewNotificationRepository(conn.DB),
		tx:            repository.NewTransactor(conn.Client, cfg.MongoTransactions),
		health:        conn,
		close:         conn.Close,
	}, nil
}

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	if err := run(cfg); err != nil {
		logger.Log.WithError(err).Fatal("Server stopped with error")
	}
	logger.Log.Info("Server stopped")
}

// run owns every resource it opens, so they are released before main exits.
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return fmt.Errorf("database connection error: %w", err)
	}
	defer st.close(context.Background())

	// --- Cascade and remote auth service ---
	cascader := cascade.NewExecutor(map[cascade.Kind]cascade.Collection{
		cascade.Offer:   st.offers,
		cascade.Review:  st.reviews,
		cascade.Comment: st.comments,
	})
	auth := authclient.New(cfg.AuthURL, cfg.AuthTimeout)

	// --- Services ---
	offerService := services.NewOfferService(st.offers, st.categories, st.tx, cascader)
	notificationService := services.NewNotificationService(st.notifications, cfg.NotificationsRequireLogin)
	if !cfg.NotificationsRequireLogin {
		logger.Log.Warn("NOTIFICATIONS_REQUIRE_LOGIN=false: anonymous callers can create notifications")
	}

	schema, err := graph.NewSchema(graph.Services{
		Categories:    services.NewCategoryService(st.categories, auth, st.tx, cascader),
		Offers:        offerService,
		Reviews:       services.NewReviewService(st.reviews, st.categories, st.tx, cascader),
		Comments:      services.NewCommentService(st.comments, st.offers, st.reviews, st.tx, cascader),
		Notifications: notificationService,
		Users:         services.NewUserService(auth, st.tx, cascader),
	})
	if err != nil {
		return fmt.Errorf("failed to build GraphQL schema: %w", err)
	}

	cleanup, err := scheduler.NewCleanup(cfg.CleanupSchedule, offerService, notificationService, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("failed to configure cleanup scheduler: %w", err)
	}

	// --- Handlers ---
	graphQLHandler := handlers.NewGraphQLHandler(schema)
	healthHandler := handlers.NewHealthHandler(st.health)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	api := router.PathPrefix("/graphql").Subrouter()
	api.Use(middleware.TimeoutMiddleware(cfg.RequestTimeout))
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	api.Handle("", graphQLHandler).Methods("GET", "POST")

	router.HandleFunc("/healthz", healthHandler.HealthHandler).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Log.WithField("port", cfg.Port).Info("Server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return cleanup.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
