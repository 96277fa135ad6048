//	@title			Quick Share API
//	@version		1.0
//	@description	Shared-room content drop: text snippets and files behind a room id and shared key.
//
//	@host		localhost:5000
//	@BasePath	/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: **Bearer {token}**

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/quickshare/service/internal/config"
	"github.com/quickshare/service/internal/content"
	"github.com/quickshare/service/internal/db"
	"github.com/quickshare/service/internal/logger"
	"github.com/quickshare/service/internal/metrics"
	appMiddleware "github.com/quickshare/service/internal/middleware"
	"github.com/quickshare/service/internal/room"
	"github.com/quickshare/service/internal/storage"
	"github.com/quickshare/service/internal/sweeper"
	"github.com/quickshare/service/internal/upload"

	_ "github.com/quickshare/service/docs/swagger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.AppEnv)

	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}
	log.Info().Msg("connected to database, migrations applied")

	store, err := storage.NewMinioStore(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StorageRegion,
		cfg.StorageUseSSL,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("object storage init failed")
	}

	m := metrics.New(nil)

	// Wire dependencies: repository → service → handler
	roomRepo := room.NewRepository(pool)
	contentRepo := content.NewRepository(pool)

	roomSvc := room.NewService(roomRepo, contentRepo, store, cfg.JWTSecret,
		logger.WithComponent(log, "room"), m)
	roomHandler := room.NewHandler(roomSvc)

	contentSvc := content.NewService(contentRepo, roomRepo, store,
		logger.WithComponent(log, "content"), m)
	contentHandler := content.NewHandler(contentSvc)

	uploadSvc := upload.NewService(store, cfg.MaxUploadBytes)
	uploadHandler := upload.NewHandler(uploadSvc)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(logger.WithComponent(log, "http")))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.ClientOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public room entry
		r.Post("/rooms", roomHandler.CreateOrLogin)

		// Everything else requires a room-scoped bearer token.
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.RequireRoom(cfg.JWTSecret))

			r.Delete("/rooms/{roomId}", roomHandler.Delete)

			r.Route("/contents", func(r chi.Router) {
				r.Get("/", contentHandler.List)
				r.Post("/text", contentHandler.CreateText)
				r.Post("/file", contentHandler.CreateFile)
				r.Delete("/{id}", contentHandler.Delete)
			})

			r.Post("/s3/upload-url", uploadHandler.UploadURL)
		})
	})

	// Expiry sweeper. Fail-safe: without a valid retention window the
	// destructive loop never starts.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()

	var sw *sweeper.Sweeper
	if sw, err = sweeper.New(roomSvc, cfg.RetentionDays, cfg.SweepInterval,
		logger.WithComponent(log, "sweeper"), m); err != nil {
		log.Error().Err(err).Msg("ROOM_RETENTION_DAYS missing or invalid, expiry sweeper disabled")
	} else {
		go sw.Run(sweepCtx)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-quit
	log.Info().Msg("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}

	// Let an in-flight sweep finish, up to a grace period.
	stopSweep()
	if sw != nil {
		select {
		case <-sw.Done():
		case <-time.After(10 * time.Second):
			log.Warn().Msg("abandoning in-flight sweep")
		}
	}

	log.Info().Msg("server stopped")
}
