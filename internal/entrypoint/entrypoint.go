package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/ebookshelf/internal/config"
	"github.com/mrlokans/ebookshelf/internal/database/books"
	http_controllers "github.com/mrlokans/ebookshelf/internal/http"
	"github.com/mrlokans/ebookshelf/internal/library"
	"github.com/mrlokans/ebookshelf/internal/logger"
	"github.com/mrlokans/ebookshelf/internal/uploads"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	log := logger.Get()
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Dur("timeout", timeout).Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info().Msg("server exiting")
}

// Run wires the storage backend, upload store and router, then serves.
func Run(cfg *config.Config, version string) {
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Get()
	log.Info().Str("version", version).Msg("starting ebookshelf")

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	backend, err := books.Open(context.Background(), cfg.Database, cfg.Logging.Level == "debug")
	if err != nil {
		log.Fatal().Err(err).Str("driver", string(cfg.Database.Driver)).Msg("failed to open database")
	}

	files, err := uploads.NewStore(cfg.Uploads.Dir)
	if err != nil {
		backend.Close()
		log.Fatal().Err(err).Msg("failed to prepare uploads directory")
	}
	log.Info().Str("dir", files.Dir()).Msg("uploads directory ready")

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Service:            library.NewService(backend, files),
		Database:           backend,
		Uploads:            files,
		Version:            version,
		MaxMultipartMemory: cfg.Uploads.MaxMemoryMB << 20,
		CORSAllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	onShutdown := func(ctx context.Context) {
		if err := backend.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}

	Serve(router, cfg, onShutdown)
}
