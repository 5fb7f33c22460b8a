// Package server wires configuration, storage, services and transports into
// a runnable QDrive server and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/qdrive/internal/logging"
	"github.com/dmitrijs2005/qdrive/internal/server/auth"
	"github.com/dmitrijs2005/qdrive/internal/server/config"
	"github.com/dmitrijs2005/qdrive/internal/server/events"
	gs "github.com/dmitrijs2005/qdrive/internal/server/grpc"
	"github.com/dmitrijs2005/qdrive/internal/server/httpapi"
	"github.com/dmitrijs2005/qdrive/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/qdrive/internal/server/services"
	"github.com/gin-gonic/gin"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	publisher      events.Publisher
	authService    *services.AuthService
	rideService    *services.RideService
	profileService *services.ProfileService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenManager([]byte(c.SecretKey))
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	presigner, err := services.NewS3Presigner(ctx, c)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("s3 init error: %w", err)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if c.AMQPURL != "" {
		p, err := events.Dial(c.AMQPURL, c.AMQPExchange, logger.With("module", "events"))
		if err != nil {
			logger.Warn(ctx, "ride events disabled", "error", err)
		} else {
			publisher = p
		}
	}

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		publisher:      publisher,
		authService:    services.NewAuthService(db, rm, tokens, c, logger),
		rideService:    services.NewRideService(db, rm, publisher, logger),
		profileService: services.NewProfileService(db, rm, presigner, c),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) handler() *httpapi.Handler {
	mode := gin.ReleaseMode
	if app.config.Environment == config.EnvDevelopment {
		mode = gin.DebugMode
	}
	return httpapi.NewHandler(app.authService, app.rideService, app.profileService, httpapi.Options{
		SecureCookies:   app.config.Secure(),
		WebRoot:         app.config.WebRoot,
		SessionValidity: app.config.SessionValidity,
		Mode:            mode,
	}, app.logger)
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.handler().Routes(), app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.db)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves HTTP and gRPC until ctx is cancelled or a signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "environment", app.config.Environment)

	app.initSignalHandler(cancelFunc)

	if _, err := app.authService.PurgeRevoked(ctx); err != nil {
		app.logger.Warn(ctx, "revocation cleanup failed", "error", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.publisher.Close(); err != nil {
		app.logger.Warn(context.Background(), "closing publisher", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(context.Background(), "closing database", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
