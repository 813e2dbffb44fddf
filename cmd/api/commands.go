package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tomlord1122/portfolio-backend/internal/config"
	"github.com/Tomlord1122/portfolio-backend/internal/database"
	"github.com/Tomlord1122/portfolio-backend/internal/domain"
	"github.com/Tomlord1122/portfolio-backend/internal/logging"
	"github.com/Tomlord1122/portfolio-backend/internal/repository"
	"github.com/Tomlord1122/portfolio-backend/internal/server"
	"github.com/Tomlord1122/portfolio-backend/internal/service"
	"github.com/Tomlord1122/portfolio-backend/internal/telemetry"
	"github.com/Tomlord1122/portfolio-backend/internal/validate"
)

// app carries what every subcommand needs once PersistentPreRunE has run.
type app struct {
	cfg config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "api",
		Short:         "Guestbook and todo list backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Env, cfg.LogLevel)
			if err != nil {
				return err
			}
			a.cfg, a.log = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.serve(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database tables and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.migrate()
			},
		},
	)
	return root
}

func (a *app) migrate() error {
	if a.cfg.Store != config.StorePostgres {
		return fmt.Errorf("migrate needs STORE=%s, got %q", config.StorePostgres, a.cfg.Store)
	}
	dbService, err := database.New(a.cfg.Database, a.log)
	if err != nil {
		return err
	}
	defer dbService.Close()

	a.log.Info("running database migrations")
	if err := dbService.Migrate(); err != nil {
		return err
	}
	a.log.Info("database migrations complete")
	return nil
}

func (a *app) serve(ctx context.Context) error {
	// Cancelling also stops gracefulShutdown when ListenAndServe fails early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shutdownTracing, err := telemetry.Setup(ctx, a.cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			a.log.Warn("flush traces", zap.Error(err))
		}
	}()

	// 1. Initialize the store
	var (
		dbService     database.Service
		guestbookRepo repository.Repository[domain.GuestbookEntry]
		todoRepo      repository.Repository[domain.Todo]
	)
	switch a.cfg.Store {
	case config.StorePostgres:
		dbService, err = database.New(a.cfg.Database, a.log)
		if err != nil {
			return err
		}
		if a.cfg.Database.AutoMigrate {
			a.log.Info("running database auto-migration")
			if err := dbService.Migrate(); err != nil {
				_ = dbService.Close()
				return err
			}
		}
		guestbookRepo = repository.NewGormRepository[domain.GuestbookEntry](dbService.DB())
		todoRepo = repository.NewGormRepository[domain.Todo](dbService.DB())
	case config.StoreMemory:
		a.log.Warn("using in-memory store, data is lost on exit")
		guestbookRepo = repository.NewMemoryRepository[domain.GuestbookEntry]()
		todoRepo = repository.NewMemoryRepository[domain.Todo]()
	}

	// 2. Initialize Services
	v := validate.New()
	guestbookService := service.New[domain.GuestbookEntry, service.CreateGuestbookEntryRequest, service.UpdateGuestbookEntryRequest](
		"guestbook", guestbookRepo, v, a.log)
	todoService := service.New[domain.Todo, service.CreateTodoRequest, service.UpdateTodoRequest](
		"todos", todoRepo, v, a.log)

	// 3. Initialize Server/Router
	apiServer := server.NewServer(a.cfg, a.log, dbService, guestbookService, todoService)

	done := make(chan struct{})
	go a.gracefulShutdown(ctx, apiServer, dbService, done)

	a.log.Info("starting server", zap.String("addr", apiServer.Addr), zap.String("store", a.cfg.Store))
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server ListenAndServe: %w", err)
	}

	<-done
	a.log.Info("graceful shutdown complete")
	return nil
}

func (a *app) gracefulShutdown(parent context.Context, apiServer *http.Server, dbService database.Service, done chan<- struct{}) {
	defer close(done)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	a.log.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	// The server has ShutdownTimeout to finish the requests it is handling.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		a.log.Error("server forced to shutdown", zap.Error(err))
	}

	if dbService != nil {
		if err := dbService.Close(); err != nil {
			a.log.Error("closing database connection pool", zap.Error(err))
		}
	}
}
