// Package server initializes and runs the reservation API server. It opens
// the database, applies migrations, seeds the default manager account, and
// serves the HTTP endpoint until an OS signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/example/reserva/internal/logging"
	"github.com/example/reserva/internal/server/config"
	sh "github.com/example/reserva/internal/server/http"
	"github.com/example/reserva/internal/server/repositories/repomanager"
	"github.com/example/reserva/internal/server/services"
)

type App struct {
	config             *config.Config
	logger             logging.Logger
	db                 *sql.DB
	userService        *services.UserService
	spaceService       *services.SpaceService
	reservationService *services.ReservationService
	departmentService  *services.DepartmentService
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us := services.NewUserService(db, rm, cfg)
	if err := us.EnsureDefaultManager(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, fmt.Errorf("seeding default manager: %w", err)
	}

	return &App{
		config:             cfg,
		logger:             logger,
		db:                 db,
		userService:        us,
		spaceService:       services.NewSpaceService(db, rm, cfg),
		reservationService: services.NewReservationService(db, rm, cfg),
		departmentService:  services.NewDepartmentService(db, rm, cfg),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	router := sh.NewRouter(sh.RouterConfig{
		Auth:         sh.NewAuthHandler(app.userService, app.logger),
		Spaces:       sh.NewSpaceHandler(app.spaceService, app.logger),
		Reservations: sh.NewReservationHandler(app.reservationService, app.logger),
		Departments:  sh.NewDepartmentHandler(app.departmentService, app.logger),
		Users:        sh.NewUserHandler(app.userService, app.logger),
		SecretKey:    []byte(app.config.SecretKey),
		Logger:       app.logger,
	})

	s := sh.NewServer(app.config.EndpointAddr, router, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
}
