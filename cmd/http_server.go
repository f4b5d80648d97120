package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
	"github.com/frahmantamala/hospital-workforce/internal/analytics"
	analyticspg "github.com/frahmantamala/hospital-workforce/internal/analytics/postgres"
	"github.com/frahmantamala/hospital-workforce/internal/auth"
	authpg "github.com/frahmantamala/hospital-workforce/internal/auth/postgres"
	"github.com/frahmantamala/hospital-workforce/internal/department"
	departmentpg "github.com/frahmantamala/hospital-workforce/internal/department/postgres"
	"github.com/frahmantamala/hospital-workforce/internal/handover"
	handoverpg "github.com/frahmantamala/hospital-workforce/internal/handover/postgres"
	"github.com/frahmantamala/hospital-workforce/internal/hospital"
	hospitalpg "github.com/frahmantamala/hospital-workforce/internal/hospital/postgres"
	"github.com/frahmantamala/hospital-workforce/internal/leave"
	leavepg "github.com/frahmantamala/hospital-workforce/internal/leave/postgres"
	"github.com/frahmantamala/hospital-workforce/internal/patient"
	patientpg "github.com/frahmantamala/hospital-workforce/internal/patient/postgres"
	"github.com/frahmantamala/hospital-workforce/internal/shift"
	shiftpg "github.com/frahmantamala/hospital-workforce/internal/shift/postgres"
	"github.com/frahmantamala/hospital-workforce/internal/swap"
	swappg "github.com/frahmantamala/hospital-workforce/internal/swap/postgres"
	"github.com/frahmantamala/hospital-workforce/internal/task"
	taskpg "github.com/frahmantamala/hospital-workforce/internal/task/postgres"
	"github.com/frahmantamala/hospital-workforce/internal/transport/rest"
	"github.com/frahmantamala/hospital-workforce/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config  *internal.Config
	DB      *sqlx.DB
	GormDB  *gorm.DB
	Handler http.Handler
	Logger  *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Handler,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := internal.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGormDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	authz := accesscontrol.New(gormDB, log)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authpg.NewProfileRepository(gormDB), tokenGen, log)

	hospitalService := hospital.NewService(hospitalpg.NewHospitalRepository(gormDB), authz, log)
	departmentService := department.NewService(departmentpg.NewDepartmentRepository(gormDB), authz, log)
	patientService := patient.NewService(patientpg.NewPatientRepository(gormDB), authz, log)
	taskService := task.NewService(taskpg.NewTaskRepository(gormDB), authz, log)
	shiftRepo := shiftpg.NewShiftRepository(gormDB)
	shiftService := shift.NewService(shiftRepo, authz, log)
	leaveService := leave.NewService(leavepg.NewLeaveRepository(gormDB), authz, log)
	swapService := swap.NewService(swappg.NewSwapRepository(gormDB), shiftRepo, authz, log)
	handoverService := handover.NewService(handoverpg.NewHandoverRepository(gormDB), authz, log)
	analyticsService := analytics.NewService(analyticspg.NewAnalyticsRepository(gormDB), authz, log)

	handlers := rest.Handlers{
		Auth:       auth.NewHandler(authService),
		Hospital:   hospital.NewHandler(hospitalService),
		Department: department.NewHandler(departmentService),
		Patient:    patient.NewHandler(patientService),
		Task:       task.NewHandler(taskService),
		Shift:      shift.NewHandler(shiftService),
		Leave:      leave.NewHandler(leaveService),
		Swap:       swap.NewHandler(swapService),
		Handover:   handover.NewHandler(handoverService),
		Analytics:  analytics.NewHandler(analyticsService),
	}

	return &Dependencies{
		Config:  config,
		Logger:  log,
		DB:      db,
		GormDB:  gormDB,
		Handler: rest.NewRouter(handlers, db.DB, log),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGormDB layers the ORM over the already-open connection pool so both
// layers share one pool.
func initGormDB(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
}
