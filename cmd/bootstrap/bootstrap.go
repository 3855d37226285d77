package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"patients-management/config"
	deliveryHttp "patients-management/internal/delivery/http"
	"patients-management/internal/delivery/http/handler"
	"patients-management/internal/delivery/http/middleware"
	"patients-management/internal/infrastructure/cache"
	"patients-management/internal/infrastructure/database"
	"patients-management/internal/repository"
	"patients-management/internal/service"
	"patients-management/internal/usecase"
	"patients-management/pkg/jwt"
	"patients-management/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := NewLogger(cfg.App.LogLevel)
	app := &App{Config: cfg, Log: log}

	// Postgres and Redis are independent, dial them together.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		db, err := database.NewPostgresConnection(cfg.DB, cfg.App)
		if err != nil {
			return err
		}
		app.DB = db
		return nil
	})
	g.Go(func() error {
		client, err := cache.NewRedisClient(gctx, cfg.Redis)
		if err != nil {
			return err
		}
		app.RedisClient = client
		return nil
	})
	if err := g.Wait(); err != nil {
		app.Close()
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		if err := Migrate(cfg, log, func(m *database.Migrator) error { return m.Up() }); err != nil {
			app.Close()
			return nil, err
		}
	}

	app.Server = initializeServer(cfg, log, app.DB, app.RedisClient)

	return app, nil
}

// NewLogger builds the JSON logger shared by every layer.
func NewLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}

// Migrate opens a migrator, runs fn against it and closes it.
func Migrate(cfg *config.Config, log *logrus.Logger, fn func(m *database.Migrator) error) error {
	migrator, err := database.NewMigrator(cfg.DB, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			log.Warnf("Failed to close migrator: %+v", err)
		}
	}()
	return fn(migrator)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client) *http.Server {
	now := func() time.Time { return time.Now().In(cfg.Location()) }

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	tokenStore := service.NewRedisTokenStore(redisClient)
	transactor := repository.NewTransactor(db)

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	doctorRepo := repository.NewDoctorRepository()
	medicineRepo := repository.NewMedicineRepository()
	recordRepo := repository.NewRecordRepository()
	prescribedMedicineRepo := repository.NewPrescribedMedicineRepository()
	givenMedicineRepo := repository.NewGivenMedicineRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	billingService := service.NewBillingService(log, givenMedicineRepo)
	defaultRecords := service.NewDefaultRecordService(log, patientRepo, doctorRepo, recordRepo, now)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(transactor, log, userRepo, doctorRepo, jwtService, tokenStore, auditService)
	userUsecase := usecase.NewUserUsecase(transactor, log, userRepo, doctorRepo, tokenStore, auditService)
	patientUsecase := usecase.NewPatientUsecase(transactor, log, patientRepo, recordRepo, prescribedMedicineRepo, givenMedicineRepo, defaultRecords, billingService, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(transactor, log, userRepo, doctorRepo, recordRepo, auditService)
	medicineUsecase := usecase.NewMedicineUsecase(transactor, log, medicineRepo, auditService)
	recordUsecase := usecase.NewRecordUsecase(transactor, log, patientRepo, doctorRepo, recordRepo, billingService, auditService, now)
	prescribedMedicineUsecase := usecase.NewPrescribedMedicineUsecase(transactor, log, recordRepo, medicineRepo, prescribedMedicineRepo, defaultRecords, auditService)
	givenMedicineUsecase := usecase.NewGivenMedicineUsecase(transactor, log, patientRepo, medicineRepo, prescribedMedicineRepo, givenMedicineRepo, defaultRecords, auditService)
	reportUsecase := usecase.NewReportUsecase(transactor, log, givenMedicineRepo, now)
	auditLogUsecase := usecase.NewAuditLogUsecase(transactor, log, auditLogRepo)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:               handler.NewAuthHandler(authUsecase, customValidator),
		User:               handler.NewUserHandler(userUsecase, customValidator),
		Patient:            handler.NewPatientHandler(patientUsecase, customValidator),
		Doctor:             handler.NewDoctorHandler(doctorUsecase, customValidator),
		Medicine:           handler.NewMedicineHandler(medicineUsecase, customValidator),
		Record:             handler.NewRecordHandler(recordUsecase, customValidator),
		PrescribedMedicine: handler.NewPrescribedMedicineHandler(prescribedMedicineUsecase, customValidator),
		GivenMedicine:      handler.NewGivenMedicineHandler(givenMedicineUsecase, customValidator),
		Report:             handler.NewReportHandler(reportUsecase),
		AuditLog:           handler.NewAuditLogHandler(auditLogUsecase),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.CORS.AllowedOrigins)

	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware, log)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and blocks until shutdown completes.
func (app *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		app.Close()
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-quit:
	}

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		_ = app.RedisClient.Close()
	}
}
