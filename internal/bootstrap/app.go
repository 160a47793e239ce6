package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/config"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/database"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/handler"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/logger"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/middleware"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/repository"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/service"
)

type App struct {
	Echo *echo.Echo
	DB   *sql.DB
	// ES is nil when ES_URL is unset or the cluster was unreachable at startup.
	ES *database.ElasticSearchClient
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

// Initialize loads configuration, opens the backing stores and wires the API.
func (a *App) Initialize(ctx context.Context) error {
	if err := a.InitializeStores(ctx); err != nil {
		return err
	}
	cfg := config.DefaultEnvConfig

	var index domain.StaffIndex
	if a.ES != nil {
		index = a.ES
	}

	staffRepo := repository.NewStaffRepository(a.DB)
	scheduleSvc := service.NewScheduleService(staffRepo, repository.NewSlotRepository(a.DB))
	exportSvc, err := service.NewExportService(scheduleSvc, cfg.EXPORT_CONFIG_PATH)
	if err != nil {
		return fmt.Errorf("failed to load export layout: %w", err)
	}

	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, exportSvc)
	staffHandler := handler.NewStaffHandler(
		service.NewStaffService(staffRepo, index),
		service.NewAvailabilityService(repository.NewAvailabilityRepository(a.DB)),
		service.NewTimeOffService(repository.NewTimeOffRepository(a.DB)),
	)
	budgetHandler := handler.NewBudgetHandler(
		service.NewBudgetService(repository.NewBudgetRepository(a.DB), scheduleSvc),
		service.NewReportService(scheduleSvc),
	)

	a.RegisterMiddlewares()
	a.RegisterRoutes(cfg.JWT_SECRET, scheduleHandler, staffHandler, budgetHandler)
	return nil
}

// InitializeStores loads configuration and opens the database and the
// optional search index. The seeder stops here.
func (a *App) InitializeStores(ctx context.Context) error {
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	cfg := config.DefaultEnvConfig

	logger.InitLogging(cfg.LOG_FILE_PATH)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:            cfg.DB_HOST,
		Port:            cfg.DB_PORT,
		User:            cfg.DB_USER,
		Password:        cfg.DB_PASSWORD,
		DBName:          cfg.DB_NAME,
		SSLMode:         cfg.DB_SSL_MODE,
		MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	a.DB = db

	if cfg.ES_URL == "" {
		logger.InfoLog(ctx, "ES_URL not set, staff search uses the database")
		return nil
	}
	es, err := database.NewElasticSearchClient(cfg.ES_URL)
	if err == nil {
		err = es.EnsureIndex(ctx)
	}
	if err != nil {
		logger.WarnLog(ctx, "Elasticsearch unavailable, staff search uses the database: %v", err)
		return nil
	}
	a.ES = es
	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(echomw.Recover())
	a.Echo.Use(echomw.CORS())
	a.Echo.Use(middleware.RequestLogger())
}

func (a *App) RegisterRoutes(jwtSecret string, sh *handler.ScheduleHandler, st *handler.StaffHandler, bh *handler.BudgetHandler) {
	a.Echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := a.Echo.Group("")
	if jwtSecret != "" {
		api.Use(middleware.JWT(jwtSecret))
	}
	handler.RegisterRoutes(api, sh, st, bh)
}

func (a *App) Run() error {
	defer a.DB.Close()
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
