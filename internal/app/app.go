package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	"github.com/fastopp/fastopp/internal/config"
	"github.com/fastopp/fastopp/internal/db"
	"github.com/fastopp/fastopp/internal/repository"
	"github.com/fastopp/fastopp/internal/service"
	"github.com/fastopp/fastopp/internal/storage"
)

type App struct {
	Cfg               *config.Config
	DB                *sqlx.DB
	AuthService       *service.AuthService
	UserService       *service.UserService
	ProductService    *service.ProductService
	RegistrantService *service.RegistrantService
	AuditService      *service.AuditService
	PhotoStore        storage.Storage
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Upload directories must exist before the static mount serves them
	err = os.MkdirAll(filepath.Join(cfg.UploadDir, "photos"), 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	productRepository := repository.NewProductRepository(database)
	registrantRepository := repository.NewRegistrantRepository(database)
	auditRepository := repository.NewAuditLogRepository(database)

	// Storage backend is chosen once here; requests never re-select it
	photoStore, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	auditService := service.NewAuditService(auditRepository)
	authService := service.NewAuthService(userRepository, cfg.SessionSecret, cfg.SessionExpiry, cfg.IsProduction())
	userService := service.NewUserService(userRepository)
	productService := service.NewProductService(productRepository)
	registrantService := service.NewRegistrantService(registrantRepository, photoStore, auditService)

	return &App{
		Cfg:               cfg,
		DB:                database,
		AuthService:       authService,
		UserService:       userService,
		ProductService:    productService,
		RegistrantService: registrantService,
		AuditService:      auditService,
		PhotoStore:        photoStore,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
