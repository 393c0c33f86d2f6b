// Package app wires the application's components together. All dependencies
// are passed explicitly at construction; nothing reaches for globals.
package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/colligo/internal/common"
	"github.com/ternarybob/colligo/internal/handlers"
	"github.com/ternarybob/colligo/internal/services/articles"
	"github.com/ternarybob/colligo/internal/services/entities"
	"github.com/ternarybob/colligo/internal/services/scheduler"
	"github.com/ternarybob/colligo/internal/services/validation"
	"github.com/ternarybob/colligo/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Storage
	StorageManager *badger.Manager

	// Services
	ValidationService *validation.Service
	EntityCoordinator *entities.Coordinator
	ArticleService    *articles.Service
	SchedulerService  *scheduler.Service

	// HTTP handlers
	EntityHandler  *handlers.EntityHandler
	ArticleHandler *handlers.ArticleHandler
	APIHandler     *handlers.APIHandler
}

// New creates the application, opening storage and wiring every service.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	storageManager, err := badger.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	validationService := validation.NewService(logger)
	coordinator := entities.NewCoordinator(storageManager, validationService, logger)
	articleService := articles.NewService(storageManager.Articles(), validationService, logger)
	schedulerService := scheduler.NewService(&config.Maintenance, storageManager.Store(), logger)

	app := &App{
		Config:            config,
		Logger:            logger,
		StorageManager:    storageManager,
		ValidationService: validationService,
		EntityCoordinator: coordinator,
		ArticleService:    articleService,
		SchedulerService:  schedulerService,
		EntityHandler:     handlers.NewEntityHandler(coordinator, config, logger),
		ArticleHandler:    handlers.NewArticleHandler(articleService, config, logger),
		APIHandler:        handlers.NewAPIHandler(logger),
	}

	if err := schedulerService.Start(); err != nil {
		storageManager.Close()
		return nil, err
	}

	logger.Info().
		Str("environment", config.Environment).
		Str("storage", config.Storage.Badger.Path).
		Msg("Application initialized")

	return app, nil
}

// Close stops background services and releases storage.
func (a *App) Close() error {
	a.SchedulerService.Stop()

	if err := a.StorageManager.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}

	a.Logger.Info().Msg("Application shut down")
	return nil
}
