package router

import (
	"workpaper-web/internal/config"
	"workpaper-web/internal/handler"
	"workpaper-web/internal/middleware"
	"workpaper-web/internal/repository"
	"workpaper-web/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func SetupAPIRoutes(
	router fiber.Router,
	db *sqlx.DB,
	redis *redis.Client,
	cfg *config.Config,
) {
	// Initialize repositories
	datasetRepo := repository.NewDatasetRepository(db)
	importRepo := repository.NewImportRepository(db)
	wpRepo := repository.NewWorkingPaperRepository(db)

	// Initialize services
	importService := service.NewImportService(datasetRepo, importRepo)
	wpService := service.NewWorkingPaperService(datasetRepo, wpRepo)
	analysisService := service.NewAnalysisService()
	exportService := service.NewExportService()

	// Initialize Asynq client (optional - only if Redis is available)
	var asynqClient *asynq.Client
	if redis != nil {
		asynqClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.AsynqRedisAddr,
			Password: cfg.AsynqRedisPassword,
			DB:       cfg.AsynqRedisDB,
		})
	}

	// Initialize handlers
	datasetHandler := handler.NewDatasetHandler(datasetRepo, importRepo, importService, wpService, asynqClient, cfg)
	wpHandler := handler.NewWorkingPaperHandler(wpRepo, wpService, analysisService, exportService)

	// Protected routes
	protected := router.Group("", middleware.AuthMiddleware(cfg))

	// Dataset routes
	datasets := protected.Group("/datasets")
	datasets.Post("/upload", datasetHandler.UploadFile)
	datasets.Get("/", datasetHandler.GetDatasets)
	datasets.Get("/sessions", datasetHandler.GetSessions)
	datasets.Get("/sessions/:session_code", datasetHandler.GetSession)
	datasets.Get("/:id", datasetHandler.GetDataset)
	datasets.Get("/:id/mapping", datasetHandler.GetMapping)
	datasets.Put("/:id/columns/:column_id", datasetHandler.OverrideColumn)
	datasets.Post("/:id/reprofile", datasetHandler.Reprofile)

	// Working paper routes
	papers := protected.Group("/working-papers")
	papers.Post("/generate", wpHandler.Generate)
	papers.Post("/", wpHandler.Create)
	papers.Get("/engagement/:engagement_id", wpHandler.GetByEngagement)
	papers.Get("/:id", wpHandler.GetByID)
	papers.Put("/:id", wpHandler.Update)
	papers.Delete("/:id", middleware.AdminOnly(), wpHandler.Delete)
	papers.Post("/:id/documents", wpHandler.LinkDocument)
	papers.Get("/:id/export", wpHandler.Export)

	// Classification lookup
	protected.Get("/classify/:account_number", wpHandler.Classify)
}
