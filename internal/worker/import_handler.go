package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"workpaper-web/internal/config"
	"workpaper-web/internal/repository"
	"workpaper-web/internal/service"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type ImportTaskHandler struct {
	db            *sqlx.DB
	redis         *redis.Client
	cfg           *config.Config
	importService *service.ImportService
	importRepo    *repository.ImportRepository
}

func NewImportTaskHandler(db *sqlx.DB, redis *redis.Client, cfg *config.Config) *ImportTaskHandler {
	datasetRepo := repository.NewDatasetRepository(db)
	importRepo := repository.NewImportRepository(db)

	return &ImportTaskHandler{
		db:            db,
		redis:         redis,
		cfg:           cfg,
		importService: service.NewImportService(datasetRepo, importRepo),
		importRepo:    importRepo,
	}
}

type ImportTaskPayload struct {
	SessionID   int    `json:"session_id"`
	SessionCode string `json:"session_code"`
}

func (h *ImportTaskHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var payload ImportTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	log.Printf("Starting import for session %s (ID: %d)", payload.SessionCode, payload.SessionID)

	statusKey := fmt.Sprintf("import:status:%s", payload.SessionCode)
	h.redis.Set(ctx, statusKey, "processing", 0)

	dataset, err := h.importService.ProcessSession(payload.SessionID)
	if err != nil {
		h.redis.Set(ctx, statusKey, "failed", 0)
		return fmt.Errorf("import failed for session %s: %w", payload.SessionCode, err)
	}
	if dataset == nil {
		// Session was already finished; nothing to do.
		return nil
	}

	h.redis.Set(ctx, statusKey, "completed", 0)
	log.Printf("Import completed for session %s: dataset %d version %d (%d rows)",
		payload.SessionCode, dataset.ID, dataset.Version, dataset.RowCount)

	return nil
}
