package handler

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"workpaper-web/internal/config"
	"workpaper-web/internal/models"
	"workpaper-web/internal/repository"
	"workpaper-web/internal/service"
	"workpaper-web/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

var supportedExtensions = map[string]bool{
	".csv": true, ".txt": true, ".tsv": true, ".xlsx": true, ".xls": true,
}

type DatasetHandler struct {
	datasetRepo   *repository.DatasetRepository
	importRepo    *repository.ImportRepository
	importService *service.ImportService
	wpService     *service.WorkingPaperService
	asynqClient   *asynq.Client
	cfg           *config.Config
}

func NewDatasetHandler(
	datasetRepo *repository.DatasetRepository,
	importRepo *repository.ImportRepository,
	importService *service.ImportService,
	wpService *service.WorkingPaperService,
	asynqClient *asynq.Client,
	cfg *config.Config,
) *DatasetHandler {
	return &DatasetHandler{
		datasetRepo:   datasetRepo,
		importRepo:    importRepo,
		importService: importService,
		wpService:     wpService,
		asynqClient:   asynqClient,
		cfg:           cfg,
	}
}

// UploadFile accepts a spreadsheet, records an import session and hands it to
// the background worker. Without Redis the import runs inline so the endpoint
// still works in a single-process deployment.
func (h *DatasetHandler) UploadFile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)

	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File is required", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !supportedExtensions[ext] {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only CSV, TSV and Excel files are allowed", nil)
	}
	if file.Size > int64(h.cfg.UploadMaxSize) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File size exceeds maximum limit", nil)
	}

	datasetName := c.FormValue("dataset_name")
	if datasetName == "" {
		datasetName = strings.TrimSuffix(file.Filename, ext)
	}

	sessionCode := fmt.Sprintf("IMPORT-%s", uuid.New().String()[:8])
	filePath := filepath.Join(h.cfg.UploadPath, fmt.Sprintf("%s%s", sessionCode, ext))
	if err := c.SaveFile(file, filePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save file", err)
	}

	session := &models.ImportSession{
		SessionCode: sessionCode,
		UserID:      userID,
		DatasetName: datasetName,
		Filename:    file.Filename,
		FilePath:    filePath,
		Status:      models.SessionStatusUploaded,
	}
	if err := h.importRepo.CreateSession(session); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create import session", err)
	}

	if h.asynqClient != nil {
		payload, _ := json.Marshal(fiber.Map{
			"session_id":   session.ID,
			"session_code": session.SessionCode,
		})
		task := asynq.NewTask("dataset:import", payload)
		info, err := h.asynqClient.Enqueue(task)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to queue import task", err)
		}
		return utils.SuccessResponse(c, "File uploaded, import queued", fiber.Map{
			"session": session,
			"job_id":  info.ID,
		})
	}

	// Inline fallback when Redis is unavailable
	dataset, err := h.importService.ProcessSession(session.ID)
	if err != nil {
		return utils.DomainErrorResponse(c, "Failed to import file", err)
	}
	return utils.SuccessResponse(c, "File imported successfully", fiber.Map{
		"session": session,
		"dataset": dataset,
	})
}

func (h *DatasetHandler) GetSessions(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	sessions, total, err := h.importRepo.GetSessions(params.Limit, offset)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve sessions", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))
	return utils.PaginatedResponseBuilder(c, "Sessions retrieved successfully", fiber.Map{
		"sessions":   sessions,
		"pagination": pagination,
	}, pagination)
}

func (h *DatasetHandler) GetSession(c *fiber.Ctx) error {
	code := c.Params("session_code")
	session, err := h.importRepo.GetSessionByCode(code)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Session not found", err)
	}
	return utils.SuccessResponse(c, "Session retrieved successfully", session)
}

func (h *DatasetHandler) GetDatasets(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	datasets, total, err := h.datasetRepo.GetDatasets(params.Limit, offset)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve datasets", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))
	return utils.PaginatedResponseBuilder(c, "Datasets retrieved successfully", fiber.Map{
		"datasets":   datasets,
		"pagination": pagination,
	}, pagination)
}

func (h *DatasetHandler) GetDataset(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid dataset ID", err)
	}

	dataset, err := h.datasetRepo.GetDatasetByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Dataset not found", err)
	}
	return utils.SuccessResponse(c, "Dataset retrieved successfully", dataset)
}

// GetMapping resolves the dataset's headers onto the canonical trial-balance
// fields and includes advisory suggestions for the fields left unmapped.
func (h *DatasetHandler) GetMapping(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid dataset ID", err)
	}

	mapping, suggestions, err := h.wpService.ResolveMapping(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Dataset not found", err)
	}
	return utils.SuccessResponse(c, "Mapping resolved successfully", fiber.Map{
		"mapping":     mapping,
		"suggestions": suggestions,
	})
}

type overrideColumnRequest struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
}

// OverrideColumn applies a user edit to one column. The edit sticks: later
// re-profiling never reverts an overridden column.
func (h *DatasetHandler) OverrideColumn(c *fiber.Ctx) error {
	datasetID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid dataset ID", err)
	}
	columnID, err := strconv.Atoi(c.Params("column_id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid column ID", err)
	}

	var req overrideColumnRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	columns, err := h.datasetRepo.GetColumns(datasetID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Dataset not found", err)
	}
	var target *models.ColumnMetadata
	for i := range columns {
		if columns[i].ID == columnID {
			target = &columns[i]
			break
		}
	}
	if target == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Column not found", nil)
	}

	name := req.Name
	if name == "" {
		name = target.Name
	}
	dataType := req.DataType
	if dataType == "" {
		dataType = target.DataType
	}
	switch dataType {
	case models.DataTypeText, models.DataTypeNumeric, models.DataTypeDate,
		models.DataTypeBoolean, models.DataTypeCurrency:
	default:
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unknown data type", nil)
	}

	if err := h.datasetRepo.OverrideColumn(columnID, name, dataType); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to override column", err)
	}

	target.Name = name
	target.DataType = dataType
	target.Overridden = true
	return utils.SuccessResponse(c, "Column overridden successfully", target)
}

// Reprofile recomputes column metadata from the stored sheet, leaving
// overridden columns untouched.
func (h *DatasetHandler) Reprofile(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid dataset ID", err)
	}

	dataset, err := h.importService.Reprofile(id)
	if err != nil {
		return utils.DomainErrorResponse(c, "Failed to reprofile dataset", err)
	}
	return utils.SuccessResponse(c, "Dataset reprofiled successfully", dataset)
}
