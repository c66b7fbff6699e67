package handler

import (
	"fmt"
	"strconv"

	"workpaper-web/internal/models"
	"workpaper-web/internal/repository"
	"workpaper-web/internal/service"
	"workpaper-web/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WorkingPaperHandler struct {
	wpRepo        *repository.WorkingPaperRepository
	wpService     *service.WorkingPaperService
	analysis      *service.AnalysisService
	exportService *service.ExportService
}

func NewWorkingPaperHandler(
	wpRepo *repository.WorkingPaperRepository,
	wpService *service.WorkingPaperService,
	analysis *service.AnalysisService,
	exportService *service.ExportService,
) *WorkingPaperHandler {
	return &WorkingPaperHandler{
		wpRepo:        wpRepo,
		wpService:     wpService,
		analysis:      analysis,
		exportService: exportService,
	}
}

// Generate derives a working paper from a stored dataset.
func (h *WorkingPaperHandler) Generate(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)

	var req service.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if req.DatasetID == 0 || req.EngagementID == "" || req.Name == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "dataset_id, engagement_id and name are required", nil)
	}
	req.CreatedBy = userID

	wp, err := h.wpService.GenerateFromDataset(req)
	if err != nil {
		return utils.DomainErrorResponse(c, "Failed to generate working paper", err)
	}
	return utils.SuccessResponse(c, "Working paper generated successfully", wp)
}

type createWorkingPaperRequest struct {
	EngagementID       string                  `json:"engagement_id"`
	Name               string                  `json:"name"`
	Description        string                  `json:"description"`
	Accounts           []models.AccountBalance `json:"accounts"`
	PriorBalances      []models.AccountBalance `json:"prior_balances"`
	ExpectedBalances   []models.AccountBalance `json:"expected_balances"`
	AdjustmentAccounts []string                `json:"adjustment_accounts"`
}

// Create builds a working paper directly from account balances supplied in
// the request, without going through a dataset.
func (h *WorkingPaperHandler) Create(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)

	var req createWorkingPaperRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if req.EngagementID == "" || req.Name == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "engagement_id and name are required", nil)
	}

	flagged := make(map[string]bool, len(req.AdjustmentAccounts))
	for _, number := range req.AdjustmentAccounts {
		flagged[number] = true
	}
	for i := range req.Accounts {
		if flagged[req.Accounts[i].AccountNumber] {
			req.Accounts[i].AdjustmentOnly = true
		}
	}

	wp, err := h.analysis.BuildWorkingPaper(req.Accounts, req.PriorBalances, req.ExpectedBalances)
	if err != nil {
		return utils.DomainErrorResponse(c, "Failed to build working paper", err)
	}

	wp.EngagementID = req.EngagementID
	wp.Name = req.Name
	wp.Description = req.Description
	wp.CreatedBy = userID

	if err := h.wpRepo.Create(wp); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to store working paper", err)
	}
	return utils.SuccessResponse(c, "Working paper created successfully", wp)
}

func (h *WorkingPaperHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid working paper ID", err)
	}

	wp, err := h.wpRepo.GetByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Working paper not found", err)
	}
	return utils.SuccessResponse(c, "Working paper retrieved successfully", wp)
}

func (h *WorkingPaperHandler) GetByEngagement(c *fiber.Ctx) error {
	engagementID := c.Params("engagement_id")
	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	papers, total, err := h.wpRepo.GetByEngagement(engagementID, params.Limit, offset)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve working papers", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))
	return utils.PaginatedResponseBuilder(c, "Working papers retrieved successfully", fiber.Map{
		"working_papers": papers,
		"pagination":     pagination,
	}, pagination)
}

// Update replaces the stored working paper wholesale with the request body.
func (h *WorkingPaperHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid working paper ID", err)
	}

	existing, err := h.wpRepo.GetByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Working paper not found", err)
	}

	var wp models.WorkingPaper
	if err := c.BodyParser(&wp); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	wp.ID = existing.ID
	wp.EngagementID = existing.EngagementID
	wp.CreatedBy = existing.CreatedBy

	if err := h.wpRepo.Update(&wp); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update working paper", err)
	}
	return utils.SuccessResponse(c, "Working paper updated successfully", &wp)
}

type linkDocumentRequest struct {
	Reference string `json:"reference"`
}

func (h *WorkingPaperHandler) LinkDocument(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid working paper ID", err)
	}

	var req linkDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if req.Reference == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "reference is required", nil)
	}

	if err := h.wpRepo.LinkDocument(id, req.Reference); err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Working paper not found", err)
	}

	wp, err := h.wpRepo.GetByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to reload working paper", err)
	}
	return utils.SuccessResponse(c, "Document linked successfully", wp)
}

func (h *WorkingPaperHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid working paper ID", err)
	}
	if err := h.wpRepo.Delete(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete working paper", err)
	}
	return utils.SuccessResponse(c, "Working paper deleted successfully", nil)
}

// Export streams the working paper as an Excel workbook.
func (h *WorkingPaperHandler) Export(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid working paper ID", err)
	}

	wp, err := h.wpRepo.GetByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Working paper not found", err)
	}

	buf, err := h.exportService.ExportWorkingPaper(wp)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export working paper", err)
	}

	filename := fmt.Sprintf("working-paper-%d.xlsx", wp.ID)
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}

// Classify returns the category band and balance nature for one account
// number.
func (h *WorkingPaperHandler) Classify(c *fiber.Ctx) error {
	accountNumber := c.Params("account_number")
	class := service.ClassifyAccount(accountNumber)
	return utils.SuccessResponse(c, "Account classified successfully", fiber.Map{
		"account_number":  accountNumber,
		"category":        class.Category,
		"is_debit_nature": class.IsDebitNature,
	})
}
