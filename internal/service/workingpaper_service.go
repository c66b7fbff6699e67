package service

import (
	"fmt"

	"workpaper-web/internal/models"
	"workpaper-web/internal/repository"
	"workpaper-web/internal/utils"

	"github.com/sirupsen/logrus"
)

// GenerateRequest describes a working paper to derive from a stored dataset.
// MappingOverrides replace individual resolved bindings; SelectedAccounts
// empty means every extracted account is included.
type GenerateRequest struct {
	DatasetID          int                     `json:"dataset_id"`
	EngagementID       string                  `json:"engagement_id"`
	Name               string                  `json:"name"`
	Description        string                  `json:"description"`
	MappingOverrides   models.ColumnMapping    `json:"mapping_overrides"`
	SelectedAccounts   []string                `json:"selected_accounts"`
	AdjustmentAccounts []string                `json:"adjustment_accounts"`
	PriorDatasetID     *int                    `json:"prior_dataset_id,omitempty"`
	ExpectedBalances   []models.AccountBalance `json:"expected_balances"`
	CreatedBy          int                     `json:"-"`
}

// WorkingPaperService assembles working papers from dataset snapshots.
type WorkingPaperService struct {
	datasetRepo *repository.DatasetRepository
	wpRepo      *repository.WorkingPaperRepository
	analysis    *AnalysisService
	log         *logrus.Logger
}

func NewWorkingPaperService(datasetRepo *repository.DatasetRepository, wpRepo *repository.WorkingPaperRepository) *WorkingPaperService {
	return &WorkingPaperService{
		datasetRepo: datasetRepo,
		wpRepo:      wpRepo,
		analysis:    NewAnalysisService(),
		log:         utils.GetLogger(),
	}
}

// ResolveMapping maps a dataset's headers onto the canonical fields and
// returns advisory suggestions for whatever stayed unmapped.
func (s *WorkingPaperService) ResolveMapping(datasetID int) (models.ColumnMapping, []models.MappingSuggestion, error) {
	sheet, err := s.datasetRepo.GetSheet(datasetID)
	if err != nil {
		return models.ColumnMapping{}, nil, err
	}
	mapping := ResolveColumnMapping(sheet.Headers)
	return mapping, SuggestFields(sheet.Headers, mapping), nil
}

// GenerateFromDataset extracts account balances through the resolved mapping,
// runs the full analysis and persists the result.
func (s *WorkingPaperService) GenerateFromDataset(req GenerateRequest) (*models.WorkingPaper, error) {
	accounts, err := s.extractFromDataset(req.DatasetID, req.MappingOverrides)
	if err != nil {
		return nil, err
	}

	accounts = filterAccounts(accounts, req.SelectedAccounts)
	flagAdjustments(accounts, req.AdjustmentAccounts)

	var prior []models.AccountBalance
	if req.PriorDatasetID != nil {
		prior, err = s.extractFromDataset(*req.PriorDatasetID, models.ColumnMapping{})
		if err != nil {
			return nil, fmt.Errorf("failed to extract prior period: %w", err)
		}
	}

	wp, err := s.analysis.BuildWorkingPaper(accounts, prior, req.ExpectedBalances)
	if err != nil {
		return nil, err
	}

	wp.EngagementID = req.EngagementID
	wp.DatasetID = &req.DatasetID
	wp.Name = req.Name
	wp.Description = req.Description
	wp.CreatedBy = req.CreatedBy

	if err := s.wpRepo.Create(wp); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"working_paper_id": wp.ID,
		"dataset_id":       req.DatasetID,
		"engagement_id":    req.EngagementID,
		"accounts":         len(accounts),
	}).Info("working paper generated from dataset")

	return wp, nil
}

func (s *WorkingPaperService) extractFromDataset(datasetID int, overrides models.ColumnMapping) ([]models.AccountBalance, error) {
	sheet, err := s.datasetRepo.GetSheet(datasetID)
	if err != nil {
		return nil, err
	}
	mapping := applyOverrides(ResolveColumnMapping(sheet.Headers), overrides)
	return ExtractAccounts(*sheet, mapping)
}

func applyOverrides(resolved, overrides models.ColumnMapping) models.ColumnMapping {
	if overrides.AccountNumber != "" {
		resolved.AccountNumber = overrides.AccountNumber
	}
	if overrides.AccountName != "" {
		resolved.AccountName = overrides.AccountName
	}
	if overrides.Currency != "" {
		resolved.Currency = overrides.Currency
	}
	if overrides.OpeningDebit != "" {
		resolved.OpeningDebit = overrides.OpeningDebit
	}
	if overrides.OpeningCredit != "" {
		resolved.OpeningCredit = overrides.OpeningCredit
	}
	if overrides.PeriodDebit != "" {
		resolved.PeriodDebit = overrides.PeriodDebit
	}
	if overrides.PeriodCredit != "" {
		resolved.PeriodCredit = overrides.PeriodCredit
	}
	if overrides.YTDDebit != "" {
		resolved.YTDDebit = overrides.YTDDebit
	}
	if overrides.YTDCredit != "" {
		resolved.YTDCredit = overrides.YTDCredit
	}
	if overrides.Entity != "" {
		resolved.Entity = overrides.Entity
	}
	if overrides.Department != "" {
		resolved.Department = overrides.Department
	}
	if overrides.Project != "" {
		resolved.Project = overrides.Project
	}
	if overrides.Notes != "" {
		resolved.Notes = overrides.Notes
	}
	return resolved
}

func filterAccounts(accounts []models.AccountBalance, selected []string) []models.AccountBalance {
	if len(selected) == 0 {
		return accounts
	}
	wanted := make(map[string]bool, len(selected))
	for _, number := range selected {
		wanted[number] = true
	}
	filtered := make([]models.AccountBalance, 0, len(selected))
	for _, acc := range accounts {
		if wanted[acc.AccountNumber] {
			filtered = append(filtered, acc)
		}
	}
	return filtered
}

func flagAdjustments(accounts []models.AccountBalance, adjustmentNumbers []string) {
	if len(adjustmentNumbers) == 0 {
		return
	}
	flagged := make(map[string]bool, len(adjustmentNumbers))
	for _, number := range adjustmentNumbers {
		flagged[number] = true
	}
	for i := range accounts {
		if flagged[accounts[i].AccountNumber] {
			accounts[i].AdjustmentOnly = true
		}
	}
}
