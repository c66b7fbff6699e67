package service

import (
	"fmt"

	"workpaper-web/internal/models"
	"workpaper-web/internal/repository"
	"workpaper-web/internal/utils"

	"github.com/sirupsen/logrus"
)

// ImportService drives an uploaded file through parsing and profiling into an
// immutable dataset snapshot.
type ImportService struct {
	tabular     *TabularService
	profiler    *ProfilerService
	datasetRepo *repository.DatasetRepository
	importRepo  *repository.ImportRepository
	log         *logrus.Logger
}

func NewImportService(datasetRepo *repository.DatasetRepository, importRepo *repository.ImportRepository) *ImportService {
	return &ImportService{
		tabular:     NewTabularService(),
		profiler:    NewProfilerService(),
		datasetRepo: datasetRepo,
		importRepo:  importRepo,
		log:         utils.GetLogger(),
	}
}

// ProcessSession parses the session's stored file, profiles its first sheet
// and stores the result as a new dataset version. The session is marked
// completed or failed accordingly; the returned error carries the cause.
func (s *ImportService) ProcessSession(sessionID int) (*models.Dataset, error) {
	session, err := s.importRepo.GetSessionByID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load import session %d: %w", sessionID, err)
	}

	if session.Status == models.SessionStatusCompleted || session.Status == models.SessionStatusFailed {
		s.log.WithField("session_code", session.SessionCode).Info("import session already finished, skipping")
		return nil, nil
	}

	if err := s.importRepo.UpdateSessionStatus(session.ID, models.SessionStatusProcessing); err != nil {
		return nil, err
	}

	dataset, err := s.importFile(session)
	if err != nil {
		if markErr := s.importRepo.MarkSessionFailed(session.ID, err.Error()); markErr != nil {
			s.log.WithError(markErr).Error("failed to mark import session failed")
		}
		return nil, err
	}

	if err := s.importRepo.MarkSessionCompleted(session.ID, dataset.ID); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"session_code": session.SessionCode,
		"dataset_id":   dataset.ID,
		"version":      dataset.Version,
		"rows":         dataset.RowCount,
	}).Info("dataset import completed")

	return dataset, nil
}

func (s *ImportService) importFile(session *models.ImportSession) (*models.Dataset, error) {
	sheets, err := s.tabular.ParseFile(session.FilePath)
	if err != nil {
		return nil, err
	}

	// Only the first non-empty sheet of a workbook becomes the dataset.
	sheet := sheets[0]
	dataset := &models.Dataset{
		Name:    session.DatasetName,
		Columns: s.profiler.ProfileColumns(sheet),
	}

	if err := s.datasetRepo.CreateDataset(dataset, sheet); err != nil {
		return nil, fmt.Errorf("failed to store dataset: %w", err)
	}
	return dataset, nil
}

// Reprofile recomputes column metadata against the stored sheet. Columns a
// user has overridden keep their name and type untouched; only their computed
// statistics could change, and those are left alone too to keep the override
// stable.
func (s *ImportService) Reprofile(datasetID int) (*models.Dataset, error) {
	dataset, err := s.datasetRepo.GetDatasetByID(datasetID)
	if err != nil {
		return nil, err
	}
	sheet, err := s.datasetRepo.GetSheet(datasetID)
	if err != nil {
		return nil, err
	}

	fresh := s.profiler.ProfileColumns(*sheet)
	for i := range dataset.Columns {
		col := &dataset.Columns[i]
		if col.Overridden {
			continue
		}
		if col.Position >= len(fresh) {
			continue
		}
		profile := fresh[col.Position]
		col.Name = profile.Name
		col.DataType = profile.DataType
		col.IsPII = profile.IsPII
		col.NullPercent = profile.NullPercent
		col.UniqueCount = profile.UniqueCount
		col.MinValue = profile.MinValue
		col.MaxValue = profile.MaxValue
		col.SampleValues = profile.SampleValues
		if err := s.datasetRepo.UpdateColumnProfile(col); err != nil {
			return nil, err
		}
	}

	return dataset, nil
}
