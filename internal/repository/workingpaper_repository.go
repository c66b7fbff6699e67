package repository

import (
	"encoding/json"
	"fmt"

	"workpaper-web/internal/models"

	"github.com/jmoiron/sqlx"
)

type WorkingPaperRepository struct {
	db *sqlx.DB
}

func NewWorkingPaperRepository(db *sqlx.DB) *WorkingPaperRepository {
	return &WorkingPaperRepository{db: db}
}

// workingPaperRow maps the table; analysis sections and document links are
// stored as JSON columns.
type workingPaperRow struct {
	models.WorkingPaper
	LeadsheetJSON []byte `db:"leadsheet"`
	BalanceJSON   []byte `db:"balance_check"`
	RatiosJSON    []byte `db:"ratios"`
	TrendJSON     []byte `db:"trend_analysis"`
	VarianceJSON  []byte `db:"variance_analysis"`
	DocumentsJSON []byte `db:"supporting_documents"`
}

func encodeSections(wp *models.WorkingPaper) (leadsheet, balance, ratios, trend, variance, documents []byte, err error) {
	if leadsheet, err = json.Marshal(wp.Leadsheet); err != nil {
		return
	}
	if balance, err = json.Marshal(wp.BalanceCheck); err != nil {
		return
	}
	if ratios, err = json.Marshal(wp.Ratios); err != nil {
		return
	}
	if trend, err = json.Marshal(wp.TrendAnalysis); err != nil {
		return
	}
	if variance, err = json.Marshal(wp.VarianceAnalysis); err != nil {
		return
	}
	documents, err = json.Marshal(wp.SupportingDocuments)
	return
}

func decodeRow(row workingPaperRow) (*models.WorkingPaper, error) {
	wp := row.WorkingPaper
	sections := []struct {
		data   []byte
		target interface{}
	}{
		{row.LeadsheetJSON, &wp.Leadsheet},
		{row.BalanceJSON, &wp.BalanceCheck},
		{row.RatiosJSON, &wp.Ratios},
		{row.TrendJSON, &wp.TrendAnalysis},
		{row.VarianceJSON, &wp.VarianceAnalysis},
		{row.DocumentsJSON, &wp.SupportingDocuments},
	}
	for _, s := range sections {
		if len(s.data) == 0 || string(s.data) == "null" {
			continue
		}
		if err := json.Unmarshal(s.data, s.target); err != nil {
			return nil, fmt.Errorf("failed to decode working paper %d: %w", wp.ID, err)
		}
	}
	return &wp, nil
}

func (r *WorkingPaperRepository) Create(wp *models.WorkingPaper) error {
	leadsheet, balance, ratios, trend, variance, documents, err := encodeSections(wp)
	if err != nil {
		return err
	}

	query := `INSERT INTO working_papers (engagement_id, dataset_id, name, description,
	          leadsheet, balance_check, ratios, trend_analysis, variance_analysis,
	          supporting_documents, created_by)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.Exec(query, wp.EngagementID, wp.DatasetID, wp.Name, wp.Description,
		leadsheet, balance, ratios, trend, variance, documents, wp.CreatedBy)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	wp.ID = int(id)
	return nil
}

func (r *WorkingPaperRepository) GetByID(id int) (*models.WorkingPaper, error) {
	var row workingPaperRow
	query := "SELECT * FROM working_papers WHERE id = ? LIMIT 1"
	if err := r.db.Get(&row, query, id); err != nil {
		return nil, err
	}
	return decodeRow(row)
}

func (r *WorkingPaperRepository) GetByEngagement(engagementID string, limit, offset int) ([]models.WorkingPaper, int, error) {
	var total int
	err := r.db.Get(&total, "SELECT COUNT(*) FROM working_papers WHERE engagement_id = ?", engagementID)
	if err != nil {
		return nil, 0, err
	}

	var rows []workingPaperRow
	query := `SELECT * FROM working_papers WHERE engagement_id = ?
	          ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	if err := r.db.Select(&rows, query, engagementID, limit, offset); err != nil {
		return nil, 0, err
	}

	papers := make([]models.WorkingPaper, 0, len(rows))
	for _, row := range rows {
		wp, err := decodeRow(row)
		if err != nil {
			return nil, 0, err
		}
		papers = append(papers, *wp)
	}
	return papers, total, nil
}

// Update replaces every stored section wholesale. Partial patches of the
// analysis collections are not supported.
func (r *WorkingPaperRepository) Update(wp *models.WorkingPaper) error {
	leadsheet, balance, ratios, trend, variance, documents, err := encodeSections(wp)
	if err != nil {
		return err
	}

	query := `UPDATE working_papers SET name = ?, description = ?, dataset_id = ?,
	          leadsheet = ?, balance_check = ?, ratios = ?, trend_analysis = ?,
	          variance_analysis = ?, supporting_documents = ?, updated_at = NOW()
	          WHERE id = ?`
	_, err = r.db.Exec(query, wp.Name, wp.Description, wp.DatasetID,
		leadsheet, balance, ratios, trend, variance, documents, wp.ID)
	return err
}

// LinkDocument appends one opaque document reference. References are never
// dereferenced or validated here.
func (r *WorkingPaperRepository) LinkDocument(id int, reference string) error {
	wp, err := r.GetByID(id)
	if err != nil {
		return err
	}
	wp.SupportingDocuments = append(wp.SupportingDocuments, reference)

	documents, err := json.Marshal(wp.SupportingDocuments)
	if err != nil {
		return err
	}
	query := "UPDATE working_papers SET supporting_documents = ?, updated_at = NOW() WHERE id = ?"
	_, err = r.db.Exec(query, documents, id)
	return err
}

func (r *WorkingPaperRepository) Delete(id int) error {
	_, err := r.db.Exec("DELETE FROM working_papers WHERE id = ?", id)
	return err
}
