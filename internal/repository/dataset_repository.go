package repository

import (
	"encoding/json"
	"fmt"

	"workpaper-web/internal/models"

	"github.com/jmoiron/sqlx"
)

type DatasetRepository struct {
	db *sqlx.DB
}

func NewDatasetRepository(db *sqlx.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

// CreateDataset stores a new immutable snapshot: the dataset row, its column
// metadata and the full sheet as JSON. Versions under the same name are
// allocated sequentially; the previous versions are never touched.
func (r *DatasetRepository) CreateDataset(dataset *models.Dataset, sheet models.Sheet) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var maxVersion int
	err = tx.Get(&maxVersion, "SELECT COALESCE(MAX(version), 0) FROM datasets WHERE name = ?", dataset.Name)
	if err != nil {
		return err
	}
	dataset.Version = maxVersion + 1
	dataset.SheetName = sheet.Name
	dataset.RowCount = len(sheet.Rows)

	result, err := tx.Exec(
		`INSERT INTO datasets (name, version, sheet_name, row_count) VALUES (?, ?, ?, ?)`,
		dataset.Name, dataset.Version, dataset.SheetName, dataset.RowCount,
	)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	dataset.ID = int(id)

	for i := range dataset.Columns {
		col := &dataset.Columns[i]
		col.DatasetID = dataset.ID
		if err := insertColumn(tx, col); err != nil {
			return err
		}
	}

	sheetJSON, err := json.Marshal(sheet)
	if err != nil {
		return fmt.Errorf("failed to encode sheet: %w", err)
	}
	_, err = tx.Exec(`INSERT INTO dataset_sheets (dataset_id, sheet_json) VALUES (?, ?)`, dataset.ID, sheetJSON)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func insertColumn(tx *sqlx.Tx, col *models.ColumnMetadata) error {
	samples, err := json.Marshal(col.SampleValues)
	if err != nil {
		return err
	}
	result, err := tx.Exec(
		`INSERT INTO dataset_columns (dataset_id, position, name, data_type, is_pii,
		 null_percent, unique_count, min_value, max_value, sample_values, overridden)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		col.DatasetID, col.Position, col.Name, col.DataType, col.IsPII,
		col.NullPercent, col.UniqueCount, col.MinValue, col.MaxValue, samples, col.Overridden,
	)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	col.ID = int(id)
	return nil
}

func (r *DatasetRepository) GetDatasetByID(id int) (*models.Dataset, error) {
	var dataset models.Dataset
	err := r.db.Get(&dataset, "SELECT id, name, version, sheet_name, row_count, created_at FROM datasets WHERE id = ? LIMIT 1", id)
	if err != nil {
		return nil, err
	}
	columns, err := r.GetColumns(id)
	if err != nil {
		return nil, err
	}
	dataset.Columns = columns
	return &dataset, nil
}

// GetLatestByName returns the highest version stored under a dataset name.
func (r *DatasetRepository) GetLatestByName(name string) (*models.Dataset, error) {
	var dataset models.Dataset
	query := `SELECT id, name, version, sheet_name, row_count, created_at FROM datasets
	          WHERE name = ? ORDER BY version DESC LIMIT 1`
	err := r.db.Get(&dataset, query, name)
	if err != nil {
		return nil, err
	}
	columns, err := r.GetColumns(dataset.ID)
	if err != nil {
		return nil, err
	}
	dataset.Columns = columns
	return &dataset, nil
}

func (r *DatasetRepository) GetDatasets(limit, offset int) ([]models.Dataset, int, error) {
	var datasets []models.Dataset
	var total int

	err := r.db.Get(&total, "SELECT COUNT(*) FROM datasets")
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, version, sheet_name, row_count, created_at FROM datasets
	          ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	err = r.db.Select(&datasets, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return datasets, total, nil
}

type columnRow struct {
	models.ColumnMetadata
	SamplesJSON []byte `db:"sample_values"`
}

func (r *DatasetRepository) GetColumns(datasetID int) ([]models.ColumnMetadata, error) {
	var rows []columnRow
	query := `SELECT id, dataset_id, position, name, data_type, is_pii, null_percent,
	          unique_count, min_value, max_value, sample_values, overridden
	          FROM dataset_columns WHERE dataset_id = ? ORDER BY position`
	if err := r.db.Select(&rows, query, datasetID); err != nil {
		return nil, err
	}

	columns := make([]models.ColumnMetadata, len(rows))
	for i, row := range rows {
		col := row.ColumnMetadata
		if len(row.SamplesJSON) > 0 {
			if err := json.Unmarshal(row.SamplesJSON, &col.SampleValues); err != nil {
				return nil, fmt.Errorf("failed to decode sample values for column %d: %w", col.ID, err)
			}
		}
		columns[i] = col
	}
	return columns, nil
}

// GetSheet loads the stored sheet snapshot for a dataset.
func (r *DatasetRepository) GetSheet(datasetID int) (*models.Sheet, error) {
	var sheetJSON []byte
	err := r.db.Get(&sheetJSON, "SELECT sheet_json FROM dataset_sheets WHERE dataset_id = ? LIMIT 1", datasetID)
	if err != nil {
		return nil, err
	}
	var sheet models.Sheet
	if err := json.Unmarshal(sheetJSON, &sheet); err != nil {
		return nil, fmt.Errorf("failed to decode sheet for dataset %d: %w", datasetID, err)
	}
	return &sheet, nil
}

// OverrideColumn applies a user edit to a column's name or inferred type and
// marks it overridden so later re-profiling leaves it alone.
func (r *DatasetRepository) OverrideColumn(columnID int, name, dataType string) error {
	query := `UPDATE dataset_columns SET name = ?, data_type = ?, overridden = TRUE WHERE id = ?`
	_, err := r.db.Exec(query, name, dataType, columnID)
	return err
}

// UpdateColumnProfile replaces the computed profile of a column. It refuses to
// touch overridden columns at the SQL level as well, so a stale caller can not
// clobber a user edit.
func (r *DatasetRepository) UpdateColumnProfile(col *models.ColumnMetadata) error {
	samples, err := json.Marshal(col.SampleValues)
	if err != nil {
		return err
	}
	query := `UPDATE dataset_columns SET data_type = ?, is_pii = ?, null_percent = ?,
	          unique_count = ?, min_value = ?, max_value = ?, sample_values = ?
	          WHERE id = ? AND overridden = FALSE`
	_, err = r.db.Exec(query, col.DataType, col.IsPII, col.NullPercent,
		col.UniqueCount, col.MinValue, col.MaxValue, samples, col.ID)
	return err
}
