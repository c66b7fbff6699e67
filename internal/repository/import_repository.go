package repository

import (
	"workpaper-web/internal/models"

	"github.com/jmoiron/sqlx"
)

type ImportRepository struct {
	db *sqlx.DB
}

func NewImportRepository(db *sqlx.DB) *ImportRepository {
	return &ImportRepository{db: db}
}

func (r *ImportRepository) CreateSession(session *models.ImportSession) error {
	query := `INSERT INTO import_sessions (session_code, user_id, dataset_name, filename,
	          file_path, status) VALUES (:session_code, :user_id, :dataset_name, :filename,
	          :file_path, :status)`
	result, err := r.db.NamedExec(query, session)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	session.ID = int(id)
	return nil
}

func (r *ImportRepository) GetSessionByID(id int) (*models.ImportSession, error) {
	var session models.ImportSession
	err := r.db.Get(&session, "SELECT * FROM import_sessions WHERE id = ? LIMIT 1", id)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *ImportRepository) GetSessionByCode(code string) (*models.ImportSession, error) {
	var session models.ImportSession
	err := r.db.Get(&session, "SELECT * FROM import_sessions WHERE session_code = ? LIMIT 1", code)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *ImportRepository) GetSessions(limit, offset int) ([]models.ImportSession, int, error) {
	var sessions []models.ImportSession
	var total int

	err := r.db.Get(&total, "SELECT COUNT(*) FROM import_sessions")
	if err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM import_sessions ORDER BY created_at DESC LIMIT ? OFFSET ?"
	err = r.db.Select(&sessions, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

func (r *ImportRepository) UpdateSessionStatus(id int, status string) error {
	query := "UPDATE import_sessions SET status = ? WHERE id = ?"
	_, err := r.db.Exec(query, status, id)
	return err
}

// MarkSessionCompleted records the produced dataset against the session.
func (r *ImportRepository) MarkSessionCompleted(id, datasetID int) error {
	query := "UPDATE import_sessions SET status = ?, dataset_id = ? WHERE id = ?"
	_, err := r.db.Exec(query, models.SessionStatusCompleted, datasetID, id)
	return err
}

func (r *ImportRepository) MarkSessionFailed(id int, message string) error {
	query := "UPDATE import_sessions SET status = ?, error_message = ? WHERE id = ?"
	_, err := r.db.Exec(query, models.SessionStatusFailed, message, id)
	return err
}
