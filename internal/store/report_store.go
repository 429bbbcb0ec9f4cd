package store

import (
	"context"
	"time"

	"finboard/internal/models"
)

type ReportStore struct {
	db DB
}

func NewReportStore(db DB) *ReportStore {
	return &ReportStore{db: db}
}

type ReportInput struct {
	Name      string
	Type      string
	StartDate time.Time
	EndDate   time.Time
	Data      *string
	UserID    string
}

// ReportPatch never touches the snapshot's date range or payload
// beyond what the caller supplies; update does not recompute anything.
type ReportPatch struct {
	Name      *string
	Type      *string
	StartDate *time.Time
	EndDate   *time.Time
	Data      *string
}

func (s *ReportStore) ListByUser(ctx context.Context, userID string) ([]models.Report, error) {
	var rows []models.Report
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, type, start_date, end_date, data, user_id, created_at, updated_at
		FROM reports
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *ReportStore) GetByID(ctx context.Context, reportID int64) (models.Report, error) {
	var row models.Report
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, type, start_date, end_date, data, user_id, created_at, updated_at
		FROM reports
		WHERE id = $1
	`, reportID)
	if err != nil {
		return models.Report{}, err
	}
	return row, nil
}

func (s *ReportStore) Create(ctx context.Context, input ReportInput) (models.Report, error) {
	var row models.Report
	err := s.db.GetContext(ctx, &row, `
		INSERT INTO reports (name, type, start_date, end_date, data, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, type, start_date, end_date, data, user_id, created_at, updated_at
	`, input.Name, input.Type, input.StartDate, input.EndDate, input.Data, input.UserID)
	if err != nil {
		return models.Report{}, err
	}
	return row, nil
}

func (s *ReportStore) Update(ctx context.Context, reportID int64, patch ReportPatch) (models.Report, error) {
	var row models.Report
	err := s.db.GetContext(ctx, &row, `
		UPDATE reports
		SET name = COALESCE($1, name),
		    type = COALESCE($2, type),
		    start_date = COALESCE($3, start_date),
		    end_date = COALESCE($4, end_date),
		    data = COALESCE($5, data),
		    updated_at = NOW()
		WHERE id = $6
		RETURNING id, name, type, start_date, end_date, data, user_id, created_at, updated_at
	`, patch.Name, patch.Type, patch.StartDate, patch.EndDate, patch.Data, reportID)
	if err != nil {
		return models.Report{}, err
	}
	return row, nil
}

func (s *ReportStore) Delete(ctx context.Context, reportID int64) (models.Report, error) {
	var row models.Report
	err := s.db.GetContext(ctx, &row, `
		DELETE FROM reports
		WHERE id = $1
		RETURNING id, name, type, start_date, end_date, data, user_id, created_at, updated_at
	`, reportID)
	if err != nil {
		return models.Report{}, err
	}
	return row, nil
}
