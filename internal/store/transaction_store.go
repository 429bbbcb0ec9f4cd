package store

import (
	"context"
	"time"

	"finboard/internal/models"
)

type TransactionStore struct {
	db DB
}

func NewTransactionStore(db DB) *TransactionStore {
	return &TransactionStore{db: db}
}

type TransactionInput struct {
	Date        time.Time
	Description string
	Reference   *string
	UserID      string
}

type TransactionPatch struct {
	Date        *time.Time
	Description *string
	Reference   *string
}

func (s *TransactionStore) ListByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, date, description, reference, user_id, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *TransactionStore) GetByID(ctx context.Context, transactionID int64) (models.Transaction, error) {
	var row models.Transaction
	err := s.db.GetContext(ctx, &row, `
		SELECT id, date, description, reference, user_id, created_at, updated_at
		FROM transactions
		WHERE id = $1
	`, transactionID)
	if err != nil {
		return models.Transaction{}, err
	}
	return row, nil
}

// Create inserts inside the caller's transaction so the parent row and
// its lines commit together.
func (s *TransactionStore) Create(ctx context.Context, tx Getter, input TransactionInput) (models.Transaction, error) {
	var row models.Transaction
	err := tx.GetContext(ctx, &row, `
		INSERT INTO transactions (date, description, reference, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, date, description, reference, user_id, created_at, updated_at
	`, input.Date, input.Description, input.Reference, input.UserID)
	if err != nil {
		return models.Transaction{}, err
	}
	return row, nil
}

func (s *TransactionStore) Update(ctx context.Context, tx Getter, transactionID int64, patch TransactionPatch) (models.Transaction, error) {
	var row models.Transaction
	err := tx.GetContext(ctx, &row, `
		UPDATE transactions
		SET date = COALESCE($1, date),
		    description = COALESCE($2, description),
		    reference = COALESCE($3, reference),
		    updated_at = NOW()
		WHERE id = $4
		RETURNING id, date, description, reference, user_id, created_at, updated_at
	`, patch.Date, patch.Description, patch.Reference, transactionID)
	if err != nil {
		return models.Transaction{}, err
	}
	return row, nil
}

// Delete removes the transaction and returns its prior state; lines
// cascade in the store.
func (s *TransactionStore) Delete(ctx context.Context, transactionID int64) (models.Transaction, error) {
	var row models.Transaction
	err := s.db.GetContext(ctx, &row, `
		DELETE FROM transactions
		WHERE id = $1
		RETURNING id, date, description, reference, user_id, created_at, updated_at
	`, transactionID)
	if err != nil {
		return models.Transaction{}, err
	}
	return row, nil
}
