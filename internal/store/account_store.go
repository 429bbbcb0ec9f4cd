package store

import (
	"context"

	"finboard/internal/models"
)

type AccountStore struct {
	db DB
}

func NewAccountStore(db DB) *AccountStore {
	return &AccountStore{db: db}
}

type AccountInput struct {
	Code        string
	Name        string
	Type        string
	Description *string
}

// AccountPatch carries a partial update; nil fields keep the stored value.
type AccountPatch struct {
	Code        *string
	Name        *string
	Type        *string
	Description *string
}

func (s *AccountStore) List(ctx context.Context) ([]models.Account, error) {
	var rows []models.Account
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, code, name, type, description, created_at, updated_at
		FROM accounts
		ORDER BY code
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *AccountStore) GetByID(ctx context.Context, accountID int64) (models.Account, error) {
	var row models.Account
	err := s.db.GetContext(ctx, &row, `
		SELECT id, code, name, type, description, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`, accountID)
	if err != nil {
		return models.Account{}, err
	}
	return row, nil
}

func (s *AccountStore) Create(ctx context.Context, input AccountInput) (models.Account, error) {
	var row models.Account
	err := s.db.GetContext(ctx, &row, `
		INSERT INTO accounts (code, name, type, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, code, name, type, description, created_at, updated_at
	`, input.Code, input.Name, input.Type, input.Description)
	if err != nil {
		return models.Account{}, err
	}
	return row, nil
}

func (s *AccountStore) Update(ctx context.Context, accountID int64, patch AccountPatch) (models.Account, error) {
	var row models.Account
	err := s.db.GetContext(ctx, &row, `
		UPDATE accounts
		SET code = COALESCE($1, code),
		    name = COALESCE($2, name),
		    type = COALESCE($3, type),
		    description = COALESCE($4, description),
		    updated_at = NOW()
		WHERE id = $5
		RETURNING id, code, name, type, description, created_at, updated_at
	`, patch.Code, patch.Name, patch.Type, patch.Description, accountID)
	if err != nil {
		return models.Account{}, err
	}
	return row, nil
}

// Delete removes the account and returns its prior state. Dependent
// transaction lines and budgets go with it via ON DELETE CASCADE.
func (s *AccountStore) Delete(ctx context.Context, accountID int64) (models.Account, error) {
	var row models.Account
	err := s.db.GetContext(ctx, &row, `
		DELETE FROM accounts
		WHERE id = $1
		RETURNING id, code, name, type, description, created_at, updated_at
	`, accountID)
	if err != nil {
		return models.Account{}, err
	}
	return row, nil
}
