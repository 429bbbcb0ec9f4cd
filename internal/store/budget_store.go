package store

import (
	"context"

	"finboard/internal/models"

	"github.com/shopspring/decimal"
)

type BudgetStore struct {
	db DB
}

func NewBudgetStore(db DB) *BudgetStore {
	return &BudgetStore{db: db}
}

type BudgetInput struct {
	Name      string
	AccountID int64
	Allocated decimal.Decimal
	Period    string
	UserID    string
}

type BudgetPatch struct {
	Name      *string
	AccountID *int64
	Allocated *decimal.Decimal
	Period    *string
}

func (s *BudgetStore) ListByUser(ctx context.Context, userID string) ([]models.Budget, error) {
	var rows []models.Budget
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, account_id, allocated, period, user_id, created_at, updated_at
		FROM budgets
		WHERE user_id = $1
		ORDER BY name
	`, userID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *BudgetStore) GetByID(ctx context.Context, budgetID int64) (models.Budget, error) {
	var row models.Budget
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, account_id, allocated, period, user_id, created_at, updated_at
		FROM budgets
		WHERE id = $1
	`, budgetID)
	if err != nil {
		return models.Budget{}, err
	}
	return row, nil
}

func (s *BudgetStore) Create(ctx context.Context, input BudgetInput) (models.Budget, error) {
	var row models.Budget
	err := s.db.GetContext(ctx, &row, `
		INSERT INTO budgets (name, account_id, allocated, period, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, account_id, allocated, period, user_id, created_at, updated_at
	`, input.Name, input.AccountID, input.Allocated, input.Period, input.UserID)
	if err != nil {
		return models.Budget{}, err
	}
	return row, nil
}

func (s *BudgetStore) Update(ctx context.Context, budgetID int64, patch BudgetPatch) (models.Budget, error) {
	var row models.Budget
	err := s.db.GetContext(ctx, &row, `
		UPDATE budgets
		SET name = COALESCE($1, name),
		    account_id = COALESCE($2, account_id),
		    allocated = COALESCE($3, allocated),
		    period = COALESCE($4, period),
		    updated_at = NOW()
		WHERE id = $5
		RETURNING id, name, account_id, allocated, period, user_id, created_at, updated_at
	`, patch.Name, patch.AccountID, patch.Allocated, patch.Period, budgetID)
	if err != nil {
		return models.Budget{}, err
	}
	return row, nil
}

func (s *BudgetStore) Delete(ctx context.Context, budgetID int64) (models.Budget, error) {
	var row models.Budget
	err := s.db.GetContext(ctx, &row, `
		DELETE FROM budgets
		WHERE id = $1
		RETURNING id, name, account_id, allocated, period, user_id, created_at, updated_at
	`, budgetID)
	if err != nil {
		return models.Budget{}, err
	}
	return row, nil
}
