package handlers

import (
	"context"
	"time"

	"finboard/internal/models"
	"finboard/internal/services"
	"finboard/internal/store"

	"github.com/shopspring/decimal"
)

type UserStore interface {
	Create(ctx context.Context, id, username, email, passwordHash string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, userID string) (models.User, error)
}

type AccountStore interface {
	List(ctx context.Context) ([]models.Account, error)
	GetByID(ctx context.Context, accountID int64) (models.Account, error)
	Create(ctx context.Context, input store.AccountInput) (models.Account, error)
	Update(ctx context.Context, accountID int64, patch store.AccountPatch) (models.Account, error)
	Delete(ctx context.Context, accountID int64) (models.Account, error)
}

// LineQueries is the read-only slice of the line store the account
// endpoints need.
type LineQueries interface {
	SumByAccount(ctx context.Context, accountID int64) (decimal.Decimal, error)
	ActivityByAccount(ctx context.Context, accountID int64, from, to *time.Time) ([]store.AccountActivity, error)
}

type BudgetStore interface {
	GetByID(ctx context.Context, budgetID int64) (models.Budget, error)
	Create(ctx context.Context, input store.BudgetInput) (models.Budget, error)
	Update(ctx context.Context, budgetID int64, patch store.BudgetPatch) (models.Budget, error)
	Delete(ctx context.Context, budgetID int64) (models.Budget, error)
}

type ReportStore interface {
	ListByUser(ctx context.Context, userID string) ([]models.Report, error)
	GetByID(ctx context.Context, reportID int64) (models.Report, error)
	Create(ctx context.Context, input store.ReportInput) (models.Report, error)
	Update(ctx context.Context, reportID int64, patch store.ReportPatch) (models.Report, error)
	Delete(ctx context.Context, reportID int64) (models.Report, error)
}

type LedgerService interface {
	ListWithLines(ctx context.Context, userID string) ([]services.TransactionWithLines, error)
	CreateWithLines(ctx context.Context, input store.TransactionInput, changes []services.LineChange) (services.TransactionWithLines, error)
	UpdateWithLines(ctx context.Context, userID string, transactionID int64, patch store.TransactionPatch, changes []services.LineChange) (services.TransactionWithLines, error)
	Delete(ctx context.Context, userID string, transactionID int64) (models.Transaction, error)
	Overview(ctx context.Context, userID string, from, to time.Time) (services.Overview, error)
	BudgetSummaries(ctx context.Context, userID string) ([]services.BudgetSummary, error)
}
