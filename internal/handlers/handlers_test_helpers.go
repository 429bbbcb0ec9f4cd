package handlers

import (
	"context"
	"time"

	"finboard/internal/config"
	"finboard/internal/models"
	"finboard/internal/services"
	"finboard/internal/store"
	"finboard/internal/websocket"

	"github.com/shopspring/decimal"
)

type stubUserStore struct {
	createFn     func(ctx context.Context, id, username, email, passwordHash string) (models.User, error)
	getByEmailFn func(ctx context.Context, email string) (models.User, error)
	getByIDFn    func(ctx context.Context, userID string) (models.User, error)
}

func (s stubUserStore) Create(ctx context.Context, id, username, email, passwordHash string) (models.User, error) {
	if s.createFn == nil {
		return models.User{ID: id, Username: username, Email: email}, nil
	}
	return s.createFn(ctx, id, username, email, passwordHash)
}

func (s stubUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	if s.getByEmailFn == nil {
		return models.User{}, nil
	}
	return s.getByEmailFn(ctx, email)
}

func (s stubUserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	if s.getByIDFn == nil {
		return models.User{ID: userID}, nil
	}
	return s.getByIDFn(ctx, userID)
}

type stubAccountStore struct {
	listFn    func(ctx context.Context) ([]models.Account, error)
	getByIDFn func(ctx context.Context, accountID int64) (models.Account, error)
	createFn  func(ctx context.Context, input store.AccountInput) (models.Account, error)
	updateFn  func(ctx context.Context, accountID int64, patch store.AccountPatch) (models.Account, error)
	deleteFn  func(ctx context.Context, accountID int64) (models.Account, error)
}

func (s stubAccountStore) List(ctx context.Context) ([]models.Account, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s stubAccountStore) GetByID(ctx context.Context, accountID int64) (models.Account, error) {
	if s.getByIDFn == nil {
		return models.Account{ID: accountID}, nil
	}
	return s.getByIDFn(ctx, accountID)
}

func (s stubAccountStore) Create(ctx context.Context, input store.AccountInput) (models.Account, error) {
	if s.createFn == nil {
		return models.Account{}, nil
	}
	return s.createFn(ctx, input)
}

func (s stubAccountStore) Update(ctx context.Context, accountID int64, patch store.AccountPatch) (models.Account, error) {
	if s.updateFn == nil {
		return models.Account{ID: accountID}, nil
	}
	return s.updateFn(ctx, accountID, patch)
}

func (s stubAccountStore) Delete(ctx context.Context, accountID int64) (models.Account, error) {
	if s.deleteFn == nil {
		return models.Account{ID: accountID}, nil
	}
	return s.deleteFn(ctx, accountID)
}

type stubLineQueries struct {
	sumByAccountFn      func(ctx context.Context, accountID int64) (decimal.Decimal, error)
	activityByAccountFn func(ctx context.Context, accountID int64, from, to *time.Time) ([]store.AccountActivity, error)
}

func (s stubLineQueries) SumByAccount(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	if s.sumByAccountFn == nil {
		return decimal.Zero, nil
	}
	return s.sumByAccountFn(ctx, accountID)
}

func (s stubLineQueries) ActivityByAccount(ctx context.Context, accountID int64, from, to *time.Time) ([]store.AccountActivity, error) {
	if s.activityByAccountFn == nil {
		return nil, nil
	}
	return s.activityByAccountFn(ctx, accountID, from, to)
}

type stubBudgetStore struct {
	getByIDFn func(ctx context.Context, budgetID int64) (models.Budget, error)
	createFn  func(ctx context.Context, input store.BudgetInput) (models.Budget, error)
	updateFn  func(ctx context.Context, budgetID int64, patch store.BudgetPatch) (models.Budget, error)
	deleteFn  func(ctx context.Context, budgetID int64) (models.Budget, error)
}

func (s stubBudgetStore) GetByID(ctx context.Context, budgetID int64) (models.Budget, error) {
	if s.getByIDFn == nil {
		return models.Budget{ID: budgetID}, nil
	}
	return s.getByIDFn(ctx, budgetID)
}

func (s stubBudgetStore) Create(ctx context.Context, input store.BudgetInput) (models.Budget, error) {
	if s.createFn == nil {
		return models.Budget{}, nil
	}
	return s.createFn(ctx, input)
}

func (s stubBudgetStore) Update(ctx context.Context, budgetID int64, patch store.BudgetPatch) (models.Budget, error) {
	if s.updateFn == nil {
		return models.Budget{ID: budgetID}, nil
	}
	return s.updateFn(ctx, budgetID, patch)
}

func (s stubBudgetStore) Delete(ctx context.Context, budgetID int64) (models.Budget, error) {
	if s.deleteFn == nil {
		return models.Budget{ID: budgetID}, nil
	}
	return s.deleteFn(ctx, budgetID)
}

type stubReportStore struct {
	listByUserFn func(ctx context.Context, userID string) ([]models.Report, error)
	getByIDFn    func(ctx context.Context, reportID int64) (models.Report, error)
	createFn     func(ctx context.Context, input store.ReportInput) (models.Report, error)
	updateFn     func(ctx context.Context, reportID int64, patch store.ReportPatch) (models.Report, error)
	deleteFn     func(ctx context.Context, reportID int64) (models.Report, error)
}

func (s stubReportStore) ListByUser(ctx context.Context, userID string) ([]models.Report, error) {
	if s.listByUserFn == nil {
		return nil, nil
	}
	return s.listByUserFn(ctx, userID)
}

func (s stubReportStore) GetByID(ctx context.Context, reportID int64) (models.Report, error) {
	if s.getByIDFn == nil {
		return models.Report{ID: reportID}, nil
	}
	return s.getByIDFn(ctx, reportID)
}

func (s stubReportStore) Create(ctx context.Context, input store.ReportInput) (models.Report, error) {
	if s.createFn == nil {
		return models.Report{}, nil
	}
	return s.createFn(ctx, input)
}

func (s stubReportStore) Update(ctx context.Context, reportID int64, patch store.ReportPatch) (models.Report, error) {
	if s.updateFn == nil {
		return models.Report{ID: reportID}, nil
	}
	return s.updateFn(ctx, reportID, patch)
}

func (s stubReportStore) Delete(ctx context.Context, reportID int64) (models.Report, error) {
	if s.deleteFn == nil {
		return models.Report{ID: reportID}, nil
	}
	return s.deleteFn(ctx, reportID)
}

type stubLedgerService struct {
	listWithLinesFn   func(ctx context.Context, userID string) ([]services.TransactionWithLines, error)
	createWithLinesFn func(ctx context.Context, input store.TransactionInput, changes []services.LineChange) (services.TransactionWithLines, error)
	updateWithLinesFn func(ctx context.Context, userID string, transactionID int64, patch store.TransactionPatch, changes []services.LineChange) (services.TransactionWithLines, error)
	deleteFn          func(ctx context.Context, userID string, transactionID int64) (models.Transaction, error)
	overviewFn        func(ctx context.Context, userID string, from, to time.Time) (services.Overview, error)
	budgetSummariesFn func(ctx context.Context, userID string) ([]services.BudgetSummary, error)
}

func (s stubLedgerService) ListWithLines(ctx context.Context, userID string) ([]services.TransactionWithLines, error) {
	if s.listWithLinesFn == nil {
		return nil, nil
	}
	return s.listWithLinesFn(ctx, userID)
}

func (s stubLedgerService) CreateWithLines(ctx context.Context, input store.TransactionInput, changes []services.LineChange) (services.TransactionWithLines, error) {
	if s.createWithLinesFn == nil {
		return services.TransactionWithLines{}, nil
	}
	return s.createWithLinesFn(ctx, input, changes)
}

func (s stubLedgerService) UpdateWithLines(ctx context.Context, userID string, transactionID int64, patch store.TransactionPatch, changes []services.LineChange) (services.TransactionWithLines, error) {
	if s.updateWithLinesFn == nil {
		return services.TransactionWithLines{}, nil
	}
	return s.updateWithLinesFn(ctx, userID, transactionID, patch, changes)
}

func (s stubLedgerService) Delete(ctx context.Context, userID string, transactionID int64) (models.Transaction, error) {
	if s.deleteFn == nil {
		return models.Transaction{ID: transactionID}, nil
	}
	return s.deleteFn(ctx, userID, transactionID)
}

func (s stubLedgerService) Overview(ctx context.Context, userID string, from, to time.Time) (services.Overview, error) {
	if s.overviewFn == nil {
		return services.Overview{}, nil
	}
	return s.overviewFn(ctx, userID, from, to)
}

func (s stubLedgerService) BudgetSummaries(ctx context.Context, userID string) ([]services.BudgetSummary, error) {
	if s.budgetSummariesFn == nil {
		return nil, nil
	}
	return s.budgetSummariesFn(ctx, userID)
}

func newTestHandler(users UserStore, accounts AccountStore, lines LineQueries, budgets BudgetStore, reports ReportStore, service LedgerService) *Handler {
	cfg := config.Config{
		AppEnv:         "test",
		Port:           "0",
		JWTSecret:      "secret",
		TokenTTL:       time.Minute,
		AllowedOrigins: "*",
	}
	return New(cfg, users, accounts, lines, budgets, reports, service, websocket.NewHub())
}

func stringPtr(s string) *string {
	return &s
}

func int64Ptr(v int64) *int64 {
	return &v
}
