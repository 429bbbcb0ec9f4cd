package services

import (
	"context"
	"errors"
	"time"

	"finboard/internal/db"
	"finboard/internal/models"
	"finboard/internal/money"
	"finboard/internal/store"
	"finboard/internal/websocket"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var (
	ErrUnbalancedTransaction = errors.New("transaction lines do not sum to zero")
	ErrNoLines               = errors.New("transaction requires at least one line")
	ErrNotOwner              = errors.New("transaction does not belong to user")
)

type TransactionStore interface {
	ListByUser(ctx context.Context, userID string) ([]models.Transaction, error)
	GetByID(ctx context.Context, transactionID int64) (models.Transaction, error)
	Create(ctx context.Context, tx store.Getter, input store.TransactionInput) (models.Transaction, error)
	Update(ctx context.Context, tx store.Getter, transactionID int64, patch store.TransactionPatch) (models.Transaction, error)
	Delete(ctx context.Context, transactionID int64) (models.Transaction, error)
}

type LineStore interface {
	ListByTransaction(ctx context.Context, transactionID int64) ([]models.TransactionLine, error)
	Insert(ctx context.Context, tx store.Getter, transactionID int64, input store.LineInput) (models.TransactionLine, error)
	Update(ctx context.Context, tx store.Getter, lineID int64, patch store.LinePatch) (models.TransactionLine, error)
	SumByTransaction(ctx context.Context, tx store.Getter, transactionID int64) (decimal.Decimal, error)
	SumByAccount(ctx context.Context, accountID int64) (decimal.Decimal, error)
	SumByAccountBetween(ctx context.Context, accountID int64, from, to time.Time) (decimal.Decimal, error)
	TotalsByType(ctx context.Context, userID, accountType string, from, to time.Time) ([]store.AccountTotal, error)
}

type BudgetStore interface {
	ListByUser(ctx context.Context, userID string) ([]models.Budget, error)
}

type BalanceHub interface {
	BroadcastBalance(userID string, update websocket.BalanceUpdate)
}

// LedgerService owns the composite transaction-with-lines writes and
// the aggregations derived from posted lines.
type LedgerService struct {
	txRunner     db.TxRunner
	transactions TransactionStore
	lines        LineStore
	budgets      BudgetStore
	hub          BalanceHub
}

func NewLedgerService(txRunner db.TxRunner, transactions TransactionStore, lines LineStore, budgets BudgetStore, hub BalanceHub) *LedgerService {
	return &LedgerService{
		txRunner:     txRunner,
		transactions: transactions,
		lines:        lines,
		budgets:      budgets,
		hub:          hub,
	}
}

// TransactionWithLines is the composite unit exposed to callers.
type TransactionWithLines struct {
	models.Transaction
	Lines []models.TransactionLine `json:"lines"`
}

// LineChange is one line in a composite write. A nil ID inserts a new
// line; a set ID updates that line in place.
type LineChange struct {
	ID          *int64
	AccountID   int64
	Amount      decimal.Decimal
	Description *string
}

// CreateWithLines creates a transaction and all of its lines in one
// database transaction; everything commits or rolls back together.
// Lines must sum to zero.
func (s *LedgerService) CreateWithLines(ctx context.Context, input store.TransactionInput, changes []LineChange) (TransactionWithLines, error) {
	if len(changes) == 0 {
		return TransactionWithLines{}, ErrNoLines
	}
	if err := ensureBalanced(changes); err != nil {
		return TransactionWithLines{}, err
	}
	var result TransactionWithLines
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		created, err := s.transactions.Create(ctx, tx, input)
		if err != nil {
			return err
		}
		createdLines := make([]models.TransactionLine, 0, len(changes))
		for _, change := range changes {
			line, err := s.lines.Insert(ctx, tx, created.ID, store.LineInput{
				AccountID:   change.AccountID,
				Amount:      change.Amount,
				Description: change.Description,
			})
			if err != nil {
				return err
			}
			createdLines = append(createdLines, line)
		}
		result = TransactionWithLines{Transaction: created, Lines: createdLines}
		return nil
	})
	if err != nil {
		return TransactionWithLines{}, err
	}
	s.broadcastBalances(ctx, input.UserID, result.Lines)
	return result, nil
}

// UpdateWithLines updates the transaction row and reconciles the
// supplied lines: lines carrying an id are updated in place, the rest
// are inserted. Lines omitted from the input are left untouched. The
// full line set must still sum to zero afterwards.
func (s *LedgerService) UpdateWithLines(ctx context.Context, userID string, transactionID int64, patch store.TransactionPatch, changes []LineChange) (TransactionWithLines, error) {
	var result TransactionWithLines
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		updated, err := s.transactions.Update(ctx, tx, transactionID, patch)
		if err != nil {
			return err
		}
		if updated.UserID != userID {
			return ErrNotOwner
		}
		for _, change := range changes {
			account := change.AccountID
			amount := change.Amount
			if change.ID != nil {
				if _, err := s.lines.Update(ctx, tx, *change.ID, store.LinePatch{
					AccountID:   &account,
					Amount:      &amount,
					Description: change.Description,
				}); err != nil {
					return err
				}
				continue
			}
			if _, err := s.lines.Insert(ctx, tx, transactionID, store.LineInput{
				AccountID:   change.AccountID,
				Amount:      change.Amount,
				Description: change.Description,
			}); err != nil {
				return err
			}
		}
		sum, err := s.lines.SumByTransaction(ctx, tx, transactionID)
		if err != nil {
			return err
		}
		if !sum.IsZero() {
			return ErrUnbalancedTransaction
		}
		result.Transaction = updated
		return nil
	})
	if err != nil {
		return TransactionWithLines{}, err
	}
	lines, err := s.lines.ListByTransaction(ctx, transactionID)
	if err != nil {
		return TransactionWithLines{}, err
	}
	result.Lines = lines
	s.broadcastBalances(ctx, userID, lines)
	return result, nil
}

// Delete removes a transaction owned by userID; its lines cascade in
// the store. The prior row state is returned.
func (s *LedgerService) Delete(ctx context.Context, userID string, transactionID int64) (models.Transaction, error) {
	existing, err := s.transactions.GetByID(ctx, transactionID)
	if err != nil {
		return models.Transaction{}, err
	}
	if existing.UserID != userID {
		return models.Transaction{}, ErrNotOwner
	}
	lines, err := s.lines.ListByTransaction(ctx, transactionID)
	if err != nil {
		return models.Transaction{}, err
	}
	deleted, err := s.transactions.Delete(ctx, transactionID)
	if err != nil {
		return models.Transaction{}, err
	}
	s.broadcastBalances(ctx, userID, lines)
	return deleted, nil
}

// ListWithLines returns the user's transactions newest first, each
// merged with its lines.
func (s *LedgerService) ListWithLines(ctx context.Context, userID string) ([]TransactionWithLines, error) {
	transactions, err := s.transactions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]TransactionWithLines, 0, len(transactions))
	for _, transaction := range transactions {
		lines, err := s.lines.ListByTransaction(ctx, transaction.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, TransactionWithLines{Transaction: transaction, Lines: lines})
	}
	return result, nil
}

func ensureBalanced(changes []LineChange) error {
	sum := decimal.Zero
	for _, change := range changes {
		sum = sum.Add(change.Amount)
	}
	if !sum.IsZero() {
		return ErrUnbalancedTransaction
	}
	return nil
}

// broadcastBalances recomputes and pushes the balance of every account
// touched by a write. Balance reads run outside the write transaction;
// a failed read just skips that account's update.
func (s *LedgerService) broadcastBalances(ctx context.Context, userID string, lines []models.TransactionLine) {
	seen := make(map[int64]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		balance, err := s.lines.SumByAccount(ctx, line.AccountID)
		if err != nil {
			continue
		}
		s.hub.BroadcastBalance(userID, websocket.BalanceUpdate{
			AccountID: line.AccountID,
			Balance:   money.Format(balance),
		})
	}
}
