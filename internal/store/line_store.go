package store

import (
	"context"
	"strconv"
	"time"

	"finboard/internal/models"

	"github.com/shopspring/decimal"
)

type LineStore struct {
	db DB
}

func NewLineStore(db DB) *LineStore {
	return &LineStore{db: db}
}

type LineInput struct {
	AccountID   int64
	Amount      decimal.Decimal
	Description *string
}

type LinePatch struct {
	AccountID   *int64
	Amount      *decimal.Decimal
	Description *string
}

// AccountActivity is one posting joined to its parent transaction,
// the unit of an account statement.
type AccountActivity struct {
	TransactionID int64           `db:"transaction_id" json:"transaction_id"`
	Date          time.Time       `db:"date" json:"date"`
	Description   string          `db:"description" json:"description"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
}

// AccountTotal is a per-account sum inside an overview group.
type AccountTotal struct {
	AccountID   int64           `db:"account_id" json:"account_id"`
	AccountName string          `db:"account_name" json:"account_name"`
	Total       decimal.Decimal `db:"total" json:"total"`
}

func (s *LineStore) ListByTransaction(ctx context.Context, transactionID int64) ([]models.TransactionLine, error) {
	var rows []models.TransactionLine
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, transaction_id, account_id, amount, description, created_at, updated_at
		FROM transaction_lines
		WHERE transaction_id = $1
		ORDER BY id
	`, transactionID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *LineStore) Insert(ctx context.Context, tx Getter, transactionID int64, input LineInput) (models.TransactionLine, error) {
	var row models.TransactionLine
	err := tx.GetContext(ctx, &row, `
		INSERT INTO transaction_lines (transaction_id, account_id, amount, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, transaction_id, account_id, amount, description, created_at, updated_at
	`, transactionID, input.AccountID, input.Amount, input.Description)
	if err != nil {
		return models.TransactionLine{}, err
	}
	return row, nil
}

func (s *LineStore) Update(ctx context.Context, tx Getter, lineID int64, patch LinePatch) (models.TransactionLine, error) {
	var row models.TransactionLine
	err := tx.GetContext(ctx, &row, `
		UPDATE transaction_lines
		SET account_id = COALESCE($1, account_id),
		    amount = COALESCE($2, amount),
		    description = COALESCE($3, description),
		    updated_at = NOW()
		WHERE id = $4
		RETURNING id, transaction_id, account_id, amount, description, created_at, updated_at
	`, patch.AccountID, patch.Amount, patch.Description, lineID)
	if err != nil {
		return models.TransactionLine{}, err
	}
	return row, nil
}

// SumByTransaction reads inside the caller's transaction so a
// composite write can verify its final line set balances before
// committing.
func (s *LineStore) SumByTransaction(ctx context.Context, tx Getter, transactionID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := tx.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transaction_lines
		WHERE transaction_id = $1
	`, transactionID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return sum, nil
}

// SumByAccount returns the all-time balance of an account: zero, not
// an error, when no lines exist.
func (s *LineStore) SumByAccount(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := s.db.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transaction_lines
		WHERE account_id = $1
	`, accountID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return sum, nil
}

// SumByAccountBetween clips the sum to an inclusive date range on the
// parent transaction date; budget spend derivation runs on this.
func (s *LineStore) SumByAccountBetween(ctx context.Context, accountID int64, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := s.db.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(l.amount), 0)
		FROM transaction_lines l
		INNER JOIN transactions t ON t.id = l.transaction_id
		WHERE l.account_id = $1 AND t.date >= $2 AND t.date <= $3
	`, accountID, from, to)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return sum, nil
}

// ActivityByAccount joins lines to their parent transactions, with an
// optional inclusive date clip, ordered by date ascending. A deleted
// or unknown account simply yields no rows.
func (s *LineStore) ActivityByAccount(ctx context.Context, accountID int64, from, to *time.Time) ([]AccountActivity, error) {
	query := `
		SELECT t.id AS transaction_id, t.date, t.description, l.amount
		FROM transaction_lines l
		INNER JOIN transactions t ON t.id = l.transaction_id
		WHERE l.account_id = $1
	`
	args := []any{accountID}
	if from != nil {
		args = append(args, *from)
		query += " AND t.date >= $" + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += " AND t.date <= $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY t.date"
	var rows []AccountActivity
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

// TotalsByType groups one user's postings in [from, to] by account,
// restricted to accounts of the given type. Feeds the overview's
// revenue and expense sections.
func (s *LineStore) TotalsByType(ctx context.Context, userID, accountType string, from, to time.Time) ([]AccountTotal, error) {
	var rows []AccountTotal
	err := s.db.SelectContext(ctx, &rows, `
		SELECT a.id AS account_id, a.name AS account_name, SUM(l.amount) AS total
		FROM accounts a
		INNER JOIN transaction_lines l ON l.account_id = a.id
		INNER JOIN transactions t ON t.id = l.transaction_id
		WHERE a.type = $1 AND t.user_id = $2 AND t.date >= $3 AND t.date <= $4
		GROUP BY a.id, a.name
		ORDER BY a.id
	`, accountType, userID, from, to)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
