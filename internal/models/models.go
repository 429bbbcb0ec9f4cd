package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	AccountTypeAsset     = "asset"
	AccountTypeLiability = "liability"
	AccountTypeEquity    = "equity"
	AccountTypeRevenue   = "revenue"
	AccountTypeExpense   = "expense"
)

const (
	ReportTypeIncomeStatement = "income_statement"
	ReportTypeBalanceSheet    = "balance_sheet"
	ReportTypeCashFlow        = "cash_flow"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Account is one bucket in the shared chart of accounts. Accounts are
// global: they carry no owner, only transactions/budgets/reports do.
type Account struct {
	ID          int64     `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	Name        string    `db:"name" json:"name"`
	Type        string    `db:"type" json:"type"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Transaction struct {
	ID          int64     `db:"id" json:"id"`
	Date        time.Time `db:"date" json:"date"`
	Description string    `db:"description" json:"description"`
	Reference   *string   `db:"reference" json:"reference,omitempty"`
	UserID      string    `db:"user_id" json:"user_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// TransactionLine is a single posting. Positive amount = debit,
// negative = credit; the store does not enforce the convention.
type TransactionLine struct {
	ID            int64           `db:"id" json:"id"`
	TransactionID int64           `db:"transaction_id" json:"transaction_id"`
	AccountID     int64           `db:"account_id" json:"account_id"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Description   *string         `db:"description" json:"description,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

type Budget struct {
	ID        int64           `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	AccountID int64           `db:"account_id" json:"account_id"`
	Allocated decimal.Decimal `db:"allocated" json:"allocated"`
	Period    string          `db:"period" json:"period"`
	UserID    string          `db:"user_id" json:"user_id"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// Report is an immutable snapshot: its payload is written once at
// creation and never recomputed by update.
type Report struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Type      string    `db:"type" json:"type"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Data      *string   `db:"data" json:"data,omitempty"`
	UserID    string    `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func ValidAccountType(accountType string) bool {
	switch accountType {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

func ValidReportType(reportType string) bool {
	switch reportType {
	case ReportTypeIncomeStatement, ReportTypeBalanceSheet, ReportTypeCashFlow:
		return true
	}
	return false
}
