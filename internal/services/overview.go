package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"finboard/internal/models"
	"finboard/internal/store"

	"github.com/shopspring/decimal"
)

type OverviewSection struct {
	Accounts []store.AccountTotal `json:"accounts"`
	Total    decimal.Decimal      `json:"total"`
}

// Overview is the income-statement style summary for one user and
// date range. Asset, liability and equity postings do not participate.
type Overview struct {
	Revenue   OverviewSection `json:"revenue"`
	Expenses  OverviewSection `json:"expenses"`
	NetIncome decimal.Decimal `json:"net_income"`
}

// Overview sums postings per revenue and expense account inside
// [from, to] inclusive, then derives net income. A range with no
// postings yields zero totals and empty account lists, not an error.
func (s *LedgerService) Overview(ctx context.Context, userID string, from, to time.Time) (Overview, error) {
	revenue, err := s.sectionFor(ctx, userID, models.AccountTypeRevenue, from, to)
	if err != nil {
		return Overview{}, err
	}
	expenses, err := s.sectionFor(ctx, userID, models.AccountTypeExpense, from, to)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		Revenue:   revenue,
		Expenses:  expenses,
		NetIncome: revenue.Total.Sub(expenses.Total),
	}, nil
}

func (s *LedgerService) sectionFor(ctx context.Context, userID, accountType string, from, to time.Time) (OverviewSection, error) {
	accounts, err := s.lines.TotalsByType(ctx, userID, accountType, from, to)
	if err != nil {
		return OverviewSection{}, err
	}
	if accounts == nil {
		accounts = []store.AccountTotal{}
	}
	total := decimal.Zero
	for _, account := range accounts {
		total = total.Add(account.Total)
	}
	return OverviewSection{Accounts: accounts, Total: total}, nil
}

// BudgetSummary is a budget row with spend derived from posted lines,
// never stored.
type BudgetSummary struct {
	models.Budget
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
}

// BudgetSummaries lists the user's budgets with spent computed by
// summing the budget account's lines inside the budget period. A
// period label that doesn't parse falls back to the account's
// all-time sum.
func (s *LedgerService) BudgetSummaries(ctx context.Context, userID string) ([]BudgetSummary, error) {
	budgets, err := s.budgets.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]BudgetSummary, 0, len(budgets))
	for _, budget := range budgets {
		var spent decimal.Decimal
		if from, to, ok := PeriodRange(budget.Period); ok {
			spent, err = s.lines.SumByAccountBetween(ctx, budget.AccountID, from, to)
		} else {
			spent, err = s.lines.SumByAccount(ctx, budget.AccountID)
		}
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, BudgetSummary{
			Budget:    budget,
			Spent:     spent,
			Remaining: budget.Allocated.Sub(spent),
		})
	}
	return summaries, nil
}

// PeriodRange resolves a budget period label to an inclusive UTC date
// range. Supported labels: "2023" (year), "2023-05" (month),
// "2023-Q2" (quarter).
func PeriodRange(period string) (time.Time, time.Time, bool) {
	label := strings.TrimSpace(period)
	if year, err := strconv.Atoi(label); err == nil && year >= 1000 && year <= 9999 {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0).Add(-time.Microsecond), true
	}
	parts := strings.SplitN(label, "-", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1000 || year > 9999 {
		return time.Time{}, time.Time{}, false
	}
	rest := strings.ToUpper(parts[1])
	if strings.HasPrefix(rest, "Q") {
		quarter, err := strconv.Atoi(rest[1:])
		if err != nil || quarter < 1 || quarter > 4 {
			return time.Time{}, time.Time{}, false
		}
		start := time.Date(year, time.Month(3*(quarter-1)+1), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 3, 0).Add(-time.Microsecond), true
	}
	month, err := strconv.Atoi(rest)
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, time.Time{}, false
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0).Add(-time.Microsecond), true
}
