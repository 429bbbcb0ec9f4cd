package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"finboard/internal/models"

	"github.com/shopspring/decimal"
)

func TestLineStoreInsertInTx(t *testing.T) {
	ctx := context.Background()
	amount := decimal.RequireFromString("-150.00")
	tx := stubGetter{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "INSERT INTO transaction_lines") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 4 || args[0] != int64(10) || args[1] != int64(3) {
				t.Fatalf("unexpected args: %#v", args)
			}
			if got, ok := args[2].(decimal.Decimal); !ok || !got.Equal(amount) {
				t.Fatalf("unexpected amount arg: %#v", args[2])
			}
			*dest.(*models.TransactionLine) = models.TransactionLine{ID: 21, TransactionID: 10, AccountID: 3, Amount: amount}
			return nil
		},
	}
	store := NewLineStore(stubDB{})
	row, err := store.Insert(ctx, tx, 10, LineInput{AccountID: 3, Amount: amount})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.ID != 21 || !row.Amount.Equal(amount) {
		t.Fatalf("unexpected row: %#v", row)
	}
}

func TestLineStoreSumByTransactionInTx(t *testing.T) {
	ctx := context.Background()
	tx := stubGetter{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "COALESCE(SUM(amount), 0)") || !strings.Contains(query, "WHERE transaction_id = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 1 || args[0] != int64(10) {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*decimal.Decimal) = decimal.Zero
			return nil
		},
	}
	store := NewLineStore(stubDB{})
	sum, err := store.SumByTransaction(ctx, tx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sum.IsZero() {
		t.Fatalf("unexpected sum: %s", sum)
	}
}

func TestLineStoreSumByAccount(t *testing.T) {
	ctx := context.Background()
	store := NewLineStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "WHERE account_id = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 1 || args[0] != int64(3) {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*decimal.Decimal) = decimal.RequireFromString("240.50")
			return nil
		},
	})
	sum, err := store.SumByAccount(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.StringFixed(2) != "240.50" {
		t.Fatalf("unexpected sum: %s", sum)
	}
}

func TestLineStoreSumByAccountBetween(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	store := NewLineStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "t.date >= $2 AND t.date <= $3") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 3 || args[0] != int64(3) || args[1] != from || args[2] != to {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*decimal.Decimal) = decimal.Zero
			return nil
		},
	})
	if _, err := store.SumByAccountBetween(ctx, 3, from, to); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLineStoreActivityByAccountNoRange(t *testing.T) {
	ctx := context.Background()
	store := NewLineStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			if strings.Contains(query, "$2") || strings.Contains(query, "$3") {
				t.Fatalf("expected single-arg query, got: %s", query)
			}
			if !strings.Contains(query, "ORDER BY t.date") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 1 || args[0] != int64(3) {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*[]AccountActivity) = []AccountActivity{{TransactionID: 10}}
			return nil
		},
	})
	rows, err := store.ActivityByAccount(ctx, 3, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].TransactionID != 10 {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}

func TestLineStoreActivityByAccountWithRange(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	store := NewLineStore(stubDB{
		selectFn: func(_ context.Context, _ any, query string, args ...any) error {
			if !strings.Contains(query, "t.date >= $2") || !strings.Contains(query, "t.date <= $3") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 3 || args[1] != from || args[2] != to {
				t.Fatalf("unexpected args: %#v", args)
			}
			return nil
		},
	})
	if _, err := store.ActivityByAccount(ctx, 3, &from, &to); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLineStoreActivityByAccountEndOnly(t *testing.T) {
	ctx := context.Background()
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	store := NewLineStore(stubDB{
		selectFn: func(_ context.Context, _ any, query string, args ...any) error {
			if strings.Contains(query, "t.date >=") || !strings.Contains(query, "t.date <= $2") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 2 || args[1] != to {
				t.Fatalf("unexpected args: %#v", args)
			}
			return nil
		},
	})
	if _, err := store.ActivityByAccount(ctx, 3, nil, &to); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLineStoreTotalsByType(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	store := NewLineStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "GROUP BY a.id, a.name") || !strings.Contains(query, "a.type = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 4 || args[0] != "revenue" || args[1] != "user-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*[]AccountTotal) = []AccountTotal{{AccountID: 3, AccountName: "Sales", Total: decimal.RequireFromString("140.00")}}
			return nil
		},
	})
	rows, err := store.TotalsByType(ctx, "user-1", "revenue", from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Total.StringFixed(2) != "140.00" {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}
