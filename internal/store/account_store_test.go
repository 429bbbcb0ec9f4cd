package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"finboard/internal/models"
)

func TestAccountStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FROM accounts") || !strings.Contains(query, "ORDER BY code") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 0 {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*[]models.Account) = []models.Account{{ID: 1, Code: "1000"}}
			return nil
		},
	})
	rows, err := store.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Code != "1000" {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}

func TestAccountStoreGetByID(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "WHERE id = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 1 || args[0] != int64(7) {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*models.Account) = models.Account{ID: 7}
			return nil
		},
	})
	row, err := store.GetByID(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.ID != 7 {
		t.Fatalf("unexpected row: %#v", row)
	}
}

func TestAccountStoreCreate(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "INSERT INTO accounts") || !strings.Contains(query, "RETURNING") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 4 {
				t.Fatalf("expected 4 args, got %d", len(args))
			}
			if args[0] != "4000" || args[1] != "Sales" || args[2] != "revenue" {
				t.Fatalf("unexpected args: %#v", args)
			}
			if args[3] != (*string)(nil) {
				t.Fatalf("unexpected description arg: %#v", args[3])
			}
			*dest.(*models.Account) = models.Account{ID: 3, Code: "4000", Name: "Sales", Type: "revenue"}
			return nil
		},
	})
	row, err := store.Create(ctx, AccountInput{Code: "4000", Name: "Sales", Type: "revenue"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.ID != 3 || row.Type != "revenue" {
		t.Fatalf("unexpected row: %#v", row)
	}
}

func TestAccountStoreUpdateKeepsUnsetFields(t *testing.T) {
	ctx := context.Background()
	name := "Consulting revenue"
	store := NewAccountStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "UPDATE accounts") || !strings.Contains(query, "COALESCE($2, name)") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 5 || args[4] != int64(3) {
				t.Fatalf("unexpected args: %#v", args)
			}
			if args[0] != (*string)(nil) {
				t.Fatalf("expected nil code arg, got %#v", args[0])
			}
			if ptr, ok := args[1].(*string); !ok || *ptr != name {
				t.Fatalf("unexpected name arg: %#v", args[1])
			}
			*dest.(*models.Account) = models.Account{ID: 3, Name: name}
			return nil
		},
	})
	row, err := store.Update(ctx, 3, AccountPatch{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.Name != name {
		t.Fatalf("unexpected row: %#v", row)
	}
}

func TestAccountStoreUpdateDoubleApply(t *testing.T) {
	ctx := context.Background()
	// The stub merges like the COALESCE query does; applying the same
	// patch twice must land on the same row state.
	stored := models.Account{ID: 3, Code: "4000", Name: "Sales", Type: "revenue"}
	coalesce := func(arg any, current string) string {
		if ptr, ok := arg.(*string); ok && ptr != nil {
			return *ptr
		}
		return current
	}
	store := NewAccountStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "UPDATE accounts") {
				t.Fatalf("unexpected query: %s", query)
			}
			stored.Code = coalesce(args[0], stored.Code)
			stored.Name = coalesce(args[1], stored.Name)
			stored.Type = coalesce(args[2], stored.Type)
			*dest.(*models.Account) = stored
			return nil
		},
	})

	name := "Consulting revenue"
	patch := AccountPatch{Name: &name}
	first, err := store.Update(ctx, 3, patch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := store.Update(ctx, 3, patch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("repeated update changed state: %#v vs %#v", first, second)
	}
	if second.Name != name || second.Code != "4000" || second.Type != "revenue" {
		t.Fatalf("unexpected row: %#v", second)
	}
}

func TestAccountStoreDeleteMissing(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore(stubDB{
		getFn: func(_ context.Context, _ any, query string, _ ...any) error {
			if !strings.Contains(query, "DELETE FROM accounts") {
				t.Fatalf("unexpected query: %s", query)
			}
			return sql.ErrNoRows
		},
	})
	if _, err := store.Delete(ctx, 99); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}
