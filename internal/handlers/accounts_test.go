package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finboard/internal/auth"
	"finboard/internal/middleware"
	"finboard/internal/models"
	"finboard/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

func authedRequest(t *testing.T, method, target string, body string) *http.Request {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	token, err := auth.GenerateToken("secret", "user-1", time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func serveAuthed(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	middleware.Auth("secret")(handler).ServeHTTP(rr, req)
	return rr
}

func TestListAccountsOrdered(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubAccountStore{
		listFn: func(context.Context) ([]models.Account, error) {
			return []models.Account{
				{ID: 1, Code: "1000", Name: "Cash", Type: "asset"},
				{ID: 3, Code: "4000", Name: "Sales", Type: "revenue"},
			}, nil
		},
	}, stubLineQueries{}, stubBudgetStore{}, stubReportStore{}, stubLedgerService{})

	rr := serveAuthed(handler.ListAccounts, authedRequest(t, http.MethodGet, "/accounts", ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload []map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload) != 2 || payload[0]["code"] != "1000" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestListAccountsUnauthorized(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubAccountStore{}, stubLineQueries{}, stubBudgetStore{}, stubReportStore{}, stubLedgerService{})

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	rr := httptest.NewRecorder()
	middleware.Auth("secret")(http.HandlerFunc(handler.ListAccounts)).ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestCreateAccountMissingFields(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubAccountStore{}, stubLineQueries{}, stubBudgetStore{}, stubReportStore{}, stubLedgerService{})

	rr := serveAuthed(handler.CreateAccount, authedRequest(t, http.MethodPost, "/accounts", `{"code":"1000"}`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCreateAccountRejectsUnknownType(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubAccountStore{}, stubLineQueries{}, stubBudgetStore{}, stubReportStore{}, stubLedgerService{})

	rr := serveAuthed(handler.CreateAccount, authedRequest(t, http.MethodPost, "/accounts", `{"code":"1000","name":"Cash","type":"vault"}`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCreateAccountDuplicateCode(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubAccountStore{
		createFn: func(context.Context, store.AccountInput) (models.Account, error) {
			return models.Account{}, &pq.Error{Code: "23505"}
		},
	}, stubLineQueries{}, stubBudgetStore{}, stubReportStore{}, stubLedgerService{})

	rr := serveAuthed(handler.CreateAccount, authedRequest(t, http.MethodPost, "/accounts", `{"code":"1000","name":"Cash","type":"asset"}`))
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
}

func TestCreateAccountCreated(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubAccountStore{
		createFn: func(_ context.Context, input store.AccountInput) (models.Account, error) {
			if input.Code != "1000" || input.Type != "asset" {
				t.Fatalf("unexpected input: %#v", input)
			}
			return models.Account{ID: 1, Code: input.Code, Name: input.Name, Type: input.Type}, nil
		},
	}, stubLineQueries{}, stubBudgetStore{}, stubReportStore{}, stubLedgerService{})

	rr := serveAuthed(handler.CreateAccount, authedRequest(t, http.MethodPost, "/accounts", `{"code":"1000","name":"Cash","type":"asset"}`))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
}

func TestUpdateAccountMissingID(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubAccountStore{}, stubLineQueries{}, stubBudgetStore{}, stubReportStore{}, stubLedgerService{})

	rr := serveAuthed(handler.UpdateAccount, authedRequest(t, http.MethodPut, "/accounts", `{"name":"Cash"}`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestUpdateAccountNotFound(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubAccountStore{
		updateFn: func(context.Context, int64, store.AccountPatch) (models.Account, error) {
			return models.Account{}, sql.ErrNoRows
		},
	}, stubLineQueries{}, stubBudgetStore{}, stubReportStore{}, stubLedgerService{})

	rr := serveAuthed(handler.UpdateAccount, authedRequest(t, http.MethodPut, "/accounts", `{"id":99,"name":"Cash"}`))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestDeleteAccountMissingID(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubAccountStore{}, stubLineQueries{}, stubBudgetStore{}, stubReportStore{}, stubLedgerService{})

	rr := serveAuthed(handler.DeleteAccount, authedRequest(t, http.MethodDelete, "/accounts", ""))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestDeleteAccountNotFound(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubAccountStore{
		deleteFn: func(context.Context, int64) (models.Account, error) {
			return models.Account{}, sql.ErrNoRows
		},
	}, stubLineQueries{}, stubBudgetStore{}, stubReportStore{}, stubLedgerService{})

	rr := serveAuthed(handler.DeleteAccount, authedRequest(t, http.MethodDelete, "/accounts?id=99", ""))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestAccountBalanceFormatsDecimal(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubAccountStore{}, stubLineQueries{
		sumByAccountFn: func(_ context.Context, accountID int64) (decimal.Decimal, error) {
			if accountID != 3 {
				t.Fatalf("unexpected account id: %d", accountID)
			}
			return decimal.RequireFromString("240.5"), nil
		},
	}, stubBudgetStore{}, stubReportStore{}, stubLedgerService{})

	req := withURLParam(authedRequest(t, http.MethodGet, "/accounts/3/balance", ""), "id", "3")
	rr := serveAuthed(handler.AccountBalance, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["balance"] != "240.50" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestAccountBalanceUnknownAccount(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubAccountStore{
		getByIDFn: func(context.Context, int64) (models.Account, error) {
			return models.Account{}, sql.ErrNoRows
		},
	}, stubLineQueries{}, stubBudgetStore{}, stubReportStore{}, stubLedgerService{})

	req := withURLParam(authedRequest(t, http.MethodGet, "/accounts/99/balance", ""), "id", "99")
	rr := serveAuthed(handler.AccountBalance, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestAccountTransactionsEmptyList(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubAccountStore{}, stubLineQueries{}, stubBudgetStore{}, stubReportStore{}, stubLedgerService{})

	req := withURLParam(authedRequest(t, http.MethodGet, "/accounts/3/transactions", ""), "id", "3")
	rr := serveAuthed(handler.AccountTransactions, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body := strings.TrimSpace(rr.Body.String()); body != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}

func TestAccountTransactionsPassesRange(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubAccountStore{}, stubLineQueries{
		activityByAccountFn: func(_ context.Context, accountID int64, from, to *time.Time) ([]store.AccountActivity, error) {
			if accountID != 3 || from == nil || to == nil {
				t.Fatalf("unexpected query: %d %v %v", accountID, from, to)
			}
			if from.Year() != 2024 || to.Month() != time.June {
				t.Fatalf("unexpected range: %s %s", from, to)
			}
			return []store.AccountActivity{{TransactionID: 10, Amount: decimal.RequireFromString("-20.00")}}, nil
		},
	}, stubBudgetStore{}, stubReportStore{}, stubLedgerService{})

	req := withURLParam(authedRequest(t, http.MethodGet, "/accounts/3/transactions?startDate=2024-01-01&endDate=2024-06-30", ""), "id", "3")
	rr := serveAuthed(handler.AccountTransactions, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload []map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload) != 1 {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestAccountTransactionsBadDate(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubAccountStore{}, stubLineQueries{}, stubBudgetStore{}, stubReportStore{}, stubLedgerService{})

	req := withURLParam(authedRequest(t, http.MethodGet, "/accounts/3/transactions?startDate=yesterday", ""), "id", "3")
	rr := serveAuthed(handler.AccountTransactions, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
