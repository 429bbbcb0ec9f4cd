package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"finboard/internal/money"
	"finboard/internal/store"
	"finboard/internal/validator"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		log.Printf("list accounts: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load accounts")
		return
	}
	respondJSON(w, http.StatusOK, accounts)
}

type accountRequest struct {
	ID          *int64  `json:"id"`
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Code == nil || req.Name == nil || req.Type == nil {
		respondError(w, http.StatusBadRequest, "code, name and type are required")
		return
	}
	if err := validateAccountFields(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	account, err := h.accounts.Create(r.Context(), store.AccountInput{
		Code:        *req.Code,
		Name:        *req.Name,
		Type:        *req.Type,
		Description: req.Description,
	})
	if err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusConflict, "account code already exists")
			return
		}
		log.Printf("create account: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to create account")
		return
	}
	respondJSON(w, http.StatusCreated, account)
}

func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.ID == nil {
		respondError(w, http.StatusBadRequest, "account id is required")
		return
	}
	if err := validateAccountFields(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	account, err := h.accounts.Update(r.Context(), *req.ID, store.AccountPatch{
		Code:        req.Code,
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "account not found")
			return
		}
		if isUniqueViolation(err) {
			respondError(w, http.StatusConflict, "account code already exists")
			return
		}
		log.Printf("update account: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to update account")
		return
	}
	respondJSON(w, http.StatusOK, account)
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "account id is required")
		return
	}
	account, err := h.accounts.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "account not found")
			return
		}
		log.Printf("delete account: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to delete account")
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// AccountBalance returns the all-time sum of the account's lines;
// zero when none exist.
func (h *Handler) AccountBalance(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	if _, err := h.accounts.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "account not found")
			return
		}
		log.Printf("account balance: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load account")
		return
	}
	balance, err := h.lines.SumByAccount(r.Context(), id)
	if err != nil {
		log.Printf("account balance: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to compute balance")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"account_id": id,
		"balance":    money.Format(balance),
	})
}

// AccountTransactions lists the account's postings joined to their
// transactions, optionally clipped to an inclusive date range. A
// deleted account yields an empty list, not an error.
func (h *Handler) AccountTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	var from, to *time.Time
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid startDate")
			return
		}
		from = &parsed
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid endDate")
			return
		}
		to = &parsed
	}
	activity, err := h.lines.ActivityByAccount(r.Context(), id, from, to)
	if err != nil {
		log.Printf("account transactions: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load account transactions")
		return
	}
	if activity == nil {
		activity = []store.AccountActivity{}
	}
	respondJSON(w, http.StatusOK, activity)
}

func validateAccountFields(req accountRequest) error {
	if req.Code != nil {
		if err := validator.ValidateAccountCode(*req.Code); err != nil {
			return err
		}
	}
	if req.Name != nil {
		if err := validator.ValidateName(*req.Name); err != nil {
			return err
		}
	}
	if req.Type != nil {
		if err := validator.ValidateAccountType(*req.Type); err != nil {
			return err
		}
	}
	return nil
}
