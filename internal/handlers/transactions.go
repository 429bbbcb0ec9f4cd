package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"finboard/internal/middleware"
	"finboard/internal/money"
	"finboard/internal/services"
	"finboard/internal/store"

	"github.com/shopspring/decimal"
)

type lineRequest struct {
	ID          *int64          `json:"id"`
	AccountID   int64           `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description"`
}

type transactionRequest struct {
	ID          *int64        `json:"id"`
	Date        *string       `json:"date"`
	Description *string       `json:"description"`
	Reference   *string       `json:"reference"`
	Lines       []lineRequest `json:"lines"`
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	transactions, err := h.service.ListWithLines(r.Context(), userID)
	if err != nil {
		log.Printf("list transactions: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load transactions")
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Date == nil || req.Description == nil {
		respondError(w, http.StatusBadRequest, "date and description are required")
		return
	}
	date, err := parseDate(*req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date")
		return
	}
	changes, err := lineChanges(req.Lines)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := h.service.CreateWithLines(r.Context(), store.TransactionInput{
		Date:        date,
		Description: *req.Description,
		Reference:   req.Reference,
		UserID:      userID,
	}, changes)
	if err != nil {
		respondTransactionError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.ID == nil {
		respondError(w, http.StatusBadRequest, "transaction id is required")
		return
	}
	var date *time.Time
	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid date")
			return
		}
		date = &parsed
	}
	changes, err := lineChanges(req.Lines)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.service.UpdateWithLines(r.Context(), userID, *req.ID, store.TransactionPatch{
		Date:        date,
		Description: req.Description,
		Reference:   req.Reference,
	}, changes)
	if err != nil {
		respondTransactionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "transaction id is required")
		return
	}
	deleted, err := h.service.Delete(r.Context(), userID, id)
	if err != nil {
		respondTransactionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, deleted)
}

func lineChanges(lines []lineRequest) ([]services.LineChange, error) {
	changes := make([]services.LineChange, 0, len(lines))
	for _, line := range lines {
		if line.AccountID <= 0 {
			return nil, errors.New("line account_id is required")
		}
		if err := money.Validate(line.Amount); err != nil {
			return nil, err
		}
		changes = append(changes, services.LineChange{
			ID:          line.ID,
			AccountID:   line.AccountID,
			Amount:      line.Amount,
			Description: line.Description,
		})
	}
	return changes, nil
}

func respondTransactionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUnbalancedTransaction), errors.Is(err, services.ErrNoLines):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotOwner), errors.Is(err, sql.ErrNoRows):
		respondError(w, http.StatusNotFound, "transaction not found")
	default:
		log.Printf("transaction write: %v", err)
		respondError(w, http.StatusInternalServerError, "transaction failed")
	}
}
