package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"finboard/internal/middleware"
	"finboard/internal/money"
	"finboard/internal/store"
	"finboard/internal/validator"

	"github.com/shopspring/decimal"
)

type budgetRequest struct {
	ID        *int64           `json:"id"`
	Name      *string          `json:"name"`
	AccountID *int64           `json:"account_id"`
	Allocated *decimal.Decimal `json:"allocated"`
	Period    *string          `json:"period"`
}

// ListBudgets returns the user's budgets with spent derived from
// posted lines, never read from storage.
func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	budgets, err := h.service.BudgetSummaries(r.Context(), userID)
	if err != nil {
		log.Printf("list budgets: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load budgets")
		return
	}
	respondJSON(w, http.StatusOK, budgets)
}

func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == nil || req.AccountID == nil || req.Allocated == nil || req.Period == nil {
		respondError(w, http.StatusBadRequest, "name, account_id, allocated and period are required")
		return
	}
	if err := validator.ValidateName(*req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := money.ValidatePositive(*req.Allocated); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	budget, err := h.budgets.Create(r.Context(), store.BudgetInput{
		Name:      *req.Name,
		AccountID: *req.AccountID,
		Allocated: *req.Allocated,
		Period:    *req.Period,
		UserID:    userID,
	})
	if err != nil {
		log.Printf("create budget: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to create budget")
		return
	}
	respondJSON(w, http.StatusCreated, budget)
}

func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.ID == nil {
		respondError(w, http.StatusBadRequest, "budget id is required")
		return
	}
	if req.Allocated != nil {
		if err := money.ValidatePositive(*req.Allocated); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if !h.ownsBudget(w, r, *req.ID, userID) {
		return
	}
	budget, err := h.budgets.Update(r.Context(), *req.ID, store.BudgetPatch{
		Name:      req.Name,
		AccountID: req.AccountID,
		Allocated: req.Allocated,
		Period:    req.Period,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "budget not found")
			return
		}
		log.Printf("update budget: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to update budget")
		return
	}
	respondJSON(w, http.StatusOK, budget)
}

func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "budget id is required")
		return
	}
	if !h.ownsBudget(w, r, id, userID) {
		return
	}
	budget, err := h.budgets.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "budget not found")
			return
		}
		log.Printf("delete budget: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to delete budget")
		return
	}
	respondJSON(w, http.StatusOK, budget)
}

// ownsBudget writes the response itself when the budget is missing or
// belongs to someone else.
func (h *Handler) ownsBudget(w http.ResponseWriter, r *http.Request, budgetID int64, userID string) bool {
	existing, err := h.budgets.GetByID(r.Context(), budgetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "budget not found")
			return false
		}
		log.Printf("load budget: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load budget")
		return false
	}
	if existing.UserID != userID {
		respondError(w, http.StatusNotFound, "budget not found")
		return false
	}
	return true
}
