package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"finboard/internal/middleware"
	"finboard/internal/store"
	"finboard/internal/validator"
)

type reportRequest struct {
	ID        *int64  `json:"id"`
	Name      *string `json:"name"`
	Type      *string `json:"type"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Data      *string `json:"data"`
}

// ListReports serves both stored report snapshots and, with
// ?type=overview, the live financial overview. The default range is
// January 1 of the current year through now; the engine itself never
// assumes a default.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if r.URL.Query().Get("type") == "overview" {
		h.overview(w, r, userID)
		return
	}
	reports, err := h.reports.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("list reports: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load reports")
		return
	}
	respondJSON(w, http.StatusOK, reports)
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request, userID string) {
	now := time.Now()
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	to := now
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid startDate")
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid endDate")
			return
		}
		to = parsed
	}
	overview, err := h.service.Overview(r.Context(), userID, from, to)
	if err != nil {
		log.Printf("overview: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to compute overview")
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == nil || req.Type == nil || req.StartDate == nil || req.EndDate == nil {
		respondError(w, http.StatusBadRequest, "name, type, start_date and end_date are required")
		return
	}
	if err := validator.ValidateName(*req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidateReportType(*req.Type); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	startDate, err := parseDate(*req.StartDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid start_date")
		return
	}
	endDate, err := parseDate(*req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid end_date")
		return
	}
	report, err := h.reports.Create(r.Context(), store.ReportInput{
		Name:      *req.Name,
		Type:      *req.Type,
		StartDate: startDate,
		EndDate:   endDate,
		Data:      req.Data,
		UserID:    userID,
	})
	if err != nil {
		log.Printf("create report: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to create report")
		return
	}
	respondJSON(w, http.StatusCreated, report)
}

// UpdateReport edits the stored record only; the snapshot payload is
// never recomputed.
func (h *Handler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.ID == nil {
		respondError(w, http.StatusBadRequest, "report id is required")
		return
	}
	if req.Type != nil {
		if err := validator.ValidateReportType(*req.Type); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	patch := store.ReportPatch{Name: req.Name, Type: req.Type, Data: req.Data}
	if req.StartDate != nil {
		parsed, err := parseDate(*req.StartDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid start_date")
			return
		}
		patch.StartDate = &parsed
	}
	if req.EndDate != nil {
		parsed, err := parseDate(*req.EndDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid end_date")
			return
		}
		patch.EndDate = &parsed
	}
	if !h.ownsReport(w, r, *req.ID, userID) {
		return
	}
	report, err := h.reports.Update(r.Context(), *req.ID, patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "report not found")
			return
		}
		log.Printf("update report: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to update report")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "report id is required")
		return
	}
	if !h.ownsReport(w, r, id, userID) {
		return
	}
	report, err := h.reports.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "report not found")
			return
		}
		log.Printf("delete report: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to delete report")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) ownsReport(w http.ResponseWriter, r *http.Request, reportID int64, userID string) bool {
	existing, err := h.reports.GetByID(r.Context(), reportID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "report not found")
			return false
		}
		log.Printf("load report: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load report")
		return false
	}
	if existing.UserID != userID {
		respondError(w, http.StatusNotFound, "report not found")
		return false
	}
	return true
}
