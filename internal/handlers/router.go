package handlers

import (
	"net/http"

	"finboard/internal/config"
	"finboard/internal/middleware"
	"finboard/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	cfg      config.Config
	users    UserStore
	accounts AccountStore
	lines    LineQueries
	budgets  BudgetStore
	reports  ReportStore
	service  LedgerService
	hub      *websocket.Hub
}

func New(cfg config.Config, users UserStore, accounts AccountStore, lines LineQueries, budgets BudgetStore, reports ReportStore, service LedgerService, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:      cfg,
		users:    users,
		accounts: accounts,
		lines:    lines,
		budgets:  budgets,
		reports:  reports,
		service:  service,
		hub:      hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(middleware.Auth(h.cfg.JWTSecret)).Get("/me", h.Me)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Get("/accounts", h.ListAccounts)
		r.Post("/accounts", h.CreateAccount)
		r.Put("/accounts", h.UpdateAccount)
		r.Delete("/accounts", h.DeleteAccount)
		r.Get("/accounts/{id}/balance", h.AccountBalance)
		r.Get("/accounts/{id}/transactions", h.AccountTransactions)

		r.Get("/budgets", h.ListBudgets)
		r.Post("/budgets", h.CreateBudget)
		r.Put("/budgets", h.UpdateBudget)
		r.Delete("/budgets", h.DeleteBudget)

		r.Get("/transactions", h.ListTransactions)
		r.Post("/transactions", h.CreateTransaction)
		r.Put("/transactions", h.UpdateTransaction)
		r.Delete("/transactions", h.DeleteTransaction)

		r.Get("/reports", h.ListReports)
		r.Post("/reports", h.CreateReport)
		r.Put("/reports", h.UpdateReport)
		r.Delete("/reports", h.DeleteReport)
	})

	router.Get("/ws/balances", h.WSBalances)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
