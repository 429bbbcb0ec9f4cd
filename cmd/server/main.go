package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finboard/internal/config"
	"finboard/internal/db"
	"finboard/internal/handlers"
	"finboard/internal/services"
	"finboard/internal/store"
	"finboard/internal/websocket"
)

func main() {
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	users := store.NewUserStore(database)
	accounts := store.NewAccountStore(database)
	transactions := store.NewTransactionStore(database)
	lines := store.NewLineStore(database)
	budgets := store.NewBudgetStore(database)
	reports := store.NewReportStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()
	service := services.NewLedgerService(txRunner, transactions, lines, budgets, hub)

	handler := handlers.New(cfg, users, accounts, lines, budgets, reports, service, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("finboard API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
