package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Therakar/banklist/handler"
	"github.com/Therakar/banklist/storage"

	"github.com/gorilla/mux"
)

func main() {
	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := os.Getenv("BANKLIST_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	// Initialize the in-memory bank with the demo accounts. All state lives
	// here for the lifetime of the process and is discarded on exit.
	store, err := storage.NewMemoryStore(storage.SeedAccounts()...)
	if err != nil {
		log.Fatalf("Failed to initialize accounts: %v", err)
	}
	log.Println("In-memory bank initialized with demo accounts.")

	// Initialize handlers
	sessions := handler.NewSessionRegistry(store)
	accountHandler := handler.NewAccountHandler(sessions)
	transactionHandler := handler.NewTransactionHandler(sessions)

	// Setup router
	r := mux.NewRouter()
	r.HandleFunc("/sessions", accountHandler.LoginHandler).Methods("POST")
	r.HandleFunc("/sessions/{token}/account", accountHandler.GetSummaryHandler).Methods("GET")
	r.HandleFunc("/sessions/{token}/movements", accountHandler.GetMovementsHandler).Methods("GET")
	r.HandleFunc("/sessions/{token}/transfers", transactionHandler.TransferHandler).Methods("POST")
	r.HandleFunc("/sessions/{token}/loans", transactionHandler.LoanHandler).Methods("POST")
	r.HandleFunc("/sessions/{token}/account", transactionHandler.CloseAccountHandler).Methods("DELETE")

	// Create and start server
	server := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Println("Shutting down server...")

	// Create a context for shutdown with a timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}
