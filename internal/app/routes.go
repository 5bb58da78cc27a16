package app

import (
	"github.com/fintrack/fintrack/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Transactions
	r.HandleFunc("/api/transaction", deps.TransactionHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/transaction", deps.TransactionHandler.Create).Methods("POST")
	r.HandleFunc("/api/transaction/recent", deps.TransactionHandler.GetRecent).Methods("GET")
	r.HandleFunc("/api/transaction/{id}", deps.TransactionHandler.Update).Methods("PUT")
	r.HandleFunc("/api/transaction/{id}", deps.TransactionHandler.Delete).Methods("DELETE")

	// Reports
	r.HandleFunc("/api/report/balance", deps.TransactionHandler.GetBalance).Methods("GET")
	r.HandleFunc("/api/report/balance/monthly", deps.TransactionHandler.GetMonthlyBalance).Methods("GET")
	r.HandleFunc("/api/report/expenses-by-category", deps.TransactionHandler.GetExpensesByCategory).Methods("GET")

	// Budgets
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/budget", deps.BudgetHandler.Create).Methods("POST")
	r.HandleFunc("/api/budget/current", deps.BudgetHandler.GetCurrent).Methods("GET")
	r.HandleFunc("/api/budget/alerts", deps.BudgetHandler.GetAlerts).Methods("GET")
	r.HandleFunc("/api/budget/deactivate-expired", deps.BudgetHandler.DeactivateExpired).Methods("POST")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Update).Methods("PUT")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/budget/{id}/usage", deps.BudgetHandler.GetUsage).Methods("GET")

	// Categories
	r.HandleFunc("/api/category", deps.CategoryHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/category/{id}", deps.CategoryHandler.GetByID).Methods("GET")

	// Auth stub
	r.HandleFunc("/api/auth/register", deps.UserHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", deps.UserHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", deps.UserHandler.Logout).Methods("DELETE")
	r.HandleFunc("/api/auth/me", deps.UserHandler.CurrentUser).Methods("GET")
}
