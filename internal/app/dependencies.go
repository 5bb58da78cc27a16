package app

import (
	"github.com/fintrack/fintrack/internal/config"
	"github.com/fintrack/fintrack/internal/idgen"
	"github.com/fintrack/fintrack/internal/storage"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/budget"
	"github.com/fintrack/fintrack/pkg/category"
	"github.com/fintrack/fintrack/pkg/transaction"
	"github.com/fintrack/fintrack/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock utils.Clock
	IDGen *idgen.Generator

	Catalog         *category.Catalog
	CategoryHandler *category.CategoryHandler

	TransactionRepo    transaction.TransactionRepo
	TransactionService transaction.TransactionService
	TransactionHandler *transaction.TransactionHandler

	BudgetRepo    budget.BudgetRepo
	BudgetService budget.BudgetService
	BudgetHandler *budget.BudgetHandler

	UserRepo    user.UserRepo
	UserService user.UserService
	UserHandler *user.UserHandler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(store storage.Store, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = utils.SystemClock{}
	deps.IDGen = idgen.NewGenerator(deps.Clock)

	deps.Catalog = category.NewDefaultCatalog()
	deps.CategoryHandler = category.NewCategoryHandler(deps.Catalog)

	deps.TransactionRepo = transaction.NewTransactionRepo(store)
	deps.TransactionService = transaction.NewTransactionService(deps.TransactionRepo, deps.IDGen, deps.Clock)
	deps.TransactionHandler = transaction.NewTransactionHandler(deps.TransactionService)

	deps.BudgetRepo = budget.NewBudgetRepo(store)
	deps.BudgetService = budget.NewBudgetService(deps.BudgetRepo, deps.TransactionService, deps.IDGen, deps.Clock)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService)

	deps.UserRepo = user.NewUserRepo(store)
	deps.UserService = user.NewUserService(deps.UserRepo, deps.Clock)
	deps.UserHandler = user.NewUserHandler(deps.UserService)

	return deps
}
