package transaction

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/fintrack/fintrack/internal/common"
	"github.com/fintrack/fintrack/internal/idgen"
	"github.com/fintrack/fintrack/internal/utils"
)

// DefaultRecentLimit is the number of transactions GetRecent returns when the
// caller does not ask for a specific limit.
const DefaultRecentLimit = 10

type TransactionService interface {
	GetAll(ctx context.Context) ([]Transaction, error)
	GetByID(ctx context.Context, id string) (Transaction, error)
	Create(ctx context.Context, input CreateInput) (Transaction, error)
	Update(ctx context.Context, id string, patch UpdateInput) (Transaction, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByType(ctx context.Context, t Type) ([]Transaction, error)
	GetByCategory(ctx context.Context, category string) ([]Transaction, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]Transaction, error)
	GetCurrentMonth(ctx context.Context) ([]Transaction, error)
	GetTotalByType(ctx context.Context, t Type) (float64, error)
	GetCurrentBalance(ctx context.Context) (float64, error)
	GetMonthlyBalance(ctx context.Context) (float64, error)
	GetExpensesByCategory(ctx context.Context) (map[string]float64, error)
	GetRecent(ctx context.Context, limit int) ([]Transaction, error)
}

type TransactionServiceImpl struct {
	repo  TransactionRepo
	idGen *idgen.Generator
	clock utils.Clock
}

func NewTransactionService(repo TransactionRepo, idGen *idgen.Generator, clock utils.Clock) *TransactionServiceImpl {
	return &TransactionServiceImpl{repo: repo, idGen: idGen, clock: clock}
}

func (s *TransactionServiceImpl) GetAll(ctx context.Context) ([]Transaction, error) {
	return s.repo.GetAll(ctx)
}

func (s *TransactionServiceImpl) GetByID(ctx context.Context, id string) (Transaction, error) {
	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return Transaction{}, err
	}
	for _, t := range transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return Transaction{}, common.NewNotFoundError("transaction", id)
}

func (s *TransactionServiceImpl) Create(ctx context.Context, input CreateInput) (Transaction, error) {
	if err := ValidateType(input.Type); err != nil {
		return Transaction{}, err
	}
	if err := ValidateAmount(input.Amount); err != nil {
		return Transaction{}, err
	}
	if err := ValidateDescription(input.Description); err != nil {
		return Transaction{}, err
	}
	if err := ValidateCategory(input.Category); err != nil {
		return Transaction{}, err
	}

	now := s.clock.Now()
	transaction := Transaction{
		ID:          s.idGen.NewID("txn"),
		Type:        input.Type,
		Amount:      input.Amount,
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Date:        input.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return Transaction{}, err
	}
	transactions = append(transactions, transaction)
	if err := s.repo.ReplaceAll(ctx, transactions); err != nil {
		return Transaction{}, err
	}
	return transaction, nil
}

func (s *TransactionServiceImpl) Update(ctx context.Context, id string, patch UpdateInput) (Transaction, error) {
	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return Transaction{}, err
	}

	idx := -1
	for i := range transactions {
		if transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Transaction{}, common.NewNotFoundError("transaction", id)
	}

	updated := transactions[idx]
	if patch.Type != nil {
		if err := ValidateType(*patch.Type); err != nil {
			return Transaction{}, err
		}
		updated.Type = *patch.Type
	}
	if patch.Amount != nil {
		if err := ValidateAmount(*patch.Amount); err != nil {
			return Transaction{}, err
		}
		updated.Amount = *patch.Amount
	}
	if patch.Description != nil {
		if err := ValidateDescription(*patch.Description); err != nil {
			return Transaction{}, err
		}
		updated.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		if err := ValidateCategory(*patch.Category); err != nil {
			return Transaction{}, err
		}
		updated.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Date != nil {
		updated.Date = *patch.Date
	}
	updated.UpdatedAt = s.clock.Now()

	transactions[idx] = updated
	if err := s.repo.ReplaceAll(ctx, transactions); err != nil {
		return Transaction{}, err
	}
	return updated, nil
}

// Delete removes the transaction with the given id. Deleting an unknown id is
// not an error; the returned bool reports whether a removal occurred.
func (s *TransactionServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return false, err
	}

	idx := -1
	for i := range transactions {
		if transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	transactions = append(transactions[:idx], transactions[idx+1:]...)
	if err := s.repo.ReplaceAll(ctx, transactions); err != nil {
		return false, err
	}
	return true, nil
}

func (s *TransactionServiceImpl) GetByType(ctx context.Context, t Type) ([]Transaction, error) {
	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []Transaction{}
	for _, transaction := range transactions {
		if transaction.Type == t {
			filtered = append(filtered, transaction)
		}
	}
	return filtered, nil
}

func (s *TransactionServiceImpl) GetByCategory(ctx context.Context, category string) ([]Transaction, error) {
	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []Transaction{}
	for _, transaction := range transactions {
		if transaction.Category == category {
			filtered = append(filtered, transaction)
		}
	}
	return filtered, nil
}

// GetByDateRange returns transactions whose date falls within the inclusive
// [start, end] window.
func (s *TransactionServiceImpl) GetByDateRange(ctx context.Context, start, end time.Time) ([]Transaction, error) {
	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []Transaction{}
	for _, transaction := range transactions {
		if transaction.IsWithinRange(start, end) {
			filtered = append(filtered, transaction)
		}
	}
	return filtered, nil
}

func (s *TransactionServiceImpl) GetCurrentMonth(ctx context.Context) ([]Transaction, error) {
	start, end := s.currentMonthWindow()
	return s.GetByDateRange(ctx, start, end)
}

func (s *TransactionServiceImpl) GetTotalByType(ctx context.Context, t Type) (float64, error) {
	transactions, err := s.GetByType(ctx, t)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, transaction := range transactions {
		total += transaction.Amount
	}
	return total, nil
}

// GetCurrentBalance returns sum(income) - sum(expense) over all transactions.
func (s *TransactionServiceImpl) GetCurrentBalance(ctx context.Context) (float64, error) {
	income, err := s.GetTotalByType(ctx, TypeIncome)
	if err != nil {
		return 0, err
	}
	expenses, err := s.GetTotalByType(ctx, TypeExpense)
	if err != nil {
		return 0, err
	}
	return income - expenses, nil
}

// GetMonthlyBalance returns the balance over the current calendar month.
func (s *TransactionServiceImpl) GetMonthlyBalance(ctx context.Context) (float64, error) {
	transactions, err := s.GetCurrentMonth(ctx)
	if err != nil {
		return 0, err
	}
	balance := 0.0
	for _, transaction := range transactions {
		if transaction.Type == TypeIncome {
			balance += transaction.Amount
		} else {
			balance -= transaction.Amount
		}
	}
	return balance, nil
}

// GetExpensesByCategory returns the summed expense amount per category id.
func (s *TransactionServiceImpl) GetExpensesByCategory(ctx context.Context) (map[string]float64, error) {
	expenses, err := s.GetByType(ctx, TypeExpense)
	if err != nil {
		return nil, err
	}
	breakdown := map[string]float64{}
	for _, expense := range expenses {
		breakdown[expense.Category] += expense.Amount
	}
	return breakdown, nil
}

// GetRecent returns the most recently created transactions, newest first.
// A limit of zero or less falls back to DefaultRecentLimit.
func (s *TransactionServiceImpl) GetRecent(ctx context.Context, limit int) ([]Transaction, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
	if len(transactions) > limit {
		transactions = transactions[:limit]
	}
	return transactions, nil
}

// currentMonthWindow spans from the first day of the current month to the
// last day, both at midnight in the clock's location.
func (s *TransactionServiceImpl) currentMonthWindow() (time.Time, time.Time) {
	now := s.clock.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, -1)
	return start, end
}
