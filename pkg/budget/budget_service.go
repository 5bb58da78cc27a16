package budget

import (
	"context"
	"sort"
	"strings"

	"github.com/fintrack/fintrack/internal/common"
	"github.com/fintrack/fintrack/internal/idgen"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

// AlertThreshold is the usage percentage at or above which a budget appears
// in the alert list.
const AlertThreshold = 80.0

type BudgetService interface {
	GetAll(ctx context.Context) ([]Budget, error)
	GetByID(ctx context.Context, id string) (Budget, error)
	Create(ctx context.Context, input CreateInput) (Budget, error)
	Update(ctx context.Context, id string, patch UpdateInput) (Budget, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetActive(ctx context.Context) ([]Budget, error)
	GetCurrent(ctx context.Context) (*Budget, error)
	GetUsage(ctx context.Context, id string) (Usage, error)
	IsExceeded(ctx context.Context, id string) (bool, error)
	GetAlerts(ctx context.Context) ([]Alert, error)
	DeactivateExpiredBudgets(ctx context.Context) (int, error)
}

type BudgetServiceImpl struct {
	repo         BudgetRepo
	transactions transaction.TransactionService
	idGen        *idgen.Generator
	clock        utils.Clock
}

func NewBudgetService(
	repo BudgetRepo,
	transactions transaction.TransactionService,
	idGen *idgen.Generator,
	clock utils.Clock,
) *BudgetServiceImpl {
	return &BudgetServiceImpl{repo: repo, transactions: transactions, idGen: idGen, clock: clock}
}

func (s *BudgetServiceImpl) GetAll(ctx context.Context) ([]Budget, error) {
	return s.repo.GetAll(ctx)
}

func (s *BudgetServiceImpl) GetByID(ctx context.Context, id string) (Budget, error) {
	budgets, err := s.repo.GetAll(ctx)
	if err != nil {
		return Budget{}, err
	}
	for _, b := range budgets {
		if b.ID == id {
			return b, nil
		}
	}
	return Budget{}, common.NewNotFoundError("budget", id)
}

func (s *BudgetServiceImpl) Create(ctx context.Context, input CreateInput) (Budget, error) {
	if err := ValidateName(input.Name); err != nil {
		return Budget{}, err
	}
	if err := ValidateLimit(input.TotalLimit); err != nil {
		return Budget{}, err
	}
	if err := ValidatePeriod(input.Period); err != nil {
		return Budget{}, err
	}
	if err := ValidateDateRange(input.StartDate, input.EndDate); err != nil {
		return Budget{}, err
	}

	categoryLimits := input.CategoryLimits
	if categoryLimits == nil {
		categoryLimits = map[string]float64{}
	}

	now := s.clock.Now()
	budget := Budget{
		ID:             s.idGen.NewID("budget"),
		Name:           strings.TrimSpace(input.Name),
		TotalLimit:     input.TotalLimit,
		CategoryLimits: categoryLimits,
		Period:         input.Period,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	budgets, err := s.repo.GetAll(ctx)
	if err != nil {
		return Budget{}, err
	}
	budgets = append(budgets, budget)
	if err := s.repo.ReplaceAll(ctx, budgets); err != nil {
		return Budget{}, err
	}
	return budget, nil
}

func (s *BudgetServiceImpl) Update(ctx context.Context, id string, patch UpdateInput) (Budget, error) {
	budgets, err := s.repo.GetAll(ctx)
	if err != nil {
		return Budget{}, err
	}

	idx := -1
	for i := range budgets {
		if budgets[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Budget{}, common.NewNotFoundError("budget", id)
	}

	updated := budgets[idx]
	if patch.Name != nil {
		if err := ValidateName(*patch.Name); err != nil {
			return Budget{}, err
		}
		updated.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.TotalLimit != nil {
		if err := ValidateLimit(*patch.TotalLimit); err != nil {
			return Budget{}, err
		}
		updated.TotalLimit = *patch.TotalLimit
	}
	if patch.CategoryLimits != nil {
		updated.CategoryLimits = patch.CategoryLimits
	}
	if patch.Period != nil {
		if err := ValidatePeriod(*patch.Period); err != nil {
			return Budget{}, err
		}
		updated.Period = *patch.Period
	}
	// The window can only move as a whole, so the ordering invariant is
	// always checked against both new values.
	if patch.StartDate != nil || patch.EndDate != nil {
		if patch.StartDate == nil || patch.EndDate == nil {
			return Budget{}, common.NewValidationError("startDate", "startDate and endDate must be changed together")
		}
		if err := ValidateDateRange(*patch.StartDate, *patch.EndDate); err != nil {
			return Budget{}, err
		}
		updated.StartDate = *patch.StartDate
		updated.EndDate = *patch.EndDate
	}
	if patch.IsActive != nil {
		updated.IsActive = *patch.IsActive
	}
	updated.UpdatedAt = s.clock.Now()

	budgets[idx] = updated
	if err := s.repo.ReplaceAll(ctx, budgets); err != nil {
		return Budget{}, err
	}
	return updated, nil
}

// Delete removes the budget with the given id. Deleting an unknown id is not
// an error; the returned bool reports whether a removal occurred.
func (s *BudgetServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	budgets, err := s.repo.GetAll(ctx)
	if err != nil {
		return false, err
	}

	idx := -1
	for i := range budgets {
		if budgets[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	budgets = append(budgets[:idx], budgets[idx+1:]...)
	if err := s.repo.ReplaceAll(ctx, budgets); err != nil {
		return false, err
	}
	return true, nil
}

func (s *BudgetServiceImpl) GetActive(ctx context.Context) ([]Budget, error) {
	budgets, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	active := []Budget{}
	for _, b := range budgets {
		if b.IsActive {
			active = append(active, b)
		}
	}
	return active, nil
}

// GetCurrent returns the first active budget whose window contains "now", in
// stored order, or nil when no window matches. When several active budgets
// overlap "now" the result is order-dependent; no priority rule exists.
func (s *BudgetServiceImpl) GetCurrent(ctx context.Context) (*Budget, error) {
	active, err := s.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	for _, b := range active {
		if b.IsWithinPeriod(now) {
			return &b, nil
		}
	}
	return nil, nil
}

// GetUsage computes the spending of the budget's window against its limits.
// Only expense transactions count; income inside the window is ignored.
func (s *BudgetServiceImpl) GetUsage(ctx context.Context, id string) (Usage, error) {
	budget, err := s.GetByID(ctx, id)
	if err != nil {
		return Usage{}, err
	}

	inWindow, err := s.transactions.GetByDateRange(ctx, budget.StartDate, budget.EndDate)
	if err != nil {
		return Usage{}, err
	}
	expenses := []transaction.Transaction{}
	for _, t := range inWindow {
		if t.Type == transaction.TypeExpense {
			expenses = append(expenses, t)
		}
	}

	totalSpent := 0.0
	for _, e := range expenses {
		totalSpent += e.Amount
	}

	categoryUsage := map[string]CategoryUsage{}
	for categoryID, limit := range budget.CategoryLimits {
		spent := 0.0
		for _, e := range expenses {
			if e.Category == categoryID {
				spent += e.Amount
			}
		}
		percentage := 0.0
		if limit > 0 {
			percentage = spent / limit * 100
		}
		categoryUsage[categoryID] = CategoryUsage{Spent: spent, Limit: limit, Percentage: percentage}
	}

	return Usage{
		TotalSpent:      totalSpent,
		TotalLimit:      budget.TotalLimit,
		PercentageUsed:  totalSpent / budget.TotalLimit * 100,
		RemainingAmount: budget.TotalLimit - totalSpent,
		CategoryUsage:   categoryUsage,
	}, nil
}

func (s *BudgetServiceImpl) IsExceeded(ctx context.Context, id string) (bool, error) {
	usage, err := s.GetUsage(ctx, id)
	if err != nil {
		return false, err
	}
	return usage.PercentageUsed > 100, nil
}

// GetAlerts returns the active budgets at or above the alert threshold,
// sorted by usage percentage descending. A usage computation failure for one
// budget is logged and that budget skipped, so a stale record cannot abort
// the whole sweep.
func (s *BudgetServiceImpl) GetAlerts(ctx context.Context) ([]Alert, error) {
	active, err := s.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	alerts := []Alert{}
	for _, b := range active {
		usage, err := s.GetUsage(ctx, b.ID)
		if err != nil {
			log.Errorf("could not compute usage for budget %s, skipping: %v", b.ID, err)
			continue
		}
		if usage.PercentageUsed >= AlertThreshold {
			alerts = append(alerts, Alert{Budget: b, Usage: usage.PercentageUsed})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Usage > alerts[j].Usage
	})
	return alerts, nil
}

// DeactivateExpiredBudgets flips IsActive off for every active budget whose
// end date has passed and returns the number of deactivations. The collection
// is persisted once, and only if something changed. This is a maintenance
// sweep, expected to run once per session.
func (s *BudgetServiceImpl) DeactivateExpiredBudgets(ctx context.Context) (int, error) {
	budgets, err := s.repo.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	deactivated := 0
	for i := range budgets {
		if budgets[i].IsActive && budgets[i].EndDate.Before(now) {
			budgets[i].IsActive = false
			budgets[i].UpdatedAt = now
			deactivated++
		}
	}

	if deactivated > 0 {
		if err := s.repo.ReplaceAll(ctx, budgets); err != nil {
			return 0, err
		}
	}
	return deactivated, nil
}
