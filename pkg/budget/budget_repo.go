package budget

import (
	"context"
	"fmt"

	"github.com/fintrack/fintrack/internal/storage"
	log "github.com/sirupsen/logrus"
)

// Collection is the persisted collection name for budgets.
const Collection = "financial_budgets"

type BudgetRepo interface {
	// GetAll loads the full collection. It resolves read anomalies to an
	// empty collection instead of failing.
	GetAll(ctx context.Context) ([]Budget, error)
	// ReplaceAll persists the full collection, replacing the stored one.
	ReplaceAll(ctx context.Context, budgets []Budget) error
}

type BudgetRepoImpl struct {
	store storage.Store
}

func NewBudgetRepo(store storage.Store) *BudgetRepoImpl {
	return &BudgetRepoImpl{store: store}
}

func (r *BudgetRepoImpl) GetAll(ctx context.Context) ([]Budget, error) {
	budgets := []Budget{}
	if err := r.store.Load(ctx, Collection, &budgets); err != nil {
		err := fmt.Errorf("could not load budgets, treating as empty: %w", err)
		log.Error(err)
		return []Budget{}, nil
	}
	return budgets, nil
}

func (r *BudgetRepoImpl) ReplaceAll(ctx context.Context, budgets []Budget) error {
	return r.store.Save(ctx, Collection, budgets)
}
