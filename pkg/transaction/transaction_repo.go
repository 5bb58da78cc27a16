package transaction

import (
	"context"
	"fmt"

	"github.com/fintrack/fintrack/internal/storage"
	log "github.com/sirupsen/logrus"
)

// Collection is the persisted collection name for transactions.
const Collection = "financial_transactions"

type TransactionRepo interface {
	// GetAll loads the full collection. It resolves read anomalies to an
	// empty collection instead of failing.
	GetAll(ctx context.Context) ([]Transaction, error)
	// ReplaceAll persists the full collection, replacing the stored one.
	ReplaceAll(ctx context.Context, transactions []Transaction) error
}

type TransactionRepoImpl struct {
	store storage.Store
}

func NewTransactionRepo(store storage.Store) *TransactionRepoImpl {
	return &TransactionRepoImpl{store: store}
}

func (r *TransactionRepoImpl) GetAll(ctx context.Context) ([]Transaction, error) {
	transactions := []Transaction{}
	if err := r.store.Load(ctx, Collection, &transactions); err != nil {
		err := fmt.Errorf("could not load transactions, treating as empty: %w", err)
		log.Error(err)
		return []Transaction{}, nil
	}
	return transactions, nil
}

func (r *TransactionRepoImpl) ReplaceAll(ctx context.Context, transactions []Transaction) error {
	return r.store.Save(ctx, Collection, transactions)
}
