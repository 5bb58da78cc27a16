package transaction

import "context"

type StubTransactionRepo struct {
	data       []Transaction
	ReplaceErr error
}

func NewStubTransactionRepo() *StubTransactionRepo {
	return &StubTransactionRepo{data: []Transaction{}}
}

func (s *StubTransactionRepo) GetAll(ctx context.Context) ([]Transaction, error) {
	transactions := make([]Transaction, len(s.data))
	copy(transactions, s.data)
	return transactions, nil
}

func (s *StubTransactionRepo) ReplaceAll(ctx context.Context, transactions []Transaction) error {
	if s.ReplaceErr != nil {
		return s.ReplaceErr
	}
	s.data = make([]Transaction, len(transactions))
	copy(s.data, transactions)
	return nil
}

func (s *StubTransactionRepo) Cleanup() {
	s.data = []Transaction{}
	s.ReplaceErr = nil
}
