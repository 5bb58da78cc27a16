package budget

import "context"

type StubBudgetRepo struct {
	data       []Budget
	ReplaceErr error
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{data: []Budget{}}
}

func (s *StubBudgetRepo) GetAll(ctx context.Context) ([]Budget, error) {
	budgets := make([]Budget, len(s.data))
	copy(budgets, s.data)
	return budgets, nil
}

func (s *StubBudgetRepo) ReplaceAll(ctx context.Context, budgets []Budget) error {
	if s.ReplaceErr != nil {
		return s.ReplaceErr
	}
	s.data = make([]Budget, len(budgets))
	copy(s.data, budgets)
	return nil
}

func (s *StubBudgetRepo) Cleanup() {
	s.data = []Budget{}
	s.ReplaceErr = nil
}
