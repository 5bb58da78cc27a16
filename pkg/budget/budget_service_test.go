package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fintrack/fintrack/internal/common"
	"github.com/fintrack/fintrack/internal/idgen"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var budgetRepoStub = NewStubBudgetRepo()
var transactionRepoStub = transaction.NewStubTransactionRepo()
var clock = &utils.MockClock{}

var transactionService transaction.TransactionService
var service BudgetService

func setup(t *testing.T) func() {
	clock.SetNow(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
	generator := idgen.NewGenerator(clock)
	transactionService = transaction.NewTransactionService(transactionRepoStub, generator, clock)
	service = NewBudgetService(budgetRepoStub, transactionService, generator, clock)
	return func() {
		t.Log("Teardown after test")
		budgetRepoStub.Cleanup()
		transactionRepoStub.Cleanup()
	}
}

func marchBudgetInput() CreateInput {
	return CreateInput{
		Name:           "March budget",
		TotalLimit:     1000,
		CategoryLimits: map[string]float64{"cat_food": 200},
		Period:         PeriodMonthly,
		StartDate:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func addExpense(t *testing.T, category string, amount float64, date time.Time) {
	t.Helper()
	_, err := transactionService.Create(ctx, transaction.CreateInput{
		Type:        transaction.TypeExpense,
		Amount:      amount,
		Description: category + " expense",
		Category:    category,
		Date:        date,
	})
	require.NoError(t, err)
}

func TestBudgetService_Create(t *testing.T) {
	t.Run("should create an active budget with id and timestamps", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, marchBudgetInput())

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.True(t, created.IsActive)
		assert.Equal(t, clock.Now(), created.CreatedAt)
		assert.Equal(t, clock.Now(), created.UpdatedAt)

		stored, err := service.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, created, stored[0])
	})

	t.Run("should default missing category limits to an empty map", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		input := marchBudgetInput()
		input.CategoryLimits = nil

		created, err := service.Create(ctx, input)

		require.NoError(t, err)
		assert.NotNil(t, created.CategoryLimits)
		assert.Empty(t, created.CategoryLimits)
	})

	t.Run("should reject an inverted date range", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		input := marchBudgetInput()
		input.StartDate, input.EndDate = input.EndDate, input.StartDate

		_, err := service.Create(ctx, input)

		var validationErr *common.ValidationError
		require.ErrorAs(t, err, &validationErr)
		stored, _ := service.GetAll(ctx)
		assert.Empty(t, stored)
	})

	t.Run("should reject a non-positive limit", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		input := marchBudgetInput()
		input.TotalLimit = 0

		_, err := service.Create(ctx, input)

		var validationErr *common.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "totalLimit", validationErr.Field)
	})
}

func TestBudgetService_Update(t *testing.T) {
	t.Run("should patch only the provided fields", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, marchBudgetInput())
		require.NoError(t, err)
		clock.SetNow(clock.Now().Add(time.Hour))

		newName := "Adjusted March budget"
		updated, err := service.Update(ctx, created.ID, UpdateInput{Name: &newName})

		require.NoError(t, err)
		assert.Equal(t, newName, updated.Name)
		assert.Equal(t, created.TotalLimit, updated.TotalLimit)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	})

	t.Run("should reject changing only one end of the window", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, marchBudgetInput())
		require.NoError(t, err)

		newStart := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
		_, err = service.Update(ctx, created.ID, UpdateInput{StartDate: &newStart})

		var validationErr *common.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("should move the window as a whole", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, marchBudgetInput())
		require.NoError(t, err)

		newStart := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
		newEnd := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
		updated, err := service.Update(ctx, created.ID, UpdateInput{StartDate: &newStart, EndDate: &newEnd})

		require.NoError(t, err)
		assert.Equal(t, newStart, updated.StartDate)
		assert.Equal(t, newEnd, updated.EndDate)
	})

	t.Run("should return not found for an unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		newName := "whatever"
		_, err := service.Update(ctx, "budget_missing", UpdateInput{Name: &newName})

		var notFoundErr *common.NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)
	})
}

func TestBudgetService_Delete(t *testing.T) {
	t.Run("should remove the budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, marchBudgetInput())
		require.NoError(t, err)

		deleted, err := service.Delete(ctx, created.ID)

		require.NoError(t, err)
		assert.True(t, deleted)
		stored, _ := service.GetAll(ctx)
		assert.Empty(t, stored)
	})

	t.Run("should be idempotent for unknown ids", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		deleted, err := service.Delete(ctx, "budget_missing")

		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestBudgetService_GetCurrent(t *testing.T) {
	t.Run("should return the first active budget containing now", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		past := marchBudgetInput()
		past.Name = "February budget"
		past.StartDate = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		past.EndDate = time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
		_, err := service.Create(ctx, past)
		require.NoError(t, err)
		created, err := service.Create(ctx, marchBudgetInput())
		require.NoError(t, err)

		current, err := service.GetCurrent(ctx)

		require.NoError(t, err)
		require.NotNil(t, current)
		assert.Equal(t, created.ID, current.ID)
	})

	t.Run("should skip inactive budgets", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, marchBudgetInput())
		require.NoError(t, err)
		inactive := false
		_, err = service.Update(ctx, created.ID, UpdateInput{IsActive: &inactive})
		require.NoError(t, err)

		current, err := service.GetCurrent(ctx)

		require.NoError(t, err)
		assert.Nil(t, current)
	})

	t.Run("should return nil when no window contains now", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		current, err := service.GetCurrent(ctx)

		require.NoError(t, err)
		assert.Nil(t, current)
	})
}

func TestBudgetService_GetUsage(t *testing.T) {
	t.Run("should compute totals and per-category usage", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, marchBudgetInput())
		require.NoError(t, err)

		addExpense(t, "cat_food", 150, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
		addExpense(t, "cat_food", 100, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))
		addExpense(t, "cat_transport", 100, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC))
		// outside the window, must not count
		addExpense(t, "cat_food", 999, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC))
		// income inside the window, must not count
		_, err = transactionService.Create(ctx, transaction.CreateInput{
			Type:        transaction.TypeIncome,
			Amount:      500,
			Description: "salary",
			Category:    "cat_salary",
			Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		usage, err := service.GetUsage(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, 350.0, usage.TotalSpent)
		assert.Equal(t, 1000.0, usage.TotalLimit)
		assert.Equal(t, 35.0, usage.PercentageUsed)
		assert.Equal(t, 650.0, usage.RemainingAmount)
		require.Contains(t, usage.CategoryUsage, "cat_food")
		assert.Equal(t, CategoryUsage{Spent: 250, Limit: 200, Percentage: 125}, usage.CategoryUsage["cat_food"])
	})

	t.Run("should report zero percentage for a zero sub-limit", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		input := marchBudgetInput()
		input.CategoryLimits = map[string]float64{"cat_transport": 0}
		created, err := service.Create(ctx, input)
		require.NoError(t, err)

		addExpense(t, "cat_transport", 50, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC))

		usage, err := service.GetUsage(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, CategoryUsage{Spent: 50, Limit: 0, Percentage: 0}, usage.CategoryUsage["cat_transport"])
	})

	t.Run("should return not found for an unknown budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.GetUsage(ctx, "budget_missing")

		var notFoundErr *common.NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)
	})
}

func TestBudgetService_IsExceeded(t *testing.T) {
	t.Run("should report an exceeded budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		input := marchBudgetInput()
		input.TotalLimit = 100
		created, err := service.Create(ctx, input)
		require.NoError(t, err)

		addExpense(t, "cat_food", 150, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

		exceeded, err := service.IsExceeded(ctx, created.ID)

		require.NoError(t, err)
		assert.True(t, exceeded)
	})

	t.Run("should not report a budget at exactly 100 percent", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		input := marchBudgetInput()
		input.TotalLimit = 100
		created, err := service.Create(ctx, input)
		require.NoError(t, err)

		addExpense(t, "cat_food", 100, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

		exceeded, err := service.IsExceeded(ctx, created.ID)

		require.NoError(t, err)
		assert.False(t, exceeded)
	})
}

func TestBudgetService_GetAlerts(t *testing.T) {
	t.Run("should alert only for budgets at or above the threshold", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// 85% usage
		hot := marchBudgetInput()
		hot.Name = "Hot budget"
		hot.TotalLimit = 100
		hotBudget, err := service.Create(ctx, hot)
		require.NoError(t, err)
		addExpense(t, "cat_food", 85, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

		// 60% usage over a disjoint window in April
		cool := marchBudgetInput()
		cool.Name = "Cool budget"
		cool.TotalLimit = 100
		cool.StartDate = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
		cool.EndDate = time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
		_, err = service.Create(ctx, cool)
		require.NoError(t, err)
		addExpense(t, "cat_food", 60, time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC))

		alerts, err := service.GetAlerts(ctx)

		require.NoError(t, err)
		require.Len(t, alerts, 1)
		assert.Equal(t, hotBudget.ID, alerts[0].Budget.ID)
		assert.Equal(t, 85.0, alerts[0].Usage)
	})

	t.Run("should sort alerts by usage descending", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		first := marchBudgetInput()
		first.Name = "March"
		first.TotalLimit = 100
		_, err := service.Create(ctx, first)
		require.NoError(t, err)
		addExpense(t, "cat_food", 85, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

		second := marchBudgetInput()
		second.Name = "April"
		second.TotalLimit = 100
		second.StartDate = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
		second.EndDate = time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
		_, err = service.Create(ctx, second)
		require.NoError(t, err)
		addExpense(t, "cat_food", 95, time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC))

		alerts, err := service.GetAlerts(ctx)

		require.NoError(t, err)
		require.Len(t, alerts, 2)
		assert.Equal(t, 95.0, alerts[0].Usage)
		assert.Equal(t, 85.0, alerts[1].Usage)
	})

	t.Run("should skip a budget whose usage cannot be computed", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		failingStart := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		service = NewBudgetService(
			budgetRepoStub,
			&flakyTransactionService{TransactionService: transactionService, failStart: failingStart},
			idgen.NewGenerator(clock),
			clock,
		)

		healthy := marchBudgetInput()
		healthy.TotalLimit = 100
		_, err := service.Create(ctx, healthy)
		require.NoError(t, err)
		addExpense(t, "cat_food", 90, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

		broken := marchBudgetInput()
		broken.Name = "Broken window"
		broken.StartDate = failingStart
		broken.EndDate = time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
		_, err = service.Create(ctx, broken)
		require.NoError(t, err)

		alerts, err := service.GetAlerts(ctx)

		require.NoError(t, err)
		require.Len(t, alerts, 1)
		assert.Equal(t, 90.0, alerts[0].Usage)
	})
}

func TestBudgetService_DeactivateExpiredBudgets(t *testing.T) {
	t.Run("should deactivate budgets past their end date", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		expired := marchBudgetInput()
		expired.Name = "January budget"
		expired.StartDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		expired.EndDate = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
		expiredBudget, err := service.Create(ctx, expired)
		require.NoError(t, err)
		_, err = service.Create(ctx, marchBudgetInput())
		require.NoError(t, err)

		count, err := service.DeactivateExpiredBudgets(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, count)

		stored, err := service.GetByID(ctx, expiredBudget.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsActive)
		assert.True(t, stored.UpdatedAt.After(expiredBudget.UpdatedAt) || stored.UpdatedAt.Equal(clock.Now()))
	})

	t.Run("should be idempotent when nothing new has expired", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		expired := marchBudgetInput()
		expired.StartDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		expired.EndDate = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
		_, err := service.Create(ctx, expired)
		require.NoError(t, err)

		first, err := service.DeactivateExpiredBudgets(ctx)
		require.NoError(t, err)
		second, err := service.DeactivateExpiredBudgets(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, first)
		assert.Equal(t, 0, second)
	})
}

// flakyTransactionService fails date-range queries for one specific window,
// simulating a budget whose usage cannot be computed.
type flakyTransactionService struct {
	transaction.TransactionService
	failStart time.Time
}

func (f *flakyTransactionService) GetByDateRange(ctx context.Context, start, end time.Time) ([]transaction.Transaction, error) {
	if start.Equal(f.failStart) {
		return nil, errors.New("window query failed")
	}
	return f.TransactionService.GetByDateRange(ctx, start, end)
}
