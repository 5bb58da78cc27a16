package transaction

import (
	"math"
	"strings"
	"time"

	"github.com/fintrack/fintrack/internal/common"
)

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

const maxDescriptionLength = 255

// Transaction is a single income or expense record. ID and CreatedAt are
// immutable after creation; UpdatedAt is owned by the service. Category is a
// weak reference into the category catalog and may point at a removed entry.
type Transaction struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateInput carries the caller-supplied fields of a new transaction.
type CreateInput struct {
	Type        Type      `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
}

// UpdateInput is a partial patch: nil fields are left untouched, non-nil
// fields are revalidated and applied.
type UpdateInput struct {
	Type        *Type      `json:"type"`
	Amount      *float64   `json:"amount"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Date        *time.Time `json:"date"`
}

// ValidateAmount requires a finite number strictly greater than zero.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return common.NewValidationError("amount", "must be a positive finite number")
	}
	return nil
}

// ValidateDescription requires a trimmed length between 1 and 255 characters.
func ValidateDescription(description string) error {
	trimmed := strings.TrimSpace(description)
	if len(trimmed) == 0 || len(trimmed) > maxDescriptionLength {
		return common.NewValidationError("description", "must be between 1 and 255 characters")
	}
	return nil
}

// ValidateCategory requires a non-empty category id after trimming.
func ValidateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return common.NewValidationError("category", "must not be empty")
	}
	return nil
}

func ValidateType(t Type) error {
	if t != TypeIncome && t != TypeExpense {
		return common.NewValidationError("type", "must be income or expense")
	}
	return nil
}

// IsWithinRange reports whether the transaction date falls inside the
// inclusive [start, end] window.
func (t Transaction) IsWithinRange(start, end time.Time) bool {
	return !t.Date.Before(start) && !t.Date.After(end)
}
