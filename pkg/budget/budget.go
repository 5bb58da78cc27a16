package budget

import (
	"math"
	"strings"
	"time"

	"github.com/fintrack/fintrack/internal/common"
)

// Period describes the intended cadence of a budget. It is descriptive only
// and does not constrain the start and end dates.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

const maxNameLength = 100

// Budget is a spending ceiling over an inclusive [StartDate, EndDate] window.
// CategoryLimits holds optional per-category sub-limits; they are not required
// to sum to TotalLimit.
type Budget struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	TotalLimit     float64            `json:"totalLimit"`
	CategoryLimits map[string]float64 `json:"categoryLimits"`
	Period         Period             `json:"period"`
	StartDate      time.Time          `json:"startDate"`
	EndDate        time.Time          `json:"endDate"`
	IsActive       bool               `json:"isActive"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

type CreateInput struct {
	Name           string             `json:"name"`
	TotalLimit     float64            `json:"totalLimit"`
	CategoryLimits map[string]float64 `json:"categoryLimits"`
	Period         Period             `json:"period"`
	StartDate      time.Time          `json:"startDate"`
	EndDate        time.Time          `json:"endDate"`
}

// UpdateInput is a partial patch. StartDate and EndDate may only be changed
// together, so that the date-range invariant can be rechecked as a whole.
type UpdateInput struct {
	Name           *string            `json:"name"`
	TotalLimit     *float64           `json:"totalLimit"`
	CategoryLimits map[string]float64 `json:"categoryLimits"`
	Period         *Period            `json:"period"`
	StartDate      *time.Time         `json:"startDate"`
	EndDate        *time.Time         `json:"endDate"`
	IsActive       *bool              `json:"isActive"`
}

// Usage is the computed spending of a budget's window against its limits.
// RemainingAmount may be negative when the budget is exceeded.
type Usage struct {
	TotalSpent      float64                  `json:"totalSpent"`
	TotalLimit      float64                  `json:"totalLimit"`
	PercentageUsed  float64                  `json:"percentageUsed"`
	RemainingAmount float64                  `json:"remainingAmount"`
	CategoryUsage   map[string]CategoryUsage `json:"categoryUsage"`
}

type CategoryUsage struct {
	Spent      float64 `json:"spent"`
	Limit      float64 `json:"limit"`
	Percentage float64 `json:"percentage"`
}

// Alert pairs a budget with its current usage percentage.
type Alert struct {
	Budget Budget  `json:"budget"`
	Usage  float64 `json:"usage"`
}

// ValidateName requires a trimmed length between 1 and 100 characters.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) == 0 || len(trimmed) > maxNameLength {
		return common.NewValidationError("name", "must be between 1 and 100 characters")
	}
	return nil
}

// ValidateLimit requires a finite number strictly greater than zero.
func ValidateLimit(limit float64) error {
	if math.IsNaN(limit) || math.IsInf(limit, 0) || limit <= 0 {
		return common.NewValidationError("totalLimit", "must be a positive finite number")
	}
	return nil
}

// ValidateDateRange requires the start date to be strictly before the end date.
func ValidateDateRange(startDate, endDate time.Time) error {
	if !startDate.Before(endDate) {
		return common.NewValidationError("startDate", "must be before endDate")
	}
	return nil
}

func ValidatePeriod(period Period) error {
	if period != PeriodWeekly && period != PeriodMonthly && period != PeriodYearly {
		return common.NewValidationError("period", "must be weekly, monthly or yearly")
	}
	return nil
}

// IsWithinPeriod reports whether date falls inside the budget's inclusive window.
func (b Budget) IsWithinPeriod(date time.Time) bool {
	return !date.Before(b.StartDate) && !date.After(b.EndDate)
}
