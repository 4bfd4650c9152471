package domain

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxUserIDLength   = 255
	MaxGoalNameLength = 255
	MaxGoals          = 50
	MaxExpenseEntries = 100
)

// Goal is a savings target owned by a profile
type Goal struct {
	ID       string          `json:"id"`
	Name     string          `json:"name,omitempty"`
	Target   decimal.Decimal `json:"target"`
	Saved    decimal.Decimal `json:"saved"`
	Priority int             `json:"priority"`
}

// Progress returns saved/target. Target must be positive.
func (g Goal) Progress() decimal.Decimal {
	return g.Saved.Div(g.Target)
}

// IsCompleted reports whether the goal has reached its target
func (g Goal) IsCompleted() bool {
	return g.Saved.GreaterThanOrEqual(g.Target)
}

// UserProfile is the latest submitted financial profile of a user.
// It is replaced wholesale on each submission, never merged.
type UserProfile struct {
	UserID             string                     `json:"userId"`
	MonthlyIncome      decimal.Decimal            `json:"monthlyIncome"`
	MonthlySavings     decimal.Decimal            `json:"monthlySavings"`
	MonthlyInvestments decimal.Decimal            `json:"monthlyInvestments"`
	Goals              []Goal                     `json:"goals"`
	RecurringExpenses  map[string]decimal.Decimal `json:"recurringExpenses"`
}

// TotalExpenses sums all recurring expense values
func (p *UserProfile) TotalExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range p.RecurringExpenses {
		total = total.Add(amount)
	}
	return total
}

// Clone returns a deep copy so stored profiles never alias caller memory
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Goals != nil {
		clone.Goals = make([]Goal, len(p.Goals))
		copy(clone.Goals, p.Goals)
	}
	if p.RecurringExpenses != nil {
		clone.RecurringExpenses = make(map[string]decimal.Decimal, len(p.RecurringExpenses))
		for k, v := range p.RecurringExpenses {
			clone.RecurringExpenses[k] = v
		}
	}
	return &clone
}

// Validate checks the inputs the health computation depends on.
// requireUserID is false for ad-hoc score calculations that are never stored.
func (p *UserProfile) Validate(requireUserID bool) error {
	verr := &ValidationError{}

	userID := strings.TrimSpace(p.UserID)
	if requireUserID && userID == "" {
		verr.Add("userId", "User ID is required")
	}
	if len(userID) > MaxUserIDLength {
		verr.Add("userId", "User ID must be 255 characters or less")
	}

	if !p.MonthlyIncome.IsPositive() {
		verr.Add("monthlyIncome", "Monthly income must be positive")
	}
	verr.addAmount("monthlyIncome", p.MonthlyIncome)
	verr.addAmount("monthlySavings", p.MonthlySavings)
	verr.addAmount("monthlyInvestments", p.MonthlyInvestments)

	if len(p.Goals) > MaxGoals {
		verr.Add("goals", "At most 50 goals are allowed")
	}
	seen := make(map[string]bool, len(p.Goals))
	for i, goal := range p.Goals {
		field := "goals[" + strconv.Itoa(i) + "]"
		if goal.ID != "" {
			if seen[goal.ID] {
				verr.Add(field+".id", "Goal ID must be unique within the profile")
			}
			seen[goal.ID] = true
		}
		if len(goal.Name) > MaxGoalNameLength {
			verr.Add(field+".name", "Name must be 255 characters or less")
		}
		if !goal.Target.IsPositive() {
			verr.Add(field+".target", "Target must be positive")
		}
		verr.addAmount(field+".target", goal.Target)
		verr.addAmount(field+".saved", goal.Saved)
	}

	if len(p.RecurringExpenses) > MaxExpenseEntries {
		verr.Add("recurringExpenses", "At most 100 expense categories are allowed")
	}
	blank := false
	for category, amount := range p.RecurringExpenses {
		if strings.TrimSpace(category) == "" {
			blank = true
			continue
		}
		verr.addAmount("recurringExpenses."+category, amount)
	}
	if blank {
		verr.Add("recurringExpenses", "Expense category must not be blank")
	}

	return verr.OrNil()
}

// GoalStatus counts completed and in-progress goals
type GoalStatus struct {
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	Total      int `json:"total"`
}

// GoalStatusOf summarizes the goals of a profile. A nil profile yields zeros.
func GoalStatusOf(p *UserProfile) GoalStatus {
	var status GoalStatus
	if p == nil {
		return status
	}
	for _, goal := range p.Goals {
		if goal.Target.IsPositive() && goal.IsCompleted() {
			status.Completed++
		} else {
			status.InProgress++
		}
	}
	status.Total = len(p.Goals)
	return status
}

// ProfileRepository stores the latest profile per user.
// Put replaces any existing profile for the same user atomically.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*UserProfile, error)
	Put(ctx context.Context, profile *UserProfile) error
}
