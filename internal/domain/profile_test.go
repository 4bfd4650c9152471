package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func validProfile() *UserProfile {
	return &UserProfile{
		UserID:        "user-1",
		MonthlyIncome: decimal.NewFromInt(5000),
		Goals: []Goal{
			{ID: "a", Target: decimal.NewFromInt(100), Saved: decimal.NewFromInt(20)},
		},
		RecurringExpenses: map[string]decimal.Decimal{"rent": decimal.NewFromInt(-1500)},
	}
}

func fieldsOf(err error) []string {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	return fields
}

func TestUserProfileValidate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(p *UserProfile)
		requireUserID bool
		wantFields    []string
	}{
		{"valid", func(p *UserProfile) {}, true, nil},
		{"negative savings allowed", func(p *UserProfile) { p.MonthlySavings = decimal.NewFromInt(-10) }, true, nil},
		{"ad-hoc without user", func(p *UserProfile) { p.UserID = "" }, false, nil},
		{"stored without user", func(p *UserProfile) { p.UserID = "  " }, true, []string{"userId"}},
		{"user too long", func(p *UserProfile) { p.UserID = strings.Repeat("u", MaxUserIDLength+1) }, true, []string{"userId"}},
		{"zero income", func(p *UserProfile) { p.MonthlyIncome = decimal.Zero }, true, []string{"monthlyIncome"}},
		{"zero target", func(p *UserProfile) { p.Goals[0].Target = decimal.Zero }, true, []string{"goals[0].target"}},
		{"duplicate goal id", func(p *UserProfile) { p.Goals = append(p.Goals, p.Goals[0]) }, true, []string{"goals[1].id"}},
		{"blank expense category", func(p *UserProfile) { p.RecurringExpenses[" "] = decimal.NewFromInt(1) }, true, []string{"recurringExpenses"}},
		{"multiple problems", func(p *UserProfile) {
			p.MonthlyIncome = decimal.NewFromInt(-1)
			p.Goals[0].Target = decimal.NewFromInt(-1)
		}, true, []string{"monthlyIncome", "goals[0].target"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(p)

			err := p.Validate(tt.requireUserID)
			if tt.wantFields == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Validate() = %v, want ErrValidation", err)
			}
			got := fieldsOf(err)
			if strings.Join(got, ",") != strings.Join(tt.wantFields, ",") {
				t.Errorf("fields = %v, want %v", got, tt.wantFields)
			}
		})
	}
}

func TestUserProfileClone(t *testing.T) {
	p := validProfile()
	clone := p.Clone()

	clone.Goals[0].Saved = decimal.NewFromInt(99)
	clone.RecurringExpenses["food"] = decimal.NewFromInt(1)

	if !p.Goals[0].Saved.Equal(decimal.NewFromInt(20)) {
		t.Errorf("original goal mutated through clone")
	}
	if _, ok := p.RecurringExpenses["food"]; ok {
		t.Errorf("original expenses mutated through clone")
	}

	var nilProfile *UserProfile
	if nilProfile.Clone() != nil {
		t.Errorf("Clone of nil should be nil")
	}
}

func TestTotalExpenses(t *testing.T) {
	p := &UserProfile{RecurringExpenses: map[string]decimal.Decimal{
		"rent":   decimal.NewFromInt(25000),
		"emi":    decimal.NewFromInt(10000),
		"refund": decimal.NewFromInt(-500),
	}}
	if got := p.TotalExpenses(); !got.Equal(decimal.NewFromInt(34500)) {
		t.Errorf("TotalExpenses() = %s, want 34500", got)
	}
	if got := (&UserProfile{}).TotalExpenses(); !got.IsZero() {
		t.Errorf("TotalExpenses() of empty profile = %s, want 0", got)
	}
}

func TestGoalStatusOf(t *testing.T) {
	p := &UserProfile{Goals: []Goal{
		{ID: "done", Target: decimal.NewFromInt(10), Saved: decimal.NewFromInt(10)},
		{ID: "over", Target: decimal.NewFromInt(10), Saved: decimal.NewFromInt(15)},
		{ID: "open", Target: decimal.NewFromInt(10), Saved: decimal.NewFromInt(3)},
	}}

	got := GoalStatusOf(p)
	want := GoalStatus{Completed: 2, InProgress: 1, Total: 3}
	if got != want {
		t.Errorf("GoalStatusOf() = %+v, want %+v", got, want)
	}
	if got := GoalStatusOf(nil); got != (GoalStatus{}) {
		t.Errorf("GoalStatusOf(nil) = %+v, want zeros", got)
	}
}

func TestAvatarStateForScore(t *testing.T) {
	tests := []struct {
		score int
		mood  string
	}{
		{0, "sad"},
		{40, "sad"},
		{41, "neutral"},
		{60, "neutral"},
		{61, "happy"},
		{100, "happy"},
	}

	for _, tt := range tests {
		if got := AvatarStateForScore(tt.score); got.Mood != tt.mood {
			t.Errorf("AvatarStateForScore(%d).Mood = %s, want %s", tt.score, got.Mood, tt.mood)
		}
	}
}

func TestComputationErrorIs(t *testing.T) {
	err := &ComputationError{Op: "savingRate", Reason: "monthly income is zero"}
	if !errors.Is(err, ErrComputation) {
		t.Errorf("ComputationError should match ErrComputation")
	}
	if errors.Is(err, ErrValidation) {
		t.Errorf("ComputationError should not match ErrValidation")
	}
}

func TestValidationErrorOrNil(t *testing.T) {
	verr := &ValidationError{}
	if verr.OrNil() != nil {
		t.Errorf("empty ValidationError should be nil")
	}
	verr.Add("x", "bad")
	if verr.OrNil() == nil {
		t.Errorf("non-empty ValidationError should not be nil")
	}
	if !strings.Contains(verr.Error(), "x: bad") {
		t.Errorf("Error() = %q, want field detail", verr.Error())
	}
}
