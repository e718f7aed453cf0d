// Package preferences captures the user's goal, dietary restrictions and
// available ingredients through a three step onboarding wizard.
package preferences

import (
	"errors"
	"fmt"
	"slices"
)

// Goal is the user's dietary objective.
type Goal string

const (
	GoalFatLoss    Goal = "fat_loss"
	GoalMuscleGain Goal = "muscle_gain"
	GoalBalanced   Goal = "balanced"
)

// StartFromScratch is the reserved ingredients value meaning the user has
// nothing at home and will buy everything.
const StartFromScratch = "EMPEZAR_DE_CERO"

var (
	ErrGoalRequired      = errors.New("a goal must be selected before continuing")
	ErrUnknownGoal       = errors.New("unknown goal")
	ErrUnknownDietaryTag = errors.New("unknown dietary preference")
	ErrWizardClosed      = errors.New("onboarding already completed")
	ErrNoPreviousStep    = errors.New("already at the first step")
	ErrNoNextStep        = errors.New("already at the last step")
	ErrNotLastStep       = errors.New("onboarding can only be completed from the last step")
)

// Goals returns the goal vocabulary in display order.
func Goals() []Goal {
	return []Goal{GoalFatLoss, GoalMuscleGain, GoalBalanced}
}

// ParseGoal validates a goal identifier.
func ParseGoal(s string) (Goal, error) {
	g := Goal(s)
	if !g.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownGoal, s)
	}
	return g, nil
}

// Valid reports whether g belongs to the goal vocabulary.
func (g Goal) Valid() bool {
	return slices.Contains(Goals(), g)
}

// Label returns the display name of the goal.
func (g Goal) Label() string {
	switch g {
	case GoalFatLoss:
		return "Pérdida de Grasa"
	case GoalMuscleGain:
		return "Ganancia Muscular"
	case GoalBalanced:
		return "Nutrición Equilibrada"
	}
	return ""
}

// Icon returns the emoji shown on the goal card.
func (g Goal) Icon() string {
	switch g {
	case GoalFatLoss:
		return "🔥"
	case GoalMuscleGain:
		return "💪"
	case GoalBalanced:
		return "⚖️"
	}
	return ""
}

var dietaryTags = []string{
	"Vegano",
	"Vegetariano",
	"Sin Lactosa",
	"Sin Gluten",
	"Keto",
	"Mediterránea",
	"Sin Restricciones",
}

// DietaryTags returns the fixed dietary preference vocabulary.
func DietaryTags() []string {
	return slices.Clone(dietaryTags)
}

// IsDietaryTag reports whether tag belongs to the vocabulary.
func IsDietaryTag(tag string) bool {
	return slices.Contains(dietaryTags, tag)
}

// UserPreferences is the finalized onboarding record. It is immutable: the
// accessors hand out copies.
type UserPreferences struct {
	goal        Goal
	dietary     []string
	ingredients string
}

// New builds a preferences record directly. The wizard is the normal way to
// obtain one; New exists for front-ends that collect the answers themselves.
func New(goal Goal, dietary []string, ingredients string) (UserPreferences, error) {
	if goal == "" {
		return UserPreferences{}, ErrGoalRequired
	}
	if !goal.Valid() {
		return UserPreferences{}, fmt.Errorf("%w: %q", ErrUnknownGoal, goal)
	}
	set := make(map[string]bool, len(dietary))
	for _, tag := range dietary {
		if !IsDietaryTag(tag) {
			return UserPreferences{}, fmt.Errorf("%w: %q", ErrUnknownDietaryTag, tag)
		}
		set[tag] = true
	}
	return UserPreferences{
		goal:        goal,
		dietary:     orderedTags(set),
		ingredients: ingredients,
	}, nil
}

// Goal returns the selected goal.
func (p UserPreferences) Goal() Goal { return p.goal }

// DietaryPreferences returns the selected tags in vocabulary order.
func (p UserPreferences) DietaryPreferences() []string { return slices.Clone(p.dietary) }

// Ingredients returns the ingredients answer verbatim, or StartFromScratch.
func (p UserPreferences) Ingredients() string { return p.ingredients }

// StartsFromScratch reports whether the user chose to buy everything.
func (p UserPreferences) StartsFromScratch() bool { return p.ingredients == StartFromScratch }

// orderedTags returns the members of set in vocabulary order.
func orderedTags(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for _, tag := range dietaryTags {
		if set[tag] {
			out = append(out, tag)
		}
	}
	return out
}
