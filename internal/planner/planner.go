// Package planner tracks which meals of the weekly plan the user has marked
// as done and computes the weekly progress.
package planner

import (
	"errors"
	"fmt"
	"slices"

	"menu-fit/internal/catalog"
)

// ErrUnknownMeal is returned for a key outside the week grid.
var ErrUnknownMeal = errors.New("no meal at that position")

// Tracker is the set of completed meals for one planner session. The zero
// entry means "not completed".
type Tracker struct {
	week      []catalog.DayMenu
	completed map[Key]struct{}

	// OnToggle, when set, is called after every successful toggle with the
	// key and its new state.
	OnToggle func(key Key, done bool)
}

// NewTracker creates an empty tracker for the given week.
func NewTracker(week []catalog.DayMenu) *Tracker {
	return &Tracker{
		week:      week,
		completed: make(map[Key]struct{}),
	}
}

// Week returns the menu the tracker covers.
func (t *Tracker) Week() []catalog.DayMenu { return t.week }

func (t *Tracker) validate(k Key) error {
	if k.Day < 0 || k.Day >= len(t.week) {
		return fmt.Errorf("%w: day %d", ErrUnknownMeal, k.Day)
	}
	if _, ok := t.week[k.Day].Meal(k.Slot); !ok {
		return fmt.Errorf("%w: slot %q", ErrUnknownMeal, k.Slot)
	}
	return nil
}

// Toggle marks the meal as done when it was pending and pending when it was
// done. It returns the new state.
func (t *Tracker) Toggle(day int, slot catalog.Slot) (bool, error) {
	k := Key{Day: day, Slot: slot}
	if err := t.validate(k); err != nil {
		return false, err
	}

	_, done := t.completed[k]
	if done {
		delete(t.completed, k)
	} else {
		t.completed[k] = struct{}{}
	}

	if t.OnToggle != nil {
		t.OnToggle(k, !done)
	}
	return !done, nil
}

// IsCompleted reports whether the meal is marked as done.
func (t *Tracker) IsCompleted(day int, slot catalog.Slot) bool {
	_, ok := t.completed[Key{Day: day, Slot: slot}]
	return ok
}

// Completed returns the completed keys ordered by day then slot.
func (t *Tracker) Completed() []Key {
	keys := make([]Key, 0, len(t.completed))
	for k := range t.completed {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		if a.Day != b.Day {
			return a.Day - b.Day
		}
		return slotOrder(a.Slot) - slotOrder(b.Slot)
	})
	return keys
}

// Count returns the number of completed meals.
func (t *Tracker) Count() int { return len(t.completed) }

// Total returns the number of meals in the week.
func (t *Tracker) Total() int { return len(t.week) * catalog.SlotsPerDay }

// Pending returns the number of meals not yet done.
func (t *Tracker) Pending() int { return t.Total() - t.Count() }

// Percent returns the share of completed meals in [0, 100].
func (t *Tracker) Percent() float64 {
	total := t.Total()
	if total == 0 {
		return 0
	}
	return float64(t.Count()) / float64(total) * 100
}

// Summary is the weekly recap shown under the planner grid.
type Summary struct {
	Percent int
	Total   int
	Done    int
	Pending int
}

// Summary returns the weekly recap with the percentage rounded for display.
func (t *Tracker) Summary() Summary {
	return Summary{
		Percent: int(t.Percent() + 0.5),
		Total:   t.Total(),
		Done:    t.Count(),
		Pending: t.Pending(),
	}
}

// MealViewer shows a meal picked from the planner grid. The planner does not
// own a detail view; the surrounding application does.
type MealViewer interface {
	ViewMeal(m catalog.Meal)
}

// View forwards grid selections to a MealViewer.
type View struct {
	*Tracker
	viewer MealViewer
}

// NewView wraps a tracker and the collaborator that displays meals.
func NewView(t *Tracker, viewer MealViewer) *View {
	return &View{Tracker: t, viewer: viewer}
}

// Select forwards the full meal at the given position to the viewer.
func (v *View) Select(day int, slot catalog.Slot) (catalog.Meal, error) {
	k := Key{Day: day, Slot: slot}
	if err := v.validate(k); err != nil {
		return catalog.Meal{}, err
	}
	m, _ := v.week[day].Meal(slot)
	if v.viewer != nil {
		v.viewer.ViewMeal(m)
	}
	return m, nil
}
