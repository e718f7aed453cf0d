// Package menu implements the day-by-day menu screen state: which day of the
// sample week is shown and which meal, if any, is open in the detail view.
package menu

import (
	"errors"
	"fmt"

	"menu-fit/internal/catalog"
)

// ErrDayOutOfRange is returned when a day index falls outside the week.
var ErrDayOutOfRange = errors.New("day index out of range")

// View is the state of the menu screen.
type View struct {
	week     []catalog.DayMenu
	day      int
	selected *catalog.Meal
}

// NewView returns a view positioned on Monday.
func NewView(week []catalog.DayMenu) *View {
	return &View{week: week}
}

// DayIndex returns the index of the displayed day.
func (v *View) DayIndex() int { return v.day }

// Days returns the number of days available.
func (v *View) Days() int { return len(v.week) }

// SelectDay shows day i. Out of range indexes leave the view unchanged.
func (v *View) SelectDay(i int) error {
	if i < 0 || i >= len(v.week) {
		return fmt.Errorf("%w: %d", ErrDayOutOfRange, i)
	}
	v.day = i
	return nil
}

// NextDay moves to the following day, wrapping from Sunday to Monday.
func (v *View) NextDay() {
	if len(v.week) == 0 {
		return
	}
	v.day = (v.day + 1) % len(v.week)
}

// PrevDay moves to the previous day, wrapping from Monday to Sunday.
func (v *View) PrevDay() {
	if len(v.week) == 0 {
		return
	}
	v.day = (v.day - 1 + len(v.week)) % len(v.week)
}

// Day returns the displayed day.
func (v *View) Day() catalog.DayMenu {
	return v.week[v.day]
}

// Totals returns the nutrition totals of the displayed day.
func (v *View) Totals() catalog.Nutrition {
	return v.Day().Totals()
}

// Open shows the detail of the meal in the given slot of the displayed day.
func (v *View) Open(slot catalog.Slot) (catalog.Meal, error) {
	m, ok := v.Day().Meal(slot)
	if !ok {
		return catalog.Meal{}, fmt.Errorf("unknown meal slot %q", slot)
	}
	v.selected = &m
	return m, nil
}

// Close hides the detail view.
func (v *View) Close() {
	v.selected = nil
}

// Selected returns the meal open in the detail view.
func (v *View) Selected() (catalog.Meal, bool) {
	if v.selected == nil {
		return catalog.Meal{}, false
	}
	return *v.selected, true
}
