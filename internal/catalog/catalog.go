// Package catalog holds the fixed sample week of meals shown by the menu,
// planner and bot screens. The data never changes at runtime: every accessor
// returns copies so callers cannot mutate the shared fixture.
package catalog

import (
	"fmt"
	"strings"
)

const (
	// DaysInWeek is the number of DayMenu entries in the week.
	DaysInWeek = 7
	// SlotsPerDay is the number of meal slots in a day.
	SlotsPerDay = 3
)

// Slot is one of the three daily meal positions.
type Slot string

const (
	Breakfast Slot = "breakfast"
	Lunch     Slot = "lunch"
	Dinner    Slot = "dinner"
)

// Slots returns the meal slots in display order.
func Slots() []Slot {
	return []Slot{Breakfast, Lunch, Dinner}
}

// ParseSlot converts the wire form of a slot back to a Slot.
func ParseSlot(s string) (Slot, error) {
	switch Slot(s) {
	case Breakfast, Lunch, Dinner:
		return Slot(s), nil
	}
	return "", fmt.Errorf("unknown meal slot %q", s)
}

// Label returns the display name of the slot.
func (s Slot) Label() string {
	switch s {
	case Breakfast:
		return "Desayuno"
	case Lunch:
		return "Almuerzo"
	case Dinner:
		return "Cena"
	default:
		return "Comida"
	}
}

// Icon returns the emoji used next to the slot label.
func (s Slot) Icon() string {
	switch s {
	case Breakfast:
		return "🌅"
	case Lunch:
		return "☀️"
	case Dinner:
		return "🌙"
	default:
		return "🍽️"
	}
}

// ImageRef names a meal picture asset. It replaces guessing the picture from
// the meal name.
type ImageRef string

const (
	ImageOatsFruit    ImageRef = "meals/avena-frutas.jpg"
	ImageChickenSalad ImageRef = "meals/ensalada-pollo-quinoa.jpg"
	ImageSalmonVeg    ImageRef = "meals/salmon-vegetales.jpg"
	ImageFallback     ImageRef = "hero-food.jpg"
)

// Nutrition carries the macro breakdown of a meal or a day.
type Nutrition struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein"`
	CarbsG   int `json:"carbs"`
	FatG     int `json:"fat"`
}

// Add returns the element-wise sum of n and o.
func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		ProteinG: n.ProteinG + o.ProteinG,
		CarbsG:   n.CarbsG + o.CarbsG,
		FatG:     n.FatG + o.FatG,
	}
}

// Meal is a single recipe in the sample week.
type Meal struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	Nutrition   Nutrition `json:"nutrition"`
	PrepMinutes int       `json:"prep_time"`
	Image       ImageRef  `json:"image,omitempty"`
}

// ImageOrFallback returns the meal picture, or the generic one when the
// meal has none.
func (m Meal) ImageOrFallback() ImageRef {
	if m.Image == "" {
		return ImageFallback
	}
	return m.Image
}

// IngredientPreview returns the first n ingredients joined by commas,
// followed by "..." when the list was cut.
func (m Meal) IngredientPreview(n int) string {
	if n <= 0 || len(m.Ingredients) == 0 {
		return ""
	}
	if len(m.Ingredients) <= n {
		return strings.Join(m.Ingredients, ", ")
	}
	return strings.Join(m.Ingredients[:n], ", ") + "..."
}

func (m Meal) clone() Meal {
	m.Ingredients = append([]string(nil), m.Ingredients...)
	m.Steps = append([]string(nil), m.Steps...)
	return m
}

// DayMenu assigns one meal to every slot of a day.
type DayMenu struct {
	Day       string `json:"day"`
	Breakfast Meal   `json:"breakfast"`
	Lunch     Meal   `json:"lunch"`
	Dinner    Meal   `json:"dinner"`
}

// Meal returns the meal served in the given slot.
func (d DayMenu) Meal(slot Slot) (Meal, bool) {
	switch slot {
	case Breakfast:
		return d.Breakfast, true
	case Lunch:
		return d.Lunch, true
	case Dinner:
		return d.Dinner, true
	}
	return Meal{}, false
}

// Meals returns the day's meals in slot order.
func (d DayMenu) Meals() []Meal {
	return []Meal{d.Breakfast, d.Lunch, d.Dinner}
}

// Totals sums the nutrition of the three meals of the day.
func (d DayMenu) Totals() Nutrition {
	var total Nutrition
	for _, m := range d.Meals() {
		total = total.Add(m.Nutrition)
	}
	return total
}

func (d DayMenu) clone() DayMenu {
	d.Breakfast = d.Breakfast.clone()
	d.Lunch = d.Lunch.clone()
	d.Dinner = d.Dinner.clone()
	return d
}

// LegacyDailyTotals is the constant the first version of the menu screen
// printed for every day regardless of its meals. It only matches Monday.
// Screens use DayMenu.Totals instead.
var LegacyDailyTotals = Nutrition{Calories: 1320, ProteinG: 105, CarbsG: 95, FatG: 50}

// Week returns a copy of the Monday to Sunday sample menu.
func Week() []DayMenu {
	out := make([]DayMenu, len(sampleWeek))
	for i, d := range sampleWeek {
		out[i] = d.clone()
	}
	return out
}

// Day returns a copy of the menu for the given day index.
func Day(index int) (DayMenu, error) {
	if index < 0 || index >= len(sampleWeek) {
		return DayMenu{}, fmt.Errorf("day index %d out of range [0,%d]", index, len(sampleWeek)-1)
	}
	return sampleWeek[index].clone(), nil
}

// Days returns the day labels in week order.
func Days() []string {
	out := make([]string, len(sampleWeek))
	for i, d := range sampleWeek {
		out[i] = d.Day
	}
	return out
}

// Lookup finds a meal by its identifier.
func Lookup(id string) (Meal, bool) {
	for _, d := range sampleWeek {
		for _, m := range d.Meals() {
			if m.ID == id {
				return m.clone(), true
			}
		}
	}
	return Meal{}, false
}
