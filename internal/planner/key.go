package planner

import (
	"fmt"
	"strconv"
	"strings"

	"menu-fit/internal/catalog"
)

// Key identifies one meal of the week: a day index and a slot.
type Key struct {
	Day  int
	Slot catalog.Slot
}

// String renders the key as "<day>-<slot>", e.g. "0-breakfast".
func (k Key) String() string {
	return fmt.Sprintf("%d-%s", k.Day, k.Slot)
}

// ParseKey reverses Key.String.
func ParseKey(s string) (Key, error) {
	dayStr, slotStr, ok := strings.Cut(s, "-")
	if !ok {
		return Key{}, fmt.Errorf("malformed completion key %q", s)
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return Key{}, fmt.Errorf("malformed completion key %q: %w", s, err)
	}
	slot, err := catalog.ParseSlot(slotStr)
	if err != nil {
		return Key{}, fmt.Errorf("malformed completion key %q: %w", s, err)
	}
	return Key{Day: day, Slot: slot}, nil
}

// slotOrder ranks slots for sorting.
func slotOrder(s catalog.Slot) int {
	for i, slot := range catalog.Slots() {
		if slot == s {
			return i
		}
	}
	return len(catalog.Slots())
}
