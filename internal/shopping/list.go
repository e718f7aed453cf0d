// Package shopping implements the shopping checklist: per item checked
// state, per category and global counts, and the plain text export.
package shopping

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnknownItem is returned when toggling an id that is not on the list.
var ErrUnknownItem = errors.New("unknown shopping item")

// CompleteMessage is shown once every item is checked.
const CompleteMessage = "¡Lista completa! 🎉"

// List is a shopping checklist. Counts are always derived from the items,
// nothing is cached.
type List struct {
	items []Item
}

// NewList copies items into a new checklist.
func NewList(items []Item) *List {
	return &List{items: append([]Item(nil), items...)}
}

// NewSampleList returns a checklist with the sample items, all unchecked.
func NewSampleList() *List {
	return NewList(SampleItems())
}

// Items returns a copy of the items in list order.
func (l *List) Items() []Item {
	return append([]Item(nil), l.items...)
}

// Toggle flips the checked flag of the item and returns its new value.
func (l *List) Toggle(id string) (bool, error) {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items[i].Checked = !l.items[i].Checked
			return l.items[i].Checked, nil
		}
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownItem, id)
}

// Item returns the item with the given id.
func (l *List) Item(id string) (Item, bool) {
	for _, it := range l.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Categories returns the distinct categories in first-seen order.
func (l *List) Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for _, it := range l.items {
		if !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	return out
}

// ItemsIn returns the items of one category in list order.
func (l *List) ItemsIn(category string) []Item {
	var out []Item
	for _, it := range l.items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// CategoryCount returns how many items of the category are checked and how
// many there are.
func (l *List) CategoryCount(category string) (checked, total int) {
	for _, it := range l.ItemsIn(category) {
		total++
		if it.Checked {
			checked++
		}
	}
	return checked, total
}

// CheckedCount returns the number of checked items.
func (l *List) CheckedCount() int {
	n := 0
	for _, it := range l.items {
		if it.Checked {
			n++
		}
	}
	return n
}

// Total returns the number of items.
func (l *List) Total() int { return len(l.items) }

// Remaining returns the number of unchecked items.
func (l *List) Remaining() int { return l.Total() - l.CheckedCount() }

// Complete reports whether every item is checked.
func (l *List) Complete() bool { return l.CheckedCount() == l.Total() }

// Progress returns the checked share in [0, 1].
func (l *List) Progress() float64 {
	if l.Total() == 0 {
		return 0
	}
	return float64(l.CheckedCount()) / float64(l.Total())
}

// StatusMessage returns the line shown under the progress bar.
func (l *List) StatusMessage() string {
	if l.Complete() {
		return CompleteMessage
	}
	return fmt.Sprintf("%d productos por marcar", l.Remaining())
}

// Export renders the list grouped by category:
//
//	🥩 Proteínas:
//	- Pechuga de pollo (1 kg)
//
// Categories are separated by a blank line. Checked state is not exported.
func (l *List) Export() string {
	blocks := make([]string, 0, len(l.Categories()))
	for _, cat := range l.Categories() {
		var b strings.Builder
		fmt.Fprintf(&b, "%s %s:", CategoryIcon(cat), cat)
		for _, it := range l.ItemsIn(cat) {
			fmt.Fprintf(&b, "\n- %s (%s)", it.Name, it.Quantity)
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

// WriteExport writes the Export document to w.
func (l *List) WriteExport(w io.Writer) error {
	if _, err := io.WriteString(w, l.Export()); err != nil {
		return fmt.Errorf("failed to write shopping list: %w", err)
	}
	return nil
}
