package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"menu-fit/internal/app"
	"menu-fit/internal/catalog"
	"menu-fit/internal/preferences"
	"menu-fit/internal/shopping"
)

// View implements tea.Model. Screens missing their prerequisites render
// nothing.
func (m Model) View() string {
	if m.quitting || !m.ctrl.Renderable() {
		return ""
	}

	var body string
	var bindings []key.Binding
	switch m.ctrl.Screen() {
	case app.ScreenLanding:
		body = m.viewLanding()
		bindings = []key.Binding{m.keys.Enter, m.keys.Quit}
	case app.ScreenOnboarding:
		body, bindings = m.viewOnboarding()
	case app.ScreenMenu:
		body, bindings = m.viewMenu()
	case app.ScreenPlanner:
		body, bindings = m.viewPlanner()
	case app.ScreenShopping:
		body, bindings = m.viewShopping()
	}

	parts := []string{body}
	if m.status != "" {
		parts = append(parts, m.styles.Status.Render(m.status))
	}
	parts = append(parts, "", m.help.View(screenHelp(bindings)))
	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) viewLanding() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("🥗 Menu Fit"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Subtitle.Render("Tu menú semanal saludable según tus objetivos"))
	sb.WriteString("\n\n")
	sb.WriteString("🎯 Elige tu objetivo y tus preferencias\n")
	sb.WriteString("📅 Recibe siete días de desayunos, almuerzos y cenas\n")
	sb.WriteString("🛒 Lleva tu lista de compras lista para exportar\n\n")
	sb.WriteString(m.styles.Selected.Render("Pulsa enter para comenzar"))
	return sb.String()
}

func (m Model) marker(active bool) string {
	if active {
		return m.styles.Selected.Render("›") + " "
	}
	return "  "
}

func (m Model) viewOnboarding() (string, []key.Binding) {
	w := m.ctrl.Wizard()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", m.styles.Header.Render(fmt.Sprintf("Paso %d de %d", w.Step(), preferences.StepCount)))
	sb.WriteString(m.bar.ViewAs(float64(w.Step()) / float64(preferences.StepCount)))
	sb.WriteString("\n\n")

	bindings := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Toggle, m.keys.Enter}
	switch w.Step() {
	case preferences.StepGoal:
		sb.WriteString(m.styles.Title.Render("¿Cuál es tu objetivo principal?"))
		sb.WriteString("\n")
		for i, g := range preferences.Goals() {
			radio := "( )"
			if w.Goal() == g {
				radio = "(•)"
			}
			fmt.Fprintf(&sb, "%s%s %s %s\n", m.marker(i == m.cursor), radio, g.Icon(), g.Label())
		}
	case preferences.StepDiet:
		sb.WriteString(m.styles.Title.Render("¿Sigues alguna preferencia alimentaria?"))
		sb.WriteString("\n")
		for i, tag := range preferences.DietaryTags() {
			box := "[ ]"
			if w.DietSelected(tag) {
				box = "[x]"
			}
			fmt.Fprintf(&sb, "%s%s %s\n", m.marker(i == m.cursor), box, tag)
		}
		bindings = append(bindings, m.keys.Back)
	case preferences.StepIngredients:
		sb.WriteString(m.styles.Title.Render("¿Qué ingredientes tienes en casa?"))
		sb.WriteString("\n")
		box := "[ ]"
		if w.StartsFromScratch() {
			box = "[x]"
			sb.WriteString(m.styles.Muted.Render("Empezarás de cero con el menú sugerido."))
		} else {
			sb.WriteString(m.input.View())
		}
		fmt.Fprintf(&sb, "\n\n%s Empezar de cero\n", box)
		bindings = []key.Binding{m.keys.Scratch, m.keys.Enter, m.keys.Back}
	}

	next := "enter: continuar"
	if w.Step() == preferences.StepIngredients {
		next = "enter: ver mi menú"
	}
	sb.WriteString("\n")
	if w.CanContinue() {
		sb.WriteString(m.styles.Selected.Render(next))
	} else {
		sb.WriteString(m.styles.Muted.Render(next + " (elige un objetivo)"))
	}
	return sb.String(), bindings
}

func (m Model) viewMenu() (string, []key.Binding) {
	v := m.ctrl.Menu()
	if meal, open := v.Selected(); open {
		return m.renderMeal(meal), []key.Binding{m.keys.Back, m.keys.Quit}
	}

	var sb strings.Builder
	if prefs, ok := m.ctrl.Preferences(); ok {
		g := prefs.Goal()
		sb.WriteString(m.styles.Title.Render(fmt.Sprintf("%s Tu menú: %s", g.Icon(), g.Label())))
		sb.WriteString("\n")
		if tags := prefs.DietaryPreferences(); len(tags) > 0 {
			sb.WriteString(m.styles.Muted.Render(strings.Join(tags, " · ")))
			sb.WriteString("\n")
		}
	}

	var tabs []string
	for i, d := range catalog.Days() {
		if i == v.DayIndex() {
			tabs = append(tabs, m.styles.Cursor.Render(" "+d+" "))
		} else {
			tabs = append(tabs, m.styles.Muted.Render(" "+d+" "))
		}
	}
	sb.WriteString(strings.Join(tabs, ""))
	sb.WriteString("\n\n")

	day := v.Day()
	for i, slot := range catalog.Slots() {
		meal, _ := day.Meal(slot)
		card := fmt.Sprintf("%s %s\n%s\n%s",
			slot.Icon(), m.styles.Header.Render(slot.Label()),
			meal.Name,
			m.styles.Muted.Render(fmt.Sprintf("%d kcal · %d min · %s", meal.Nutrition.Calories, meal.PrepMinutes, meal.IngredientPreview(3))))
		style := m.styles.Card
		if i == m.cursor {
			style = m.styles.ActiveCard
		}
		sb.WriteString(m.marker(i == m.cursor))
		sb.WriteString(style.Render(card))
		sb.WriteString("\n")
	}

	t := v.Totals()
	sb.WriteString("\n")
	sb.WriteString(m.styles.Header.Render("Total del día"))
	fmt.Fprintf(&sb, "\n%d kcal · %dg proteína · %dg carbohidratos · %dg grasas", t.Calories, t.ProteinG, t.CarbsG, t.FatG)

	return sb.String(), []key.Binding{m.keys.Left, m.keys.Right, m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Planner, m.keys.Shopping, m.keys.Quit}
}

// mealMarkdown is the recipe detail fed to glamour.
func mealMarkdown(meal catalog.Meal) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", meal.Name)
	fmt.Fprintf(&sb, "**⏱ %d min** · %d kcal\n\n", meal.PrepMinutes, meal.Nutrition.Calories)
	sb.WriteString("| Calorías | Proteína | Carbohidratos | Grasas |\n")
	sb.WriteString("|---|---|---|---|\n")
	fmt.Fprintf(&sb, "| %d | %dg | %dg | %dg |\n\n", meal.Nutrition.Calories, meal.Nutrition.ProteinG, meal.Nutrition.CarbsG, meal.Nutrition.FatG)
	sb.WriteString("## Ingredientes\n\n")
	for _, ing := range meal.Ingredients {
		fmt.Fprintf(&sb, "- %s\n", ing)
	}
	sb.WriteString("\n## Preparación\n\n")
	for i, step := range meal.Steps {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
	}
	fmt.Fprintf(&sb, "\n*Imagen: %s*\n", meal.ImageOrFallback())
	return sb.String()
}

func (m Model) renderMeal(meal catalog.Meal) string {
	md := mealMarkdown(meal)
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		m.logger.Warn("failed to render recipe", zap.Error(err))
		return md
	}
	return out
}

func (m Model) viewPlanner() (string, []key.Binding) {
	if meal, open := m.ctrl.ViewedMeal(); open {
		return m.renderMeal(meal), []key.Binding{m.keys.Back, m.keys.Quit}
	}

	p := m.ctrl.Planner()
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("📋 Planificador semanal"))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%-11s", ""))
	for _, slot := range catalog.Slots() {
		sb.WriteString(fmt.Sprintf(" %-10s", slot.Label()))
	}
	sb.WriteString("\n")

	for i, day := range p.Week() {
		sb.WriteString(fmt.Sprintf("%-11s", day.Day))
		for j, slot := range catalog.Slots() {
			cell := "[ ]"
			if p.IsCompleted(i, slot) {
				cell = "[✓]"
			}
			cell = fmt.Sprintf(" %-10s", cell)
			if i == m.cursor && j == m.col {
				cell = m.styles.Cursor.Render(cell)
			}
			sb.WriteString(cell)
		}
		sb.WriteString("\n")
	}

	sum := p.Summary()
	sb.WriteString("\n")
	sb.WriteString(m.bar.ViewAs(p.Percent() / 100))
	fmt.Fprintf(&sb, "\n%d%% completado · %d de %d comidas · %d pendientes", sum.Percent, sum.Done, sum.Total, sum.Pending)

	return sb.String(), []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Toggle, m.keys.Enter, m.keys.Back, m.keys.Quit}
}

func (m Model) viewShopping() (string, []key.Binding) {
	l := m.ctrl.Shopping()
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("🛒 Lista de compras"))
	sb.WriteString("\n")

	row := 0
	for _, cat := range l.Categories() {
		checked, total := l.CategoryCount(cat)
		sb.WriteString(m.styles.Header.Render(fmt.Sprintf("%s %s (%d/%d)", shopping.CategoryIcon(cat), cat, checked, total)))
		sb.WriteString("\n")
		for _, it := range l.ItemsIn(cat) {
			box := "[ ]"
			label := fmt.Sprintf("%s (%s)", it.Name, it.Quantity)
			if it.Checked {
				box = "[x]"
				label = m.styles.Done.Render(label)
			}
			fmt.Fprintf(&sb, "%s%s %s\n", m.marker(row == m.cursor), box, label)
			row++
		}
		sb.WriteString("\n")
	}

	sb.WriteString(m.bar.ViewAs(l.Progress()))
	sb.WriteString("\n")
	if l.Complete() {
		sb.WriteString(m.styles.Selected.Render(l.StatusMessage()))
	} else {
		sb.WriteString(l.StatusMessage())
	}

	return sb.String(), []key.Binding{m.keys.Up, m.keys.Down, m.keys.Toggle, m.keys.Export, m.keys.Back, m.keys.Quit}
}
