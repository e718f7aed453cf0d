package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"menu-fit/internal/app"
	"menu-fit/internal/catalog"
	"menu-fit/internal/planner"
	"menu-fit/internal/preferences"
	"menu-fit/internal/shopping"
)

// Callback actions. Data is "action" or "action|arg|arg", well under the
// 64 byte limit Telegram puts on callback data.
const (
	actStart    = "start"
	actGoal     = "goal"
	actDiet     = "diet"
	actScratch  = "scratch"
	actNext     = "next"
	actBack     = "back"
	actDone     = "done"
	actDay      = "day"
	actMeal     = "meal"
	actClose    = "close"
	actPlanner  = "planner"
	actShopping = "shopping"
	actMenu     = "menu"
	actPlan     = "plan"
	actView     = "view"
	actMode     = "mode"
	actItem     = "item"
	actExport   = "export"
)

func data(parts ...string) string { return strings.Join(parts, "|") }

func button(text string, parts ...string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(text, data(parts...))
}

func check(on bool) string {
	if on {
		return "✅"
	}
	return "⬜"
}

func shortDay(day string) string {
	r := []rune(day)
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r)
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

// render builds the message text and keyboard for the session's screen.
func render(s *Session) (string, tgbotapi.InlineKeyboardMarkup) {
	c := s.Controller
	if !c.Renderable() {
		return "Completa tu perfil para ver tu menú. Envía /start.", tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(button("🔄 Empezar", actStart)),
		)
	}

	switch c.Screen() {
	case app.ScreenOnboarding:
		return renderWizard(c.Wizard())
	case app.ScreenMenu:
		return renderMenu(c)
	case app.ScreenPlanner:
		if m, ok := c.ViewedMeal(); ok {
			return renderMeal(m)
		}
		return renderPlanner(c.Planner(), s.ViewMode)
	case app.ScreenShopping:
		return renderShopping(c.Shopping())
	default:
		return renderLanding()
	}
}

func renderLanding() (string, tgbotapi.InlineKeyboardMarkup) {
	text := "🥗 *Menu Fit*\n\nTu menú semanal saludable según tus objetivos. " +
		"Responde tres preguntas y recibe siete días de comidas con su lista de compras."
	return text, tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(button("🚀 Comenzar", actStart)),
	)
}

func renderWizard(w *preferences.Wizard) (string, tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder
	var rows [][]tgbotapi.InlineKeyboardButton
	fmt.Fprintf(&sb, "*Paso %d de %d*\n\n", w.Step(), preferences.StepCount)

	switch w.Step() {
	case preferences.StepGoal:
		sb.WriteString("¿Cuál es tu objetivo principal?")
		for _, g := range preferences.Goals() {
			label := fmt.Sprintf("%s %s %s", check(w.Goal() == g), g.Icon(), g.Label())
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(button(label, actGoal, string(g))))
		}
	case preferences.StepDiet:
		sb.WriteString("¿Sigues alguna preferencia alimentaria? Marca todas las que apliquen.")
		tags := preferences.DietaryTags()
		for i := 0; i < len(tags); i += 2 {
			row := tgbotapi.NewInlineKeyboardRow(button(check(w.DietSelected(tags[i]))+" "+tags[i], actDiet, tags[i]))
			if i+1 < len(tags) {
				row = append(row, button(check(w.DietSelected(tags[i+1]))+" "+tags[i+1], actDiet, tags[i+1]))
			}
			rows = append(rows, row)
		}
	case preferences.StepIngredients:
		sb.WriteString("¿Qué ingredientes tienes en casa? Escríbelos en un mensaje o empieza de cero.")
		if w.StartsFromScratch() {
			sb.WriteString("\n\n_Empezarás de cero._")
		} else if text := w.IngredientsText(); text != "" {
			fmt.Fprintf(&sb, "\n\n*Ingredientes:* %s", escape(text))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			button(check(w.StartsFromScratch())+" Empezar de cero", actScratch),
		))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if w.Step() > preferences.StepGoal {
		nav = append(nav, button("⬅️ Atrás", actBack))
	}
	switch {
	case w.Step() == preferences.StepIngredients:
		nav = append(nav, button("✨ Ver mi menú", actDone))
	case w.CanContinue():
		nav = append(nav, button("Siguiente ➡️", actNext))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	return sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func renderMenu(c *app.Controller) (string, tgbotapi.InlineKeyboardMarkup) {
	v := c.Menu()
	if m, ok := v.Selected(); ok {
		return renderMeal(m)
	}

	var sb strings.Builder
	if prefs, ok := c.Preferences(); ok {
		g := prefs.Goal()
		fmt.Fprintf(&sb, "%s *Tu menú: %s*\n\n", g.Icon(), g.Label())
	}

	day := v.Day()
	fmt.Fprintf(&sb, "📅 *%s*\n", day.Day)
	for _, slot := range catalog.Slots() {
		m, _ := day.Meal(slot)
		fmt.Fprintf(&sb, "%s %s: %s (%d kcal, %d min)\n", slot.Icon(), slot.Label(), m.Name, m.Nutrition.Calories, m.PrepMinutes)
	}
	t := v.Totals()
	fmt.Fprintf(&sb, "\n*Total del día:* %d kcal · %dg proteína · %dg carbos · %dg grasas",
		t.Calories, t.ProteinG, t.CarbsG, t.FatG)

	var days []tgbotapi.InlineKeyboardButton
	for i, d := range catalog.Days() {
		label := shortDay(d)
		if i == v.DayIndex() {
			label = "•" + label
		}
		days = append(days, button(label, actDay, strconv.Itoa(i)))
	}

	var meals []tgbotapi.InlineKeyboardButton
	for _, slot := range catalog.Slots() {
		meals = append(meals, button(slot.Icon()+" "+slot.Label(), actMeal, string(slot)))
	}

	return sb.String(), tgbotapi.NewInlineKeyboardMarkup(
		days[:4],
		days[4:],
		meals,
		tgbotapi.NewInlineKeyboardRow(
			button("📋 Planificador", actPlanner),
			button("🛒 Lista de compras", actShopping),
		),
	)
}

func renderMeal(m catalog.Meal) (string, tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🍽️ *%s*\n", m.Name)
	fmt.Fprintf(&sb, "⏱ %d min · %d kcal · P %dg · C %dg · G %dg\n\n",
		m.PrepMinutes, m.Nutrition.Calories, m.Nutrition.ProteinG, m.Nutrition.CarbsG, m.Nutrition.FatG)
	sb.WriteString("*Ingredientes*\n")
	for _, ing := range m.Ingredients {
		fmt.Fprintf(&sb, "• %s\n", ing)
	}
	sb.WriteString("\n*Preparación*\n")
	for i, step := range m.Steps {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
	}
	return strings.TrimRight(sb.String(), "\n"), tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(button("⬅️ Cerrar", actClose)),
	)
}

func renderPlanner(p *planner.View, viewMode bool) (string, tgbotapi.InlineKeyboardMarkup) {
	sum := p.Summary()
	var sb strings.Builder
	sb.WriteString("📋 *Planificador semanal*\n\n")
	if viewMode {
		sb.WriteString("Toca una comida para ver la receta.\n\n")
	} else {
		sb.WriteString("Toca una comida para marcarla como hecha.\n\n")
	}
	fmt.Fprintf(&sb, "*Progreso:* %d%% · %d de %d comidas · %d pendientes", sum.Percent, sum.Done, sum.Total, sum.Pending)

	action := actPlan
	if viewMode {
		action = actView
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, day := range p.Week() {
		var row []tgbotapi.InlineKeyboardButton
		for _, slot := range catalog.Slots() {
			label := fmt.Sprintf("%s %s %s", check(p.IsCompleted(i, slot)), shortDay(day.Day), slot.Icon())
			row = append(row, button(label, action, strconv.Itoa(i), string(slot)))
		}
		rows = append(rows, row)
	}

	mode := "👁 Ver recetas"
	if viewMode {
		mode = "✏️ Marcar comidas"
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(button(mode, actMode), button("⬅️ Menú", actMenu)))
	return sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func renderShopping(l *shopping.List) (string, tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("🛒 *Lista de compras*\n")
	for _, cat := range l.Categories() {
		checked, total := l.CategoryCount(cat)
		fmt.Fprintf(&sb, "\n%s *%s* (%d/%d)\n", shopping.CategoryIcon(cat), cat, checked, total)
		for _, it := range l.ItemsIn(cat) {
			fmt.Fprintf(&sb, "%s %s (%s)\n", check(it.Checked), it.Name, it.Quantity)
		}
	}
	fmt.Fprintf(&sb, "\n%s", l.StatusMessage())

	var rows [][]tgbotapi.InlineKeyboardButton
	items := l.Items()
	for i := 0; i < len(items); i += 2 {
		row := tgbotapi.NewInlineKeyboardRow(button(check(items[i].Checked)+" "+items[i].Name, actItem, items[i].ID))
		if i+1 < len(items) {
			row = append(row, button(check(items[i+1].Checked)+" "+items[i+1].Name, actItem, items[i+1].ID))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("📄 Exportar", actExport), button("⬅️ Menú", actMenu)))
	return sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...)
}
