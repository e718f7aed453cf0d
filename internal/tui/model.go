// Package tui is the terminal front-end. It renders the screen mounted by
// app.Controller and turns key presses into controller calls.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"menu-fit/internal/app"
	"menu-fit/internal/catalog"
	"menu-fit/internal/metrics"
	"menu-fit/internal/preferences"
	"menu-fit/internal/shopping"
	"menu-fit/internal/storage"
	"menu-fit/internal/tui/styles"
)

// Options configures a Model. Every field is optional.
type Options struct {
	Exports  *storage.ExportStore
	Recorder *metrics.Recorder
	Logger   *zap.Logger
	// GlamourStyle names the glamour style for recipe details, "dark" when
	// empty.
	GlamourStyle string
}

// Model is the bubbletea model of the whole application.
type Model struct {
	ctrl     *app.Controller
	keys     keyMap
	styles   styles.Styles
	help     help.Model
	bar      progress.Model
	input    textarea.Model
	renderer *glamour.TermRenderer

	exports   *storage.ExportStore
	recorder  *metrics.Recorder
	logger    *zap.Logger
	sessionID string

	// cursor is the highlighted row of the mounted screen; col is the
	// highlighted slot of the planner grid.
	cursor int
	col    int

	status   string
	width    int
	quitting bool
}

// New returns a Model on the landing screen.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sessionID := uuid.NewString()
	logger = logger.With(zap.String("session", sessionID))

	ctrl := app.NewController(catalog.Week())
	if opts.Recorder != nil {
		opts.Recorder.Attach(ctrl)
	}
	ctrl.Observe(app.ObserverFunc(func(from, to app.Screen, trigger app.Trigger) {
		logger.Info("screen changed",
			zap.String("from", string(from)),
			zap.String("to", string(to)),
			zap.String("trigger", string(trigger)))
	}))

	input := textarea.New()
	input.Placeholder = "Ej: pollo, arroz, espinacas..."
	input.ShowLineNumbers = false
	input.CharLimit = 500
	input.SetWidth(60)
	input.SetHeight(3)

	style := opts.GlamourStyle
	if style == "" {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(72),
	)
	if err != nil {
		logger.Warn("recipe renderer unavailable, showing plain markdown", zap.Error(err))
		renderer = nil
	}

	return Model{
		ctrl:      ctrl,
		keys:      defaultKeyMap(),
		styles:    styles.Default(),
		help:      help.New(),
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		input:     input,
		renderer:  renderer,
		exports:   opts.Exports,
		recorder:  opts.Recorder,
		logger:    logger,
		sessionID: sessionID,
	}
}

// Controller exposes the state machine driven by the model.
func (m Model) Controller() *app.Controller { return m.ctrl }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.bar.Width = min(max(msg.Width-10, 10), 60)
		m.input.SetWidth(min(max(msg.Width-10, 20), 80))
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		m.status = ""
		switch m.ctrl.Screen() {
		case app.ScreenLanding:
			return m.updateLanding(msg)
		case app.ScreenOnboarding:
			return m.updateOnboarding(msg)
		case app.ScreenMenu:
			return m.updateMenu(msg)
		case app.ScreenPlanner:
			return m.updatePlanner(msg)
		case app.ScreenShopping:
			return m.updateShopping(msg)
		}
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m Model) updateLanding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Enter):
		if err := m.ctrl.Start(); err != nil {
			m.logger.Error("failed to start onboarding", zap.Error(err))
		}
		m.cursor = 0
	}
	return m, nil
}

func (m Model) updateOnboarding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := m.ctrl.Wizard()
	if w.Step() == preferences.StepIngredients {
		return m.updateIngredients(msg)
	}

	rows := len(preferences.Goals())
	if w.Step() == preferences.StepDiet {
		rows = len(preferences.DietaryTags())
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, rows-1)
	case key.Matches(msg, m.keys.Toggle):
		if w.Step() == preferences.StepGoal {
			_ = w.SelectGoal(preferences.Goals()[m.cursor])
		} else {
			_, _ = w.ToggleDiet(preferences.DietaryTags()[m.cursor])
		}
	case key.Matches(msg, m.keys.Enter):
		// Without a goal the wizard stays put; the hint is already dimmed.
		if err := w.Next(); err != nil {
			return m, nil
		}
		m.cursor = 0
		if w.Step() == preferences.StepIngredients && !w.StartsFromScratch() {
			m.input.SetValue(w.IngredientsText())
			return m, m.input.Focus()
		}
	case key.Matches(msg, m.keys.Back):
		if err := w.Back(); err == nil {
			m.cursor = 0
		}
	}
	return m, nil
}

func (m Model) updateIngredients(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := m.ctrl.Wizard()

	switch {
	case key.Matches(msg, m.keys.Back):
		m.input.Blur()
		_ = w.Back()
		m.cursor = 0
		return m, nil
	case key.Matches(msg, m.keys.Scratch):
		on := !w.StartsFromScratch()
		_ = w.SetStartFromScratch(on)
		if on {
			m.input.Reset()
			m.input.Blur()
			return m, nil
		}
		m.input.SetValue(w.IngredientsText())
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Enter):
		return m.completeOnboarding()
	}

	if w.StartsFromScratch() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	_ = w.SetIngredients(m.input.Value())
	return m, cmd
}

func (m Model) completeOnboarding() (tea.Model, tea.Cmd) {
	prefs, err := m.ctrl.CompleteOnboarding()
	if err != nil {
		m.logger.Debug("onboarding not complete", zap.Error(err))
		return m, nil
	}
	m.input.Blur()
	m.cursor = 0
	m.logger.Info("onboarding completed",
		zap.String("goal", string(prefs.Goal())),
		zap.Strings("dietary", prefs.DietaryPreferences()),
		zap.Bool("from_scratch", prefs.StartsFromScratch()))
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.ctrl.Menu()
	if _, open := v.Selected(); open {
		switch {
		case key.Matches(msg, m.keys.Back, m.keys.Enter):
			v.Close()
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Left):
		v.PrevDay()
	case key.Matches(msg, m.keys.Right):
		v.NextDay()
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, catalog.SlotsPerDay-1)
	case key.Matches(msg, m.keys.Enter):
		if _, err := v.Open(catalog.Slots()[m.cursor]); err != nil {
			m.logger.Error("failed to open meal", zap.Error(err))
		}
	case key.Matches(msg, m.keys.Planner):
		m.navigate(m.ctrl.OpenPlanner)
	case key.Matches(msg, m.keys.Shopping):
		m.navigate(m.ctrl.OpenShopping)
	default:
		// Digits jump straight to a day.
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			_ = v.SelectDay(int(s[0] - '1'))
		}
	}
	return m, nil
}

func (m *Model) navigate(fire func() error) {
	if err := fire(); err != nil {
		m.logger.Error("navigation failed", zap.Error(err))
		return
	}
	m.cursor, m.col = 0, 0
}

func (m Model) updatePlanner(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if _, open := m.ctrl.ViewedMeal(); open {
		switch {
		case key.Matches(msg, m.keys.Back, m.keys.Enter):
			m.ctrl.CloseMeal()
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		return m, nil
	}

	p := m.ctrl.Planner()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, len(p.Week())-1)
	case key.Matches(msg, m.keys.Left):
		m.col = max(m.col-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.col = min(m.col+1, catalog.SlotsPerDay-1)
	case key.Matches(msg, m.keys.Toggle):
		if _, err := p.Toggle(m.cursor, catalog.Slots()[m.col]); err != nil {
			m.logger.Error("failed to toggle meal", zap.Error(err))
		}
	case key.Matches(msg, m.keys.Enter):
		if _, err := p.Select(m.cursor, catalog.Slots()[m.col]); err != nil {
			m.logger.Error("failed to open meal", zap.Error(err))
		}
	case key.Matches(msg, m.keys.Back):
		m.navigate(m.ctrl.BackToMenu)
	}
	return m, nil
}

func (m Model) updateShopping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := shoppingOrder(m.ctrl.Shopping())
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, len(items)-1)
	case key.Matches(msg, m.keys.Toggle, m.keys.Enter):
		if _, err := m.ctrl.Shopping().Toggle(items[m.cursor].ID); err != nil {
			m.logger.Error("failed to toggle item", zap.Error(err))
		}
	case key.Matches(msg, m.keys.Export):
		m.exportList()
	case key.Matches(msg, m.keys.Back):
		m.navigate(m.ctrl.BackToMenu)
	}
	return m, nil
}

// shoppingOrder lists items the way the screen shows them: grouped by
// category in first-seen order.
func shoppingOrder(l *shopping.List) []shopping.Item {
	var out []shopping.Item
	for _, cat := range l.Categories() {
		out = append(out, l.ItemsIn(cat)...)
	}
	return out
}

func (m *Model) exportList() {
	if m.exports == nil {
		m.status = "Exportación no disponible"
		return
	}
	data := []byte(m.ctrl.Shopping().Export())
	path, err := m.exports.Save(shopping.ExportFilename, data)
	if err != nil {
		m.logger.Error("failed to export shopping list", zap.Error(err))
		m.status = "No se pudo exportar la lista"
		return
	}
	m.recorder.ListExported(path)
	m.logger.Info("shopping list exported", zap.String("path", path))
	m.status = "Lista exportada a " + path
}

// Run starts the terminal program and blocks until the user quits.
func Run(opts Options, altScreen bool) error {
	var programOpts []tea.ProgramOption
	if altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	_, err := tea.NewProgram(New(opts), programOpts...).Run()
	return err
}
