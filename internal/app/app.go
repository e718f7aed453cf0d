// Package app sequences the screens of the meal planning wizard. The
// Controller owns the current screen, the captured preferences and the
// state of the mounted screen; front-ends only render it and forward user
// actions.
package app

import (
	"errors"
	"fmt"

	"menu-fit/internal/catalog"
	"menu-fit/internal/menu"
	"menu-fit/internal/planner"
	"menu-fit/internal/preferences"
	"menu-fit/internal/shopping"
)

// Screen identifies which screen is mounted.
type Screen string

const (
	ScreenLanding    Screen = "landing"
	ScreenOnboarding Screen = "onboarding"
	ScreenMenu       Screen = "menu"
	ScreenPlanner    Screen = "planner"
	ScreenShopping   Screen = "shopping"
)

// Trigger names a user action that may change the screen.
type Trigger string

const (
	TriggerStart        Trigger = "start"
	TriggerComplete     Trigger = "complete_onboarding"
	TriggerOpenShopping Trigger = "open_shopping"
	TriggerOpenPlanner  Trigger = "open_planner"
	TriggerBack         Trigger = "back_to_menu"
)

// ErrInvalidTransition is returned when a trigger is not allowed from the
// current screen. The controller state is left unchanged.
var ErrInvalidTransition = errors.New("invalid screen transition")

type edge struct {
	from    Screen
	trigger Trigger
}

var transitions = map[edge]Screen{
	{ScreenLanding, TriggerStart}:       ScreenOnboarding,
	{ScreenOnboarding, TriggerComplete}: ScreenMenu,
	{ScreenMenu, TriggerOpenShopping}:   ScreenShopping,
	{ScreenMenu, TriggerOpenPlanner}:    ScreenPlanner,
	{ScreenShopping, TriggerBack}:       ScreenMenu,
	{ScreenPlanner, TriggerBack}:        ScreenMenu,
}

// Observer is notified after every successful transition.
type Observer interface {
	ScreenChanged(from, to Screen, trigger Trigger)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(from, to Screen, trigger Trigger)

// ScreenChanged calls f.
func (f ObserverFunc) ScreenChanged(from, to Screen, trigger Trigger) { f(from, to, trigger) }

// Controller is the top level state machine. Exactly one screen is mounted
// at a time; the per-screen state below is only set for the mounted screen.
type Controller struct {
	screen Screen
	prefs  *preferences.UserPreferences
	week   []catalog.DayMenu

	wizard   *preferences.Wizard
	menu     *menu.View
	planner  *planner.View
	shopping *shopping.List

	// viewing is the meal opened from the planner grid.
	viewing *catalog.Meal

	observers []Observer

	// OnMealToggle, when set, is attached to every planner tracker mounted.
	OnMealToggle func(key planner.Key, done bool)
}

// NewController returns a controller on the landing screen.
func NewController(week []catalog.DayMenu) *Controller {
	return &Controller{
		screen: ScreenLanding,
		week:   week,
	}
}

// Observe registers an observer for screen changes.
func (c *Controller) Observe(o Observer) {
	c.observers = append(c.observers, o)
}

// Screen returns the mounted screen.
func (c *Controller) Screen() Screen { return c.screen }

// Preferences returns the captured preferences once onboarding completed.
func (c *Controller) Preferences() (preferences.UserPreferences, bool) {
	if c.prefs == nil {
		return preferences.UserPreferences{}, false
	}
	return *c.prefs, true
}

// Renderable reports whether the mounted screen has what it needs to be
// shown. Menu and planner require captured preferences; front-ends render
// nothing when this is false.
func (c *Controller) Renderable() bool {
	switch c.screen {
	case ScreenMenu, ScreenPlanner:
		return c.prefs != nil
	}
	return true
}

// Wizard returns the onboarding wizard while onboarding is mounted.
func (c *Controller) Wizard() *preferences.Wizard { return c.wizard }

// Menu returns the menu view while the menu is mounted.
func (c *Controller) Menu() *menu.View { return c.menu }

// Planner returns the planner while it is mounted.
func (c *Controller) Planner() *planner.View { return c.planner }

// Shopping returns the shopping list while it is mounted.
func (c *Controller) Shopping() *shopping.List { return c.shopping }

// Start leaves the landing page for onboarding.
func (c *Controller) Start() error {
	return c.fire(TriggerStart)
}

// CompleteOnboarding finalizes the mounted wizard, stores the preferences
// and shows the menu. While no goal is selected it returns
// preferences.ErrGoalRequired, and before the ingredients page
// preferences.ErrNotLastStep; nothing changes in either case.
func (c *Controller) CompleteOnboarding() (preferences.UserPreferences, error) {
	if _, err := c.target(TriggerComplete); err != nil {
		return preferences.UserPreferences{}, err
	}
	prefs, err := c.wizard.Complete()
	if err != nil {
		return preferences.UserPreferences{}, err
	}
	c.prefs = &prefs
	if err := c.fire(TriggerComplete); err != nil {
		return preferences.UserPreferences{}, err
	}
	return prefs, nil
}

// OpenShopping shows the shopping list.
func (c *Controller) OpenShopping() error {
	return c.fire(TriggerOpenShopping)
}

// OpenPlanner shows the weekly planner.
func (c *Controller) OpenPlanner() error {
	return c.fire(TriggerOpenPlanner)
}

// BackToMenu returns from the shopping list or the planner to the menu.
func (c *Controller) BackToMenu() error {
	return c.fire(TriggerBack)
}

// ViewMeal opens the meal detail over the planner. It implements
// planner.MealViewer.
func (c *Controller) ViewMeal(m catalog.Meal) {
	c.viewing = &m
}

// ViewedMeal returns the meal opened from the planner.
func (c *Controller) ViewedMeal() (catalog.Meal, bool) {
	if c.viewing == nil {
		return catalog.Meal{}, false
	}
	return *c.viewing, true
}

// CloseMeal closes the meal detail opened from the planner.
func (c *Controller) CloseMeal() {
	c.viewing = nil
}

func (c *Controller) target(t Trigger) (Screen, error) {
	to, ok := transitions[edge{c.screen, t}]
	if !ok {
		return "", fmt.Errorf("%w: %s from %s", ErrInvalidTransition, t, c.screen)
	}
	if (to == ScreenMenu || to == ScreenPlanner) && c.prefs == nil && t != TriggerComplete {
		return "", fmt.Errorf("%w: %s requires preferences", ErrInvalidTransition, to)
	}
	return to, nil
}

func (c *Controller) fire(t Trigger) error {
	to, err := c.target(t)
	if err != nil {
		return err
	}
	from := c.screen
	c.mount(to)
	for _, o := range c.observers {
		o.ScreenChanged(from, to, t)
	}
	return nil
}

// mount replaces the per-screen state. Leaving a screen discards its state,
// so planner completions and shopping checks start over on every visit.
func (c *Controller) mount(s Screen) {
	c.wizard, c.menu, c.planner, c.shopping, c.viewing = nil, nil, nil, nil, nil
	c.screen = s

	switch s {
	case ScreenOnboarding:
		c.wizard = preferences.NewWizard()
	case ScreenMenu:
		c.menu = menu.NewView(c.week)
	case ScreenPlanner:
		tracker := planner.NewTracker(c.week)
		tracker.OnToggle = c.OnMealToggle
		c.planner = planner.NewView(tracker, c)
	case ScreenShopping:
		c.shopping = shopping.NewSampleList()
	}
}
