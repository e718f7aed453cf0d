package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-fit/internal/catalog"
	"menu-fit/internal/planner"
	"menu-fit/internal/preferences"
)

func newOnboarded(t *testing.T) *Controller {
	t.Helper()
	c := NewController(catalog.Week())
	require.NoError(t, c.Start())
	w := c.Wizard()
	require.NoError(t, w.SelectGoal(preferences.GoalFatLoss))
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	_, err := c.CompleteOnboarding()
	require.NoError(t, err)
	return c
}

func TestController_InitialState(t *testing.T) {
	c := NewController(catalog.Week())
	assert.Equal(t, ScreenLanding, c.Screen())
	_, ok := c.Preferences()
	assert.False(t, ok)
	assert.True(t, c.Renderable())
	assert.Nil(t, c.Wizard())
}

func TestController_HappyPath(t *testing.T) {
	var trail []string
	c := NewController(catalog.Week())
	c.Observe(ObserverFunc(func(from, to Screen, trigger Trigger) {
		trail = append(trail, string(from)+">"+string(to))
	}))

	require.NoError(t, c.Start())
	assert.Equal(t, ScreenOnboarding, c.Screen())
	require.NotNil(t, c.Wizard())

	w := c.Wizard()
	require.NoError(t, w.SelectGoal(preferences.GoalMuscleGain))
	require.NoError(t, w.Next())
	_, err := w.ToggleDiet("Keto")
	require.NoError(t, err)
	require.NoError(t, w.Next())
	require.NoError(t, w.SetStartFromScratch(true))

	prefs, err := c.CompleteOnboarding()
	require.NoError(t, err)
	assert.Equal(t, ScreenMenu, c.Screen())
	assert.Equal(t, preferences.GoalMuscleGain, prefs.Goal())
	assert.Equal(t, []string{"Keto"}, prefs.DietaryPreferences())
	assert.True(t, prefs.StartsFromScratch())
	assert.Nil(t, c.Wizard())
	require.NotNil(t, c.Menu())

	require.NoError(t, c.OpenShopping())
	assert.Equal(t, ScreenShopping, c.Screen())
	require.NotNil(t, c.Shopping())
	assert.Nil(t, c.Menu())

	require.NoError(t, c.BackToMenu())
	require.NoError(t, c.OpenPlanner())
	assert.Equal(t, ScreenPlanner, c.Screen())
	require.NotNil(t, c.Planner())

	require.NoError(t, c.BackToMenu())
	assert.Equal(t, ScreenMenu, c.Screen())

	stored, ok := c.Preferences()
	require.True(t, ok)
	assert.Equal(t, prefs, stored)

	assert.Equal(t, []string{
		"landing>onboarding",
		"onboarding>menu",
		"menu>shopping",
		"shopping>menu",
		"menu>planner",
		"planner>menu",
	}, trail)
}

func TestController_CompleteRequiresGoal(t *testing.T) {
	c := NewController(catalog.Week())
	require.NoError(t, c.Start())

	_, err := c.CompleteOnboarding()
	assert.ErrorIs(t, err, preferences.ErrGoalRequired)
	assert.Equal(t, ScreenOnboarding, c.Screen())
	_, ok := c.Preferences()
	assert.False(t, ok)
}

func TestController_CompleteOnlyFromIngredientsStep(t *testing.T) {
	c := NewController(catalog.Week())
	require.NoError(t, c.Start())
	w := c.Wizard()
	require.NoError(t, w.SelectGoal(preferences.GoalBalanced))

	_, err := c.CompleteOnboarding()
	assert.ErrorIs(t, err, preferences.ErrNotLastStep)
	assert.Equal(t, ScreenOnboarding, c.Screen())
	_, ok := c.Preferences()
	assert.False(t, ok)
	assert.Same(t, w, c.Wizard())

	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	_, err = c.CompleteOnboarding()
	require.NoError(t, err)
	assert.Equal(t, ScreenMenu, c.Screen())
}

func TestController_InvalidTransitions(t *testing.T) {
	c := NewController(catalog.Week())

	assert.ErrorIs(t, c.OpenShopping(), ErrInvalidTransition)
	assert.ErrorIs(t, c.OpenPlanner(), ErrInvalidTransition)
	assert.ErrorIs(t, c.BackToMenu(), ErrInvalidTransition)
	_, err := c.CompleteOnboarding()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, ScreenLanding, c.Screen())

	c = newOnboarded(t)
	assert.ErrorIs(t, c.Start(), ErrInvalidTransition)
	assert.ErrorIs(t, c.BackToMenu(), ErrInvalidTransition)

	require.NoError(t, c.OpenShopping())
	assert.ErrorIs(t, c.OpenPlanner(), ErrInvalidTransition)
	assert.Equal(t, ScreenShopping, c.Screen())
}

func TestController_NeverRendersResultsWithoutPreferences(t *testing.T) {
	for _, s := range []Screen{ScreenMenu, ScreenPlanner} {
		c := NewController(catalog.Week())
		c.mount(s)
		assert.False(t, c.Renderable(), "screen %s", s)
	}

	c := NewController(catalog.Week())
	c.mount(ScreenMenu)
	assert.ErrorIs(t, c.OpenPlanner(), ErrInvalidTransition)
}

func TestController_RemountResetsScreenState(t *testing.T) {
	c := newOnboarded(t)

	require.NoError(t, c.OpenPlanner())
	_, err := c.Planner().Toggle(0, catalog.Lunch)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Planner().Count())
	require.NoError(t, c.BackToMenu())
	require.NoError(t, c.OpenPlanner())
	assert.Equal(t, 0, c.Planner().Count())

	require.NoError(t, c.BackToMenu())
	require.NoError(t, c.OpenShopping())
	_, err = c.Shopping().Toggle("1")
	require.NoError(t, err)
	require.NoError(t, c.BackToMenu())
	require.NoError(t, c.OpenShopping())
	assert.Equal(t, 0, c.Shopping().CheckedCount())
}

func TestController_PlannerForwardsMealToApp(t *testing.T) {
	c := newOnboarded(t)
	require.NoError(t, c.OpenPlanner())

	_, ok := c.ViewedMeal()
	assert.False(t, ok)

	_, err := c.Planner().Select(4, catalog.Dinner)
	require.NoError(t, err)

	m, ok := c.ViewedMeal()
	require.True(t, ok)
	assert.Equal(t, "d5", m.ID)
	assert.Equal(t, ScreenPlanner, c.Screen())

	c.CloseMeal()
	_, ok = c.ViewedMeal()
	assert.False(t, ok)
}

func TestController_OnMealToggle(t *testing.T) {
	var got []planner.Key
	c := newOnboarded(t)
	c.OnMealToggle = func(k planner.Key, done bool) {
		got = append(got, k)
	}
	require.NoError(t, c.OpenPlanner())
	_, err := c.Planner().Toggle(2, catalog.Breakfast)
	require.NoError(t, err)
	assert.Equal(t, []planner.Key{{Day: 2, Slot: catalog.Breakfast}}, got)
}
