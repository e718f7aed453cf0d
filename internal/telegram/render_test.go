package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-fit/internal/preferences"
)

func callbacks(kb tgbotapi.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData != nil {
				out = append(out, *btn.CallbackData)
			}
		}
	}
	return out
}

func TestRenderWizard_NextOnlyWithGoal(t *testing.T) {
	w := preferences.NewWizard()
	_, kb := renderWizard(w)
	assert.NotContains(t, callbacks(kb), actNext)
	assert.Contains(t, callbacks(kb), "goal|fat_loss")

	require.NoError(t, w.SelectGoal(preferences.GoalBalanced))
	text, kb := renderWizard(w)
	assert.Contains(t, callbacks(kb), actNext)
	assert.Contains(t, text, "Paso 1 de 3")
}

func TestRenderWizard_DietButtons(t *testing.T) {
	w := preferences.NewWizard()
	require.NoError(t, w.SelectGoal(preferences.GoalBalanced))
	require.NoError(t, w.Next())

	_, kb := renderWizard(w)
	got := callbacks(kb)
	for _, tag := range preferences.DietaryTags() {
		assert.Contains(t, got, "diet|"+tag)
	}
	assert.Contains(t, got, actBack)
	for _, data := range got {
		assert.LessOrEqual(t, len(data), 64)
	}
}

func TestRenderPlanner_GridCallbacks(t *testing.T) {
	s := NewSessionStore(0).Reset(1)
	c := s.Controller
	require.NoError(t, c.Start())
	require.NoError(t, c.Wizard().SelectGoal(preferences.GoalFatLoss))
	require.NoError(t, c.Wizard().Next())
	require.NoError(t, c.Wizard().Next())
	_, err := c.CompleteOnboarding()
	require.NoError(t, err)
	require.NoError(t, c.OpenPlanner())

	_, kb := render(s)
	got := callbacks(kb)
	assert.Contains(t, got, "plan|6|dinner")
	assert.NotContains(t, got, "view|6|dinner")

	s.ViewMode = true
	_, kb = render(s)
	assert.Contains(t, callbacks(kb), "view|6|dinner")
}

func TestShortDay(t *testing.T) {
	assert.Equal(t, "Mié", shortDay("Miércoles"))
	assert.Equal(t, "Lu", shortDay("Lu"))
}
