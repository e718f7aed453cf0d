package telegram

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"menu-fit/internal/app"
	"menu-fit/internal/catalog"
	"menu-fit/internal/config"
	"menu-fit/internal/database"
	"menu-fit/internal/metrics"
	"menu-fit/internal/preferences"
	"menu-fit/internal/shopping"
)

const (
	testChat  = int64(100)
	testUser  = int64(7)
	adminUser = int64(1)
)

type fakeSender struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// HandleUpdate uses the library's own request decoding, which needs no
// connection.
func (f *fakeSender) HandleUpdate(r *http.Request) (*tgbotapi.Update, error) {
	return (&tgbotapi.BotAPI{}).HandleUpdate(r)
}

func (f *fakeSender) last() tgbotapi.Chattable {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return nil
	}
	return f.sent[len(f.sent)-1]
}

func (f *fakeSender) lastCallbackText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.requests) - 1; i >= 0; i-- {
		if cb, ok := f.requests[i].(tgbotapi.CallbackConfig); ok {
			return cb.Text
		}
	}
	return ""
}

func newTestBot(t *testing.T, store *metrics.Store) (*Bot, *fakeSender) {
	t.Helper()
	cfg := config.Default()
	cfg.Telegram.AllowedUserIDs = []int64{testUser, adminUser}
	cfg.Telegram.AdminID = adminUser
	cfg.Database.Path = filepath.Join(t.TempDir(), "menu-fit.db")

	sender := &fakeSender{}
	return NewBot(cfg, sender, NewSessionStore(time.Hour), store, zap.NewNop()), sender
}

func command(from int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: from},
		Chat:      &tgbotapi.Chat{ID: testChat},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(strings.Fields(text)[0])}},
	}}
}

func text(from int64, body string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 2,
		From:      &tgbotapi.User{ID: from},
		Chat:      &tgbotapi.Chat{ID: testChat},
		Text:      body,
	}}
}

func press(data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: testUser},
		Message: &tgbotapi.Message{MessageID: 10, Chat: &tgbotapi.Chat{ID: testChat}},
		Data:    data,
	}}
}

func pressAll(b *Bot, data ...string) {
	for _, d := range data {
		b.HandleUpdate(press(d))
	}
}

func controller(b *Bot) *app.Controller {
	return b.sessions.Get(testChat).Controller
}

func TestBot_StartShowsLanding(t *testing.T) {
	b, sender := newTestBot(t, nil)
	b.HandleUpdate(command(testUser, "/start"))

	msg, ok := sender.last().(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, testChat, msg.ChatID)
	assert.Contains(t, msg.Text, "Menu Fit")
	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
}

func TestBot_OnboardingFlow(t *testing.T) {
	b, sender := newTestBot(t, nil)
	b.HandleUpdate(command(testUser, "/start"))

	pressAll(b, actStart)
	assert.Equal(t, app.ScreenOnboarding, controller(b).Screen())

	// Next without a goal is refused.
	pressAll(b, actNext)
	assert.Equal(t, "Elige un objetivo para continuar", sender.lastCallbackText())
	assert.Equal(t, preferences.StepGoal, controller(b).Wizard().Step())

	pressAll(b, "goal|muscle_gain", actNext, "diet|Keto", "diet|Sin Gluten", actNext)
	w := controller(b).Wizard()
	require.NotNil(t, w)
	assert.Equal(t, preferences.StepIngredients, w.Step())

	b.HandleUpdate(text(testUser, "pollo, arroz"))
	assert.Equal(t, "pollo, arroz", controller(b).Wizard().IngredientsText())
	msg, ok := sender.last().(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "pollo, arroz")

	pressAll(b, actDone)
	c := controller(b)
	assert.Equal(t, app.ScreenMenu, c.Screen())
	prefs, ok := c.Preferences()
	require.True(t, ok)
	assert.Equal(t, preferences.GoalMuscleGain, prefs.Goal())
	assert.Equal(t, []string{"Sin Gluten", "Keto"}, prefs.DietaryPreferences())
	assert.Equal(t, "pollo, arroz", prefs.Ingredients())

	edit, ok := sender.last().(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, 10, edit.MessageID)
	assert.Contains(t, edit.Text, "Lunes")
	assert.Contains(t, edit.Text, "Ganancia Muscular")
}

func onboard(t *testing.T, b *Bot) {
	t.Helper()
	pressAll(b, actStart, "goal|fat_loss", actNext, actNext, actScratch, actDone)
	require.Equal(t, app.ScreenMenu, controller(b).Screen())
}

func TestBot_MenuNavigation(t *testing.T) {
	b, sender := newTestBot(t, nil)
	onboard(t, b)

	pressAll(b, "day|1")
	edit := sender.last().(tgbotapi.EditMessageTextConfig)
	assert.Contains(t, edit.Text, "Martes")
	tuesday, err := catalog.Day(1)
	require.NoError(t, err)
	assert.Contains(t, edit.Text, tuesday.Lunch.Name)

	pressAll(b, "meal|dinner")
	edit = sender.last().(tgbotapi.EditMessageTextConfig)
	assert.Contains(t, edit.Text, tuesday.Dinner.Name)
	assert.Contains(t, edit.Text, "Preparación")

	pressAll(b, actClose)
	_, open := controller(b).Menu().Selected()
	assert.False(t, open)

	pressAll(b, "day|9")
	assert.Equal(t, 1, controller(b).Menu().DayIndex())
}

func TestBot_PlannerToggleAndView(t *testing.T) {
	b, sender := newTestBot(t, nil)
	onboard(t, b)

	pressAll(b, actPlanner, "plan|0|breakfast", "plan|3|dinner")
	p := controller(b).Planner()
	require.NotNil(t, p)
	assert.Equal(t, 2, p.Count())
	edit := sender.last().(tgbotapi.EditMessageTextConfig)
	assert.Contains(t, edit.Text, "10% · 2 de 21 comidas · 19 pendientes")

	pressAll(b, actMode, "view|4|lunch")
	m, ok := controller(b).ViewedMeal()
	require.True(t, ok)
	assert.Equal(t, "l5", m.ID)
	assert.Equal(t, 2, controller(b).Planner().Count(), "viewing does not toggle")

	pressAll(b, actClose, actMenu, actPlanner)
	assert.Equal(t, 0, controller(b).Planner().Count())
}

func TestBot_ShoppingExport(t *testing.T) {
	store := newMetricsStore(t)
	b, sender := newTestBot(t, store)
	onboard(t, b)

	pressAll(b, actShopping, "item|1", "item|2")
	assert.Equal(t, 2, controller(b).Shopping().CheckedCount())
	edit := sender.last().(tgbotapi.EditMessageTextConfig)
	assert.Contains(t, edit.Text, "13 productos por marcar")

	pressAll(b, actExport)

	var doc *tgbotapi.DocumentConfig
	sender.mu.Lock()
	for _, c := range sender.sent {
		if d, ok := c.(tgbotapi.DocumentConfig); ok {
			doc = &d
		}
	}
	sender.mu.Unlock()
	require.NotNil(t, doc)
	file, ok := doc.File.(tgbotapi.FileBytes)
	require.True(t, ok)
	assert.Equal(t, shopping.ExportFilename, file.Name)
	assert.Equal(t, shopping.NewSampleList().Export(), string(file.Bytes))

	usage, err := store.GetDailyUsage(t.Context(), 1)
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Equal(t, 1, usage[0].Exports)
	assert.Equal(t, 1, usage[0].Onboardings)
}

func TestBot_StaleButtons(t *testing.T) {
	b, sender := newTestBot(t, nil)
	onboard(t, b)

	pressAll(b, "goal|balanced")
	assert.Equal(t, "Esta opción ya no está disponible", sender.lastCallbackText())
	pressAll(b, "item|1")
	assert.Equal(t, "Esta opción ya no está disponible", sender.lastCallbackText())
	pressAll(b, "bogus")
	assert.Equal(t, "Esta opción ya no está disponible", sender.lastCallbackText())
	assert.Equal(t, app.ScreenMenu, controller(b).Screen())

	// Start from a later screen begins a new conversation.
	pressAll(b, actStart)
	assert.Equal(t, app.ScreenOnboarding, controller(b).Screen())
}

func TestBot_DoneFromEarlierStepIsStale(t *testing.T) {
	b, sender := newTestBot(t, nil)

	// The done button of an older ingredients message is still tappable
	// after the user went back on a newer one.
	pressAll(b, actStart, "goal|balanced", actNext, actNext, actBack, actBack, actDone)

	assert.Equal(t, "Esta opción ya no está disponible", sender.lastCallbackText())
	c := controller(b)
	assert.Equal(t, app.ScreenOnboarding, c.Screen())
	assert.Equal(t, preferences.StepGoal, c.Wizard().Step())
	_, ok := c.Preferences()
	assert.False(t, ok)
}

func TestBot_IgnoresUnauthorizedUsers(t *testing.T) {
	b, sender := newTestBot(t, nil)
	b.HandleUpdate(command(999, "/start"))
	assert.Nil(t, sender.last())
}

func TestBot_MetricsCommand(t *testing.T) {
	t.Run("NonAdmin", func(t *testing.T) {
		b, sender := newTestBot(t, newMetricsStore(t))
		b.HandleUpdate(command(testUser, "/metrics"))
		msg := sender.last().(tgbotapi.MessageConfig)
		assert.Contains(t, msg.Text, "Acceso denegado")
	})

	t.Run("Admin", func(t *testing.T) {
		b, sender := newTestBot(t, newMetricsStore(t))
		b.HandleUpdate(command(adminUser, "/metrics"))
		msg := sender.last().(tgbotapi.MessageConfig)
		assert.Contains(t, msg.Text, "Uso diario")
		assert.Contains(t, msg.Text, "goroutines=")
	})

	t.Run("Disabled", func(t *testing.T) {
		b, sender := newTestBot(t, nil)
		b.HandleUpdate(command(adminUser, "/metrics"))
		msg := sender.last().(tgbotapi.MessageConfig)
		assert.Contains(t, msg.Text, "desactivadas")
	})
}

func TestBot_Webhook(t *testing.T) {
	b, sender := newTestBot(t, nil)
	mux := http.NewServeMux()
	b.RegisterHandlers(mux)

	body, err := json.Marshal(command(testUser, "/start"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body)))
	assert.Equal(t, http.StatusOK, rec.Code)
	b.Wait()
	_, ok := sender.last().(tgbotapi.MessageConfig)
	assert.True(t, ok)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/webhook", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestBot_WebhookKeepsChatOrder(t *testing.T) {
	b, sender := newTestBot(t, nil)
	mux := http.NewServeMux()
	b.RegisterHandlers(mux)

	post := func(u tgbotapi.Update) {
		body, err := json.Marshal(u)
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body)))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	for i := 0; i < 20; i++ {
		post(command(testUser, "/start"))
		post(press(actStart))
		post(press("goal|muscle_gain"))
		post(press(actNext))
		post(press("diet|Keto"))
		post(press(actNext))
	}
	b.Wait()

	w := controller(b).Wizard()
	require.NotNil(t, w)
	assert.Equal(t, preferences.StepIngredients, w.Step())
	assert.Equal(t, []string{"Keto"}, w.DietaryPreferences())

	sender.mu.Lock()
	defer sender.mu.Unlock()
	for _, r := range sender.requests {
		if cb, ok := r.(tgbotapi.CallbackConfig); ok {
			assert.Empty(t, cb.Text, "no callback may be rejected")
		}
	}
}

func newMetricsStore(t *testing.T) *metrics.Store {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "metrics.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return metrics.NewStore(db.SQL)
}
