package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"menu-fit/internal/app"
	"menu-fit/internal/catalog"
	"menu-fit/internal/config"
	"menu-fit/internal/metrics"
	"menu-fit/internal/preferences"
	"menu-fit/internal/shopping"
)

// Sender is the part of the Telegram API the bot talks to.
// *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	HandleUpdate(r *http.Request) (*tgbotapi.Update, error)
}

// errStaleButton is returned for callbacks from a screen that is no longer
// mounted, e.g. a button pressed on an old message.
var errStaleButton = errors.New("button no longer applies")

// Bot serves one menu-fit conversation per chat.
type Bot struct {
	api          Sender
	cfg          *config.Config
	sessions     *SessionStore
	metricsStore *metrics.Store
	logger       *zap.Logger

	wg sync.WaitGroup

	// queues holds the updates waiting for each chat. A chat has an entry
	// exactly while its worker goroutine runs.
	qmu    sync.Mutex
	queues map[int64][]tgbotapi.Update
}

// Connect authorizes against the Telegram API and sets the webhook.
func Connect(cfg *config.Config, logger *zap.Logger) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	logger.Info("authorized on account", zap.String("username", api.Self.UserName))

	wh, err := tgbotapi.NewWebhook(cfg.Telegram.WebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url %s: %w", cfg.Telegram.WebhookURL, err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.Telegram.WebhookURL, err)
	}
	logger.Info("webhook set", zap.String("description", resp.Description))
	return api, nil
}

// NewBot wires the bot. metricsStore may be nil, which disables usage
// recording and the /metrics command.
func NewBot(cfg *config.Config, api Sender, sessions *SessionStore, metricsStore *metrics.Store, logger *zap.Logger) *Bot {
	b := &Bot{
		api:          api,
		cfg:          cfg,
		sessions:     sessions,
		metricsStore: metricsStore,
		logger:       logger,
		queues:       make(map[int64][]tgbotapi.Update),
	}
	sessions.OnCreate = func(s *Session) {
		s.Recorder = metrics.NewRecorder(metricsStore, metrics.ChannelTelegram, logger.With(zap.String("session", s.ID)))
		s.Recorder.Attach(s.Controller)
		logger.Debug("session started", zap.Int64("chat_id", s.ChatID), zap.String("session", s.ID))
	}
	return b
}

// RegisterHandlers registers the webhook and health handlers on mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// Wait blocks until every update accepted by the webhook is processed.
func (b *Bot) Wait() {
	b.wg.Wait()
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		b.logger.Warn("error parsing update", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// Telegram retries until it gets a 200, so answer before processing.
	b.enqueue(*update)
	w.WriteHeader(http.StatusOK)
}

// chatOf returns the chat an update belongs to, 0 when it has none.
func chatOf(update tgbotapi.Update) int64 {
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil:
		return update.CallbackQuery.Message.Chat.ID
	case update.Message != nil && update.Message.Chat != nil:
		return update.Message.Chat.ID
	}
	return 0
}

// enqueue processes update in the background. Updates of one chat run one
// after another in arrival order; different chats run concurrently.
func (b *Bot) enqueue(update tgbotapi.Update) {
	chatID := chatOf(update)
	if chatID == 0 {
		return
	}

	b.qmu.Lock()
	pending, running := b.queues[chatID]
	b.queues[chatID] = append(pending, update)
	b.qmu.Unlock()
	if running {
		return
	}

	b.wg.Add(1)
	go b.drain(chatID)
}

func (b *Bot) drain(chatID int64) {
	defer b.wg.Done()
	for {
		b.qmu.Lock()
		pending := b.queues[chatID]
		if len(pending) == 0 {
			delete(b.queues, chatID)
			b.qmu.Unlock()
			return
		}
		next := pending[0]
		b.queues[chatID] = pending[1:]
		b.qmu.Unlock()

		b.HandleUpdate(next)
	}
}

// HandleUpdate processes a single update synchronously.
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		if b.authorized(update.CallbackQuery.From) {
			b.handleCallbackQuery(update.CallbackQuery)
		}
	case update.Message != nil:
		if b.authorized(update.Message.From) {
			b.processMessage(update.Message)
		}
	}
}

func (b *Bot) authorized(from *tgbotapi.User) bool {
	if from == nil {
		return false
	}
	if !b.cfg.IsAllowed(from.ID) {
		b.logger.Warn("unauthorized access attempt", zap.Int64("user_id", from.ID), zap.String("username", from.UserName))
		return false
	}
	return true
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "metrics":
		b.handleMetricsRequest(msg)
		return
	case "start":
		b.show(b.sessions.Reset(chatID))
		return
	}

	sess := b.sessions.Get(chatID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	// Free text answers the ingredients question; anything else just shows
	// the current screen again.
	if w := sess.Controller.Wizard(); w != nil && w.Step() == preferences.StepIngredients && !msg.IsCommand() {
		if err := w.SetIngredients(msg.Text); err != nil {
			b.logger.Debug("ingredients ignored", zap.Error(err))
		}
	}
	b.showLocked(sess)
}

func (b *Bot) show(sess *Session) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	b.showLocked(sess)
}

func (b *Bot) showLocked(sess *Session) {
	text, keyboard := render(sess)
	msg := tgbotapi.NewMessage(sess.ChatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send screen", zap.Int64("chat_id", sess.ChatID), zap.Error(err))
	}
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	if query.Message == nil || query.Message.Chat == nil {
		return
	}
	chatID := query.Message.Chat.ID

	sess := b.sessions.Get(chatID)
	if query.Data == actStart && sess.Controller.Screen() != app.ScreenLanding {
		sess = b.sessions.Reset(chatID)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	exportRequested, err := b.applyCallback(sess, query.Data)
	notice := ""
	if err != nil {
		notice = noticeFor(err)
		b.logger.Debug("callback rejected", zap.String("data", query.Data), zap.Error(err))
	}

	// Answer callback to remove spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, notice)); err != nil {
		b.logger.Warn("failed to answer callback", zap.Error(err))
	}

	if exportRequested {
		b.sendExport(sess)
	}

	text, keyboard := render(sess)
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, query.Message.MessageID, text, keyboard)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(edit); err != nil {
		// Telegram rejects edits that leave the message unchanged.
		b.logger.Debug("failed to edit screen", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func noticeFor(err error) string {
	switch {
	case errors.Is(err, preferences.ErrGoalRequired):
		return "Elige un objetivo para continuar"
	case errors.Is(err, errStaleButton), errors.Is(err, app.ErrInvalidTransition),
		errors.Is(err, preferences.ErrNotLastStep):
		return "Esta opción ya no está disponible"
	default:
		return "No se pudo completar la acción"
	}
}

// applyCallback runs the action encoded in data against the session. It
// reports whether the shopping list should be sent as a document.
func (b *Bot) applyCallback(sess *Session, data string) (bool, error) {
	c := sess.Controller
	parts := strings.Split(data, "|")
	action, args := parts[0], parts[1:]

	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}

	switch action {
	case actStart:
		return false, c.Start()

	case actGoal, actDiet, actScratch, actNext, actBack:
		w := c.Wizard()
		if w == nil {
			return false, errStaleButton
		}
		switch action {
		case actGoal:
			g, err := preferences.ParseGoal(arg(0))
			if err != nil {
				return false, err
			}
			return false, w.SelectGoal(g)
		case actDiet:
			_, err := w.ToggleDiet(arg(0))
			return false, err
		case actScratch:
			return false, w.SetStartFromScratch(!w.StartsFromScratch())
		case actNext:
			if !w.CanContinue() {
				return false, preferences.ErrGoalRequired
			}
			return false, w.Next()
		default:
			return false, w.Back()
		}

	case actDone:
		_, err := c.CompleteOnboarding()
		return false, err

	case actDay, actMeal:
		v := c.Menu()
		if v == nil {
			return false, errStaleButton
		}
		if action == actDay {
			i, err := strconv.Atoi(arg(0))
			if err != nil {
				return false, fmt.Errorf("%w: bad day %q", errStaleButton, arg(0))
			}
			return false, v.SelectDay(i)
		}
		slot, err := catalog.ParseSlot(arg(0))
		if err != nil {
			return false, err
		}
		_, err = v.Open(slot)
		return false, err

	case actClose:
		if v := c.Menu(); v != nil {
			v.Close()
		}
		c.CloseMeal()
		return false, nil

	case actPlanner:
		sess.ViewMode = false
		return false, c.OpenPlanner()

	case actShopping:
		return false, c.OpenShopping()

	case actMenu:
		return false, c.BackToMenu()

	case actPlan, actView:
		p := c.Planner()
		if p == nil {
			return false, errStaleButton
		}
		day, err := strconv.Atoi(arg(0))
		if err != nil {
			return false, fmt.Errorf("%w: bad day %q", errStaleButton, arg(0))
		}
		slot, err := catalog.ParseSlot(arg(1))
		if err != nil {
			return false, err
		}
		if action == actView {
			_, err = p.Select(day, slot)
			return false, err
		}
		_, err = p.Toggle(day, slot)
		return false, err

	case actMode:
		if c.Planner() == nil {
			return false, errStaleButton
		}
		sess.ViewMode = !sess.ViewMode
		return false, nil

	case actItem:
		l := c.Shopping()
		if l == nil {
			return false, errStaleButton
		}
		_, err := l.Toggle(arg(0))
		return false, err

	case actExport:
		if c.Shopping() == nil {
			return false, errStaleButton
		}
		return true, nil
	}
	return false, fmt.Errorf("%w: unknown action %q", errStaleButton, action)
}

func (b *Bot) sendExport(sess *Session) {
	list := sess.Controller.Shopping()
	doc := tgbotapi.NewDocument(sess.ChatID, tgbotapi.FileBytes{
		Name:  shopping.ExportFilename,
		Bytes: []byte(list.Export()),
	})
	doc.Caption = "🛒 Tu lista de compras"
	if _, err := b.api.Send(doc); err != nil {
		b.logger.Error("failed to send shopping list", zap.Int64("chat_id", sess.ChatID), zap.Error(err))
		return
	}
	sess.Recorder.ListExported(shopping.ExportFilename)
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if b.cfg.Telegram.AdminID == 0 || msg.From.ID != b.cfg.Telegram.AdminID {
		b.reply(msg.Chat.ID, "⛔ Acceso denegado: solo administradores.")
		return
	}
	if b.metricsStore == nil {
		b.reply(msg.Chat.ID, "Las métricas están desactivadas.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	usage, err := b.metricsStore.GetDailyUsage(ctx, 7)
	if err != nil {
		b.logger.Error("failed to fetch metrics", zap.Error(err))
		b.reply(msg.Chat.ID, "❌ Error al obtener las métricas.")
		return
	}
	health := metrics.GetSysHealth(filepath.Dir(b.cfg.Database.Path))
	b.reply(msg.Chat.ID, metrics.FormatReport(usage, health))
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("failed to send reply", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
