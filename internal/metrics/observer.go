package metrics

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"menu-fit/internal/app"
	"menu-fit/internal/planner"
)

// Recorder turns controller notifications into usage events for one
// front-end. Failures are logged and never reach the user.
type Recorder struct {
	store   *Store
	channel Channel
	logger  *zap.Logger
}

// NewRecorder returns a Recorder. A nil store disables recording.
func NewRecorder(store *Store, channel Channel, logger *zap.Logger) *Recorder {
	return &Recorder{store: store, channel: channel, logger: logger}
}

// ScreenChanged implements app.Observer.
func (r *Recorder) ScreenChanged(from, to app.Screen, trigger app.Trigger) {
	kind := KindScreenChanged
	if trigger == app.TriggerComplete {
		kind = KindOnboardingCompleted
	}
	r.record(kind, fmt.Sprintf("%s>%s", from, to))
}

// MealToggled matches app.Controller.OnMealToggle.
func (r *Recorder) MealToggled(key planner.Key, done bool) {
	r.record(KindMealToggled, fmt.Sprintf("%s=%t", key, done))
}

// ListExported records a shopping list export.
func (r *Recorder) ListExported(target string) {
	r.record(KindListExported, target)
}

// Attach wires the recorder into a controller.
func (r *Recorder) Attach(c *app.Controller) {
	c.Observe(r)
	c.OnMealToggle = r.MealToggled
}

func (r *Recorder) record(kind Kind, detail string) {
	if r == nil || r.store == nil {
		return
	}
	err := r.store.Record(context.Background(), Event{Kind: kind, Channel: r.channel, Detail: detail})
	if err != nil {
		r.logger.Warn("failed to record usage event", zap.String("kind", string(kind)), zap.Error(err))
	}
}
