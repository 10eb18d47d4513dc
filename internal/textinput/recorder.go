package textinput

import (
	"context"
	"time"

	"github.com/nerrad567/gray-logic-textinput/internal/entity"
)

// EventStateChanged is the WebSocket channel for value changes.
const EventStateChanged = "text_input.state_changed"

// TimeSeries receives value-change points. *influxdb.Client satisfies it.
type TimeSeries interface {
	WriteTextValue(entityID, mode, value string)
}

// Broadcaster pushes events to connected clients.
type Broadcaster interface {
	Broadcast(channel string, payload any)
}

// StateMetrics counts value changes.
type StateMetrics interface {
	StateChanged(entityID, source string)
}

// StateChangedEvent is the payload of EventStateChanged.
type StateChangedEvent struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Value     string `json:"value"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

// RecorderDeps are the sinks of a Recorder. Any may be nil.
type RecorderDeps struct {
	History HistoryRepository
	TSDB    TimeSeries
	Hub     Broadcaster
	Metrics StateMetrics
	Logger  Logger
}

// Recorder copies every value change of attached text inputs to the
// history store, the time-series database, WebSocket clients and metrics.
type Recorder struct {
	history HistoryRepository
	tsdb    TimeSeries
	hub     Broadcaster
	metrics StateMetrics
	logger  Logger
}

// NewRecorder returns a Recorder writing to deps.
func NewRecorder(deps RecorderDeps) *Recorder {
	logger := deps.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	return &Recorder{
		history: deps.History,
		tsdb:    deps.TSDB,
		hub:     deps.Hub,
		metrics: deps.Metrics,
		logger:  logger,
	}
}

// Restore sets t's state to its last recorded value, if any. State
// callbacks do not fire, so nothing is published or recorded again.
// Call before Attach.
func (r *Recorder) Restore(ctx context.Context, t *TextInput) error {
	if r.history == nil {
		return nil
	}
	last, ok, err := r.history.Latest(ctx, t.ID())
	if err != nil || !ok {
		return err
	}
	t.mu.Lock()
	t.state = last.Value
	t.hasState = true
	t.mu.Unlock()
	r.logger.Debug("text input restored", "id", t.ID(), "recorded_at", last.CreatedAt)
	return nil
}

// Attach starts recording t's value changes.
func (r *Recorder) Attach(t *TextInput) {
	t.AddOnStateCallback(func(ctx context.Context, value string) {
		r.record(ctx, t, value)
	})
}

func (r *Recorder) record(ctx context.Context, t *TextInput, value string) {
	source := entity.SourceFrom(ctx)

	if r.history != nil {
		// Recording outlives the caller's request.
		if err := r.history.Record(context.WithoutCancel(ctx), t.ID(), value, source); err != nil {
			r.logger.Warn("recording text input history failed", "id", t.ID(), "error", err)
		}
	}
	if r.tsdb != nil {
		r.tsdb.WriteTextValue(t.ID(), t.Traits.Mode().String(), value)
	}
	if r.metrics != nil {
		r.metrics.StateChanged(t.ID(), source)
	}
	if r.hub != nil {
		r.hub.Broadcast(EventStateChanged, StateChangedEvent{
			ID:        t.ID(),
			Name:      t.Name(),
			Value:     value,
			Source:    source,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}
