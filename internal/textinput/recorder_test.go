package textinput

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerrad567/gray-logic-textinput/internal/entity"
)

type fakeHistory struct {
	mu      sync.Mutex
	entries []HistoryEntry
}

func (h *fakeHistory) Record(_ context.Context, entityID, value, source string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, HistoryEntry{EntityID: entityID, Value: value, Source: source, CreatedAt: time.Now()})
	return nil
}

func (h *fakeHistory) History(_ context.Context, entityID string, _ int) ([]HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []HistoryEntry
	for i := len(h.entries) - 1; i >= 0; i-- {
		if h.entries[i].EntityID == entityID {
			out = append(out, h.entries[i])
		}
	}
	return out, nil
}

func (h *fakeHistory) Latest(ctx context.Context, entityID string) (HistoryEntry, bool, error) {
	entries, _ := h.History(ctx, entityID, 1)
	if len(entries) == 0 {
		return HistoryEntry{}, false, nil
	}
	return entries[0], true, nil
}

type fakeTSDB struct{ points []string }

func (f *fakeTSDB) WriteTextValue(entityID, mode, value string) {
	f.points = append(f.points, entityID+"/"+mode+"/"+value)
}

type fakeHub struct {
	channels []string
	payloads []any
}

func (f *fakeHub) Broadcast(channel string, payload any) {
	f.channels = append(f.channels, channel)
	f.payloads = append(f.payloads, payload)
}

type fakeMetrics struct{ changes []string }

func (f *fakeMetrics) StateChanged(entityID, source string) {
	f.changes = append(f.changes, entityID+"/"+source)
}

func TestRecorder_Attach(t *testing.T) {
	history := &fakeHistory{}
	tsdb := &fakeTSDB{}
	hub := &fakeHub{}
	metrics := &fakeMetrics{}
	r := NewRecorder(RecorderDeps{History: history, TSDB: tsdb, Hub: hub, Metrics: metrics})

	ti := NewTextInput("greeting")
	ti.SetName("Greeting")
	ti.Traits.SetMode(ModeString)
	r.Attach(ti)

	require.NoError(t, ti.Set(entity.WithSource(context.Background(), entity.SourceMQTT), "hello"))

	require.Len(t, history.entries, 1)
	assert.Equal(t, "greeting", history.entries[0].EntityID)
	assert.Equal(t, entity.SourceMQTT, history.entries[0].Source)
	assert.Equal(t, []string{"greeting/STRING/hello"}, tsdb.points)
	assert.Equal(t, []string{"greeting/mqtt"}, metrics.changes)

	require.Equal(t, []string{EventStateChanged}, hub.channels)
	event, ok := hub.payloads[0].(StateChangedEvent)
	require.True(t, ok)
	assert.Equal(t, "Greeting", event.Name)
	assert.Equal(t, "hello", event.Value)
	assert.Equal(t, entity.SourceMQTT, event.Source)
}

func TestRecorder_NilSinks(t *testing.T) {
	r := NewRecorder(RecorderDeps{})
	ti := NewTextInput("greeting")
	r.Attach(ti)

	require.NoError(t, r.Restore(context.Background(), ti))
	assert.NotPanics(t, func() { ti.PublishState(context.Background(), "x") })
}

func TestRecorder_Restore(t *testing.T) {
	history := &fakeHistory{}
	require.NoError(t, history.Record(context.Background(), "greeting", "before restart", entity.SourceAPI))

	tsdb := &fakeTSDB{}
	hub := &fakeHub{}
	r := NewRecorder(RecorderDeps{History: history, TSDB: tsdb, Hub: hub})
	ti := NewTextInput("greeting")
	fired := 0
	ti.AddOnStateCallback(func(context.Context, string) { fired++ })

	require.NoError(t, r.Restore(context.Background(), ti))
	r.Attach(ti)

	v, ok := ti.State()
	assert.True(t, ok)
	assert.Equal(t, "before restart", v)
	assert.Zero(t, fired)
	assert.Len(t, history.entries, 1)
	assert.Empty(t, hub.channels)
	assert.Empty(t, tsdb.points)
}
