package automation

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// syncRunner runs automations inline so tests can assert right after Fire.
type syncRunner struct {
	engine *Engine
}

func (r syncRunner) Dispatch(ctx context.Context, a *Automation, vars Vars) {
	r.engine.Run(ctx, a, vars)
}

type publishedMessage struct {
	topic    string
	payload  string
	qos      byte
	retained bool
}

type mockPublisher struct {
	mu       sync.Mutex
	messages []publishedMessage
	err      error
}

func (m *mockPublisher) Publish(topic string, payload []byte, qos byte, retained bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, publishedMessage{topic, string(payload), qos, retained})
	return nil
}

type mockSetter struct {
	mu     sync.Mutex
	values []string
}

func (s *mockSetter) Set(_ context.Context, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = append(s.values, value)
	return nil
}

type mockEntities map[string]any

func (m mockEntities) Get(id string) (any, bool) {
	v, ok := m[id]
	return v, ok
}

type logLine struct {
	level string
	msg   string
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []logLine
}

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, logLine{level, msg})
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.add("debug", msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.add("info", msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.add("warn", msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.add("error", msg) }

func (l *recordingLogger) has(level, msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if line.level == level && line.msg == msg {
			return true
		}
	}
	return false
}

type mockRepo struct {
	mu      sync.Mutex
	created []Execution
	updated []Execution
	failAll bool
}

func (r *mockRepo) CreateExecution(_ context.Context, exec *Execution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return errors.New("disk full")
	}
	r.created = append(r.created, *exec)
	return nil
}

func (r *mockRepo) UpdateExecution(_ context.Context, exec *Execution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return errors.New("disk full")
	}
	r.updated = append(r.updated, *exec)
	return nil
}

func (r *mockRepo) GetExecution(_ context.Context, id string) (*Execution, error) {
	return nil, fmt.Errorf("%w: %s", ErrExecutionNotFound, id)
}

func (r *mockRepo) ListExecutions(context.Context, string, int) ([]Execution, error) {
	return nil, nil
}

type mockHub struct {
	mu       sync.Mutex
	channels []string
}

func (h *mockHub) Broadcast(channel string, _ any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.channels = append(h.channels, channel)
}

// playFunc adapts a function into an Action.
type playFunc func(ctx context.Context, vars Vars) error

func (f playFunc) Name() string                              { return "test.func" }
func (f playFunc) Play(ctx context.Context, vars Vars) error { return f(ctx, vars) }
