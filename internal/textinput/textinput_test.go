package textinput

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextInput_PublishState(t *testing.T) {
	ti := NewTextInput("greeting")

	_, ok := ti.State()
	assert.False(t, ok)

	var got []string
	ti.AddOnStateCallback(func(_ context.Context, v string) { got = append(got, "a:"+v) })
	ti.AddOnStateCallback(func(_ context.Context, v string) { got = append(got, "b:"+v) })

	ti.PublishState(context.Background(), "hello")
	ti.PublishState(context.Background(), "hello")

	v, ok := ti.State()
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
	assert.Equal(t, []string{"a:hello", "b:hello", "a:hello", "b:hello"}, got)
}

func TestTextInput_Set(t *testing.T) {
	ti := NewTextInput("greeting")

	require.NoError(t, ti.Set(context.Background(), ""))
	require.NoError(t, ti.Set(context.Background(), strings.Repeat("x", MaxLength)))

	err := ti.Set(context.Background(), strings.Repeat("x", MaxLength+1))
	assert.ErrorIs(t, err, ErrValueTooLong)

	v, _ := ti.State()
	assert.Len(t, v, MaxLength)
}

func TestTextInput_ConcurrentPublish(t *testing.T) {
	ti := NewTextInput("greeting")
	var mu sync.Mutex
	count := 0
	ti.AddOnStateCallback(func(context.Context, string) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ti.PublishState(context.Background(), "v")
			ti.State()
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, count)
}

func TestStateTrigger_Parent(t *testing.T) {
	ti := NewTextInput("greeting")
	trigger := NewStateTrigger("t1", ti)
	assert.Equal(t, "t1", trigger.TriggerID())
	assert.Same(t, ti, trigger.Parent())
	assert.Empty(t, trigger.Automations())
}
