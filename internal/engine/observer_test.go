package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabuladb/tabula/internal/catalog"
	"github.com/tabuladb/tabula/internal/testutil"
)

// MockObserver is a test observer that records events
type MockObserver struct {
	Events []Event
}

func (m *MockObserver) OnEvent(event Event) {
	m.Events = append(m.Events, event)
}

func TestAddObserver(t *testing.T) {
	eng := New(catalog.NewRegistry(), ".")
	observer := &MockObserver{}

	eng.AddObserver(observer)

	assert.Len(t, eng.observers, 1)
}

func TestRemoveObserver(t *testing.T) {
	eng := New(catalog.NewRegistry(), ".")
	observer := &MockObserver{}

	eng.AddObserver(observer)
	eng.RemoveObserver(observer)

	assert.Empty(t, eng.observers)
}

func TestNotifyWithNoObservers(t *testing.T) {
	eng := New(catalog.NewRegistry(), ".")

	// Should not panic
	eng.notify(Event{Type: EventLexStart, OpID: "test-op"})
}

func TestNotifyWithMultipleObservers(t *testing.T) {
	eng := New(catalog.NewRegistry(), ".")
	observer1 := &MockObserver{}
	observer2 := &MockObserver{}

	eng.AddObserver(observer1)
	eng.AddObserver(observer2)

	eng.notify(Event{Type: EventLexStart, OpID: "test-op", Data: "LIST"})

	require.Len(t, observer1.Events, 1)
	require.Len(t, observer2.Events, 1)
	assert.Equal(t, EventLexStart, observer1.Events[0].Type)
	assert.Equal(t, EventLexStart, observer2.Events[0].Type)
}

func TestEventTimestamp(t *testing.T) {
	eng := New(catalog.NewRegistry(), ".")
	observer := &MockObserver{}
	eng.AddObserver(observer)

	eng.notify(Event{Type: EventLexStart, OpID: "test-op"})

	require.Len(t, observer.Events, 1)
	assert.False(t, observer.Events[0].Timestamp.IsZero())
}

func TestExecuteEmitsLifecycleEvents(t *testing.T) {
	registry := catalog.NewRegistry()
	require.NoError(t, registry.Register("fish", testutil.Fish()))

	eng := New(registry, ".")
	observer := &MockObserver{}
	eng.AddObserver(observer)

	res, err := eng.Execute(`FILTER fish WHERE site == 'abur'`)
	require.NoError(t, err)
	require.NotNil(t, res.Dataset)

	types := make([]EventType, len(observer.Events))
	for i, ev := range observer.Events {
		types[i] = ev.Type
	}
	assert.Equal(t, []EventType{
		EventLexStart, EventLexEnd,
		EventParseStart, EventParseEnd,
		EventExecStart, EventExecEnd,
	}, types)

	// Every phase of one statement carries the same operation ID.
	for _, ev := range observer.Events {
		assert.Equal(t, observer.Events[0].OpID, ev.OpID)
		assert.False(t, ev.Timestamp.IsZero())
	}
}

func TestExecuteStopsAtFirstFailingPhase(t *testing.T) {
	eng := New(catalog.NewRegistry(), ".")
	observer := &MockObserver{}
	eng.AddObserver(observer)

	_, err := eng.Execute(`FILTER fish WHERE`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse error")

	types := make([]EventType, len(observer.Events))
	for i, ev := range observer.Events {
		types[i] = ev.Type
	}
	assert.Equal(t, []EventType{EventLexStart, EventLexEnd, EventParseStart}, types)
}
