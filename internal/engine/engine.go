// Package engine ties the statement pipeline together: tokenize, parse
// and execute, with lifecycle events for observers.
package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tabuladb/tabula/internal/catalog"
	"github.com/tabuladb/tabula/internal/executor"
	"github.com/tabuladb/tabula/internal/parser"
	"github.com/tabuladb/tabula/internal/parser/lexer"
)

// Engine is the main entry point for running statements
type Engine struct {
	registry  *catalog.Registry
	executor  *executor.Executor
	observers []Observer // Observers for lifecycle events
}

// New creates a new Engine over the registry. Relative paths in LOAD
// and SAVE statements resolve against dataDir.
func New(registry *catalog.Registry, dataDir string) *Engine {
	return &Engine{
		registry:  registry,
		executor:  executor.New(registry, dataDir),
		observers: make([]Observer, 0),
	}
}

// Registry returns the dataset registry the engine runs against.
func (e *Engine) Registry() *catalog.Registry {
	return e.registry
}

// Execute processes one statement string and returns the result
func (e *Engine) Execute(statement string) (*executor.Result, error) {
	opID := uuid.New().String()

	// 1. Tokenize
	e.notify(Event{Type: EventLexStart, OpID: opID, Data: statement})
	tokens, err := lexer.Tokenize(statement)
	if err != nil {
		return nil, fmt.Errorf("lexer error: %w", err)
	}
	e.notify(Event{Type: EventLexEnd, OpID: opID, Data: len(tokens)})

	// 2. Parse
	e.notify(Event{Type: EventParseStart, OpID: opID})
	stmt, err := parser.New(tokens).Parse()
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	e.notify(Event{Type: EventParseEnd, OpID: opID, Data: fmt.Sprintf("%T", stmt)})

	// 3. Execute
	e.notify(Event{Type: EventExecStart, OpID: opID})
	result, err := e.executor.Execute(stmt)
	if err != nil {
		return nil, fmt.Errorf("execution error: %w", err)
	}
	data := map[string]interface{}{"message": result.Message}
	if result.Dataset != nil {
		data["dataset"] = result.Dataset.Name()
		data["rows"] = result.Dataset.NumRows()
	}
	e.notify(Event{Type: EventExecEnd, OpID: opID, Data: data})

	return result, nil
}

// AddObserver registers an observer to receive lifecycle events
func (e *Engine) AddObserver(observer Observer) {
	e.observers = append(e.observers, observer)
}

// RemoveObserver unregisters an observer
func (e *Engine) RemoveObserver(observer Observer) {
	for i, o := range e.observers {
		if o == observer {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (e *Engine) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range e.observers {
		observer.OnEvent(event)
	}
}
