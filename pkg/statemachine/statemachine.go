package statemachine

import (
	"fmt"
	"sync"
)

// Transition is a single edge of the machine.
type Transition[S, E comparable] struct {
	From  S
	Event E
	To    S
}

// Listener is notified after every committed transition.
type Listener[S, E comparable] func(Transition[S, E])

// Machine is a thread-safe finite state machine over comparable state and event types.
// Transitions are kept in a nested map [from][event] -> to.
type Machine[S, E comparable] struct {
	mu          sync.RWMutex
	current     S
	transitions map[S]map[E]S
	listeners   map[uint64]Listener[S, E]
	nextID      uint64
}

// New creates a machine in the initial state. Options add transitions and listeners.
func New[S, E comparable](initial S, opts ...Option[S, E]) (*Machine[S, E], error) {
	m := &Machine[S, E]{
		current:     initial,
		transitions: make(map[S]map[E]S),
		listeners:   make(map[uint64]Listener[S, E]),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew is like New but panics on an invalid definition.
func MustNew[S, E comparable](initial S, opts ...Option[S, E]) *Machine[S, E] {
	m, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return m
}

func (m *Machine[S, E]) addTransition(t Transition[S, E]) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	events, ok := m.transitions[t.From]
	if !ok {
		events = make(map[E]S)
		m.transitions[t.From] = events
	}
	if to, exists := events[t.Event]; exists && to != t.To {
		return fmt.Errorf("%w: %v on %v already leads to %v", ErrDuplicateTransition, t.From, t.Event, to)
	}
	events[t.Event] = t.To
	return nil
}

// Current returns the current state.
func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Can reports whether the event is defined for the current state.
func (m *Machine[S, E]) Can(event E) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.transitions[m.current][event]
	return ok
}

// Fire moves the machine along the edge defined for the current state and event.
// Lookup and state change happen under one lock, so of two concurrent Fire calls
// for the same edge exactly one succeeds.
func (m *Machine[S, E]) Fire(event E) (Transition[S, E], error) {
	m.mu.Lock()
	from := m.current
	to, ok := m.transitions[from][event]
	if !ok {
		m.mu.Unlock()
		return Transition[S, E]{}, &NoTransitionError{State: fmt.Sprint(from), Event: fmt.Sprint(event)}
	}
	m.current = to
	listeners := m.snapshotListeners()
	m.mu.Unlock()

	t := Transition[S, E]{From: from, Event: event, To: to}
	for _, l := range listeners {
		l(t)
	}
	return t, nil
}

// Subscribe registers a listener and returns a function removing it.
// Listeners run synchronously on the goroutine that fired the event.
func (m *Machine[S, E]) Subscribe(l Listener[S, E]) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// caller holds m.mu
func (m *Machine[S, E]) snapshotListeners() []Listener[S, E] {
	if len(m.listeners) == 0 {
		return nil
	}
	out := make([]Listener[S, E], 0, len(m.listeners))
	for _, l := range m.listeners {
		out = append(out, l)
	}
	return out
}
