package statemachine

import "fmt"

// Option configures a machine during construction.
type Option[S, E comparable] func(*Machine[S, E]) error

// WithTransitions adds several edges at once.
func WithTransitions[S, E comparable](transitions ...Transition[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		for i, t := range transitions {
			if err := m.addTransition(t); err != nil {
				return fmt.Errorf("transition[%d] %v->%v on %v: %w", i, t.From, t.To, t.Event, err)
			}
		}
		return nil
	}
}

// WithListener registers a listener for the lifetime of the machine.
func WithListener[S, E comparable](l Listener[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		if l != nil {
			m.Subscribe(l)
		}
		return nil
	}
}
