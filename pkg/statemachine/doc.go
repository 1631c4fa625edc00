// Package statemachine provides a small, generic finite state machine.
//
// States and events are any comparable types, typically string enums owned by
// the caller. Transitions are stored as a nested map [from][event] -> to and
// every read or change of the current state is guarded by a mutex, so Fire
// doubles as an atomic check-and-set: when two goroutines fire the same event
// only one of them observes the transition.
//
//	type state string
//	type event string
//
//	m := statemachine.MustNew[state, event]("idle",
//	    statemachine.WithTransitions(
//	        statemachine.Transition[state, event]{From: "idle", Event: "start", To: "busy"},
//	        statemachine.Transition[state, event]{From: "busy", Event: "done", To: "idle"},
//	    ),
//	)
//
//	if _, err := m.Fire("start"); statemachine.IsNoTransition(err) {
//	    // not idle, drop the request
//	}
//
// Listeners registered with Subscribe or WithListener are invoked after the
// state has changed, outside the lock, in no particular order.
package statemachine
