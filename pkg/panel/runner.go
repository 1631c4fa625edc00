package panel

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/billingpanel/pkg/logger"
	"github.com/dmitrymomot/billingpanel/pkg/statemachine"
)

// State is the visual state of the edit affordance.
type State string

const (
	StateIdle    State = "idle"
	StateBusy    State = "busy"
	StateSuccess State = "success"
	StateFail    State = "fail"
)

type runnerEvent string

const (
	eventStart   runnerEvent = "start"
	eventResolve runnerEvent = "resolve"
	eventReject  runnerEvent = "reject"
	eventRevert  runnerEvent = "revert"
)

var runnerTransitions = []statemachine.Transition[State, runnerEvent]{
	{From: StateIdle, Event: eventStart, To: StateBusy},
	{From: StateBusy, Event: eventResolve, To: StateSuccess},
	{From: StateBusy, Event: eventReject, To: StateFail},
	{From: StateSuccess, Event: eventRevert, To: StateIdle},
	{From: StateFail, Event: eventRevert, To: StateIdle},
}

// ActionFunc is a billing mutation guarded by a Runner.
type ActionFunc func(ctx context.Context) error

// Result describes what a Run call did.
type Result struct {
	// Accepted is false when the runner was not idle and the action was dropped.
	Accepted bool
	// Err is the action's error. It has already been shown to the user.
	Err error
}

// Runner guarantees at most one action in flight and drives the
// idle -> busy -> success|fail -> idle indicator.
type Runner struct {
	machine   *statemachine.Machine[State, runnerEvent]
	alerter   Alerter
	localizer Localizer
	scheduler Scheduler
	interval  time.Duration
	logger    *slog.Logger

	mu         sync.Mutex
	stopRevert func() bool
	closed     bool
}

// NewRunner creates a Runner reporting failures through alerter.
func NewRunner(alerter Alerter, opts ...Option) (*Runner, error) {
	if alerter == nil {
		return nil, ErrNilAlerter
	}
	o := newOptions(opts)
	machine, err := statemachine.New(StateIdle, statemachine.WithTransitions(runnerTransitions...))
	if err != nil {
		return nil, err
	}
	return &Runner{
		machine:   machine,
		alerter:   alerter,
		localizer: o.localizer,
		scheduler: o.scheduler,
		interval:  o.cfg.FeedbackInterval,
		logger:    o.logger.With(logger.Component("panel.runner")),
	}, nil
}

// State returns the current indicator state.
func (r *Runner) State() State {
	return r.machine.Current()
}

// Watch calls fn with the new state after every change. The returned function stops watching.
func (r *Runner) Watch(fn func(State)) (cancel func()) {
	return r.machine.Subscribe(func(t statemachine.Transition[State, runnerEvent]) {
		fn(t.To)
	})
}

// Run executes fn when the runner is idle. In any other state, or after
// Close, the call is dropped without error and fn is not invoked.
// A failing fn moves the runner to fail and the error message is alerted.
func (r *Runner) Run(ctx context.Context, fn ActionFunc) Result {
	if err := r.start(); err != nil {
		r.logger.DebugContext(ctx, "action dropped", logger.State(string(r.State())), logger.Error(err))
		return Result{}
	}

	err := fn(ctx)
	if err == nil {
		r.fire(ctx, eventResolve)
		r.scheduleRevert()
		return Result{Accepted: true}
	}

	r.fire(ctx, eventReject)
	r.scheduleRevert()

	r.logger.WarnContext(ctx, "action failed", logger.Error(err))
	if aerr := r.alerter.Alert(ctx, r.alertMessage(err), AlertWarning); aerr != nil {
		r.logger.ErrorContext(ctx, "failed to show alert", logger.Error(aerr))
	}
	return Result{Accepted: true, Err: err}
}

// Close stops accepting new actions and cancels a pending revert.
// A finished indicator returns to idle at once. An action still in flight
// keeps the runner busy until it completes, then reverts without delay.
func (r *Runner) Close() {
	r.mu.Lock()
	r.closed = true
	if r.stopRevert != nil {
		r.stopRevert()
		r.stopRevert = nil
	}
	r.mu.Unlock()
	// Only valid from success or fail.
	_, _ = r.machine.Fire(eventRevert)
}

// start moves the runner to busy. It holds mu so Close cannot slip in between
// the closed check and the transition.
func (r *Runner) start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return errRunnerClosed
	}
	_, err := r.machine.Fire(eventStart)
	return err
}

func (r *Runner) fire(ctx context.Context, ev runnerEvent) {
	if _, err := r.machine.Fire(ev); err != nil {
		r.logger.ErrorContext(ctx, "unexpected runner transition", logger.Error(err))
	}
}

func (r *Runner) scheduleRevert() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		_, _ = r.machine.Fire(eventRevert)
		return
	}
	r.stopRevert = r.scheduler.AfterFunc(r.interval, func() {
		// Close may have reverted already.
		_, _ = r.machine.Fire(eventRevert)
	})
	r.mu.Unlock()
}

type userMessager interface {
	UserMessage() string
}

// alertMessage prefers an explicit user-facing message, then the error text,
// then the generic fallback.
func (r *Runner) alertMessage(err error) string {
	var um userMessager
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return r.localizer.T(MsgGenericError)
}
