package panel

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/billingpanel/pkg/logger"
)

// Deps are the collaborators a Panel needs.
type Deps struct {
	Updater  Updater
	Prompter Prompter
	Alerter  Alerter
	Dialogs  Dialogs
}

// EditResult reports how an edit gesture ended.
type EditResult struct {
	Action Action
	// Accepted is false when the gesture was dropped because an action was in flight.
	Accepted bool
	// Err is the mutation error, already alerted to the user.
	Err error
}

// Panel is one billing panel instance: display facts plus a single guarded edit control.
type Panel struct {
	deriver    *Deriver
	chooser    *Chooser
	runner     *Runner
	dispatcher *Dispatcher
	dialogs    Dialogs
	metrics    *Metrics
	logger     *slog.Logger

	mutationTimeout time.Duration
}

// New creates a panel. All dependencies are required.
func New(deps Deps, opts ...Option) (*Panel, error) {
	if deps.Dialogs == nil {
		return nil, ErrNilDialogs
	}
	o := newOptions(opts)

	dispatcher, err := NewDispatcher(deps.Updater)
	if err != nil {
		return nil, err
	}
	chooser, err := NewChooser(deps.Prompter, opts...)
	if err != nil {
		return nil, err
	}
	runner, err := NewRunner(deps.Alerter, opts...)
	if err != nil {
		return nil, err
	}

	return &Panel{
		deriver:    NewDeriver(o.cfg, o.localizer),
		chooser:    chooser,
		runner:     runner,
		dispatcher: dispatcher,
		dialogs:    deps.Dialogs,
		metrics:    o.metrics,
		logger:     o.logger.With(logger.Component("panel")),

		mutationTimeout: o.cfg.MutationTimeout,
	}, nil
}

// Facts derives what the panel shows for owner at now.
func (p *Panel) Facts(owner Owner, now time.Time) Facts {
	return p.deriver.Derive(owner, SubscriptionOf(owner), now)
}

// State returns the edit affordance state.
func (p *Panel) State() State {
	return p.runner.State()
}

// Watch observes edit affordance state changes.
func (p *Panel) Watch(fn func(State)) (cancel func()) {
	return p.runner.Watch(fn)
}

// Close cancels a pending indicator revert. Later edits are dropped.
func (p *Panel) Close() {
	p.runner.Close()
}

// Edit handles a tap on the edit affordance. Taps while an action is in
// flight are dropped before any prompt is shown. The returned error reports
// prompt or dialog failures; mutation failures are alerted and carried in EditResult.Err.
func (p *Panel) Edit(ctx context.Context, owner Owner) (EditResult, error) {
	if owner == nil {
		return EditResult{}, ErrNilOwner
	}
	log := p.logger.With(logger.Owner(string(owner.OwnerKind()), owner.OwnerID()))

	if p.runner.State() != StateIdle {
		p.metrics.action(ActionNone, OutcomeDropped)
		log.DebugContext(ctx, "edit dropped", logger.State(string(p.runner.State())))
		return EditResult{}, nil
	}

	action, err := p.chooser.Choose(ctx, owner)
	if err != nil {
		return EditResult{}, err
	}
	log = log.With(logger.Action(action.Kind.String()))

	switch action.Kind {
	case ActionNone:
		return EditResult{Action: action}, nil

	case ActionUpdatePlan:
		if err := p.dialogs.ShowUpdatePlan(ctx, action.Org); err != nil {
			p.metrics.action(action.Kind, OutcomeFailed)
			return EditResult{Action: action}, err
		}
		p.metrics.action(action.Kind, OutcomeSucceeded)
		return EditResult{Action: action, Accepted: true}, nil

	case ActionGoPremium:
		if err := p.dialogs.ShowPremium(ctx); err != nil {
			p.metrics.action(action.Kind, OutcomeFailed)
			return EditResult{Action: action}, err
		}
		p.metrics.action(action.Kind, OutcomeSucceeded)
		return EditResult{Action: action, Accepted: true}, nil

	case ActionCancel, ActionResume:
		cancel := action.Kind == ActionCancel
		res := p.runner.Run(ctx, func(ctx context.Context) error {
			mctx, release := p.mutationContext(ctx)
			defer release()
			return p.dispatcher.SetCancel(mctx, owner, cancel)
		})
		switch {
		case !res.Accepted:
			p.metrics.action(action.Kind, OutcomeDropped)
		case res.Err != nil:
			p.metrics.action(action.Kind, OutcomeFailed)
		default:
			p.metrics.action(action.Kind, OutcomeSucceeded)
			log.InfoContext(ctx, "billing updated")
		}
		return EditResult{Action: action, Accepted: res.Accepted, Err: res.Err}, nil
	}

	return EditResult{Action: action}, nil
}

// mutationContext detaches a mutation from the caller: once started it is not
// cancellable and only MutationTimeout bounds it.
func (p *Panel) mutationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if p.mutationTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.mutationTimeout)
}
