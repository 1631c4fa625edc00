package panel

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/billingpanel/pkg/logger"
)

// ActionKind is the billing operation selected for an edit gesture.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionCancel
	ActionResume
	ActionUpdatePlan
	ActionGoPremium
)

func (k ActionKind) String() string {
	switch k {
	case ActionCancel:
		return "cancel"
	case ActionResume:
		return "resume"
	case ActionUpdatePlan:
		return "update_plan"
	case ActionGoPremium:
		return "go_premium"
	default:
		return "none"
	}
}

// Action is the outcome of choosing. Org is set for ActionUpdatePlan.
type Action struct {
	Kind ActionKind
	Org  *Org
}

// Chooser resolves an edit gesture to an Action, prompting when there is more than one way to go.
type Chooser struct {
	prompter  Prompter
	localizer Localizer
	metrics   *Metrics
	logger    *slog.Logger
}

// NewChooser creates a Chooser that asks through prompter.
func NewChooser(prompter Prompter, opts ...Option) (*Chooser, error) {
	if prompter == nil {
		return nil, ErrNilPrompter
	}
	o := newOptions(opts)
	return &Chooser{
		prompter:  prompter,
		localizer: o.localizer,
		metrics:   o.metrics,
		logger:    o.logger.With(logger.Component("panel.chooser")),
	}, nil
}

// Options returns the prompt options offered for owner, or nil when no prompt is needed.
func (c *Chooser) Options(owner Owner) []string {
	sub := SubscriptionOf(owner)
	if sub == nil {
		return nil
	}

	first := c.localizer.T(MsgCancelSubscription)
	if sub.Canceled() {
		first = c.localizer.T(MsgResumeSubscription)
	}

	switch owner.(type) {
	case *Org:
		return []string{first, c.localizer.T(MsgUpdatePlan)}
	case *Account:
		if sub.Plan.IsFree() {
			return nil
		}
		return []string{first}
	default:
		return nil
	}
}

// Choose selects the action for owner. Missing subscriptions and free accounts
// resolve to a dialog directly; otherwise the user is prompted.
// A dismissed prompt yields ActionNone.
func (c *Chooser) Choose(ctx context.Context, owner Owner) (Action, error) {
	sub := SubscriptionOf(owner)

	switch o := owner.(type) {
	case *Org:
		if sub == nil {
			return Action{Kind: ActionUpdatePlan, Org: o}, nil
		}
	case *Account:
		if sub == nil || sub.Plan.IsFree() {
			return Action{Kind: ActionGoPremium}, nil
		}
	default:
		return Action{}, ErrNilOwner
	}

	options := c.Options(owner)
	index, ok, err := c.prompter.Choose(ctx, "", options)
	if err != nil {
		return Action{}, fmt.Errorf("prompt: %w", err)
	}
	if !ok {
		c.metrics.prompt(PromptDismissed)
		c.logger.DebugContext(ctx, "prompt dismissed")
		return Action{Kind: ActionNone}, nil
	}
	c.metrics.prompt(PromptChosen)

	switch index {
	case 0:
		if sub.Canceled() {
			return Action{Kind: ActionResume}, nil
		}
		return Action{Kind: ActionCancel}, nil
	case 1:
		if org, isOrg := owner.(*Org); isOrg {
			return Action{Kind: ActionUpdatePlan, Org: org}, nil
		}
	}
	return Action{}, fmt.Errorf("%w: %d of %d", ErrInvalidIndex, index, len(options))
}
