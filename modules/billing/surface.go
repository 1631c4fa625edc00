package billing

import (
	"context"

	"github.com/dmitrymomot/billingpanel/handler"
	"github.com/dmitrymomot/billingpanel/pkg/logger"
	"github.com/dmitrymomot/billingpanel/pkg/panel"
	"github.com/dmitrymomot/billingpanel/pkg/prompt"
)

type outboxKey struct{}

// withOutbox routes the patches produced during an edit to the stream of the
// request that started it.
func withOutbox(ctx context.Context, out chan<- handler.TemplPatch) context.Context {
	return context.WithValue(ctx, outboxKey{}, out)
}

// surface shows prompts, alerts and dialogs on the stream found in the context.
type surface struct {
	broker   *prompt.Broker
	views    Views
	basePath string
	t        panel.Localizer
}

var (
	_ panel.Prompter = (*surface)(nil)
	_ panel.Alerter  = (*surface)(nil)
	_ panel.Dialogs  = (*surface)(nil)
)

func (s *surface) push(ctx context.Context, p handler.TemplPatch) error {
	out, ok := ctx.Value(outboxKey{}).(chan<- handler.TemplPatch)
	if !ok {
		return ErrNoStream
	}
	select {
	case out <- p:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Choose opens a prompt, shows it and waits for the answer that arrives on a
// separate request. A closed stream dismisses it.
func (s *surface) Choose(ctx context.Context, title string, options []string) (int, bool, error) {
	p, err := s.broker.Open(title, options)
	if err != nil {
		return 0, false, err
	}

	view := s.views.Prompt(PromptParams{Prompt: p.Prompt, BasePath: s.basePath, T: s.t})
	if err := s.push(ctx, handler.Patch(view, handler.WithTarget("#"+PromptID))); err != nil {
		_ = s.broker.Dismiss(p.ID)
		return 0, false, err
	}

	index, ok := p.Await(ctx)
	if ctx.Err() == nil {
		_ = s.push(ctx, handler.Patch(s.views.EmptyPrompt(), handler.WithTarget("#"+PromptID)))
	}
	return index, ok, nil
}

func (s *surface) Alert(ctx context.Context, message string, kind panel.AlertKind) error {
	view := s.views.Toast(ToastParams{Message: message, Kind: kind})
	return s.push(ctx, handler.Patch(view,
		handler.WithTarget("#"+ToastsID),
		handler.WithPatchMode(handler.PatchAppend),
	))
}

func (s *surface) ShowUpdatePlan(ctx context.Context, org *panel.Org) error {
	name := ""
	if org != nil {
		name = org.Name
	}
	view := s.views.Dialog(DialogParams{Kind: DialogUpdatePlan, OrgName: name, T: s.t})
	return s.push(ctx, handler.Patch(view, handler.WithTarget("#"+DialogID)))
}

func (s *surface) ShowPremium(ctx context.Context) error {
	view := s.views.Dialog(DialogParams{Kind: DialogPremium, T: s.t})
	return s.push(ctx, handler.Patch(view, handler.WithTarget("#"+DialogID)))
}

// logPushError is used where a failed push only means the client went away.
func logPushError(ctx context.Context, s *Service, err error) {
	if err != nil && ctx.Err() == nil {
		s.logger.WarnContext(ctx, "failed to send patch", logger.Error(err))
	}
}
