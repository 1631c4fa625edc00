package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/billingpanel/handler"
	"github.com/dmitrymomot/billingpanel/pkg/i18n"
	"github.com/dmitrymomot/billingpanel/pkg/logger"
	"github.com/dmitrymomot/billingpanel/pkg/panel"
)

// OwnerRequest addresses one owner's panel.
type OwnerRequest struct {
	OwnerID uuid.UUID `path:"ownerID"`
}

// AnswerRequest answers or dismisses an open prompt.
type AnswerRequest struct {
	PromptID uuid.UUID `path:"promptID"`
	Choice   *int      `query:"choice"`
}

func (s *Service) index(ctx handler.Context, _ struct{}) handler.Response {
	lang := i18n.GetLocale(ctx)
	owners := s.store.Owners(ctx)
	rows := make([]OwnerSummary, 0, len(owners))
	for _, o := range owners {
		rows = append(rows, OwnerSummary{
			ID:       o.OwnerID(),
			Name:     ownerName(o),
			Kind:     string(o.OwnerKind()),
			PlanName: panel.Derive(o, panel.SubscriptionOf(o), s.now()).PlanName,
		})
	}
	return handler.Templ(s.views.Index(IndexParams{
		Owners:   rows,
		BasePath: s.basePath,
		Lang:     lang,
		T:        s.translator.Printer(lang),
	}))
}

// show renders the whole page, or just the card for DataStar requests.
func (s *Service) show(ctx handler.Context, req OwnerRequest) handler.Response {
	owner, sess, err := s.resolve(ctx, req.OwnerID)
	if err != nil {
		return handler.Fail(err)
	}
	card := s.cardParams(owner, sess, sess.panel.State())
	return handler.TemplPartial(
		s.views.Card(card),
		s.views.Page(PageParams{Card: card, Lang: i18n.GetLocale(ctx)}),
		handler.WithTarget("#"+PanelID),
	)
}

// watch streams the card on every owner change and indicator transition.
func (s *Service) watch(ctx handler.Context, req OwnerRequest) handler.Response {
	owner, sess, err := s.resolve(ctx, req.OwnerID)
	if err != nil {
		return handler.Fail(err)
	}

	return handler.SSE(func(stream handler.StreamContext) error {
		changes := s.store.Watch(stream, owner.OwnerID())
		states, unwatch := watchStates(sess.panel)
		defer unwatch()

		send := func(state panel.State) error {
			p := s.cardPatch(stream, owner, sess, state)
			return stream.SendComponent(p.Component, p.Options...)
		}
		if err := send(sess.panel.State()); err != nil {
			return nil
		}
		for {
			select {
			case <-stream.Done():
				return nil
			case _, ok := <-changes:
				if !ok {
					return nil
				}
				if err := send(sess.panel.State()); err != nil {
					return nil
				}
			case st := <-states:
				if err := send(st); err != nil {
					return nil
				}
			}
		}
	})
}

// edit runs the edit flow and streams its prompt, dialogs, alerts and
// indicator states back on the same response.
func (s *Service) edit(ctx handler.Context, req OwnerRequest) handler.Response {
	owner, sess, err := s.resolve(ctx, req.OwnerID)
	if err != nil {
		return handler.Fail(err)
	}

	return handler.SSE(func(stream handler.StreamContext) error {
		log := s.logger.With(logger.Owner(string(owner.OwnerKind()), owner.OwnerID()))
		out := make(chan handler.TemplPatch, 4)
		states, unwatch := watchStates(sess.panel)
		defer unwatch()

		type outcome struct {
			res panel.EditResult
			err error
		}
		done := make(chan outcome, 1)
		go func() {
			res, err := sess.panel.Edit(withOutbox(stream, out), owner)
			done <- outcome{res: res, err: err}
		}()

		var sendErr error
		send := func(p handler.TemplPatch) {
			if sendErr == nil {
				sendErr = stream.SendComponent(p.Component, p.Options...)
			}
		}

		for {
			select {
			case p := <-out:
				send(p)
			case st := <-states:
				send(s.cardPatch(stream, owner, sess, st))
			case o := <-done:
				drain(out, send)
				drain(states, func(st panel.State) { send(s.cardPatch(stream, owner, sess, st)) })
				if o.err != nil && stream.Err() == nil {
					log.ErrorContext(stream, "edit failed", logger.Error(o.err))
					send(handler.Patch(
						s.views.Toast(ToastParams{Message: sess.printer.T(panel.MsgGenericError), Kind: panel.AlertWarning}),
						handler.WithTarget("#"+ToastsID),
						handler.WithPatchMode(handler.PatchAppend),
					))
				}
				log.DebugContext(stream, "edit finished",
					logger.Action(o.res.Action.Kind.String()),
					logger.State(string(sess.panel.State())),
				)
				send(s.cardPatch(stream, owner, sess, sess.panel.State()))
				logPushError(stream, s, sendErr)
				return nil
			}
		}
	})
}

func (s *Service) answer(ctx handler.Context, req AnswerRequest) handler.Response {
	if req.Choice == nil {
		return handler.Fail(handler.ErrBadRequest)
	}
	if err := s.broker.Answer(req.PromptID, *req.Choice); err != nil {
		return handler.Fail(httpError(err))
	}
	return handler.Empty()
}

func (s *Service) dismiss(ctx handler.Context, req AnswerRequest) handler.Response {
	if err := s.broker.Dismiss(req.PromptID); err != nil {
		return handler.Fail(httpError(err))
	}
	return handler.Empty()
}

func (s *Service) resolve(ctx context.Context, id uuid.UUID) (panel.Owner, *session, error) {
	owner, err := s.store.Owner(ctx, id)
	if err != nil {
		return nil, nil, httpError(err)
	}
	sess, err := s.session(owner.OwnerID(), i18n.GetLocale(ctx))
	if err != nil {
		return nil, nil, err
	}
	return owner, sess, nil
}

// watchStates forwards indicator transitions into a buffered channel. Sends
// never block, so a late transition after the stream ended is simply dropped.
func watchStates(p *panel.Panel) (<-chan panel.State, func()) {
	ch := make(chan panel.State, 4)
	cancel := p.Watch(func(st panel.State) {
		select {
		case ch <- st:
		default:
		}
	})
	return ch, cancel
}

// drain hands over whatever is already buffered in ch.
func drain[T any](ch <-chan T, fn func(T)) {
	for {
		select {
		case v := <-ch:
			fn(v)
		default:
			return
		}
	}
}
