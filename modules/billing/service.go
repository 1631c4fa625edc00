package billing

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/billingpanel/handler"
	"github.com/dmitrymomot/billingpanel/pkg/i18n"
	"github.com/dmitrymomot/billingpanel/pkg/logger"
	"github.com/dmitrymomot/billingpanel/pkg/panel"
	"github.com/dmitrymomot/billingpanel/pkg/prompt"
	"github.com/dmitrymomot/billingpanel/svc/directory"
)

// Store reads owners, applies billing updates and announces changes.
// *directory.Directory implements it.
type Store interface {
	panel.Updater
	Owner(ctx context.Context, id uuid.UUID) (panel.Owner, error)
	Owners(ctx context.Context) []panel.Owner
	Watch(ctx context.Context, ownerID uuid.UUID) <-chan directory.Change
}

// Service serves billing panels over HTTP. It keeps one panel instance,
// and so one single-flight runner, per owner and language.
type Service struct {
	store        Store
	translator   *i18n.Translator
	broker       *prompt.Broker
	views        Views
	basePath     string
	panelOpts    []panel.Option
	logger       *slog.Logger
	now          func() time.Time
	errorHandler handler.ErrorHandler[handler.Context]

	mu       sync.Mutex
	sessions map[sessionKey]*session
	closed   bool
}

type sessionKey struct {
	ownerID uuid.UUID
	lang    string
}

type session struct {
	panel   *panel.Panel
	printer *i18n.Printer
}

// NewService creates the module. The translator supplies every label; see LoadTranslator.
func NewService(store Store, translator *i18n.Translator, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if translator == nil {
		return nil, ErrNilTranslator
	}
	s := &Service{
		store:      store,
		translator: translator,
		logger:     logger.Discard(),
		now:        time.Now,
		sessions:   make(map[sessionKey]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("billing.module"))
	s.views = s.views.withDefaults(translator)
	if s.broker == nil {
		s.broker = prompt.NewBroker(prompt.WithLogger(s.logger))
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.logger, handler.ErrorHandlerConfig{
			ErrorPage:   s.views.ErrorPage,
			ErrorToast:  s.views.ErrorToast,
			ToastTarget: "#" + ToastsID,
		})
	}
	return s, nil
}

// Broker exposes the prompt exchange, e.g. to answer prompts from tests or other transports.
func (s *Service) Broker() *prompt.Broker {
	return s.broker
}

// session returns the panel instance for owner in lang, creating it on first use.
func (s *Service) session(ownerID uuid.UUID, lang string) (*session, error) {
	key := sessionKey{ownerID: ownerID, lang: lang}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if sess, ok := s.sessions[key]; ok {
		return sess, nil
	}

	printer := s.translator.Printer(lang)
	surf := &surface{
		broker:   s.broker,
		views:    s.views,
		basePath: s.basePath,
		t:        printer,
	}
	opts := append([]panel.Option{}, s.panelOpts...)
	opts = append(opts, panel.WithLocalizer(printer), panel.WithLogger(s.logger))
	p, err := panel.New(panel.Deps{
		Updater:  s.store,
		Prompter: surf,
		Alerter:  surf,
		Dialogs:  surf,
	}, opts...)
	if err != nil {
		return nil, err
	}

	sess := &session{panel: p, printer: printer}
	s.sessions[key] = sess
	return sess, nil
}

// Close stops pending indicator reverts of every panel. Later requests fail with ErrClosed.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for key, sess := range s.sessions {
		sess.panel.Close()
		delete(s.sessions, key)
	}
	return nil
}

// Healthcheck fails once the service is closed, so readiness checks drop the
// instance while it drains.
func (s *Service) Healthcheck(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

func (s *Service) cardParams(owner panel.Owner, sess *session, state panel.State) CardParams {
	return CardParams{
		OwnerID:   owner.OwnerID(),
		OwnerName: ownerName(owner),
		BasePath:  s.basePath,
		Facts:     sess.panel.Facts(owner, s.now()),
		State:     state,
		T:         sess.printer,
	}
}

// cardPatch renders the panel from a fresh snapshot, falling back to last when the owner vanished.
func (s *Service) cardPatch(ctx context.Context, last panel.Owner, sess *session, state panel.State) handler.TemplPatch {
	owner := last
	if fresh, err := s.store.Owner(ctx, last.OwnerID()); err == nil {
		owner = fresh
	}
	return handler.Patch(s.views.Card(s.cardParams(owner, sess, state)), handler.WithTarget("#"+PanelID))
}

func ownerName(owner panel.Owner) string {
	switch o := owner.(type) {
	case *panel.Org:
		return o.Name
	case *panel.Account:
		return o.Email
	default:
		return owner.OwnerID().String()
	}
}

// httpError maps domain errors to HTTP errors, keeping the cause for the log.
func httpError(err error) error {
	switch {
	case errors.Is(err, directory.ErrOwnerNotFound), errors.Is(err, prompt.ErrPromptNotFound):
		return errors.Join(handler.ErrNotFound, err)
	case errors.Is(err, prompt.ErrInvalidChoice):
		return errors.Join(handler.ErrUnprocessableEntity, err)
	default:
		return err
	}
}
