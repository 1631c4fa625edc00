package billing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/billingpanel/handler"
	"github.com/dmitrymomot/billingpanel/pkg/binder"
	"github.com/dmitrymomot/billingpanel/pkg/i18n"
)

// Handle returns the module router. Mount it under the base path:
//
//	r.Mount("/billing", svc.Handle())
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(i18n.Middleware(s.translator))

	r.Get("/", handler.Wrap(s.index,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	r.Route("/{ownerID}", func(r chi.Router) {
		r.Get("/", s.ownerRoute(s.show))
		r.Get("/watch", s.ownerRoute(s.watch))
		r.Post("/edit", s.ownerRoute(s.edit))
	})

	r.Post("/prompts/{promptID}", handler.Wrap(s.answer,
		handler.WithBinders[handler.Context, AnswerRequest](binder.Path(chi.URLParam), binder.Query()),
		handler.WithErrorHandler[handler.Context, AnswerRequest](s.errorHandler),
	))
	r.Delete("/prompts/{promptID}", handler.Wrap(s.dismiss,
		handler.WithBinders[handler.Context, AnswerRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, AnswerRequest](s.errorHandler),
	))

	return r
}

func (s *Service) ownerRoute(h handler.HandlerFunc[handler.Context, OwnerRequest]) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, OwnerRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, OwnerRequest](s.errorHandler),
	)
}
