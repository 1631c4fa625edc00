// Package handler turns typed handler functions into http.HandlerFunc values
// and renders templ components either as plain HTML or as DataStar SSE patches.
//
// A handler receives a Context and a request struct filled by binders, and
// returns a Response:
//
//	func (s *Service) panel(ctx handler.Context, req OwnerRequest) handler.Response {
//		return handler.TemplPartial(views.Card(facts), views.Page(facts),
//			handler.WithTarget("#billing-panel"))
//	}
//
// Long-lived streams use SSE, which keeps the connection open for the
// lifetime of the StreamHandler.
package handler
