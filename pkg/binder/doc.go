// Package binder fills request structs from path and query parameters.
//
//	type AnswerRequest struct {
//		PromptID uuid.UUID `path:"promptID"`
//		Choice   int       `query:"choice"`
//	}
//
//	r.Post("/prompts/{promptID}", handler.Wrap(answer,
//		handler.WithBinders[handler.Context, AnswerRequest](
//			binder.Path(chi.URLParam),
//			binder.Query(),
//		),
//	))
//
// Fields are matched by tag, or by lowercased field name when untagged.
// Supported types are strings, integers, booleans, slices and pointers of
// those, and anything implementing encoding.TextUnmarshaler.
package binder
