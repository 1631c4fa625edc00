// Package prompt implements a request/response exchange for choices that are
// asked in one HTTP request and answered in another.
//
// The asking side opens a prompt, renders it and waits:
//
//	p, err := broker.Open("", []string{"Cancel Subscription", "Update Plan"})
//	// render p.ID and p.Options to the client
//	index, ok := p.Await(ctx)
//
// The answering side settles it by ID with Answer or Dismiss. A prompt is
// settled exactly once; later calls report ErrPromptNotFound. When the
// waiting context ends first the prompt counts as dismissed.
package prompt
