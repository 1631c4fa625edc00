package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// TemplOption controls where and how a component is patched into the page.
type TemplOption = datastar.PatchElementOption

// WithTarget sets the CSS selector of the patched element.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// TemplPatch is a component with its own patch options.
type TemplPatch struct {
	Component templ.Component
	Options   []TemplOption
}

func Patch(component templ.Component, opts ...TemplOption) TemplPatch {
	return TemplPatch{Component: component, Options: opts}
}

type templResponse struct {
	partial templ.Component
	full    templ.Component
	options []TemplOption
}

// Render patches the partial over SSE for DataStar and writes the full page otherwise.
func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).PatchElementTempl(t.partial, t.options...)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.full.Render(r.Context(), w)
}

// Templ renders a component as HTML or as a DataStar patch.
func Templ(component templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: component, full: component, options: opts}
}

// TemplPartial sends partial to DataStar requests and full to everything else.
func TemplPartial(partial, full templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: partial, full: full, options: opts}
}

type templMultiResponse struct {
	patches []TemplPatch
}

func (t templMultiResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		for _, p := range t.patches {
			if err := sse.PatchElementTempl(p.Component, p.Options...); err != nil {
				return err
			}
		}
		return nil
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	for _, p := range t.patches {
		if err := p.Component.Render(r.Context(), w); err != nil {
			return err
		}
	}
	return nil
}

// TemplMulti sends every patch, or concatenates the components for plain HTML.
func TemplMulti(patches ...TemplPatch) Response {
	return templMultiResponse{patches: patches}
}
