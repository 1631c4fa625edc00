package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// StreamHandler runs for the lifetime of an SSE connection.
type StreamHandler func(stream StreamContext) error

// StreamContext is a Context with an open DataStar event stream.
type StreamContext interface {
	Context
	SendComponent(component templ.Component, opts ...TemplOption) error
	SendMultiple(patches ...TemplPatch) error
	SendSignals(signals map[string]any) error
}

type streamContext struct {
	Context
	sse *datastar.ServerSentEventGenerator
}

func (c *streamContext) SendComponent(component templ.Component, opts ...TemplOption) error {
	return c.sse.PatchElementTempl(component, opts...)
}

func (c *streamContext) SendMultiple(patches ...TemplPatch) error {
	for _, p := range patches {
		if err := c.sse.PatchElementTempl(p.Component, p.Options...); err != nil {
			return err
		}
	}
	return nil
}

func (c *streamContext) SendSignals(signals map[string]any) error {
	return c.sse.MarshalAndPatchSignals(signals)
}

type sseResponse struct {
	handler StreamHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, "sse_requires_datastar")
	}
	base := NewContext(w, r)
	sse := base.SSE()
	if sse == nil {
		return ErrSSENotInitialized
	}
	return s.handler(&streamContext{Context: base, sse: sse})
}

// SSE keeps the connection open and hands it to h until h returns.
func SSE(h StreamHandler) Response {
	return sseResponse{handler: h}
}
