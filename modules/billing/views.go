package billing

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/dmitrymomot/billingpanel/handler"
	"github.com/dmitrymomot/billingpanel/pkg/i18n"
	"github.com/dmitrymomot/billingpanel/pkg/panel"
	"github.com/dmitrymomot/billingpanel/pkg/prompt"
)

// Element IDs patched by the event streams.
const (
	PanelID  = "billing-panel"
	PromptID = "prompt"
	DialogID = "dialog"
	ToastsID = "toasts"
)

// CardParams renders the panel itself.
type CardParams struct {
	OwnerID   uuid.UUID
	OwnerName string
	BasePath  string
	Facts     panel.Facts
	State     panel.State
	T         panel.Localizer
}

// PageParams renders a full page around the card.
type PageParams struct {
	Card CardParams
	Lang string
}

// OwnerSummary is one row of the owner index.
type OwnerSummary struct {
	ID       uuid.UUID
	Name     string
	Kind     string
	PlanName string
}

type IndexParams struct {
	Owners   []OwnerSummary
	BasePath string
	Lang     string
	T        panel.Localizer
}

type PromptParams struct {
	Prompt   prompt.Prompt
	BasePath string
	T        panel.Localizer
}

type ToastParams struct {
	Message string
	Kind    panel.AlertKind
}

// DialogKind selects the flow a dialog starts.
type DialogKind string

const (
	DialogUpdatePlan DialogKind = "update_plan"
	DialogPremium    DialogKind = "premium"
)

type DialogParams struct {
	Kind    DialogKind
	OrgName string
	T       panel.Localizer
}

// Views are the components the module renders. Any of them can be replaced;
// DefaultViews provides plain markup driven by DataStar attributes.
type Views struct {
	Page        func(PageParams) templ.Component
	Index       func(IndexParams) templ.Component
	Card        func(CardParams) templ.Component
	Prompt      func(PromptParams) templ.Component
	EmptyPrompt func() templ.Component
	Toast       func(ToastParams) templ.Component
	Dialog      func(DialogParams) templ.Component
	ErrorPage   func(handler.ErrorPageParams) templ.Component
	ErrorToast  func(handler.ErrorToastParams) templ.Component
}

// DefaultViews returns the built-in components. Error views are translated
// with t in the request language.
func DefaultViews(t *i18n.Translator) Views {
	return Views{
		Page:        pageView,
		Index:       indexView,
		Card:        cardView,
		Prompt:      promptView,
		EmptyPrompt: emptyPromptView,
		Toast:       toastView,
		Dialog:      dialogView,
		ErrorPage:   errorPageView(t),
		ErrorToast:  errorToastView(t),
	}
}

// withDefaults fills the views left nil.
func (v Views) withDefaults(t *i18n.Translator) Views {
	d := DefaultViews(t)
	if v.Page == nil {
		v.Page = d.Page
	}
	if v.Index == nil {
		v.Index = d.Index
	}
	if v.Card == nil {
		v.Card = d.Card
	}
	if v.Prompt == nil {
		v.Prompt = d.Prompt
	}
	if v.EmptyPrompt == nil {
		v.EmptyPrompt = d.EmptyPrompt
	}
	if v.Toast == nil {
		v.Toast = d.Toast
	}
	if v.Dialog == nil {
		v.Dialog = d.Dialog
	}
	if v.ErrorPage == nil {
		v.ErrorPage = d.ErrorPage
	}
	if v.ErrorToast == nil {
		v.ErrorToast = d.ErrorToast
	}
	return v
}

// markup collects the first write error so views read top to bottom.
type markup struct {
	w   io.Writer
	err error
}

func (m *markup) raw(s string) {
	if m.err == nil {
		_, m.err = io.WriteString(m.w, s)
	}
}

func (m *markup) printf(format string, args ...any) {
	if m.err == nil {
		_, m.err = fmt.Fprintf(m.w, format, args...)
	}
}

func esc(s string) string { return templ.EscapeString(s) }

func component(fn func(ctx context.Context, m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{w: w}
		fn(ctx, m)
		return m.err
	})
}

var resourceIcons = map[panel.Resource]string{
	panel.ResourceMembers: "members",
	panel.ResourceGroups:  "group",
	panel.ResourceVaults:  "vaults",
	panel.ResourceStorage: "storage",
	panel.ResourceItems:   "list",
}

var badgeIcons = map[panel.BadgeKind]string{
	panel.BadgeCanceling:     "time",
	panel.BadgeCanceled:      "error",
	panel.BadgePaymentFailed: "error",
	panel.BadgeTrialing:      "time",
}

func warningAttr(on bool) string {
	if on {
		return " data-warning"
	}
	return ""
}

func tile(m *markup, class, icon, label string, warning bool) {
	m.printf(`<div class="%s"%s><span class="icon icon-%s"></span><div class="label">%s</div></div>`,
		class, warningAttr(warning), icon, esc(label))
}

func cardView(p CardParams) templ.Component {
	return component(func(_ context.Context, m *markup) {
		state := p.State
		if state == "" {
			state = panel.StateIdle
		}
		m.printf(`<section id="%s" class="billing-panel" data-state="%s">`, PanelID, state)
		m.printf(`<div class="plan-name">%s</div>`, esc(p.Facts.PlanName))

		m.raw(`<div class="quota">`)
		for _, item := range p.Facts.Quota {
			tile(m, "quota-item quota-"+string(item.Resource), resourceIcons[item.Resource], item.Label, item.Warning)
		}
		tile(m, "quota-item quota-cost", "dollar", p.Facts.Cost.Label, false)
		if b := p.Facts.Status; b.Shown() {
			tile(m, "quota-item badge badge-"+string(b.Kind), badgeIcons[b.Kind], b.Label, b.Warning)
		}
		m.raw(`</div>`)

		action := fmt.Sprintf(`@post('%s/%s/edit')`, p.BasePath, p.OwnerID)
		switch p.Facts.Affordance {
		case panel.AffordanceGoPremium:
			m.printf(`<button class="premium-button primary" data-on:click="%s">%s</button>`,
				esc(action), esc(p.T.T(panel.MsgGoPremium)))
		default:
			m.printf(`<button id="edit-button" class="edit-button state-%s" aria-label="%s" aria-busy="%t" data-on:click="%s"><span class="icon icon-edit"></span></button>`,
				state, esc(p.T.T("billing.edit")), state == panel.StateBusy, esc(action))
		}
		m.raw(`</section>`)
	})
}

func head(m *markup, lang, title string) {
	m.printf(`<!doctype html><html lang="%s"><head><meta charset="utf-8"><title>%s</title>`, esc(lang), esc(title))
	m.raw(`<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"></script>`)
	m.raw(`</head><body>`)
}

func pageView(p PageParams) templ.Component {
	return component(func(ctx context.Context, m *markup) {
		head(m, p.Lang, p.Card.T.T("billing.title")+" · "+p.Card.OwnerName)
		m.printf(`<main data-init="@get('%s/%s/watch')">`, esc(p.Card.BasePath), p.Card.OwnerID)
		m.printf(`<h1>%s</h1>`, esc(p.Card.OwnerName))
		if err := cardView(p.Card).Render(ctx, m.w); err != nil && m.err == nil {
			m.err = err
		}
		m.printf(`<div id="%s"></div><div id="%s"></div><div id="%s" aria-live="polite"></div>`, PromptID, DialogID, ToastsID)
		m.raw(`</main></body></html>`)
	})
}

func indexView(p IndexParams) templ.Component {
	return component(func(_ context.Context, m *markup) {
		head(m, p.Lang, p.T.T("billing.owners"))
		m.printf(`<main><h1>%s</h1><ul class="owners">`, esc(p.T.T("billing.owners")))
		for _, o := range p.Owners {
			m.printf(`<li><a href="%s/%s">%s</a> <span class="kind">%s</span> <span class="plan">%s</span></li>`,
				esc(p.BasePath), o.ID, esc(o.Name), esc(p.T.T("billing.kind."+o.Kind)), esc(o.PlanName))
		}
		m.raw(`</ul></main></body></html>`)
	})
}

func promptView(p PromptParams) templ.Component {
	return component(func(_ context.Context, m *markup) {
		m.printf(`<div id="%s" class="prompt" role="dialog">`, PromptID)
		if p.Prompt.Title != "" {
			m.printf(`<p class="prompt-title">%s</p>`, esc(p.Prompt.Title))
		}
		for i, opt := range p.Prompt.Options {
			action := fmt.Sprintf(`@post('%s/prompts/%s?choice=%s')`, p.BasePath, p.Prompt.ID, strconv.Itoa(i))
			m.printf(`<button class="prompt-option" data-on:click="%s">%s</button>`, esc(action), esc(opt))
		}
		dismiss := fmt.Sprintf(`@delete('%s/prompts/%s')`, p.BasePath, p.Prompt.ID)
		m.printf(`<button class="prompt-dismiss" data-on:click="%s">%s</button>`, esc(dismiss), esc(p.T.T("billing.dismiss")))
		m.raw(`</div>`)
	})
}

func emptyPromptView() templ.Component {
	return component(func(_ context.Context, m *markup) {
		m.printf(`<div id="%s"></div>`, PromptID)
	})
}

func toastView(p ToastParams) templ.Component {
	return component(func(_ context.Context, m *markup) {
		m.printf(`<div class="toast toast-%s" role="alert">%s</div>`, esc(string(p.Kind)), esc(p.Message))
	})
}

func dialogView(p DialogParams) templ.Component {
	return component(func(_ context.Context, m *markup) {
		m.printf(`<div id="%s" class="dialog dialog-%s" role="dialog">`, DialogID, p.Kind)
		switch p.Kind {
		case DialogUpdatePlan:
			m.printf(`<h2>%s</h2><p>%s</p>`,
				esc(p.T.T("billing.dialog.update_plan", "org", p.OrgName)),
				esc(p.T.T("billing.dialog.update_plan_body")))
		case DialogPremium:
			m.printf(`<h2>%s</h2><p>%s</p>`,
				esc(p.T.T("billing.dialog.premium")),
				esc(p.T.T("billing.dialog.premium_body")))
		}
		m.raw(`</div>`)
	})
}

func errorText(ctx context.Context, t *i18n.Translator, key string) string {
	if t == nil {
		return key
	}
	return t.T(i18n.GetLocale(ctx), "errors."+key)
}

func errorPageView(t *i18n.Translator) func(handler.ErrorPageParams) templ.Component {
	return func(p handler.ErrorPageParams) templ.Component {
		return component(func(ctx context.Context, m *markup) {
			head(m, i18n.GetLocale(ctx), strconv.Itoa(p.StatusCode))
			m.printf(`<main class="error"><h1>%d</h1><p>%s</p>`, p.StatusCode, esc(errorText(ctx, t, p.Error)))
			if p.RequestID != "" {
				m.printf(`<p class="request-id">%s</p>`, esc(p.RequestID))
			}
			m.raw(`</main></body></html>`)
		})
	}
}

func errorToastView(t *i18n.Translator) func(handler.ErrorToastParams) templ.Component {
	return func(p handler.ErrorToastParams) templ.Component {
		return component(func(ctx context.Context, m *markup) {
			m.printf(`<div class="toast toast-%s" role="alert">%s</div>`, esc(p.Type), esc(errorText(ctx, t, p.Message)))
		})
	}
}
