package handler_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/billingpanel/handler"
	"github.com/dmitrymomot/billingpanel/pkg/logger"
)

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	cfg := handler.ErrorHandlerConfig{
		ErrorPage: func(p handler.ErrorPageParams) templ.Component {
			return html("<h1>" + p.Error + "</h1>")
		},
		ErrorToast: func(p handler.ErrorToastParams) templ.Component {
			return html(`<div class="toast ` + p.Type + `">` + p.Message + "</div>")
		},
	}

	t.Run("page for plain requests", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		eh := handler.NewErrorHandler(logger.New(logger.WithOutput(&buf)), cfg)

		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/x", nil)), handler.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "<h1>not_found</h1>", rec.Body.String())
		assert.Contains(t, buf.String(), `"level":"WARN"`)
	})

	t.Run("toast for datastar requests", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		eh := handler.NewErrorHandler(logger.New(logger.WithOutput(&buf)), cfg)

		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, dataStarRequest(http.MethodPost, "/x")), errors.New("boom"))

		body := rec.Body.String()
		assert.Contains(t, body, "#toasts")
		assert.Contains(t, body, `<div class="toast error">internal_server_error</div>`)
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
	})

	t.Run("falls back to plain text", func(t *testing.T) {
		t.Parallel()
		eh := handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{})
		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), handler.ErrConflict)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "conflict")
	})
}
