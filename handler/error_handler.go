package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/billingpanel/pkg/logger"
	"github.com/dmitrymomot/billingpanel/pkg/requestid"
)

// ErrorPageParams are passed to the error page component.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
}

// ErrorToastParams are passed to the toast component.
type ErrorToastParams struct {
	Message   string
	Type      string // "error" or "warning"
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	ErrorPage   func(ErrorPageParams) templ.Component
	ErrorToast  func(ErrorToastParams) templ.Component
	ToastTarget string // default "#toasts"
}

type errorInfo struct {
	status  int
	message string
}

func classifyError(err error) errorInfo {
	info := errorInfo{
		status:  http.StatusInternalServerError,
		message: ErrInternalServerError.Key,
	}
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.status = httpErr.Code
		info.message = httpErr.Key
	}
	return info
}

// NewErrorHandler returns an error handler that renders a toast for DataStar
// requests and an error page for everything else.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toasts"
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		reqID := requestid.FromContext(r.Context())
		info := classifyError(err)

		level := slog.LevelError
		kind := "error"
		if info.status < http.StatusInternalServerError {
			level = slog.LevelWarn
			kind = "warning"
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(reqID),
			logger.Error(err),
			slog.Int("status_code", info.status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if IsDataStar(r) && cfg.ErrorToast != nil {
			toast := cfg.ErrorToast(ErrorToastParams{Message: info.message, Type: kind, RequestID: reqID})
			resp := Templ(toast, WithTarget(cfg.ToastTarget), WithPatchMode(PatchAppend))
			if rerr := resp.Render(ctx.ResponseWriter(), r); rerr != nil {
				log.ErrorContext(r.Context(), "failed to render error toast", logger.Error(rerr))
			}
			return
		}

		if cfg.ErrorPage == nil {
			http.Error(ctx.ResponseWriter(), info.message, info.status)
			return
		}
		ctx.ResponseWriter().Header().Set("Content-Type", "text/html; charset=utf-8")
		ctx.ResponseWriter().WriteHeader(info.status)
		page := cfg.ErrorPage(ErrorPageParams{Error: info.message, StatusCode: info.status, RequestID: reqID})
		if rerr := page.Render(r.Context(), ctx.ResponseWriter()); rerr != nil {
			log.ErrorContext(r.Context(), "failed to render error page", logger.Error(rerr))
		}
	}
}
