package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under the key "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Owner records the billing owner as a group {kind, id}.
func Owner(kind string, id any) slog.Attr {
	return Group("owner", slog.String("kind", kind), slog.Any("id", id))
}

// Action records the panel action name under the key "action".
func Action(name string) slog.Attr {
	return slog.String("action", name)
}

// State records a runner state under the key "state".
func State(name string) slog.Attr {
	return slog.String("state", name)
}

// PromptID records the prompt identifier under the key "prompt_id".
func PromptID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("prompt_id", id)
}

// Provider records the billing provider name under the key "provider".
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}

// Channel records a pub/sub channel under the key "channel".
func Channel(name string) slog.Attr {
	return slog.String("channel", name)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
