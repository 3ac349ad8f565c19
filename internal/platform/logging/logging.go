package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"talentcrm/internal/requestctx"
)

// New builds the process logger. format is "json" or "text"; unknown levels
// fall back to info.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(operationHandler{Handler: handler})
}

func parseLevel(level string) slog.Level {
	var parsed slog.Level
	if err := parsed.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return parsed
}

// operationHandler stamps records with the operation id carried by the context.
type operationHandler struct {
	slog.Handler
}

func (h operationHandler) Handle(ctx context.Context, record slog.Record) error {
	if id := requestctx.GetOperationID(ctx); id != "" {
		record.AddAttrs(slog.String("operationId", id))
	}
	return h.Handler.Handle(ctx, record)
}

func (h operationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return operationHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h operationHandler) WithGroup(name string) slog.Handler {
	return operationHandler{Handler: h.Handler.WithGroup(name)}
}
