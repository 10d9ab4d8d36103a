package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// privateKeys contains attribute keys whose values are always masked.
var privateKeys = map[string]bool{
	"notes":           true,
	"my_notes":        true,
	"caption":         true,
	"caption_text":    true,
	"owner_full_name": true,
	"annotation":      true,
}

// privateKeywords mask any key containing them.
var privateKeywords = []string{"note", "caption"}

// MaskValue is the string used to replace private values.
const MaskValue = "***PRIVATE***"

// MaxValueLength is the number of runes kept from a long string value.
const MaxValueLength = 200

// PrivateHandler wraps an slog.Handler to mask user-authored text.
// Any component that accepts *slog.Logger can log through it.
type PrivateHandler struct {
	// handler is the underlying slog handler that receives masked records.
	handler slog.Handler
}

// NewPrivateHandler creates a new PrivateHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewPrivateHandler(handler slog.Handler) *PrivateHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &PrivateHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrivateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it to the underlying handler.
func (h *PrivateHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})

	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are masked before being added.
func (h *PrivateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.maskAttr(a)
	}
	return &PrivateHandler{handler: h.handler.WithAttrs(masked)}
}

// WithGroup returns a new handler with the given group name.
func (h *PrivateHandler) WithGroup(name string) slog.Handler {
	return &PrivateHandler{handler: h.handler.WithGroup(name)}
}

// maskAttr masks a single attribute, recursively handling groups.
func (h *PrivateHandler) maskAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		masked := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			masked[i] = h.maskAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
	}

	if isPrivateKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, truncate(a.Value.String()))
	}

	return a
}

// isPrivateKey reports whether values under key hold user-authored text.
func isPrivateKey(key string) bool {
	key = strings.ToLower(key)
	if privateKeys[key] {
		return true
	}
	for _, keyword := range privateKeywords {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

// truncate shortens s to MaxValueLength runes, marking the cut with "...".
func truncate(s string) string {
	if utf8.RuneCountInString(s) <= MaxValueLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxValueLength]) + "..."
}

// NewLogger creates a text slog.Logger that masks private values.
// verbose selects the Debug level; otherwise only warnings and errors are
// logged.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewPrivateHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewJSONLogger is NewLogger with JSON output.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewPrivateHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
