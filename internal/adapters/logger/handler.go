package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/siftlab/sift/internal/ui/output"
	"github.com/siftlab/sift/internal/ui/style"
)

// PrettyHandler is a custom slog.Handler that produces human-readable,
// colored output using the shared UI components. Attributes are rendered
// faint after the message so scenario output stays readable next to log
// metadata.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
// The Leveler from opts is consulted on every record, so a shared LevelVar
// changes verbosity without rebuilding the handler.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	prefix, color, faint := decorate(r.Level)

	msg := r.Message
	if prefix != "" {
		msg = prefix + " " + msg
	}

	styled := h.out.String(msg).Foreground(color)
	if faint {
		styled = styled.Faint()
	}

	line := styled.String()
	if attrs := h.renderAttrs(r); attrs != "" {
		line += " " + h.out.String(attrs).Faint().String()
	}

	_, err := h.out.WriteString(line + "\n")
	return err
}

// decorate maps a log level to its message prefix and color. Debug records
// are dimmed so verbose tracing stays visually behind scenario output.
func decorate(level slog.Level) (prefix string, color termenv.Color, faint bool) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, termenv.RGBColor(string(style.Red)), false
	case level >= slog.LevelWarn:
		return style.Warning, termenv.RGBColor(string(style.Yellow)), false
	case level <= slog.LevelDebug:
		return "", termenv.RGBColor(string(style.Slate)), true
	default:
		return "", termenv.RGBColor(string(style.Slate)), false
	}
}

//nolint:gocritic // slog.Record is passed by value per the handler contract
func (h *PrettyHandler) renderAttrs(r slog.Record) string {
	if len(h.attrs) == 0 && r.NumAttrs() == 0 {
		return ""
	}

	var b strings.Builder
	for _, attr := range h.attrs {
		appendAttr(&b, h.group, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		appendAttr(&b, h.group, attr)
		return true
	})
	return b.String()
}

// appendAttr writes key=value, quoting values that would otherwise split on
// whitespace, such as git command lines.
func appendAttr(b *strings.Builder, group string, attr slog.Attr) {
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	if group != "" {
		b.WriteString(group)
		b.WriteByte('.')
	}
	b.WriteString(attr.Key)
	b.WriteByte('=')

	value := attr.Value.String()
	if strings.ContainsAny(value, " \t") {
		value = strconv.Quote(value)
	}
	b.WriteString(value)
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)

	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: newAttrs,
		group: h.group,
	}
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: name,
	}
}
