// Package logging builds the application's slog loggers. Records are
// written as "time - name - LEVEL - message key=value" lines, colored per
// level on terminals and optionally duplicated to a plain log file.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"algo-visualizer/internal/config"

	"github.com/muesli/termenv"
)

// TimeFormat is the timestamp layout of every line.
const TimeFormat = "2006-01-02 15:04:05"

// ParseLevel maps a config level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// LevelName returns the upper-case name printed for l.
func LevelName(l slog.Level) string {
	switch {
	case l < slog.LevelInfo:
		return "DEBUG"
	case l < slog.LevelWarn:
		return "INFO"
	case l < slog.LevelError:
		return "WARNING"
	default:
		return "ERROR"
	}
}

// Sink is one destination of a Handler.
type Sink struct {
	W     io.Writer
	Color bool
}

// Handler is a slog.Handler writing the line format to one or more sinks.
type Handler struct {
	mu     *sync.Mutex
	name   string
	level  slog.Leveler
	sinks  []sink
	attrs  []slog.Attr
	groups []string
}

type sink struct {
	w   io.Writer
	out *termenv.Output
}

// NewHandler returns a handler for the named logger. Sinks with Color set
// get ANSI colors; others are written plain.
func NewHandler(name string, level slog.Leveler, sinks ...Sink) *Handler {
	h := &Handler{mu: &sync.Mutex{}, name: name, level: level}
	for _, s := range sinks {
		var out *termenv.Output
		if s.Color {
			out = termenv.NewOutput(s.W, termenv.WithProfile(termenv.ANSI))
		}
		h.sinks = append(h.sinks, sink{w: s.W, out: out})
	}
	return h
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	t := r.Time
	if t.IsZero() {
		t = time.Now()
	}

	var b strings.Builder
	b.WriteString(t.Format(TimeFormat))
	b.WriteString(" - ")
	b.WriteString(h.name)
	b.WriteString(" - ")
	b.WriteString(LevelName(r.Level))
	b.WriteString(" - ")
	b.WriteString(r.Message)

	prefix := strings.Join(h.groups, ".")
	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, prefix, a)
		return true
	})
	line := b.String()

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.sinks {
		text := line
		if s.out != nil {
			text = colorize(s.out, r.Level, line)
		}
		if _, err := io.WriteString(s.w, text+"\n"); err != nil {
			return fmt.Errorf("failed to write log record: %w", err)
		}
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := h.clone()
	prefix := strings.Join(h.groups, ".")
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}
		h2.attrs = append(h2.attrs, a)
	}
	return h2
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.groups = append(h2.groups, name)
	return h2
}

func (h *Handler) clone() *Handler {
	h2 := *h
	h2.attrs = append([]slog.Attr(nil), h.attrs...)
	h2.groups = append([]string(nil), h.groups...)
	return &h2
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(b, key, ga)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	v := a.Value.String()
	if strings.ContainsAny(v, " \t\n\"=") || v == "" {
		v = strconv.Quote(v)
	}
	b.WriteString(v)
}

func colorize(out *termenv.Output, l slog.Level, line string) string {
	style := out.String(line)
	switch {
	case l < slog.LevelInfo:
		style = style.Foreground(termenv.ANSICyan)
	case l < slog.LevelWarn:
		style = style.Foreground(termenv.ANSIGreen)
	case l < slog.LevelError:
		style = style.Foreground(termenv.ANSIYellow)
	default:
		style = style.Foreground(termenv.ANSIRed).Bold()
	}
	return style.String()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the logger described by cfg. The returned closer releases the
// log file, if one was opened. cfg.FilePath is used as given.
func New(cfg config.Log, name string) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	color := cfg.Color && termenv.NewOutput(os.Stderr).Profile != termenv.Ascii
	sinks := []Sink{{W: os.Stderr, Color: color}}

	var closer io.Closer = nopCloser{}
	if cfg.ToFile {
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		sinks = append(sinks, Sink{W: f})
		closer = f
	}

	return slog.New(NewHandler(name, level, sinks...)), closer, nil
}
