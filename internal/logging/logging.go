// Package logging holds the process logger shared by every component.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/gogpu/gg"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var (
	loggerPtr atomic.Pointer[slog.Logger]
	levelVar  slog.LevelVar
)

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// ParseLevel maps debug/info/warn/error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

// Setup installs a text logger writing to w at level and shares it with the
// gg rasterizer.
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	levelVar.Set(level)
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: &levelVar}))
	Set(l)
	return l
}

// SetLevel changes the level of the logger installed by Setup.
func SetLevel(level slog.Level) {
	levelVar.Set(level)
}

// Set replaces the process logger. nil silences logging.
func Set(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
	gg.SetLogger(l)
}

// Logger returns the process logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// For returns the process logger tagged with a component name.
func For(component string) *slog.Logger {
	return Logger().With("component", component)
}
