// Package shaper clips a live window to a silhouette and keeps it above
// other windows.
package shaper

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Miyukiichan/lofi-buddy/internal/silhouette"
)

// Handle is a native window identifier (an X11 window id or an HWND).
type Handle uintptr

var (
	// ErrUnsupported means the platform or display has no window shaping.
	ErrUnsupported = errors.New("shaper: window shaping not supported")
	// ErrWindowNotFound means no native window with the title exists yet.
	ErrWindowNotFound = errors.New("shaper: window not found")
)

// Backend is one platform's window clipping facility. Apply must either
// install the whole region or leave the previous one untouched.
type Backend interface {
	Find(title string) (Handle, error)
	Apply(h Handle, r silhouette.Region) error
	Raise(h Handle) error
	Close() error
}

// retryTicks is how many ApplyShape calls to wait between window lookups.
const retryTicks = 15

// Shaper applies silhouettes to the window titled title. It skips regions
// identical to the one already installed.
type Shaper struct {
	backend Backend
	title   string
	log     *slog.Logger

	handle    Handle
	wait      int // calls left before the next lookup
	lookupErr error
	current   *silhouette.Region
	failing   bool // inside a streak of failures, already logged
}

// New returns a shaper over backend.
func New(backend Backend, title string, log *slog.Logger) *Shaper {
	return &Shaper{backend: backend, title: title, log: log}
}

// ApplyShape installs r as the window's visible area. It reports false when
// the shape could not be installed; the previous shape, or the plain
// rectangle before the first success, then stays in effect.
func (s *Shaper) ApplyShape(r silhouette.Region) bool {
	if s.current != nil && s.current.Equal(r) {
		return true
	}
	h, err := s.window()
	if err == nil {
		err = s.backend.Apply(h, r)
	}
	if err != nil {
		s.fail("apply window shape", err)
		return false
	}
	if s.failing {
		s.log.Info("window shaping recovered")
		s.failing = false
	}
	s.current = &r
	return true
}

// BringToFront asks for the window to be topmost without taking focus.
// It does nothing until ApplyShape has found the window. Failures are
// logged at debug level only.
func (s *Shaper) BringToFront() {
	if s.handle == 0 {
		return
	}
	if err := s.backend.Raise(s.handle); err != nil {
		s.log.Debug("raise window failed", "error", err)
	}
}

// Reset forgets the installed shape so the next ApplyShape always reaches
// the backend.
func (s *Shaper) Reset() {
	s.current = nil
}

// Close releases the backend.
func (s *Shaper) Close() error {
	return s.backend.Close()
}

func (s *Shaper) window() (Handle, error) {
	if s.handle != 0 {
		return s.handle, nil
	}
	if s.wait > 0 {
		s.wait--
		return 0, s.lookupErr
	}
	h, err := s.backend.Find(s.title)
	if err != nil {
		s.wait = retryTicks
		s.lookupErr = fmt.Errorf("find %q: %w", s.title, err)
		return 0, s.lookupErr
	}
	s.log.Debug("found native window", "title", s.title, "handle", uint64(h))
	s.handle = h
	return h, nil
}

func (s *Shaper) fail(what string, err error) {
	if errors.Is(err, ErrWindowNotFound) {
		// the window is usually just not mapped yet
		s.log.Debug(what, "error", err)
		return
	}
	if s.failing {
		return
	}
	s.failing = true
	s.log.Warn(what, "error", err)
}
