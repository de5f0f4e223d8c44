// Package dialog runs native file pickers off the frame loop and shows
// notifications.
package dialog

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/ncruces/zenity"
)

// Filter restricts a file chooser to matching patterns such as "*.mp3".
type Filter struct {
	Name     string
	Patterns []string
}

// Result is what a file chooser delivers. A cancelled dialog yields no paths
// and no error.
type Result struct {
	Paths []string
	Err   error
}

// Future is a single-slot hand-off between a dialog worker and the frame
// loop: written once by the worker, read once by Poll.
type Future struct {
	ch   chan Result
	once sync.Once
}

// NewFuture returns an empty future.
func NewFuture() *Future {
	return &Future{ch: make(chan Result, 1)}
}

// Resolve deposits r. Only the first call has an effect and it never blocks.
func (f *Future) Resolve(r Result) {
	f.once.Do(func() { f.ch <- r })
}

// Poll returns the result if it has arrived. It never blocks, and reports
// true at most once.
func (f *Future) Poll() (Result, bool) {
	select {
	case r := <-f.ch:
		return r, true
	default:
		return Result{}, false
	}
}

// Chooser starts asynchronous file selections.
type Chooser interface {
	ChooseFiles(title string, filter Filter) *Future
}

// Notifier shows a message to the user without blocking the caller.
type Notifier interface {
	Notify(title, message string)
}

// Zenity shows the platform's native dialogs.
type Zenity struct {
	Log *slog.Logger
}

// ChooseFiles opens a multi-select file dialog on its own goroutine.
func (z Zenity) ChooseFiles(title string, filter Filter) *Future {
	f := NewFuture()
	go func() {
		paths, err := zenity.SelectFileMultiple(
			zenity.Title(title),
			zenity.FileFilters{{Name: filter.Name, Patterns: filter.Patterns, CaseFold: true}},
		)
		if errors.Is(err, zenity.ErrCanceled) {
			paths, err = nil, nil
		}
		f.Resolve(Result{Paths: paths, Err: err})
	}()
	return f
}

// Notify pops an error message box on its own goroutine.
func (z Zenity) Notify(title, message string) {
	go func() {
		if err := zenity.Error(message, zenity.Title(title), zenity.ErrorIcon); err != nil && z.Log != nil {
			z.Log.Warn("notification failed", "title", title, "error", err)
		}
	}()
}
