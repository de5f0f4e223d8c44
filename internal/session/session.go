// Package session is the pet's interaction state machine. It owns the UI
// mode, the playlist and the in-flight file selection, and is driven from the
// frame loop: HandleClick for pointer input and Tick once per frame.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Miyukiichan/lofi-buddy/internal/dialog"
	"github.com/Miyukiichan/lofi-buddy/internal/entity"
	"github.com/Miyukiichan/lofi-buddy/internal/player"
)

// Mode is the UI mode. Exactly one is active at a time.
type Mode int

const (
	Idle Mode = iota
	MenuOpen
	FileDialogPending
	SettingsOpen
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case MenuOpen:
		return "menu-open"
	case FileDialogPending:
		return "file-dialog-pending"
	case SettingsOpen:
		return "settings-open"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Button is a mouse button.
type Button int

const (
	Left Button = iota
	Right
)

// Click is a mouse press in window coordinates.
type Click struct {
	Button Button
	X, Y   int
}

// Names of the menu button sprites.
const (
	ButtonPlaylist = "playlist"
	ButtonSettings = "settings"
	ButtonQuit     = "quit"
)

// ErrQuit is returned by HandleClick when the user asked to leave.
var ErrQuit = errors.New("session: quit requested")

// SecondaryWindow is a window the session opens on demand and polls once per
// tick until it reports itself closed.
type SecondaryWindow interface {
	Open()
	Contains(x, y int) bool
	Click(x, y int)
	Poll() (closed bool)
}

// Deps are the collaborators the machine drives.
type Deps struct {
	Track    player.Track
	Chooser  dialog.Chooser
	Notifier dialog.Notifier
	Settings SecondaryWindow
	Filter   dialog.Filter
	Log      *slog.Logger
}

// Machine is the session state machine. All methods must be called from the
// frame loop goroutine.
type Machine struct {
	pet *entity.Pet
	Deps

	mode     Mode
	playlist Playlist
	pending  *dialog.Future // set only in FileDialogPending

	failures  int  // consecutive tracks that failed to open
	exhausted bool // every track failed, auto-advance is off
	closed    bool
}

// New returns an idle machine for pet.
func New(pet *entity.Pet, deps Deps) *Machine {
	if deps.Log == nil {
		deps.Log = slog.New(slog.DiscardHandler)
	}
	return &Machine{pet: pet, Deps: deps}
}

// Start loads tracks as the playlist and plays the first. A startup track
// that cannot be opened is fatal to the caller.
func (m *Machine) Start(tracks []string) error {
	m.playlist = NewPlaylist(tracks)
	path, ok := m.playlist.Current()
	if !ok {
		return nil
	}
	if err := m.Track.Open(path); err != nil {
		return fmt.Errorf("open startup track %s: %w", path, err)
	}
	m.Track.Play()
	m.Log.Info("playing", "track", path)
	return nil
}

// Mode returns the current UI mode.
func (m *Machine) Mode() Mode { return m.mode }

// Playlist returns a copy of the playlist.
func (m *Machine) Playlist() Playlist { return m.playlist.Clone() }

// Status returns the transport status.
func (m *Machine) Status() player.Status { return m.Track.Status() }

// NowPlaying names the current track while it is playing or paused.
func (m *Machine) NowPlaying() string {
	path, ok := m.playlist.Current()
	if !ok || m.Track.Status() == player.Stopped {
		return ""
	}
	return filepath.Base(path)
}

// Interactive reports whether the main window reacts to the pointer.
func (m *Machine) Interactive() bool {
	return !m.closed && (m.mode == Idle || m.mode == MenuOpen)
}

// VisibleSets lists the sprite sets to draw, bottom to top.
func (m *Machine) VisibleSets() []entity.SetName {
	switch m.mode {
	case MenuOpen:
		return []entity.SetName{entity.SetAlways, entity.SetMenuOverlay, entity.SetMenuButtons}
	case SettingsOpen:
		return []entity.SetName{entity.SetAlways, entity.SetSettings}
	default:
		return []entity.SetName{entity.SetAlways}
	}
}

// HandleClick feeds one mouse press into the machine.
func (m *Machine) HandleClick(c Click) error {
	if m.closed {
		return nil
	}
	switch m.mode {
	case FileDialogPending:
		return nil
	case SettingsOpen:
		if c.Button == Left && m.Settings.Contains(c.X, c.Y) {
			m.Settings.Click(c.X, c.Y)
		}
		return nil
	}

	s, ok := m.pet.Hit(c.X, c.Y, m.VisibleSets()...)
	if !ok {
		return nil
	}
	if s.Name == m.pet.Primary {
		switch c.Button {
		case Right:
			if m.mode == Idle {
				m.setMode(MenuOpen)
			} else {
				m.setMode(Idle)
			}
		case Left:
			m.togglePlayback()
		}
		return nil
	}
	if m.mode != MenuOpen || c.Button != Left {
		return nil
	}
	switch s.Name {
	case ButtonPlaylist:
		m.pending = m.Chooser.ChooseFiles("Choose tracks", m.Filter)
		m.setMode(FileDialogPending)
	case ButtonSettings:
		if m.Settings == nil {
			return nil
		}
		m.Settings.Open()
		m.setMode(SettingsOpen)
	case ButtonQuit:
		m.Log.Info("quit requested")
		return ErrQuit
	}
	return nil
}

// Tick runs once per frame: it applies a finished file selection, polls the
// settings window and advances the playlist when the track has stopped.
func (m *Machine) Tick() {
	if m.closed {
		return
	}
	m.pollSelection()
	if m.mode == SettingsOpen && m.Settings.Poll() {
		m.setMode(Idle)
	}
	m.checkCompletion()
}

// Close ends the session. A file selection still in flight is abandoned and
// its result is never applied.
func (m *Machine) Close() {
	m.closed = true
	m.pending = nil
}

func (m *Machine) setMode(to Mode) {
	if to == m.mode {
		return
	}
	m.Log.Debug("mode change", "from", m.mode, "to", to)
	m.mode = to
}

func (m *Machine) togglePlayback() {
	if m.Track.Status() == player.Playing {
		m.Track.Pause()
		return
	}
	m.Track.Play()
	m.failures, m.exhausted = 0, false
}

func (m *Machine) pollSelection() {
	if m.mode != FileDialogPending {
		return
	}
	res, ok := m.pending.Poll()
	if !ok {
		return
	}
	m.pending = nil
	m.setMode(Idle)

	if res.Err != nil {
		m.Log.Warn("file selection failed", "error", res.Err)
		m.Notifier.Notify("Playlist", fmt.Sprintf("Could not choose files: %v", res.Err))
		return
	}
	if len(res.Paths) == 0 {
		m.Log.Debug("file selection cancelled")
		return
	}
	next := NewPlaylist(res.Paths)
	path, _ := next.Current()
	if !m.play(path) {
		return
	}
	m.playlist = next
	m.failures, m.exhausted = 0, false
	m.Log.Info("playlist replaced", "tracks", len(res.Paths))
}

func (m *Machine) checkCompletion() {
	if m.playlist.Len() == 0 || m.exhausted || m.Track.Status() != player.Stopped {
		return
	}
	m.playlist.Advance()
	path, _ := m.playlist.Current()
	if m.play(path) {
		m.failures = 0
		return
	}
	m.failures++
	if m.failures < m.playlist.Len() {
		return
	}
	m.exhausted = true
	m.Log.Warn("no track in the playlist could be opened, stopping")
}

// play opens path and starts it. A failure is reported to the user and
// leaves the previous track untouched.
func (m *Machine) play(path string) bool {
	if err := m.Track.Open(path); err != nil {
		m.Log.Warn("cannot open track", "track", path, "error", err)
		m.Notifier.Notify("Playback", fmt.Sprintf("Could not play %s: %v", filepath.Base(path), err))
		return false
	}
	m.Track.Play()
	m.Log.Info("playing", "track", path)
	return true
}
