// Package player plays one audio track at a time.
package player

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// SampleRate is the rate every decoded track is resampled to.
const SampleRate = 44100

// Status is the transport state of the current track.
type Status int

const (
	Stopped Status = iota
	Playing
	Paused
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// ErrUnsupportedFormat is returned by Open for file types no decoder handles.
var ErrUnsupportedFormat = errors.New("player: unsupported audio format")

// Track is a single playable audio source.
type Track interface {
	// Open replaces the current track. On error the previous track, and its
	// status, are left untouched.
	Open(path string) error
	Play()
	Pause()
	Status() Status
}

type decodeFunc func(sampleRate int, src io.ReadSeeker) (io.ReadSeeker, error)

var decoders = map[string]decodeFunc{
	".mp3": func(sr int, src io.ReadSeeker) (io.ReadSeeker, error) { return mp3.DecodeWithSampleRate(sr, src) },
	".ogg": func(sr int, src io.ReadSeeker) (io.ReadSeeker, error) { return vorbis.DecodeWithSampleRate(sr, src) },
	".wav": func(sr int, src io.ReadSeeker) (io.ReadSeeker, error) { return wav.DecodeWithSampleRate(sr, src) },
}

func decoderFor(path string) (decodeFunc, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return dec, nil
}

// Extensions lists the file extensions Open accepts, for file dialog filters.
func Extensions() []string {
	return []string{"*.mp3", "*.ogg", "*.wav"}
}

// EbitenTrack streams a file through an ebiten audio context.
type EbitenTrack struct {
	ctx    *audio.Context
	player *audio.Player
	file   *os.File
	paused bool
}

// NewEbitenTrack creates the process-wide audio context. Only one may exist.
func NewEbitenTrack() *EbitenTrack {
	return &EbitenTrack{ctx: audio.NewContext(SampleRate)}
}

// Open decodes path and makes it the current track, stopped at its start.
func (t *EbitenTrack) Open(path string) error {
	dec, err := decoderFor(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open track: %w", err)
	}
	stream, err := dec(SampleRate, f)
	if err != nil {
		f.Close()
		return fmt.Errorf("decode track %s: %w", path, err)
	}
	p, err := t.ctx.NewPlayer(stream)
	if err != nil {
		f.Close()
		return fmt.Errorf("create player for %s: %w", path, err)
	}

	t.release()
	t.player, t.file, t.paused = p, f, false
	return nil
}

func (t *EbitenTrack) Play() {
	if t.player == nil {
		return
	}
	if !t.paused && !t.player.IsPlaying() {
		// a finished track starts over
		if err := t.player.Rewind(); err != nil {
			return
		}
	}
	t.paused = false
	t.player.Play()
}

func (t *EbitenTrack) Pause() {
	if t.player == nil || !t.player.IsPlaying() {
		return
	}
	t.player.Pause()
	t.paused = true
}

func (t *EbitenTrack) Status() Status {
	switch {
	case t.player == nil:
		return Stopped
	case t.paused:
		return Paused
	case t.player.IsPlaying():
		return Playing
	default:
		return Stopped
	}
}

// Close releases the current track.
func (t *EbitenTrack) Close() error {
	t.release()
	return nil
}

func (t *EbitenTrack) release() {
	if t.player != nil {
		t.player.Close()
		t.player = nil
	}
	if t.file != nil {
		t.file.Close()
		t.file = nil
	}
}
