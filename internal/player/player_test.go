package player

import (
	"errors"
	"testing"
)

func TestDecoderFor(t *testing.T) {
	for _, path := range []string{"a.mp3", "dir/B.MP3", "c.ogg", "d.wav"} {
		if _, err := decoderFor(path); err != nil {
			t.Errorf("decoderFor(%q): %v", path, err)
		}
	}
	for _, path := range []string{"notes.txt", "noext", "song.flac"} {
		if _, err := decoderFor(path); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("decoderFor(%q) err = %v, want ErrUnsupportedFormat", path, err)
		}
	}
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{Stopped: "stopped", Playing: "playing", Paused: "paused"}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", s, got, want)
		}
	}
}

func TestZeroTrackIsStopped(t *testing.T) {
	var tr EbitenTrack
	tr.Play()
	tr.Pause()
	if tr.Status() != Stopped {
		t.Fatalf("Status = %v, want stopped", tr.Status())
	}
}
