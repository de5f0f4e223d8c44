package session

import "slices"

// Playlist is an ordered list of track paths and the position of the
// current one. The index always points into Tracks unless Tracks is empty.
type Playlist struct {
	Tracks []string
	Index  int
}

// NewPlaylist starts at the first of tracks.
func NewPlaylist(tracks []string) Playlist {
	return Playlist{Tracks: slices.Clone(tracks)}
}

// Len returns the number of tracks.
func (p Playlist) Len() int { return len(p.Tracks) }

// Current returns the track at the index.
func (p Playlist) Current() (string, bool) {
	if len(p.Tracks) == 0 {
		return "", false
	}
	return p.Tracks[p.Index], true
}

// Advance moves to the next track, wrapping to the first past the end.
func (p *Playlist) Advance() {
	if len(p.Tracks) == 0 {
		return
	}
	p.Index = (p.Index + 1) % len(p.Tracks)
}

// Clone returns a copy that shares nothing with p.
func (p Playlist) Clone() Playlist {
	return Playlist{Tracks: slices.Clone(p.Tracks), Index: p.Index}
}
