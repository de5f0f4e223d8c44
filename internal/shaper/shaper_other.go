//go:build !linux && !windows

package shaper

import "github.com/Miyukiichan/lofi-buddy/internal/silhouette"

// NewPlatform returns a backend that cannot shape; the window stays a
// transparent rectangle.
func NewPlatform() Backend {
	return unsupported{}
}

type unsupported struct{}

func (unsupported) Find(string) (Handle, error)           { return 0, ErrUnsupported }
func (unsupported) Apply(Handle, silhouette.Region) error { return ErrUnsupported }
func (unsupported) Raise(Handle) error                    { return ErrUnsupported }
func (unsupported) Close() error                          { return nil }
