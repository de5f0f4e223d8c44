//go:build windows

package shaper

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/Miyukiichan/lofi-buddy/internal/silhouette"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procFindWindowW   = user32.NewProc("FindWindowW")
	procSetWindowRgn  = user32.NewProc("SetWindowRgn")
	procSetWindowPos  = user32.NewProc("SetWindowPos")
	procCreateRectRgn = gdi32.NewProc("CreateRectRgn")
	procCombineRgn    = gdi32.NewProc("CombineRgn")
	procDeleteObject  = gdi32.NewProc("DeleteObject")
)

const (
	rgnOr = 2
	// CombineRgn result on failure
	rgnError = 0

	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoActivate = 0x0010
)

// HWND_TOPMOST
var hwndTopmost = ^uintptr(0)

// NewPlatform returns the Win32 region backend.
func NewPlatform() Backend {
	return win32Backend{}
}

type win32Backend struct{}

func (win32Backend) Find(title string) (Handle, error) {
	if err := procFindWindowW.Find(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	name, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, err
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(name)))
	if hwnd == 0 {
		return 0, fmt.Errorf("%w: %q", ErrWindowNotFound, title)
	}
	return Handle(hwnd), nil
}

// Apply builds the whole region as a union of rectangles first and hands it
// to the window in one SetWindowRgn call.
func (win32Backend) Apply(h Handle, r silhouette.Region) error {
	if err := procSetWindowRgn.Find(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	rgn, _, err := procCreateRectRgn.Call(0, 0, 0, 0)
	if rgn == 0 {
		return fmt.Errorf("CreateRectRgn: %w", err)
	}
	for _, rc := range r.Rects() {
		part, _, err := procCreateRectRgn.Call(uintptr(rc.Min.X), uintptr(rc.Min.Y), uintptr(rc.Max.X), uintptr(rc.Max.Y))
		if part == 0 {
			procDeleteObject.Call(rgn)
			return fmt.Errorf("CreateRectRgn: %w", err)
		}
		res, _, err := procCombineRgn.Call(rgn, rgn, part, rgnOr)
		procDeleteObject.Call(part)
		if res == rgnError {
			procDeleteObject.Call(rgn)
			return fmt.Errorf("CombineRgn: %w", err)
		}
	}
	// on success the window owns rgn
	ok, _, err := procSetWindowRgn.Call(uintptr(h), rgn, 1)
	if ok == 0 {
		procDeleteObject.Call(rgn)
		return fmt.Errorf("SetWindowRgn: %w", err)
	}
	return nil
}

func (win32Backend) Raise(h Handle) error {
	ok, _, err := procSetWindowPos.Call(uintptr(h), hwndTopmost, 0, 0, 0, 0, swpNoMove|swpNoSize|swpNoActivate)
	if ok == 0 {
		return fmt.Errorf("SetWindowPos: %w", err)
	}
	return nil
}

func (win32Backend) Close() error { return nil }
