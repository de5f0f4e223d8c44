//go:build linux

package shaper

import (
	"fmt"
	"os"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/shape"
	"github.com/jezek/xgb/xproto"

	"github.com/Miyukiichan/lofi-buddy/internal/silhouette"
)

// NewPlatform returns the X11 backend. The display connection is opened on
// first use.
func NewPlatform() Backend {
	return &x11Backend{}
}

type x11Backend struct {
	once    sync.Once
	conn    *xgb.Conn
	root    xproto.Window
	initErr error
	shapeOK bool

	atoms map[string]xproto.Atom
	above map[Handle]bool // _NET_WM_STATE_ABOVE already requested
}

func (b *x11Backend) init() error {
	b.once.Do(func() {
		conn, err := xgb.NewConn()
		if err != nil {
			b.initErr = fmt.Errorf("%w: connect to X display: %v", ErrUnsupported, err)
			return
		}
		b.conn = conn
		b.root = xproto.Setup(conn).DefaultScreen(conn).Root
		b.shapeOK = shape.Init(conn) == nil
		b.atoms = make(map[string]xproto.Atom)
		b.above = make(map[Handle]bool)
	})
	return b.initErr
}

func (b *x11Backend) atom(name string) (xproto.Atom, error) {
	if a, ok := b.atoms[name]; ok {
		return a, nil
	}
	reply, err := xproto.InternAtom(b.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern atom %s: %w", name, err)
	}
	b.atoms[name] = reply.Atom
	return reply.Atom, nil
}

// Find walks the window tree for a window whose WM_NAME or _NET_WM_NAME is
// title. Windows advertising a different _NET_WM_PID are skipped.
func (b *x11Backend) Find(title string) (Handle, error) {
	if err := b.init(); err != nil {
		return 0, err
	}
	netName, err := b.atom("_NET_WM_NAME")
	if err != nil {
		return 0, err
	}
	netPid, err := b.atom("_NET_WM_PID")
	if err != nil {
		return 0, err
	}
	pid := uint32(os.Getpid())

	queue := []xproto.Window{b.root}
	for len(queue) > 0 {
		w := queue[0]
		queue = queue[1:]
		if w != b.root && b.titled(w, title, netName) && b.ownedBy(w, pid, netPid) {
			return Handle(w), nil
		}
		tree, err := xproto.QueryTree(b.conn, w).Reply()
		if err != nil {
			// windows can vanish while we walk
			continue
		}
		queue = append(queue, tree.Children...)
	}
	return 0, fmt.Errorf("%w: %q", ErrWindowNotFound, title)
}

func (b *x11Backend) titled(w xproto.Window, title string, netName xproto.Atom) bool {
	for _, prop := range []xproto.Atom{netName, xproto.AtomWmName} {
		reply, err := xproto.GetProperty(b.conn, false, w, prop, xproto.GetPropertyTypeAny, 0, 1024).Reply()
		if err == nil && reply.Format == 8 && string(reply.Value) == title {
			return true
		}
	}
	return false
}

func (b *x11Backend) ownedBy(w xproto.Window, pid uint32, netPid xproto.Atom) bool {
	reply, err := xproto.GetProperty(b.conn, false, w, netPid, xproto.AtomCardinal, 0, 1).Reply()
	if err != nil || reply.Format != 32 || len(reply.Value) < 4 {
		// no pid advertised, trust the title
		return true
	}
	return xgb.Get32(reply.Value) == pid
}

// Apply replaces the bounding shape in a single ShapeRectangles request, so
// the server either installs all of it or none.
func (b *x11Backend) Apply(h Handle, r silhouette.Region) error {
	if err := b.init(); err != nil {
		return err
	}
	if !b.shapeOK {
		return fmt.Errorf("%w: X server lacks the SHAPE extension", ErrUnsupported)
	}
	rects := r.Rects()
	xrects := make([]xproto.Rectangle, len(rects))
	for i, rc := range rects {
		xrects[i] = xproto.Rectangle{
			X:      int16(rc.Min.X),
			Y:      int16(rc.Min.Y),
			Width:  uint16(rc.Dx()),
			Height: uint16(rc.Dy()),
		}
	}
	err := shape.RectanglesChecked(b.conn, shape.SoSet, shape.SkBounding, xproto.ClipOrderingUnsorted,
		xproto.Window(h), 0, 0, xrects).Check()
	if err != nil {
		return fmt.Errorf("shape rectangles: %w", err)
	}
	return nil
}

// Raise asks the window manager to keep the window above others, then
// restacks it. Neither request moves input focus.
func (b *x11Backend) Raise(h Handle) error {
	if err := b.init(); err != nil {
		return err
	}
	w := xproto.Window(h)
	if !b.above[h] {
		state, err := b.atom("_NET_WM_STATE")
		if err != nil {
			return err
		}
		above, err := b.atom("_NET_WM_STATE_ABOVE")
		if err != nil {
			return err
		}
		ev := xproto.ClientMessageEvent{
			Format: 32,
			Window: w,
			Type:   state,
			// _NET_WM_STATE_ADD, first property, no second, source = application
			Data: xproto.ClientMessageDataUnionData32New([]uint32{1, uint32(above), 0, 1, 0}),
		}
		mask := uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify)
		if err := xproto.SendEventChecked(b.conn, false, b.root, mask, string(ev.Bytes())).Check(); err != nil {
			return fmt.Errorf("send _NET_WM_STATE: %w", err)
		}
		b.above[h] = true
	}
	err := xproto.ConfigureWindowChecked(b.conn, w, xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove}).Check()
	if err != nil {
		return fmt.Errorf("restack window: %w", err)
	}
	return nil
}

func (b *x11Backend) Close() error {
	if b.conn != nil {
		b.conn.Close()
	}
	return nil
}
