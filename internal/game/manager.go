// Package game hosts the pet in an ebiten window: it feeds input to the
// session, shapes the window to the rendered silhouette and draws the frame.
package game

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/Miyukiichan/lofi-buddy/config"
	"github.com/Miyukiichan/lofi-buddy/internal/assets"
	"github.com/Miyukiichan/lofi-buddy/internal/compositor"
	"github.com/Miyukiichan/lofi-buddy/internal/dialog"
	"github.com/Miyukiichan/lofi-buddy/internal/entity"
	"github.com/Miyukiichan/lofi-buddy/internal/logging"
	"github.com/Miyukiichan/lofi-buddy/internal/monitor"
	"github.com/Miyukiichan/lofi-buddy/internal/player"
	"github.com/Miyukiichan/lofi-buddy/internal/session"
	"github.com/Miyukiichan/lofi-buddy/internal/settings"
	"github.com/Miyukiichan/lofi-buddy/internal/shaper"
	"github.com/Miyukiichan/lofi-buddy/internal/silhouette"
)

// basicfont.Face7x13 cells
const (
	fontW      = 7
	fontH      = 13
	fontAscent = 11
)

// Options configure a Manager.
type Options struct {
	Config     *config.Config
	ConfigPath string // where settings edits are saved; empty keeps them in memory
	Assets     assets.Resolver
	Tracks     []string // overrides the configured startup track
	Watcher    *config.Watcher
	Artwork    *assets.Watcher
	Stats      *monitor.Sampler

	// LogLevelPinned keeps the log level set on the command line when the
	// config file is reloaded.
	LogLevelPinned bool
}

// Manager implements ebiten.Game.
type Manager struct {
	log       *slog.Logger
	store     *configStore
	watcher   *config.Watcher
	artwork   *assets.Watcher
	stats     *monitor.Sampler
	pinnedLvl bool

	pet      *entity.Pet
	tex      textures
	cache    *assets.Cache
	images   map[assets.Handle]*ebiten.Image
	comp     *compositor.Compositor
	shaper   *shaper.Shaper
	track    *player.EbitenTrack
	machine  *session.Machine
	panel    *settings.Panel
	floating bool
	placed   bool

	isDragging bool // left button held on the desk
	dragStartX int  // cursor position inside the window when the drag began
	dragStartY int
}

// New loads the artwork and starts the first track. Any error here means
// the pet cannot run and no window should be shown.
func New(opts Options) (*Manager, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefault()
	}
	g := &Manager{
		log:       logging.For("game"),
		store:     &configStore{path: opts.ConfigPath, cfg: cfg},
		watcher:   opts.Watcher,
		artwork:   opts.Artwork,
		stats:     opts.Stats,
		pinnedLvl: opts.LogLevelPinned,
		cache:     assets.NewCache(),
		images:    make(map[assets.Handle]*ebiten.Image),
	}

	tex, err := loadTextures(g.cache, opts.Assets)
	if err != nil {
		return nil, err
	}
	g.tex = tex
	g.pet = newPet(tex)
	g.comp = compositor.New(g.cache, g.pet.Width, g.pet.Height)
	g.shaper = shaper.New(shaper.NewPlatform(), cfg.Title, logging.For("shaper"))
	g.panel = settings.New(settingsBounds(), settings.DefaultToggles, g.store, logging.For("settings"))

	g.track = player.NewEbitenTrack()
	notifier := dialog.Zenity{Log: logging.For("dialog")}
	g.machine = session.New(g.pet, session.Deps{
		Track:    g.track,
		Chooser:  notifier,
		Notifier: notifier,
		Settings: g.panel,
		Filter:   dialog.Filter{Name: "Audio", Patterns: player.Extensions()},
		Log:      logging.For("session"),
	})

	tracks := opts.Tracks
	if len(tracks) == 0 && cfg.StartupTrack != "" {
		tracks = []string{opts.Assets.Resolve(cfg.StartupTrack)}
	}
	if err := g.machine.Start(tracks); err != nil {
		g.track.Close()
		return nil, err
	}
	return g, nil
}

// Run opens the window and blocks until the pet quits.
func (g *Manager) Run() error {
	cfg := g.store.Current()
	ebiten.SetWindowDecorated(false)
	g.floating = cfg.Enabled(config.AlwaysOnTop)
	ebiten.SetWindowFloating(g.floating)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(g.pet.Width, g.pet.Height)
	ebiten.SetTPS(cfg.TPS)

	defer g.Close()
	return ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{ScreenTransparent: true})
}

// Close stops playback and releases the native window resources.
func (g *Manager) Close() {
	g.machine.Close()
	if err := g.track.Close(); err != nil {
		g.log.Debug("close track", "error", err)
	}
	if err := g.shaper.Close(); err != nil {
		g.log.Debug("close shaper", "error", err)
	}
}

func (g *Manager) Update() error {
	if !g.placed {
		g.place()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.applyConfig()
	if g.artwork != nil {
		g.reloadArtwork(g.artwork.Changed())
	}

	if err := g.handleInput(); err != nil {
		if errors.Is(err, session.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	g.machine.Tick()
	g.pet.Replace(entity.SetSettings, settingsSprites(g.panel, g.tex))

	g.shape()
	return nil
}

// place moves the window to the bottom-right corner of the monitor.
func (g *Manager) place() {
	g.placed = true
	sw, sh := ebiten.Monitor().Size()
	ebiten.SetWindowPosition(sw-g.pet.Width-screenHMargin, sh-g.pet.Height-screenVMargin)
}

// applyConfig picks up external edits of the config file and reflects
// toggles that need a window call.
func (g *Manager) applyConfig() {
	if g.watcher != nil {
		if cfg, ok := g.watcher.Poll(); ok {
			g.store.replace(cfg)
			g.log.Info("config reloaded")
			g.applyLogLevel(cfg)
		}
	}
	cfg := g.store.Current()
	if on := cfg.Enabled(config.AlwaysOnTop); on != g.floating {
		g.floating = on
		ebiten.SetWindowFloating(on)
	}
	if cfg.TPS != ebiten.TPS() {
		ebiten.SetTPS(cfg.TPS)
	}
}

// applyLogLevel follows the config's level unless the command line set one.
func (g *Manager) applyLogLevel(cfg *config.Config) {
	if g.pinnedLvl {
		return
	}
	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		g.log.Warn("ignoring log level", "error", err)
		return
	}
	logging.SetLevel(lvl)
}

// reloadArtwork swaps in edited texture files. The GPU copy of a reloaded
// texture is dropped so the screen keeps matching the silhouette, which the
// compositor already takes from the cache.
func (g *Manager) reloadArtwork(paths []string) {
	for _, path := range paths {
		h, err := g.cache.Reload(path)
		if errors.Is(err, assets.ErrUnknownHandle) {
			continue
		}
		if err != nil {
			g.log.Warn("reload texture", "path", path, "error", err)
			continue
		}
		if img, ok := g.images[h]; ok {
			img.Deallocate()
			delete(g.images, h)
		}
		g.log.Info("texture reloaded", "path", path)
	}
}

func (g *Manager) handleInput() error {
	mx, my := ebiten.CursorPosition()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		if err := g.machine.HandleClick(session.Click{Button: session.Right, X: mx, Y: my}); err != nil {
			return err
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if g.machine.Interactive() {
			if s, ok := g.pet.Hit(mx, my, g.machine.VisibleSets()...); ok && s.Name == spriteDesk {
				g.isDragging = true
				g.dragStartX = mx
				g.dragStartY = my
			}
		}
		if err := g.machine.HandleClick(session.Click{Button: session.Left, X: mx, Y: my}); err != nil {
			return err
		}
	}

	if g.isDragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		// keep the grabbed point under the cursor: the cursor is at wx+mx on
		// screen and should end up at newX+dragStartX
		wx, wy := ebiten.WindowPosition()
		ebiten.SetWindowPosition(wx+mx-g.dragStartX, wy+my-g.dragStartY)
	} else {
		g.isDragging = false
	}
	return nil
}

// shape clips the window to what is about to be drawn.
func (g *Manager) shape() {
	cfg := g.store.Current()
	if !cfg.Enabled(config.ShapeWindow) {
		g.shaper.ApplyShape(silhouette.Full(g.pet.Width, g.pet.Height))
	} else {
		buf, err := g.comp.Render(g.pet.Visible(g.machine.VisibleSets()...))
		if err != nil {
			g.log.Warn("render silhouette", "error", err)
		} else {
			g.shaper.ApplyShape(silhouette.Build(buf))
		}
	}
	if cfg.Enabled(config.AlwaysOnTop) {
		g.shaper.BringToFront()
	}
}

func (g *Manager) Draw(screen *ebiten.Image) {
	for _, s := range g.pet.Visible(g.machine.VisibleSets()...) {
		img, err := g.image(s.Texture)
		if err != nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		b := img.Bounds()
		if s.W > 0 && s.H > 0 && (s.W != b.Dx() || s.H != b.Dy()) {
			op.GeoM.Scale(float64(s.W)/float64(b.Dx()), float64(s.H)/float64(b.Dy()))
		}
		op.GeoM.Translate(float64(s.X), float64(s.Y))
		screen.DrawImage(img, op)

		if s.Label != "" {
			drawCentered(screen, s.Label, s.Bounds())
		}
	}

	if g.machine.Mode() == session.SettingsOpen {
		t := g.panel.Title()
		text.Draw(screen, "Settings", basicfont.Face7x13, t.X, t.Y, labelColor)
		for _, row := range g.panel.Rows() {
			text.Draw(screen, row.Toggle.Label, basicfont.Face7x13, row.Label.X, row.Label.Y, labelColor)
		}
	}
	g.drawStatus(screen)
}

// drawStatus writes the track name and system stats on the desk.
func (g *Manager) drawStatus(screen *ebiten.Image) {
	cfg := g.store.Current()
	desk := g.pet.Set(entity.SetAlways)[0].Bounds()
	x, y := desk.Min.X+10, desk.Min.Y+10+fontAscent

	if cfg.Enabled(config.ShowNowPlaying) {
		if name := g.machine.NowPlaying(); name != "" {
			if g.machine.Status() == player.Paused {
				name += " (paused)"
			}
			text.Draw(screen, clip(name, desk.Dx()-20), basicfont.Face7x13, x, y, labelColor)
			y += fontH + 4
		}
	}
	if cfg.Enabled(config.ShowMonitor) && g.stats != nil {
		text.Draw(screen, g.stats.Stats().Label(), basicfont.Face7x13, x, y, labelColor)
	}
}

func (g *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.pet.Width, g.pet.Height
}

// image returns the GPU copy of a cached texture.
func (g *Manager) image(h assets.Handle) (*ebiten.Image, error) {
	if img, ok := g.images[h]; ok {
		return img, nil
	}
	src, err := g.cache.Image(h)
	if err != nil {
		return nil, fmt.Errorf("texture %d: %w", h, err)
	}
	img := ebiten.NewImageFromImage(src)
	g.images[h] = img
	return img, nil
}

func drawCentered(screen *ebiten.Image, label string, r image.Rectangle) {
	x := r.Min.X + (r.Dx()-len(label)*fontW)/2
	y := r.Min.Y + (r.Dy()-fontH)/2 + fontAscent
	text.Draw(screen, label, basicfont.Face7x13, x, y, labelColor)
}

// clip shortens s to fit width pixels.
func clip(s string, width int) string {
	r := []rune(s)
	n := width / fontW
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
