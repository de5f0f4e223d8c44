package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/Miyukiichan/lofi-buddy/internal/assets"
	"github.com/Miyukiichan/lofi-buddy/internal/chrome"
	"github.com/Miyukiichan/lofi-buddy/internal/entity"
	"github.com/Miyukiichan/lofi-buddy/internal/session"
	"github.com/Miyukiichan/lofi-buddy/internal/settings"
)

// Window layout, in pixels.
const (
	deskWidth  = 323
	deskHeight = 146

	headWidth   = 32
	headHeight  = 32
	headVMargin = 10

	buttonWidth   = 128
	buttonHeight  = 32
	buttonVMargin = 10
	buttonCount   = 3
	menuHeight    = (buttonHeight + buttonVMargin*2) * buttonCount

	// distance kept from the bottom-right corner of the screen
	screenHMargin = 100
	screenVMargin = 50

	winWidth  = deskWidth
	winHeight = deskHeight + headHeight + headVMargin*2 + menuHeight

	settingsWidth = 240
)

// Required asset files.
const (
	headAsset = "head.png"
	deskAsset = "desk.png"
)

// Sprite names.
const (
	spriteHead     = "head"
	spriteDesk     = "desk"
	spriteBackdrop = "backdrop"
	spritePanel    = "settings_panel"
	spriteClose    = "settings_close"
)

var (
	menuFill   = color.RGBA{0x2b, 0x24, 0x3a, 0xff}
	menuBorder = color.RGBA{0xc9, 0xa7, 0xeb, 0xff}
	buttonFill = color.RGBA{0x45, 0x3a, 0x5e, 0xff}
	labelColor = color.RGBA{0xf5, 0xf0, 0xff, 0xff}
)

// textures are the handles of everything the layout draws.
type textures struct {
	head, desk assets.Handle
	backdrop   assets.Handle
	button     assets.Handle
	panel      assets.Handle
	closeBox   assets.Handle
	checkOn    assets.Handle
	checkOff   assets.Handle
}

// loadTextures loads the artwork and draws the chrome into cache.
func loadTextures(cache *assets.Cache, res assets.Resolver) (textures, error) {
	var t textures
	var err error
	if t.head, err = cache.Load(res.Resolve(headAsset)); err != nil {
		return t, fmt.Errorf("load %s: %w", headAsset, err)
	}
	if t.desk, err = cache.Load(res.Resolve(deskAsset)); err != nil {
		return t, fmt.Errorf("load %s: %w", deskAsset, err)
	}

	t.backdrop = cache.Insert("chrome/backdrop", chrome.Panel(buttonWidth+buttonVMargin*2, menuHeight, 10, menuFill, menuBorder))
	t.button = cache.Insert("chrome/button", chrome.Panel(buttonWidth, buttonHeight, 6, buttonFill, menuBorder))
	t.panel = cache.Insert("chrome/settings", chrome.Panel(settingsWidth, menuHeight, 10, menuFill, menuBorder))
	t.closeBox = cache.Insert("chrome/close", chrome.Panel(16, 16, 3, buttonFill, menuBorder))
	t.checkOn = cache.Insert("chrome/check-on", chrome.Checkbox(16, true, menuBorder))
	t.checkOff = cache.Insert("chrome/check-off", chrome.Checkbox(16, false, menuBorder))
	return t, nil
}

// newPet lays out the desk with the head sitting on it and the menu stacked
// above the head.
func newPet(t textures) *entity.Pet {
	pet := entity.NewPet(winWidth, winHeight)
	pet.Primary = spriteHead

	pet.Add(entity.SetAlways, entity.Sprite{
		Name: spriteDesk, Texture: t.desk,
		X: winWidth - deskWidth, Y: winHeight - deskHeight,
		W: deskWidth, H: deskHeight,
	})
	pet.Add(entity.SetAlways, entity.Sprite{
		Name: spriteHead, Texture: t.head,
		X: winWidth - headWidth, Y: winHeight - headHeight - deskHeight - headVMargin,
		W: headWidth, H: headHeight,
	})

	menuX := winWidth - buttonWidth - buttonVMargin*2
	pet.Add(entity.SetMenuOverlay, entity.Sprite{
		Name: spriteBackdrop, Texture: t.backdrop,
		X: menuX, Y: 0,
		W: buttonWidth + buttonVMargin*2, H: menuHeight,
	})
	buttons := []struct{ name, label string }{
		{session.ButtonPlaylist, "Playlist"},
		{session.ButtonSettings, "Settings"},
		{session.ButtonQuit, "Quit"},
	}
	for i, b := range buttons {
		pet.Add(entity.SetMenuButtons, entity.Sprite{
			Name: b.name, Texture: t.button, Label: b.label,
			X: menuX + buttonVMargin, Y: buttonVMargin + i*(buttonHeight+buttonVMargin*2),
			W: buttonWidth, H: buttonHeight,
		})
	}
	return pet
}

// settingsBounds is the area of the settings window, over the menu.
func settingsBounds() image.Rectangle {
	return image.Rect(winWidth-settingsWidth, 0, winWidth, menuHeight)
}

// settingsSprites reflects the panel's current state as sprites.
func settingsSprites(p *settings.Panel, t textures) []entity.Sprite {
	b := p.Bounds()
	out := []entity.Sprite{{
		Name: spritePanel, Texture: t.panel,
		X: b.Min.X, Y: b.Min.Y, W: b.Dx(), H: b.Dy(),
	}}
	cb := p.CloseButton()
	out = append(out, entity.Sprite{
		Name: spriteClose, Texture: t.closeBox, Label: "x",
		X: cb.Min.X, Y: cb.Min.Y, W: cb.Dx(), H: cb.Dy(),
	})
	for _, row := range p.Rows() {
		tex := t.checkOff
		if row.Checked {
			tex = t.checkOn
		}
		out = append(out, entity.Sprite{
			Name: row.Key, Texture: tex,
			X: row.Box.Min.X, Y: row.Box.Min.Y, W: row.Box.Dx(), H: row.Box.Dy(),
		})
	}
	return out
}
