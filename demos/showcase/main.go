// Showcase demo for glitchmorph: a config-file-driven morph with a HUD,
// light/dark theming, live resize and persistent window preferences.
//
//	go run ./demos/showcase [-config demos/showcase/config.yaml]
//
// Hover the text band to morph forward; move away to unwind. D toggles the
// theme, F fullscreen, Esc quits.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/tinne26/etxt"
	etxtfont "github.com/tinne26/etxt/font"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/phanxgames/glitchmorph"
)

type theme struct {
	bg  color.RGBA
	ink color.RGBA
	hud color.RGBA
}

var (
	lightTheme = theme{
		bg:  color.RGBA{246, 244, 239, 255},
		ink: color.RGBA{26, 26, 28, 255},
		hud: color.RGBA{110, 110, 116, 255},
	}
	darkTheme = theme{
		bg:  color.RGBA{18, 18, 22, 255},
		ink: color.RGBA{234, 232, 226, 255},
		hud: color.RGBA{150, 150, 156, 255},
	}
)

type Game struct {
	morph *glitchmorph.Morph
	prefs *prefsStore
	text  *etxt.Renderer

	hudFade  *gween.Tween
	hudAlpha float32

	dark bool
	w, h float64 // logical window size
}

func (g *Game) theme() theme {
	if g.dark {
		return darkTheme
	}
	return lightTheme
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.dark = !g.dark
		// The ink probe reads the current theme, so a resize to the same
		// size is all it takes to re-rasterize in the new color.
		g.morph.Resize(g.w, g.h)
	}

	scale := ebiten.Monitor().DeviceScaleFactor()
	_, cy := ebiten.CursorPosition()
	band := g.h * scale / 4
	hovered := float64(cy) >= band && float64(cy) < 3*band
	g.morph.SetHover(hovered)
	g.morph.Update()

	dt := float32(1.0 / float64(ebiten.TPS()))
	g.hudAlpha, _ = g.hudFade.Update(dt)

	ww, wh := ebiten.WindowSize()
	g.prefs.save(windowPrefs{
		Width:      ww,
		Height:     wh,
		Fullscreen: ebiten.IsFullscreen(),
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	th := g.theme()
	screen.Fill(th.bg)
	g.morph.Draw(screen)

	hud := th.hud
	hud.A = uint8(float32(hud.A) * g.hudAlpha)
	g.text.SetColor(hud)
	scale := ebiten.Monitor().DeviceScaleFactor()
	pad := int(12 * scale)
	g.text.Draw(screen, fmt.Sprintf(
		"phase: %s\nprogress: %.2f\nfps: %.0f\n\nhover the text band to morph\nD theme   F fullscreen   Esc quit",
		g.morph.Phase(), g.morph.Progress(), ebiten.ActualFPS()), pad, pad)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w != g.w || h != g.h {
		g.w, g.h = w, h
		g.morph.Resize(w, h)
	}
	scale := ebiten.Monitor().DeviceScaleFactor()
	g.text.SetScale(scale) // relevant for HiDPI
	return int(w * scale), int(h * scale)
}

func loadFont(path string) (*sfnt.Font, error) {
	if path == "" {
		return opentype.Parse(goitalic.TTF)
	}
	fnt, name, err := etxtfont.ParseFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	log.Printf("showcase: font loaded: %s", name)
	return fnt, nil
}

func main() {
	configPath := flag.String("config", "", "path to a showcase YAML config")
	flag.Parse()

	cfg := defaultShowcaseConfig()
	if *configPath != "" {
		loaded, err := loadShowcaseConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	fnt, err := loadFont(cfg.FontPath)
	if err != nil {
		log.Fatal(err)
	}

	prefs := openPrefsStore(windowPrefs{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	})

	game := &Game{
		prefs:   prefs,
		dark:    cfg.DarkTheme,
		w:       float64(prefs.current.Width),
		h:       float64(prefs.current.Height),
		hudFade: gween.New(0, 1, 0.8, ease.OutQuad),
	}

	mcfg := cfg.morphConfig(fnt, func() color.Color { return game.theme().ink })
	mcfg.Width = game.w
	mcfg.Height = game.h
	morph, err := glitchmorph.New(mcfg)
	if err != nil {
		log.Fatal(err)
	}
	game.morph = morph

	text := etxt.NewRenderer()
	text.Utils().SetCache8MiB()
	text.SetFont(fnt)
	text.SetAlign(etxt.Top | etxt.Left)
	text.SetSize(14)
	game.text = text

	ebiten.SetWindowTitle("glitchmorph/demos/showcase")
	ebiten.SetWindowSize(prefs.current.Width, prefs.current.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(prefs.current.Fullscreen)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
	morph.Dispose()
}
