package glitchmorph

import (
	"fmt"
	"image/color"
	"time"

	"golang.org/x/image/font/sfnt"
)

// fontScaleFraction is the fraction of the viewport width used as the base
// font size before clamping.
const fontScaleFraction = 0.04375

// Font size bounds in logical pixels, applied before device scaling.
const (
	minFontSize = 24.0
	maxFontSize = 96.0
)

// TileCount is an explicit tile grid specification.
type TileCount struct {
	X, Y int
}

// Config describes a morph effect. The zero value is not usable; start from
// DefaultConfig and fill in Texts, Font, Width and Height.
//
// Exactly one of Tiles and TileSizePx may be set. When Tiles is set the grid
// is fixed for the lifetime of the effect; when TileSizePx is set the grid is
// recomputed from the viewport on construction and on each settled resize.
// When neither is set, DefaultConfig's tile size applies.
type Config struct {
	// Texts are the three morph endpoints: Texts[0] is shown at progress 0,
	// Texts[2] at progress 1.
	Texts [3]string

	// Font is the parsed font used for all three texts. Required.
	Font *sfnt.Font

	// Tiles fixes the tile grid explicitly. Mutually exclusive with TileSizePx.
	Tiles *TileCount

	// TileSizePx is the target tile edge length in logical pixels. The grid
	// is derived by rounding viewport/TileSizePx, at least 1x1.
	TileSizePx float64

	// Phase durations in seconds. AllTilesFlip is the length of each of the
	// two flip phases; SingleTileFlip is how long one tile takes within it.
	InitialWait    float64
	AllTilesFlip   float64
	SingleTileFlip float64
	BetweenWait    float64
	FinalWait      float64

	// InvertThreshold in [0, 1] selects which tiles flash inverted mid-flip:
	// a tile inverts iff its random value is >= the threshold (and it has
	// ink in at least one endpoint). 0 inverts every inked tile, 1 none.
	InvertThreshold float64

	// ResizeDebounce is the quiet window after the last Resize call before
	// textures and presence masks are regenerated.
	ResizeDebounce time.Duration

	// Width and Height are the initial viewport size in logical pixels.
	Width, Height float64

	// Ink resolves the text color at each raster generation, allowing the
	// effect to follow an external theme. Nil, or a nil result, falls back
	// to opaque black.
	Ink func() color.Color

	// DeviceScale overrides the device pixel ratio. 0 means query the
	// monitor at construction.
	DeviceScale float64
}

// DefaultConfig returns a Config with the stock timing, threshold and tile
// size. Texts, Font, Width and Height must still be provided.
func DefaultConfig() Config {
	return Config{
		TileSizePx:      14,
		InitialWait:     0.25,
		AllTilesFlip:    0.9,
		SingleTileFlip:  0.35,
		BetweenWait:     0.35,
		FinalWait:       0.25,
		InvertThreshold: 0.5,
		ResizeDebounce:  150 * time.Millisecond,
	}
}

// validate checks every Config invariant. It is called once by New; a failure
// means no resource has been created yet.
func (c *Config) validate() error {
	if c.Font == nil {
		return fmt.Errorf("glitchmorph: config requires a font")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("glitchmorph: viewport %gx%g is not positive", c.Width, c.Height)
	}
	if c.Tiles != nil && c.TileSizePx > 0 {
		return fmt.Errorf("glitchmorph: Tiles and TileSizePx are mutually exclusive")
	}
	if c.Tiles != nil && (c.Tiles.X < 1 || c.Tiles.Y < 1) {
		return fmt.Errorf("glitchmorph: tile count %dx%d must be at least 1x1", c.Tiles.X, c.Tiles.Y)
	}
	if c.Tiles == nil && c.TileSizePx < 0 {
		return fmt.Errorf("glitchmorph: tile size %g must be positive", c.TileSizePx)
	}
	if c.AllTilesFlip <= 0 || c.SingleTileFlip <= 0 {
		return fmt.Errorf("glitchmorph: flip durations must be strictly positive (all=%g, single=%g)",
			c.AllTilesFlip, c.SingleTileFlip)
	}
	if c.SingleTileFlip > c.AllTilesFlip {
		return fmt.Errorf("glitchmorph: single tile flip %g exceeds all tiles flip %g",
			c.SingleTileFlip, c.AllTilesFlip)
	}
	if c.InitialWait < 0 || c.BetweenWait < 0 || c.FinalWait < 0 {
		return fmt.Errorf("glitchmorph: wait durations must not be negative")
	}
	if c.InvertThreshold < 0 || c.InvertThreshold > 1 {
		return fmt.Errorf("glitchmorph: invert threshold %g outside [0, 1]", c.InvertThreshold)
	}
	if c.ResizeDebounce < 0 {
		return fmt.Errorf("glitchmorph: resize debounce must not be negative")
	}
	return nil
}

// tileSize returns the effective tile edge length for tile-size mode.
func (c *Config) tileSize() float64 {
	if c.TileSizePx > 0 {
		return c.TileSizePx
	}
	return DefaultConfig().TileSizePx
}

// grid derives the tile grid for the given viewport. Fixed-count mode ignores
// the viewport; tile-size mode rounds to the nearest count, at least 1x1.
func (c *Config) grid(w, h float64) (gx, gy int) {
	if c.Tiles != nil {
		return c.Tiles.X, c.Tiles.Y
	}
	size := c.tileSize()
	gx = int(w/size + 0.5)
	gy = int(h/size + 0.5)
	if gx < 1 {
		gx = 1
	}
	if gy < 1 {
		gy = 1
	}
	return gx, gy
}

// totalDuration returns the length of the full five-phase timeline.
func (c *Config) totalDuration() float64 {
	return c.InitialWait + 2*c.AllTilesFlip + c.BetweenWait + c.FinalWait
}

// inkColor resolves the current theme ink, defaulting to opaque black.
func (c *Config) inkColor() color.Color {
	if c.Ink != nil {
		if ink := c.Ink(); ink != nil {
			return ink
		}
	}
	return color.RGBA{0, 0, 0, 255}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
