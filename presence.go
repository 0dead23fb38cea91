package glitchmorph

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// PresenceMask is a per-tile ink map derived from a RasterSurface: 255 where
// the tile's pixel rectangle contains at least one non-transparent pixel,
// 0 elsewhere. Rows are stored top-down, matching the orientation the shader
// samples the color textures with, so mask tile (0,0) and texture tile (0,0)
// always refer to the same screen tile.
//
// A mask is derived data: it is regenerated together with its source raster
// and never mutated independently.
type PresenceMask struct {
	W, H int
	bits []uint8
}

// ExtractPresence scans every pixel of each tile cell and OR-reduces the
// alpha channel. Cell rectangles run from floor(i*cell) to ceil((i+1)*cell),
// clamped to the surface, so rounding at tile boundaries never reads past
// the bitmap and every pixel belongs to at least one cell.
func ExtractPresence(src *image.RGBA, gridX, gridY int) *PresenceMask {
	m := &PresenceMask{W: gridX, H: gridY, bits: make([]uint8, gridX*gridY)}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	cellW := float64(w) / float64(gridX)
	cellH := float64(h) / float64(gridY)

	for ty := 0; ty < gridY; ty++ {
		y0 := int(math.Floor(float64(ty) * cellH))
		y1 := int(math.Ceil(float64(ty+1) * cellH))
		if y1 > h {
			y1 = h
		}
		for tx := 0; tx < gridX; tx++ {
			x0 := int(math.Floor(float64(tx) * cellW))
			x1 := int(math.Ceil(float64(tx+1) * cellW))
			if x1 > w {
				x1 = w
			}
			if tileHasInk(src, x0, y0, x1, y1) {
				m.bits[ty*gridX+tx] = 255
			}
		}
	}
	return m
}

// tileHasInk reports whether any pixel in [x0,x1) x [y0,y1) has non-zero alpha.
func tileHasInk(src *image.RGBA, x0, y0, x1, y1 int) bool {
	for y := y0; y < y1; y++ {
		row := src.Pix[y*src.Stride:]
		for x := x0; x < x1; x++ {
			if row[x*4+3] != 0 {
				return true
			}
		}
	}
	return false
}

// At reports whether the tile at (x, y) contains ink. Out-of-range tiles are
// empty.
func (m *PresenceMask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.bits[y*m.W+x] != 0
}

// Value returns the raw 0/255 presence value for a tile, as the shader
// sees it.
func (m *PresenceMask) Value(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return 0
	}
	return m.bits[y*m.W+x]
}

// packPresence builds the tile-resolution lookup texture the shader samples:
// red carries the first text's mask, green the second, blue the third. All
// three masks share one grid, so one small image covers every flip phase.
func packPresence(a, b, c *PresenceMask) *ebiten.Image {
	w, h := a.W, a.H
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := rgba.PixOffset(x, y)
			rgba.Pix[i+0] = a.bits[y*w+x]
			rgba.Pix[i+1] = b.bits[y*w+x]
			rgba.Pix[i+2] = c.bits[y*w+x]
			rgba.Pix[i+3] = 255
		}
	}
	return ebiten.NewImageFromImage(rgba)
}
