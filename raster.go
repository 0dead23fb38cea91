package glitchmorph

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// obliqueSkew is the horizontal shear applied to synthesize the italic
// style: tan(12 degrees), close to what CSS oblique synthesis uses.
const obliqueSkew = 0.21256

// RasterSurface is one text rendered into a CPU bitmap at device resolution.
// The bitmap is the single source of truth for both the GPU texture and the
// presence scan, which keeps the two in exact agreement.
type RasterSurface struct {
	RGBA  *image.RGBA
	W, H  int     // device pixels
	Scale float64 // device pixel ratio baked into W, H
}

// fontSizeFor returns the logical font size for a viewport width: a fixed
// fraction of the width, clamped to [24, 96].
func fontSizeFor(viewportWidth float64) float64 {
	return clampFloat(viewportWidth*fontScaleFraction, minFontSize, maxFontSize)
}

// rasterizeText renders a single line centered on a viewport-sized surface.
// vw/vh are logical pixels; the surface is scaled by the device pixel ratio
// so the presence scan and the final texture stay sharp on dense displays.
func rasterizeText(text string, fnt *sfnt.Font, vw, vh, scale float64, ink color.Color) (*RasterSurface, error) {
	w := int(math.Ceil(vw * scale))
	h := int(math.Ceil(vh * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	size := fontSizeFor(vw) * scale
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("glitchmorph: create face at %gpx: %w", size, err)
	}
	defer face.Close()

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	drawer := &font.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(ink),
		Face: face,
	}

	// Center on both axes: horizontally by advance width, vertically so the
	// cap-to-descent band straddles the middle of the surface.
	advance := drawer.MeasureString(text)
	metrics := face.Metrics()
	drawer.Dot = fixed.Point26_6{
		X: (fixed.I(w) - advance) / 2,
		Y: fixed.I(h)/2 + (metrics.Ascent-metrics.Descent)/2,
	}
	drawer.DrawString(text)

	shearRows(rgba, obliqueSkew)

	return &RasterSurface{RGBA: rgba, W: w, H: h, Scale: scale}, nil
}

// shearRows applies a horizontal shear about the vertical center of the
// image, shifting each row by a whole number of pixels. Rows above the
// center move right, synthesizing an oblique slant. Pixels pushed past the
// edge are dropped; the centered text leaves ample margin.
func shearRows(img *image.RGBA, skew float64) {
	if skew == 0 {
		return
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	cy := float64(h) / 2
	rowLen := w * 4
	tmp := make([]uint8, rowLen)
	for y := 0; y < h; y++ {
		dx := int(math.Round(skew * (cy - float64(y))))
		if dx == 0 {
			continue
		}
		row := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		copy(tmp, row)
		for i := range row {
			row[i] = 0
		}
		// Shift the saved row by dx pixels, clipping at both edges.
		for x := 0; x < w; x++ {
			nx := x + dx
			if nx < 0 || nx >= w {
				continue
			}
			copy(row[nx*4:nx*4+4], tmp[x*4:x*4+4])
		}
	}
}
