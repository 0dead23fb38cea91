package glitchmorph

import "github.com/hajimehoshi/ebiten/v2"

// The morph shader samples the three text textures (sources 0-2) and the
// packed presence lookup (source 3, tile resolution) and evaluates the
// per-tile schedule mirrored in schedule.go. Ebitengine uses premultiplied
// alpha; both the textures and the inverted color are premultiplied, so mix
// blends correctly without unpacking.
//
// Uniforms:
//
//	Progress        normalized position along the five-phase timeline
//	Time            ever-increasing wall-clock accumulator
//	Bounds          cumulative phase-end fractions (hold A, flip A->B, hold B, flip B->C)
//	Grid            tile counts per axis
//	ViewSize        current viewport in device pixels (textures stretch to it)
//	FlipRatio       singleTileFlip / allTilesFlip
//	InvertThreshold tiles with random value >= this flash inverted
const morphShaderSrc = `//kage:unit pixels
package main

var Progress float
var Time float
var Bounds vec4
var Grid vec2
var ViewSize vec2
var FlipRatio float
var InvertThreshold float

func tileRandom(tile vec2) float {
	return fract(sin(dot(tile, vec2(12.9898, 78.233))) * 43758.5453)
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	uv := (dst.xy - imageDstOrigin()) / ViewSize
	tile := min(floor(uv*Grid), Grid-vec2(1))
	r := tileRandom(tile)

	// Resolve the phase from the progress fraction alone. A progress exactly
	// on a boundary belongs to the phase that boundary opens.
	srcSel := 0.0
	dstSel := 0.0
	p := 0.0
	if Progress >= Bounds.w {
		srcSel = 2.0
		dstSel = 2.0
	} else if Progress >= Bounds.z {
		srcSel = 1.0
		dstSel = 2.0
		p = (Progress - Bounds.z) / (Bounds.w - Bounds.z)
	} else if Progress >= Bounds.y {
		srcSel = 1.0
		dstSel = 1.0
	} else if Progress >= Bounds.x {
		dstSel = 1.0
		p = (Progress - Bounds.x) / (Bounds.y - Bounds.x)
	}

	texel := uv * imageSrc0Size()
	colA := imageSrc0At(imageSrc0Origin() + texel)
	colB := imageSrc1At(imageSrc1Origin() + texel)
	colC := imageSrc2At(imageSrc2Origin() + texel)

	from := colA
	if srcSel == 1.0 {
		from = colB
	} else if srcSel == 2.0 {
		from = colC
	}
	to := colA
	if dstSel == 1.0 {
		to = colB
	} else if dstSel == 2.0 {
		to = colC
	}

	// Each tile flips inside its own randomized window; the last window
	// still ends exactly at phase end. Hold phases arrive here with p = 0,
	// which forces the ramp to 0.
	start := r * (1.0 - FlipRatio)
	flip := smoothstep(start, start+FlipRatio, p)

	pres := imageSrc3At(imageSrc3Origin() + tile + vec2(0.5))
	presFrom := pres.r
	if srcSel == 1.0 {
		presFrom = pres.g
	} else if srcSel == 2.0 {
		presFrom = pres.b
	}
	presTo := pres.r
	if dstSel == 1.0 {
		presTo = pres.g
	} else if dstSel == 2.0 {
		presTo = pres.b
	}

	// Tiles with no ink in either endpoint never flash.
	invert := 0.0
	if r >= InvertThreshold {
		invert = flip * max(presFrom, presTo)
	}
	if invert > 0.5 {
		from = vec4(0.0, 0.0, 0.0, 1.0-from.a)
	}

	_ = Time
	return mix(from, to, flip)
}
`

// compileMorphShader builds the Kage program. A compile failure is a
// programming error in the embedded source, not a runtime condition.
func compileMorphShader() *ebiten.Shader {
	s, err := ebiten.NewShader([]byte(morphShaderSrc))
	if err != nil {
		panic("glitchmorph: failed to compile morph shader: " + err.Error())
	}
	return s
}
