package glitchmorph

import "math"

// This file is the CPU mirror of the per-tile schedule evaluated by the
// fragment shader in shader.go. The two must stay numerically in step; the
// tests exercise the formulas through this mirror.

// TileRandom maps a tile coordinate to a deterministic pseudo-random value
// in [0, 1). It is a pure function of the coordinate, so a tile keeps its
// value across frames and across resize-triggered grid changes, and the
// shader computes the identical formula. The intermediate is rounded through
// float32 to match GPU precision.
func TileRandom(x, y int) float64 {
	s := math.Sin(float64(x)*12.9898+float64(y)*78.233) * 43758.5453
	v := float32(s)
	f := v - float32(math.Floor(float64(v)))
	if f >= 1 {
		f = 0
	}
	return float64(f)
}

// flipWindow returns a tile's flip window within a flip phase, in
// phase-local progress units. ratio is singleTileFlip/allTilesFlip; the
// random value slides the window start so the last tile still finishes
// exactly at phase end.
func flipWindow(r, ratio float64) (start, end float64) {
	start = r * (1 - ratio)
	return start, start + ratio
}

// flipAmount is the smooth 0->1 ramp of one tile at phase-local progress p.
func flipAmount(r, ratio, p float64) float64 {
	start, end := flipWindow(r, ratio)
	return smoothstep(start, end, p)
}

// invertAmount gates the polarity flash: only tiles at or above the invert
// threshold participate, scaled by the flip ramp, and only when at least one
// endpoint has ink in the tile (presSrc/presDst are 0 or 1).
func invertAmount(r, flip, threshold, presSrc, presDst float64) float64 {
	if r < threshold {
		return 0
	}
	return flip * math.Max(presSrc, presDst)
}

func smoothstep(edge0, edge1, x float64) float64 {
	t := clampFloat((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
