package glitchmorph

// Phase identifies which of the five timeline segments a progress value
// falls in. The timeline itself never stores a phase; it is always derived
// from the progress fraction, so the CPU tag and the shader branching can
// never drift apart.
type Phase uint8

const (
	PhaseHoldA  Phase = iota // holding on the first text
	PhaseFlipAB              // flipping from the first to the second text
	PhaseHoldB               // holding on the second text
	PhaseFlipBC              // flipping from the second to the third text
	PhaseHoldC               // holding on the third text
)

// String returns a short human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseHoldA:
		return "hold A"
	case PhaseFlipAB:
		return "flip A->B"
	case PhaseHoldB:
		return "hold B"
	case PhaseFlipBC:
		return "flip B->C"
	case PhaseHoldC:
		return "hold C"
	default:
		return "unknown"
	}
}

// Timeline owns the single progress scalar of a morph effect. Time advances
// forward while hovered and backward otherwise, clamped to the five-phase
// window, so reversing mid-flip un-flips tiles smoothly instead of
// restarting.
//
// Phase boundaries are stored as fractions of the total duration; a boundary
// value belongs to the phase it opens (intervals are half-open on the right).
type Timeline struct {
	total     float64    // seconds across all five phases
	bounds    [4]float64 // cumulative end fractions: hold A, flip A->B, hold B, flip B->C
	elapsed   float64
	direction int
}

// newTimeline derives the boundary fractions from a validated Config.
func newTimeline(cfg *Config) *Timeline {
	t := &Timeline{total: cfg.totalDuration()}
	t.bounds[0] = cfg.InitialWait / t.total
	t.bounds[1] = (cfg.InitialWait + cfg.AllTilesFlip) / t.total
	t.bounds[2] = (cfg.InitialWait + cfg.AllTilesFlip + cfg.BetweenWait) / t.total
	t.bounds[3] = (cfg.InitialWait + 2*cfg.AllTilesFlip + cfg.BetweenWait) / t.total
	return t
}

// SetHover sets the advance direction: +1 on hover enter, -1 on hover leave.
// Repeated calls with the same value are no-ops. The direction is never
// auto-reset; once elapsed time saturates at a bound, further advances in
// that direction simply do nothing.
func (t *Timeline) SetHover(hovered bool) {
	dir := -1
	if hovered {
		dir = +1
	}
	if t.direction == dir {
		return
	}
	t.direction = dir
}

// Advance moves elapsed time by dt seconds scaled by the current direction
// and clamps it to [0, total].
func (t *Timeline) Advance(dt float64) {
	if t.direction == 0 {
		return
	}
	t.elapsed += dt * float64(t.direction)
	t.elapsed = clampFloat(t.elapsed, 0, t.total)
}

// Progress returns the normalized position in [0, 1] along the timeline.
func (t *Timeline) Progress() float64 {
	return t.elapsed / t.total
}

// Elapsed returns the clamped elapsed time in seconds.
func (t *Timeline) Elapsed() float64 {
	return t.elapsed
}

// Direction returns -1, 0 or +1.
func (t *Timeline) Direction() int {
	return t.direction
}

// Total returns the full timeline duration in seconds.
func (t *Timeline) Total() float64 {
	return t.total
}

// Phase derives the current phase tag from the progress fraction.
func (t *Timeline) Phase() Phase {
	return phaseAt(t.Progress(), t.bounds)
}

// phaseAt locates progress within the boundary fractions. Comparisons run
// from the end so that a progress exactly on a boundary lands in the phase
// that boundary opens.
func phaseAt(progress float64, bounds [4]float64) Phase {
	switch {
	case progress >= bounds[3]:
		return PhaseHoldC
	case progress >= bounds[2]:
		return PhaseFlipBC
	case progress >= bounds[1]:
		return PhaseHoldB
	case progress >= bounds[0]:
		return PhaseFlipAB
	default:
		return PhaseHoldA
	}
}

// phaseLocal resolves the texture endpoints and the phase-local progress for
// a global progress fraction. During hold phases source and target coincide
// and the local progress is 0, which forces the flip amount to 0. This is
// the CPU mirror of the branch at the top of the morph shader.
func phaseLocal(progress float64, bounds [4]float64) (src, dst int, p float64) {
	switch phaseAt(progress, bounds) {
	case PhaseHoldA:
		return 0, 0, 0
	case PhaseFlipAB:
		return 0, 1, (progress - bounds[0]) / (bounds[1] - bounds[0])
	case PhaseHoldB:
		return 1, 1, 0
	case PhaseFlipBC:
		return 1, 2, (progress - bounds[2]) / (bounds[3] - bounds[2])
	default:
		return 2, 2, 0
	}
}
