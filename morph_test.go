package glitchmorph

import (
	"testing"
	"time"
)

// fakeClock drives Morph.Update deterministically.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// newTestMorph constructs a Morph with a fake clock already attached. The
// first Update only primes the clock (dt 0).
func newTestMorph(t *testing.T, mutate func(*Config)) (*Morph, *fakeClock) {
	t.Helper()
	cfg := validTestConfig(t)
	if mutate != nil {
		mutate(&cfg)
	}
	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(m.Dispose)
	clock := newFakeClock()
	m.now = clock.Now
	m.Update()
	return m, clock
}

// step advances the fake clock and runs one Update.
func step(m *Morph, clock *fakeClock, d time.Duration) {
	clock.advance(d)
	m.Update()
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := validTestConfig(t)
	cfg.SingleTileFlip = cfg.AllTilesFlip + 1
	m, err := New(cfg)
	if err == nil {
		t.Fatal("New with inverted flip durations should fail")
	}
	if m != nil {
		t.Error("failed construction must not return a partially built engine")
	}
}

func TestNewDerivesGridFromTileSize(t *testing.T) {
	m, _ := newTestMorph(t, func(cfg *Config) {
		cfg.TileSizePx = 16
	})
	if g := m.Grid(); g.X != 20 || g.Y != 10 {
		t.Errorf("Grid() = %dx%d, want 20x10 for 320x160 at 16px tiles", g.X, g.Y)
	}
}

func TestNewUsesExplicitTileCount(t *testing.T) {
	m, _ := newTestMorph(t, func(cfg *Config) {
		cfg.TileSizePx = 0
		cfg.Tiles = &TileCount{X: 9, Y: 4}
	})
	if g := m.Grid(); g.X != 9 || g.Y != 4 {
		t.Errorf("Grid() = %dx%d, want 9x4", g.X, g.Y)
	}
	for i, mask := range m.masks {
		if mask.W != 9 || mask.H != 4 {
			t.Errorf("mask %d is %dx%d, want 9x4", i, mask.W, mask.H)
		}
	}
}

func TestMorphHoverDrivesProgress(t *testing.T) {
	m, clock := newTestMorph(t, nil)

	step(m, clock, 100*time.Millisecond)
	if m.Progress() != 0 {
		t.Fatalf("Progress() = %v before hover, want 0", m.Progress())
	}

	m.SetHover(true)
	step(m, clock, 100*time.Millisecond)
	forward := m.Progress()
	if forward <= 0 {
		t.Fatalf("Progress() = %v after hovered update, want > 0", forward)
	}

	m.SetHover(false)
	step(m, clock, 50*time.Millisecond)
	if m.Progress() >= forward {
		t.Errorf("Progress() = %v did not reverse from %v", m.Progress(), forward)
	}
}

func TestMorphProgressSaturates(t *testing.T) {
	m, clock := newTestMorph(t, nil)
	m.SetHover(true)
	step(m, clock, time.Minute)
	if m.Progress() != 1 {
		t.Fatalf("Progress() = %v after a minute, want 1", m.Progress())
	}
	if m.Phase() != PhaseHoldC {
		t.Errorf("Phase() = %v at progress 1, want %v", m.Phase(), PhaseHoldC)
	}
	step(m, clock, time.Second)
	if m.Progress() != 1 {
		t.Errorf("Progress() = %v, further advances at the bound must be no-ops", m.Progress())
	}
}

func TestResizeCoalesces(t *testing.T) {
	m, clock := newTestMorph(t, nil)
	before := m.regenerations

	// A flurry of resizes inside the debounce window.
	m.Resize(400, 200)
	step(m, clock, 20*time.Millisecond)
	m.Resize(500, 260)
	step(m, clock, 20*time.Millisecond)
	m.Resize(560, 280)
	step(m, clock, 20*time.Millisecond)

	if m.regenerations != before {
		t.Fatalf("regenerated %d times during the debounce window, want 0",
			m.regenerations-before)
	}

	step(m, clock, m.cfg.ResizeDebounce+10*time.Millisecond)
	if got := m.regenerations - before; got != 1 {
		t.Fatalf("regenerations after settle = %d, want exactly 1", got)
	}

	// The settled grid reflects the last requested size (560x280 at 14px).
	if g := m.Grid(); g.X != 40 || g.Y != 20 {
		t.Errorf("Grid() after settle = %dx%d, want 40x20", g.X, g.Y)
	}

	// Quiet frames afterward must not regenerate again.
	step(m, clock, time.Second)
	if got := m.regenerations - before; got != 1 {
		t.Errorf("regenerations after quiet period = %d, want 1", got)
	}
}

func TestResizeUpdatesViewportImmediately(t *testing.T) {
	m, _ := newTestMorph(t, nil)
	m.Resize(640, 480)
	if m.viewW != 640 || m.viewH != 480 {
		t.Errorf("viewport = %gx%g right after Resize, want 640x480", m.viewW, m.viewH)
	}
	// But the textures are still the construction-time ones.
	if w := m.textures[0].Bounds().Dx(); w != 320 {
		t.Errorf("texture width = %d before settle, want 320", w)
	}
}

func TestResizeReleasesSupersededTextures(t *testing.T) {
	m, clock := newTestMorph(t, nil)
	if m.releasedCount != 0 {
		t.Fatalf("releasedCount = %d after construction, want 0", m.releasedCount)
	}
	m.Resize(400, 240)
	step(m, clock, m.cfg.ResizeDebounce+10*time.Millisecond)
	if m.releasedCount != 4 {
		t.Errorf("releasedCount = %d after settle, want 4 (three textures + presence)",
			m.releasedCount)
	}
}

func TestResizeKeepsExplicitGrid(t *testing.T) {
	m, clock := newTestMorph(t, func(cfg *Config) {
		cfg.TileSizePx = 0
		cfg.Tiles = &TileCount{X: 9, Y: 4}
	})
	m.Resize(800, 600)
	step(m, clock, m.cfg.ResizeDebounce+10*time.Millisecond)
	if g := m.Grid(); g.X != 9 || g.Y != 4 {
		t.Errorf("Grid() after resize = %dx%d, want the fixed 9x4", g.X, g.Y)
	}
}

func TestResizeIgnoresNonPositiveSizes(t *testing.T) {
	m, clock := newTestMorph(t, nil)
	before := m.regenerations
	m.Resize(0, 100)
	m.Resize(100, -5)
	step(m, clock, time.Second)
	if m.regenerations != before {
		t.Errorf("non-positive resize triggered %d regenerations", m.regenerations-before)
	}
}

func TestDisposeReleasesEverything(t *testing.T) {
	m, _ := newTestMorph(t, nil)
	m.Dispose()

	if !m.IsDisposed() {
		t.Fatal("IsDisposed() = false after Dispose")
	}
	if m.releasedCount != 4 {
		t.Errorf("releasedCount = %d, want 4 (three textures + presence)", m.releasedCount)
	}
	for i, tex := range m.textures {
		if tex != nil {
			t.Errorf("texture %d still held after Dispose", i)
		}
	}
	if m.presence != nil {
		t.Error("presence image still held after Dispose")
	}
	if m.shader != nil {
		t.Error("shader still held after Dispose")
	}
}

func TestDisposeIsIdempotent(t *testing.T) {
	m, _ := newTestMorph(t, nil)
	m.Dispose()
	released := m.releasedCount
	m.Dispose()
	if m.releasedCount != released {
		t.Error("second Dispose released resources again")
	}
}

func TestDisposedMorphIsInert(t *testing.T) {
	m, clock := newTestMorph(t, nil)
	m.SetHover(true)
	m.Resize(500, 300) // pending at disposal time
	m.Dispose()

	step(m, clock, time.Second)
	if m.Progress() != 0 {
		t.Errorf("Progress() = %v advanced after Dispose", m.Progress())
	}
	if m.resizePending {
		t.Error("pending resize survived Dispose")
	}

	m.SetHover(false)
	m.Resize(100, 100)
	if m.resizePending {
		t.Error("Resize after Dispose must be a no-op")
	}
}

func TestSyncUniforms(t *testing.T) {
	m, clock := newTestMorph(t, func(cfg *Config) {
		cfg.InvertThreshold = 0.75
	})
	m.SetHover(true)
	step(m, clock, 100*time.Millisecond)
	m.syncUniforms()

	if got := m.uniforms["Progress"].(float32); got != float32(m.Progress()) {
		t.Errorf("Progress uniform = %v, want %v", got, m.Progress())
	}
	if got := m.uniforms["Time"].(float32); got != float32(0.1) {
		t.Errorf("Time uniform = %v, want 0.1", got)
	}
	if got := m.uniforms["InvertThreshold"].(float32); got != 0.75 {
		t.Errorf("InvertThreshold uniform = %v, want 0.75", got)
	}

	grid := m.uniforms["Grid"].([]float32)
	if int(grid[0]) != m.gridX || int(grid[1]) != m.gridY {
		t.Errorf("Grid uniform = %v, want %dx%d", grid, m.gridX, m.gridY)
	}

	view := m.uniforms["ViewSize"].([]float32)
	if view[0] != 320 || view[1] != 160 {
		t.Errorf("ViewSize uniform = %v, want [320, 160]", view)
	}

	bounds := m.uniforms["Bounds"].([]float32)
	if len(bounds) != 4 {
		t.Fatalf("Bounds uniform has %d entries, want 4", len(bounds))
	}
	for i := range bounds {
		if bounds[i] != float32(m.timeline.bounds[i]) {
			t.Errorf("Bounds[%d] = %v, want %v", i, bounds[i], m.timeline.bounds[i])
		}
	}
}

func TestTimeAccumulatorIgnoresDirection(t *testing.T) {
	m, clock := newTestMorph(t, nil)
	m.SetHover(false) // timeline pinned at 0
	step(m, clock, 250*time.Millisecond)
	step(m, clock, 250*time.Millisecond)
	if m.timeAcc != 0.5 {
		t.Errorf("timeAcc = %v, want 0.5 regardless of timeline direction", m.timeAcc)
	}
}
