package glitchmorph

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Morph renders a glitch transition between three texts. It owns every GPU
// resource it creates: the three text textures, the packed presence lookup
// and the compiled shader. All methods must be called from the game loop
// goroutine; the engine is single-threaded and frame-driven, so the resize
// settle step and the draw call can never overlap.
type Morph struct {
	cfg      Config
	timeline *Timeline

	scale        float64
	viewW, viewH float64 // logical pixels, updated immediately on Resize
	gridX, gridY int

	textures [3]*ebiten.Image
	masks    [3]*PresenceMask
	presence *ebiten.Image
	shader   *ebiten.Shader

	// Persistent uniform buffers, repointed instead of reallocated per frame.
	uniforms  map[string]any
	boundsF32 [4]float32
	gridF32   [2]float32
	viewF32   [2]float32
	shaderOp  ebiten.DrawRectShaderOptions

	// Wall-clock frame timing. now is swappable for tests.
	now      func() time.Time
	lastTick time.Time
	ticked   bool
	timeAcc  float64

	// Debounced resize. The countdown runs on the frame clock, so there is
	// no timer goroutine to cancel; a new Resize simply restarts it.
	resizePending bool
	resizeW       float64
	resizeH       float64
	resizeLeft    float64

	// Resource accounting, observable by tests.
	regenerations int
	releasedCount int

	disposed bool
}

// New validates the configuration, rasterizes the three texts, derives their
// presence masks and uploads everything to the GPU. Any invariant violation
// fails before the first resource is created, so a failed construction holds
// nothing.
func New(cfg Config) (*Morph, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	scale := cfg.DeviceScale
	if scale <= 0 {
		scale = ebiten.Monitor().DeviceScaleFactor()
	}
	if scale <= 0 {
		scale = 1
	}

	m := &Morph{
		cfg:      cfg,
		timeline: newTimeline(&cfg),
		scale:    scale,
		viewW:    cfg.Width,
		viewH:    cfg.Height,
		uniforms: make(map[string]any, 7),
		now:      time.Now,
	}
	m.gridX, m.gridY = cfg.grid(cfg.Width, cfg.Height)

	if err := m.generate(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	m.shader = compileMorphShader()

	for i, b := range m.timeline.bounds {
		m.boundsF32[i] = float32(b)
	}
	m.uniforms["Bounds"] = m.boundsF32[:]
	m.uniforms["Grid"] = m.gridF32[:]
	m.uniforms["ViewSize"] = m.viewF32[:]
	m.uniforms["FlipRatio"] = float32(cfg.SingleTileFlip / cfg.AllTilesFlip)
	m.uniforms["InvertThreshold"] = float32(cfg.InvertThreshold)
	return m, nil
}

// generate rebuilds the rasters, masks, packed presence image and textures
// for the given logical viewport. All CPU work runs before the first GPU
// upload, and previous resources are released only after the replacements
// exist, so the engine is never left holding a partial set.
func (m *Morph) generate(vw, vh float64) error {
	ink := m.cfg.inkColor()
	var surfaces [3]*RasterSurface
	var masks [3]*PresenceMask
	for i, text := range m.cfg.Texts {
		s, err := rasterizeText(text, m.cfg.Font, vw, vh, m.scale, ink)
		if err != nil {
			return fmt.Errorf("glitchmorph: rasterize text %d: %w", i, err)
		}
		surfaces[i] = s
		masks[i] = ExtractPresence(s.RGBA, m.gridX, m.gridY)
	}

	var textures [3]*ebiten.Image
	for i, s := range surfaces {
		textures[i] = ebiten.NewImageFromImage(s.RGBA)
	}
	presence := packPresence(masks[0], masks[1], masks[2])

	for _, t := range m.textures {
		m.release(t)
	}
	m.release(m.presence)

	m.textures = textures
	m.masks = masks
	m.presence = presence
	m.regenerations++
	return nil
}

// release deallocates one GPU image and counts it.
func (m *Morph) release(img *ebiten.Image) {
	if img == nil {
		return
	}
	img.Deallocate()
	m.releasedCount++
}

// SetHover switches the timeline direction: forward while hovered, backward
// once the hover ends. Safe to call every frame; repeated values are no-ops.
func (m *Morph) SetHover(hovered bool) {
	if m.disposed {
		return
	}
	m.timeline.SetHover(hovered)
}

// Resize updates the viewport immediately (the existing textures stretch to
// the new size on the next draw) and restarts the debounce window. Only
// after resize events stay quiet for the configured interval are the tile
// grid, rasters and presence masks regenerated, so a drag-resize costs one
// regeneration instead of hundreds.
func (m *Morph) Resize(w, h float64) {
	if m.disposed || w <= 0 || h <= 0 {
		return
	}
	m.viewW, m.viewH = w, h
	m.resizePending = true
	m.resizeW, m.resizeH = w, h
	m.resizeLeft = m.cfg.ResizeDebounce.Seconds()
}

// Update advances the effect by the wall-clock time since the previous call:
// the timeline moves by dt in the hover direction, the shader time
// accumulator grows monotonically, and a pending resize counts down toward
// its settle.
func (m *Morph) Update() {
	if m.disposed {
		return
	}
	now := m.now()
	var dt float64
	if m.ticked {
		dt = now.Sub(m.lastTick).Seconds()
		if dt < 0 {
			dt = 0
		}
	}
	m.lastTick = now
	m.ticked = true

	m.timeAcc += dt
	m.timeline.Advance(dt)

	if m.resizePending {
		m.resizeLeft -= dt
		if m.resizeLeft <= 0 {
			m.settleResize()
		}
	}
}

// settleResize performs the deferred regeneration at the last requested
// size. Superseded textures are swapped out atomically with respect to the
// draw call and then released. On failure the previous resources stay live.
func (m *Morph) settleResize() {
	m.resizePending = false
	if m.cfg.Tiles == nil {
		m.gridX, m.gridY = m.cfg.grid(m.resizeW, m.resizeH)
	}
	if err := m.generate(m.resizeW, m.resizeH); err != nil {
		log.Printf("glitchmorph: resize regeneration failed, keeping previous textures: %v", err)
	}
}

// Draw synchronizes the uniform set from the timeline and issues the single
// full-viewport shader quad.
func (m *Morph) Draw(screen *ebiten.Image) {
	if m.disposed {
		return
	}
	m.syncUniforms()
	m.shaderOp.Images[0] = m.textures[0]
	m.shaderOp.Images[1] = m.textures[1]
	m.shaderOp.Images[2] = m.textures[2]
	m.shaderOp.Images[3] = m.presence
	m.shaderOp.Uniforms = m.uniforms
	w := int(math.Round(m.viewW * m.scale))
	h := int(math.Round(m.viewH * m.scale))
	screen.DrawRectShader(w, h, m.shader, &m.shaderOp)
}

// syncUniforms pushes the per-frame scalar state into the uniform map.
func (m *Morph) syncUniforms() {
	m.uniforms["Progress"] = float32(m.timeline.Progress())
	m.uniforms["Time"] = float32(m.timeAcc)
	m.gridF32[0] = float32(m.gridX)
	m.gridF32[1] = float32(m.gridY)
	m.viewF32[0] = float32(m.viewW * m.scale)
	m.viewF32[1] = float32(m.viewH * m.scale)
}

// Dispose releases every GPU resource and latches the engine inert: after
// it returns, Update, Draw, SetHover and Resize are no-ops and no pending
// resize can fire. Dispose is idempotent.
func (m *Morph) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	m.resizePending = false
	for i, t := range m.textures {
		m.release(t)
		m.textures[i] = nil
	}
	m.release(m.presence)
	m.presence = nil
	if m.shader != nil {
		m.shader.Deallocate()
		m.shader = nil
	}
}

// Progress returns the normalized timeline position in [0, 1].
func (m *Morph) Progress() float64 {
	return m.timeline.Progress()
}

// Phase returns the current timeline phase.
func (m *Morph) Phase() Phase {
	return m.timeline.Phase()
}

// Grid returns the current tile grid dimensions.
func (m *Morph) Grid() TileCount {
	return TileCount{X: m.gridX, Y: m.gridY}
}

// IsDisposed reports whether Dispose has been called.
func (m *Morph) IsDisposed() bool {
	return m.disposed
}
