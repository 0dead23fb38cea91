// Package glitchmorph renders a procedural glitch transition between three
// text strings for [Ebitengine]: text A morphs into text B, then into text
// C, tile by tile, with each tile flipping and flashing inverted inside its
// own randomized window.
//
// The timeline is hover-driven and fully reversible. Hovering advances it
// forward through five phases (hold A, flip A->B, hold B, flip B->C, hold
// C); leaving runs it backward, un-flipping tiles smoothly from wherever
// they are.
//
// # Quick start
//
// Create a [Morph] from a [Config] and drive it from your ebiten.Game:
//
//	cfg := glitchmorph.DefaultConfig()
//	cfg.Texts = [3]string{"design", "build", "ship"}
//	cfg.Font = fnt // *sfnt.Font
//	cfg.Width, cfg.Height = 640, 200
//	morph, err := glitchmorph.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	func (g *Game) Update() error {
//		g.morph.SetHover(cursorOverText())
//		g.morph.Update()
//		return nil
//	}
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		g.morph.Draw(screen)
//	}
//
// Call [Morph.Resize] when the viewport changes and [Morph.Dispose] when the
// effect is removed; disposal releases every GPU resource and makes the
// morph inert.
//
// Rasterization happens on the CPU at device resolution, so the per-tile ink
// presence masks and the GPU textures always agree, and the whole schedule
// is covered by plain unit tests.
//
// [Ebitengine]: https://ebitengine.org
package glitchmorph
