package glitchmorph

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestMorphShaderCompiles(t *testing.T) {
	s, err := ebiten.NewShader([]byte(morphShaderSrc))
	if err != nil {
		t.Fatalf("morph shader failed to compile: %v", err)
	}
	s.Deallocate()
}

func TestMorphShaderDeclaresUniforms(t *testing.T) {
	// The uniform names pushed by syncUniforms must all appear in the
	// source; a silent rename on either side would break rendering without
	// any compile error.
	for _, name := range []string{
		"Progress", "Time", "Bounds", "Grid", "ViewSize", "FlipRatio", "InvertThreshold",
	} {
		if !strings.Contains(morphShaderSrc, "var "+name+" ") {
			t.Errorf("shader source does not declare uniform %q", name)
		}
	}
}

func TestMorphShaderUsesPixelUnit(t *testing.T) {
	if !strings.HasPrefix(morphShaderSrc, "//kage:unit pixels") {
		t.Error("morph shader must use pixel units for multi-size source sampling")
	}
}
