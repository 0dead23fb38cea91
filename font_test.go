package glitchmorph

import (
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

var (
	testFontOnce sync.Once
	testFontVal  *sfnt.Font
	testFontErr  error
)

// testFont parses the bundled Go Regular face once and shares it across all
// tests.
func testFont(t *testing.T) *sfnt.Font {
	t.Helper()
	testFontOnce.Do(func() {
		testFontVal, testFontErr = opentype.Parse(goregular.TTF)
	})
	if testFontErr != nil {
		t.Fatalf("parse test font: %v", testFontErr)
	}
	return testFontVal
}
