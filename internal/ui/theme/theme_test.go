package theme

import (
	"image/color"
	"testing"
)

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func TestRegionAccent(t *testing.T) {
	if !sameColor(RegionAccent("Europe"), regionAccents["europe"]) {
		t.Error("region lookup should ignore case")
	}
	if !sameColor(RegionAccent("atlantis"), Accent) {
		t.Error("unknown region should fall back to Accent")
	}
}
