package layout

import "golang.org/x/image/math/fixed"

// Unit is the engine's internal coordinate type: a 26.6 fixed-point number,
// i.e. 1/64th of a pixel. Rasterizers divide by 64 when mapping to device
// pixels. golang.org/x/image/math/fixed.Int26_6 is the same representation
// used by the shaping glyph offsets and advances this package consumes, so
// values cross the shaping boundary without conversion.
type Unit = fixed.Int26_6

// FromPixels converts a float64 pixel value to the engine's fixed-point
// unit.
func FromPixels(px float64) Unit {
	return fixed.Int26_6(px * 64)
}

// ToPixels converts a fixed-point unit back to a float64 pixel value.
func ToPixels(u Unit) float64 {
	return float64(u) / 64
}

// ZeroUnit is the zero value of Unit, spelled out for readability at call
// sites that build up accumulators.
const ZeroUnit Unit = 0

func maxUnit(a, b Unit) Unit {
	if a > b {
		return a
	}
	return b
}

func minUnit(a, b Unit) Unit {
	if a < b {
		return a
	}
	return b
}

func absUnit(a Unit) Unit {
	if a < 0 {
		return -a
	}
	return a
}
