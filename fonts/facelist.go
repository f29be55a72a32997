package fonts

import "github.com/dhilip89/stll/layout"

// FallbackList resolves a codepoint against an ordered chain of faces,
// returning the first one that actually covers the glyph. If none do, it
// falls back to the first face in the chain so shaping still has
// something to draw (typically the font's own ".notdef" box).
type FallbackList struct {
	faces []layout.FontFace
}

// NewFallbackList builds a FontList from faces in fallback priority
// order; faces must be non-empty.
func NewFallbackList(faces ...layout.FontFace) *FallbackList {
	return &FallbackList{faces: faces}
}

func (l *FallbackList) Get(r rune) layout.FontFace {
	if len(l.faces) == 0 {
		return nil
	}
	for _, f := range l.faces {
		if f.ContainsGlyph(r) {
			return f
		}
	}
	return l.faces[0]
}
