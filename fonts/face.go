// Package fonts adapts parsed TrueType/OpenType font data to the
// layout.FontFace and layout.FontList contracts. Glyph metrics and
// coverage queries go through golang.org/x/image/font/sfnt; the HarfBuzz
// shaping handle is built through github.com/go-text/typesetting/font,
// mirroring the split the reference shaper keeps between its metrics
// source and its opt-in HarfBuzz shaper. sfnt.Metrics carries no
// underline fields, so those are read directly from the font's raw
// 'post' table (see post.go).
package fonts

import (
	"bytes"
	"fmt"
	"sync"

	gofont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"

	gttfont "github.com/go-text/typesetting/font"

	"github.com/dhilip89/stll/layout"
)

// Face is a parsed font at a fixed point size.
type Face struct {
	otFont *sfnt.Font
	gtFont *gttfont.Font
	size   layout.Unit

	mu                                  sync.Mutex
	buf                                 sfnt.Buffer
	ascender, descender                layout.Unit
	underlinePosition, underlineThickness layout.Unit
}

// NewFace parses data (a whole TTF/OTF file) and instantiates it at sizePx
// device pixels.
func NewFace(data []byte, sizePx float64) (*Face, error) {
	otFont, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font metrics: %w", err)
	}
	gtParsed, err := gttfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse font for shaping: %w", err)
	}

	f := &Face{otFont: otFont, gtFont: gtParsed.Font, size: layout.FromPixels(sizePx)}
	if err := f.loadMetrics(data, sizePx); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Face) loadMetrics(data []byte, sizePx float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, err := f.otFont.Metrics(&f.buf, f.size, gofont.HintingNone)
	if err != nil {
		return fmt.Errorf("read font metrics: %w", err)
	}
	f.ascender = layout.Unit(m.Ascent)
	f.descender = -layout.Unit(m.Descent)

	unitsPerEm := float64(f.otFont.UnitsPerEm())
	if pos, thick, ok := readPostMetrics(data, unitsPerEm, sizePx); ok {
		f.underlinePosition = layout.FromPixels(pos)
		f.underlineThickness = layout.FromPixels(thick)
	} else {
		// No readable post table: derive the same way
		// other_examples/novvoo-go-pdf__pango_gopdf.go falls back to for
		// fonts with no real metrics source.
		f.underlinePosition = f.descender / 2
		f.underlineThickness = (f.ascender - f.descender) / 20
	}
	return nil
}

func (f *Face) Ascender() layout.Unit           { return f.ascender }
func (f *Face) Descender() layout.Unit          { return f.descender }
func (f *Face) UnderlinePosition() layout.Unit  { return f.underlinePosition }
func (f *Face) UnderlineThickness() layout.Unit { return f.underlineThickness }
func (f *Face) Size() layout.Unit               { return f.size }

// ContainsGlyph reports whether the font maps r to a real glyph (glyph
// index 0 is the OpenType ".notdef" sentinel).
func (f *Face) ContainsGlyph(r rune) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	gid, err := f.otFont.GlyphIndex(&f.buf, r)
	return err == nil && gid != 0
}

// GlyphSegments returns the outline of glyph gid at this face's size, in
// the same vector-segment form golang.org/x/image/font/sfnt produces
// (MoveTo/LineTo/QuadTo/CubeTo). A glyph with no outline (space, an empty
// mark) returns a nil, nil slice.
func (f *Face) GlyphSegments(gid uint32) ([]sfnt.Segment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	segs, err := f.otFont.LoadGlyph(&f.buf, sfnt.GlyphIndex(gid), f.size, nil)
	if err != nil {
		if err == sfnt.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return segs, nil
}

// ShaperFace builds a fresh github.com/go-text/typesetting/font.Face for
// one shaping call. font.Face carries mutable glyph caches and is not
// safe for concurrent use, so callers must not retain or share the
// returned value across goroutines; font.NewFace is cheap to call per
// shaping call since the *Font it wraps is parsed once and is read-only.
func (f *Face) ShaperFace() *gttfont.Face {
	return gttfont.NewFace(f.gtFont)
}
