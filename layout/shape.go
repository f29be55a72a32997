package layout

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// unicodeHyphen is U+2010, the hyphen glyph shown for a soft-hyphen run
// when it terminates its line. If the run's font lacks it, asciiHyphen
// (U+002D, hyphen-minus) is used instead.
const (
	unicodeHyphen = '‐'
	asciiHyphen   = '-'
)

var shaperPool = sync.Pool{
	New: func() any { return &shaping.HarfbuzzShaper{} },
}

func isSpaceOrNewline(r rune) bool { return r == ' ' || r == '\n' }

// segmentAndShapeRuns walks the cleaned codepoint stream left to right,
// growing the current run while consecutive codepoints share embedding
// level, language, font and baseline shift and no structural boundary
// (inlay, break opportunity, whitespace edge, soft hyphen, hyphenator
// insertion point) falls between them, then shapes each finished run.
func segmentAndShapeRuns(u []rune, attrs []Attributes, levels []int, breakAfter []BreakClass, hyphenMarks []bool, underlineOverride FontFace) ([]Run, *Error) {
	var runs []Run
	n := len(u)

	for i := 0; i < n; {
		if u[i] == softHyphen {
			run, err := shapeShyRun(attrs[i], levels[i], i, underlineOverride)
			if err != nil {
				return nil, err
			}
			run.BreakAfter = breakAfter[i]
			runs = append(runs, run)
			i++
			continue
		}

		if attrs[i].Inlay != nil {
			run := shapeInlayRun(attrs[i], levels[i], i)
			run.BreakAfter = breakAfter[i]
			runs = append(runs, run)
			i++
			continue
		}

		j := i + 1
		for j < n && continuesRun(u, attrs, levels, breakAfter, hyphenMarks, j-1, j) {
			j++
		}

		run, err := shapeGlyphRun(u, attrs, levels, breakAfter, i, j, underlineOverride)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
		i = j

		if i < n && i > 0 && hyphenMarks[i-1] {
			shy, err := shapeShyRun(attrs[i-1], levels[i-1], i-1, underlineOverride)
			if err != nil {
				return nil, err
			}
			shy.BreakAfter = AllowBreak
			runs = append(runs, shy)
		}
	}

	return runs, nil
}

func continuesRun(u []rune, attrs []Attributes, levels []int, breakAfter []BreakClass, hyphenMarks []bool, a, b int) bool {
	if levels[a] != levels[b] {
		return false
	}
	if attrs[a].Lang != attrs[b].Lang {
		return false
	}
	if attrs[a].BaselineShift != attrs[b].BaselineShift {
		return false
	}
	if attrs[a].Inlay != nil || attrs[b].Inlay != nil {
		return false
	}
	if breakAfter[a] == AllowBreak || breakAfter[a] == MustBreak {
		return false
	}
	if isSpaceOrNewline(u[a]) != isSpaceOrNewline(u[b]) {
		return false
	}
	if u[a] == softHyphen || u[b] == softHyphen {
		return false
	}
	if hyphenMarks[a] {
		return false
	}
	faceA := resolveFace(attrs[a], u[a])
	faceB := resolveFace(attrs[b], u[b])
	if faceA != faceB {
		return false
	}
	return true
}

func resolveFace(a Attributes, r rune) FontFace {
	if a.Font == nil {
		return nil
	}
	return a.Font.Get(r)
}

func primaryLangTag(lang string) string {
	for i, c := range lang {
		if c == '-' {
			return lang[:i]
		}
	}
	return lang
}

// shapeGlyphRun shapes u[start:end] (a homogeneous run) via the HarfBuzz
// implementation in github.com/go-text/typesetting, then emits drawing
// commands per §4.4: a first pass accumulating absolute pen-local glyph
// positions, a second pass emitting shadows behind each glyph, the glyph
// itself and underline rectangles while merging link spans. Inlay
// attributes are handled separately, see shapeInlayRun.
func shapeGlyphRun(u []rune, attrs []Attributes, levels []int, breakAfter []BreakClass, start, end int, underlineOverride FontFace) (Run, *Error) {
	level := levels[start]
	rtl := level%2 == 1
	dir := di.DirectionLTR
	if rtl {
		dir = di.DirectionRTL
	}

	face := resolveFace(attrs[start], u[start])
	if face == nil {
		return Run{}, newError(InvalidInput, "codepoint has no font face", nil)
	}

	runes := make([]rune, end-start)
	copy(runes, u[start:end])

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      face.ShaperFace(),
		Size:      face.Size(),
		Script:    language.LookupScript(runes[0]),
		Language:  language.NewLanguage(primaryLangTag(attrs[start].Lang)),
	}

	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	shaperPool.Put(hb)

	glyphs := output.Glyphs
	for _, g := range glyphs {
		if g.YAdvance != 0 {
			return Run{}, newError(UnsupportedScript, "glyph reports non-zero y-advance", nil)
		}
	}

	// First pass: accumulate absolute pen-local x positions.
	type placed struct {
		g  shaping.Glyph
		x  Unit
		y  Unit
		cl int // source rune index, relative to start
	}
	positions := make([]placed, len(glyphs))
	var pen Unit
	for i, g := range glyphs {
		positions[i] = placed{g: g, x: pen + Unit(g.XOffset), y: Unit(g.YOffset), cl: g.ClusterIndex}
		pen += Unit(g.XAdvance)
	}
	dx := pen

	run := Run{
		DX: dx, DY: 0,
		Level:    level,
		BreakAfter: breakAfter[end-1],
		Font:     face,
		IsSpace:  isSpaceOrNewline(u[start]),
		Ascender: face.Ascender() + attrs[start].BaselineShift,
		Descender: face.Descender() - attrs[start].BaselineShift,
		Start:    start,
		End:      end,
	}

	// Track open link spans across the (possibly RTL-iterated) glyph
	// stream so contiguous same-URL glyphs merge into one rectangle.
	order := make([]int, len(positions))
	for i := range order {
		order[i] = i
	}
	if rtl {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}

	var openLink *runLink
	var openLinkID int
	flushLink := func() {
		if openLink != nil {
			run.Links = append(run.Links, *openLink)
			openLink = nil
		}
	}

	maxLayer := 0
	for _, idx := range order {
		p := positions[idx]
		attr := attrs[start+p.cl]
		baseX := p.x
		baseY := attr.BaselineShift - p.y

		for si, sh := range attr.Shadows {
			layer := len(attr.Shadows) - si
			if layer > maxLayer {
				maxLayer = layer
			}
			run.Commands = append(run.Commands, DrawCommand{
				Kind: DrawGlyph, Layer: layer,
				X: baseX + sh.DX, Y: baseY + sh.DY,
				Font: face, GlyphID: uint32(p.g.GlyphID),
				Color: sh.Color, Blur: sh.Blur,
			})
		}
		run.Commands = append(run.Commands, DrawCommand{
			Kind: DrawGlyph, Layer: 0,
			X: baseX, Y: baseY,
			Font: face, GlyphID: uint32(p.g.GlyphID),
			Color: attr.Color,
		})

		if attr.Underline {
			ulFace := face
			if underlineOverride != nil {
				ulFace = underlineOverride
			}
			pos, thick := underlineMetrics(ulFace)
			rectY := baseY - pos - thick/2
			run.Commands = append(run.Commands, DrawCommand{
				Kind: DrawRect, Layer: 0,
				X: baseX, Y: rectY, W: Unit(p.g.XAdvance), H: thick,
				Color: attr.Color,
			})
			for si, sh := range attr.Shadows {
				layer := len(attr.Shadows) - si
				run.Commands = append(run.Commands, DrawCommand{
					Kind: DrawRect, Layer: layer,
					X: baseX + sh.DX, Y: rectY + sh.DY, W: Unit(p.g.XAdvance), H: thick,
					Color: sh.Color, Blur: sh.Blur,
				})
			}
		}

		if attr.LinkID != openLinkID {
			flushLink()
			if attr.LinkID != 0 {
				openLink = &runLink{LinkID: attr.LinkID, Rect: LinkRect{X: baseX, Y: 0, W: Unit(p.g.XAdvance), H: run.Ascender - run.Descender}}
			}
			openLinkID = attr.LinkID
		} else if openLink != nil {
			openLink.Rect.W = baseX + Unit(p.g.XAdvance) - openLink.Rect.X
		}
	}
	flushLink()

	return run, nil
}

// underlineMetrics returns the underline position and thickness to use,
// flooring the thickness at 64 units (one device pixel at the 1/64-px
// scale) so fonts that mis-report a zero thickness still draw a visible
// line.
func underlineMetrics(face FontFace) (pos, thick Unit) {
	thick = face.UnderlineThickness()
	if thick < 64 {
		thick = 64
	}
	return face.UnderlinePosition(), thick
}

func shapeShyRun(attr Attributes, level, idx int, underlineOverride FontFace) (Run, *Error) {
	face := resolveFace(attr, softHyphen)
	if face == nil {
		return Run{}, newError(InvalidInput, "soft hyphen has no font face", nil)
	}
	r := unicodeHyphen
	if !face.ContainsGlyph(r) {
		r = asciiHyphen
	}

	run, err := shapeGlyphRun([]rune{r}, []Attributes{attr}, []int{level}, []BreakClass{AllowBreak}, 0, 1, underlineOverride)
	if err != nil {
		return Run{}, err
	}
	run.IsShy = true
	run.IsSpace = false
	run.Start, run.End = idx, idx+1
	return run, nil
}

func shapeInlayRun(attr Attributes, level, idx int) Run {
	inlay := attr.Inlay
	asc := inlay.Height() + attr.BaselineShift
	desc := -attr.BaselineShift

	cmds := make([]DrawCommand, len(inlay.Data()))
	for i, c := range inlay.Data() {
		c.X += 0 // translated by caller (addLine) to the pen position; kept relative here
		cmds[i] = c
	}

	links := links1(attr)
	return Run{
		Commands: cmds,
		DX:       inlay.Width(),
		Level:    level,
		Font:     nil,
		Ascender: asc,
		Descender: desc,
		Start:    idx,
		End:      idx + 1,
		Links:    links,
	}
}

func links1(attr Attributes) []runLink {
	if attr.LinkID == 0 {
		return nil
	}
	return []runLink{{LinkID: attr.LinkID, Rect: LinkRect{X: 0, Y: 0, W: 0, H: 0}}}
}
