package layout

// Bidi formatting controls stripped from the working stream per §3: the
// left-to-right/right-to-left embedding controls and their terminator.
const (
	leftToRightEmbedding  = '‪'
	rightToLeftEmbedding  = '‫'
	popDirectionalFormat  = '‬'
)

func isBidiControl(r rune) bool {
	return r == leftToRightEmbedding || r == rightToLeftEmbedding || r == popDirectionalFormat
}

// LayoutParagraph is the engine's entry point. It is a pure function of
// its inputs plus whatever font cache the caller's FontList/FontFace
// implementations share; it performs no I/O and does not block.
//
// Pre-conditions: len(attributes) == len(codepoints); every attribute with
// a non-zero LinkID indexes a valid URL in properties.Links; every
// attribute's font list is non-nil unless the attribute carries an inlay.
// Post-conditions: the result's FirstBaseline is set and every coordinate
// (commands, link rectangles) is absolute. Height is the paragraph's own
// height measured from ystart (0 for an empty paragraph), not an absolute
// y coordinate.
func LayoutParagraph(codepoints []rune, attributes []Attributes, shape Shape, properties *Properties, ystart Unit, hyph Hyphenator) (*TextLayout, *Error) {
	if len(codepoints) != len(attributes) {
		return nil, newError(InvalidInput, "attribute/codepoint length mismatch", nil)
	}
	for _, a := range attributes {
		if a.LinkID < 0 || a.LinkID > len(properties.Links) {
			return nil, newError(InvalidInput, "link id references a missing URL", nil)
		}
		if a.Inlay == nil && a.Font == nil {
			return nil, newError(InvalidInput, "attribute has no font and no inlay", nil)
		}
	}

	if len(codepoints) == 0 {
		return &TextLayout{FirstBaseline: ystart, Height: 0, boundsSet: false}, nil
	}

	u, attrs, _ := stripBidiControls(codepoints, attributes)
	if len(u) == 0 {
		return &TextLayout{FirstBaseline: ystart, Height: 0}, nil
	}

	levels, err := resolveBidiLevels(u, properties.BaseDirection)
	if err != nil {
		return nil, err
	}

	langOf := func(i int) string { return attrs[i].Lang }
	breakAfter := classifyBreaksPerLanguageRun(u, langOf)

	var hyphenMarks []bool
	if properties.HyphenationEnabled && hyph != nil {
		hyphenMarks = markHyphenPoints(u, langOf, hyph)
	} else {
		hyphenMarks = make([]bool, len(u))
	}

	runs, serr := segmentAndShapeRuns(u, attrs, levels, breakAfter, hyphenMarks, properties.UnderlineFont)
	if serr != nil {
		return nil, serr
	}

	var out *TextLayout
	if properties.OptimizeLineBreaks {
		out = optimizeAssemble(runs, shape, properties, ystart)
	} else {
		out = greedyAssemble(runs, shape, properties, ystart)
	}
	return out, nil
}

// stripBidiControls removes the three embedding/override controls from
// the codepoint stream, returning the cleaned stream, the attributes
// re-indexed to match it, and a back-map from cleaned index to original
// index (strictly increasing, as required by §3's invariants).
func stripBidiControls(codepoints []rune, attributes []Attributes) ([]rune, []Attributes, []int) {
	u := make([]rune, 0, len(codepoints))
	attrs := make([]Attributes, 0, len(attributes))
	backmap := make([]int, 0, len(codepoints))
	for i, r := range codepoints {
		if isBidiControl(r) {
			continue
		}
		u = append(u, r)
		attrs = append(attrs, attributes[i])
		backmap = append(backmap, i)
	}
	return u, attrs, backmap
}

// classifyBreaksPerLanguageRun implements §4.2: each contiguous run of
// codepoints sharing a language tag is classified together with one
// look-ahead codepoint borrowed from the following run (when present), so
// that the algorithm's end-of-buffer forced break never lands on a
// language-run boundary that isn't really the end of the paragraph.
func classifyBreaksPerLanguageRun(u []rune, langOf func(int) string) []BreakClass {
	n := len(u)
	out := make([]BreakClass, n)
	i := 0
	for i < n {
		lang := langOf(i)
		j := i + 1
		for j < n && langOf(j) == lang {
			j++
		}
		end := j
		if end < n {
			end++
		}
		classes := classifyLineBreaks(u[i:end])
		copy(out[i:j], classes[:j-i])
		i = j
	}
	return out
}
