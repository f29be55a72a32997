package layout

import (
	"golang.org/x/text/unicode/bidi"
)

// resolveBidiLevels produces one embedding level per codepoint in u under
// the base direction d0, using the standard bidi algorithm
// (golang.org/x/text/unicode/bidi) to find directional runs and mapping
// each run's resolved direction to a level (even=LTR, odd=RTL).
//
// Levels returned are never above 1: right-to-left overrides nested inside
// left-to-right text (and vice versa) are represented as base-level runs
// rather than deeper embedding, which is adequate for the run segmenter's
// needs (it only cares whether adjacent codepoints share a level) and
// matches how bidi.Paragraph reports its top-level run ordering.
func resolveBidiLevels(u []rune, d0 Direction) ([]int, *Error) {
	levels := make([]int, len(u))
	if len(u) == 0 {
		return levels, nil
	}

	text := string(u)

	defaultDir := bidi.LeftToRight
	if d0 == RTL {
		defaultDir = bidi.RightToLeft
	}

	var p bidi.Paragraph
	if _, err := p.SetString(text, bidi.DefaultDirection(defaultDir)); err != nil {
		return nil, newError(OutOfResources, "bidi paragraph setup failed", err)
	}

	ordering, err := p.Order()
	if err != nil {
		return nil, newError(InvalidInput, "bidi ordering failed", err)
	}

	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		startRune, endRune := run.Pos()
		level := 0
		if run.Direction() == bidi.RightToLeft {
			level = 1
		}
		for j := startRune; j <= endRune && j < len(levels); j++ {
			levels[j] = level
		}
	}

	return levels, nil
}
