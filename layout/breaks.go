package layout

import "github.com/scalecode-solutions/runeseg"

// classifyLineBreaks returns one BreakClass per rune in u, describing the
// line-break opportunity immediately after that rune.
//
// runeseg.StepString walks u one grapheme cluster at a time; a cluster may
// span several runes (e.g. a base letter plus combining marks), and the
// line-break verdict it returns applies to the boundary after the whole
// cluster. Every rune that is not the last rune of its cluster therefore
// sits strictly inside a grapheme and is classified InsideChar; the last
// rune of the cluster takes the verdict runeseg reports.
func classifyLineBreaks(u []rune) []BreakClass {
	classes := make([]BreakClass, len(u))
	if len(u) == 0 {
		return classes
	}

	str := string(u)
	state := -1
	runeIdx := 0
	for len(str) > 0 {
		cluster, rest, boundaries, next := runeseg.StepString(str, state)
		n := 0
		for range cluster {
			n++
		}
		for k := 0; k < n-1; k++ {
			classes[runeIdx+k] = InsideChar
		}
		classes[runeIdx+n-1] = mapLineBreak(boundaries & runeseg.MaskLine)
		runeIdx += n
		str = rest
		state = next
	}
	return classes
}

func mapLineBreak(v int) BreakClass {
	switch v {
	case runeseg.LineCanBreak:
		return AllowBreak
	case runeseg.LineMustBreak:
		return MustBreak
	default:
		return NoBreak
	}
}

// classifyWordBreaks returns, for each rune in u, whether a word boundary
// falls immediately after it. Used by the hyphenator to delimit the words
// it hands to a hyphenation dictionary — a notion distinct from line-break
// opportunities (e.g. there is a word boundary after "don't" has no
// line-break opportunity inside it).
func classifyWordBreaks(u []rune) []bool {
	bounds := make([]bool, len(u))
	if len(u) == 0 {
		return bounds
	}

	str := string(u)
	state := -1
	runeIdx := 0
	for len(str) > 0 {
		cluster, rest, boundaries, next := runeseg.StepString(str, state)
		n := 0
		for range cluster {
			n++
		}
		runeIdx += n
		if boundaries&runeseg.MaskWord != 0 {
			bounds[runeIdx-1] = true
		}
		str = rest
		state = next
	}
	return bounds
}
