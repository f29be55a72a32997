package layout

import "testing"

func wordRun(widthPx float64, breakAfter BreakClass) Run {
	return Run{
		DX:         FromPixels(widthPx),
		Ascender:   FromPixels(10),
		Descender:  -FromPixels(2),
		BreakAfter: breakAfter,
	}
}

func spaceRun(widthPx float64, breakAfter BreakClass) Run {
	r := wordRun(widthPx, breakAfter)
	r.IsSpace = true
	return r
}

// TestGreedyAssembleWrapsAtBreakOpportunity builds five runs ("wordA",
// "space", "wordB", "space", "wordC") whose widths make wordA+space+wordB+
// space fill a 100px flow exactly and adding wordC overflow it, and checks
// the greedy assembler wraps after the second space rather than forcing a
// third word onto the first line.
func TestGreedyAssembleWrapsAtBreakOpportunity(t *testing.T) {
	runs := []Run{
		wordRun(40, NoBreak),
		spaceRun(10, AllowBreak),
		wordRun(40, NoBreak),
		spaceRun(10, AllowBreak),
		wordRun(40, MustBreak),
	}
	shape := RectShape{X0: 0, X1: FromPixels(100)}
	props := &Properties{Alignment: AlignLeft}

	out := greedyAssemble(runs, shape, props, 0)

	wantHeight := FromPixels(24) // two 12px lines
	if out.Height != wantHeight {
		t.Errorf("Height = %vpx, want %vpx (two lines)", ToPixels(out.Height), ToPixels(wantHeight))
	}
	if out.FirstBaseline != FromPixels(10) {
		t.Errorf("FirstBaseline = %vpx, want 10px", ToPixels(out.FirstBaseline))
	}
	if out.Left != 0 || out.Right != FromPixels(100) {
		t.Errorf("bounds = [%v,%v], want [0,100]", ToPixels(out.Left), ToPixels(out.Right))
	}
}

// TestGreedyAssembleNeverEmitsEmptyLine forces a single run wider than the
// flow shape and checks it still lands on one oversized line rather than
// being dropped.
func TestGreedyAssembleNeverEmitsEmptyLine(t *testing.T) {
	runs := []Run{wordRun(500, MustBreak)}
	shape := RectShape{X0: 0, X1: FromPixels(100)}
	props := &Properties{Alignment: AlignLeft}

	out := greedyAssemble(runs, shape, props, 0)
	if out.Height != FromPixels(12) {
		t.Errorf("Height = %vpx, want 12px (one oversized line)", ToPixels(out.Height))
	}
}

func TestGreedyAssembleEmptyInput(t *testing.T) {
	shape := RectShape{X0: 0, X1: FromPixels(100)}
	props := &Properties{Alignment: AlignLeft}
	out := greedyAssemble(nil, shape, props, 0)
	if out.Height != 0 {
		t.Errorf("Height = %vpx, want 0 for an empty run list", ToPixels(out.Height))
	}
}
