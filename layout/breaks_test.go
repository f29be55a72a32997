package layout

import "testing"

func TestClassifyLineBreaksAllowsAfterSpace(t *testing.T) {
	u := []rune("go home")
	classes := classifyLineBreaks(u)
	if len(classes) != len(u) {
		t.Fatalf("len(classes) = %d, want %d", len(classes), len(u))
	}
	spaceIdx := 2 // the space between "go" and "home"
	if classes[spaceIdx] != AllowBreak {
		t.Errorf("classes[%d] = %v, want AllowBreak after the space", spaceIdx, classes[spaceIdx])
	}
}

func TestClassifyLineBreaksMustBreakAtNewline(t *testing.T) {
	u := []rune("a\nb")
	classes := classifyLineBreaks(u)
	if classes[1] != MustBreak {
		t.Errorf("classes[1] = %v, want MustBreak at a newline", classes[1])
	}
}

func TestClassifyLineBreaksInsideCluster(t *testing.T) {
	// "e" followed by a combining acute accent (U+0301) forms one
	// grapheme cluster; the break verdict falls only after the whole
	// cluster, so the first rune is classified InsideChar.
	u := []rune{'e', '́', 'x'}
	classes := classifyLineBreaks(u)
	if classes[0] != InsideChar {
		t.Errorf("classes[0] = %v, want InsideChar (mid-cluster)", classes[0])
	}
}

func TestClassifyLineBreaksEmpty(t *testing.T) {
	if classes := classifyLineBreaks(nil); len(classes) != 0 {
		t.Errorf("len(classes) = %d, want 0 for empty input", len(classes))
	}
}

func TestClassifyWordBreaksMarksWordEnd(t *testing.T) {
	u := []rune("don't stop")
	bounds := classifyWordBreaks(u)
	spaceIdx := 5
	if !bounds[spaceIdx] {
		t.Errorf("bounds[%d] = false, want a word boundary at the space", spaceIdx)
	}
	// "don't" should not itself be split at the apostrophe.
	apostropheIdx := 3
	if bounds[apostropheIdx] {
		t.Errorf("bounds[%d] = true, want no word boundary inside \"don't\"", apostropheIdx)
	}
}
