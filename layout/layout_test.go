package layout

import "testing"

func TestLayoutParagraphRejectsLengthMismatch(t *testing.T) {
	_, err := LayoutParagraph([]rune("ab"), []Attributes{{}}, RectShape{X1: FromPixels(100)}, &Properties{}, 0, nil)
	if err == nil || err.Kind != InvalidInput {
		t.Fatalf("err = %v, want an InvalidInput error", err)
	}
}

func TestLayoutParagraphRejectsMissingFontAndInlay(t *testing.T) {
	_, err := LayoutParagraph([]rune("a"), []Attributes{{}}, RectShape{X1: FromPixels(100)}, &Properties{}, 0, nil)
	if err == nil || err.Kind != InvalidInput {
		t.Fatalf("err = %v, want an InvalidInput error for an attribute with no font or inlay", err)
	}
}

func TestLayoutParagraphRejectsDanglingLinkID(t *testing.T) {
	attrs := []Attributes{{Inlay: fakeInlay{}, LinkID: 3}}
	props := &Properties{Links: []string{"https://example.com"}}
	_, err := LayoutParagraph([]rune("a"), attrs, RectShape{X1: FromPixels(100)}, props, 0, nil)
	if err == nil || err.Kind != InvalidInput {
		t.Fatalf("err = %v, want an InvalidInput error for a link id with no matching URL", err)
	}
}

func TestLayoutParagraphEmptyInput(t *testing.T) {
	out, err := LayoutParagraph(nil, nil, RectShape{X1: FromPixels(100)}, &Properties{}, FromPixels(5), nil)
	if err != nil {
		t.Fatalf("LayoutParagraph: %v", err)
	}
	if out.FirstBaseline != FromPixels(5) {
		t.Errorf("FirstBaseline = %vpx, want 5px (ystart) for an empty paragraph", ToPixels(out.FirstBaseline))
	}
	if out.Height != 0 {
		t.Errorf("Height = %vpx, want 0 for an empty paragraph", ToPixels(out.Height))
	}
}

func TestStripBidiControlsRemovesEmbeddingMarks(t *testing.T) {
	u := []rune{leftToRightEmbedding, 'a', popDirectionalFormat, 'b'}
	attrs := []Attributes{{Lang: "x1"}, {Lang: "x2"}, {Lang: "x3"}, {Lang: "x4"}}
	cleaned, cleanedAttrs, backmap := stripBidiControls(u, attrs)
	if string(cleaned) != "ab" {
		t.Fatalf("cleaned = %q, want %q", string(cleaned), "ab")
	}
	if cleanedAttrs[0].Lang != "x2" || cleanedAttrs[1].Lang != "x4" {
		t.Fatalf("cleanedAttrs re-indexing is wrong: %+v", cleanedAttrs)
	}
	if backmap[0] != 1 || backmap[1] != 3 {
		t.Fatalf("backmap = %v, want [1 3]", backmap)
	}
}

func TestClassifyBreaksPerLanguageRunBorrowsLookahead(t *testing.T) {
	// Two language runs ("en" "ab", "fr" " c"); without the one-codepoint
	// lookahead borrowed from the next run, classifying "ab" in isolation
	// would report a forced end-of-buffer break after "b" that isn't
	// really the end of the paragraph.
	u := []rune("ab c")
	langOf := func(i int) string {
		if i < 2 {
			return "en"
		}
		return "fr"
	}
	classes := classifyBreaksPerLanguageRun(u, langOf)
	if len(classes) != len(u) {
		t.Fatalf("len(classes) = %d, want %d", len(classes), len(u))
	}
	if classes[1] == MustBreak {
		t.Errorf("classes[1] = MustBreak, want a non-forced verdict now that the lookahead rune is available")
	}
}

type fakeInlay struct{}

func (fakeInlay) Width() Unit          { return FromPixels(10) }
func (fakeInlay) Height() Unit         { return FromPixels(10) }
func (fakeInlay) Data() []DrawCommand  { return nil }
