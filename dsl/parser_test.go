package dsl

import "testing"

func TestParseStringBasic(t *testing.T) {
	doc, err := ParseString(`
paragraph ltr {
	set align center
	set hyphenate true
	span font="Inter" size=12 color=#202020 {
		"Hello, "
	}
	span font="Inter" size=12 underline=true link="https://example.com" {
		"world"
	}
	break
	inlay src="icon.png" width=16 height=16
}
`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if doc.Direction != "ltr" {
		t.Fatalf("direction = %q, want ltr", doc.Direction)
	}
	if len(doc.Items) != 6 {
		t.Fatalf("len(Items) = %d, want 6", len(doc.Items))
	}
	if doc.Items[0].Set == nil || doc.Items[0].Set.Key != "align" {
		t.Fatalf("Items[0] = %+v, want a set-align statement", doc.Items[0])
	}
	if doc.Items[2].Span == nil || string(doc.Items[2].Span.Text) != "Hello, " {
		t.Fatalf("Items[2] span text = %q, want %q", doc.Items[2].Span.Text, "Hello, ")
	}
	if doc.Items[5].Inlay == nil {
		t.Fatalf("Items[5] = %+v, want an inlay statement", doc.Items[5])
	}
}

func TestParseStringRejectsUnknownStatement(t *testing.T) {
	_, err := ParseString(`
paragraph ltr {
	frobnicate
}
`)
	if err == nil {
		t.Fatal("expected a parse error for an unrecognized statement")
	}
}
