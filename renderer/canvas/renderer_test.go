package canvasrenderer

import (
	"bytes"
	"testing"

	"github.com/dhilip89/stll/layout"
)

func TestRenderProducesPDF(t *testing.T) {
	result := &layout.TextLayout{
		FirstBaseline: layout.FromPixels(12),
		Height:        layout.FromPixels(20),
		Left:          0,
		Right:         layout.FromPixels(100),
		Commands: []layout.DrawCommand{
			{
				Kind:  layout.DrawRect,
				X:     layout.FromPixels(10),
				Y:     layout.FromPixels(10),
				W:     layout.FromPixels(40),
				H:     layout.FromPixels(5),
				Color: layout.Color{R: 20, G: 20, B: 20, A: 255},
			},
		},
	}

	r := NewRenderer()
	data, err := r.Render(result)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header: %q", data[:minInt(8, len(data))])
	}
}

func TestRenderRejectsNilLayout(t *testing.T) {
	r := NewRenderer()
	if _, err := r.Render(nil); err == nil {
		t.Fatal("expected an error for a nil layout")
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
