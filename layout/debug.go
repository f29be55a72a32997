package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// debugCommand is the JSON-friendly projection of a DrawCommand: fixed-
// point coordinates converted to pixel floats so the dump is readable
// without knowing the engine's internal unit scale.
type debugCommand struct {
	Kind    string  `json:"kind"`
	Layer   int     `json:"layer"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	W       float64 `json:"w,omitempty"`
	H       float64 `json:"h,omitempty"`
	GlyphID uint32  `json:"glyphId,omitempty"`
	Color   string  `json:"color,omitempty"`
}

type debugLink struct {
	URL   string          `json:"url"`
	Rects []debugLinkRect `json:"rects"`
}

type debugLinkRect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type debugLayout struct {
	FirstBaseline float64        `json:"firstBaseline"`
	Height        float64        `json:"height"`
	Left          float64        `json:"left"`
	Right         float64        `json:"right"`
	Commands      []debugCommand `json:"commands"`
	Links         []debugLink    `json:"links"`
}

func (k DrawKind) String() string {
	switch k {
	case DrawGlyph:
		return "glyph"
	case DrawRect:
		return "rect"
	case DrawImage:
		return "image"
	default:
		return "unknown"
	}
}

func toDebug(result *TextLayout) debugLayout {
	out := debugLayout{
		FirstBaseline: ToPixels(result.FirstBaseline),
		Height:        ToPixels(result.Height),
		Left:          ToPixels(result.Left),
		Right:         ToPixels(result.Right),
	}
	for _, c := range result.Commands {
		out.Commands = append(out.Commands, debugCommand{
			Kind:    c.Kind.String(),
			Layer:   c.Layer,
			X:       ToPixels(c.X),
			Y:       ToPixels(c.Y),
			W:       ToPixels(c.W),
			H:       ToPixels(c.H),
			GlyphID: c.GlyphID,
			Color:   fmt.Sprintf("#%02x%02x%02x%02x", c.Color.R, c.Color.G, c.Color.B, c.Color.A),
		})
	}
	for _, l := range result.Links {
		dl := debugLink{URL: l.URL}
		for _, rect := range l.Rects {
			dl.Rects = append(dl.Rects, debugLinkRect{
				X: ToPixels(rect.X), Y: ToPixels(rect.Y), W: ToPixels(rect.W), H: ToPixels(rect.H),
			})
		}
		out.Links = append(out.Links, dl)
	}
	return out
}

// WriteDebugJSON dumps result as indented JSON to path, for inspecting a
// layout run without a renderer.
func WriteDebugJSON(result *TextLayout, path string) error {
	data, err := json.MarshalIndent(toDebug(result), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal debug layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write debug layout: %w", err)
	}
	return nil
}
