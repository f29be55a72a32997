package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhilip89/stll/layout"
)

// BuildOptions supplies the collaborators the parsed document can't name
// directly: font resolution and inlay construction are caller-supplied
// because they depend on concrete font files and image assets the DSL
// itself knows nothing about.
type BuildOptions struct {
	ResolveFont  func(family string, sizePx float64) (layout.FontList, error)
	ResolveInlay func(attrs map[string]string) (layout.Inlay, error)
	DefaultFont  string
	DefaultSize  float64
	DefaultColor layout.Color
}

// Build walks a parsed Document and produces the codepoint stream,
// per-codepoint attributes and paragraph properties layout.LayoutParagraph
// expects.
func Build(doc *Document, opts BuildOptions) ([]rune, []layout.Attributes, *layout.Properties, error) {
	props := &layout.Properties{
		BaseDirection: parseDirection(doc.Direction),
		Alignment:     layout.AlignLeft,
	}

	state := spanState{
		fontFamily: opts.DefaultFont,
		sizePx:     opts.DefaultSize,
		color:      opts.DefaultColor,
	}

	var codepoints []rune
	var attrs []layout.Attributes
	fontCache := map[string]layout.FontList{}

	resolveFont := func(family string, sizePx float64) (layout.FontList, error) {
		key := fmt.Sprintf("%s@%g", family, sizePx)
		if fl, ok := fontCache[key]; ok {
			return fl, nil
		}
		fl, err := opts.ResolveFont(family, sizePx)
		if err != nil {
			return nil, err
		}
		fontCache[key] = fl
		return fl, nil
	}

	for _, item := range doc.Items {
		switch {
		case item.Set != nil:
			if err := applySet(props, &state, item.Set); err != nil {
				return nil, nil, nil, err
			}

		case item.Break != nil:
			fl, err := resolveFont(state.fontFamily, state.sizePx)
			if err != nil {
				return nil, nil, nil, err
			}
			codepoints = append(codepoints, '\n')
			attrs = append(attrs, layout.Attributes{Font: fl, Lang: state.lang, Color: state.color})

		case item.Inlay != nil:
			if opts.ResolveInlay == nil {
				return nil, nil, nil, fmt.Errorf("dsl: inlay used but BuildOptions.ResolveInlay is nil")
			}
			m := attrMap(item.Inlay.Attrs)
			inlay, err := opts.ResolveInlay(m)
			if err != nil {
				return nil, nil, nil, err
			}
			codepoints = append(codepoints, '￼') // object-replacement placeholder
			attrs = append(attrs, layout.Attributes{Inlay: inlay, LinkID: state.linkID})

		case item.Span != nil:
			local := state
			m := attrMap(item.Span.Attrs)
			if err := applySpanAttrs(&local, props, m); err != nil {
				return nil, nil, nil, err
			}

			fl, err := resolveFont(local.fontFamily, local.sizePx)
			if err != nil {
				return nil, nil, nil, err
			}

			for _, r := range string(item.Span.Text) {
				codepoints = append(codepoints, r)
				attrs = append(attrs, layout.Attributes{
					Font:      fl,
					Lang:      local.lang,
					Color:     local.color,
					Underline: local.underline,
					LinkID:    local.linkID,
				})
			}
		}
	}

	return codepoints, attrs, props, nil
}

type spanState struct {
	fontFamily string
	sizePx     float64
	lang       string
	color      layout.Color
	underline  bool
	linkID     int
}

func applySet(props *layout.Properties, state *spanState, s *SetStmt) error {
	switch s.Key {
	case "align":
		a, err := parseAlignment(s.Value)
		if err != nil {
			return err
		}
		props.Alignment = a
	case "indent":
		px, err := strconv.ParseFloat(s.Value, 64)
		if err != nil {
			return fmt.Errorf("dsl: bad indent %q: %w", s.Value, err)
		}
		props.FirstLineIndent = layout.FromPixels(px)
	case "hyphenate":
		props.HyphenationEnabled = s.Value == "true"
	case "optimize":
		props.OptimizeLineBreaks = s.Value == "true"
	case "lang":
		state.lang = s.Value
	default:
		return fmt.Errorf("dsl: unknown property %q", s.Key)
	}
	return nil
}

func applySpanAttrs(state *spanState, props *layout.Properties, m map[string]string) error {
	if v, ok := m["font"]; ok {
		state.fontFamily = v
	}
	if v, ok := m["size"]; ok {
		px, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("dsl: bad size %q: %w", v, err)
		}
		state.sizePx = px
	}
	if v, ok := m["lang"]; ok {
		state.lang = v
	}
	if v, ok := m["color"]; ok {
		c, err := parseColor(v)
		if err != nil {
			return err
		}
		state.color = c
	}
	if v, ok := m["underline"]; ok {
		state.underline = v == "true"
	}
	if v, ok := m["link"]; ok {
		state.linkID = linkID(props, v)
	}
	return nil
}

// linkID interns url into props.Links, returning its 1-based id.
func linkID(props *layout.Properties, url string) int {
	for i, u := range props.Links {
		if u == url {
			return i + 1
		}
	}
	props.Links = append(props.Links, url)
	return len(props.Links)
}

// attrMap indexes attrs by key. Values arrive from the lexer already
// unescaped (string literals lose their surrounding quotes at scan time),
// so no further unquoting is needed here.
func attrMap(attrs []*Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Key] = a.Value
	}
	return m
}

func parseDirection(ident string) layout.Direction {
	if strings.EqualFold(ident, "rtl") {
		return layout.RTL
	}
	return layout.LTR
}

func parseAlignment(ident string) (layout.Alignment, error) {
	switch ident {
	case "left":
		return layout.AlignLeft, nil
	case "right":
		return layout.AlignRight, nil
	case "center":
		return layout.AlignCenter, nil
	case "justify-left":
		return layout.JustifyLeft, nil
	case "justify-right":
		return layout.JustifyRight, nil
	default:
		return 0, fmt.Errorf("dsl: unknown alignment %q", ident)
	}
}

func parseColor(hex string) (layout.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	switch len(hex) {
	case 3:
		r, err := strconv.ParseUint(hex[0:1]+hex[0:1], 16, 8)
		if err != nil {
			return layout.Color{}, err
		}
		g, err := strconv.ParseUint(hex[1:2]+hex[1:2], 16, 8)
		if err != nil {
			return layout.Color{}, err
		}
		b, err := strconv.ParseUint(hex[2:3]+hex[2:3], 16, 8)
		if err != nil {
			return layout.Color{}, err
		}
		return layout.Color{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}, nil
	case 6, 8:
		r, err := strconv.ParseUint(hex[0:2], 16, 8)
		if err != nil {
			return layout.Color{}, err
		}
		g, err := strconv.ParseUint(hex[2:4], 16, 8)
		if err != nil {
			return layout.Color{}, err
		}
		b, err := strconv.ParseUint(hex[4:6], 16, 8)
		if err != nil {
			return layout.Color{}, err
		}
		a := uint64(255)
		if len(hex) == 8 {
			a, err = strconv.ParseUint(hex[6:8], 16, 8)
			if err != nil {
				return layout.Color{}, err
			}
		}
		return layout.Color{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
	default:
		return layout.Color{}, fmt.Errorf("dsl: bad color %q", hex)
	}
}
