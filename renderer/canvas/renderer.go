// Package canvasrenderer paints a laid-out paragraph via
// github.com/tdewolff/canvas. Every glyph was already shaped and
// positioned by the layout package; this renderer's only job is turning
// each layout.DrawCommand into canvas drawing calls and encoding the
// result as a PDF.
//
// The engine's fixed-point pixel grid is mapped 1:1 onto canvas's
// millimeter coordinate space; CartesianIV keeps the origin top-left to
// match the layout's Y-down coordinates instead of canvas's default
// bottom-left Y-up page convention.
package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"golang.org/x/image/font/sfnt"

	"github.com/dhilip89/stll/fonts"
	"github.com/dhilip89/stll/layout"
	"github.com/dhilip89/stll/renderer"
)

var _ renderer.Renderer = (*Renderer)(nil)

// Renderer draws a layout.TextLayout via github.com/tdewolff/canvas.
type Renderer struct {
	pathMu    sync.Mutex
	pathCache map[pathKey]*canvas.Path
}

type pathKey struct {
	face *fonts.Face
	gid  uint32
}

// NewRenderer creates a canvas-backed renderer.
func NewRenderer() *Renderer {
	return &Renderer{pathCache: map[pathKey]*canvas.Path{}}
}

// Render paints result's commands and encodes them as a one-page PDF.
func (r *Renderer) Render(result *layout.TextLayout) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("canvasrenderer: nil layout")
	}

	width := layout.ToPixels(result.Right - result.Left)
	height := layout.ToPixels(result.Height)
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // top-left origin, matching the layout's Y-down coordinates

	originX, originY := result.Left, minCommandY(result.Commands)
	for _, cmd := range result.Commands {
		if err := r.drawCommand(ctx, cmd, originX, originY); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, width, height, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("canvasrenderer: write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func minCommandY(cmds []layout.DrawCommand) layout.Unit {
	if len(cmds) == 0 {
		return 0
	}
	min := cmds[0].Y
	for _, c := range cmds[1:] {
		if c.Y < min {
			min = c.Y
		}
	}
	return min
}

func (r *Renderer) drawCommand(ctx *canvas.Context, cmd layout.DrawCommand, originX, originY layout.Unit) error {
	x := layout.ToPixels(cmd.X - originX)
	y := layout.ToPixels(cmd.Y - originY)

	switch cmd.Kind {
	case layout.DrawGlyph:
		return r.drawGlyph(ctx, cmd, x, y)
	case layout.DrawRect:
		ctx.SetFillColor(colorFromLayout(cmd.Color))
		ctx.DrawPath(x, y, canvas.Rectangle(layout.ToPixels(cmd.W), layout.ToPixels(cmd.H)))
	case layout.DrawImage:
		return r.drawImage(ctx, cmd, x, y)
	}
	return nil
}

func (r *Renderer) drawGlyph(ctx *canvas.Context, cmd layout.DrawCommand, x, y float64) error {
	face, ok := cmd.Font.(*fonts.Face)
	if !ok {
		return fmt.Errorf("canvasrenderer: glyph command carries a %T, not *fonts.Face", cmd.Font)
	}
	path, err := r.glyphPath(face, cmd.GlyphID)
	if err != nil {
		return fmt.Errorf("canvasrenderer: load glyph %d: %w", cmd.GlyphID, err)
	}
	if path == nil {
		return nil
	}
	ctx.SetFillColor(colorFromLayout(cmd.Color))
	ctx.DrawPath(x, y, path)
	return nil
}

// glyphPath converts a glyph's outline to a canvas.Path, caching the
// result per (face, glyph id) since the same glyph is shaped repeatedly
// across a paragraph.
func (r *Renderer) glyphPath(face *fonts.Face, gid uint32) (*canvas.Path, error) {
	key := pathKey{face: face, gid: gid}

	r.pathMu.Lock()
	if p, ok := r.pathCache[key]; ok {
		r.pathMu.Unlock()
		return p, nil
	}
	r.pathMu.Unlock()

	segments, err := face.GlyphSegments(gid)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		r.pathMu.Lock()
		r.pathCache[key] = nil
		r.pathMu.Unlock()
		return nil, nil
	}

	p := &canvas.Path{}
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			p.MoveTo(toPx(seg.Args[0].X), -toPx(seg.Args[0].Y))
		case sfnt.SegmentOpLineTo:
			p.LineTo(toPx(seg.Args[0].X), -toPx(seg.Args[0].Y))
		case sfnt.SegmentOpQuadTo:
			p.QuadTo(toPx(seg.Args[0].X), -toPx(seg.Args[0].Y), toPx(seg.Args[1].X), -toPx(seg.Args[1].Y))
		case sfnt.SegmentOpCubeTo:
			p.CubeTo(
				toPx(seg.Args[0].X), -toPx(seg.Args[0].Y),
				toPx(seg.Args[1].X), -toPx(seg.Args[1].Y),
				toPx(seg.Args[2].X), -toPx(seg.Args[2].Y),
			)
		}
	}
	p.Close()

	r.pathMu.Lock()
	r.pathCache[key] = p
	r.pathMu.Unlock()
	return p, nil
}

func (r *Renderer) drawImage(ctx *canvas.Context, cmd layout.DrawCommand, x, y float64) error {
	img, ok := cmd.ImageHandle.(image.Image)
	if !ok {
		return fmt.Errorf("canvasrenderer: image command carries a %T, not image.Image", cmd.ImageHandle)
	}
	width := layout.ToPixels(cmd.W)
	dpmm := 1.0
	if width > 0 && img.Bounds().Dx() > 0 {
		dpmm = float64(img.Bounds().Dx()) / width
	}
	ctx.DrawImage(x, y, img, canvas.DPMM(dpmm))
	return nil
}

func toPx(v layout.Unit) float64 { return layout.ToPixels(v) }

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, float64(c.A)/255.0)
}
