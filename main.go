package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dhilip89/stll/dsl"
	"github.com/dhilip89/stll/fonts"
	"github.com/dhilip89/stll/layout"
	"github.com/dhilip89/stll/renderer"
	canvasrenderer "github.com/dhilip89/stll/renderer/canvas"
)

func main() {
	input := flag.String("in", "examples/demo.stll", "path to a paragraph description file")
	output := flag.String("out", "output/demo.pdf", "PDF output path")
	debug := flag.String("debug", "", "optional layout debug JSON output path")
	widthPx := flag.Float64("width", 480, "flow width in pixels")
	flag.Parse()

	shape := layout.RectShape{X0: 0, X1: layout.FromPixels(*widthPx)}
	r := canvasrenderer.NewRenderer()
	if err := run(*input, *output, *debug, shape, r); err != nil {
		log.Fatalf("build failed: %v", err)
	}
	fmt.Printf("wrote %s\n", *output)
}

func run(inputPath, outputPath, debugPath string, shape layout.Shape, r renderer.Renderer) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inputPath, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	baseDir := filepath.Dir(inputPath)
	codepoints, attrs, props, err := dsl.Build(doc, dsl.BuildOptions{
		DefaultFont:  "sans",
		DefaultSize:  16,
		DefaultColor: layout.Color{A: 255},
		ResolveFont:  fontResolver(baseDir),
	})
	if err != nil {
		return fmt.Errorf("build attributes: %w", err)
	}

	result, lerr := layout.LayoutParagraph(codepoints, attrs, shape, props, 0, nil)
	if lerr != nil {
		return fmt.Errorf("layout: %w", lerr)
	}

	if debugPath != "" {
		if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
			return fmt.Errorf("create debug dir: %w", err)
		}
		if err := layout.WriteDebugJSON(result, debugPath); err != nil {
			return fmt.Errorf("write debug json: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	pdfBytes, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// fontResolver treats a span's font="..." attribute as a path to a TTF/OTF
// file, resolved relative to baseDir when not absolute.
func fontResolver(baseDir string) func(family string, sizePx float64) (layout.FontList, error) {
	return func(family string, sizePx float64) (layout.FontList, error) {
		path := family
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", path, err)
		}
		face, err := fonts.NewFace(data, sizePx)
		if err != nil {
			return nil, fmt.Errorf("load font %s: %w", path, err)
		}
		return fonts.NewFallbackList(face), nil
	}
}
