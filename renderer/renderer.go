// Package renderer defines the contract for turning a laid-out paragraph
// into a final output file (PDF, PNG, ...).
package renderer

import "github.com/dhilip89/stll/layout"

// Renderer paints a finished layout.TextLayout and returns the encoded
// output bytes.
type Renderer interface {
	Render(result *layout.TextLayout) ([]byte, error)
}
