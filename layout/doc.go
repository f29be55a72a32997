// Package layout lays out a single paragraph of Unicode text into a
// device-independent sequence of positioned drawing commands.
//
// The pipeline resolves bidirectional embedding levels, classifies legal
// line-break and hyphenation positions, segments the codepoint stream into
// shaping runs, shapes each run into glyphs, decorations, shadows and link
// rectangles, and finally packs the runs into lines with either a greedy or
// a globally-optimizing breaker. Font discovery, glyph outline rasterization,
// hyphenation-dictionary parsing and pixel output are all external
// collaborators reached only through the interfaces declared here.
package layout
