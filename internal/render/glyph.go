// Package render translates the host's glyph runs and cursor state into
// engine draw commands. Translation is stateless: each call reads the run and
// the frame metrics it is handed and emits commands in input order.
package render

import "github.com/1broseidon/glyphbridge/internal/engine"

// GlyphKind tags one drawable unit in a run.
type GlyphKind int

const (
	// GlyphChar is a character glyph.
	GlyphChar GlyphKind = iota
	// GlyphStretch is a stretch of blank space filled with the face
	// background.
	GlyphStretch
	// GlyphImage is an inline image. Unsupported: image glyphs are skipped
	// without disturbing the rest of the run.
	GlyphImage
)

// Glyph is one drawable unit.
type Glyph struct {
	Kind       GlyphKind
	Ch         rune
	PixelWidth int
}

// Run is an ordered sequence of glyphs sharing one face and baseline.
type Run struct {
	FaceID      int
	FontAscent  int
	FontDescent int
	Glyphs      []Glyph
}

// TranslateRun emits one engine command per character or stretch glyph, in
// input order. Image and unknown glyphs are skipped silently; a bad glyph
// must not abort the rest of the run. Returns the number of commands emitted.
func TranslateRun(eng engine.Engine, run Run, lineHeight int) int {
	emitted := 0
	for _, g := range run.Glyphs {
		switch g.Kind {
		case GlyphChar:
			eng.AddCharGlyph(g.Ch, run.FaceID, g.PixelWidth, run.FontAscent, run.FontDescent)
			emitted++
		case GlyphStretch:
			eng.AddStretchGlyph(g.PixelWidth, lineHeight, run.FaceID)
			emitted++
		case GlyphImage:
			// Not supported yet.
		default:
		}
	}
	return emitted
}
