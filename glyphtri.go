// Package glyphtri turns a TrueType glyph outline into a triangle mesh:
// decode the outline with package truetype, planarise and face-build it
// with packages planar and faces, then triangulate each interior face
// with package triangulate. This file wires the four stages together
// behind the small public surface most callers need.
package glyphtri

import (
	"io"

	"github.com/glyphtri/glyphtri/dcel"
	"github.com/glyphtri/glyphtri/faces"
	"github.com/glyphtri/glyphtri/planar"
	"github.com/glyphtri/glyphtri/shape"
	"github.com/glyphtri/glyphtri/triangulate"
	"github.com/glyphtri/glyphtri/truetype"
)

// Font is the parsed form of an OpenType/TrueType container.
type Font = truetype.Font

// GlyphOptions configures the outline decode/interpolation step.
type GlyphOptions = truetype.Options

// LoadFont reads stream fully and parses it as an sfnt container.
func LoadFont(stream io.Reader) (*Font, error) {
	return truetype.Load(stream)
}

// CharWidth returns the advance width of the glyph the cmap maps r to,
// in normalised em units.
func CharWidth(font *Font, r rune) float32 {
	return font.CharWidth(r)
}

// GlyphShape decodes and interpolates the outline of the glyph the cmap
// maps r to. It returns a *truetype.Error with Kind NotFound if r has
// no cmap entry.
func GlyphShape(font *Font, r rune, opts *GlyphOptions) (*shape.Shape, error) {
	return font.GlyphShape(r, opts)
}

// MakePlanar runs the decoder-independent half of the pipeline: it
// sweeps s's segments into a fully planar arrangement and reconstructs
// its faces, without triangulating them. Useful on its own for
// debugging or drawing a wireframe.
func MakePlanar(s *shape.Shape) *dcel.EdgeList {
	el := planar.MakePlanar(s)
	faces.ConnectComponents(el)
	return el
}

// Triangulate runs the full pipeline - planarise, build faces,
// triangulate every interior face - and returns the resulting edge
// list. Every face with Interior == dcel.Interior ends up bounded by
// exactly three half-edges.
func Triangulate(s *shape.Shape) *dcel.EdgeList {
	el := MakePlanar(s)
	for _, f := range el.Faces {
		if f.Interior == dcel.Interior {
			triangulate.TriangulateFace(el, f)
		}
	}
	return el
}

// TriangulateGlyph is a convenience that decodes r's outline from font
// and runs it through Triangulate in one step.
func TriangulateGlyph(font *Font, r rune, opts *GlyphOptions) (*dcel.EdgeList, error) {
	s, err := GlyphShape(font, r, opts)
	if err != nil {
		return nil, err
	}
	return Triangulate(s), nil
}
