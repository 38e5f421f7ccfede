// Command glyphmesh loads a TrueType font, triangulates the outline of
// one glyph, and dumps vertex, face, and triangle counts. It is a debug
// dumper, not a renderer.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/glyphtri/glyphtri/dcel"
	"github.com/glyphtri/glyphtri"
)

var (
	fontfile = flag.String("font", "", "filename of the TrueType font to load")
	char     = flag.String("char", "A", "the single character to triangulate")
	interp   = flag.Int("interp", 3, "Bézier interpolation level")
)

func main() {
	flag.Parse()
	if *fontfile == "" {
		fmt.Fprintln(os.Stderr, "glyphmesh: -font is required")
		os.Exit(1)
	}
	r := []rune(*char)
	if len(r) != 1 {
		fmt.Fprintf(os.Stderr, "glyphmesh: -char must be exactly one character, got %q\n", *char)
		os.Exit(1)
	}

	f, err := os.Open(*fontfile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glyphmesh: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	font, err := glyphtri.LoadFont(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glyphmesh: loading %s: %v\n", *fontfile, err)
		os.Exit(1)
	}

	el, err := glyphtri.TriangulateGlyph(font, r[0], &glyphtri.GlyphOptions{Interpolation: *interp})
	if err != nil {
		fmt.Fprintf(os.Stderr, "glyphmesh: triangulating %q: %v\n", *char, err)
		os.Exit(1)
	}

	dumpMesh(el, r[0])
}

func dumpMesh(el *dcel.EdgeList, r rune) {
	nTriangles, nInterior := 0, 0
	for _, f := range el.Faces {
		if f.Interior != dcel.Interior {
			continue
		}
		nInterior++
		if f.Outer != nil && dcel.CycleLen(f.Outer) == 3 {
			nTriangles++
		}
	}
	fmt.Printf("glyph %q: %d vertices, %d half-edges, %d faces (%d interior, %d triangles)\n",
		r, len(el.Vertices), len(el.HalfEdges), len(el.Faces), nInterior, nTriangles)
}
