package faces

import (
	"math"

	"github.com/glyphtri/glyphtri/dcel"
	"github.com/glyphtri/glyphtri/geom"
)

// component is one boundary cycle together with its classification and
// its nesting parent, discovered while connecting the arrangement's
// cycles into faces.
type component struct {
	cyc    []*dcel.HalfEdge
	area   float64
	outer  bool
	parent int // index into the component slice, or -1 if top-level
	face   *dcel.Face
}

// ConnectComponents discovers every boundary cycle in el, classifies each
// as an outer (filled) or inner (hole) boundary, nests them by point
// containment, and allocates a Face per connected region plus the single
// unbounded exterior Face that the rest of the module can rely on being
// present and alone in having Outer == nil.
//
// el must already be the result of planar.MakePlanar; ConnectComponents
// does not itself remove crossings.
func ConnectComponents(el *dcel.EdgeList) {
	cycles := discoverCycles(el)

	components := make([]*component, 0, len(cycles))
	for _, cyc := range cycles {
		a := signedArea(cyc)
		components = append(components, &component{
			cyc:    cyc,
			area:   a,
			outer:  a > 0,
			parent: -1,
		})
	}

	points := make([]geom.Vector, len(components))
	for i, c := range components {
		points[i] = representativePoint(c.cyc[0])
	}

	for i, c := range components {
		best := -1
		bestArea := math.Inf(1)
		for j, other := range components {
			if i == j || !pointInPolygon(points[i], other.cyc) {
				continue
			}
			if a := math.Abs(other.area); a < bestArea {
				bestArea, best = a, j
			}
		}
		c.parent = best
	}

	exterior := el.NewFace()
	exterior.Interior = dcel.Exterior

	for _, c := range components {
		if c.outer {
			c.face = el.NewFace()
			c.face.Interior = dcel.Interior
			c.face.Outer = c.cyc[0]
		}
	}

	for i, c := range components {
		switch {
		case c.outer && c.parent < 0:
			exterior.Inners = append(exterior.Inners, c.cyc[0])
		case c.outer && c.parent >= 0 && components[c.parent].outer:
			// A filled cycle sitting directly inside another filled
			// cycle's interior, with no hole boundary between them (an
			// enclosure glyph's inner stroke drawn inside its outer
			// box). It gets its own face above, but the enclosing
			// face's triangulation must still exclude this area, so it
			// is also registered as one of that face's Inners.
			p := components[c.parent]
			p.face.Inners = append(p.face.Inners, c.cyc[0])
		case !c.outer && c.parent >= 0 && components[c.parent].outer:
			p := components[c.parent]
			p.face.Inners = append(p.face.Inners, c.cyc[0])
		case !c.outer:
			T().Infof("faces: cycle %d (a hole) has no enclosing outer cycle; attaching it to the exterior face", i)
			exterior.Inners = append(exterior.Inners, c.cyc[0])
		}
	}

	for _, c := range components {
		f := exterior
		switch {
		case c.outer:
			f = c.face
		case c.parent >= 0 && components[c.parent].outer:
			f = components[c.parent].face
		}
		dcel.SetLeftFace(c.cyc[0], f)
		dcel.AlignVertices(c.cyc[0])
	}

	T().Debugf("faces: %d cycle(s) resolved into %d interior face(s) plus the exterior", len(components), len(el.Faces)-1)
}
