package planar

import (
	"github.com/glyphtri/glyphtri/dcel"
	"github.com/glyphtri/glyphtri/geom"
)

// An event is a sweep-line stopping point: a shape vertex, or a later
// intersection point discovered during the sweep. Every segment incident
// to it is oriented so that its origin is the topologically-above event.
type event struct {
	pos geom.Vector
	in  []*segment // segments whose End is this event
	out []*segment // segments whose Origin is this event
	id  int

	vertex *dcel.Vertex
}

// A segment is one oriented shape edge (Origin above End per geom.Above),
// or a sub-segment produced when the sweep splices an intersection.
type segment struct {
	origin, end *event
	edge        *dcel.HalfEdge // the half-edge directed origin -> end
}

func removeSeg(list *[]*segment, s *segment) {
	xs := *list
	for i, x := range xs {
		if x == s {
			*list = append(xs[:i], xs[i+1:]...)
			return
		}
	}
}

// pointLeftOfSeg reports whether p lies to the left of the line through
// segment s, evaluated at p's y-coordinate.
func pointLeftOfSeg(p geom.Vector, s *segment) bool {
	b1, b2 := s.origin.pos, s.end.pos
	x := b1.X + (b2.X-b1.X)*(p.Y-b1.Y)/(b2.Y-b1.Y)
	return p.X < x
}

// segLeftOfSeg reports whether segment a is left of segment b, evaluated
// at whichever of a's endpoints is not above b's origin. This is the
// context-bearing comparator used throughout the sweep: it is not a total
// order on fixed keys, since its answer depends on where a and b
// currently stand relative to each other, not on stable keys.
func segLeftOfSeg(a, b *segment) bool {
	if geom.Above(b.origin.pos, a.origin.pos) {
		return pointLeftOfSeg(a.origin.pos, b)
	}
	return pointLeftOfSeg(a.end.pos, b)
}
