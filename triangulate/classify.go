package triangulate

import (
	"math"
	"sort"

	"github.com/glyphtri/glyphtri/dcel"
	"github.com/glyphtri/glyphtri/geom"
)

// sweepVertex is one vertex of a face's combined boundary (outer plus every
// inner/hole cycle), tagged with its role in the monotone-partition sweep.
type sweepVertex struct {
	v               *dcel.Vertex
	eOut            *dcel.HalfEdge // this face's outgoing half-edge at v
	ePred           *dcel.HalfEdge // this face's incoming half-edge at v
	vtype           dcel.VertexType
	interiorOnRight bool // true if v's incoming edge arrives from above
}

// classifyFace walks every boundary cycle of f (its Outer plus each of its
// Inners) and returns every vertex tagged with its monotone-partition role,
// sorted top to bottom in sweep order. The half-edge-left-is-interior
// convention holds uniformly for outer and inner cycles alike, so no special
// casing is needed for holes: a hole's clockwise winding already makes its
// interior angles read out correctly.
func classifyFace(f *dcel.Face) []*sweepVertex {
	var out []*sweepVertex
	classifyCycle := func(head *dcel.HalfEdge) {
		dcel.WalkCycle(head, func(e *dcel.HalfEdge) {
			v := e.Origin
			vIn := e.Pred.Origin.Pos
			vOut := e.Succ.Origin.Pos
			x := geom.Above(vIn, v.Pos)
			y := geom.Above(vOut, v.Pos)
			theta := geom.Angle(v.Pos, vOut)
			phi := geom.Angle(v.Pos, vIn)
			interior := ccwAngle(theta, phi)

			var t dcel.VertexType
			switch {
			case !x && !y:
				if interior < math.Pi {
					t = dcel.Start
				} else {
					t = dcel.Split
				}
			case x && y:
				if interior < math.Pi {
					t = dcel.End
				} else {
					t = dcel.Merge
				}
			default:
				t = dcel.Regular
			}
			v.Type = t
			out = append(out, &sweepVertex{
				v: v, eOut: e, ePred: e.Pred, vtype: t, interiorOnRight: x,
			})
		})
	}

	if f.Outer != nil {
		classifyCycle(f.Outer)
	}
	for _, inner := range f.Inners {
		classifyCycle(inner)
	}

	sort.Slice(out, func(i, j int) bool { return geom.Above(out[i].v.Pos, out[j].v.Pos) })
	return out
}

// ccwAngle returns the counter-clockwise angular distance from from to to,
// both given as atan2-style angles in [0, 2*pi).
func ccwAngle(from, to float64) float64 {
	d := to - from
	if d < 0 {
		d += 2 * math.Pi
	}
	return d
}
