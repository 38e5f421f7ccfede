package faces

import (
	"github.com/glyphtri/glyphtri/dcel"
	"github.com/glyphtri/glyphtri/geom"
)

// discoverCycles partitions every half-edge in el into its Succ-orbit.
// Because the planariser's linkVertex (see package planar) threads every
// half-edge around its origin vertex exactly once, Succ is already a permutation of the
// half-edge set; its orbits are precisely the boundary cycles, with no
// extra repair pass needed for vertices that several cycles pass
// through (e.g. two triangles touching at a single shared vertex).
func discoverCycles(el *dcel.EdgeList) [][]*dcel.HalfEdge {
	seen := make(map[*dcel.HalfEdge]bool, len(el.HalfEdges))
	var cycles [][]*dcel.HalfEdge
	for _, start := range el.HalfEdges {
		if seen[start] {
			continue
		}
		var cyc []*dcel.HalfEdge
		dcel.WalkCycle(start, func(e *dcel.HalfEdge) {
			seen[e] = true
			cyc = append(cyc, e)
		})
		if len(cyc) <= 2 {
			// A 2-cycle is a dangling edge bounding no area; the
			// planariser's tail pruning should already have removed its
			// vertices, but a defensive check costs nothing.
			continue
		}
		cycles = append(cycles, cyc)
	}
	return cycles
}

// signedArea returns the signed area enclosed by cyc, via the shoelace
// formula. A cycle wound counter-clockwise (the face it bounds
// lies to its left, per the half-edge convention) has positive area; one
// wound clockwise, as a hole boundary is, has negative area.
func signedArea(cyc []*dcel.HalfEdge) float64 {
	var a float64
	for _, e := range cyc {
		p, q := e.Origin.Pos, e.Succ.Origin.Pos
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// representativePoint returns a point guaranteed to lie just inside the
// face cyc bounds, near its leftmost vertex: nudged a small fraction of
// the adjoining edge's length along that edge and to its left (interior)
// side. Using the leftmost vertex itself risks landing exactly on a
// vertex shared with an unrelated touching cycle; moving along cyc's own
// edge avoids that without assuming convexity, so it holds even for
// concave (e.g. "U"-shaped) boundaries.
func representativePoint(head *dcel.HalfEdge) geom.Vector {
	left := dcel.LeftmostEdge(head)
	v := left.Origin.Pos
	next := left.Succ.Origin.Pos
	dir := next.Sub(v)
	l := dir.Len()
	if l == 0 {
		return v
	}
	u := dir.Scale(1 / l)
	leftNormal := geom.Vector{X: -u.Y, Y: u.X}
	eps := l * 0.01
	return v.Add(u.Scale(eps)).Add(leftNormal.Scale(eps))
}

// pointInPolygon reports whether p lies inside the closed polygon traced
// by cyc's vertices, via the standard even-odd ray-casting test. The
// winding direction of cyc does not matter.
func pointInPolygon(p geom.Vector, cyc []*dcel.HalfEdge) bool {
	inside := false
	n := len(cyc)
	for i := 0; i < n; i++ {
		a := cyc[i].Origin.Pos
		b := cyc[(i+1)%n].Origin.Pos
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
