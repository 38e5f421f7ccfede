package triangulate

import "github.com/glyphtri/glyphtri/dcel"

// partitionStatus holds the half-edges of the face currently being
// monotone-partitioned that cross the sweep line, kept sorted left to
// right by their x-coordinate at the current sweep position. As in
// package planar's sweep status, there is no fixed sort key - an edge's
// position depends on where the sweep line currently sits - so this is a
// plain sorted slice rather than a balanced tree; a monotone-partition
// sweep rarely holds more than a few edges active at once.
//
// Each status edge's helper (the lowest vertex seen so far whose left
// neighbour on the sweep line was this edge) is kept directly on
// dcel.HalfEdge.Helper rather than in a side table, since the field
// exists for exactly this purpose and is otherwise unused outside this
// phase.
type partitionStatus struct {
	edges []*dcel.HalfEdge
}

// xAt returns e's x-coordinate at height y, where e runs from its Origin
// down to e.Succ's Origin.
func xAt(e *dcel.HalfEdge, y float64) float64 {
	a, b := e.Origin.Pos, e.Succ.Origin.Pos
	if a.Y == b.Y {
		if a.X < b.X {
			return a.X
		}
		return b.X
	}
	return a.X + (b.X-a.X)*(y-a.Y)/(b.Y-a.Y)
}

// insert adds e to the status in its correctly ordered position, as
// measured at height y (the y-coordinate of the vertex currently being
// processed, which e.Origin always equals when e is first inserted).
func (st *partitionStatus) insert(e *dcel.HalfEdge, y float64) {
	x := xAt(e, y)
	for i, f := range st.edges {
		if xAt(f, y) > x {
			st.edges = append(st.edges, nil)
			copy(st.edges[i+1:], st.edges[i:])
			st.edges[i] = e
			return
		}
	}
	st.edges = append(st.edges, e)
}

// remove deletes e from the status.
func (st *partitionStatus) remove(e *dcel.HalfEdge) {
	for i, f := range st.edges {
		if f == e {
			st.edges = append(st.edges[:i], st.edges[i+1:]...)
			return
		}
	}
}

// leftOf returns the status edge immediately left of v, or nil if none.
func (st *partitionStatus) leftOf(v *dcel.Vertex) *dcel.HalfEdge {
	var left *dcel.HalfEdge
	for _, e := range st.edges {
		if xAt(e, v.Pos.Y) < v.Pos.X {
			left = e
		} else {
			break
		}
	}
	return left
}
