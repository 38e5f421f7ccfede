package triangulate

import (
	"math"
	"sort"

	"github.com/glyphtri/glyphtri/dcel"
	"github.com/glyphtri/glyphtri/geom"
)

// TriangulateFace reduces f, an interior face of el, to triangles: it
// first runs MonotonePartition to split f (and any holes it still
// carries) into y-monotone pieces, then triangulates each piece with the
// classical stack algorithm. It is the composition the public
// package-level Triangulate entry point calls for every interior face.
func TriangulateFace(el *dcel.EdgeList, f *dcel.Face) {
	for _, piece := range MonotonePartition(el, f) {
		TriangulateMonotone(el, piece)
	}
}

// TriangulateMonotone triangulates g, a simple (hole-free) y-monotone
// face, by inserting diagonals with the classical stack algorithm. Faces
// that are already triangles (three boundary edges) are left untouched.
func TriangulateMonotone(el *dcel.EdgeList, g *dcel.Face) {
	if g.Outer == nil || dcel.CycleLen(g.Outer) <= 3 {
		return
	}

	verts, rightChain := monotoneOrder(g.Outer)
	n := len(verts)

	stack := []*dcel.Vertex{verts[0], verts[1]}
	cur := g

	for j := 2; j < n-1; j++ {
		uj := verts[j]
		top := stack[len(stack)-1]

		if rightChain[uj] != rightChain[top] {
			// Every vertex still on the stack is popped; a diagonal is
			// inserted to each except the last one popped, which is the
			// bottom of the stack (stack[0]) - the oldest entry, already
			// adjacent to uj's chain by construction.
			for i := 1; i < len(stack); i++ {
				cur = addDiagonalTracked(el, cur, uj, stack[i])
			}
			last := top
			stack = []*dcel.Vertex{last, uj}
			continue
		}

		last := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for len(stack) > 0 && diagonalInside(uj, stack[len(stack)-1], last, rightChain[uj]) {
			cur = addDiagonalTracked(el, cur, uj, stack[len(stack)-1])
			last = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, last, uj)
	}

	un := verts[n-1]
	for i := 1; i < len(stack)-1; i++ {
		cur = addDiagonalTracked(el, cur, un, stack[i])
	}
}

// diagonalInside reports whether the diagonal from v to peek, the stack
// entry just below the one last popped (prev), still lies inside the
// monotone polygon: the clockwise angular distance from the direction
// v->peek to v->prev must be less than pi on the right chain, or greater
// than pi on the left chain.
func diagonalInside(v, peek, prev *dcel.Vertex, rightChain bool) bool {
	theta := geom.AngleBetween(geom.Angle(v.Pos, peek.Pos), geom.Angle(v.Pos, prev.Pos))
	if rightChain {
		return theta < math.Pi
	}
	return theta > math.Pi
}

// monotoneOrder returns every vertex of outer's cycle sorted top to
// bottom, plus a set marking which are on the right chain: the boundary
// is walked forward (Succ) from the bottommost vertex up to the topmost
// one, and since an outer boundary is counter-clockwise (interior to the
// left of Succ), that forward walk traces the polygon's right-hand side.
func monotoneOrder(outer *dcel.HalfEdge) ([]*dcel.Vertex, map[*dcel.Vertex]bool) {
	var all []*dcel.Vertex
	dcel.WalkCycle(outer, func(e *dcel.HalfEdge) { all = append(all, e.Origin) })

	topIdx, botIdx := 0, 0
	for i, v := range all {
		if geom.Above(v.Pos, all[topIdx].Pos) {
			topIdx = i
		}
		if geom.Above(all[botIdx].Pos, v.Pos) {
			botIdx = i
		}
	}

	n := len(all)
	rightChain := make(map[*dcel.Vertex]bool, n)
	for i := (botIdx + 1) % n; i != topIdx; i = (i + 1) % n {
		rightChain[all[i]] = true
	}

	verts := append([]*dcel.Vertex(nil), all...)
	sort.Slice(verts, func(i, j int) bool { return geom.Above(verts[i].Pos, verts[j].Pos) })
	return verts, rightChain
}
