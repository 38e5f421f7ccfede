package triangulate

import (
	"math"

	"github.com/glyphtri/glyphtri/dcel"
	"github.com/glyphtri/glyphtri/geom"
)

// angleTolerance is how close two directions must be before AddDiagonal
// treats a candidate diagonal as duplicating an existing edge.
const angleTolerance = 1e-9

// outgoingAt returns every half-edge whose Origin is v, found by rotating
// around v via Pred.Twin rather than by walking any one face's boundary:
// for a half-edge e with Origin v, e.Pred arrives at v, so e.Pred.Twin
// also originates at v and is e's neighbour going around v's link. This
// answers "every outgoing half-edge at v" independent of which face(s)
// the vertex happens to touch.
func outgoingAt(v *dcel.Vertex) []*dcel.HalfEdge {
	if v.Incident == nil {
		return nil
	}
	var out []*dcel.HalfEdge
	for e := v.Incident; ; {
		out = append(out, e)
		e = e.Pred.Twin
		if e == v.Incident {
			break
		}
	}
	return out
}

// findOutgoing returns the half-edge with Origin v whose direction is the
// smallest clockwise angular distance from dir. ok is false if v has no
// outgoing half-edge, or if the closest one already runs along dir:
// add_diagonal must refuse to duplicate an existing edge.
func findOutgoing(v *dcel.Vertex, dir float64) (best *dcel.HalfEdge, ok bool) {
	bestAngle := math.Inf(1)
	for _, e := range outgoingAt(v) {
		a := geom.AngleBetween(dir, geom.Angle(v.Pos, e.Succ.Origin.Pos))
		if a >= 2*math.Pi-angleTolerance {
			// AngleBetween reports equal directions as a full turn.
			a = 0
		}
		if a < bestAngle {
			bestAngle, best = a, e
		}
	}
	if best == nil {
		return nil, false
	}
	return best, bestAngle > angleTolerance
}

// sameCycle reports whether b is reachable from a by following Succ.
func sameCycle(a, b *dcel.HalfEdge) bool {
	found := false
	dcel.WalkCycle(a, func(e *dcel.HalfEdge) {
		if e == b {
			found = true
		}
	})
	return found
}

// collectCycle returns the set of half-edges in the Succ-orbit of start.
func collectCycle(start *dcel.HalfEdge) map[*dcel.HalfEdge]bool {
	set := make(map[*dcel.HalfEdge]bool)
	dcel.WalkCycle(start, func(e *dcel.HalfEdge) { set[e] = true })
	return set
}

// spliceDiagonal performs the pure edge-list surgery of add_diagonal: it
// finds the correctly-ordered insertion point at each of v1 and v2 and
// splices in a new twinned half-edge pair down (v1->v2) and up (v2->v1),
// without touching any Face. ok is false if the diagonal would duplicate
// an edge already incident to v1 or v2. closesCycle reports whether v1
// and v2 started on the same cycle, which the caller needs to decide
// whether a face split occurred.
func spliceDiagonal(el *dcel.EdgeList, v1, v2 *dcel.Vertex) (down, up *dcel.HalfEdge, closesCycle, ok bool) {
	v1Out, ok1 := findOutgoing(v1, geom.Angle(v1.Pos, v2.Pos))
	if !ok1 {
		return nil, nil, false, false
	}
	v2Out, ok2 := findOutgoing(v2, geom.Angle(v2.Pos, v1.Pos))
	if !ok2 {
		return nil, nil, false, false
	}

	closesCycle = sameCycle(v1Out, v2Out)
	v1In, v2In := v1Out.Pred, v2Out.Pred

	down, up = el.NewEdgePair()
	down.Origin, up.Origin = v1, v2

	v1In.Succ, down.Pred = down, v1In
	v2In.Succ, up.Pred = up, v2In
	down.Succ, v2Out.Pred = v2Out, down
	up.Succ, v1Out.Pred = v1Out, up

	if v1.Incident == nil {
		v1.Incident = down
	}
	if v2.Incident == nil {
		v2.Incident = up
	}
	return down, up, closesCycle, true
}

// AddDiagonal inserts a diagonal between v1 and v2, two vertices on f's
// boundary, splicing a new twinned half-edge pair into the cycle(s) they
// sit on. It returns false, leaving el untouched, if the diagonal would
// duplicate an edge already incident to v1 or v2.
//
// If v1 and v2 start on the same cycle, the splice divides that cycle in
// two; AddDiagonal allocates a new Face for whichever side does not keep
// f's outer component, copying f's Interior state, and repartitions f's
// holes between the two by membership. If v1 and v2 start on different
// cycles (typically the outer boundary and one of its holes), the splice
// instead joins the two into a single cycle and no new face is needed;
// the hole that was absorbed is dropped from f.Inners.
func AddDiagonal(el *dcel.EdgeList, f *dcel.Face, v1, v2 *dcel.Vertex) bool {
	down, up, closesCycle, ok := spliceDiagonal(el, v1, v2)
	if !ok {
		return false
	}
	down.Face, up.Face = f, f

	if closesCycle {
		splitFace(el, f, down, up)
	} else {
		mergeHoles(f, down)
	}
	return true
}

// addDiagonalTracked behaves like AddDiagonal but returns the face that
// now contains anchor afterward. It is used by TriangulateMonotone, which
// inserts several diagonals fanning out from a single common vertex in a
// row: once the first of them splits the face, the stale *dcel.Face the
// caller started with may no longer be the piece any later diagonal in
// the fan needs to attach to, since splitFace may have handed that
// vertex's side to the newly allocated face instead.
func addDiagonalTracked(el *dcel.EdgeList, f *dcel.Face, anchor, other *dcel.Vertex) *dcel.Face {
	down, up, closesCycle, ok := spliceDiagonal(el, anchor, other)
	if !ok {
		return f
	}
	down.Face, up.Face = f, f

	if closesCycle {
		splitFace(el, f, down, up)
	} else {
		mergeHoles(f, down)
	}
	return down.Face
}

// splitFace handles the case where the diagonal divided a single cycle
// into two, one reachable from down and the other from up: it allocates
// a new face for whichever side does not keep f's outer component, and
// repartitions f's former holes between the two by post-split membership.
func splitFace(el *dcel.EdgeList, f *dcel.Face, down, up *dcel.HalfEdge) {
	downSide := collectCycle(down)

	g := el.NewFace()
	g.Interior = f.Interior

	outerOnDown := f.Outer != nil && downSide[f.Outer]

	var fSide *dcel.HalfEdge
	switch {
	case outerOnDown:
		fSide = down
		f.Outer, g.Outer = down, up
	case f.Outer != nil:
		// outer must be on up's side
		fSide = up
		f.Outer, g.Outer = up, down
	default:
		// f had no distinguished outer component; arbitrarily keep down.
		fSide = down
		f.Outer, g.Outer = down, up
	}

	fSideSet := collectCycle(fSide)
	var fInners, gInners []*dcel.HalfEdge
	for _, in := range f.Inners {
		if in == f.Outer || in == g.Outer {
			continue
		}
		if fSideSet[in] {
			fInners = append(fInners, in)
		} else {
			gInners = append(gInners, in)
		}
	}
	f.Inners, g.Inners = fInners, gInners

	dcel.SetLeftFace(f.Outer, f)
	dcel.AlignVertices(f.Outer)
	dcel.SetLeftFace(g.Outer, g)
	dcel.AlignVertices(g.Outer)
	for _, in := range g.Inners {
		dcel.SetLeftFace(in, g)
		dcel.AlignVertices(in)
	}
}

// mergeHoles handles the case where the diagonal joined two previously
// separate cycles of f (its outer boundary and a hole, or two holes) into
// one: it drops whichever of f's named components was absorbed into the
// other, keeping a single representative half-edge per surviving
// component.
func mergeHoles(f *dcel.Face, down *dcel.HalfEdge) {
	merged := collectCycle(down)

	if f.Outer != nil && merged[f.Outer] {
		kept := f.Inners[:0]
		for _, in := range f.Inners {
			if !merged[in] {
				kept = append(kept, in)
			}
		}
		f.Inners = kept
		dcel.SetLeftFace(f.Outer, f)
		dcel.AlignVertices(f.Outer)
		return
	}

	var kept []*dcel.HalfEdge
	representative := true
	for _, in := range f.Inners {
		if !merged[in] {
			kept = append(kept, in)
			continue
		}
		if representative {
			kept = append(kept, in)
			representative = false
		}
	}
	f.Inners = kept
	for _, in := range f.Inners {
		if merged[in] {
			dcel.SetLeftFace(in, f)
			dcel.AlignVertices(in)
		}
	}
}
