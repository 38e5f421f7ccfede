// Package dcel implements the doubly-connected edge list that the
// planariser, face builder and triangulator all share: vertex, half-edge
// and face records plus the small set of linkage operations that keep
// their invariants intact.
//
// Vertices, half-edges and faces are arena-allocated into an EdgeList and
// referenced by pointer; nothing is freed before the whole EdgeList is
// discarded, since the records are mutually cyclic (twin/succ/pred).
package dcel

import "github.com/glyphtri/glyphtri/geom"

// VertexType classifies a vertex for the monotone-partition sweep.
type VertexType int

const (
	Unclassified VertexType = iota
	Start
	End
	Split
	Merge
	Regular
)

func (t VertexType) String() string {
	switch t {
	case Start:
		return "start"
	case End:
		return "end"
	case Split:
		return "split"
	case Merge:
		return "merge"
	case Regular:
		return "regular"
	default:
		return "unclassified"
	}
}

// Bits for Vertex.Flags. No package in this module sets them; the
// triangulator keeps its monotone-chain membership in a map instead.
const (
	FlagVisited = 1 << iota
	FlagUpperChain
	FlagLowerChain
)

// A Vertex is one point of the planar arrangement.
type Vertex struct {
	Pos  geom.Vector
	Type VertexType

	// Incident is one half-edge whose Origin is this vertex. After face
	// building and alignment it is guaranteed to bound the face the
	// caller is currently working on; before that it is merely some
	// outgoing half-edge.
	Incident *HalfEdge

	Flags int
	ID    int
}

// A HalfEdge is one directed side of an edge of the arrangement. The face
// it bounds lies to its left.
type HalfEdge struct {
	Origin *Vertex
	Twin   *HalfEdge
	Succ   *HalfEdge
	Pred   *HalfEdge
	Face   *Face

	// Helper is the helper vertex used by the monotone-partition sweep
	// (see package triangulate); it is unused outside that phase.
	Helper *Vertex

	// Cycle is a slot for the id of the face-boundary cycle this
	// half-edge belongs to. NewEdgePair sets it to -1, and no package in
	// this module assigns it; package faces tracks cycles as slices.
	Cycle int
}

// InteriorState is the tri-valued classification of a Face.
type InteriorState int

const (
	Unknown InteriorState = iota
	Interior
	Exterior
)

// A Face is bounded by at most one outer (counter-clockwise) component and
// any number of inner (clockwise) components, one per hole.
type Face struct {
	Outer    *HalfEdge
	Inners   []*HalfEdge
	Interior InteriorState
}

// An EdgeList is the doubly-connected edge list produced by the
// planariser and consumed, then mutated in place, by the face builder and
// triangulator.
type EdgeList struct {
	Vertices  []*Vertex
	HalfEdges []*HalfEdge
	Faces     []*Face
}

// NewVertex allocates a vertex and registers it with the edge list.
func (el *EdgeList) NewVertex(pos geom.Vector) *Vertex {
	v := &Vertex{Pos: pos, Type: Unclassified, ID: len(el.Vertices)}
	el.Vertices = append(el.Vertices, v)
	return v
}

// NewEdgePair allocates a twinned pair of half-edges and registers them
// with the edge list. The caller is responsible for setting Origin,
// Succ/Pred and Face.
func (el *EdgeList) NewEdgePair() (down, up *HalfEdge) {
	down = &HalfEdge{Cycle: -1}
	up = &HalfEdge{Cycle: -1}
	down.Twin, up.Twin = up, down
	el.HalfEdges = append(el.HalfEdges, down, up)
	return down, up
}

// NewFace allocates a face and registers it with the edge list.
func (el *EdgeList) NewFace() *Face {
	f := &Face{Interior: Unknown}
	el.Faces = append(el.Faces, f)
	return f
}

// Link sets out.Origin = v, in.Succ = out, out.Pred = in, leaving twin
// linkage untouched. If v previously had no incident half-edge, out
// becomes it.
func Link(v *Vertex, in, out *HalfEdge) {
	out.Origin = v
	in.Succ = out
	out.Pred = in
	if v.Incident == nil {
		v.Incident = out
	}
}

// WalkCycle calls fn for every half-edge reachable from start by following
// Succ, starting and ending at start. fn must not mutate Succ of the edges
// it is given.
func WalkCycle(start *HalfEdge, fn func(*HalfEdge)) {
	if start == nil {
		return
	}
	e := start
	for {
		fn(e)
		e = e.Succ
		if e == start {
			break
		}
	}
}

// CycleLen returns the number of half-edges in the cycle containing start.
func CycleLen(start *HalfEdge) int {
	n := 0
	WalkCycle(start, func(*HalfEdge) { n++ })
	return n
}

// SetLeftFace assigns f to every half-edge of the cycle containing start.
func SetLeftFace(start *HalfEdge, f *Face) {
	WalkCycle(start, func(e *HalfEdge) { e.Face = f })
}

// LeftmostEdge returns the half-edge of the cycle containing start whose
// Origin has the least (X, Y) in lexicographic order.
func LeftmostEdge(start *HalfEdge) *HalfEdge {
	left := start
	WalkCycle(start, func(e *HalfEdge) {
		v0, v1 := left.Origin.Pos, e.Origin.Pos
		if v1.X < v0.X || (v1.X == v0.X && v1.Y < v0.Y) {
			left = e
		}
	})
	return left
}

// AlignVertices sets every origin's Incident half-edge to the one the
// cycle walk visits, so that v.Incident.Face == the cycle's face after the
// cycle has been assigned to a face.
func AlignVertices(start *HalfEdge) {
	WalkCycle(start, func(e *HalfEdge) { e.Origin.Incident = e })
}
