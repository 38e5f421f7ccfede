package triangulate

import (
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/glyphtri/glyphtri/dcel"
)

// partitioner carries the sweep status and the diagonal half-edges it
// creates while MonotonePartition processes one face's vertices.
type partitioner struct {
	el    *dcel.EdgeList
	st    *partitionStatus
	extra []*dcel.HalfEdge
}

// diagonal splices a diagonal between v1 and v2 and records the new
// half-edge pair for the post-sweep face reconstruction; a refused
// (duplicate) diagonal is silently dropped.
func (p *partitioner) diagonal(v1, v2 *dcel.Vertex) {
	if v1 == nil || v2 == nil {
		return
	}
	down, up, _, ok := spliceDiagonal(p.el, v1, v2)
	if !ok {
		return
	}
	p.extra = append(p.extra, down, up)
}

// MonotonePartition subdivides f, an interior face that may still carry
// holes, into y-monotone pieces by inserting diagonals at its split and
// merge vertices (and, for vertices whose predecessor helper turns out to
// be a merge vertex, at end and regular vertices too). It returns every
// resulting face: f itself, reused for one of the pieces, plus a newly
// allocated Face per additional piece. Every hole is absorbed into the
// outer chain (or another hole) by at least one such diagonal, so every
// returned piece is a simple, hole-free monotone polygon.
func MonotonePartition(el *dcel.EdgeList, f *dcel.Face) []*dcel.Face {
	verts := classifyFace(f)

	var boundary []*dcel.HalfEdge
	if f.Outer != nil {
		dcel.WalkCycle(f.Outer, func(e *dcel.HalfEdge) { boundary = append(boundary, e) })
	}
	for _, in := range f.Inners {
		dcel.WalkCycle(in, func(e *dcel.HalfEdge) { boundary = append(boundary, e) })
	}

	p := &partitioner{el: el, st: &partitionStatus{}}

	for _, sv := range verts {
		switch sv.vtype {
		case dcel.Start:
			p.st.insert(sv.eOut, sv.v.Pos.Y)
			sv.eOut.Helper = sv.v
		case dcel.End:
			handleEnd(p, sv)
		case dcel.Split:
			handleSplit(p, sv)
		case dcel.Merge:
			handleMerge(p, sv)
		default:
			handleRegular(p, sv)
		}
	}

	return finishFaces(el, f, boundary, p.extra)
}

func handleEnd(p *partitioner, sv *sweepVertex) {
	ePrev := sv.ePred
	if ePrev.Helper != nil && ePrev.Helper.Type == dcel.Merge {
		p.diagonal(ePrev.Helper, sv.v)
	}
	p.st.remove(ePrev)
}

func handleSplit(p *partitioner, sv *sweepVertex) {
	ej := p.st.leftOf(sv.v)
	if ej != nil {
		p.diagonal(ej.Helper, sv.v)
		ej.Helper = sv.v
	}
	p.st.insert(sv.eOut, sv.v.Pos.Y)
	sv.eOut.Helper = sv.v
}

func handleMerge(p *partitioner, sv *sweepVertex) {
	ePrev := sv.ePred
	if ePrev.Helper != nil && ePrev.Helper.Type == dcel.Merge {
		p.diagonal(ePrev.Helper, sv.v)
	}
	p.st.remove(ePrev)

	ej := p.st.leftOf(sv.v)
	if ej != nil {
		if ej.Helper != nil && ej.Helper.Type == dcel.Merge {
			p.diagonal(ej.Helper, sv.v)
		}
		ej.Helper = sv.v
	}
}

func handleRegular(p *partitioner, sv *sweepVertex) {
	if sv.interiorOnRight {
		ePrev := sv.ePred
		if ePrev.Helper != nil && ePrev.Helper.Type == dcel.Merge {
			p.diagonal(ePrev.Helper, sv.v)
		}
		p.st.remove(ePrev)
		p.st.insert(sv.eOut, sv.v.Pos.Y)
		sv.eOut.Helper = sv.v
		return
	}

	ej := p.st.leftOf(sv.v)
	if ej != nil {
		if ej.Helper != nil && ej.Helper.Type == dcel.Merge {
			p.diagonal(ej.Helper, sv.v)
		}
		ej.Helper = sv.v
	}
}

// finishFaces partitions the half-edges of f's original boundary plus
// every diagonal the sweep spliced in into their resulting Succ-orbits,
// one per monotone piece, and allocates a Face for each: f is reused for
// the first orbit found, and a fresh Face, copying f's Interior state,
// for every additional one.
func finishFaces(el *dcel.EdgeList, f *dcel.Face, boundary, extra []*dcel.HalfEdge) []*dcel.Face {
	all := make([]*dcel.HalfEdge, 0, len(boundary)+len(extra))
	all = append(all, boundary...)
	all = append(all, extra...)

	seen := hashset.New()
	var pieces []*dcel.Face
	for _, e := range all {
		if seen.Contains(e) {
			continue
		}
		dcel.WalkCycle(e, func(h *dcel.HalfEdge) { seen.Add(h) })

		g := f
		if len(pieces) > 0 {
			g = el.NewFace()
		}
		g.Interior = f.Interior
		g.Outer = e
		g.Inners = nil
		dcel.SetLeftFace(e, g)
		dcel.AlignVertices(e)
		pieces = append(pieces, g)
	}
	return pieces
}
