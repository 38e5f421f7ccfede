package planar

import (
	"container/heap"
	"sort"

	"github.com/glyphtri/glyphtri/dcel"
	"github.com/glyphtri/glyphtri/geom"
	"github.com/glyphtri/glyphtri/shape"
)

// MakePlanar builds the planar arrangement of s's segments: a doubly
// connected edge list in which no two edges cross, every crossing of the
// input having been replaced by a vertex. It is the first of the four
// stages that turn a Shape into a triangle mesh; package faces and
// package triangulate both operate on its result.
func MakePlanar(s *shape.Shape) *dcel.EdgeList {
	events := buildEvents(s)
	sort.Slice(events, func(i, j int) bool { return geom.Above(events[i].pos, events[j].pos) })
	events = collapseDuplicates(events)

	for _, e := range events {
		pruneTail(e)
	}

	nextID := len(events)
	pq := &eventHeap{}
	dropped := 0
	for _, e := range events {
		if len(e.in) == 0 && len(e.out) == 0 {
			continue
		}
		pruneParallelFan(e)
		if isDegenerate(e) {
			dropped++
			continue
		}
		*pq = append(*pq, e)
	}
	heap.Init(pq)
	if dropped > 0 {
		T().Debugf("planar: cleanup dropped %d degenerate event(s) of %d", dropped, len(events))
	}

	el := &dcel.EdgeList{}
	st := &status{}
	for pq.Len() > 0 {
		e := heap.Pop(pq).(*event)
		processEvent(e, el, st, pq, &nextID)
	}
	T().Debugf("planar: built %d vertices, %d half-edges", len(el.Vertices), len(el.HalfEdges))
	return el
}

// buildEvents creates one event per shape vertex and one segment per
// shape segment, oriented so that every segment's origin is above its
// end in the geom.Above order.
func buildEvents(s *shape.Shape) []*event {
	events := make([]*event, len(s.Vec))
	for i, p := range s.Vec {
		events[i] = &event{pos: p, id: i}
	}
	for _, sg := range s.Seg {
		a, b := events[sg[0]], events[sg[1]]
		if a == b {
			continue
		}
		origin, end := a, b
		if !geom.Above(a.pos, b.pos) {
			origin, end = b, a
		}
		seg := &segment{origin: origin, end: end}
		origin.out = append(origin.out, seg)
		end.in = append(end.in, seg)
	}
	return events
}

// processEvent removes the segments ending at e from the status, creates
// a vertex and half-edges for the segments starting at e, links them all
// around the new vertex, and tests the innermost new segment on each side
// against its new status neighbor for a crossing.
func processEvent(e *event, el *dcel.EdgeList, st *status, pq *eventHeap, nextID *int) {
	inSegs := st.removeEndingAt(e)
	outerLeft, outerRight := st.neighbors(e.pos)

	for _, s := range e.out {
		st.insert(s)
	}
	outSegs := st.startingAt(e)

	v := el.NewVertex(e.pos)
	e.vertex = v

	for _, s := range outSegs {
		down, _ := el.NewEdgePair()
		s.edge = down
	}

	linkVertex(v, inSegs, outSegs)

	var innerLeft, innerRight *segment
	if len(outSegs) > 0 {
		innerLeft, innerRight = outSegs[0], outSegs[len(outSegs)-1]
	}
	tryIntersect(innerLeft, outerLeft, pq, nextID)
	if innerLeft != innerRight || outerLeft != outerRight {
		tryIntersect(innerRight, outerRight, pq, nextID)
	}
}

// linkVertex sets Succ/Pred/Origin for every half-edge incident to v.
// Walking outward from v, the segments ending at v (via their already
// allocated up-twin) point generally upward and are already sorted left
// to right; the segments starting at v point generally downward and are
// sorted left to right too, so their reverse gives the same left-to-right
// continuation clockwise. Concatenating the two, in that order, is the
// full clockwise rotation of half-edges around v; linking consecutive
// pairs around that circle (wrapping) is the standard way to thread a new
// vertex into a DCEL built by a line sweep.
func linkVertex(v *dcel.Vertex, inSegs, outSegs []*segment) {
	outward := make([]*dcel.HalfEdge, 0, len(inSegs)+len(outSegs))
	for _, s := range inSegs {
		outward = append(outward, s.edge.Twin)
	}
	for i := len(outSegs) - 1; i >= 0; i-- {
		outward = append(outward, outSegs[i].edge)
	}
	n := len(outward)
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		a := outward[i]
		b := outward[(i+1)%n]
		dcel.Link(v, a.Twin, b)
	}
}

// tryIntersect tests inner against outer for a proper crossing and, if
// found, splices a new event at the crossing point into pq.
func tryIntersect(inner, outer *segment, pq *eventHeap, nextID *int) {
	if inner == nil || outer == nil || inner.end == outer.end {
		return
	}
	a := geom.Segment{P: inner.origin.pos, Q: inner.end.pos}
	b := geom.Segment{P: outer.origin.pos, Q: outer.end.pos}
	pos, ok := geom.Intersect(a, b)
	if !ok {
		return
	}
	ne := splitAt(inner, outer, pos, nextID)
	heap.Push(pq, ne)
}

// splitAt creates a new event at pos between inner and outer (both
// currently running from above down past pos), truncating each at the new
// event and continuing each on to its old end via a fresh segment.
func splitAt(inner, outer *segment, pos geom.Vector, nextID *int) *event {
	ne := &event{pos: pos, id: *nextID}
	*nextID++

	innerOldEnd, outerOldEnd := inner.end, outer.end

	innerCont := &segment{origin: ne, end: innerOldEnd}
	outerCont := &segment{origin: ne, end: outerOldEnd}

	removeSeg(&innerOldEnd.in, inner)
	removeSeg(&outerOldEnd.in, outer)

	inner.end = ne
	outer.end = ne
	ne.in = append(ne.in, inner, outer)
	ne.out = append(ne.out, innerCont, outerCont)

	innerOldEnd.in = append(innerOldEnd.in, innerCont)
	outerOldEnd.in = append(outerOldEnd.in, outerCont)

	return ne
}

// eventHeap is a min-heap over events ordered by geom.Above, so popping
// always yields the topmost remaining event, matching the order the
// cleanup-time sort already established for the initial batch.
type eventHeap []*event

func (h eventHeap) Len() int            { return len(h) }
func (h eventHeap) Less(i, j int) bool  { return geom.Above(h[i].pos, h[j].pos) }
func (h eventHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) { *h = append(*h, x.(*event)) }
func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
