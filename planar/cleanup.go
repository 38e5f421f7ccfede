package planar

import "github.com/glyphtri/glyphtri/geom"

// collapseDuplicates merges consecutive events (the slice must already be
// sorted top-down) that lie within geom.CloseTolerance of each other,
// redirecting every incident segment onto the surviving event. Any
// segment that becomes a self-loop as a result is dropped outright: it
// connects a point to itself and contributes nothing to the arrangement.
func collapseDuplicates(events []*event) []*event {
	out := events[:0:0]
	for _, e := range events {
		if len(out) > 0 && geom.Close(out[len(out)-1].pos, e.pos) {
			mergeEvents(out[len(out)-1], e)
			continue
		}
		out = append(out, e)
	}
	return out
}

func mergeEvents(into, from *event) {
	for _, s := range append([]*segment(nil), from.in...) {
		s.end = into
		if s.origin == into {
			removeSeg(&into.out, s)
			continue
		}
		into.in = append(into.in, s)
	}
	for _, s := range append([]*segment(nil), from.out...) {
		s.origin = into
		if s.end == into {
			removeSeg(&into.in, s)
			continue
		}
		into.out = append(into.out, s)
	}
}

// pruneTail repeatedly strips a degree-1 dangling chain starting at e: an
// event with exactly one incident segment and nothing on the other side
// contributes a spike that bounds no area, so the whole chain back to the
// first branching or terminal point is removed.
func pruneTail(e *event) {
	for e != nil {
		switch {
		case len(e.in) == 1 && len(e.out) == 0:
			s := e.in[0]
			e.in = nil
			removeSeg(&s.origin.out, s)
			e = s.origin
		case len(e.in) == 0 && len(e.out) == 1:
			s := e.out[0]
			e.out = nil
			removeSeg(&s.end.in, s)
			e = s.end
		default:
			return
		}
	}
}

// parallelTolerance bounds how close two outgoing directions at the same
// event must be, component-wise on their unit vectors, to be treated as a
// degenerate near-parallel fan rather than two genuinely distinct edges.
const parallelTolerance = 1e-4

// pruneParallelFan resolves near-parallel and coincident outgoing edges at
// e. Two outgoing segments whose unit directions agree within
// parallelTolerance on both axes are collapsed: if they share an end
// point, they are the same segment and one of them is discarded;
// otherwise the shorter one is kept running from e and the one reaching
// further is repointed to originate where the kept one ends, deferring
// the ambiguity to a later event where the geometry has had a chance to
// diverge.
func pruneParallelFan(e *event) {
	for {
		if len(e.out) < 2 {
			return
		}
		segs := sortByAngleFrom(e.out)
		n := len(segs)
		changed := false
		for i := 0; i < n; i++ {
			s, t := segs[i], segs[(i+1)%n]
			if s == t {
				continue
			}
			ds := s.end.pos.Sub(s.origin.pos).Norm()
			dt := t.end.pos.Sub(t.origin.pos).Norm()
			if !closeComponents(ds, dt) {
				continue
			}
			switch {
			case t.end == s.end:
				dropOut(e, t)
			case geom.Above(s.end.pos, t.end.pos):
				repointOut(e, t, s.end)
			default:
				repointOut(e, s, t.end)
			}
			changed = true
			break
		}
		if !changed {
			return
		}
	}
}

func closeComponents(a, b geom.Vector) bool {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx < parallelTolerance && dy < parallelTolerance
}

func sortByAngleFrom(segs []*segment) []*segment {
	out := append([]*segment(nil), segs...)
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && geom.Angle(out[j-1].origin.pos, out[j-1].end.pos) > geom.Angle(out[j].origin.pos, out[j].end.pos) {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}

func dropOut(e *event, s *segment) {
	removeSeg(&e.out, s)
	removeSeg(&s.end.in, s)
}

func repointOut(e *event, s *segment, newOrigin *event) {
	removeSeg(&e.out, s)
	s.origin = newOrigin
	newOrigin.out = append(newOrigin.out, s)
}

// isDegenerate reports whether e contributes nothing to the arrangement
// and should be dropped rather than enqueued: no incident segments at
// all, or a single outgoing segment that loops back to e.
func isDegenerate(e *event) bool {
	if len(e.in) == 0 && len(e.out) == 0 {
		return true
	}
	if len(e.in) == 0 && len(e.out) == 1 && e.out[0].end == e {
		dropOut(e, e.out[0])
		return true
	}
	return false
}
