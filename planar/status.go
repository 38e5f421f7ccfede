package planar

import "github.com/glyphtri/glyphtri/geom"

// status holds the segments the sweep line currently crosses, kept sorted
// left to right. There is no fixed key to sort on: segLeftOfSeg's answer
// depends on where the sweep currently sits, so status is a plain sorted
// slice searched and spliced in place rather than a balanced tree keyed on
// a static comparator. The sweep line seldom crosses more than a handful
// of segments at once, so a linear scan costs nothing here.
type status struct {
	segs []*segment
}

// insert adds s to the status in its correctly-ordered position.
func (st *status) insert(s *segment) {
	for i, t := range st.segs {
		if segLeftOfSeg(s, t) {
			st.segs = append(st.segs, nil)
			copy(st.segs[i+1:], st.segs[i:])
			st.segs[i] = s
			return
		}
	}
	st.segs = append(st.segs, s)
}

// removeEndingAt removes and returns, in left-to-right order, every
// segment in the status whose end is e.
func (st *status) removeEndingAt(e *event) []*segment {
	var out []*segment
	kept := st.segs[:0]
	for _, s := range st.segs {
		if s.end == e {
			out = append(out, s)
		} else {
			kept = append(kept, s)
		}
	}
	st.segs = kept
	return out
}

// startingAt returns, in left-to-right order, every segment in the status
// whose origin is e. It does not remove them; they were just inserted by
// insert and belong in the status until they end.
func (st *status) startingAt(e *event) []*segment {
	var out []*segment
	for _, s := range st.segs {
		if s.origin == e {
			out = append(out, s)
		}
	}
	return out
}

// neighbors returns the segment immediately left of p and the segment
// immediately right of p, or nil for either if p is off that end of the
// status.
func (st *status) neighbors(p geom.Vector) (left, right *segment) {
	for _, s := range st.segs {
		if pointLeftOfSeg(p, s) {
			right = s
			return
		}
		left = s
	}
	return
}
