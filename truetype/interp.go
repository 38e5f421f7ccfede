package truetype

import (
	"github.com/glyphtri/glyphtri/shape"
)

// point2 is a FUnit-space co-ordinate pair, kept separate from Point
// because interpolation works in float64, not the int16 grid.
type point2 struct{ x, y float64 }

// flattenQuad forward-differences the quadratic Bézier from p0 through
// control p1 to p2 into steps line segments, returning the steps points
// at parameter t = m, 2m, ..., 1 (the last equal to p2). A
// quadratic's second derivative is constant, so the first difference
// itself advances by a constant amount each step - no per-step
// evaluation of the Bézier polynomial is needed after the first.
func flattenQuad(p0, p1, p2 point2, steps int) []point2 {
	m := 1.0 / float64(steps)
	out := make([]point2, steps)

	ax, bx, cx := p0.x-2*p1.x+p2.x, 2*(p1.x-p0.x), p0.x
	dx := ax*m*m + bx*m
	ddx := 2 * ax * m * m
	ay, by, cy := p0.y-2*p1.y+p2.y, 2*(p1.y-p0.y), p0.y
	dy := ay*m*m + by*m
	ddy := 2 * ay * m * m

	px, py := cx, cy
	for k := 0; k < steps; k++ {
		px += dx
		dx += ddx
		py += dy
		dy += ddy
		out[k] = point2{px, py}
	}
	return out
}

// contourBuilder appends one contour's flattened polyline into a Shape,
// tracking the index of the most recently emitted vertex and the index
// of the contour's first vertex, so the final segment can close back to
// it instead of duplicating a coincident point.
type contourBuilder struct {
	s        *shape.Shape
	lsb      float64
	upem     float64
	steps    int
	last     int
	startIdx int
	startPt  point2
}

func (cb *contourBuilder) norm(p point2) (float64, float64) {
	return (p.x - cb.lsb) / cb.upem, p.y / cb.upem
}

// start opens the contour at p, recording it as both the current and
// starting vertex.
func (cb *contourBuilder) start(p point2) {
	x, y := cb.norm(p)
	cb.startIdx = cb.s.AddVec(x, y)
	cb.last = cb.startIdx
	cb.startPt = p
}

// lineTo appends a straight segment from the current vertex to p, or
// back to the contour's start if closing is true.
func (cb *contourBuilder) lineTo(p point2, closing bool) {
	idx := cb.vertexFor(p, closing)
	cb.s.AddSeg(cb.last, idx)
	cb.last = idx
}

// quadTo flattens a quadratic curve from the current vertex through
// control to p (or back to start, if closing), appending cb.steps line
// segments.
func (cb *contourBuilder) quadTo(control, p point2, closing bool) {
	cur := cb.currentPoint()
	pts := flattenQuad(cur, control, p, cb.steps)
	for i, fp := range pts {
		last := i == len(pts)-1
		idx := cb.vertexFor(fp, closing && last)
		cb.s.AddSeg(cb.last, idx)
		cb.last = idx
	}
}

// vertexFor returns the vertex index to connect to for target point p:
// the contour's start index if closing, otherwise a freshly added one.
func (cb *contourBuilder) vertexFor(p point2, closing bool) int {
	if closing {
		return cb.startIdx
	}
	x, y := cb.norm(p)
	return cb.s.AddVec(x, y)
}

// currentPoint recovers the FUnit co-ordinates of cb.last by inverting
// norm; cheaper than threading the pre-normalisation point through every
// call site.
func (cb *contourBuilder) currentPoint() point2 {
	v := cb.s.Vec[cb.last]
	return point2{v.X*cb.upem + cb.lsb, v.Y * cb.upem}
}

// buildContour decodes one contour's alternating on/off-curve points
// (with implicit on-curve points at the midpoint of two consecutive
// off-curve points) and appends its flattened outline to s.
func buildContour(cb *contourBuilder, ps []Point) {
	if len(ps) == 0 {
		return
	}
	at := func(i int) point2 { return point2{float64(ps[i].X), float64(ps[i].Y)} }
	onCurve := func(i int) bool { return ps[i].Flags&flagOnCurve != 0 }

	var startPt point2
	var rest []int // indices into ps, in walk order, excluding the chosen start
	switch {
	case onCurve(0):
		startPt = at(0)
		for i := 1; i < len(ps); i++ {
			rest = append(rest, i)
		}
	case onCurve(len(ps) - 1):
		startPt = at(len(ps) - 1)
		for i := 0; i < len(ps)-1; i++ {
			rest = append(rest, i)
		}
	default:
		last := at(len(ps) - 1)
		first := at(0)
		startPt = point2{(first.x + last.x) / 2, (first.y + last.y) / 2}
		for i := 0; i < len(ps); i++ {
			rest = append(rest, i)
		}
	}

	cb.start(startPt)

	var pending point2
	havePending := false
	for _, i := range rest {
		p := at(i)
		if onCurve(i) {
			if havePending {
				cb.quadTo(pending, p, false)
				havePending = false
			} else {
				cb.lineTo(p, false)
			}
		} else {
			if havePending {
				mid := point2{(pending.x + p.x) / 2, (pending.y + p.y) / 2}
				cb.quadTo(pending, mid, false)
			}
			pending, havePending = p, true
		}
	}
	if havePending {
		cb.quadTo(pending, cb.startPt, true)
	} else {
		cb.lineTo(cb.startPt, true)
	}
}

// GlyphShape decodes the glyph the cmap maps r to and interpolates its
// contours into a Shape, with vertex co-ordinates normalised to the
// em-square: x = (fu - lsb) / upem, y = fu / upem. It returns a
// NotFound *Error if r has no cmap entry.
func (f *Font) GlyphShape(r rune, opts *Options) (*shape.Shape, error) {
	idx := f.Index(r)
	if idx == 0 && r != 0 {
		return nil, errf(NotFound, "no glyph for code point %U", r)
	}
	if f.unitsPerEm == 0 {
		return nil, errf(Container, "font has zero unitsPerEm")
	}

	gb := NewGlyphBuf()
	if err := gb.Load(f, idx); err != nil {
		return nil, err
	}

	s := shape.New()
	cb := &contourBuilder{
		s:     s,
		lsb:   float64(f.HMetric(idx).LeftSideBearing),
		upem:  float64(f.unitsPerEm),
		steps: opts.interpolation(),
	}

	e0 := 0
	for ci, e1 := range gb.End {
		if opts.debug() {
			T().Debugf("truetype: glyph %d contour %d: %d points", idx, ci, e1-e0)
		}
		buildContour(cb, gb.Point[e0:e1])
		e0 = e1
	}
	return s, nil
}
