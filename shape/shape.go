// Package shape holds the Shape type that is passed between the font
// decoder and the planariser: an ordered list of vertices and an ordered
// list of segment index pairs into that vertex list.
package shape

import "github.com/glyphtri/glyphtri/geom"

// A Shape is an ordered sequence of 2D vertices, in normalised em-space
// (typically in [0,1]), and an ordered sequence of segment index pairs
// (i, j) referring into the vertex sequence. Segments may share endpoints
// and may cross; they should not be degenerate, though the planariser
// tolerates a degree of that.
type Shape struct {
	Vec []geom.Vector
	Seg [][2]int
}

// New returns an empty Shape.
func New() *Shape {
	return &Shape{}
}

// AddVec appends a vertex and returns its index.
func (s *Shape) AddVec(x, y float64) int {
	s.Vec = append(s.Vec, geom.Vector{X: x, Y: y})
	return len(s.Vec) - 1
}

// AddSeg appends a segment between vertex indices n and m.
func (s *Shape) AddSeg(n, m int) {
	s.Seg = append(s.Seg, [2]int{n, m})
}

// NVec returns the number of vertices.
func (s *Shape) NVec() int {
	return len(s.Vec)
}

// NSeg returns the number of segments.
func (s *Shape) NSeg() int {
	return len(s.Seg)
}
